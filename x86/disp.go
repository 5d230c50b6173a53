package x86

// readDisp reads the displacement bytes decodeModRM already sized and
// sign-extends them into a signed 32-bit value.
func (i *Instruction) readDisp() {
	v := i.readLE(i.DispSize)
	switch i.DispSize {
	case 1:
		if v&0x80 != 0 {
			v |= 0xFFFFFFFFFFFFFF00
		}
	case 2:
		if v&0x8000 != 0 {
			v |= 0xFFFFFFFFFFFF0000
		}
	}
	i.Disp = int32(v)
}
