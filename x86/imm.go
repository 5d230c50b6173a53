package x86

// readImm consumes whatever trailing immediate(s) the table flags and
// active prefixes call for, then - if the opcode carries a
// PC-relative operand - reinterprets the immediate just read as a
// signed displacement and resolves its absolute target.
func (i *Instruction) readImm() {
	switch {
	case i.flags.Has(FlagAM):
		size := uint8(4)
		if i.Mode == Mode64 {
			size = 8
		}
		if i.Prefixes[3] == 0x67 {
			if size == 8 {
				size = 4
			} else {
				size = 2
			}
		}
		i.ImmSize = size
		i.Imm = i.readLE(size)
		i.HasImm = true

	default:
		if i.flags.Has(FlagI32) {
			// REX.W wins over 0x66 when both are present.
			size := uint8(4)
			switch {
			case i.Mode == Mode64 && i.flags.Has(FlagRW) && i.RexW:
				size = 8
			case i.Prefixes[2] == 0x66:
				size = 2
			}
			i.claimImm(size)
		}
		if i.flags.Has(FlagI16) {
			i.claimImm(2)
		}
		if i.flags.Has(FlagI8) {
			i.claimImm(1)
		}
	}

	if !i.flags.Has(FlagRel) {
		return
	}

	i.HasRel = true
	i.HasImm = false
	i.RelSize = i.ImmSize
	rel := i.Imm
	switch i.RelSize {
	case 1:
		if rel&0x80 != 0 {
			rel |= 0xFFFFFFFFFFFFFF00
		}
	case 2:
		if rel&0x8000 != 0 {
			rel |= 0xFFFFFFFFFFFF0000
		}
	case 4:
		if rel&0x80000000 != 0 {
			rel |= 0xFFFFFFFF00000000
		}
	}
	i.Rel = int32(rel)

	base := uint64(i.start) + uint64(i.cur.Length())
	i.RelAbs = base + uint64(int64(i.Rel))
	if i.Mode == Mode32 {
		i.RelAbs = uint64(uint32(i.RelAbs))
	}
}

// claimImm fills the first empty immediate slot with size bytes read
// little-endian from the cursor.
func (i *Instruction) claimImm(size uint8) {
	if !i.HasImm {
		i.ImmSize = size
		i.Imm = i.readLE(size)
		i.HasImm = true
		return
	}
	i.Imm2Size = size
	i.Imm2 = i.readLE(size)
	i.HasImm2 = true
}

func (i *Instruction) readLE(size uint8) uint64 {
	var v uint64
	for k := uint8(0); k < size; k++ {
		v |= uint64(i.cur.Get()) << (k * 8)
	}
	return v
}
