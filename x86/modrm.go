package x86

import "github.com/bishopfox/lito"

// decodeModRM reads the ModR/M byte and determines whether a
// SIB byte and/or displacement follow from the mod/rm combination alone.
func (i *Instruction) decodeModRM() {
	b := i.cur.Get()
	i.HasModRM = true

	mod := b >> 6
	i.ModRMReg = (b >> 3) & 0x07
	i.ModRMRM = b & 0x07

	addr16 := i.Prefixes[3] == 0x67
	sibFollows := !addr16 && i.ModRMRM == 4

	switch mod {
	case 0b00:
		i.ModRMMod = ModeMem
		switch {
		case sibFollows:
			i.HasSIB = true
		case !addr16 && i.ModRMRM == 5:
			i.HasDisp, i.DispSize = true, 4
		case addr16 && i.ModRMRM == 6:
			i.HasDisp, i.DispSize = true, 2
		}
	case 0b01:
		i.ModRMMod = ModeMemDisp8
		if sibFollows {
			i.HasSIB = true
		}
		i.HasDisp, i.DispSize = true, 1
	case 0b10:
		i.ModRMMod = ModeMemDisp32
		if sibFollows {
			i.HasSIB = true
		}
		i.HasDisp = true
		if addr16 {
			i.DispSize = 2
		} else {
			i.DispSize = 4
		}
	case 0b11:
		i.ModRMMod = ModeReg
		if i.Prefixes[0] == lockPrefix {
			i.Errors |= lito.ErrLock
		}
	}
}

func (i *Instruction) decodeSIB() {
	b := i.cur.Get()
	i.SIBScale = 1 << (b >> 6)
	i.SIBIndex = (b >> 3) & 0x07
	i.SIBBase = b & 0x07
}

// rexExtendModRM applies REX.R/X/B register-extension bits to the
// fields decodeModRM/decodeSIB just produced. Which field each bit
// extends depends on whether a SIB byte is present and, when it is
// not, on whether the opcode's own reg field (the FlagOX case) is
// being extended instead of ModR/M.reg.
func (i *Instruction) rexExtendModRM() {
	if !i.HasREX {
		return
	}
	if i.HasSIB {
		if i.RexR {
			i.ModRMReg |= 0x08
		}
		if i.RexX {
			i.SIBIndex |= 0x08
		}
		if i.RexB {
			i.SIBBase |= 0x08
		}
		return
	}
	if i.flags.Has(FlagOX) {
		// ModR/M.reg is an opcode extension here, so REX.B (not
		// REX.R) is the bit that extends it.
		if i.RexB {
			i.ModRMReg |= 0x08
		}
	} else {
		if i.RexR {
			i.ModRMReg |= 0x08
		}
		if i.RexB {
			i.ModRMRM |= 0x08
		}
	}
}
