package x86

import "github.com/bishopfox/lito"

// decodeVEX consumes the payload bytes following an already-consumed
// VEX/EVEX escape byte (0xC5, 0xC4 or 0x62) and fills in the VEX fields.
// It returns false on a structural failure (unknown mm field), in which
// case the caller treats the whole instruction as an opcode error.
func (i *Instruction) decodeVEX(escape byte) bool {
	i.HasVEX = true
	if i.Prefixes[0] != 0 || i.Prefixes[1] != 0 || i.Prefixes[2] != 0 || i.Prefixes[3] != 0 {
		i.Errors |= lito.ErrOpcode
	}
	if i.HasREX {
		i.Errors |= lito.ErrREX
	}

	switch escape {
	case 0xC5:
		i.VexSize = 2
		b1 := i.cur.Get()
		i.RexR = b1&0x80 == 0
		i.vexLRaw = (b1 >> 2) & 0x01
		i.VexReg = (^b1 >> 3) & 0x0F
		i.Opcode[0] = 0x0F
		i.OpcodeLength = 1
		i.vexPP(b1 & 0x03)
		i.vexWidthFromL()
		return true

	case 0xC4:
		i.VexSize = 3
		b1 := i.cur.Get()
		b2 := i.cur.Get()
		i.RexR = b1&0x80 == 0
		i.RexX = b1&0x40 == 0
		i.RexB = b1&0x20 == 0
		i.RexW = b2&0x80 != 0
		i.vexLRaw = (b2 >> 2) & 0x01
		i.VexReg = (^b2 >> 3) & 0x0F
		if !i.vexMM(b1 & 0x1F) {
			return false
		}
		i.vexPP(b2 & 0x03)
		i.vexWidthFromL()
		return true

	case 0x62:
		i.VexSize = 4
		b1 := i.cur.Get()
		b2 := i.cur.Get()
		b3 := i.cur.Get()
		i.RexR = b1&0x80 != 0
		i.RexX = b1&0x40 != 0
		i.RexB = b1&0x20 != 0
		i.VexRR = b1&0x10 != 0
		if !i.vexMM(b1 & 0x03) {
			return false
		}
		i.RexW = b2&0x80 != 0
		i.VexReg = (^b2 >> 3) & 0x0F
		if b3&0x80 != 0 {
			i.VexReg |= 0x10
		}
		i.vexPP(b2 & 0x03)
		i.vexLRaw = (b3 >> 5) & 0x03
		i.VexZero = b3&0x80 != 0
		i.vexSAE = b3&0x10 != 0
		i.VexOpmask = b3 & 0x07

		if i.vexSAE {
			i.VexRoundTo = RoundMode(i.vexLRaw + 1)
			i.vexLRaw = 0x02
			i.VexVecBits = 512
		} else if i.vexLRaw == 0x03 {
			i.Errors |= lito.ErrOperand
		} else {
			i.VexVecBits = 128 << i.vexLRaw
		}
		return true
	}
	return false
}

// vexPP maps the 2-bit pp field onto the same legacy prefix slots a
// mandatory-prefix opcode would have used, so opcode-table lookups and
// the mp gate behave identically for VEX- and legacy-encoded forms.
// The preceding prefix-conflict check above already guarantees these
// slots are empty on any error-free VEX instruction, so the writes
// here are unconditional.
func (i *Instruction) vexPP(pp byte) {
	switch pp {
	case 0x01:
		i.Prefixes[2] = 0x66
	case 0x02:
		i.Prefixes[0] = 0xF3
	case 0x03:
		i.Prefixes[0] = 0xF2
	}
}

// vexMM maps the mm/mmmmm field onto the escape bytes a legacy 0x0F,
// 0x0F38 or 0x0F3A sequence would have produced.
func (i *Instruction) vexMM(mm byte) bool {
	switch mm {
	case 0x01:
		i.Opcode[0] = 0x0F
		i.OpcodeLength = 1
	case 0x02:
		i.Opcode[0] = 0x0F
		i.Opcode[1] = 0x38
		i.OpcodeLength = 2
	case 0x03:
		i.Opcode[0] = 0x0F
		i.Opcode[1] = 0x3A
		i.OpcodeLength = 2
	default:
		i.Errors |= lito.ErrOpcode
		return false
	}
	return true
}

func (i *Instruction) vexWidthFromL() {
	if i.vexLRaw != 0 {
		i.VexVecBits = 256
	} else {
		i.VexVecBits = 128
	}
}
