package x86

import "github.com/bishopfox/lito"

// decodeOpcode reads the opcode bytes - either a legacy 1/2/3-byte
// sequence or a VEX/EVEX escape followed by its payload and final
// opcode byte - then resolves the table entry and applies the two
// opcode-extension fixups the tables can't express on their own.
func (i *Instruction) decodeOpcode() {
	b0 := i.cur.Peek(0)

	if (b0 == 0xC4 || b0 == 0xC5 || b0 == 0x62) && i.isVEXEscape() {
		i.cur.Get()
		if !i.decodeVEX(b0) {
			i.flags = FlagError
			return
		}
		final := i.cur.Get()
		if i.OpcodeLength == 1 {
			i.Opcode[1] = final
			i.OpcodeLength = 2
		} else {
			i.Opcode[2] = final
			i.OpcodeLength = 3
		}
	} else {
		i.Opcode[0] = i.cur.Get()
		i.OpcodeLength = 1
		if i.Opcode[0] == 0x0F {
			i.Opcode[1] = i.cur.Get()
			i.OpcodeLength = 2
			if i.Opcode[1] == 0x38 || i.Opcode[1] == 0x3A {
				i.Opcode[2] = i.cur.Get()
				i.OpcodeLength = 3
			}
		}
	}

	i.flags = i.tableEntry()

	// F6/F7 carry a /reg-selected immediate shape the tables can't
	// express directly: /0 and /1 (TEST) take an immediate, every
	// other /reg takes none.
	if !i.HasVEX && i.OpcodeLength == 1 && (i.Opcode[0] == 0xF6 || i.Opcode[0] == 0xF7) {
		reg := (i.cur.Peek(0) >> 3) & 0x07
		switch {
		case reg == 0 || reg == 1:
			if i.Opcode[0] == 0xF6 {
				i.flags = FlagRM | FlagI8
			} else {
				i.flags = FlagRM | FlagRW | FlagI32
			}
		default:
			i.flags = FlagRM
		}
	}

	if i.flags == FlagError {
		return
	}

	if i.flags.Has(FlagVX) && !i.HasVEX {
		i.Errors |= lito.ErrNoVex
	}
	if i.flags.Has(FlagMP) && i.Prefixes[2] != 0x66 {
		i.Errors |= lito.ErrOpcode
	}
}

// isVEXEscape disambiguates the VEX/EVEX escape bytes from the legacy
// LES/LDS/BOUND opcodes that share them in 32-bit mode: there the byte
// after the escape must have both top bits set (a ModR/M register form,
// which those legacy opcodes never encode). In 64-bit mode the legacy
// opcodes do not exist and the bytes are always an escape.
func (i *Instruction) isVEXEscape() bool {
	return i.Mode == Mode64 || i.cur.Peek(1)&0xC0 == 0xC0
}

func (i *Instruction) tableEntry() Flags {
	switch {
	case i.OpcodeLength == 1:
		return primaryTable[i.Opcode[0]]
	case i.OpcodeLength == 2:
		return table0F[i.Opcode[1]]
	case i.Opcode[1] == 0x38:
		return table38[i.Opcode[2]]
	default:
		return table3A[i.Opcode[2]]
	}
}
