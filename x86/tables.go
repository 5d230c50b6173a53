package x86

/*
 * Opcode flag tables.
 *
 * Four immutable 256-entry tables mapping an opcode byte to a bitset of
 * structural hints: whether a ModR/M byte follows, how many immediate
 * bytes, whether the opcode needs a VEX/EVEX escape, and so on. These
 * are reproduced bit-for-bit from the reference decoder tables; an
 * entry changed here silently breaks every instruction that shares it.
 */

// Flags is the bitset attached to each opcode-table entry.
type Flags uint16

// Has reports whether bit is set in f.
func (f Flags) Has(bit Flags) bool {
	return f&bit != 0
}

const (
	FlagRM  Flags = 1 << 0 // ModR/M byte follows
	FlagOX  Flags = 1 << 1 // opcode extended by ModR/M.reg; REX.B (not REX.R) extends it
	FlagRel Flags = 1 << 2 // primary imm is a PC-relative offset
	FlagI8  Flags = 1 << 3 // 8-bit immediate
	FlagI16 Flags = 1 << 4 // 16-bit immediate
	FlagI32 Flags = 1 << 5 // 32-bit immediate (shrinks to 16 under 0x66, widens to 64 under REX.W+rw)
	FlagRW  Flags = 1 << 6 // REX.W may widen the i32 immediate to 64 bits
	FlagAM  Flags = 1 << 7 // moffs addressing; imm is a memory address
	FlagVX  Flags = 1 << 8 // requires VEX/EVEX encoding
	FlagMP  Flags = 1 << 9 // 0x66 is a mandatory prefix, not an operand-size override

	// Composites used directly in the tables below.
	FlagEX  = FlagRM | FlagOX
	FlagR8  = FlagI8 | FlagRel
	FlagR32 = FlagI32 | FlagRel

	// FlagError marks "no legal instruction" table entries.
	FlagError Flags = 0xFFFF
)

const (
	none  = Flags(0)
	rm    = FlagRM
	ox    = FlagOX
	rel   = FlagRel
	i8    = FlagI8
	i16   = FlagI16
	i32   = FlagI32
	rw    = FlagRW
	am    = FlagAM
	vx    = FlagVX
	mp    = FlagMP
	ex    = FlagEX
	r8    = FlagR8
	r32   = FlagR32
	error = FlagError
)

// primaryTable is T_primary: the single-byte opcode space.
var primaryTable = [256]Flags{
	0x00: rm, 0x01: rm, 0x02: rm, 0x03: rm, 0x04: i8, 0x05: i32, 0x06: error, 0x07: error,
	0x08: rm, 0x09: rm, 0x0A: rm, 0x0B: rm, 0x0C: i8, 0x0D: i32, 0x0E: error, 0x0F: error,

	0x10: rm, 0x11: rm, 0x12: rm, 0x13: rm, 0x14: i8, 0x15: i32, 0x16: error, 0x17: error,
	0x18: rm, 0x19: rm, 0x1A: rm, 0x1B: rm, 0x1C: i8, 0x1D: i32, 0x1E: error, 0x1F: error,

	0x20: rm, 0x21: rm, 0x22: rm, 0x23: rm, 0x24: i8, 0x25: i32, 0x26: error, 0x27: error,
	0x28: rm, 0x29: rm, 0x2A: rm, 0x2B: rm, 0x2C: i8, 0x2D: i32, 0x2E: error, 0x2F: error,

	0x30: rm, 0x31: rm, 0x32: rm, 0x33: rm, 0x34: i8, 0x35: i32, 0x36: error, 0x37: error,
	0x38: rm, 0x39: rm, 0x3A: rm, 0x3B: rm, 0x3C: i8, 0x3D: i32, 0x3E: error, 0x3F: error,

	0x40: error, 0x41: error, 0x42: error, 0x43: error, 0x44: error, 0x45: error, 0x46: error, 0x47: error,
	0x48: error, 0x49: error, 0x4A: error, 0x4B: error, 0x4C: error, 0x4D: error, 0x4E: error, 0x4F: error,

	0x50: none, 0x51: none, 0x52: none, 0x53: none, 0x54: none, 0x55: none, 0x56: none, 0x57: none,
	0x58: none, 0x59: none, 0x5A: none, 0x5B: none, 0x5C: none, 0x5D: none, 0x5E: none, 0x5F: none,

	0x60: error, 0x61: error, 0x62: error, 0x63: rm, 0x64: error, 0x65: error, 0x66: error, 0x67: error,
	0x68: i32, 0x69: rm | i32, 0x6A: i8, 0x6B: rm | i8, 0x6C: none, 0x6D: none, 0x6E: none, 0x6F: none,

	0x70: r8, 0x71: r8, 0x72: r8, 0x73: r8, 0x74: r8, 0x75: r8, 0x76: r8, 0x77: r8,
	0x78: r8, 0x79: r8, 0x7A: r8, 0x7B: r8, 0x7C: r8, 0x7D: r8, 0x7E: r8, 0x7F: r8,

	0x80: ex | i8, 0x81: ex | i32, 0x82: error, 0x83: ex | i8, 0x84: rm, 0x85: rm, 0x86: rm, 0x87: rm,
	0x88: rm, 0x89: rm, 0x8A: rm, 0x8B: rm, 0x8C: rm, 0x8D: rm, 0x8E: rm, 0x8F: ex,

	0x90: none, 0x91: none, 0x92: none, 0x93: none, 0x94: none, 0x95: none, 0x96: none, 0x97: none,
	0x98: none, 0x99: none, 0x9A: error, 0x9B: error, 0x9C: none, 0x9D: none, 0x9E: none, 0x9F: none,

	0xA0: am, 0xA1: am, 0xA2: am, 0xA3: am, 0xA4: none, 0xA5: none, 0xA6: none, 0xA7: none,
	0xA8: i8, 0xA9: i32, 0xAA: none, 0xAB: none, 0xAC: none, 0xAD: none, 0xAE: none, 0xAF: none,

	0xB0: i8, 0xB1: i8, 0xB2: i8, 0xB3: i8, 0xB4: i8, 0xB5: i8, 0xB6: i8, 0xB7: i8,
	0xB8: rw | i32, 0xB9: rw | i32, 0xBA: rw | i32, 0xBB: rw | i32, 0xBC: rw | i32, 0xBD: rw | i32, 0xBE: rw | i32, 0xBF: rw | i32,

	0xC0: ex | i8, 0xC1: ex | i8, 0xC2: i16, 0xC3: none, 0xC4: error, 0xC5: error, 0xC6: ex | i8, 0xC7: ex | i32,
	0xC8: i16 | i8, 0xC9: none, 0xCA: i16, 0xCB: none, 0xCC: none, 0xCD: i8, 0xCE: none, 0xCF: none,

	0xD0: ex, 0xD1: ex, 0xD2: ex, 0xD3: ex, 0xD4: error, 0xD5: error, 0xD6: error, 0xD7: none,
	0xD8: ex, 0xD9: ex, 0xDA: ex, 0xDB: ex, 0xDC: ex, 0xDD: ex, 0xDE: ex, 0xDF: ex,

	0xE0: r8, 0xE1: r8, 0xE2: r8, 0xE3: r8, 0xE4: i8, 0xE5: i8, 0xE6: i8, 0xE7: i8,
	0xE8: r32, 0xE9: r32, 0xEA: error, 0xEB: r8, 0xEC: none, 0xED: none, 0xEE: none, 0xEF: none,

	0xF0: none, 0xF1: none, 0xF2: error, 0xF3: error, 0xF4: none, 0xF5: none, 0xF6: error, 0xF7: error,
	0xF8: none, 0xF9: none, 0xFA: none, 0xFB: none, 0xFC: none, 0xFD: none, 0xFE: rm, 0xFF: ex,
}

// table0F is T_0F: the 0x0F xx secondary opcode space.
var table0F = [256]Flags{
	0x00: ex, 0x01: ex, 0x02: rm, 0x03: rm, 0x04: error, 0x05: error, 0x06: none, 0x07: error,
	0x08: none, 0x09: none, 0x0A: error, 0x0B: none, 0x0C: error, 0x0D: rm, 0x0E: none, 0x0F: error,

	0x10: rm, 0x11: rm, 0x12: rm, 0x13: rm, 0x14: rm, 0x15: rm, 0x16: rm, 0x17: rm,
	0x18: ex, 0x19: rm, 0x1A: rm, 0x1B: rm, 0x1C: rm, 0x1D: rm, 0x1E: rm, 0x1F: ex,

	0x20: rm, 0x21: rm, 0x22: rm, 0x23: rm, 0x24: rm, 0x25: error, 0x26: rm, 0x27: error,
	0x28: rm, 0x29: rm, 0x2A: rm, 0x2B: rm, 0x2C: rm, 0x2D: rm, 0x2E: rm, 0x2F: rm,

	0x30: none, 0x31: none, 0x32: none, 0x33: none, 0x34: none, 0x35: none, 0x36: error, 0x37: none,
	0x38: error, 0x39: error, 0x3A: error, 0x3B: error, 0x3C: error, 0x3D: error, 0x3E: error, 0x3F: error,

	0x40: rm, 0x41: rm, 0x42: rm, 0x43: rm, 0x44: rm, 0x45: rm, 0x46: rm, 0x47: rm,
	0x48: rm, 0x49: rm, 0x4A: rm, 0x4B: rm, 0x4C: rm, 0x4D: rm, 0x4E: rm, 0x4F: rm,

	0x50: rm, 0x51: rm, 0x52: rm, 0x53: rm, 0x54: rm, 0x55: rm, 0x56: rm, 0x57: rm,
	0x58: rm, 0x59: rm, 0x5A: rm, 0x5B: rm, 0x5C: rm, 0x5D: rm, 0x5E: rm, 0x5F: rm,

	0x60: rm, 0x61: rm, 0x62: rm, 0x63: rm, 0x64: rm, 0x65: rm, 0x66: rm, 0x67: rm,
	0x68: rm, 0x69: rm, 0x6A: rm, 0x6B: rm, 0x6C: rm, 0x6D: rm, 0x6E: rm, 0x6F: rm,

	0x70: rm | i8, 0x71: ex | i8, 0x72: ex | i8, 0x73: ex | i8, 0x74: rm, 0x75: rm, 0x76: rm, 0x77: none,
	0x78: rm, 0x79: rm, 0x7A: error, 0x7B: error, 0x7C: rm, 0x7D: rm, 0x7E: rm, 0x7F: rm,

	0x80: r32, 0x81: r32, 0x82: r32, 0x83: r32, 0x84: r32, 0x85: r32, 0x86: r32, 0x87: r32,
	0x88: r32, 0x89: r32, 0x8A: r32, 0x8B: r32, 0x8C: r32, 0x8D: r32, 0x8E: r32, 0x8F: r32,

	0x90: ex, 0x91: ex, 0x92: ex, 0x93: ex, 0x94: ex, 0x95: ex, 0x96: ex, 0x97: ex,
	0x98: ex, 0x99: ex, 0x9A: ex, 0x9B: ex, 0x9C: ex, 0x9D: ex, 0x9E: ex, 0x9F: ex,

	0xA0: none, 0xA1: none, 0xA2: none, 0xA3: rm, 0xA4: rm | i8, 0xA5: rm, 0xA6: error, 0xA7: error,
	0xA8: none, 0xA9: none, 0xAA: none, 0xAB: rm, 0xAC: rm | i8, 0xAD: rm, 0xAE: ex, 0xAF: rm,

	0xB0: rm, 0xB1: rm, 0xB2: rm, 0xB3: rm, 0xB4: rm, 0xB5: rm, 0xB6: rm, 0xB7: rm,
	0xB8: rm, 0xB9: none, 0xBA: ex | i8, 0xBB: rm, 0xBC: rm, 0xBD: rm, 0xBE: rm, 0xBF: rm,

	0xC0: rm, 0xC1: rm, 0xC2: rm | i8, 0xC3: rm, 0xC4: rm | i8, 0xC5: rm | i8, 0xC6: rm | i8, 0xC7: ex,
	0xC8: rm, 0xC9: rm, 0xCA: rm, 0xCB: rm, 0xCC: rm, 0xCD: rm, 0xCE: rm, 0xCF: rm,

	0xD0: rm, 0xD1: rm, 0xD2: rm, 0xD3: rm, 0xD4: rm, 0xD5: rm, 0xD6: rm, 0xD7: rm,
	0xD8: rm, 0xD9: rm, 0xDA: rm, 0xDB: rm, 0xDC: rm, 0xDD: rm, 0xDE: rm, 0xDF: rm,

	0xE0: rm, 0xE1: rm, 0xE2: rm, 0xE3: rm, 0xE4: rm, 0xE5: rm, 0xE6: rm, 0xE7: rm,
	0xE8: rm, 0xE9: rm, 0xEA: rm, 0xEB: rm, 0xEC: rm, 0xED: rm, 0xEE: rm, 0xEF: rm,

	0xF0: rm, 0xF1: rm, 0xF2: rm, 0xF3: rm, 0xF4: rm, 0xF5: rm, 0xF6: rm, 0xF7: rm,
	0xF8: rm, 0xF9: rm, 0xFA: rm, 0xFB: rm, 0xFC: rm, 0xFD: rm, 0xFE: rm, 0xFF: rm,
}

// table38 is T_0F38: the 0x0F 0x38 xx escape space.
var table38 = [256]Flags{
	0x00: rm, 0x01: rm, 0x02: rm, 0x03: rm, 0x04: rm, 0x05: rm, 0x06: rm, 0x07: rm,
	0x08: rm, 0x09: rm, 0x0A: rm, 0x0B: rm, 0x0C: vx | rm, 0x0D: vx | rm, 0x0E: error, 0x0F: error,

	0x10: mp | rm, 0x11: error, 0x12: error, 0x13: error, 0x14: mp | rm, 0x15: mp | rm, 0x16: error, 0x17: mp | rm,
	0x18: vx | rm, 0x19: error, 0x1A: vx | rm, 0x1B: error, 0x1C: rm, 0x1D: rm, 0x1E: rm, 0x1F: error,

	0x20: mp | rm, 0x21: mp | rm, 0x22: mp | rm, 0x23: mp | rm, 0x24: mp | rm, 0x25: mp | rm, 0x26: error, 0x27: error,
	0x28: mp | rm, 0x29: mp | rm, 0x2A: mp | rm, 0x2B: mp | rm, 0x2C: vx | rm, 0x2D: vx | rm, 0x2E: error, 0x2F: error,

	0x30: mp | rm, 0x31: mp | rm, 0x32: mp | rm, 0x33: mp | rm, 0x34: mp | rm, 0x35: mp | rm, 0x36: error, 0x37: mp | rm,
	0x38: mp | rm, 0x39: mp | rm, 0x3A: mp | rm, 0x3B: mp | rm, 0x3C: mp | rm, 0x3D: mp | rm, 0x3E: mp | rm, 0x3F: mp | rm,

	0x40: mp | rm, 0x41: mp | rm, 0x42: error, 0x43: error, 0x44: error, 0x45: error, 0x46: error, 0x47: error,
	0x48: error, 0x49: error, 0x4A: error, 0x4B: error, 0x4C: error, 0x4D: error, 0x4E: error, 0x4F: error,

	0x50: error, 0x51: error, 0x52: error, 0x53: error, 0x54: error, 0x55: error, 0x56: error, 0x57: error,
	0x58: vx | rm, 0x59: vx | rm, 0x5A: error, 0x5B: error, 0x5C: error, 0x5D: error, 0x5E: error, 0x5F: error,

	0x60: error, 0x61: error, 0x62: error, 0x63: error, 0x64: error, 0x65: error, 0x66: error, 0x67: error,
	0x68: error, 0x69: error, 0x6A: error, 0x6B: error, 0x6C: error, 0x6D: error, 0x6E: error, 0x6F: error,

	0x70: error, 0x71: error, 0x72: error, 0x73: error, 0x74: error, 0x75: error, 0x76: error, 0x77: error,
	0x78: vx | rm, 0x79: vx | rm, 0x7A: error, 0x7B: error, 0x7C: error, 0x7D: error, 0x7E: error, 0x7F: error,

	0x80: mp | rm, 0x81: mp | rm, 0x82: error, 0x83: error, 0x84: error, 0x85: error, 0x86: error, 0x87: error,
	0x88: error, 0x89: error, 0x8A: error, 0x8B: error, 0x8C: error, 0x8D: error, 0x8E: error, 0x8F: error,

	0x90: error, 0x91: error, 0x92: error, 0x93: error, 0x94: error, 0x95: error, 0x96: vx | rm, 0x97: vx | rm,
	0x98: vx | rm, 0x99: error, 0x9A: vx | rm, 0x9B: error, 0x9C: vx | rm, 0x9D: error, 0x9E: vx | rm, 0x9F: error,

	0xA0: error, 0xA1: error, 0xA2: error, 0xA3: error, 0xA4: error, 0xA5: error, 0xA6: vx | rm, 0xA7: vx | rm,
	0xA8: vx | rm, 0xA9: error, 0xAA: vx | rm, 0xAB: error, 0xAC: vx | rm, 0xAD: error, 0xAE: vx | rm, 0xAF: error,

	0xB0: error, 0xB1: error, 0xB2: error, 0xB3: error, 0xB4: error, 0xB5: error, 0xB6: vx | rm, 0xB7: vx | rm,
	0xB8: vx | rm, 0xB9: error, 0xBA: vx | rm, 0xBB: error, 0xBC: vx | rm, 0xBD: error, 0xBE: vx | rm, 0xBF: error,

	0xC0: error, 0xC1: error, 0xC2: error, 0xC3: error, 0xC4: error, 0xC5: error, 0xC6: error, 0xC7: error,
	0xC8: rm, 0xC9: rm, 0xCA: rm, 0xCB: rm, 0xCC: rm, 0xCD: rm, 0xCE: error, 0xCF: error,

	0xD0: error, 0xD1: error, 0xD2: error, 0xD3: error, 0xD4: error, 0xD5: error, 0xD6: error, 0xD7: error,
	0xD8: error, 0xD9: error, 0xDA: error, 0xDB: rm, 0xDC: rm, 0xDD: rm, 0xDE: rm, 0xDF: rm,

	0xE0: error, 0xE1: error, 0xE2: error, 0xE3: error, 0xE4: error, 0xE5: error, 0xE6: error, 0xE7: error,
	0xE8: error, 0xE9: error, 0xEA: error, 0xEB: error, 0xEC: error, 0xED: error, 0xEE: error, 0xEF: error,

	0xF0: rm, 0xF1: rm, 0xF2: error, 0xF3: error, 0xF4: error, 0xF5: error, 0xF6: rm, 0xF7: error,
	0xF8: error, 0xF9: error, 0xFA: error, 0xFB: error, 0xFC: error, 0xFD: error, 0xFE: error, 0xFF: error,
}

// table3A is T_0F3A: the 0x0F 0x3A xx escape space.
var table3A = [256]Flags{
	0x00: error, 0x01: error, 0x02: error, 0x03: error, 0x04: error, 0x05: error, 0x06: vx | rm | i8, 0x07: error,
	0x08: mp | rm | i8, 0x09: mp | rm | i8, 0x0A: mp | rm | i8, 0x0B: mp | rm | i8, 0x0C: mp | rm | i8, 0x0D: mp | rm | i8, 0x0E: mp | rm | i8, 0x0F: rm,

	0x10: error, 0x11: error, 0x12: error, 0x13: error, 0x14: mp | rm | i8, 0x15: mp | rm | i8, 0x16: mp | rm | i8, 0x17: mp | rm | i8,
	0x18: vx | rm | i8, 0x19: vx | rm | i8, 0x1A: error, 0x1B: error, 0x1C: error, 0x1D: error, 0x1E: error, 0x1F: error,

	0x20: mp | rm | i8, 0x21: mp | rm | i8, 0x22: mp | rm | i8, 0x23: error, 0x24: error, 0x25: error, 0x26: error, 0x27: error,
	0x28: error, 0x29: error, 0x2A: error, 0x2B: error, 0x2C: error, 0x2D: error, 0x2E: error, 0x2F: error,

	0x30: error, 0x31: error, 0x32: error, 0x33: error, 0x34: error, 0x35: error, 0x36: error, 0x37: error,
	0x38: error, 0x39: error, 0x3A: error, 0x3B: error, 0x3C: error, 0x3D: error, 0x3E: error, 0x3F: error,

	0x40: mp | rm, 0x41: mp | rm, 0x42: mp | rm | i8, 0x43: error, 0x44: error, 0x45: error, 0x46: error, 0x47: error,
	0x48: error, 0x49: error, 0x4A: vx | rm | i8, 0x4B: vx | rm | i8, 0x4C: vx | rm | i8, 0x4D: error, 0x4E: error, 0x4F: error,

	0x50: error, 0x51: error, 0x52: error, 0x53: error, 0x54: error, 0x55: error, 0x56: error, 0x57: error,
	0x58: error, 0x59: error, 0x5A: error, 0x5B: error, 0x5C: error, 0x5D: error, 0x5E: error, 0x5F: error,

	0x60: mp | rm | i8, 0x61: mp | rm | i8, 0x62: mp | rm | i8, 0x63: mp | rm | i8, 0x64: error, 0x65: error, 0x66: error, 0x67: error,
	0x68: vx | rm | i8, 0x69: error, 0x6A: error, 0x6B: error, 0x6C: error, 0x6D: error, 0x6E: error, 0x6F: error,

	0x70: error, 0x71: error, 0x72: error, 0x73: error, 0x74: error, 0x75: error, 0x76: error, 0x77: error,
	0x78: error, 0x79: error, 0x7A: error, 0x7B: error, 0x7C: error, 0x7D: error, 0x7E: error, 0x7F: error,

	0x80: error, 0x81: error, 0x82: error, 0x83: error, 0x84: error, 0x85: error, 0x86: error, 0x87: error,
	0x88: error, 0x89: error, 0x8A: error, 0x8B: error, 0x8C: error, 0x8D: error, 0x8E: error, 0x8F: error,

	0x90: error, 0x91: error, 0x92: error, 0x93: error, 0x94: error, 0x95: error, 0x96: error, 0x97: error,
	0x98: error, 0x99: error, 0x9A: error, 0x9B: error, 0x9C: error, 0x9D: error, 0x9E: error, 0x9F: error,

	0xA0: error, 0xA1: error, 0xA2: error, 0xA3: error, 0xA4: error, 0xA5: error, 0xA6: error, 0xA7: error,
	0xA8: error, 0xA9: error, 0xAA: error, 0xAB: error, 0xAC: error, 0xAD: error, 0xAE: error, 0xAF: error,

	0xB0: error, 0xB1: error, 0xB2: error, 0xB3: error, 0xB4: error, 0xB5: error, 0xB6: error, 0xB7: error,
	0xB8: error, 0xB9: error, 0xBA: error, 0xBB: error, 0xBC: error, 0xBD: error, 0xBE: error, 0xBF: error,

	0xC0: error, 0xC1: error, 0xC2: error, 0xC3: error, 0xC4: error, 0xC5: error, 0xC6: error, 0xC7: error,
	0xC8: error, 0xC9: error, 0xCA: error, 0xCB: error, 0xCC: mp | rm | i8, 0xCD: error, 0xCE: error, 0xCF: error,

	0xD0: error, 0xD1: error, 0xD2: error, 0xD3: error, 0xD4: error, 0xD5: error, 0xD6: error, 0xD7: error,
	0xD8: error, 0xD9: error, 0xDA: error, 0xDB: error, 0xDC: error, 0xDD: error, 0xDE: error, 0xDF: error,

	0xE0: error, 0xE1: error, 0xE2: error, 0xE3: error, 0xE4: error, 0xE5: error, 0xE6: error, 0xE7: error,
	0xE8: error, 0xE9: error, 0xEA: error, 0xEB: error, 0xEC: error, 0xED: error, 0xEE: error, 0xEF: error,

	0xF0: error, 0xF1: error, 0xF2: error, 0xF3: error, 0xF4: error, 0xF5: error, 0xF6: error, 0xF7: error,
	0xF8: error, 0xF9: error, 0xFA: error, 0xFB: error, 0xFC: error, 0xFD: error, 0xFE: error, 0xFF: error,
}
