package x86

/*
 * x86/x86-64 length decoder.
 *
 * A table-driven state machine that walks legacy prefixes, optional
 * VEX/EVEX escapes, 1-3 opcode bytes, an optional ModR/M+SIB pair,
 * displacement, and up to two immediates. Decode is a pure function of
 * (buffer, offset, mode): no shared state, no I/O, safe to call from
 * many goroutines over the same read-only buffer.
 */

import "github.com/bishopfox/lito"

// Mode selects 32-bit or 64-bit addressing/REX availability.
type Mode int

const (
	Mode32 Mode = iota
	Mode64
)

// ModRMMode is the decoded addressing mode of a ModR/M byte.
type ModRMMode uint8

const (
	ModeMem ModRMMode = iota
	ModeMemDisp8
	ModeMemDisp32
	ModeReg
)

// RoundMode is the EVEX rounding-control value, valid only when VexSAE is set.
type RoundMode uint8

const (
	RoundNone RoundMode = iota
	RoundNear
	RoundFloor
	RoundCeil
	RoundTrunc
)

const lockPrefix = 0xF0

// Instruction is the decoded-instruction record. It is produced
// fresh by Decode and never mutated by the caller afterward.
type Instruction struct {
	Mode   Mode
	Length int

	// Prefixes holds, per legacy-prefix group, the first prefix byte
	// observed from that group (0 means none): [0]=lock/rep, [1]=segment,
	// [2]=0x66 operand-size, [3]=0x67 address-size.
	Prefixes [4]byte

	HasREX                 bool
	RexW, RexR, RexX, RexB bool

	HasVEX     bool
	VexSize    int
	VexRR      bool
	VexReg     uint8
	VexOpmask  uint8
	VexZero    bool
	VexRoundTo RoundMode
	VexVecBits uint16

	OpcodeLength int
	Opcode       [3]byte

	HasModRM bool
	ModRMMod ModRMMode
	ModRMReg uint8
	ModRMRM  uint8

	HasSIB   bool
	SIBScale uint8
	SIBIndex uint8
	SIBBase  uint8

	HasDisp  bool
	DispSize uint8
	Disp     int32

	HasImm, HasImm2   bool
	ImmSize, Imm2Size uint8
	Imm, Imm2         uint64

	HasRel  bool
	RelSize uint8
	Rel     int32
	RelAbs  uint64

	Errors lito.ErrorFlags

	vexLRaw uint8 // canonical L/L'L storage; see VexL/VexLL/vex_sae aliasing note below
	vexSAE  bool  // canonical bit aliased as VexSAE/VexRC/VexBroadcast

	flags Flags
	cur   lito.Cursor
	start int
}

// VexL reports the single-bit AVX vector-width selector (0=128, 1=256),
// meaningful for the 2-byte and 3-byte VEX encodings.
func (i *Instruction) VexL() bool { return i.vexLRaw&0x01 != 0 }

// VexLL returns the 2-bit L'L vector-width field, meaningful for EVEX.
// When VexSAE is set the raw L'L bits are a rounding mode instead; they
// are reported through VexRoundTo and VexLL then returns 0b10 (512 bits).
func (i *Instruction) VexLL() uint8 { return i.vexLRaw }

// VexSAE, VexRC and VexBroadcast are three names for the same EVEX
// b-bit: suppress-all-exceptions on register-to-register forms,
// rounding-control when combined with L'L, or broadcast on memory
// forms. The source data models these as unioned fields; this keeps a
// single canonical bit and exposes it under every name a caller might
// look for instead of replicating storage three times.
func (i *Instruction) VexSAE() bool       { return i.vexSAE }
func (i *Instruction) VexRC() bool        { return i.vexSAE }
func (i *Instruction) VexBroadcast() bool { return i.vexSAE }

// Decode parses exactly one instruction from buf starting at offset
// start and returns the resulting record. It never panics: running off
// the end of buf sets the eof error flag and the record reflects
// whatever was decoded before that point.
func Decode(buf []byte, start int, mode Mode) Instruction {
	inst := Instruction{Mode: mode, start: start}
	inst.cur = lito.NewCursor(buf, start)

	inst.decodePrefixes()
	inst.decodeOpcode()

	if inst.flags == FlagError {
		inst.Errors |= lito.ErrOpcode
		inst.finish(1)
		return inst
	}

	if inst.flags.Has(FlagRM) {
		inst.decodeModRM()
		if inst.HasSIB {
			inst.decodeSIB()
		}
		inst.rexExtendModRM()
		if inst.HasDisp {
			inst.readDisp()
		}
	} else if inst.Prefixes[0] == lockPrefix {
		inst.Errors |= lito.ErrLock
	}

	inst.readImm()
	inst.finish(inst.cur.Length())
	return inst
}

func (i *Instruction) finish(length int) {
	if length > 15 {
		length = 15
		i.Errors |= lito.ErrLength
	}
	if i.cur.EOF() {
		i.Errors |= lito.ErrEOF
	}
	i.Length = length
}
