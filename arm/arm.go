package arm

/*
 * Minimal ARM32 length decoder.
 *
 * Decoding never strictly requires PC to be word-aligned; a misaligned
 * offset still decodes, it just carries the alignment error alongside
 * whatever else was found. Only the ARM instruction set is modeled in
 * depth - Thumb/Thumb2 report cpu_state and stop, since this decoder
 * only ever sees the fixed 32-bit ARM encoding.
 */

import "github.com/bishopfox/lito"

// CPUState selects which instruction set to decode as.
type CPUState uint8

const (
	StateARM CPUState = iota
	StateThumb
	StateThumb2
)

// Cond is ARM's 4-bit execution condition field.
type Cond uint8

const (
	CondEQ Cond = iota
	CondNE
	CondHS
	CondLO
	CondMI
	CondPL
	CondVS
	CondVC
	CondHI
	CondLS
	CondGE
	CondLT
	CondGT
	CondLE
	CondAL
	CondNV
)

const wordSize = 4

// Instruction is the decoded ARM record.
type Instruction struct {
	Length int
	Cond   Cond

	IsBranch bool
	HasLink  bool
	Rel      int32
	RelAbs   uint64

	IsSWI   bool
	SWIData uint32

	Errors lito.ErrorFlags
}

// Decode parses one instruction from buf at offset start under the
// given CPU state. In ARM state the branch and SWI families are decoded;
// every other ARM word has length 4 and an opcode error. Thumb/Thumb2
// report cpu_state and stop with length 0, since this decoder has no
// Thumb table.
func Decode(buf []byte, start int, state CPUState) Instruction {
	var inst Instruction

	align := wordSize
	if state == StateThumb || state == StateThumb2 {
		align = 2
	}
	if start%align != 0 {
		inst.Errors |= lito.ErrAlignment
	}

	if state != StateARM {
		inst.Errors |= lito.ErrCPUState
		return inst
	}

	cur := lito.NewCursor(buf, start)
	word := cur.FetchLE(wordSize)

	if cur.EOF() {
		inst.Errors |= lito.ErrEOF
		inst.Length = cur.Length()
		return inst
	}

	inst.Cond = Cond((word >> 28) & 0x0F)
	inst.Length = wordSize

	const (
		branchMask  = 0x0E000000
		branchValue = 0x0A000000
		swiMask     = 0x0F000000
		swiValue    = 0x0F000000
	)

	switch {
	case word&branchMask == branchValue:
		inst.IsBranch = true
		inst.HasLink = word&0x01000000 != 0

		offset := int32(word&0x00FFFFFF) << 2
		offset = (offset << 6) >> 6 // sign-extend the 26-bit field
		inst.Rel = offset

		// ARM's own PC reads as the address of the current
		// instruction plus two words, from the three-stage pipeline.
		base := uint64(start) + 2*wordSize
		inst.RelAbs = base + uint64(int64(offset))

	case word&swiMask == swiValue:
		inst.IsSWI = true
		inst.SWIData = word & 0x00FFFFFF

	default:
		inst.Errors |= lito.ErrOpcode
	}

	return inst
}
