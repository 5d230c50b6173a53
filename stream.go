package lito

// The helpers below are buffer-level conveniences grounded on the
// teacher's own InstructionStream (TotalLength, ControlFlowTargets,
// Validate and InstructionBoundaries mirror GetTotalLength,
// GetControlFlowInstructions, ValidateCodeBlock and
// FindInstructionBoundaries), regeneralized to work over any Iterator
// rather than being tied to one architecture's concrete type.

// TotalLength walks it across its whole buffer from offset 0 and
// returns the total number of bytes consumed across every decoded
// instruction, including the single-byte skips taken on opcode errors.
func TotalLength(it Iterator) int {
	it.SetPC(0)
	total := 0
	for it.HasNext() {
		total += it.Decode().Length
		it.Next()
	}
	return total
}

// ControlFlowTargets walks it across its whole buffer from offset 0 and
// returns the absolute branch/call target of every instruction carrying
// a PC-relative displacement, in encounter order.
func ControlFlowTargets(it Iterator) []uint64 {
	it.SetPC(0)
	var targets []uint64
	for it.HasNext() {
		if r := it.Decode(); r.HasRel {
			targets = append(targets, r.RelAbs)
		}
		it.Next()
	}
	return targets
}

// Validate walks it across its whole buffer from offset 0 and, for the
// first instruction whose errors go beyond the merely advisory
// eof/alignment kinds, returns its error bitset with the eof and
// alignment bits cleared. A nil result means the whole
// buffer decoded without a structural legality violation.
func Validate(it Iterator) error {
	it.SetPC(0)
	for it.HasNext() {
		if bad := it.Decode().Errors &^ (ErrEOF | ErrAlignment); !bad.None() {
			return bad
		}
		it.Next()
	}
	return nil
}

// InstructionBoundaries walks it across its whole buffer from offset 0
// and returns the starting offset of every instruction it decoded, so a
// caller can binary-search "does this offset land mid-instruction".
func InstructionBoundaries(it Iterator) []int {
	it.SetPC(0)
	var bounds []int
	for it.HasNext() {
		bounds = append(bounds, it.PC())
		it.Decode()
		it.Next()
	}
	return bounds
}
