package lito

// DecodeResult is the architecture-neutral summary of a single decode,
// enough for the stream-level helpers below to work over either x86 or
// ARM without caring about their richer per-architecture records.
type DecodeResult struct {
	Length int
	HasRel bool
	RelAbs uint64
	Errors ErrorFlags
}

// Iterator is the public driver contract: decode the instruction
// at the current PC without moving it, then advance by the reported
// length. Architecture packages each implement this over their own
// Decode function; the position itself lives in the iterator, never in
// the decoder, which stays a pure function of (buffer, offset, state).
type Iterator interface {
	// Decode reports the instruction at the current PC. Calling it
	// again without calling Next returns the same result.
	Decode() DecodeResult
	// Next advances the PC by the length of the last Decode call. When
	// that length is 0 (no Decode since the last move, or a zero-length
	// record) it advances by one fixed step instead: 1 byte for x86,
	// 4 bytes for ARM.
	Next()
	// HasNext reports whether PC + last length still lies inside the buffer.
	HasNext() bool
	// SetPC seeks to p and resets the last-decoded length to 0.
	SetPC(p int)
	// PC returns the current position.
	PC() int
}
