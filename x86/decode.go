package x86

import "github.com/bishopfox/lito"

// Stream adapts repeated calls to Decode into a lito.Iterator over
// one code buffer, tracking the current PC and the length of the last
// decode so Next can advance past it.
type Stream struct {
	Code   []byte
	Mode   Mode
	pc     int
	length int
}

// NewStream returns a Stream over code, decoding in the given mode.
func NewStream(code []byte, mode Mode) *Stream {
	return &Stream{Code: code, Mode: mode}
}

func (s *Stream) Decode() lito.DecodeResult {
	inst := Decode(s.Code, s.pc, s.Mode)
	s.length = inst.Length
	return lito.DecodeResult{
		Length: inst.Length,
		HasRel: inst.HasRel,
		RelAbs: inst.RelAbs,
		Errors: inst.Errors,
	}
}

func (s *Stream) Next() {
	if s.length == 0 {
		s.length = 1
	}
	s.pc += s.length
	s.length = 0
}

func (s *Stream) HasNext() bool {
	return s.pc+s.length < len(s.Code)
}

func (s *Stream) SetPC(p int) {
	s.pc = p
	s.length = 0
}

func (s *Stream) PC() int {
	return s.pc
}
