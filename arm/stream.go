package arm

import "github.com/bishopfox/lito"

// Stream adapts repeated calls to Decode into a lito.Iterator
// over one ARM code buffer.
type Stream struct {
	Code  []byte
	State CPUState
	pc    int
	len   int
}

func NewStream(code []byte, state CPUState) *Stream {
	return &Stream{Code: code, State: state}
}

func (s *Stream) Decode() lito.DecodeResult {
	inst := Decode(s.Code, s.pc, s.State)
	s.len = inst.Length
	return lito.DecodeResult{
		Length: inst.Length,
		HasRel: inst.IsBranch,
		RelAbs: inst.RelAbs,
		Errors: inst.Errors,
	}
}

func (s *Stream) Next() {
	if s.len == 0 {
		s.len = wordSize
	}
	s.pc += s.len
	s.len = 0
}

func (s *Stream) HasNext() bool {
	return s.pc+s.len < len(s.Code)
}

func (s *Stream) SetPC(p int) {
	s.pc = p
	s.len = 0
}

func (s *Stream) PC() int {
	return s.pc
}
