package x86

import (
	"testing"

	"github.com/bishopfox/lito"
)

func TestInstructionLengths(t *testing.T) {
	tests := []struct {
		name string
		code []byte
		want int
	}{
		{"NOP", []byte{0x90}, 1},
		{"PUSH EAX", []byte{0x50}, 1},
		{"POP EDI", []byte{0x5F}, 1},
		{"RET", []byte{0xC3}, 1},
		{"INT3", []byte{0xCC}, 1},
		{"CMP AL imm8", []byte{0x3C, 0x05}, 2},
		{"ADD reg reg", []byte{0x01, 0xC0}, 2},
		{"REP MOVSB", []byte{0xF3, 0xA4}, 2},
		{"SEG MOV", []byte{0x64, 0x8B, 0x00}, 3},
		{"MOV EAX imm32", []byte{0xB8, 0x78, 0x56, 0x34, 0x12}, 5},
		{"JMP rel32", []byte{0xE9, 0x00, 0x00, 0x00, 0x00}, 5},
		{"MOV SIB disp32", []byte{0x8B, 0x84, 0x88, 0x00, 0x00, 0x00, 0x00}, 7},
		{"ENTER", []byte{0xC8, 0x10, 0x00, 0x00}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := Decode(tt.code, 0, Mode32)
			if !inst.Errors.None() {
				t.Fatalf("errors = %v, want none", inst.Errors)
			}
			if inst.Length != tt.want {
				t.Fatalf("length = %d, want %d", inst.Length, tt.want)
			}
		})
	}
}

func TestDecodeNOP(t *testing.T) {
	inst := Decode([]byte{0x90}, 0, Mode32)
	if inst.Length != 1 {
		t.Fatalf("length = %d, want 1", inst.Length)
	}
	if inst.Prefixes != ([4]byte{}) {
		t.Fatalf("prefixes = %v, want none", inst.Prefixes)
	}
	if inst.OpcodeLength != 1 || inst.Opcode[0] != 0x90 {
		t.Fatalf("opcode = %v, want [0x90]", inst.Opcode[:inst.OpcodeLength])
	}
	if inst.HasModRM || inst.HasImm {
		t.Fatalf("unexpected modrm/imm on NOP")
	}
	if !inst.Errors.None() {
		t.Fatalf("errors = %v, want none", inst.Errors)
	}
}

func TestDecodeShortJump(t *testing.T) {
	buf := make([]byte, 0x12)
	copy(buf[0x10:], []byte{0x75, 0xF1})
	inst := Decode(buf, 0x10, Mode32)
	if inst.Length != 2 {
		t.Fatalf("length = %d, want 2", inst.Length)
	}
	if !inst.HasRel {
		t.Fatal("expected has_rel")
	}
	if inst.Rel != -15 {
		t.Fatalf("rel = %d, want -15", inst.Rel)
	}
	if inst.RelAbs != 0x03 {
		t.Fatalf("rel_abs = 0x%x, want 0x03", inst.RelAbs)
	}
}

func TestDecodeModRMDisp8(t *testing.T) {
	inst := Decode([]byte{0x8B, 0x45, 0x08}, 0, Mode32)
	if inst.Length != 3 {
		t.Fatalf("length = %d, want 3", inst.Length)
	}
	if inst.ModRMMod != ModeMemDisp8 {
		t.Fatalf("modrm mode = %v, want mem+disp8", inst.ModRMMod)
	}
	if inst.ModRMReg != 0 || inst.ModRMRM != 5 {
		t.Fatalf("reg/rm = %d/%d, want 0/5", inst.ModRMReg, inst.ModRMRM)
	}
	if !inst.HasDisp || inst.DispSize != 1 || inst.Disp != 8 {
		t.Fatalf("disp = %+v, want size 1 value 8", inst)
	}
}

func TestDecodeSIB(t *testing.T) {
	inst := Decode([]byte{0x0F, 0xB6, 0x0C, 0x16}, 0, Mode32)
	if inst.Length != 4 {
		t.Fatalf("length = %d, want 4", inst.Length)
	}
	if inst.OpcodeLength != 2 || inst.Opcode[0] != 0x0F || inst.Opcode[1] != 0xB6 {
		t.Fatalf("opcode = %v, want [0x0F 0xB6]", inst.Opcode[:inst.OpcodeLength])
	}
	if inst.ModRMMod != ModeMem || inst.ModRMRM != 4 || !inst.HasSIB {
		t.Fatalf("expected mem mode with SIB, got %+v", inst)
	}
	if inst.SIBScale != 1 || inst.SIBIndex != 2 || inst.SIBBase != 6 {
		t.Fatalf("sib = %+v, want scale 1 index 2 base 6", inst)
	}
}

func TestDecodeRelCall(t *testing.T) {
	inst := Decode([]byte{0xE8, 0x00, 0x01, 0x00, 0x00}, 0, Mode32)
	if inst.Length != 5 {
		t.Fatalf("length = %d, want 5", inst.Length)
	}
	if inst.Rel != 0x100 {
		t.Fatalf("rel = 0x%x, want 0x100", inst.Rel)
	}
	if inst.RelAbs != 0x105 {
		t.Fatalf("rel_abs = 0x%x, want 0x105", inst.RelAbs)
	}
}

func TestDecodeLockOnRegisterDest(t *testing.T) {
	inst := Decode([]byte{0xF0, 0x01, 0xC0}, 0, Mode32)
	if inst.Length != 3 {
		t.Fatalf("length = %d, want 3", inst.Length)
	}
	if !inst.Errors.Has(lito.ErrLock) {
		t.Fatalf("errors = %v, want lock", inst.Errors)
	}
	if inst.ModRMMod != ModeReg {
		t.Fatalf("modrm mode = %v, want reg", inst.ModRMMod)
	}
}

func TestDecodeOperandSizeOverride(t *testing.T) {
	inst := Decode([]byte{0x66, 0xB8, 0x34, 0x12}, 0, Mode32)
	if inst.Length != 4 {
		t.Fatalf("length = %d, want 4", inst.Length)
	}
	if !inst.HasImm || inst.ImmSize != 2 || inst.Imm != 0x1234 {
		t.Fatalf("imm = %+v, want size 2 value 0x1234", inst)
	}
}

func TestDecodeAddressSizeOverrideRun(t *testing.T) {
	buf := make([]byte, 17)
	for i := 0; i < 16; i++ {
		buf[i] = 0x67
	}
	buf[16] = 0x90
	inst := Decode(buf, 0, Mode32)
	if inst.Length != 15 {
		t.Fatalf("length = %d, want 15 (clamped)", inst.Length)
	}
	if !inst.Errors.Has(lito.ErrLength) {
		t.Fatalf("errors = %v, want length", inst.Errors)
	}
}

func TestDecodeTwoImmediates(t *testing.T) {
	inst := Decode([]byte{0xC8, 0x10, 0x00, 0x05}, 0, Mode32)
	if inst.Length != 4 {
		t.Fatalf("length = %d, want 4", inst.Length)
	}
	if !inst.HasImm || inst.ImmSize != 2 || inst.Imm != 0x0010 {
		t.Fatalf("imm = %+v, want size 2 value 0x10", inst)
	}
	if !inst.HasImm2 || inst.Imm2Size != 1 || inst.Imm2 != 0x05 {
		t.Fatalf("imm2 = %+v, want size 1 value 0x05", inst)
	}
}

func TestStreamIterator(t *testing.T) {
	s := NewStream([]byte{0x90, 0x90, 0xC3}, Mode32)
	var total int
	for s.HasNext() {
		r := s.Decode()
		total += r.Length
		s.Next()
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
}

func TestF6ImmediateFixup(t *testing.T) {
	// F6 /0 is TEST r/m8, imm8; every other /reg takes no immediate.
	inst := Decode([]byte{0xF6, 0xC0, 0x05}, 0, Mode32)
	if inst.Length != 3 {
		t.Fatalf("length = %d, want 3", inst.Length)
	}
	if !inst.HasImm || inst.ImmSize != 1 || inst.Imm != 5 {
		t.Fatalf("imm = %+v, want size 1 value 5", inst)
	}

	inst = Decode([]byte{0xF6, 0xD0}, 0, Mode32)
	if inst.Length != 2 {
		t.Fatalf("length = %d, want 2", inst.Length)
	}
	if inst.HasImm {
		t.Fatal("F6 /2 must not carry an immediate")
	}
}

func TestF7REXWImmediate(t *testing.T) {
	// REX.W F7 /0 widens the TEST immediate to 64 bits.
	buf := []byte{0x48, 0xF7, 0xC0, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x00}
	inst := Decode(buf, 0, Mode64)
	if inst.Length != 11 {
		t.Fatalf("length = %d, want 11", inst.Length)
	}
	if !inst.HasImm || inst.ImmSize != 8 {
		t.Fatalf("imm = %+v, want size 8", inst)
	}
	if inst.Imm != 0x0077665544332211 {
		t.Fatalf("imm = %#x, want 0x0077665544332211", inst.Imm)
	}
}

func TestREXWWinsOverOperandSizeOverride(t *testing.T) {
	// 66 48 B8: REX.W and 0x66 both present; REX.W decides the width.
	buf := []byte{0x66, 0x48, 0xB8, 1, 2, 3, 4, 5, 6, 7, 8}
	inst := Decode(buf, 0, Mode64)
	if inst.Length != 11 {
		t.Fatalf("length = %d, want 11", inst.Length)
	}
	if inst.ImmSize != 8 {
		t.Fatalf("imm size = %d, want 8", inst.ImmSize)
	}
}

func TestMoffs(t *testing.T) {
	// A1: mov eax/rax, moffs. 64-bit address in Mode64, halved by 0x67.
	inst := Decode([]byte{0xA1, 1, 2, 3, 4, 5, 6, 7, 8}, 0, Mode64)
	if inst.Length != 9 || inst.ImmSize != 8 {
		t.Fatalf("length/imm = %d/%d, want 9/8", inst.Length, inst.ImmSize)
	}

	inst = Decode([]byte{0x67, 0xA1, 1, 2, 3, 4}, 0, Mode64)
	if inst.Length != 6 || inst.ImmSize != 4 {
		t.Fatalf("length/imm = %d/%d, want 6/4", inst.Length, inst.ImmSize)
	}
}

func TestSixteenBitAddressing(t *testing.T) {
	// 67 8B 06: mod=00 rm=6 under 16-bit addressing is disp16, no base.
	inst := Decode([]byte{0x67, 0x8B, 0x06, 0x34, 0x12}, 0, Mode32)
	if inst.Length != 5 {
		t.Fatalf("length = %d, want 5", inst.Length)
	}
	if inst.HasSIB {
		t.Fatal("no SIB under 16-bit addressing")
	}
	if !inst.HasDisp || inst.DispSize != 2 || inst.Disp != 0x1234 {
		t.Fatalf("disp = %+v, want size 2 value 0x1234", inst)
	}
}

func TestREXOpcodeExtension(t *testing.T) {
	// FF /4 (jmp r/m) carries the ox flag, so REX.B extends ModR/M.reg
	// rather than REX.R.
	inst := Decode([]byte{0x41, 0xFF, 0xE0}, 0, Mode64)
	if inst.Length != 3 {
		t.Fatalf("length = %d, want 3", inst.Length)
	}
	if inst.ModRMReg != 4|8 {
		t.Fatalf("modrm reg = %d, want 12 (REX.B extended)", inst.ModRMReg)
	}
	if inst.ModRMRM != 0 {
		t.Fatalf("modrm rm = %d, want 0", inst.ModRMRM)
	}
}

func TestDecodeTruncatedBuffer(t *testing.T) {
	inst := Decode([]byte{0x8B}, 0, Mode32)
	if !inst.Errors.Has(lito.ErrEOF) {
		t.Fatalf("errors = %v, want eof", inst.Errors)
	}
}

func TestDecodeInvalidOpcodeResyncLength(t *testing.T) {
	// 0x06 (push es) does not exist in this decoder's opcode space;
	// length 1 lets a driver resynchronize one byte later.
	inst := Decode([]byte{0x06, 0x90}, 0, Mode32)
	if !inst.Errors.Has(lito.ErrOpcode) {
		t.Fatalf("errors = %v, want opcode", inst.Errors)
	}
	if inst.Length != 1 {
		t.Fatalf("length = %d, want 1", inst.Length)
	}
}

func TestVEXTwoByte(t *testing.T) {
	// VEX.128.0F 58 (VADDPS xmm0, xmm1, xmm2): C5 F0 58 D2
	inst := Decode([]byte{0xC5, 0xF0, 0x58, 0xD2}, 0, Mode64)
	if !inst.HasVEX {
		t.Fatal("expected has_vex")
	}
	if inst.VexSize != 2 {
		t.Fatalf("vex_size = %d, want 2", inst.VexSize)
	}
	if inst.OpcodeLength != 2 || inst.Opcode[0] != 0x0F || inst.Opcode[1] != 0x58 {
		t.Fatalf("opcode = %v, want [0x0F 0x58]", inst.Opcode[:inst.OpcodeLength])
	}
	if inst.VexVecBits != 128 {
		t.Fatalf("vec width = %d, want 128", inst.VexVecBits)
	}
}

func TestVEXThreeByteREXConflict(t *testing.T) {
	// A REX prefix ahead of a VEX escape is illegal.
	inst := Decode([]byte{0x41, 0xC4, 0xE1, 0x79, 0x58, 0xC1}, 0, Mode64)
	if !inst.Errors.Has(lito.ErrREX) {
		t.Fatalf("errors = %v, want rex", inst.Errors)
	}
}

func TestVEXLegacyPrefixConflict(t *testing.T) {
	inst := Decode([]byte{0x66, 0xC5, 0xF0, 0x58, 0xD2}, 0, Mode64)
	if !inst.Errors.Has(lito.ErrOpcode) {
		t.Fatalf("errors = %v, want opcode", inst.Errors)
	}
}

func TestVEXEscapeGate32Bit(t *testing.T) {
	// In 32-bit mode 0xC5 is only a VEX escape when the next byte has
	// both top bits set; otherwise it is the (unmodeled) LDS opcode.
	inst := Decode([]byte{0xC5, 0x29}, 0, Mode32)
	if inst.HasVEX {
		t.Fatal("0xC5 with a non-register next byte is not VEX in 32-bit mode")
	}
	if !inst.Errors.Has(lito.ErrOpcode) {
		t.Fatalf("errors = %v, want opcode", inst.Errors)
	}

	inst = Decode([]byte{0xC5, 0xF0, 0x58, 0xD2}, 0, Mode32)
	if !inst.HasVEX || inst.Length != 4 {
		t.Fatalf("expected 2-byte VEX of length 4, got %+v", inst)
	}
}

func TestEVEXRoundingControl(t *testing.T) {
	// EVEX.512 with b=1 (SAE/round) set and L'L = 0b01.
	inst := Decode([]byte{0x62, 0xF1, 0x7C, 0x38, 0x58, 0xC1}, 0, Mode64)
	if !inst.HasVEX || inst.VexSize != 4 {
		t.Fatalf("expected 4-byte EVEX, got %+v", inst)
	}
	if !inst.VexSAE() {
		t.Fatal("expected SAE/round bit set")
	}
	if inst.VexVecBits != 512 {
		t.Fatalf("vec width = %d, want 512", inst.VexVecBits)
	}
}
