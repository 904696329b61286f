package inst

import (
	"strings"
	"testing"
)

// TestParse verifies assembly text is matched to the right form and operands.
func TestParse(t *testing.T) {
	tests := []struct {
		text string
		want Instruction
	}{
		{"LD B, 42", LDrn(B, 42)},
		{"ld b,0x2a", LDrn(B, 42)},
		{"LD B, $2A", LDrn(B, 42)},
		{"LD B, 2Ah", LDrn(B, 42)},
		{"LD A, B", LDrr(A, B)},
		{"LD A, (HL)", LDrHLm(A)},
		{"LD (HL), C", LDHLmr(C)},
		{"LD (HL), 7", LDHLmn(7)},
		{"LD (BC), A", LDrrmA(BC)},
		{"LD A, (DE)", LDArrm(DE)},
		{"LD (0C000h), A", LDmmA(0xC000)},
		{"LD A, (0x1234)", LDAmm(0x1234)},
		{"LD (HL+), A", LDHLIA()},
		{"LD A, (HL+)", LDAHLI()},
		{"LD (HL-), A", LDHLDA()},
		{"LD A, (HL-)", LDAHLD()},
		{"LDH A, (44h)", LDAIOn(0x44)},
		{"LDH (0x80), A", LDIOnA(0x80)},
		{"LD A, (C)", LDAIOC()},
		{"LD (C), A", LDIOCA()},
		{"LD A, I", LDAI()},
		{"LD R, A", LDRA()},
		{"LD HL, 1234h", LDrrnn(HL, 0x1234)},
		{"LD SP, 0xFFFE", LDrrnn(PairSP, 0xFFFE)},
		{"LD HL, (0x2000)", LDHLmm(0x2000)},
		{"LD (0x2000), HL", LDmmHL(0x2000)},
		{"LD DE, (0x2000)", LDrrmm(DE, 0x2000)},
		{"LD (0x2000), BC", LDmmrr(BC, 0x2000)},
		{"LD SP, HL", LDSPHL()},
		{"LD HL, SP+5", LDHLSPn(5)},
		{"LD HL, SP - 3", LDHLSPn(-3)},
		{"PUSH AF", PUSH(AF)},
		{"pop de", POP(DE)},
		{"LDIR", Instruction{Op: LDIR}},
		{"CPD", Instruction{Op: CPD}},
		{"ADD A, C", ADDr(C)},
		{"ADD A, (HL)", ADDmHL()},
		{"ADD A, 1", ADDn(1)},
		{"ADC A, E", ADCr(E)},
		{"SUB L", SUBr(L)},
		{"SUB (HL)", SUBmHL()},
		{"SUB 10", SUBn(10)},
		{"SBC A, 0FFh", SBCn(0xFF)},
		{"ADD HL, DE", ADDHLrr(DE)},
		{"ADD SP, -2", ADDSPn(-2)},
		{"SWAP\tA", SWAP(A)},
	}

	for _, tc := range tests {
		got, err := Parse(tc.text)
		if err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", tc.text, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q): got %+v want %+v", tc.text, got, tc.want)
		}
	}
}

// TestParseRejects verifies operands outside a form's domain do not parse.
func TestParseRejects(t *testing.T) {
	bad := []string{
		"",
		"NOP",
		"LD B, 256",
		"LD B, -1",
		"LD F, 1",
		"LD (HL), (HL)",
		"LD (AF), A",
		"LD A, (SP)",
		"PUSH SP",
		"LD AF, 1234h",
		"ADD HL, AF",
		"ADD SP, 200",
		"SWAP SP",
		"LD HL, SP*2",
	}
	for _, text := range bad {
		if instr, err := Parse(text); err == nil {
			t.Errorf("Parse(%q): expected error, got %+v", text, instr)
		}
	}
}

// TestParseRoundTrip verifies Disassemble output parses back to the same
// instruction for every form whose text is unambiguous.
func TestParseRoundTrip(t *testing.T) {
	samples := []Instruction{
		LDrr(D, E), LDrHLm(B), LDHLmr(L), LDrn(H, 0xA5), LDHLmn(0),
		LDrrmA(DE), LDmmA(0xFF80), LDArrm(BC), LDAmm(0x0100),
		LDHLIA(), LDAHLI(), LDHLDA(), LDAHLD(),
		LDAIOn(0x10), LDIOnA(0xFF), LDAIOC(), LDIOCA(),
		LDAI(), LDAR(), LDIA(), LDRA(),
		LDrrnn(BC, 0xBEEF), LDHLmm(0x1000), LDmmHL(0x1000),
		LDrrmm(PairSP, 0x1800), LDmmrr(DE, 0x1800),
		LDSPHL(), LDHLSPn(-128), LDHLSPn(127),
		PUSH(BC), POP(AF),
		ADDr(A), ADDmHL(), ADDn(0x80), ADCr(H), ADCmHL(), ADCn(3),
		SUBr(B), SUBmHL(), SUBn(9), SBCr(C), SBCmHL(), SBCn(0xAB),
		ADDHLrr(HL), ADDSPn(-1), SWAP(E),
	}
	for _, want := range samples {
		text := Disassemble(want)
		got, err := Parse(text)
		if err != nil {
			t.Errorf("Parse(%q): %v", text, err)
			continue
		}
		if got != want {
			t.Errorf("round trip %q: got %+v want %+v", text, got, want)
		}
	}
}

// TestParseSeq verifies multi-instruction text.
func TestParseSeq(t *testing.T) {
	seq, err := ParseSeq("LD HL, 1234h : LD A, 99h\nLD (HL+), A")
	if err != nil {
		t.Fatalf("ParseSeq: %v", err)
	}
	want := []Instruction{LDrrnn(HL, 0x1234), LDrn(A, 0x99), LDHLIA()}
	if len(seq) != len(want) {
		t.Fatalf("ParseSeq: got %d instructions, want %d", len(seq), len(want))
	}
	for i := range want {
		if seq[i] != want[i] {
			t.Errorf("ParseSeq[%d]: got %+v want %+v", i, seq[i], want[i])
		}
	}

	if _, err := ParseSeq(" : "); err == nil {
		t.Error("ParseSeq of empty text should fail")
	}
	if _, err := ParseSeq("LD A, 1 : BOGUS"); err == nil || !strings.Contains(err.Error(), "BOGUS") {
		t.Errorf("ParseSeq should name the bad instruction, got %v", err)
	}
}

// TestParseReg verifies register name lookups.
func TestParseReg(t *testing.T) {
	for r := Reg(0); r < RegCount; r++ {
		got, ok := ParseReg(strings.ToLower(r.String()))
		if !ok || got != r {
			t.Errorf("ParseReg(%q): got %v, %v", r.String(), got, ok)
		}
	}
	if _, ok := ParseReg("HL"); ok {
		t.Error("ParseReg(HL) should fail")
	}
	for p := Pair(0); p < PairCount; p++ {
		got, ok := ParsePair(p.String())
		if !ok || got != p {
			t.Errorf("ParsePair(%q): got %v, %v", p.String(), got, ok)
		}
	}
}
