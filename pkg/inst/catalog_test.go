package inst

import (
	"testing"
)

// TestCatalogCompleteness verifies every OpCode has a catalog entry.
func TestCatalogCompleteness(t *testing.T) {
	for op := OpCode(0); op < OpCodeCount; op++ {
		info := &Catalog[op]
		if info.Mnemonic == "" {
			t.Errorf("OpCode %d has no mnemonic", op)
		}
		if info.Reserved {
			if info.MCycles != 0 || info.TStates != 0 {
				t.Errorf("%s: reserved form should carry no cycles", info.Mnemonic)
			}
			continue
		}
		if info.MCycles == 0 || info.TStates == 0 {
			t.Errorf("OpCode %d (%s) has 0 cycles", op, info.Mnemonic)
		}
		if info.MCycles > info.TStates {
			t.Errorf("%s: %d machine cycles exceeds %d ticks", info.Mnemonic, info.MCycles, info.TStates)
		}
	}
}

// TestCatalogPairs verifies that forms with an rr placeholder declare the
// pairs they accept, and no other form does.
func TestCatalogPairs(t *testing.T) {
	for op := OpCode(0); op < OpCodeCount; op++ {
		info := &Catalog[op]
		_, operands := splitMnemonic(info.Mnemonic)
		usesPair := false
		for _, o := range operands {
			if inner, _ := unwrapParens(o); inner == "rr" {
				usesPair = true
			}
		}
		if usesPair && info.Pairs == 0 {
			t.Errorf("%s: rr placeholder with empty pair set", info.Mnemonic)
		}
		if !usesPair && info.Pairs != 0 {
			t.Errorf("%s: pair set without rr placeholder", info.Mnemonic)
		}
	}
}

// TestCycles verifies the timing table.
func TestCycles(t *testing.T) {
	tests := []struct {
		op   OpCode
		m, t int
	}{
		{LD_REG_REG, 1, 4},
		{LD_REG_HLM, 2, 8},
		{LD_HLM_REG, 2, 8},
		{LD_REG_N, 2, 8},
		{LD_HLM_N, 3, 12},
		{LD_RRM_A, 2, 8},
		{LD_NNM_A, 4, 16},
		{LD_A_RRM, 2, 8},
		{LD_A_NNM, 4, 16},
		{LD_RR_NN, 3, 12},
		{LD_HL_NNM, 5, 20},
		{LD_NNM_HL, 5, 20},
		{LD_HLI_A, 2, 8},
		{LD_A_HLD, 2, 8},
		{LDH_A_N, 3, 12},
		{LDH_C_A, 2, 8},
		{LD_HL_SPE, 3, 12},
		{SWAP_REG, 4, 16},
		{ADD_A_REG, 1, 4},
		{ADC_A_HLM, 2, 8},
		{SUB_N, 2, 8},
		{SBC_A_REG, 1, 4},
		{ADD_SP_E, 4, 16},
		{ADD_HL_RR, 3, 12},
		{LD_A_I, 2, 9},
		{PUSH_RR, 4, 16},
		{POP_RR, 3, 12},
	}

	for _, tc := range tests {
		m, ticks := Cycles(tc.op)
		if m != tc.m || ticks != tc.t {
			t.Errorf("%s: got %d/%d cycles, want %d/%d", Catalog[tc.op].Mnemonic, m, ticks, tc.m, tc.t)
		}
	}

	if m, ticks := Cycles(OpCodeCount); m != 0 || ticks != 0 {
		t.Errorf("Cycles(OpCodeCount): got %d/%d, want 0/0", m, ticks)
	}
}

// TestDisassemble verifies mnemonic generation.
func TestDisassemble(t *testing.T) {
	tests := []struct {
		instr Instruction
		want  string
	}{
		{LDrr(A, B), "LD A, B"},
		{LDrn(B, 42), "LD B, 2Ah"},
		{LDrn(A, 0xFF), "LD A, 0FFh"},
		{LDrrnn(HL, 0x1234), "LD HL, 1234h"},
		{LDmmA(0xC000), "LD (0C000h), A"},
		{LDArrm(DE), "LD A, (DE)"},
		{LDHLIA(), "LD (HL+), A"},
		{LDAHLD(), "LD A, (HL-)"},
		{LDAIOn(0x44), "LDH A, (44h)"},
		{LDIOCA(), "LD (C), A"},
		{LDHLSPn(5), "LD HL, SP+5"},
		{LDHLSPn(-3), "LD HL, SP-3"},
		{ADDSPn(-2), "ADD SP, -2"},
		{PUSH(AF), "PUSH AF"},
		{SUBmHL(), "SUB (HL)"},
		{ADDHLrr(PairSP), "ADD HL, SP"},
		{SWAP(C), "SWAP C"},
		{Instruction{Op: LDIR}, "LDIR"},
		{Instruction{Op: OpCodeCount}, "?53"},
	}

	for _, tc := range tests {
		got := Disassemble(tc.instr)
		if got != tc.want {
			t.Errorf("Disassemble(%+v): got %q want %q", tc.instr, got, tc.want)
		}
	}
}

// TestAllOpsCount verifies the total number of opcodes.
func TestAllOpsCount(t *testing.T) {
	all := AllOps()
	if len(all) != int(OpCodeCount) {
		t.Errorf("AllOps() returned %d, want %d", len(all), OpCodeCount)
	}
}

// TestSeqCycles verifies sequence totals.
func TestSeqCycles(t *testing.T) {
	seq := []Instruction{
		LDrn(B, 1),         // 2/8
		ADDr(B),            // 1/4
		LDrrnn(HL, 0x0100), // 3/12
		{Op: LDIR},         // reserved, 0/0
	}
	if got := SeqMCycles(seq); got != 6 {
		t.Errorf("SeqMCycles: got %d want 6", got)
	}
	if got := SeqTStates(seq); got != 24 {
		t.Errorf("SeqTStates: got %d want 24", got)
	}
}
