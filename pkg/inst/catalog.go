package inst

import (
	"strconv"
	"strings"
)

// Info holds static metadata for an instruction form.
type Info struct {
	Mnemonic string  // Assembly template, e.g. "LD r, (HL)"; see Disassemble for placeholders
	Family   Family  // Group listed by the catalog command
	MCycles  int     // Machine cycles
	TStates  int     // Clock ticks
	Pairs    PairSet // Pairs accepted by an rr placeholder
	Extended bool    // Needs the I/R extended register variant
	Reserved bool    // Named but has no execution rule
}

// Catalog maps each OpCode to its Info.
var Catalog [OpCodeCount]Info

// AllOps returns all valid OpCode values (for enumeration).
func AllOps() []OpCode {
	ops := make([]OpCode, 0, OpCodeCount)
	for i := OpCode(0); i < OpCodeCount; i++ {
		ops = append(ops, i)
	}
	return ops
}

// Valid reports whether op names a form in the catalog.
func Valid(op OpCode) bool {
	return op < OpCodeCount
}

// Cycles returns the machine-cycle and tick cost of a form.
func Cycles(op OpCode) (m, t int) {
	if !Valid(op) {
		return 0, 0
	}
	return Catalog[op].MCycles, Catalog[op].TStates
}

// TStates returns the tick cost of an instruction.
func TStates(op OpCode) int {
	_, t := Cycles(op)
	return t
}

// SeqTStates returns total ticks for a sequence of instructions.
func SeqTStates(seq []Instruction) int {
	t := 0
	for i := range seq {
		t += TStates(seq[i].Op)
	}
	return t
}

// SeqMCycles returns total machine cycles for a sequence of instructions.
func SeqMCycles(seq []Instruction) int {
	m := 0
	for i := range seq {
		n, _ := Cycles(seq[i].Op)
		m += n
	}
	return m
}

// Disassemble returns assembly text for an instruction. Template
// placeholders are substituted from the operand fields:
//
//	r   Reg          r'  Src
//	rr  Pair         n   8-bit immediate
//	nn  16-bit imm   e   signed displacement
func Disassemble(instr Instruction) string {
	if !Valid(instr.Op) {
		return "?" + strconv.Itoa(int(instr.Op))
	}
	name, operands := splitMnemonic(Catalog[instr.Op].Mnemonic)
	if len(operands) == 0 {
		return name
	}
	buf := make([]byte, 0, 16)
	buf = append(buf, name...)
	buf = append(buf, ' ')
	for i, tok := range operands {
		if i > 0 {
			buf = append(buf, ", "...)
		}
		buf = appendOperand(buf, tok, instr)
	}
	return string(buf)
}

func appendOperand(buf []byte, tok string, instr Instruction) []byte {
	inner, indirect := unwrapParens(tok)
	if indirect {
		buf = append(buf, '(')
	}
	switch inner {
	case "r":
		buf = append(buf, instr.Reg.String()...)
	case "r'":
		buf = append(buf, instr.Src.String()...)
	case "rr":
		buf = append(buf, instr.Pair.String()...)
	case "n":
		buf = appendHex8(buf, instr.Imm8())
	case "nn":
		buf = appendHex16(buf, instr.Imm)
	case "e":
		buf = strconv.AppendInt(buf, int64(instr.Disp()), 10)
	case "SP+e":
		buf = append(buf, "SP"...)
		if instr.Disp() >= 0 {
			buf = append(buf, '+')
		}
		buf = strconv.AppendInt(buf, int64(instr.Disp()), 10)
	default:
		buf = append(buf, inner...)
	}
	if indirect {
		buf = append(buf, ')')
	}
	return buf
}

// splitMnemonic splits "LD r, (HL)" into "LD" and ["r", "(HL)"].
func splitMnemonic(s string) (string, []string) {
	s = strings.TrimSpace(s)
	sp := strings.IndexByte(s, ' ')
	if sp < 0 {
		return s, nil
	}
	parts := strings.Split(s[sp+1:], ",")
	for i := range parts {
		parts[i] = strings.ReplaceAll(strings.TrimSpace(parts[i]), " ", "")
	}
	return s[:sp], parts
}

func unwrapParens(tok string) (string, bool) {
	if len(tok) >= 2 && tok[0] == '(' && tok[len(tok)-1] == ')' {
		return tok[1 : len(tok)-1], true
	}
	return tok, false
}

func appendHex8(buf []byte, v uint8) []byte {
	const hex = "0123456789ABCDEF"
	if v >= 0xA0 {
		buf = append(buf, '0')
	}
	buf = append(buf, hex[v>>4], hex[v&0x0F], 'h')
	return buf
}

func appendHex16(buf []byte, v uint16) []byte {
	const hex = "0123456789ABCDEF"
	if v>>12 >= 0xA {
		buf = append(buf, '0')
	}
	buf = append(buf, hex[v>>12], hex[(v>>8)&0x0F], hex[(v>>4)&0x0F], hex[v&0x0F], 'h')
	return buf
}

func init() {
	type entry struct {
		op       OpCode
		mnemonic string
		m, t     int
	}

	// 8-bit loads
	load8 := []entry{
		{LD_REG_REG, "LD r, r'", 1, 4},
		{LD_REG_HLM, "LD r, (HL)", 2, 8},
		{LD_HLM_REG, "LD (HL), r", 2, 8},
		{LD_REG_N, "LD r, n", 2, 8},
		{LD_HLM_N, "LD (HL), n", 3, 12},
		{LD_RRM_A, "LD (rr), A", 2, 8},
		{LD_NNM_A, "LD (nn), A", 4, 16},
		{LD_A_RRM, "LD A, (rr)", 2, 8},
		{LD_A_NNM, "LD A, (nn)", 4, 16},
		{LD_HLI_A, "LD (HL+), A", 2, 8},
		{LD_A_HLI, "LD A, (HL+)", 2, 8},
		{LD_HLD_A, "LD (HL-), A", 2, 8},
		{LD_A_HLD, "LD A, (HL-)", 2, 8},
		{LDH_A_N, "LDH A, (n)", 3, 12},
		{LDH_N_A, "LDH (n), A", 3, 12},
		{LDH_A_C, "LD A, (C)", 2, 8},
		{LDH_C_A, "LD (C), A", 2, 8},
		{LD_A_I, "LD A, I", 2, 9},
		{LD_A_R, "LD A, R", 2, 9},
		{LD_I_A, "LD I, A", 2, 9},
		{LD_R_A, "LD R, A", 2, 9},
	}
	for _, e := range load8 {
		Catalog[e.op] = Info{Mnemonic: e.mnemonic, Family: FamilyLoad8, MCycles: e.m, TStates: e.t}
	}
	Catalog[LD_RRM_A].Pairs = IndirectPairs
	Catalog[LD_A_RRM].Pairs = IndirectPairs
	for _, op := range []OpCode{LD_A_I, LD_A_R, LD_I_A, LD_R_A} {
		Catalog[op].Extended = true
	}

	// 16-bit loads
	load16 := []entry{
		{LD_RR_NN, "LD rr, nn", 3, 12},
		{LD_HL_NNM, "LD HL, (nn)", 5, 20},
		{LD_NNM_HL, "LD (nn), HL", 5, 20},
		{LD_RR_NNM, "LD rr, (nn)", 6, 20},
		{LD_NNM_RR, "LD (nn), rr", 6, 20},
		{LD_SP_HL, "LD SP, HL", 2, 8},
		{LD_HL_SPE, "LD HL, SP+e", 3, 12},
	}
	for _, e := range load16 {
		Catalog[e.op] = Info{Mnemonic: e.mnemonic, Family: FamilyLoad16, MCycles: e.m, TStates: e.t}
	}
	Catalog[LD_RR_NN].Pairs = WidePairs
	Catalog[LD_RR_NNM].Pairs = WidePairs
	Catalog[LD_NNM_RR].Pairs = WidePairs

	// Stack
	Catalog[PUSH_RR] = Info{Mnemonic: "PUSH rr", Family: FamilyStack, MCycles: 4, TStates: 16, Pairs: StackPairs}
	Catalog[POP_RR] = Info{Mnemonic: "POP rr", Family: FamilyStack, MCycles: 3, TStates: 12, Pairs: StackPairs}

	// Exchange, block transfer and search: named, never executed.
	for _, b := range []struct {
		op       OpCode
		mnemonic string
	}{
		{LDI, "LDI"}, {LDIR, "LDIR"}, {LDD, "LDD"}, {LDDR, "LDDR"},
		{CPI, "CPI"}, {CPIR, "CPIR"}, {CPD, "CPD"}, {CPDR, "CPDR"},
	} {
		Catalog[b.op] = Info{Mnemonic: b.mnemonic, Family: FamilyBlock, Reserved: true}
	}

	// 8-bit arithmetic: register 1/4, (HL) and immediate 2/8
	arith8 := []entry{
		{ADD_A_REG, "ADD A, r", 1, 4},
		{ADD_A_HLM, "ADD A, (HL)", 2, 8},
		{ADD_A_N, "ADD A, n", 2, 8},
		{ADC_A_REG, "ADC A, r", 1, 4},
		{ADC_A_HLM, "ADC A, (HL)", 2, 8},
		{ADC_A_N, "ADC A, n", 2, 8},
		{SUB_REG, "SUB r", 1, 4},
		{SUB_HLM, "SUB (HL)", 2, 8},
		{SUB_N, "SUB n", 2, 8},
		{SBC_A_REG, "SBC A, r", 1, 4},
		{SBC_A_HLM, "SBC A, (HL)", 2, 8},
		{SBC_A_N, "SBC A, n", 2, 8},
	}
	for _, e := range arith8 {
		Catalog[e.op] = Info{Mnemonic: e.mnemonic, Family: FamilyArith8, MCycles: e.m, TStates: e.t}
	}

	// 16-bit arithmetic
	Catalog[ADD_HL_RR] = Info{Mnemonic: "ADD HL, rr", Family: FamilyArith16, MCycles: 3, TStates: 12, Pairs: WidePairs}
	Catalog[ADD_SP_E] = Info{Mnemonic: "ADD SP, e", Family: FamilyArith16, MCycles: 4, TStates: 16}

	// Bit manipulation
	Catalog[SWAP_REG] = Info{Mnemonic: "SWAP r", Family: FamilyBit, MCycles: 4, TStates: 16}
}
