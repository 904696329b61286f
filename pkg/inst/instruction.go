package inst

// OpCode identifies one decoded instruction form. It is not the raw byte
// encoding: decoding program bytes into forms is the caller's job, so one
// OpCode covers every register or pair the form accepts.
type OpCode uint16

// Instruction is a decoded instruction: the form plus its operands.
// Which operand fields are meaningful depends on Op (see Catalog).
// Small and trivially copyable.
type Instruction struct {
	Op   OpCode
	Reg  Reg    // register operand; destination of LD r, r'
	Src  Reg    // source of LD r, r'
	Pair Pair   // register-pair operand
	Imm  uint16 // immediate; 8-bit forms use the low byte, e is two's complement in the low byte
}

// Imm8 returns the 8-bit immediate operand.
func (i Instruction) Imm8() uint8 {
	return uint8(i.Imm)
}

// Disp returns the signed 8-bit displacement operand.
func (i Instruction) Disp() int8 {
	return int8(uint8(i.Imm))
}

func (i Instruction) String() string {
	return Disassemble(i)
}

// Family groups instruction forms.
type Family uint8

const (
	FamilyLoad8 Family = iota
	FamilyLoad16
	FamilyStack
	FamilyBlock // exchange, block transfer and search group
	FamilyArith8
	FamilyArith16
	FamilyBit
)

func (f Family) String() string {
	switch f {
	case FamilyLoad8:
		return "load8"
	case FamilyLoad16:
		return "load16"
	case FamilyStack:
		return "stack"
	case FamilyBlock:
		return "block"
	case FamilyArith8:
		return "arith8"
	case FamilyArith16:
		return "arith16"
	case FamilyBit:
		return "bit"
	}
	return "unknown"
}

// OpCode constants, grouped by family. The order is also the order in which
// Parse tries forms, so literal forms such as LD r, (HL) come before the
// generic forms that would otherwise shadow them.
const (
	// === 8-bit loads ===
	LD_REG_REG OpCode = iota // LD r, r'
	LD_REG_HLM               // LD r, (HL)
	LD_HLM_REG               // LD (HL), r
	LD_REG_N                 // LD r, n
	LD_HLM_N                 // LD (HL), n
	LD_RRM_A                 // LD (BC/DE), A
	LD_NNM_A                 // LD (nn), A
	LD_A_RRM                 // LD A, (BC/DE)
	LD_A_NNM                 // LD A, (nn)
	LD_HLI_A                 // LD (HL+), A
	LD_A_HLI                 // LD A, (HL+)
	LD_HLD_A                 // LD (HL-), A
	LD_A_HLD                 // LD A, (HL-)
	LDH_A_N                  // LD A, (FF00+n)
	LDH_N_A                  // LD (FF00+n), A
	LDH_A_C                  // LD A, (FF00+C)
	LDH_C_A                  // LD (FF00+C), A
	LD_A_I                   // extended variant only
	LD_A_R
	LD_I_A
	LD_R_A

	// === 16-bit loads ===
	LD_RR_NN  // LD rr, nn
	LD_HL_NNM // LD HL, (nn)
	LD_NNM_HL // LD (nn), HL
	LD_RR_NNM // LD rr, (nn)
	LD_NNM_RR // LD (nn), rr
	LD_SP_HL
	LD_HL_SPE // LD HL, SP+e

	// === Stack ===
	PUSH_RR
	POP_RR

	// === Exchange, block transfer, search (reserved) ===
	LDI
	LDIR
	LDD
	LDDR
	CPI
	CPIR
	CPD
	CPDR

	// === 8-bit arithmetic ===
	ADD_A_REG
	ADD_A_HLM
	ADD_A_N
	ADC_A_REG
	ADC_A_HLM
	ADC_A_N
	SUB_REG
	SUB_HLM
	SUB_N
	SBC_A_REG
	SBC_A_HLM
	SBC_A_N

	// === 16-bit arithmetic ===
	ADD_HL_RR
	ADD_SP_E

	// === Bit manipulation ===
	SWAP_REG

	OpCodeCount // sentinel
)

// Constructors, one per decoded form.

func LDrr(dst, src Reg) Instruction { return Instruction{Op: LD_REG_REG, Reg: dst, Src: src} }
func LDrHLm(r Reg) Instruction      { return Instruction{Op: LD_REG_HLM, Reg: r} }
func LDHLmr(r Reg) Instruction      { return Instruction{Op: LD_HLM_REG, Reg: r} }
func LDrn(r Reg, n uint8) Instruction {
	return Instruction{Op: LD_REG_N, Reg: r, Imm: uint16(n)}
}
func LDHLmn(n uint8) Instruction  { return Instruction{Op: LD_HLM_N, Imm: uint16(n)} }
func LDrrmA(rr Pair) Instruction  { return Instruction{Op: LD_RRM_A, Pair: rr} }
func LDmmA(nn uint16) Instruction { return Instruction{Op: LD_NNM_A, Imm: nn} }
func LDArrm(rr Pair) Instruction  { return Instruction{Op: LD_A_RRM, Pair: rr} }
func LDAmm(nn uint16) Instruction { return Instruction{Op: LD_A_NNM, Imm: nn} }
func LDHLIA() Instruction         { return Instruction{Op: LD_HLI_A} }
func LDAHLI() Instruction         { return Instruction{Op: LD_A_HLI} }
func LDHLDA() Instruction         { return Instruction{Op: LD_HLD_A} }
func LDAHLD() Instruction         { return Instruction{Op: LD_A_HLD} }
func LDAIOn(n uint8) Instruction  { return Instruction{Op: LDH_A_N, Imm: uint16(n)} }
func LDIOnA(n uint8) Instruction  { return Instruction{Op: LDH_N_A, Imm: uint16(n)} }
func LDAIOC() Instruction         { return Instruction{Op: LDH_A_C} }
func LDIOCA() Instruction         { return Instruction{Op: LDH_C_A} }
func LDAI() Instruction           { return Instruction{Op: LD_A_I} }
func LDAR() Instruction           { return Instruction{Op: LD_A_R} }
func LDIA() Instruction           { return Instruction{Op: LD_I_A} }
func LDRA() Instruction           { return Instruction{Op: LD_R_A} }
func LDrrnn(rr Pair, nn uint16) Instruction {
	return Instruction{Op: LD_RR_NN, Pair: rr, Imm: nn}
}
func LDHLmm(nn uint16) Instruction { return Instruction{Op: LD_HL_NNM, Imm: nn} }
func LDmmHL(nn uint16) Instruction { return Instruction{Op: LD_NNM_HL, Imm: nn} }
func LDrrmm(rr Pair, nn uint16) Instruction {
	return Instruction{Op: LD_RR_NNM, Pair: rr, Imm: nn}
}
func LDmmrr(rr Pair, nn uint16) Instruction {
	return Instruction{Op: LD_NNM_RR, Pair: rr, Imm: nn}
}
func LDSPHL() Instruction         { return Instruction{Op: LD_SP_HL} }
func LDHLSPn(e int8) Instruction  { return Instruction{Op: LD_HL_SPE, Imm: uint16(uint8(e))} }
func PUSH(qq Pair) Instruction    { return Instruction{Op: PUSH_RR, Pair: qq} }
func POP(qq Pair) Instruction     { return Instruction{Op: POP_RR, Pair: qq} }
func ADDr(r Reg) Instruction      { return Instruction{Op: ADD_A_REG, Reg: r} }
func ADDmHL() Instruction         { return Instruction{Op: ADD_A_HLM} }
func ADDn(n uint8) Instruction    { return Instruction{Op: ADD_A_N, Imm: uint16(n)} }
func ADCr(r Reg) Instruction      { return Instruction{Op: ADC_A_REG, Reg: r} }
func ADCmHL() Instruction         { return Instruction{Op: ADC_A_HLM} }
func ADCn(n uint8) Instruction    { return Instruction{Op: ADC_A_N, Imm: uint16(n)} }
func SUBr(r Reg) Instruction      { return Instruction{Op: SUB_REG, Reg: r} }
func SUBmHL() Instruction         { return Instruction{Op: SUB_HLM} }
func SUBn(n uint8) Instruction    { return Instruction{Op: SUB_N, Imm: uint16(n)} }
func SBCr(r Reg) Instruction      { return Instruction{Op: SBC_A_REG, Reg: r} }
func SBCmHL() Instruction         { return Instruction{Op: SBC_A_HLM} }
func SBCn(n uint8) Instruction    { return Instruction{Op: SBC_A_N, Imm: uint16(n)} }
func ADDHLrr(rr Pair) Instruction { return Instruction{Op: ADD_HL_RR, Pair: rr} }
func ADDSPn(e int8) Instruction   { return Instruction{Op: ADD_SP_E, Imm: uint16(uint8(e))} }
func SWAP(r Reg) Instruction      { return Instruction{Op: SWAP_REG, Reg: r} }
