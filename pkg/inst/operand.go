package inst

import "strings"

// Reg names a single CPU register. The 8-bit registers come first; SP and PC
// are listed so callers can name them, but they are only reachable through
// the 16-bit accessors.
type Reg uint8

const (
	A Reg = iota
	B
	C
	D
	E
	H
	L
	F
	I // extended variant only
	R // extended variant only
	SP
	PC
	RegCount // sentinel
)

var regNames = [RegCount]string{"A", "B", "C", "D", "E", "H", "L", "F", "I", "R", "SP", "PC"}

func (r Reg) String() string {
	if r < RegCount {
		return regNames[r]
	}
	return "Reg(?)"
}

// IsOperand reports whether r may appear as the register operand of an 8-bit
// load, arithmetic or bit instruction.
func (r Reg) IsOperand() bool {
	return r <= L
}

// ParseReg converts a register name like "b" or "A" into a Reg.
func ParseReg(s string) (Reg, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for r := Reg(0); r < RegCount; r++ {
		if regNames[r] == s {
			return r, true
		}
	}
	return 0, false
}

// Pair names a 16-bit register pair. SP is a register in its own right and
// is not composed from two 8-bit halves.
type Pair uint8

const (
	BC Pair = iota
	DE
	HL
	AF
	PairSP
	PairCount // sentinel
)

var pairNames = [PairCount]string{"BC", "DE", "HL", "AF", "SP"}

func (p Pair) String() string {
	if p < PairCount {
		return pairNames[p]
	}
	return "Pair(?)"
}

// ParsePair converts a pair name like "hl" or "SP" into a Pair.
func ParsePair(s string) (Pair, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for p := Pair(0); p < PairCount; p++ {
		if pairNames[p] == s {
			return p, true
		}
	}
	return 0, false
}

// PairSet is a set of register pairs accepted by one operand position.
type PairSet uint8

// Has reports whether p is a member of the set.
func (ps PairSet) Has(p Pair) bool {
	return p < PairCount && ps&(1<<p) != 0
}

func pairSet(pairs ...Pair) PairSet {
	var ps PairSet
	for _, p := range pairs {
		ps |= 1 << p
	}
	return ps
}

// Operand domains for the pair-taking instruction forms.
var (
	// WidePairs is accepted by LD rr,nn / ADD HL,rr / LD rr,(nn) / LD (nn),rr.
	WidePairs = pairSet(BC, DE, HL, PairSP)
	// IndirectPairs is accepted by LD (rr),A and LD A,(rr).
	IndirectPairs = pairSet(BC, DE)
	// StackPairs is accepted by PUSH and POP.
	StackPairs = pairSet(BC, DE, HL, AF)
)
