package inst

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSeq converts assembly text like "LD HL, 1234h : LD (HL+), A" into
// instructions. Instructions are separated by ':' or newlines.
func ParseSeq(text string) ([]Instruction, error) {
	parts := strings.FieldsFunc(text, func(r rune) bool { return r == ':' || r == '\n' })
	var seq []Instruction

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		instr, err := Parse(part)
		if err != nil {
			return nil, err
		}
		seq = append(seq, instr)
	}

	if len(seq) == 0 {
		return nil, fmt.Errorf("no instructions parsed from %q", text)
	}
	return seq, nil
}

// Parse converts one instruction of assembly text into an Instruction. It
// accepts the syntax Disassemble produces; immediates may be decimal, 0x..,
// $.. or ..h.
func Parse(text string) (Instruction, error) {
	name, operands := splitMnemonic(strings.ReplaceAll(text, "\t", " "))
	if name == "" {
		return Instruction{}, fmt.Errorf("cannot parse %q: empty instruction", text)
	}

	for op := OpCode(0); op < OpCodeCount; op++ {
		info := &Catalog[op]
		pname, pattern := splitMnemonic(info.Mnemonic)
		if !strings.EqualFold(name, pname) || len(pattern) != len(operands) {
			continue
		}
		instr := Instruction{Op: op}
		matched := true
		for i := range pattern {
			if !matchOperand(&instr, info, pattern[i], operands[i]) {
				matched = false
				break
			}
		}
		if matched {
			return instr, nil
		}
	}

	return Instruction{}, fmt.Errorf("cannot parse %q: unknown instruction", text)
}

// matchOperand checks one operand of text against one template placeholder,
// filling the matching field of instr on success.
func matchOperand(instr *Instruction, info *Info, tmpl, text string) bool {
	tmplInner, tmplIndirect := unwrapParens(tmpl)
	textInner, textIndirect := unwrapParens(text)
	if tmplIndirect != textIndirect {
		return false
	}

	switch tmplInner {
	case "r", "r'":
		r, ok := ParseReg(textInner)
		if !ok || !r.IsOperand() {
			return false
		}
		if tmplInner == "r" {
			instr.Reg = r
		} else {
			instr.Src = r
		}
	case "rr":
		p, ok := ParsePair(textInner)
		if !ok || !info.Pairs.Has(p) {
			return false
		}
		instr.Pair = p
	case "n":
		v, err := parseImmediate(textInner)
		if err != nil || v < 0 || v > 0xFF {
			return false
		}
		instr.Imm = uint16(v)
	case "nn":
		v, err := parseImmediate(textInner)
		if err != nil || v < 0 || v > 0xFFFF {
			return false
		}
		instr.Imm = uint16(v)
	case "e":
		return matchDisp(instr, textInner)
	case "SP+e":
		upper := strings.ToUpper(textInner)
		if !strings.HasPrefix(upper, "SP") || len(upper) < 3 || (upper[2] != '+' && upper[2] != '-') {
			return false
		}
		return matchDisp(instr, textInner[2:])
	default:
		return strings.EqualFold(tmplInner, textInner)
	}
	return true
}

func matchDisp(instr *Instruction, s string) bool {
	v, err := parseImmediate(s)
	if err != nil || v < -128 || v > 127 {
		return false
	}
	instr.Imm = uint16(uint8(int8(v)))
	return true
}

// parseImmediate parses 42, -3, +5, 0x2A, $2A or 2Ah.
func parseImmediate(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty")
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	var v uint64
	var err error
	upper := strings.ToUpper(s)
	switch {
	case strings.HasPrefix(upper, "0X"):
		v, err = strconv.ParseUint(s[2:], 16, 32)
	case strings.HasPrefix(upper, "$"):
		v, err = strconv.ParseUint(s[1:], 16, 32)
	case len(upper) > 1 && strings.HasSuffix(upper, "H") && upper[0] >= '0' && upper[0] <= '9':
		v, err = strconv.ParseUint(s[:len(s)-1], 16, 32)
	default:
		v, err = strconv.ParseUint(s, 10, 32)
	}
	if err != nil {
		return 0, err
	}
	if neg {
		return -int(v), nil
	}
	return int(v), nil
}
