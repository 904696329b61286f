package cpu

import (
	"fmt"

	"github.com/oisee/z80sim/pkg/inst"
)

// narrowCount covers A through R, the registers stored as single bytes.
const narrowCount = int(inst.R) + 1

// Registers is the register file. The 8-bit registers are reached by name
// through Get/Set and the pairs through Pair/SetPair; SP and PC have their own
// accessors. The zero value is the base variant with every register zero.
type Registers struct {
	narrow   [narrowCount]uint8
	sp, pc   uint16
	extended bool
}

// NewRegisters returns a zeroed register file for variant v.
func NewRegisters(v Variant) Registers {
	return Registers{extended: v.Extended()}
}

// Extended reports whether I and R are present.
func (r *Registers) Extended() bool {
	return r.extended
}

func (r *Registers) narrowIndex(reg inst.Reg) (int, error) {
	switch {
	case reg > inst.R:
		return 0, fmt.Errorf("%w: %s is not an 8-bit register", ErrInvalidRegisterAccess, reg)
	case (reg == inst.I || reg == inst.R) && !r.extended:
		return 0, fmt.Errorf("%w: %s requires the extended variant", ErrInvalidRegisterAccess, reg)
	}
	return int(reg), nil
}

// Get returns the 8-bit register reg.
func (r *Registers) Get(reg inst.Reg) (uint8, error) {
	i, err := r.narrowIndex(reg)
	if err != nil {
		return 0, err
	}
	return r.narrow[i], nil
}

// Set stores v in the 8-bit register reg. On the base variant the low
// nibble of F is forced to zero; the extended variant keeps the full byte.
func (r *Registers) Set(reg inst.Reg, v uint8) error {
	i, err := r.narrowIndex(reg)
	if err != nil {
		return err
	}
	if reg == inst.F {
		v &= r.flagMask()
	}
	r.narrow[i] = v
	return nil
}

// flagMask returns the bits of F that can hold a value.
func (r *Registers) flagMask() uint8 {
	if r.extended {
		return 0xFF
	}
	return 0xF0
}

// Copy loads register dst from register src. Flags are not affected.
func (r *Registers) Copy(dst, src inst.Reg) error {
	v, err := r.Get(src)
	if err != nil {
		return err
	}
	if _, err := r.narrowIndex(dst); err != nil {
		return err
	}
	return r.Set(dst, v)
}

// HighOf returns the register holding the high byte of p.
func (r *Registers) HighOf(p inst.Pair) (inst.Reg, error) {
	switch p {
	case inst.BC:
		return inst.B, nil
	case inst.DE:
		return inst.D, nil
	case inst.HL:
		return inst.H, nil
	case inst.AF:
		return inst.A, nil
	}
	return 0, fmt.Errorf("%w: %s has no 8-bit halves", ErrInvalidRegisterPair, p)
}

// LowOf returns the register holding the low byte of p.
func (r *Registers) LowOf(p inst.Pair) (inst.Reg, error) {
	switch p {
	case inst.BC:
		return inst.C, nil
	case inst.DE:
		return inst.E, nil
	case inst.HL:
		return inst.L, nil
	case inst.AF:
		return inst.F, nil
	}
	return 0, fmt.Errorf("%w: %s has no 8-bit halves", ErrInvalidRegisterPair, p)
}

// Pair returns the 16-bit value of p, high register first. SP is returned
// directly.
func (r *Registers) Pair(p inst.Pair) (uint16, error) {
	if p == inst.PairSP {
		return r.sp, nil
	}
	hi, err := r.HighOf(p)
	if err != nil {
		return 0, err
	}
	lo, _ := r.LowOf(p)
	return uint16(r.narrow[hi])<<8 | uint16(r.narrow[lo]), nil
}

// SetPair stores v in p.
func (r *Registers) SetPair(p inst.Pair, v uint16) error {
	if p == inst.PairSP {
		r.sp = v
		return nil
	}
	hi, err := r.HighOf(p)
	if err != nil {
		return err
	}
	lo, _ := r.LowOf(p)
	r.narrow[hi] = uint8(v >> 8)
	r.narrow[lo] = uint8(v)
	if p == inst.AF {
		r.narrow[inst.F] &= r.flagMask()
	}
	return nil
}

// SP returns the stack pointer.
func (r *Registers) SP() uint16 { return r.sp }

// SetSP stores the stack pointer.
func (r *Registers) SetSP(v uint16) { r.sp = v }

// PC returns the program counter.
func (r *Registers) PC() uint16 { return r.pc }

// SetPC stores the program counter.
func (r *Registers) SetPC(v uint16) { r.pc = v }

// Flag reports whether every bit in mask is set in F.
func (r *Registers) Flag(mask uint8) bool {
	return r.narrow[inst.F]&mask == mask
}

// Add adds value to A, plus the carry bit when withCarry is set. F is reset,
// then Z is set for a zero result and C when the sum exceeds 255.
func (r *Registers) Add(value uint8, withCarry bool) {
	carry := 0
	if withCarry && r.Flag(FlagC) {
		carry = 1
	}
	sum := int(r.narrow[inst.A]) + int(value) + carry

	var f uint8
	if uint8(sum) == 0 {
		f |= FlagZ
	}
	if sum > 0xFF {
		f |= FlagC
	}
	r.narrow[inst.F] = f
	r.narrow[inst.A] = uint8(sum)
}

// Sub computes value - A, minus the carry bit when withBorrow is set, into A.
// F is reset, then N is set, Z for a zero result and C when the difference
// is negative.
func (r *Registers) Sub(value uint8, withBorrow bool) {
	borrow := 0
	if withBorrow && r.Flag(FlagC) {
		borrow = 1
	}
	diff := int(value) - int(r.narrow[inst.A]) - borrow

	f := FlagN
	if uint8(diff) == 0 {
		f |= FlagZ
	}
	if diff < 0 {
		f |= FlagC
	}
	r.narrow[inst.F] = f
	r.narrow[inst.A] = uint8(diff)
}

// AddHL adds v to HL. C is set when the sum exceeds 0xFFFF and cleared
// otherwise; the other flag bits keep their values.
func (r *Registers) AddHL(v uint16) {
	hl, _ := r.Pair(inst.HL)
	sum := uint32(hl) + uint32(v)
	if sum > 0xFFFF {
		r.narrow[inst.F] |= FlagC
	} else {
		r.narrow[inst.F] &^= FlagC
	}
	r.SetPair(inst.HL, uint16(sum))
}
