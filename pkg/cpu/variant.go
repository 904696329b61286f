package cpu

import (
	"fmt"
	"strings"
)

// Variant selects the register model.
type Variant uint8

const (
	// GBZ80 is the base model: no I/R registers.
	GBZ80 Variant = iota
	// Z80 adds the I and R auxiliary registers and the loads that use them.
	Z80
)

var variantNames = []string{"gbz80", "z80"}

func (v Variant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return fmt.Sprintf("Variant(%d)", uint8(v))
}

// Extended reports whether the variant has the I and R registers.
func (v Variant) Extended() bool {
	return v == Z80
}

// ParseVariant converts a name like "gbz80" or "Z80" into a Variant.
func ParseVariant(s string) (Variant, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range variantNames {
		if s == name {
			return Variant(i), nil
		}
	}
	if s == "gb" || s == "lr35902" {
		return GBZ80, nil
	}
	return 0, fmt.Errorf("unknown variant %q (want one of %s)", s, strings.Join(variantNames, ", "))
}

// Set implements the flag value interface used by the command line.
func (v *Variant) Set(s string) error {
	parsed, err := ParseVariant(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Type implements the flag value interface used by the command line.
func (v *Variant) Type() string {
	return "variant"
}
