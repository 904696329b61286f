package cpu

// Flag bits in the F register. The low nibble is always zero.
const (
	FlagZ uint8 = 0x80 // Zero
	FlagN uint8 = 0x40 // Subtract
	FlagH uint8 = 0x20 // Half-carry, never produced by this ALU
	FlagC uint8 = 0x10 // Carry / borrow
)

// flagNames lists flags high bit first, for rendering F as "ZN-C".
var flagNames = [4]struct {
	mask uint8
	name byte
}{{FlagZ, 'Z'}, {FlagN, 'N'}, {FlagH, 'H'}, {FlagC, 'C'}}

// FlagString renders the flag bits of f, using '-' for clear bits.
func FlagString(f uint8) string {
	var buf [4]byte
	for i, fl := range flagNames {
		if f&fl.mask != 0 {
			buf[i] = fl.name
		} else {
			buf[i] = '-'
		}
	}
	return string(buf[:])
}
