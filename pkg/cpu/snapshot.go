package cpu

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/oisee/z80sim/pkg/inst"
)

// Snapshot is a copy of the register file and clock. I and R are zero on the
// base variant.
type Snapshot struct {
	Variant                Variant
	A, B, C, D, E, H, L, F uint8
	I, R                   uint8
	SP, PC                 uint16
	Machine, Time          int64
}

// Snapshot returns a copy of the current state.
func (c *CPU) Snapshot() Snapshot {
	n := &c.regs.narrow
	return Snapshot{
		Variant: c.variant,
		A:       n[inst.A],
		B:       n[inst.B],
		C:       n[inst.C],
		D:       n[inst.D],
		E:       n[inst.E],
		H:       n[inst.H],
		L:       n[inst.L],
		F:       n[inst.F],
		I:       n[inst.I],
		R:       n[inst.R],
		SP:      c.regs.sp,
		PC:      c.regs.pc,
		Machine: c.clock.Machine,
		Time:    c.clock.Time,
	}
}

// Pair returns the value of a register pair in the snapshot.
func (s Snapshot) Pair(p inst.Pair) uint16 {
	switch p {
	case inst.BC:
		return uint16(s.B)<<8 | uint16(s.C)
	case inst.DE:
		return uint16(s.D)<<8 | uint16(s.E)
	case inst.HL:
		return uint16(s.H)<<8 | uint16(s.L)
	case inst.AF:
		return uint16(s.A)<<8 | uint16(s.F)
	case inst.PairSP:
		return s.SP
	}
	return 0
}

// String renders the snapshot as "a=.. b=.. ... m=.. t=..".
func (s Snapshot) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "a=%02X b=%02X c=%02X d=%02X e=%02X h=%02X l=%02X f=%02X pc=%04X sp=%04X m=%d t=%d",
		s.A, s.B, s.C, s.D, s.E, s.H, s.L, s.F, s.PC, s.SP, s.Machine, s.Time)
	if s.Variant.Extended() {
		fmt.Fprintf(&sb, " i=%02X r=%02X", s.I, s.R)
	}
	return sb.String()
}

// Digest returns a 64-bit fingerprint of the snapshot. Equal snapshots have
// equal digests.
func (s Snapshot) Digest() uint64 {
	var buf [31]byte
	buf[0] = uint8(s.Variant)
	copy(buf[1:11], []byte{s.A, s.B, s.C, s.D, s.E, s.H, s.L, s.F, s.I, s.R})
	binary.LittleEndian.PutUint16(buf[11:], s.SP)
	binary.LittleEndian.PutUint16(buf[13:], s.PC)
	binary.LittleEndian.PutUint64(buf[15:], uint64(s.Machine))
	binary.LittleEndian.PutUint64(buf[23:], uint64(s.Time))
	return xxhash.Sum64(buf[:])
}
