// Package mmu implements the memory bus: a byte-addressable 16-bit address
// space backed by a small set of fixed regions. Addresses outside every
// region are reported with ErrOutOfRangeAddress rather than indexed.
package mmu

import (
	"errors"
	"fmt"
)

// ErrOutOfRangeAddress is returned for an access to an unbacked address.
var ErrOutOfRangeAddress = errors.New("out of range address")

// Bus is the addressable storage the CPU reads and writes. Word accesses are
// little-endian: the low byte lives at addr, the high byte at addr+1.
type Bus interface {
	Read(addr uint16) (uint8, error)
	Write(addr uint16, val uint8) error
	ReadWord(addr uint16) (uint16, error)
	WriteWord(addr uint16, val uint16) error
}

// Region describes one backed window of the address space.
type Region struct {
	Name  string
	Start uint16
	Size  int
}

// End returns the last address covered by the region.
func (r Region) End() uint16 {
	return uint16(int(r.Start) + r.Size - 1)
}

func (r Region) contains(addr uint16) bool {
	return int(addr) >= int(r.Start) && int(addr) < int(r.Start)+r.Size
}

const (
	// RAMSize is the size of the work RAM in the base configuration.
	RAMSize = 8192
	// IOBase is the start of the I/O page addressed by LDH and (C) forms.
	IOBase = 0xFF00
	// IOSize covers IOBase up to and including 0xFFFF.
	IOSize = 0x100
)

// DefaultRegions is the base memory map: 8 KiB RAM at 0x0000 and the
// 256-byte I/O page at 0xFF00.
func DefaultRegions() []Region {
	return []Region{
		{Name: "ram", Start: 0x0000, Size: RAMSize},
		{Name: "io", Start: IOBase, Size: IOSize},
	}
}

type bank struct {
	Region
	data []byte
}

// MMU is a Bus backed by zero-initialised regions. It is not safe for
// concurrent use.
type MMU struct {
	banks []bank
}

// New creates an MMU with the given regions, or DefaultRegions if none are
// given. Regions must be non-empty, fit below 0x10000 and not overlap.
func New(regions ...Region) (*MMU, error) {
	if len(regions) == 0 {
		regions = DefaultRegions()
	}
	m := &MMU{}
	for _, r := range regions {
		if r.Size <= 0 {
			return nil, fmt.Errorf("mmu: region %q: size %d must be positive", r.Name, r.Size)
		}
		if int(r.Start)+r.Size > 0x10000 {
			return nil, fmt.Errorf("mmu: region %q: %04Xh+%d runs past FFFFh", r.Name, r.Start, r.Size)
		}
		for _, b := range m.banks {
			if int(r.Start) <= int(b.End()) && int(b.Start) <= int(r.End()) {
				return nil, fmt.Errorf("mmu: region %q overlaps %q", r.Name, b.Name)
			}
		}
		m.banks = append(m.banks, bank{Region: r, data: make([]byte, r.Size)})
	}
	return m, nil
}

// NewDefault creates an MMU with the base memory map.
func NewDefault() *MMU {
	m, err := New()
	if err != nil {
		panic(err) // DefaultRegions is always valid
	}
	return m
}

// Regions returns the configured memory map.
func (m *MMU) Regions() []Region {
	regions := make([]Region, len(m.banks))
	for i := range m.banks {
		regions[i] = m.banks[i].Region
	}
	return regions
}

// Mapped reports whether addr is backed by a region.
func (m *MMU) Mapped(addr uint16) bool {
	_, _, err := m.locate(addr)
	return err == nil
}

func (m *MMU) locate(addr uint16) ([]byte, int, error) {
	for i := range m.banks {
		if m.banks[i].contains(addr) {
			return m.banks[i].data, int(addr) - int(m.banks[i].Start), nil
		}
	}
	return nil, 0, fmt.Errorf("%w: %04Xh", ErrOutOfRangeAddress, addr)
}

// Read returns the byte stored at addr.
func (m *MMU) Read(addr uint16) (uint8, error) {
	data, off, err := m.locate(addr)
	if err != nil {
		return 0, err
	}
	return data[off], nil
}

// Write stores val at addr.
func (m *MMU) Write(addr uint16, val uint8) error {
	data, off, err := m.locate(addr)
	if err != nil {
		return err
	}
	data[off] = val
	return nil
}

// ReadWord returns the little-endian word at addr, addr+1. addr+1 wraps
// at the top of the address space.
func (m *MMU) ReadWord(addr uint16) (uint16, error) {
	lo, err := m.Read(addr)
	if err != nil {
		return 0, err
	}
	hi, err := m.Read(addr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// WriteWord stores val little-endian at addr, addr+1. Both addresses are
// checked before either byte is written.
func (m *MMU) WriteWord(addr uint16, val uint16) error {
	loData, loOff, err := m.locate(addr)
	if err != nil {
		return err
	}
	hiData, hiOff, err := m.locate(addr + 1)
	if err != nil {
		return err
	}
	loData[loOff] = uint8(val)
	hiData[hiOff] = uint8(val >> 8)
	return nil
}

// Load copies data into memory starting at addr. Every target address is
// checked first, so a failed Load leaves memory untouched.
func (m *MMU) Load(addr uint16, data []byte) error {
	if int(addr)+len(data) > 0x10000 {
		return fmt.Errorf("%w: %d bytes at %04Xh run past FFFFh", ErrOutOfRangeAddress, len(data), addr)
	}
	for i := range data {
		if _, _, err := m.locate(addr + uint16(i)); err != nil {
			return err
		}
	}
	for i, b := range data {
		d, off, _ := m.locate(addr + uint16(i))
		d[off] = b
	}
	return nil
}

// Reset zeroes every region.
func (m *MMU) Reset() {
	for i := range m.banks {
		clear(m.banks[i].data)
	}
}
