// Package program loads YAML program descriptions: the variant to run on,
// initial register and memory contents, and an assembly listing.
//
//	variant: z80
//	registers:
//	  a: 0x0F
//	  hl: 0x1234
//	memory:
//	  - at: 0x0100
//	    bytes: [0x3E, 0x2A]
//	program:
//	  - LD B, 42
//	  - ADD A, B
package program

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/oisee/z80sim/pkg/cpu"
	"github.com/oisee/z80sim/pkg/inst"
	"github.com/oisee/z80sim/pkg/mmu"
	"gopkg.in/yaml.v3"
)

// File is the YAML document as written.
type File struct {
	Variant   string         `yaml:"variant"`
	Registers map[string]int `yaml:"registers"`
	Memory    []Poke         `yaml:"memory"`
	Program   []string       `yaml:"program"`
}

// Poke places bytes in memory starting at At.
type Poke struct {
	At    int   `yaml:"at"`
	Bytes []int `yaml:"bytes"`
}

// Program is a validated File.
type Program struct {
	Variant   cpu.Variant
	Registers []RegisterInit
	Memory    []Block
	Seq       []inst.Instruction
}

// RegisterInit is one initial register value. Pairs are applied before
// single registers, so "hl" followed by "l" keeps the later L.
type RegisterInit struct {
	Name  string
	Value uint16
}

// Block is a validated Poke.
type Block struct {
	At   uint16
	Data []byte
}

// Load decodes and assembles a program.
func Load(r io.Reader) (*Program, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("program: decode: %w", err)
	}
	return f.Assemble()
}

// LoadFile reads a program from path.
func LoadFile(path string) (*Program, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	p, err := Load(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Assemble validates f and parses its listing. Every problem found is
// reported, not just the first.
func (f *File) Assemble() (*Program, error) {
	var errs *multierror.Error
	p := &Program{}

	if f.Variant != "" {
		v, err := cpu.ParseVariant(f.Variant)
		if err != nil {
			errs = multierror.Append(errs, err)
		}
		p.Variant = v
	}

	names := make([]string, 0, len(f.Registers))
	for name := range f.Registers {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		wi, wj := isWide(names[i]), isWide(names[j])
		if wi != wj {
			return wi
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		v := f.Registers[name]
		limit := 0xFF
		switch {
		case isWide(name):
			limit = 0xFFFF
		case isNarrow(name):
		default:
			errs = multierror.Append(errs, fmt.Errorf("registers: unknown register %q", name))
			continue
		}
		if v < 0 || v > limit {
			errs = multierror.Append(errs, fmt.Errorf("registers: %s=%d out of range 0..%d", name, v, limit))
			continue
		}
		p.Registers = append(p.Registers, RegisterInit{Name: strings.ToUpper(name), Value: uint16(v)})
	}

	for i, poke := range f.Memory {
		if poke.At < 0 || poke.At > 0xFFFF {
			errs = multierror.Append(errs, fmt.Errorf("memory[%d]: address %d out of range", i, poke.At))
			continue
		}
		data := make([]byte, len(poke.Bytes))
		ok := true
		for j, b := range poke.Bytes {
			if b < 0 || b > 0xFF {
				errs = multierror.Append(errs, fmt.Errorf("memory[%d]: byte %d is %d, not 0..255", i, j, b))
				ok = false
			}
			data[j] = byte(b)
		}
		if ok {
			p.Memory = append(p.Memory, Block{At: uint16(poke.At), Data: data})
		}
	}

	for i, line := range f.Program {
		line = stripComment(line)
		if line == "" {
			continue
		}
		in, err := inst.Parse(line)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("program line %d: %w", i+1, err))
			continue
		}
		p.Seq = append(p.Seq, in)
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return p, nil
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

func isWide(name string) bool {
	if strings.EqualFold(name, "pc") {
		return true
	}
	_, ok := inst.ParsePair(name)
	return ok
}

func isNarrow(name string) bool {
	r, ok := inst.ParseReg(name)
	return ok && r <= inst.R
}

// NewCPU builds a CPU for the program on a fresh default memory map, with
// its memory loaded and registers set. opts are applied first, so the
// program's variant and bus win.
func (p *Program) NewCPU(opts ...cpu.Option) (*cpu.CPU, error) {
	m := mmu.NewDefault()
	for _, b := range p.Memory {
		if err := m.Load(b.At, b.Data); err != nil {
			return nil, fmt.Errorf("program: memory at %04Xh: %w", b.At, err)
		}
	}
	all := make([]cpu.Option, 0, len(opts)+2)
	all = append(all, opts...)
	all = append(all, cpu.WithVariant(p.Variant), cpu.WithBus(m))
	c := cpu.New(all...)
	if err := p.Setup(c.Registers()); err != nil {
		return nil, err
	}
	return c, nil
}

// Setup applies the initial register values to r.
func (p *Program) Setup(r *cpu.Registers) error {
	var errs *multierror.Error
	for _, ri := range p.Registers {
		var err error
		if ri.Name == "PC" {
			r.SetPC(ri.Value)
		} else if pair, ok := inst.ParsePair(ri.Name); ok {
			err = r.SetPair(pair, ri.Value)
		} else {
			reg, _ := inst.ParseReg(ri.Name)
			err = r.Set(reg, uint8(ri.Value))
		}
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("registers: %s: %w", ri.Name, err))
		}
	}
	return errs.ErrorOrNil()
}
