// Package cpu implements the register file, the instruction dispatcher and
// the CPU aggregate that ties them to a memory bus and a cycle clock.
package cpu

import (
	"github.com/oisee/z80sim/pkg/inst"
	"github.com/oisee/z80sim/pkg/log"
	"github.com/oisee/z80sim/pkg/mmu"
)

// CPU owns a register file, a memory bus and a clock. It is not safe for
// concurrent use; independent CPUs share nothing.
type CPU struct {
	regs    Registers
	bus     mmu.Bus
	clock   Clock
	variant Variant
	log     log.Logger
	debug   bool
}

// Option configures a CPU.
type Option func(*CPU)

// WithVariant selects the register model. The default is GBZ80.
func WithVariant(v Variant) Option {
	return func(c *CPU) {
		c.variant = v
	}
}

// WithLogger sets the logger used for per-instruction debug lines.
func WithLogger(l log.Logger) Option {
	return func(c *CPU) {
		c.log = l
	}
}

// WithBus replaces the default memory map.
func WithBus(b mmu.Bus) Option {
	return func(c *CPU) {
		c.bus = b
	}
}

// New creates a CPU with zeroed registers, clock and memory.
func New(opts ...Option) *CPU {
	c := &CPU{}
	for _, opt := range opts {
		opt(c)
	}
	if c.bus == nil {
		c.bus = mmu.NewDefault()
	}
	if c.log == nil {
		c.log = log.NewNullLogger()
	}
	c.debug = c.log.DebugEnabled()
	c.regs = NewRegisters(c.variant)
	return c
}

// Execute dispatches one instruction. On success the clock advances by the
// form's cycle literal. On failure it returns an *ExecError and the
// registers, memory and clock are as they were before the call.
func (c *CPU) Execute(in inst.Instruction) error {
	saved := c.regs
	m, t, err := Exec(&c.regs, c.bus, in)
	if err != nil {
		c.regs = saved
		return &ExecError{Instr: in, Err: err}
	}
	c.clock.Tick(m, t)
	if c.debug {
		c.log.Debugf("%-16s %s", in, c.Snapshot())
	}
	return nil
}

// Run executes seq in order, stopping at the first failure.
func (c *CPU) Run(seq []inst.Instruction) error {
	for _, in := range seq {
		if err := c.Execute(in); err != nil {
			return err
		}
	}
	return nil
}

// Registers returns the live register file.
func (c *CPU) Registers() *Registers {
	return &c.regs
}

// Bus returns the memory bus.
func (c *CPU) Bus() mmu.Bus {
	return c.bus
}

// Clock returns the elapsed cycle counters.
func (c *CPU) Clock() Clock {
	return c.clock
}

// Variant returns the register model.
func (c *CPU) Variant() Variant {
	return c.variant
}

// Reset zeroes the registers and the clock. Memory is left alone.
func (c *CPU) Reset() {
	c.regs = NewRegisters(c.variant)
	c.clock = Clock{}
}
