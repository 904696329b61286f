// Package trace records executed instructions with the state they left
// behind, and exports the record as JSON or text.
package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/oisee/z80sim/pkg/cpu"
	"github.com/oisee/z80sim/pkg/inst"
)

// Step is one executed (or rejected) instruction.
type Step struct {
	Index   int          `json:"index"`
	Asm     string       `json:"asm"`
	MCycles int          `json:"m_cycles"`
	TStates int          `json:"t_states"`
	State   cpu.Snapshot `json:"state"`
	Digest  string       `json:"digest"`
	Error   string       `json:"error,omitempty"`
}

// Trace stores steps in execution order.
type Trace struct {
	mu    sync.Mutex
	steps []Step
}

// New creates an empty trace.
func New() *Trace {
	return &Trace{}
}

// Record appends a step for in, with the state after it ran. A failed step
// carries no cycles.
func (t *Trace) Record(in inst.Instruction, after cpu.Snapshot, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Step{
		Index:  len(t.steps),
		Asm:    inst.Disassemble(in),
		State:  after,
		Digest: fmt.Sprintf("%016x", after.Digest()),
	}
	if err != nil {
		s.Error = err.Error()
	} else {
		s.MCycles, s.TStates = inst.Cycles(in.Op)
	}
	t.steps = append(t.steps, s)
}

// Steps returns a copy of all steps.
func (t *Trace) Steps() []Step {
	t.mu.Lock()
	defer t.mu.Unlock()
	result := make([]Step, len(t.steps))
	copy(result, t.steps)
	return result
}

// Len returns the number of steps.
func (t *Trace) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.steps)
}

// Run executes seq on c, recording each step. It stops after the first
// failing instruction, which is recorded too.
func (t *Trace) Run(c *cpu.CPU, seq []inst.Instruction) error {
	for _, in := range seq {
		err := c.Execute(in)
		t.Record(in, c.Snapshot(), err)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes the steps as an indented JSON array.
func (t *Trace) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t.Steps())
}

// ReadJSON reads steps written by WriteJSON.
func ReadJSON(r io.Reader) ([]Step, error) {
	var steps []Step
	if err := json.NewDecoder(r).Decode(&steps); err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	return steps, nil
}

// WriteText writes one line per step: index, assembly, then the state or
// the error.
func (t *Trace) WriteText(w io.Writer) error {
	for _, s := range t.Steps() {
		var err error
		if s.Error != "" {
			_, err = fmt.Fprintf(w, "%4d  %-18s error: %s\n", s.Index, s.Asm, s.Error)
		} else {
			_, err = fmt.Fprintf(w, "%4d  %-18s %s\n", s.Index, s.Asm, s.State)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
