package cpu

import (
	"errors"
	"fmt"

	"github.com/oisee/z80sim/pkg/inst"
	"github.com/oisee/z80sim/pkg/mmu"
)

// Exec executes a single instruction against r and bus and returns its
// machine-cycle and tick cost. Operands are checked and every read is done
// before the single bus write a form may issue, so a failing Exec has not
// written memory. Register updates come last. PC is never touched.
func Exec(r *Registers, bus mmu.Bus, in inst.Instruction) (m, t int, err error) {
	if !inst.Valid(in.Op) {
		return 0, 0, fmt.Errorf("%w: opcode %d", ErrUnsupportedInstruction, in.Op)
	}
	info := &inst.Catalog[in.Op]
	if info.Extended && !r.Extended() {
		return 0, 0, fmt.Errorf("%w: %s needs the extended variant", ErrUnsupportedInstruction, info.Mnemonic)
	}
	if err := checkOperands(in, info); err != nil {
		return 0, 0, err
	}
	if err := execRule(r, bus, in); err != nil {
		return 0, 0, err
	}
	return info.MCycles, info.TStates, nil
}

// checkOperands validates register and pair operands against the form.
func checkOperands(in inst.Instruction, info *inst.Info) error {
	switch in.Op {
	case inst.LD_REG_REG:
		if !in.Src.IsOperand() {
			return fmt.Errorf("%w: source register %s", ErrInvalidOperand, in.Src)
		}
		fallthrough
	case inst.LD_REG_HLM, inst.LD_HLM_REG, inst.LD_REG_N,
		inst.ADD_A_REG, inst.ADC_A_REG, inst.SUB_REG, inst.SBC_A_REG, inst.SWAP_REG:
		if !in.Reg.IsOperand() {
			return fmt.Errorf("%w: register %s", ErrInvalidOperand, in.Reg)
		}
	}
	if info.Pairs != 0 && !info.Pairs.Has(in.Pair) {
		return fmt.Errorf("%w: pair %s not accepted by %s", ErrInvalidOperand, in.Pair, info.Mnemonic)
	}
	return nil
}

// errNoRule marks an opcode that has a catalog entry but no case in execRule.
var errNoRule = errors.New("no execution rule")

func operand(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidOperand, err)
}

func execRule(r *Registers, bus mmu.Bus, in inst.Instruction) error {
	hl, _ := r.Pair(inst.HL)
	a, _ := r.Get(inst.A)

	switch in.Op {
	// === 8-bit loads ===
	case inst.LD_REG_REG:
		return operand(r.Copy(in.Reg, in.Src))
	case inst.LD_REG_HLM:
		v, err := bus.Read(hl)
		if err != nil {
			return err
		}
		return operand(r.Set(in.Reg, v))
	case inst.LD_HLM_REG:
		v, err := r.Get(in.Reg)
		if err != nil {
			return operand(err)
		}
		return bus.Write(hl, v)
	case inst.LD_REG_N:
		return operand(r.Set(in.Reg, in.Imm8()))
	case inst.LD_HLM_N:
		return bus.Write(hl, in.Imm8())
	case inst.LD_RRM_A:
		addr, err := r.Pair(in.Pair)
		if err != nil {
			return operand(err)
		}
		return bus.Write(addr, a)
	case inst.LD_NNM_A:
		return bus.Write(in.Imm, a)
	case inst.LD_A_RRM:
		addr, err := r.Pair(in.Pair)
		if err != nil {
			return operand(err)
		}
		return loadA(r, bus, addr)
	case inst.LD_A_NNM:
		return loadA(r, bus, in.Imm)
	case inst.LD_HLI_A:
		if err := bus.Write(hl, a); err != nil {
			return err
		}
		return r.SetPair(inst.HL, hl+1)
	case inst.LD_A_HLI:
		if err := loadA(r, bus, hl); err != nil {
			return err
		}
		return r.SetPair(inst.HL, hl+1)
	case inst.LD_HLD_A:
		if err := bus.Write(hl, a); err != nil {
			return err
		}
		return r.SetPair(inst.HL, hl-1)
	case inst.LD_A_HLD:
		if err := loadA(r, bus, hl); err != nil {
			return err
		}
		return r.SetPair(inst.HL, hl-1)
	case inst.LDH_A_N:
		return loadA(r, bus, mmu.IOBase+uint16(in.Imm8()))
	case inst.LDH_N_A:
		return bus.Write(mmu.IOBase+uint16(in.Imm8()), a)
	case inst.LDH_A_C:
		c, _ := r.Get(inst.C)
		return loadA(r, bus, mmu.IOBase+uint16(c))
	case inst.LDH_C_A:
		c, _ := r.Get(inst.C)
		return bus.Write(mmu.IOBase+uint16(c), a)
	case inst.LD_A_I:
		return r.Copy(inst.A, inst.I)
	case inst.LD_A_R:
		return r.Copy(inst.A, inst.R)
	case inst.LD_I_A:
		return r.Copy(inst.I, inst.A)
	case inst.LD_R_A:
		return r.Copy(inst.R, inst.A)

	// === 16-bit loads ===
	case inst.LD_RR_NN:
		return operand(r.SetPair(in.Pair, in.Imm))
	case inst.LD_HL_NNM:
		v, err := bus.ReadWord(in.Imm)
		if err != nil {
			return err
		}
		return r.SetPair(inst.HL, v)
	case inst.LD_NNM_HL:
		return bus.WriteWord(in.Imm, hl)
	case inst.LD_RR_NNM:
		v, err := bus.ReadWord(in.Imm)
		if err != nil {
			return err
		}
		return operand(r.SetPair(in.Pair, v))
	case inst.LD_NNM_RR:
		v, err := r.Pair(in.Pair)
		if err != nil {
			return operand(err)
		}
		return bus.WriteWord(in.Imm, v)
	case inst.LD_SP_HL:
		r.SetSP(hl)
		return nil
	case inst.LD_HL_SPE:
		return r.SetPair(inst.HL, r.SP()+uint16(int16(in.Disp())))

	// === Stack ===
	case inst.PUSH_RR:
		return push(r, bus, in.Pair)
	case inst.POP_RR:
		return pop(r, bus, in.Pair)

	// === Exchange, block transfer, search ===
	case inst.LDI, inst.LDIR, inst.LDD, inst.LDDR,
		inst.CPI, inst.CPIR, inst.CPD, inst.CPDR:
		return fmt.Errorf("%w: %s is reserved", ErrUnsupportedInstruction, inst.Catalog[in.Op].Mnemonic)

	// === 8-bit arithmetic ===
	case inst.ADD_A_REG, inst.ADC_A_REG:
		v, err := r.Get(in.Reg)
		if err != nil {
			return operand(err)
		}
		r.Add(v, in.Op == inst.ADC_A_REG)
	case inst.ADD_A_HLM, inst.ADC_A_HLM:
		v, err := bus.Read(hl)
		if err != nil {
			return err
		}
		r.Add(v, in.Op == inst.ADC_A_HLM)
	case inst.ADD_A_N, inst.ADC_A_N:
		r.Add(in.Imm8(), in.Op == inst.ADC_A_N)
	case inst.SUB_REG, inst.SBC_A_REG:
		v, err := r.Get(in.Reg)
		if err != nil {
			return operand(err)
		}
		r.Sub(v, in.Op == inst.SBC_A_REG)
	case inst.SUB_HLM, inst.SBC_A_HLM:
		v, err := bus.Read(hl)
		if err != nil {
			return err
		}
		r.Sub(v, in.Op == inst.SBC_A_HLM)
	case inst.SUB_N, inst.SBC_A_N:
		r.Sub(in.Imm8(), in.Op == inst.SBC_A_N)

	// === 16-bit arithmetic ===
	case inst.ADD_HL_RR:
		v, err := r.Pair(in.Pair)
		if err != nil {
			return operand(err)
		}
		r.AddHL(v)
	case inst.ADD_SP_E:
		r.SetSP(r.SP() + uint16(int16(in.Disp())))

	// === Bit manipulation ===
	case inst.SWAP_REG:
		v, err := r.Get(in.Reg)
		if err != nil {
			return operand(err)
		}
		return r.Set(in.Reg, v<<4|v>>4)

	default:
		// Reached only by an opcode added to the catalog without a case
		// here. TestDispatchCompleteness fails on errNoRule.
		return fmt.Errorf("%w: %w for opcode %d", ErrUnsupportedInstruction, errNoRule, in.Op)
	}
	return nil
}

func loadA(r *Registers, bus mmu.Bus, addr uint16) error {
	v, err := bus.Read(addr)
	if err != nil {
		return err
	}
	return r.Set(inst.A, v)
}

// push stores qq below SP, low byte at the lower address, as one word write.
func push(r *Registers, bus mmu.Bus, qq inst.Pair) error {
	hiReg, err := r.HighOf(qq)
	if err != nil {
		return operand(err)
	}
	loReg, _ := r.LowOf(qq)
	hi, _ := r.Get(hiReg)
	lo, _ := r.Get(loReg)

	sp := r.SP() - 2
	if err := bus.WriteWord(sp, uint16(hi)<<8|uint16(lo)); err != nil {
		return err
	}
	r.SetSP(sp)
	return nil
}

// pop is the inverse of push.
func pop(r *Registers, bus mmu.Bus, qq inst.Pair) error {
	hiReg, err := r.HighOf(qq)
	if err != nil {
		return operand(err)
	}
	loReg, _ := r.LowOf(qq)

	sp := r.SP()
	v, err := bus.ReadWord(sp)
	if err != nil {
		return err
	}
	r.Set(hiReg, uint8(v>>8))
	r.Set(loReg, uint8(v))
	r.SetSP(sp + 2)
	return nil
}
