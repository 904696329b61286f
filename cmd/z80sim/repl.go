package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/oisee/z80sim/pkg/cpu"
	"github.com/oisee/z80sim/pkg/inst"
)

const replHelp = `Enter one instruction per line, e.g. LD B, 42
  .mem ADDR [N]   dump N bytes (default 16) from ADDR
  .reset          zero registers and clock
  .flags          show F as ZNHC
  .quit           leave`

// repl executes one instruction per input line and prints the new state.
// Lines starting with '.' are commands.
func repl(c *cpu.CPU, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "z80sim %s, .help for commands\n", c.Variant())
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ".") {
			if quit := replCommand(c, line, out); quit {
				return nil
			}
			continue
		}

		seq, err := inst.ParseSeq(line)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if err := c.Run(seq); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
		fmt.Fprintln(out, c.Snapshot())
	}
}

func replCommand(c *cpu.CPU, line string, out io.Writer) (quit bool) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ".quit", ".q", ".exit":
		return true
	case ".help", ".h":
		fmt.Fprintln(out, replHelp)
	case ".reset":
		c.Reset()
		fmt.Fprintln(out, c.Snapshot())
	case ".flags":
		f, _ := c.Registers().Get(inst.F)
		fmt.Fprintln(out, cpu.FlagString(f))
	case ".mem":
		if err := dumpMemory(c, fields[1:], out); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	default:
		fmt.Fprintf(out, "unknown command %s, .help for commands\n", fields[0])
	}
	return false
}

// maxDump is the whole address space.
const maxDump = 0x10000

func dumpMemory(c *cpu.CPU, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf(".mem needs an address")
	}
	addr, err := strconv.ParseUint(strings.TrimSuffix(strings.TrimPrefix(strings.ToLower(args[0]), "0x"), "h"), 16, 16)
	if err != nil {
		return fmt.Errorf("bad address %q", args[0])
	}
	n := 16
	if len(args) > 1 {
		if n, err = strconv.Atoi(args[1]); err != nil || n <= 0 || n > maxDump {
			return fmt.Errorf("bad length %q (1..%d)", args[1], maxDump)
		}
	}

	for i := 0; i < n; i++ {
		a := uint16(int(addr) + i)
		if i%16 == 0 {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "%04X:", a)
		}
		v, err := c.Bus().Read(a)
		if err != nil {
			fmt.Fprint(out, " --")
			continue
		}
		fmt.Fprintf(out, " %02X", v)
	}
	fmt.Fprintln(out)
	return nil
}
