package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oisee/z80sim/pkg/batch"
	"github.com/oisee/z80sim/pkg/cpu"
	"github.com/oisee/z80sim/pkg/inst"
	"github.com/oisee/z80sim/pkg/log"
	"github.com/oisee/z80sim/pkg/program"
	"github.com/oisee/z80sim/pkg/trace"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "z80sim",
		Short:         "Cycle-counting Z80 / Game Boy CPU instruction simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var variant cpu.Variant
	var verbose bool
	addVariantFlag(rootCmd.PersistentFlags(), &variant)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every executed instruction")

	newLogger := func() log.Logger {
		return log.New(os.Stderr, verbose)
	}

	// run command
	var showTrace bool
	var output string
	var numWorkers int

	runCmd := &cobra.Command{
		Use:   "run [program.yaml...]",
		Short: "Run YAML programs and print their final state",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			if len(args) == 1 {
				p, err := program.LoadFile(args[0])
				if err != nil {
					return err
				}
				if cmd.Flags().Changed("variant") {
					p.Variant = variant
				}
				c, err := p.NewCPU(cpu.WithLogger(logger))
				if err != nil {
					return err
				}
				logger.Debugf("loaded %s: %d instructions, variant %s", args[0], len(p.Seq), p.Variant)
				return execute(c, logger, p.Seq, showTrace, output)
			}
			if err := checkBatchFlags(len(args), output); err != nil {
				return err
			}
			return runBatch(os.Stdout, args, numWorkers, showTrace, logger, func(p *program.Program) {
				if cmd.Flags().Changed("variant") {
					p.Variant = variant
				}
			})
		},
	}
	runCmd.Flags().BoolVar(&showTrace, "trace", false, "Print the state after every instruction")
	runCmd.Flags().StringVar(&output, "output", "", "Write the trace as JSON to this file (single program only)")
	runCmd.Flags().IntVar(&numWorkers, "workers", 0, "Number of workers for several programs (0 = NumCPU)")

	// exec command
	execCmd := &cobra.Command{
		Use:   "exec [instructions]",
		Short: `Execute assembly on a fresh CPU, e.g. "LD HL, 1234h : LD (HL+), A"`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := inst.ParseSeq(strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("failed to parse: %w", err)
			}
			logger := newLogger()
			c := cpu.New(cpu.WithVariant(variant), cpu.WithLogger(logger))
			return execute(c, logger, seq, showTrace, output)
		},
	}
	execCmd.Flags().BoolVar(&showTrace, "trace", false, "Print the state after every instruction")
	execCmd.Flags().StringVar(&output, "output", "", "Write the trace as JSON to this file")

	// repl command
	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Read one instruction per line, execute it and print the state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cpu.New(cpu.WithVariant(variant), cpu.WithLogger(newLogger()))
			return repl(c, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	// catalog command
	var family string

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "List instruction forms with their cycle costs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeCatalog(cmd.OutOrStdout(), family)
		},
	}
	catalogCmd.Flags().StringVarP(&family, "family", "f", "", "Only list this family (load8, load16, stack, block, arith8, arith16, bit)")

	rootCmd.AddCommand(runCmd, execCmd, replCmd, catalogCmd)
	if err := rootCmd.Execute(); err != nil {
		log.New(os.Stderr, false).Errorf("%v", err)
		os.Exit(1)
	}
}

func addVariantFlag(fs *pflag.FlagSet, v *cpu.Variant) {
	fs.Var(v, "variant", "Register model (gbz80, z80)")
}

// checkBatchFlags rejects flags that only make sense for one program.
func checkBatchFlags(n int, output string) error {
	if n > 1 && output != "" {
		return fmt.Errorf("--output takes a single program, got %d", n)
	}
	return nil
}

// runBatch runs several programs in parallel and prints one line per
// program, preceded by its trace when showTrace is set. It fails if any
// program failed.
func runBatch(w io.Writer, paths []string, numWorkers int, showTrace bool, logger log.Logger, adjust func(*program.Program)) error {
	var jobs []batch.Job
	for _, path := range paths {
		p, err := program.LoadFile(path)
		if err != nil {
			return err
		}
		adjust(p)
		jobs = append(jobs, batch.Job{Name: path, Program: p})
	}

	pool := batch.NewPool(numWorkers)
	logger.Debugf("running %d programs on %d workers", len(jobs), pool.NumWorkers)
	results := pool.Run(jobs)

	failures := 0
	for _, res := range results {
		if showTrace {
			fmt.Fprintf(w, "== %s\n", res.Name)
			if err := res.Trace.WriteText(w); err != nil {
				return err
			}
		}
		if res.Err != nil {
			failures++
			fmt.Fprintf(w, "%s: FAIL %v\n", res.Name, res.Err)
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", res.Name, res.Final)
	}
	executed, _ := pool.Stats()
	fmt.Fprintf(w, "%d programs, %d instructions executed, %d failed\n", len(results), executed, failures)
	if failures > 0 {
		return fmt.Errorf("%d of %d programs failed", failures, len(results))
	}
	return nil
}

// execute runs seq on c, printing the trace if asked, then the final state.
func execute(c *cpu.CPU, logger log.Logger, seq []inst.Instruction, showTrace bool, output string) error {
	tr := trace.New()
	runErr := tr.Run(c, seq)

	if showTrace {
		if err := tr.WriteText(os.Stdout); err != nil {
			return err
		}
	}
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := tr.WriteJSON(f); err != nil {
			return err
		}
		logger.Infof("trace written to %s", output)
	}

	fmt.Printf("%d instructions, %d machine cycles, %d ticks\n",
		tr.Len(), c.Clock().Machine, c.Clock().Time)
	fmt.Println(c.Snapshot())
	return runErr
}
