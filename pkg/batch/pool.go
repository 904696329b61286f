// Package batch runs independent programs in parallel, one CPU per program.
package batch

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/oisee/z80sim/pkg/cpu"
	"github.com/oisee/z80sim/pkg/program"
	"github.com/oisee/z80sim/pkg/trace"
)

// Job is one program to run.
type Job struct {
	Name    string
	Program *program.Program
	Options []cpu.Option
}

// Result is the outcome of one Job. Final is the state after the last
// instruction that ran; Err is the first failure, if any.
type Result struct {
	Name  string
	Final cpu.Snapshot
	Trace *trace.Trace
	Err   error
}

// Pool runs jobs on a fixed number of workers.
type Pool struct {
	NumWorkers int
	executed   atomic.Int64
	failed     atomic.Int64
}

// NewPool creates a pool with the given number of workers (0 = NumCPU).
func NewPool(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Pool{NumWorkers: numWorkers}
}

// Stats returns the number of instructions executed and jobs failed.
func (p *Pool) Stats() (executed, failed int64) {
	return p.executed.Load(), p.failed.Load()
}

// Run distributes jobs across workers and returns results in job order.
func (p *Pool) Run(jobs []Job) []Result {
	type task struct {
		i   int
		job Job
	}
	ch := make(chan task, len(jobs))
	for i, j := range jobs {
		ch <- task{i, j}
	}
	close(ch)

	results := make([]Result, len(jobs))
	var wg sync.WaitGroup
	for i := 0; i < p.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range ch {
				results[t.i] = p.runJob(t.job)
			}
		}()
	}
	wg.Wait()
	return results
}

func (p *Pool) runJob(job Job) Result {
	res := Result{Name: job.Name, Trace: trace.New()}
	c, err := job.Program.NewCPU(job.Options...)
	if err != nil {
		p.failed.Add(1)
		res.Err = err
		return res
	}
	res.Err = res.Trace.Run(c, job.Program.Seq)
	res.Final = c.Snapshot()

	steps := int64(res.Trace.Len())
	if res.Err != nil {
		p.failed.Add(1)
		steps--
	}
	p.executed.Add(steps)
	return res
}
