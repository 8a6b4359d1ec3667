package fork_join

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/pingcap/errors"
	"golang.org/x/sync/errgroup"

	serrors "github.com/king54346/parsort/errors"
)

// Task is one independent unit of work. Compute must only write memory no
// other task of the same InvokeAll call writes.
type Task interface {
	Compute() error
}

// TaskFunc adapts a function to Task.
type TaskFunc func() error

func (f TaskFunc) Compute() error { return f() }

// Adapt wraps a function without a result as a Task.
func Adapt(fn func()) Task {
	return TaskFunc(func() error {
		fn()
		return nil
	})
}

// ForkJoinPool runs batches of tasks with at most cap of them in flight and
// joins on the whole batch before returning.
type ForkJoinPool struct {
	cap          int
	closed       atomic.Bool
	panicHandler func(interface{})
}

// NewForkJoinPool returns a pool bounded to workerCap concurrent tasks.
// If workerCap <= 0, uses GOMAXPROCS.
func NewForkJoinPool(workerCap int) *ForkJoinPool {
	if workerCap <= 0 {
		workerCap = runtime.GOMAXPROCS(0)
	}
	return &ForkJoinPool{cap: workerCap}
}

// SetPanicHandler installs a hook called with the value of every recovered
// task panic, before the panic is turned into an error.
func (fp *ForkJoinPool) SetPanicHandler(panicHandler func(interface{})) {
	fp.panicHandler = panicHandler
}

// Cap returns the maximum number of tasks run concurrently.
func (fp *ForkJoinPool) Cap() int {
	return fp.cap
}

// Close makes every later InvokeAll fail with ErrPoolClosed.
// Calling Close multiple times is safe.
func (fp *ForkJoinPool) Close() {
	fp.closed.Store(true)
}

// InvokeAll runs all tasks and blocks until every started task has returned.
// The first failure cancels the tasks that have not started yet and is the
// error returned; panics are recovered and reported as errors. A cancelled
// ctx stops tasks from starting but does not interrupt running ones.
func (fp *ForkJoinPool) InvokeAll(ctx context.Context, tasks ...Task) error {
	if fp.closed.Load() {
		return errors.Trace(serrors.ErrPoolClosed)
	}
	if err := ctx.Err(); err != nil {
		return errors.Trace(err)
	}
	switch len(tasks) {
	case 0:
		return nil
	case 1:
		return fp.compute(tasks[0])
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fp.cap)
	for _, t := range tasks {
		g.Go(func() error {
			if gctx.Err() != nil {
				// A sibling failed or the caller gave up.
				return nil
			}
			return fp.compute(t)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return errors.Trace(ctx.Err())
}

func (fp *ForkJoinPool) compute(t Task) (err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if fp.panicHandler != nil {
			fp.panicHandler(p)
		}
		switch v := p.(type) {
		case runtime.Error:
			err = errors.Annotate(serrors.ErrTaskFailure, v.Error())
		case error:
			err = errors.Trace(v)
		default:
			err = errors.Annotatef(serrors.ErrTaskFailure, "%v", v)
		}
	}()
	return t.Compute()
}
