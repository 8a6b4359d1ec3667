package merge

import (
	"context"
	"time"

	"github.com/pingcap/errors"
	"golang.org/x/exp/constraints"

	serrors "github.com/king54346/parsort/errors"
	"github.com/king54346/parsort/fork_join"
	"github.com/king54346/parsort/segment"
)

// DefaultWorkers is the number of pairs each run merge is split into.
const DefaultWorkers = 4

// Doubling is a bottom-up merge. Each level merges adjacent runs pairwise,
// doubling the run length, and alternates between a and scratch as the
// destination. A trailing run without a partner is copied across unchanged.
type Doubling[T constraints.Integer] struct {
	Pool    Invoker
	Workers int
	OnLevel LevelFunc
}

// NewDoubling returns a Doubling merger that splits every run merge into
// workers pairs and runs them on pool.
func NewDoubling[T constraints.Integer](pool Invoker, workers int) *Doubling[T] {
	return &Doubling[T]{Pool: pool, Workers: workers}
}

func (d *Doubling[T]) Merge(ctx context.Context, a, scratch []T, plan segment.Plan) error {
	if d.Workers <= 0 {
		return errors.Annotatef(serrors.ErrInvalidConfiguration, "merge workers %d", d.Workers)
	}
	n := len(a)
	if plan.Len() != n || len(scratch) < n {
		return errors.Annotatef(serrors.ErrRangeViolation,
			"merge %d elements planned for %d with scratch %d", n, plan.Len(), len(scratch))
	}

	parts := plan.Count()
	src, dst := a, scratch[:n]
	level := 0
	for width := 1; width < parts; width <<= 1 {
		start := time.Now()
		var tasks []fork_join.Task
		for i := 0; i < parts; i += 2 * width {
			left := plan.Bounds(i).Start
			middle := runStart(plan, i+width)
			right := runStart(plan, i+2*width)
			if middle >= right {
				copy(dst[left:right], src[left:right])
				continue
			}

			sp, err := Split(src, left, middle, right, left, d.Workers)
			if err != nil {
				return errors.Trace(err)
			}
			tasks = appendPairTasks(tasks, src, dst, sp)
		}
		// Every pair of this level must land before the next level reads dst.
		if err := d.Pool.InvokeAll(ctx, tasks...); err != nil {
			return errors.Trace(err)
		}

		src, dst = dst, src
		level++
		if d.OnLevel != nil {
			runs := (parts + 2*width - 1) / (2 * width)
			d.OnLevel(level, runs, time.Since(start))
		}
	}
	if level%2 == 1 {
		copy(a, src)
	}
	return nil
}

// runStart returns where segment i begins, or the array length past the end.
func runStart(plan segment.Plan, i int) int {
	if i >= plan.Count() {
		return plan.Len()
	}
	return plan.Bounds(i).Start
}

func appendPairTasks[T constraints.Integer](tasks []fork_join.Task, src, dst []T, sp SplitPlan) []fork_join.Task {
	for i := 0; i < sp.Workers(); i++ {
		if sp.Len(i) == 0 {
			continue
		}
		dest, ls, le, rs, re := sp.Dest[i], sp.LeftStart[i], sp.LeftEnd[i], sp.RightStart[i], sp.RightEnd[i]
		tasks = append(tasks, fork_join.TaskFunc(func() error {
			return MergePair(src, dst, dest, ls, le, rs, re)
		}))
	}
	return tasks
}
