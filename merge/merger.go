// Package merge turns a segment-sorted array into one sorted run.
//
// Two strategies implement Merger: Doubling merges adjacent runs level by
// level and spreads every pair merge over several workers with Split, while
// Heap does a single sequential k-way pass. Both produce identical output.
package merge

import (
	"context"
	"time"

	"golang.org/x/exp/constraints"

	"github.com/king54346/parsort/fork_join"
	"github.com/king54346/parsort/segment"
)

// Merger merges the sorted segments of a, as described by plan, into one
// sorted run. scratch must hold at least len(a) elements; its contents on
// return are unspecified.
type Merger[T constraints.Integer] interface {
	Merge(ctx context.Context, a, scratch []T, plan segment.Plan) error
}

// Invoker runs a batch of tasks and joins on all of them.
type Invoker interface {
	InvokeAll(ctx context.Context, tasks ...fork_join.Task) error
}

// LevelFunc is called after each merge pass with the 1-based pass number,
// the number of runs left, and the time the pass took.
type LevelFunc func(level, runs int, elapsed time.Duration)
