package parsort

import (
	"context"
	"time"
	"unsafe"

	"github.com/pingcap/errors"
	"golang.org/x/exp/constraints"

	serrors "github.com/king54346/parsort/errors"
	"github.com/king54346/parsort/fork_join"
	"github.com/king54346/parsort/merge"
	"github.com/king54346/parsort/segment"
	"github.com/king54346/parsort/seqsort"
)

// Sorter sorts arrays of T with a fixed configuration. A Sorter may be used
// by several goroutines at once, each sorting its own array.
type Sorter[T constraints.Integer] struct {
	cfg  *config
	pool *fork_join.ForkJoinPool
}

// Stats describes one completed sort.
type Stats struct {
	Len      int
	Segments int
	Levels   int // merge passes; 0 when everything fit in one segment
	Strategy Strategy

	SegmentSort time.Duration
	Merge       time.Duration
	Verify      time.Duration
}

// New returns a Sorter configured by opts.
func New[T constraints.Integer](opts ...Option) (*Sorter[T], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.cacheSized {
		var zero T
		cfg.segmentLength = segment.CacheLength(int(unsafe.Sizeof(zero)))
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Sorter[T]{
		cfg:  cfg,
		pool: fork_join.NewForkJoinPool(cfg.parallelism),
	}, nil
}

// SegmentLength returns the segment length in use.
func (s *Sorter[T]) SegmentLength() int {
	return s.cfg.segmentLength
}

// Close releases the Sorter. Sorting afterwards fails with ErrPoolClosed.
func (s *Sorter[T]) Close() {
	s.pool.Close()
}

// Sort sorts a ascending in place. After an error the contents of a are
// unspecified.
func (s *Sorter[T]) Sort(ctx context.Context, a []T) error {
	_, err := s.SortStats(ctx, a)
	return err
}

// SortStats is Sort, also returning what the sort did.
func (s *Sorter[T]) SortStats(ctx context.Context, a []T) (Stats, error) {
	stats := Stats{Len: len(a), Strategy: s.cfg.strategy}
	plan, err := segment.NewPlan(len(a), s.cfg.segmentLength)
	if err != nil {
		return stats, err
	}
	stats.Segments = plan.Count()
	if plan.Count() == 0 {
		return stats, nil
	}

	var before uint64
	if s.cfg.verify {
		before = Fingerprint(a)
	}

	start := time.Now()
	if err := s.sortSegments(ctx, a, plan); err != nil {
		return stats, err
	}
	stats.SegmentSort = time.Since(start)
	s.cfg.observer.StageDone(StageSegmentSort, stats.SegmentSort)

	if plan.Count() > 1 {
		start = time.Now()
		m := s.merger(func(level, runs int, elapsed time.Duration) {
			stats.Levels = level
			s.cfg.observer.LevelDone(level, runs, elapsed)
		})
		if err := m.Merge(ctx, a, make([]T, len(a)), plan); err != nil {
			return stats, errors.Trace(err)
		}
		stats.Merge = time.Since(start)
		s.cfg.observer.StageDone(StageMerge, stats.Merge)
	}

	if s.cfg.verify {
		start = time.Now()
		err := verify(a, before)
		stats.Verify = time.Since(start)
		s.cfg.observer.StageDone(StageVerify, stats.Verify)
		if err != nil {
			return stats, err
		}
	}
	return stats, nil
}

// sortSegments sorts every segment of a as its own task and joins on all.
func (s *Sorter[T]) sortSegments(ctx context.Context, a []T, plan segment.Plan) error {
	tasks := make([]fork_join.Task, plan.Count())
	for i := range tasks {
		seg := plan.Bounds(i)
		tasks[i] = fork_join.Adapt(func() {
			seqsort.SortThreshold(a, seg.Start, seg.End-1, s.cfg.threshold)
		})
	}
	return errors.Trace(s.pool.InvokeAll(ctx, tasks...))
}

func (s *Sorter[T]) merger(onLevel merge.LevelFunc) merge.Merger[T] {
	if s.cfg.strategy == StrategyHeap {
		h := merge.NewHeap[T]()
		h.OnLevel = onLevel
		return h
	}
	d := merge.NewDoubling[T](s.pool, s.cfg.mergeWorkers)
	d.OnLevel = onLevel
	return d
}

func verify[T constraints.Integer](a []T, before uint64) error {
	if !seqsort.IsSorted(a) {
		return errors.Annotate(serrors.ErrVerifyFailed, "output is not ascending")
	}
	if Fingerprint(a) != before {
		return errors.Annotate(serrors.ErrVerifyFailed, "output is not a permutation of the input")
	}
	return nil
}
