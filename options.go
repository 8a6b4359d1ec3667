package parsort

import (
	"runtime"

	"github.com/pingcap/errors"

	serrors "github.com/king54346/parsort/errors"
	"github.com/king54346/parsort/merge"
	"github.com/king54346/parsort/segment"
	"github.com/king54346/parsort/seqsort"
)

// Option configures a Sorter.
type Option func(*config)

type config struct {
	segmentLength int
	cacheSized    bool // derive segmentLength from the L2 cache in New
	mergeWorkers  int
	threshold     int
	parallelism   int
	strategy      Strategy
	observer      Observer
	verify        bool
}

func defaultConfig() *config {
	return &config{
		segmentLength: segment.DefaultLength,
		mergeWorkers:  merge.DefaultWorkers,
		threshold:     seqsort.DefaultThreshold,
		parallelism:   runtime.GOMAXPROCS(0),
		strategy:      StrategyDoubling,
		observer:      NopObserver{},
	}
}

func (c *config) validate() error {
	switch {
	case c.segmentLength <= 0:
		return errors.Annotatef(serrors.ErrInvalidConfiguration, "segment length %d", c.segmentLength)
	case c.mergeWorkers <= 0:
		return errors.Annotatef(serrors.ErrInvalidConfiguration, "merge workers %d", c.mergeWorkers)
	case c.threshold <= 0:
		return errors.Annotatef(serrors.ErrInvalidConfiguration, "small range threshold %d", c.threshold)
	case c.parallelism <= 0:
		return errors.Annotatef(serrors.ErrInvalidConfiguration, "parallelism %d", c.parallelism)
	case c.strategy != StrategyDoubling && c.strategy != StrategyHeap:
		return errors.Annotatef(serrors.ErrInvalidConfiguration, "strategy %d", int(c.strategy))
	}
	return nil
}

// WithSegmentLength sets the number of elements per segment. Pick a size
// whose working set fits in L1 or L2. Overrides WithCacheSizedSegments.
func WithSegmentLength(n int) Option {
	return func(c *config) {
		c.segmentLength = n
		c.cacheSized = false
	}
}

// WithCacheSizedSegments sizes segments so that a segment and its scratch
// copy fit in the L2 data cache of the current CPU.
func WithCacheSizedSegments() Option {
	return func(c *config) {
		c.cacheSized = true
	}
}

// WithMergeWorkers sets how many independent pairs each run merge is split
// into by the doubling strategy.
func WithMergeWorkers(n int) Option {
	return func(c *config) {
		c.mergeWorkers = n
	}
}

// WithSmallRangeThreshold sets the range length below which segments are
// insertion sorted.
func WithSmallRangeThreshold(n int) Option {
	return func(c *config) {
		c.threshold = n
	}
}

// WithParallelism bounds the number of tasks run at once.
// Default is GOMAXPROCS.
func WithParallelism(n int) Option {
	return func(c *config) {
		c.parallelism = n
	}
}

// WithStrategy selects the merge strategy. Default is StrategyDoubling.
func WithStrategy(s Strategy) Option {
	return func(c *config) {
		c.strategy = s
	}
}

// WithObserver installs a sink for stage timings. A nil observer restores
// the no-op default.
func WithObserver(o Observer) Option {
	return func(c *config) {
		if o == nil {
			o = NopObserver{}
		}
		c.observer = o
	}
}

// WithVerify makes every sort check its own output: the result must be
// ascending and have the same Fingerprint as the input.
func WithVerify() Option {
	return func(c *config) {
		c.verify = true
	}
}
