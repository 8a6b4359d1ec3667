package parsort

import "fmt"

// Strategy selects how sorted segments are merged.
type Strategy int

const (
	// StrategyDoubling merges adjacent runs level by level, with every run
	// merge split across several workers.
	StrategyDoubling Strategy = iota

	// StrategyHeap merges all segments in one sequential k-way heap pass.
	StrategyHeap
)

func (s Strategy) String() string {
	switch s {
	case StrategyDoubling:
		return "doubling"
	case StrategyHeap:
		return "heap"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}
