// Package parsort is a parallel in-memory sort for arrays of fixed-width
// integer keys.
//
// # Algorithm
//
// The array is cut into cache-sized segments which are sorted concurrently,
// each by a single-threaded insertion sort / quicksort. The sorted segments
// are then merged back into one run by one of two strategies:
//   - StrategyDoubling (default): bottom-up merge that doubles the run length
//     every level, ping-ponging between the array and a scratch buffer. Each
//     pair of runs is split by rank into independent sub-merges that run in
//     parallel and write disjoint output ranges.
//   - StrategyHeap: one sequential k-way merge driven by a min-heap.
//
// Both produce the same output. Every stage and every merge level is joined
// before the next one starts.
//
// # Example Usage
//
//	parsort.Sort(data) // default configuration
//
//	s, err := parsort.New[int64](
//	    parsort.WithSegmentLength(16*1024),
//	    parsort.WithObserver(parsort.NewZapObserver(logger)),
//	)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//	if err := s.Sort(ctx, data); err != nil {
//	    return err
//	}
//
// # Package Structure
//
//   - seqsort: the per-segment sequential sort
//   - segment: segment planning
//   - merge: rank splitting, pair merge, the doubling and heap strategies
//   - fork_join: the bounded fork-join pool all stages run on
//   - errors: error sentinels, compared with errors.Cause
package parsort
