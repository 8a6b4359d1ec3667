// Package seqsort is the single-threaded leaf sorter run on every segment.
//
// Ranges are inclusive on both ends: Sort(a, begin, end) sorts a[begin..end].
// Short ranges use insertion sort; longer ones are partitioned Lomuto style
// around their last element. The pivot is never randomized, so a range that
// is already sorted (either direction) costs O(n^2). Segments are small enough
// that this has not mattered; keep it in mind before raising segment sizes.
package seqsort

import (
	"github.com/pingcap/errors"
	"golang.org/x/exp/constraints"

	serrors "github.com/king54346/parsort/errors"
)

// DefaultThreshold is the range length below which insertion sort is used.
const DefaultThreshold = 32

// Sort sorts a[begin..end] ascending in place with DefaultThreshold.
func Sort[T constraints.Integer](a []T, begin, end int) {
	SortThreshold(a, begin, end, DefaultThreshold)
}

// SortThreshold sorts a[begin..end] ascending in place, switching to
// insertion sort for ranges shorter than threshold. An empty range
// (end == begin-1) is allowed. Invalid ranges panic with ErrRangeViolation.
// Calls on disjoint ranges of the same slice may run concurrently.
func SortThreshold[T constraints.Integer](a []T, begin, end, threshold int) {
	if begin < 0 || end >= len(a) || begin > end+1 {
		panic(errors.Annotatef(serrors.ErrRangeViolation, "sort range [%d, %d] of %d", begin, end, len(a)))
	}
	quickSort(a, begin, end, threshold)
}

func quickSort[T constraints.Integer](a []T, begin, end, threshold int) {
	for end-begin+1 >= threshold && begin < end {
		p := partition(a, begin, end)
		// Recurse into the smaller side, loop on the larger one.
		if p-begin < end-p {
			quickSort(a, begin, p-1, threshold)
			begin = p + 1
		} else {
			quickSort(a, p+1, end, threshold)
			end = p - 1
		}
	}
	InsertionSort(a, begin, end)
}

// partition places a[end] at its final position p, with a[begin..p-1] <= a[p]
// and a[p+1..end] > a[p], and returns p.
func partition[T constraints.Integer](a []T, begin, end int) int {
	pivot := a[end]
	i := begin - 1
	for j := begin; j < end; j++ {
		if a[j] <= pivot {
			i++
			a[i], a[j] = a[j], a[i]
		}
	}
	a[i+1], a[end] = a[end], a[i+1]
	return i + 1
}

// InsertionSort sorts a[begin..end]. Only strictly greater elements are
// shifted, so equal keys keep their relative order.
func InsertionSort[T constraints.Integer](a []T, begin, end int) {
	for i := begin + 1; i <= end; i++ {
		key := a[i]
		j := i - 1
		for j >= begin && a[j] > key {
			a[j+1] = a[j]
			j--
		}
		a[j+1] = key
	}
}

// IsSorted reports whether a is in non-decreasing order.
func IsSorted[T constraints.Integer](a []T) bool {
	for i := len(a) - 1; i > 0; i-- {
		if a[i] < a[i-1] {
			return false
		}
	}
	return true
}
