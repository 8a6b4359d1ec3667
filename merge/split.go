package merge

import (
	"github.com/pingcap/errors"
	"golang.org/x/exp/constraints"

	serrors "github.com/king54346/parsort/errors"
)

// SplitPlan divides the merge of two adjacent sorted runs into independent
// pair merges. Pair i merges src[LeftStart[i]:LeftEnd[i]] with
// src[RightStart[i]:RightEnd[i]] into dst starting at Dest[i]. Left and
// right sub-ranges of pair i continue exactly where those of pair i-1 end.
type SplitPlan struct {
	LeftStart  []int
	LeftEnd    []int
	RightStart []int
	RightEnd   []int
	Dest       []int
}

// Workers returns the number of pairs in the plan.
func (p SplitPlan) Workers() int {
	return len(p.Dest)
}

// Len returns the number of elements merged by pair i.
func (p SplitPlan) Len(i int) int {
	return p.LeftEnd[i] - p.LeftStart[i] + p.RightEnd[i] - p.RightStart[i]
}

// Split plans the merge of the sorted runs src[sourceLeft:sourceMiddle] and
// src[sourceMiddle:sourceRight] into workers pairs whose output starts at
// dest.
//
// The left run is cut into chunks of ceil(len/workers) elements. The last
// element of each chunk is its pivot, and the chunk is matched with every not
// yet assigned right element <= pivot. Pivots never decrease, so merging the
// pairs one after another gives the same output as one merge of both runs
// that prefers the left run on ties. Once the left run is used up, the next
// pair takes whatever is left of the right run, as does the last pair.
func Split[T constraints.Integer](src []T, sourceLeft, sourceMiddle, sourceRight, dest, workers int) (SplitPlan, error) {
	if workers <= 0 {
		return SplitPlan{}, errors.Annotatef(serrors.ErrInvalidConfiguration, "merge workers %d", workers)
	}
	if sourceLeft < 0 || sourceLeft > sourceMiddle || sourceMiddle > sourceRight || sourceRight > len(src) || dest < 0 {
		return SplitPlan{}, errors.Annotatef(serrors.ErrRangeViolation,
			"split [%d, %d, %d) of %d into %d", sourceLeft, sourceMiddle, sourceRight, len(src), dest)
	}

	p := SplitPlan{
		LeftStart:  make([]int, workers),
		LeftEnd:    make([]int, workers),
		RightStart: make([]int, workers),
		RightEnd:   make([]int, workers),
		Dest:       make([]int, workers),
	}

	chunk := (sourceMiddle - sourceLeft + workers - 1) / workers
	left, middle := sourceLeft, sourceMiddle
	for i := 0; i < workers; i++ {
		var nextLeft, nextMiddle int
		if left == sourceMiddle || i == workers-1 {
			nextLeft, nextMiddle = sourceMiddle, sourceRight
		} else {
			nextLeft = min(sourceLeft+(i+1)*chunk, sourceMiddle)
			nextMiddle = rightBoundary(src, middle, sourceRight, src[nextLeft-1])
		}

		p.LeftStart[i], p.LeftEnd[i] = left, nextLeft
		p.RightStart[i], p.RightEnd[i] = middle, nextMiddle
		p.Dest[i] = dest + (left - sourceLeft) + (middle - sourceMiddle)

		left, middle = nextLeft, nextMiddle
	}
	return p, nil
}

// rightBoundary returns the first index in src[lo:hi] holding a value greater
// than pivot. The binary search stops at any element equal to pivot, and the
// scan that follows walks over the rest of the equal ones, so a long run of
// duplicates costs linear time.
func rightBoundary[T constraints.Integer](src []T, lo, hi int, pivot T) int {
	idx := -1
	l, h := lo, hi-1
	for l <= h {
		m := int(uint(l+h) >> 1)
		if src[m] < pivot {
			l = m + 1
		} else if src[m] > pivot {
			h = m - 1
		} else {
			idx = m
			break
		}
	}
	if idx < 0 {
		idx = l
	}
	for idx < hi && src[idx] <= pivot {
		idx++
	}
	return idx
}
