// Package segment splits an array into contiguous, cache-sized segments.
package segment

import (
	"github.com/klauspost/cpuid/v2"
	"github.com/pingcap/errors"

	serrors "github.com/king54346/parsort/errors"
)

const (
	// DefaultLength is the segment length, in elements, used when none is
	// configured.
	DefaultLength = 8 * 1024

	// minCacheLength bounds CacheLength from below on CPUs with tiny caches.
	minCacheLength = 1024
)

// Segment is the half-open range [Start, End) of one segment.
type Segment struct {
	Start int
	End   int
}

// Len returns the number of elements in the segment.
func (s Segment) Len() int {
	return s.End - s.Start
}

// Plan is the segmentation of an array of n elements into segments of
// length elements. Only the last segment may be shorter.
type Plan struct {
	n      int
	length int
	count  int
}

// NewPlan computes the segmentation of n elements into segments of length
// elements.
func NewPlan(n, length int) (Plan, error) {
	if length <= 0 {
		return Plan{}, errors.Annotatef(serrors.ErrInvalidConfiguration, "segment length %d", length)
	}
	if n < 0 {
		return Plan{}, errors.Annotatef(serrors.ErrRangeViolation, "array length %d", n)
	}
	count := n / length
	if n%length != 0 {
		count++
	}
	return Plan{
		n:      n,
		length: length,
		count:  count,
	}, nil
}

// Len returns the number of elements covered by the plan.
func (p Plan) Len() int { return p.n }

// Length returns the configured segment length.
func (p Plan) Length() int { return p.length }

// Count returns the number of segments.
func (p Plan) Count() int { return p.count }

// Bounds returns segment i. It panics with ErrRangeViolation if i is not in
// [0, Count()).
func (p Plan) Bounds(i int) Segment {
	if i < 0 || i >= p.count {
		panic(errors.Annotatef(serrors.ErrRangeViolation, "segment %d of %d", i, p.count))
	}
	// i < count keeps start <= n, so neither sum below can overflow.
	start := i * p.length
	return Segment{
		Start: start,
		End:   start + min(p.length, p.n-start),
	}
}

// Segments returns every segment in order.
func (p Plan) Segments() []Segment {
	segs := make([]Segment, p.count)
	for i := range segs {
		segs[i] = p.Bounds(i)
	}
	return segs
}

// CacheLength returns a segment length, in elements of keyWidth bytes, such
// that one segment and its scratch copy fit in the L2 data cache. It returns
// DefaultLength when the cache size is unknown.
func CacheLength(keyWidth int) int {
	l2 := cpuid.CPU.Cache.L2
	if l2 <= 0 || keyWidth <= 0 {
		return DefaultLength
	}
	return max(l2/2/keyWidth, minCacheLength)
}
