package segment

import (
	"math"
	"testing"

	"github.com/pingcap/errors"

	serrors "github.com/king54346/parsort/errors"
)

func TestNewPlan(t *testing.T) {
	tests := []struct {
		name      string
		n, length int
		count     int
		last      Segment
	}{
		{"exact", 8, 2, 4, Segment{6, 8}},
		{"short_tail", 10, 4, 3, Segment{8, 10}},
		{"single", 3, 8, 1, Segment{0, 3}},
		{"one_element", 1, 1, 1, Segment{0, 1}},
		{"large", 10000, 1024, 10, Segment{9216, 10000}},
		{"max_length", 6, math.MaxInt, 1, Segment{0, 6}},
		{"near_max_length", 1000, math.MaxInt - 10, 1, Segment{0, 1000}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewPlan(tc.n, tc.length)
			if err != nil {
				t.Fatalf("NewPlan(%d, %d): %v", tc.n, tc.length, err)
			}
			if p.Count() != tc.count {
				t.Errorf("Count() = %d, want %d", p.Count(), tc.count)
			}
			if got := p.Bounds(p.Count() - 1); got != tc.last {
				t.Errorf("last segment = %+v, want %+v", got, tc.last)
			}
		})
	}
}

func TestPlanEmpty(t *testing.T) {
	p, err := NewPlan(0, 16)
	if err != nil {
		t.Fatal(err)
	}
	if p.Count() != 0 || len(p.Segments()) != 0 {
		t.Errorf("empty plan has %d segments", p.Count())
	}
}

// Segments must be contiguous and cover the array exactly.
func TestSegmentsCover(t *testing.T) {
	for n := 0; n < 100; n++ {
		for length := 1; length < 12; length++ {
			p, err := NewPlan(n, length)
			if err != nil {
				t.Fatal(err)
			}
			next := 0
			for _, s := range p.Segments() {
				if s.Start != next || s.Len() <= 0 || s.Len() > length {
					t.Fatalf("n=%d length=%d: bad segment %+v", n, length, s)
				}
				next = s.End
			}
			if next != n {
				t.Fatalf("n=%d length=%d: segments end at %d", n, length, next)
			}
		}
	}
}

func TestPlanMaxLengthEmpty(t *testing.T) {
	p, err := NewPlan(0, math.MaxInt)
	if err != nil {
		t.Fatal(err)
	}
	if p.Count() != 0 {
		t.Errorf("Count() = %d, want 0", p.Count())
	}
}

func TestNewPlanInvalid(t *testing.T) {
	for _, length := range []int{0, -1} {
		if _, err := NewPlan(10, length); errors.Cause(err) != serrors.ErrInvalidConfiguration {
			t.Errorf("NewPlan(10, %d) = %v, want %v", length, err, serrors.ErrInvalidConfiguration)
		}
	}
	if _, err := NewPlan(-1, 4); errors.Cause(err) != serrors.ErrRangeViolation {
		t.Errorf("NewPlan(-1, 4) = %v, want %v", err, serrors.ErrRangeViolation)
	}
}

func TestBoundsOutOfRange(t *testing.T) {
	p, _ := NewPlan(10, 4)
	defer func() {
		err, ok := recover().(error)
		if !ok || errors.Cause(err) != serrors.ErrRangeViolation {
			t.Errorf("Bounds(3) did not panic with %v", serrors.ErrRangeViolation)
		}
	}()
	p.Bounds(3)
}

func TestCacheLength(t *testing.T) {
	for _, width := range []int{1, 4, 8} {
		if got := CacheLength(width); got < minCacheLength {
			t.Errorf("CacheLength(%d) = %d, want >= %d", width, got, minCacheLength)
		}
	}
	if got := CacheLength(0); got != DefaultLength {
		t.Errorf("CacheLength(0) = %d, want %d", got, DefaultLength)
	}
}
