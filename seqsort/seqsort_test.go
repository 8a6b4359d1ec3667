package seqsort

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/pingcap/errors"
	"golang.org/x/exp/slices"

	serrors "github.com/king54346/parsort/errors"
)

func makeRandomInts(r *rand.Rand, n, max int) []int {
	ints := make([]int, n)
	for i := range ints {
		ints[i] = r.Intn(max)
	}
	return ints
}

func sortedCopy(a []int) []int {
	b := append([]int(nil), a...)
	sort.Ints(b)
	return b
}

func TestSortSizes(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	sizes := []int{0, 1, 2, 7, 31, 32, 33, 63, 64, 65, 100, 1000, 4096}
	for _, n := range sizes {
		data := makeRandomInts(r, n, 1000)
		want := sortedCopy(data)
		Sort(data, 0, n-1)
		if !slices.Equal(data, want) {
			t.Errorf("Sort(n=%d) = %v, want %v", n, data, want)
		}
	}
}

func TestSortSubRange(t *testing.T) {
	data := []int{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}
	Sort(data, 2, 6)
	want := []int{9, 8, 3, 4, 5, 6, 7, 2, 1, 0}
	if !slices.Equal(data, want) {
		t.Errorf("Sort(a, 2, 6) = %v, want %v", data, want)
	}
}

func TestSortDescending64(t *testing.T) {
	data := make([]int32, 64)
	for i := range data {
		data[i] = int32(64 - i)
	}
	Sort(data, 0, len(data)-1)
	for i := range data {
		if data[i] != int32(i+1) {
			t.Fatalf("Sort(descending) = %v", data)
		}
	}
}

func TestSortAdversarial(t *testing.T) {
	n := 8192
	tests := []struct {
		name string
		gen  func(i int) int64
	}{
		{"ascending", func(i int) int64 { return int64(i) }},
		{"descending", func(i int) int64 { return int64(n - i) }},
		{"all_equal", func(int) int64 { return 7 }},
		{"sawtooth", func(i int) int64 { return int64(i % 17) }},
		{"negative", func(i int) int64 { return -int64(i * 31 % 1009) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data := make([]int64, n)
			for i := range data {
				data[i] = tc.gen(i)
			}
			Sort(data, 0, n-1)
			if !IsSorted(data) {
				t.Errorf("Sort(%s) produced unsorted result", tc.name)
			}
		})
	}
}

// The insertion branch and the partition branch must agree around the cutover.
func TestThresholdBranchesAgree(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for n := DefaultThreshold - 3; n <= DefaultThreshold+3; n++ {
		for trial := 0; trial < 20; trial++ {
			data := makeRandomInts(r, n, 8)
			insertion := append([]int(nil), data...)
			partitioned := append([]int(nil), data...)

			SortThreshold(insertion, 0, n-1, n+1)
			SortThreshold(partitioned, 0, n-1, 2)

			if !slices.Equal(insertion, partitioned) {
				t.Fatalf("n=%d: insertion %v != partition %v", n, insertion, partitioned)
			}
			if !IsSorted(insertion) {
				t.Fatalf("n=%d: unsorted %v", n, insertion)
			}
		}
	}
}

func TestPartition(t *testing.T) {
	data := []int{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5}
	p := partition(data, 0, len(data)-1)
	pivot := data[p]
	if pivot != 5 {
		t.Fatalf("pivot = %d, want 5", pivot)
	}
	for i := 0; i < p; i++ {
		if data[i] > pivot {
			t.Errorf("data[%d]=%d should be <= pivot %d", i, data[i], pivot)
		}
	}
	for i := p + 1; i < len(data); i++ {
		if data[i] <= pivot {
			t.Errorf("data[%d]=%d should be > pivot %d", i, data[i], pivot)
		}
	}
}

func TestSortRangeViolation(t *testing.T) {
	tests := []struct {
		name       string
		begin, end int
	}{
		{"negative_begin", -1, 3},
		{"end_past_len", 0, 10},
		{"inverted", 5, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				p := recover()
				err, ok := p.(error)
				if !ok || errors.Cause(err) != serrors.ErrRangeViolation {
					t.Errorf("recovered %v, want %v", p, serrors.ErrRangeViolation)
				}
			}()
			Sort(make([]int, 10), tc.begin, tc.end)
		})
	}
}

func TestIsSorted(t *testing.T) {
	if !IsSorted([]int{}) || !IsSorted([]int{1}) || !IsSorted([]int{1, 1, 2}) {
		t.Error("IsSorted rejected sorted input")
	}
	if IsSorted([]int{2, 1}) {
		t.Error("IsSorted accepted unsorted input")
	}
}

func BenchmarkSortSegment(b *testing.B) {
	r := rand.New(rand.NewSource(42))
	src := makeRandomInts(r, 8192, 1<<30)
	data := make([]int, len(src))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		copy(data, src)
		b.StartTimer()
		Sort(data, 0, len(data)-1)
	}
}
