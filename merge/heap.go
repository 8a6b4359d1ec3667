package merge

import (
	"context"
	"time"

	"github.com/pingcap/errors"
	"golang.org/x/exp/constraints"

	serrors "github.com/king54346/parsort/errors"
	"github.com/king54346/parsort/segment"
)

// Heap merges all segments in one sequential pass driven by a min-heap
// holding the head of every segment that still has elements. It costs
// O(n log k) for k segments and does not parallelize.
type Heap[T constraints.Integer] struct {
	OnLevel LevelFunc
}

// NewHeap returns a Heap merger.
func NewHeap[T constraints.Integer]() *Heap[T] {
	return &Heap[T]{}
}

func (m *Heap[T]) Merge(ctx context.Context, a, scratch []T, plan segment.Plan) error {
	n := len(a)
	if plan.Len() != n || len(scratch) < n {
		return errors.Annotatef(serrors.ErrRangeViolation,
			"merge %d elements planned for %d with scratch %d", n, plan.Len(), len(scratch))
	}
	if plan.Count() <= 1 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return errors.Trace(err)
	}

	start := time.Now()
	h := newSegmentHeap[T](plan.Count())
	for i := 0; i < plan.Count(); i++ {
		s := plan.Bounds(i)
		h.push(segmentHead[T]{element: a[s.Start], segment: i, next: s.Start + 1})
	}

	out := 0
	for h.len() > 0 {
		top := &h.nodes[0]
		scratch[out] = top.element
		out++
		if top.next < plan.Bounds(top.segment).End {
			top.element = a[top.next]
			top.next++
		} else {
			last := h.len() - 1
			h.nodes[0] = h.nodes[last]
			h.nodes = h.nodes[:last]
		}
		h.down(0)
	}
	if out != n {
		return errors.Annotatef(serrors.ErrRangeViolation, "heap merge emitted %d of %d", out, n)
	}
	copy(a, scratch[:n])

	if m.OnLevel != nil {
		m.OnLevel(1, 1, time.Since(start))
	}
	return nil
}

// segmentHead is the next unread element of one segment.
type segmentHead[T constraints.Integer] struct {
	element T
	segment int
	next    int // read position of the element after this one
}

// segmentHeap is a min-heap of segment heads. Ties go to the lower segment
// index, which keeps equal keys in segment order.
type segmentHeap[T constraints.Integer] struct {
	nodes []segmentHead[T]
}

func newSegmentHeap[T constraints.Integer](capacity int) *segmentHeap[T] {
	return &segmentHeap[T]{nodes: make([]segmentHead[T], 0, capacity)}
}

func (h *segmentHeap[T]) len() int {
	return len(h.nodes)
}

func (h *segmentHeap[T]) push(node segmentHead[T]) {
	h.nodes = append(h.nodes, node)
	h.up(len(h.nodes) - 1)
}

func (h *segmentHeap[T]) less(i, j int) bool {
	if h.nodes[i].element != h.nodes[j].element {
		return h.nodes[i].element < h.nodes[j].element
	}
	return h.nodes[i].segment < h.nodes[j].segment
}

func (h *segmentHeap[T]) up(j int) {
	for j > 0 {
		i := (j - 1) / 2 // parent
		if !h.less(j, i) {
			break
		}
		h.nodes[i], h.nodes[j] = h.nodes[j], h.nodes[i]
		j = i
	}
}

func (h *segmentHeap[T]) down(i int) {
	n := len(h.nodes)
	for {
		j1 := 2*i + 1
		if j1 >= n {
			break
		}
		j := j1 // left child
		if j2 := j1 + 1; j2 < n && h.less(j2, j1) {
			j = j2 // right child
		}
		if !h.less(j, i) {
			break
		}
		h.nodes[i], h.nodes[j] = h.nodes[j], h.nodes[i]
		i = j
	}
}
