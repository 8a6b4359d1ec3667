package parsort

import (
	"context"

	"golang.org/x/exp/constraints"
)

// Sort sorts a ascending in place using the default configuration. Errors
// can only come from internal defects, so Sort panics on them.
func Sort[T constraints.Integer](a []T) {
	if err := SortContext(context.Background(), a); err != nil {
		panic(err)
	}
}

// SortContext sorts a ascending in place with the given options. ctx is
// checked between stages and merge levels.
func SortContext[T constraints.Integer](ctx context.Context, a []T, opts ...Option) error {
	s, err := New[T](opts...)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.Sort(ctx, a)
}
