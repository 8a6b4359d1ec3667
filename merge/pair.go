package merge

import (
	"github.com/pingcap/errors"
	"golang.org/x/exp/constraints"

	serrors "github.com/king54346/parsort/errors"
)

// MergePair merges the sorted ranges src[leftStart:leftEnd] and
// src[rightStart:rightEnd] into dst starting at dest. Equal keys are taken
// from the left range first. Nothing outside the given ranges is read or
// written, so pairs with disjoint ranges may run concurrently.
func MergePair[T constraints.Integer](src, dst []T, dest, leftStart, leftEnd, rightStart, rightEnd int) error {
	if leftStart < 0 || leftStart > leftEnd || leftEnd > len(src) ||
		rightStart < 0 || rightStart > rightEnd || rightEnd > len(src) ||
		dest < 0 || dest+(leftEnd-leftStart)+(rightEnd-rightStart) > len(dst) {
		return errors.Annotatef(serrors.ErrRangeViolation,
			"merge [%d, %d) and [%d, %d) into %d", leftStart, leftEnd, rightStart, rightEnd, dest)
	}

	left, right, index := leftStart, rightStart, dest
	for left < leftEnd && right < rightEnd {
		if src[left] <= src[right] {
			dst[index] = src[left]
			left++
		} else {
			dst[index] = src[right]
			right++
		}
		index++
	}
	index += copy(dst[index:], src[left:leftEnd])
	copy(dst[index:], src[right:rightEnd])
	return nil
}
