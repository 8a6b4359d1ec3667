package parsort

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"
	"golang.org/x/exp/constraints"

	"github.com/king54346/parsort/seqsort"
)

// Fingerprint returns a hash of the multiset of keys in a. It does not depend
// on order, so a sorted array has the same fingerprint as its input.
func Fingerprint[T constraints.Integer](a []T) uint64 {
	var buf [8]byte
	var sum uint64
	for _, v := range a {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		sum += xxh3.Hash(buf[:])
	}
	return sum
}

// IsSorted reports whether a is in non-decreasing order.
func IsSorted[T constraints.Integer](a []T) bool {
	return seqsort.IsSorted(a)
}
