// Package errors defines the error sentinels shared by every parsort package.
//
// Call sites wrap these with github.com/pingcap/errors (Trace, Annotatef), so
// callers should compare with errors.Cause(err) == ErrX.
package errors

import "github.com/pingcap/errors"

var (
	// ErrInvalidConfiguration reports a non-positive segment length, worker
	// count, threshold or parallelism.
	ErrInvalidConfiguration = errors.New("parsort: invalid configuration")

	// ErrRangeViolation reports an out-of-bounds or inverted range handed to
	// a sorting or merging unit. It indicates a defect, never bad input.
	ErrRangeViolation = errors.New("parsort: range violation")

	// ErrTaskFailure reports a worker task that panicked.
	ErrTaskFailure = errors.New("parsort: task failure")

	// ErrPoolClosed is returned when work is submitted to a closed pool.
	ErrPoolClosed = errors.New("parsort: fork-join pool is closed")

	// ErrVerifyFailed is returned in verify mode when the output is not an
	// ascending permutation of the input.
	ErrVerifyFailed = errors.New("parsort: verification failed")
)
