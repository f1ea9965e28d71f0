package lsh

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMetadata is returned when a directory holds no valid index metadata.
	ErrNoMetadata = errors.New("lsh: index metadata not found")

	// ErrKmerSizeMismatch is returned when a stored index disagrees with the
	// caller's configured k-mer size. Mixing k-mer sizes silently would make
	// every distance meaningless, so a load aborts instead.
	ErrKmerSizeMismatch = errors.New("lsh: stored k-mer size does not match configured k-mer size")

	// ErrCorruptBucket is returned when a bucket file fails to parse its
	// expected binary layout.
	ErrCorruptBucket = errors.New("lsh: corrupt bucket file")

	// ErrClosed is returned for operations on a closed disk index.
	ErrClosed = errors.New("lsh: index is closed")
)

func errInvalidKmerSize(k int) error {
	return fmt.Errorf("lsh: k-mer size must be >= 1, got %d", k)
}
