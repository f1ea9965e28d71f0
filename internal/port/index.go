package port

import "genosketch/internal/domain"

// Index is the approximate nearest-neighbor index over sketches. Both the
// in-memory and the disk-backed implementation satisfy it.
type Index interface {
	// Add inserts a sketch into every stage of the index. Re-adding a label
	// that already lives in a hit bucket replaces the previous sketch.
	Add(sketch domain.Sketch) error

	// GetClosest returns up to maxNeighbors labels within maxDist of the
	// query signature, ascending by distance. An empty result is a normal,
	// non-error outcome.
	GetClosest(query domain.Signature, maxNeighbors int, maxDist float64) ([]domain.Neighbor, error)

	// Params returns the immutable index parameters.
	Params() domain.Params

	// Save makes all completed work durable. Idempotent.
	Save() error

	// Close saves and releases held resources. Safe after an explicit Save.
	Close() error
}
