package lsh

import (
	"genosketch/internal/domain"
)

// MemoryIndex is the in-memory LSH index: S stage tables of B buckets.
// Inserts and queries may interleave at any time.
type MemoryIndex struct {
	params  domain.Params
	banding *Banding
	stages  [][]*Bucket
}

// NewMemoryIndex creates an empty index with the given immutable parameters.
func NewMemoryIndex(width, stages, buckets, kmerSize int) (*MemoryIndex, error) {
	banding, err := NewBanding(width, stages, buckets)
	if err != nil {
		return nil, err
	}
	if kmerSize < 1 {
		return nil, errInvalidKmerSize(kmerSize)
	}

	tables := make([][]*Bucket, stages)
	for i := range tables {
		tables[i] = make([]*Bucket, buckets)
	}

	return &MemoryIndex{
		params:  domain.Params{Width: width, Stages: stages, Buckets: buckets, KmerSize: kmerSize},
		banding: banding,
		stages:  tables,
	}, nil
}

func (x *MemoryIndex) Params() domain.Params {
	return x.params
}

// Add appends the sketch to one bucket per stage. Cost is O(stages),
// independent of corpus size.
func (x *MemoryIndex) Add(sketch domain.Sketch) error {
	for stage, idx := range x.banding.Indices(sketch.Signature) {
		b := x.stages[stage][idx]
		if b == nil {
			b = NewBucket()
			x.stages[stage][idx] = b
		}
		b.Add(sketch)
	}
	return nil
}

// GetClosest unions the stage-hit buckets into a label-deduplicated
// candidate set, scores every candidate with the true estimator and returns
// the maxNeighbors closest within maxDist. No qualifying neighbor is a
// normal empty result, not an error.
func (x *MemoryIndex) GetClosest(query domain.Signature, maxNeighbors int, maxDist float64) ([]domain.Neighbor, error) {
	if err := validateQuery(maxNeighbors, maxDist); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var candidates []domain.Sketch
	for stage, idx := range x.banding.Indices(query) {
		b := x.stages[stage][idx]
		if b == nil {
			continue
		}
		for _, s := range b.Sketches() {
			if _, ok := seen[s.Label]; ok {
				continue
			}
			seen[s.Label] = struct{}{}
			candidates = append(candidates, s)
		}
	}

	neighbors := scoreCandidates(query, candidates, maxDist)
	if len(neighbors) > maxNeighbors {
		neighbors = neighbors[:maxNeighbors]
	}
	return neighbors, nil
}

// Save is a no-op: the in-memory index has no backing storage.
func (x *MemoryIndex) Save() error {
	return nil
}

// Close is a no-op.
func (x *MemoryIndex) Close() error {
	return nil
}
