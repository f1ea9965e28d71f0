package lsh

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"genosketch/internal/adapter/minhash"
	"genosketch/internal/domain"
)

// parallelThreshold is the candidate-set size above which distance scoring
// moves onto the worker pool. Below it the goroutine overhead outweighs the
// pure arithmetic.
const parallelThreshold = 64

// validateQuery rejects invalid query parameters before any search work.
func validateQuery(maxNeighbors int, maxDist float64) error {
	if maxNeighbors <= 0 {
		return fmt.Errorf("lsh: max neighbors must be > 0, got %d", maxNeighbors)
	}
	if maxDist <= 0 || maxDist > 1 {
		return fmt.Errorf("lsh: max distance must be in (0, 1], got %g", maxDist)
	}
	return nil
}

// scoreCandidates computes the true estimator distance for every candidate,
// drops those beyond maxDist and returns the survivors ascending by
// distance, ties broken by label. Scoring is pure, so large candidate sets
// fan out across a bounded worker pool.
func scoreCandidates(query domain.Signature, candidates []domain.Sketch, maxDist float64) []domain.Neighbor {
	distances := make([]float64, len(candidates))

	if len(candidates) < parallelThreshold {
		for i := range candidates {
			distances[i] = minhash.Distance(query, candidates[i].Signature)
		}
	} else {
		workers := runtime.GOMAXPROCS(0)
		chunk := (len(candidates) + workers - 1) / workers

		var g errgroup.Group
		g.SetLimit(workers)
		for start := 0; start < len(candidates); start += chunk {
			end := start + chunk
			if end > len(candidates) {
				end = len(candidates)
			}
			start, end := start, end
			g.Go(func() error {
				for i := start; i < end; i++ {
					distances[i] = minhash.Distance(query, candidates[i].Signature)
				}
				return nil
			})
		}
		_ = g.Wait() // scoring never fails
	}

	neighbors := make([]domain.Neighbor, 0, len(candidates))
	for i := range candidates {
		if distances[i] > maxDist {
			continue
		}
		neighbors = append(neighbors, domain.Neighbor{
			Label:    candidates[i].Label,
			Group:    candidates[i].Group,
			Distance: distances[i],
		})
	}
	sortNeighbors(neighbors)
	return neighbors
}
