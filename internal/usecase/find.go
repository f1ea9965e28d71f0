package usecase

import (
	"fmt"

	"genosketch/internal/adapter/minhash"
	"genosketch/internal/domain"
	"genosketch/internal/port"
)

// FindUseCase queries an index with one or more sequence files and returns
// ranked neighbor lists.
type FindUseCase struct {
	index  port.Index
	source port.SequenceSource
	gen    *minhash.Generator
}

func NewFindUseCase(index port.Index, source port.SequenceSource, gen *minhash.Generator) *FindUseCase {
	return &FindUseCase{
		index:  index,
		source: source,
		gen:    gen,
	}
}

// QueryReport is the outcome for one query file.
type QueryReport struct {
	Query     string
	Neighbors []domain.Neighbor
	Err       string
}

// FindResult aggregates a batch of queries. One unreadable or unmatched
// query never aborts the batch; it only moves the counters.
type FindResult struct {
	Queries int
	Matched int
	Empty   int
	Failed  int
	Reports []QueryReport
}

// Find sketches each query file and looks up its closest neighbors.
func (u *FindUseCase) Find(paths []string, maxNeighbors int, maxDist float64) (*FindResult, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no query files given")
	}

	result := &FindResult{}
	for _, path := range paths {
		result.Queries++
		report := QueryReport{Query: LabelFromPath(path)}

		kmers, err := u.source.Kmers(path, u.gen.KmerSize())
		if err != nil {
			result.Failed++
			report.Err = err.Error()
			result.Reports = append(result.Reports, report)
			continue
		}

		neighbors, err := u.index.GetClosest(u.gen.Sign(kmers), maxNeighbors, maxDist)
		if err != nil {
			// Parameter validation fails identically for every item, so it
			// aborts the batch instead of producing N copies of the error.
			return nil, err
		}

		report.Neighbors = neighbors
		if len(neighbors) == 0 {
			result.Empty++
		} else {
			result.Matched++
		}
		result.Reports = append(result.Reports, report)
	}

	return result, nil
}
