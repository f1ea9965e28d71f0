package usecase

import (
	"fmt"

	"genosketch/internal/adapter/lsh"
	"genosketch/internal/adapter/minhash"
	"genosketch/internal/port"
)

// MashUseCase computes the full pairwise distance table of a set of
// sequence files. It sketches everything into a single bucket and runs a
// triangular scan, so it is meant for tuning and small corpora, not for the
// indexed search path.
type MashUseCase struct {
	source port.SequenceSource
	gen    *minhash.Generator
}

func NewMashUseCase(source port.SequenceSource, gen *minhash.Generator) *MashUseCase {
	return &MashUseCase{
		source: source,
		gen:    gen,
	}
}

// PairDistance is one cell of the (strict upper triangle of the) distance
// table.
type PairDistance struct {
	A        string
	B        string
	Distance float64
}

// MashResult carries the table plus the per-file failures that were skipped.
type MashResult struct {
	Sketched int
	Failed   int
	Errors   []string
	Pairs    []PairDistance
}

// Mash sketches every file and scores all pairs. Unreadable files are
// counted and skipped.
func (u *MashUseCase) Mash(paths []string) (*MashResult, error) {
	if len(paths) < 2 {
		return nil, fmt.Errorf("need at least two files to compare, got %d", len(paths))
	}

	result := &MashResult{}
	bucket := lsh.NewBucket()

	for _, path := range paths {
		kmers, err := u.source.Kmers(path, u.gen.KmerSize())
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("failed to read %s: %v", path, err))
			continue
		}
		bucket.Add(u.gen.Sketch(LabelFromPath(path), "", kmers))
		result.Sketched++
	}

	sketches := bucket.Sketches()
	for i := range sketches {
		for _, other := range bucket.After(i + 1) {
			result.Pairs = append(result.Pairs, PairDistance{
				A:        sketches[i].Label,
				B:        other.Label,
				Distance: minhash.Distance(sketches[i].Signature, other.Signature),
			})
		}
	}

	return result, nil
}
