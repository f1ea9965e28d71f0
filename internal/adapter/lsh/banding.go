package lsh

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"genosketch/internal/domain"
)

// Banding deterministically maps a signature into one bucket index per
// stage. Each stage consumes its own fixed sub-range of the signature, so
// two sketches become query candidates as soon as a single stage agrees.
type Banding struct {
	width   int
	stages  int
	buckets int
	rows    int
}

// NewBanding validates the index parameters. The per-stage row count is
// max(1, width/stages).
func NewBanding(width, stages, buckets int) (*Banding, error) {
	if width < 1 {
		return nil, fmt.Errorf("lsh: width must be >= 1, got %d", width)
	}
	if stages < 1 {
		return nil, fmt.Errorf("lsh: stage count must be >= 1, got %d", stages)
	}
	if buckets < 1 {
		return nil, fmt.Errorf("lsh: bucket count must be >= 1, got %d", buckets)
	}

	rows := width / stages
	if rows < 1 {
		rows = 1
	}
	return &Banding{width: width, stages: stages, buckets: buckets, rows: rows}, nil
}

// Indices returns the bucket index of the signature for every stage. The
// mix is FNV-1a over the stage number followed by the stage's signature
// rows, with no process-local state, so it is stable across restarts and
// disk reloads. Rows beyond the end of a dwarf signature are simply absent
// from the mix.
func (bd *Banding) Indices(sig domain.Signature) []int {
	indices := make([]int, bd.stages)
	var buf [8]byte

	for stage := 0; stage < bd.stages; stage++ {
		h := fnv.New64a()

		binary.BigEndian.PutUint64(buf[:], uint64(stage))
		h.Write(buf[:])

		start := stage * bd.rows
		end := start + bd.rows
		if start > len(sig) {
			start = len(sig)
		}
		if end > len(sig) {
			end = len(sig)
		}
		for _, v := range sig[start:end] {
			binary.BigEndian.PutUint64(buf[:], v)
			h.Write(buf[:])
		}

		indices[stage] = int(h.Sum64() % uint64(bd.buckets))
	}

	return indices
}

func (bd *Banding) Stages() int {
	return bd.stages
}

func (bd *Banding) Buckets() int {
	return bd.buckets
}
