package domain

import "time"

// Signature is an ascending sequence of the W numerically smallest distinct
// k-mer hashes of a sequence (bottom-W MinHash). A signature shorter than W
// is a dwarf sketch: its source had fewer than W distinct k-mers.
type Signature []uint64

// Sketch is a labeled signature. The label is unique within an index; Group
// is an optional collection tag carried through to query results.
type Sketch struct {
	Label     string
	Group     string
	Signature Signature
}

// Rename is the administrative relabel used by tooling. Sketches are
// otherwise immutable after construction.
func (s *Sketch) Rename(label string) {
	s.Label = label
}

// Neighbor is one entry of an ordered query result.
type Neighbor struct {
	Label    string
	Group    string
	Distance float64
}

// Params are the immutable parameters of an LSH index. They are persisted
// with a disk-backed index and must survive a reload unchanged.
type Params struct {
	Width    int `yaml:"width"`
	Stages   int `yaml:"stages"`
	Buckets  int `yaml:"buckets"`
	KmerSize int `yaml:"kmer_size"`
}

// GenomeRecord is the catalog entry kept for every sketched input file.
type GenomeRecord struct {
	Label     string
	Path      string
	Group     string
	KmerCount int
	AddedAt   time.Time
}

// Stats summarizes a catalog.
type Stats struct {
	TotalGenomes int
	TotalKmers   int
	AvgKmers     float64
}
