package minhash

import (
	"fmt"
	"hash/fnv"
	"sort"

	"genosketch/internal/domain"
)

// Generator produces bottom-W MinHash signatures from k-mer multisets.
type Generator struct {
	kmerSize int
	width    int
}

// New creates a generator. Invalid parameters are configuration errors and
// are rejected here, never at sketch time.
func New(kmerSize, width int) (*Generator, error) {
	if kmerSize < 1 {
		return nil, fmt.Errorf("minhash: k-mer size must be >= 1, got %d", kmerSize)
	}
	if width < 1 {
		return nil, fmt.Errorf("minhash: width must be >= 1, got %d", width)
	}
	return &Generator{kmerSize: kmerSize, width: width}, nil
}

func (g *Generator) KmerSize() int {
	return g.kmerSize
}

func (g *Generator) Width() int {
	return g.width
}

// Sign hashes every k-mer and keeps the width numerically smallest distinct
// values, ascending. Duplicate k-mers and insertion order have no effect, so
// the same multiset always yields the same signature. Sources with fewer
// distinct k-mers than width produce a shorter, dwarf signature.
func (g *Generator) Sign(kmers []string) domain.Signature {
	distinct := make(map[uint64]struct{}, len(kmers))
	for _, kmer := range kmers {
		distinct[hashKmer(kmer)] = struct{}{}
	}

	values := make([]uint64, 0, len(distinct))
	for v := range distinct {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	if len(values) > g.width {
		values = values[:g.width]
	}
	return domain.Signature(values)
}

// Distinct counts the distinct k-mers of a multiset, applying the same
// hash-level dedup Sign applies before sampling. Unlike the signature
// length, the count is not capped at the width.
func (g *Generator) Distinct(kmers []string) int {
	distinct := make(map[uint64]struct{}, len(kmers))
	for _, kmer := range kmers {
		distinct[hashKmer(kmer)] = struct{}{}
	}
	return len(distinct)
}

// Sketch signs the k-mer multiset and wraps it with its label.
func (g *Generator) Sketch(label, group string, kmers []string) domain.Sketch {
	return domain.Sketch{
		Label:     label,
		Group:     group,
		Signature: g.Sign(kmers),
	}
}

// Distance estimates 1 - Jaccard(A, B) from two bottom-W signatures. Both
// sorted signatures are merged and the smallest combined values, up to the
// effective width min(|A|, |B|), form the sample; the shared fraction of
// that sample estimates the Jaccard similarity. An empty signature compared
// to anything is at distance 1 by convention.
func Distance(a, b domain.Signature) float64 {
	eff := len(a)
	if len(b) < eff {
		eff = len(b)
	}
	if eff == 0 {
		return 1.0
	}

	shared, taken := 0, 0
	i, j := 0, 0
	for taken < eff && (i < len(a) || j < len(b)) {
		switch {
		case j >= len(b) || (i < len(a) && a[i] < b[j]):
			i++
			taken++
		case i >= len(a) || b[j] < a[i]:
			j++
			taken++
		default:
			shared++
			i++
			j++
			taken++
		}
	}

	return 1.0 - float64(shared)/float64(eff)
}

func hashKmer(kmer string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(kmer))
	return h.Sum64()
}
