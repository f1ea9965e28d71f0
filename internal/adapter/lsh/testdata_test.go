package lsh

import (
	"testing"

	"genosketch/internal/adapter/minhash"
	"genosketch/internal/domain"
)

// testKmer derives a pseudo-random but fully deterministic ACGT 8-mer from
// a counter, so overlapping k-mer sets can be constructed index-by-index.
func testKmer(i uint64) string {
	x := i * 0x9E3779B97F4A7C15
	x ^= x >> 31
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27

	const bases = "ACGT"
	b := make([]byte, 8)
	for j := 0; j < 8; j++ {
		b[j] = bases[(x>>(2*uint(j)))&3]
	}
	return string(b)
}

func testKmerRange(lo, hi uint64) []string {
	kmers := make([]string, 0, hi-lo)
	for i := lo; i < hi; i++ {
		kmers = append(kmers, testKmer(i))
	}
	return kmers
}

func corpusGenerator(t *testing.T, width int) *minhash.Generator {
	t.Helper()
	gen, err := minhash.New(8, width)
	if err != nil {
		t.Fatal(err)
	}
	return gen
}

// testCorpus builds the three sketches used by the end-to-end properties:
// B's k-mers are 90% of A's, C shares only 10% of A's.
func testCorpus(t *testing.T, width int) (a, b, c domain.Sketch) {
	t.Helper()
	gen, err := minhash.New(8, width)
	if err != nil {
		t.Fatal(err)
	}
	a = gen.Sketch("A", "", testKmerRange(0, 1000))
	b = gen.Sketch("B", "", testKmerRange(0, 900))
	c = gen.Sketch("C", "", append(testKmerRange(0, 100), testKmerRange(100000, 100900)...))
	return a, b, c
}
