package seqio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Reader turns FASTA files into k-mer multisets. It understands plain and
// gzip-compressed files and treats every record in a multi-FASTA file as
// part of the same genome.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// Kmers reads the file and returns all k-mers of its sequences.
func (r *Reader) Kmers(path string, k int) ([]string, error) {
	sequences, err := ReadSequences(path)
	if err != nil {
		return nil, err
	}

	var kmers []string
	for _, seq := range sequences {
		kmers = append(kmers, Kmers(seq, k)...)
	}
	return kmers, nil
}

// ReadSequences parses the FASTA records of a file, one cleaned sequence
// string per record. A file without headers is read as one raw sequence.
func ReadSequences(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sequence file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read gzip sequence file: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return parseFasta(reader)
}

func parseFasta(r io.Reader) ([]string, error) {
	var sequences []string
	var current strings.Builder

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			if current.Len() > 0 {
				sequences = append(sequences, current.String())
				current.Reset()
			}
			continue
		}
		if strings.HasPrefix(line, ";") { // legacy FASTA comment
			continue
		}
		current.WriteString(cleanSequence(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sequence data: %w", err)
	}

	if current.Len() > 0 {
		sequences = append(sequences, current.String())
	}
	return sequences, nil
}

// cleanSequence uppercases and keeps letters only, dropping gap and
// whitespace characters so k-mer extraction stays deterministic for both
// nucleotide and protein alphabets.
func cleanSequence(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	for _, c := range line {
		switch {
		case c >= 'a' && c <= 'z':
			b.WriteRune(c - ('a' - 'A'))
		case c >= 'A' && c <= 'Z':
			b.WriteRune(c)
		}
	}
	return b.String()
}

// Kmers returns every k-length window of the sequence, in order. Sequences
// shorter than k yield none.
func Kmers(seq string, k int) []string {
	if k < 1 || len(seq) < k {
		return nil
	}
	kmers := make([]string, 0, len(seq)-k+1)
	for i := 0; i+k <= len(seq); i++ {
		kmers = append(kmers, seq[i:i+k])
	}
	return kmers
}
