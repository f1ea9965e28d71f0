package seqio

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadSequencesMultiRecord(t *testing.T) {
	path := writeTestFile(t, "multi.fasta", `>chr1 first contig
ACGTACGT
ACGT
>chr2
; legacy comment line
TTTTCCCC
`)

	got, err := ReadSequences(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"ACGTACGTACGT", "TTTTCCCC"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestReadSequencesCleansInput(t *testing.T) {
	path := writeTestFile(t, "dirty.fasta", ">seq\nacgt-N.ac gt\n")

	got, err := ReadSequences(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "ACGTNACGT" {
		t.Errorf("got %v, want [ACGTNACGT]", got)
	}
}

func TestReadSequencesHeaderless(t *testing.T) {
	path := writeTestFile(t, "raw.txt", "ACGT\nACGT\n")

	got, err := ReadSequences(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "ACGTACGT" {
		t.Errorf("headerless file should read as one sequence, got %v", got)
	}
}

func TestReadSequencesGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.fasta.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte(">seq\nACGTACGT\n")); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := ReadSequences(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "ACGTACGT" {
		t.Errorf("got %v, want [ACGTACGT]", got)
	}
}

func TestReadSequencesMissingFile(t *testing.T) {
	if _, err := ReadSequences(filepath.Join(t.TempDir(), "nope.fasta")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestKmers(t *testing.T) {
	tests := []struct {
		name string
		seq  string
		k    int
		want []string
	}{
		{"sliding windows", "ACGTA", 3, []string{"ACG", "CGT", "GTA"}},
		{"exact length", "ACGT", 4, []string{"ACGT"}},
		{"too short", "AC", 3, nil},
		{"empty sequence", "", 3, nil},
		{"zero k", "ACGT", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Kmers(tt.seq, tt.k); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Kmers(%q, %d) = %v, want %v", tt.seq, tt.k, got, tt.want)
			}
		})
	}
}

func TestReaderKmersAcrossRecords(t *testing.T) {
	path := writeTestFile(t, "two.fasta", ">a\nACGTA\n>b\nTTTT\n")

	got, err := NewReader().Kmers(path, 4)
	if err != nil {
		t.Fatal(err)
	}
	// Windows never span record boundaries.
	want := []string{"ACGT", "CGTA", "TTTT"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
