package port

// SequenceSource turns a sequence file into the deterministic k-mer multiset
// the engine consumes. The engine itself has no knowledge of file formats.
type SequenceSource interface {
	// Kmers reads the file at path and returns every k-mer of its sequences.
	Kmers(path string, k int) ([]string, error)
}
