package port

// FileInfo describes one sequence file found by a walk.
type FileInfo struct {
	Path    string
	ModTime int64
	Size    int64
}

// Walker discovers sequence files under a root directory.
type Walker interface {
	Walk(root string) ([]FileInfo, error)
}
