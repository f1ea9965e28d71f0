package usecase

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"genosketch/internal/adapter/minhash"
	"genosketch/internal/domain"
	"genosketch/internal/port"
)

// BuildUseCase sketches every sequence file under a directory and inserts
// the sketches into an index, recording provenance in the catalog.
type BuildUseCase struct {
	index   port.Index
	catalog port.Catalog
	walker  port.Walker
	source  port.SequenceSource
	gen     *minhash.Generator
}

func NewBuildUseCase(
	index port.Index,
	catalog port.Catalog,
	walker port.Walker,
	source port.SequenceSource,
	gen *minhash.Generator,
) *BuildUseCase {
	return &BuildUseCase{
		index:   index,
		catalog: catalog,
		walker:  walker,
		source:  source,
		gen:     gen,
	}
}

// BuildResult contains the results of a build operation.
type BuildResult struct {
	FilesSketched int
	FilesEmpty    int
	FilesFailed   int
	Errors        []string
}

// ProgressFunc reports incremental build progress to the caller.
type ProgressFunc func(processed, total int, currentFile string)

// Build walks root, sketches each discovered file and adds it to the index
// under the given group. A failing file is counted and reported but never
// aborts the whole batch. The index is saved at the end; callers should
// still Close it on their own error paths so completed work stays durable.
func (u *BuildUseCase) Build(root, group string, progress ProgressFunc) (*BuildResult, error) {
	result := &BuildResult{}

	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	totalKmers := 0
	for i, file := range files {
		if progress != nil {
			progress(i, len(files), file.Path)
		}

		kmers, err := u.source.Kmers(file.Path, u.gen.KmerSize())
		if err != nil {
			result.FilesFailed++
			result.Errors = append(result.Errors, fmt.Sprintf("failed to read %s: %v", file.Path, err))
			continue
		}
		if len(kmers) == 0 {
			result.FilesEmpty++
			result.Errors = append(result.Errors, fmt.Sprintf("no k-mers in %s", file.Path))
			continue
		}

		label := LabelFromPath(file.Path)
		sketch := u.gen.Sketch(label, group, kmers)
		if err := u.index.Add(sketch); err != nil {
			result.FilesFailed++
			result.Errors = append(result.Errors, fmt.Sprintf("failed to index %s: %v", file.Path, err))
			continue
		}

		if err := u.catalog.PutGenome(domain.GenomeRecord{
			Label:     label,
			Path:      file.Path,
			Group:     group,
			KmerCount: u.gen.Distinct(kmers),
			AddedAt:   time.Now(),
		}); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to catalog %s: %v", file.Path, err))
		}

		totalKmers += len(kmers)
		result.FilesSketched++
	}
	if progress != nil {
		progress(len(files), len(files), "")
	}

	avg := 0.0
	if result.FilesSketched > 0 {
		avg = float64(totalKmers) / float64(result.FilesSketched)
	}
	if err := u.catalog.UpdateStats(domain.Stats{
		TotalGenomes: result.FilesSketched,
		TotalKmers:   totalKmers,
		AvgKmers:     avg,
	}); err != nil {
		return nil, fmt.Errorf("failed to update stats: %w", err)
	}

	if err := u.index.Save(); err != nil {
		return nil, fmt.Errorf("failed to save index: %w", err)
	}

	return result, nil
}

// LabelFromPath derives the sketch label from a sequence file name: the
// base name with compression and FASTA extensions stripped.
func LabelFromPath(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, ".gz")
	for _, ext := range []string{".fa", ".fasta", ".fna", ".faa"} {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}
