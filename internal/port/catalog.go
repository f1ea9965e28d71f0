package port

import "genosketch/internal/domain"

// Catalog persists metadata about sketched genomes alongside the index.
type Catalog interface {
	PutGenome(rec domain.GenomeRecord) error

	GetGenome(label string) (domain.GenomeRecord, error)

	ListGenomes() ([]domain.GenomeRecord, error)

	RenameGenome(oldLabel, newLabel string) error

	GetStats() (domain.Stats, error)

	UpdateStats(stats domain.Stats) error

	Close() error
}
