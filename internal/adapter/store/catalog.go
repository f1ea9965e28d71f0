package store

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"genosketch/internal/domain"
)

var (
	bucketGenomes = []byte("genomes")
	bucketStats   = []byte("stats")
	keyStats      = []byte("catalog_stats")
)

// BoltCatalog keeps per-genome metadata next to the LSH index: where a
// sketch came from, its group and how many distinct k-mers fed it. The
// index itself only knows labels.
type BoltCatalog struct {
	db *bbolt.DB
}

func NewBoltCatalog(path string) (*BoltCatalog, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketGenomes, bucketStats} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltCatalog{db: db}, nil
}

type genomeMeta struct {
	Path      string `json:"path"`
	Group     string `json:"group,omitempty"`
	KmerCount int    `json:"kmer_count"`
	AddedAt   int64  `json:"added_at"`
}

func (c *BoltCatalog) PutGenome(rec domain.GenomeRecord) error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		meta := genomeMeta{
			Path:      rec.Path,
			Group:     rec.Group,
			KmerCount: rec.KmerCount,
			AddedAt:   rec.AddedAt.Unix(),
		}
		data, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketGenomes).Put([]byte(rec.Label), data)
	})
}

func (c *BoltCatalog) GetGenome(label string) (domain.GenomeRecord, error) {
	var rec domain.GenomeRecord
	err := c.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketGenomes).Get([]byte(label))
		if data == nil {
			return fmt.Errorf("genome not found: %s", label)
		}
		var meta genomeMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			return err
		}
		rec = domain.GenomeRecord{
			Label:     label,
			Path:      meta.Path,
			Group:     meta.Group,
			KmerCount: meta.KmerCount,
			AddedAt:   time.Unix(meta.AddedAt, 0),
		}
		return nil
	})
	return rec, err
}

func (c *BoltCatalog) ListGenomes() ([]domain.GenomeRecord, error) {
	var recs []domain.GenomeRecord
	err := c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketGenomes)
		return b.ForEach(func(k, v []byte) error {
			var meta genomeMeta
			if err := json.Unmarshal(v, &meta); err != nil {
				return err
			}
			recs = append(recs, domain.GenomeRecord{
				Label:     string(k),
				Path:      meta.Path,
				Group:     meta.Group,
				KmerCount: meta.KmerCount,
				AddedAt:   time.Unix(meta.AddedAt, 0),
			})
			return nil
		})
	})
	return recs, err
}

// RenameGenome moves a catalog entry to a new label, mirroring the
// administrative relabel of the index.
func (c *BoltCatalog) RenameGenome(oldLabel, newLabel string) error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketGenomes)
		data := b.Get([]byte(oldLabel))
		if data == nil {
			return fmt.Errorf("genome not found: %s", oldLabel)
		}
		if existing := b.Get([]byte(newLabel)); existing != nil {
			return fmt.Errorf("genome already exists: %s", newLabel)
		}
		if err := b.Put([]byte(newLabel), data); err != nil {
			return err
		}
		return b.Delete([]byte(oldLabel))
	})
}

func (c *BoltCatalog) GetStats() (domain.Stats, error) {
	var stats domain.Stats
	err := c.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketStats).Get(keyStats)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &stats)
	})
	return stats, err
}

func (c *BoltCatalog) UpdateStats(stats domain.Stats) error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketStats).Put(keyStats, data)
	})
}

func (c *BoltCatalog) Close() error {
	return c.db.Close()
}
