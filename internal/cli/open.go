package cli

import (
	"errors"
	"fmt"

	"genosketch/config"
	"genosketch/internal/adapter/lsh"
	"genosketch/internal/adapter/minhash"
	"genosketch/internal/adapter/store"
)

// openIndex loads the disk index of dir, creating it with the configured
// parameters when create is set. The cache limit from config is applied in
// both cases; the generator always follows the stored index parameters so
// sketches and index agree after a reload.
func openIndex(dir string, create bool) (*lsh.DiskIndex, *minhash.Generator, error) {
	c := GetConfig()

	index, err := lsh.LoadDiskIndex(config.IndexDir(dir), c.Sketch.KmerSize)
	if errors.Is(err, lsh.ErrNoMetadata) && create {
		index, err = lsh.CreateDiskIndex(
			c.Sketch.Width, c.Sketch.Stages, c.Sketch.Buckets, c.Sketch.KmerSize,
			config.IndexDir(dir),
		)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open index: %w", err)
	}

	if err := index.SetCacheLimit(c.Cache.Limit); err != nil {
		index.Close()
		return nil, nil, fmt.Errorf("failed to set cache limit: %w", err)
	}

	params := index.Params()
	gen, err := minhash.New(params.KmerSize, params.Width)
	if err != nil {
		index.Close()
		return nil, nil, err
	}

	return index, gen, nil
}

func openCatalog(dir string) (*store.BoltCatalog, error) {
	catalog, err := store.NewBoltCatalog(config.CatalogPath(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	return catalog, nil
}
