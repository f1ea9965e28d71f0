package usecase

import (
	"fmt"

	"genosketch/internal/adapter/lsh"
	"genosketch/internal/port"
)

// RenameUseCase applies the administrative relabel to both the disk index
// and the catalog so the two stay consistent.
type RenameUseCase struct {
	index   *lsh.DiskIndex
	catalog port.Catalog
}

func NewRenameUseCase(index *lsh.DiskIndex, catalog port.Catalog) *RenameUseCase {
	return &RenameUseCase{
		index:   index,
		catalog: catalog,
	}
}

// Rename relabels oldLabel to newLabel and persists the touched buckets.
func (u *RenameUseCase) Rename(oldLabel, newLabel string) error {
	if oldLabel == newLabel {
		return fmt.Errorf("old and new label are identical: %s", oldLabel)
	}

	found, err := u.index.Rename(oldLabel, newLabel)
	if err != nil {
		return fmt.Errorf("failed to rename in index: %w", err)
	}
	if !found {
		return fmt.Errorf("label not found in index: %s", oldLabel)
	}

	if err := u.catalog.RenameGenome(oldLabel, newLabel); err != nil {
		return fmt.Errorf("failed to rename in catalog: %w", err)
	}

	return u.index.Save()
}
