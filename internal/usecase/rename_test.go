package usecase

import (
	"path/filepath"
	"strings"
	"testing"

	"genosketch/internal/adapter/lsh"
	"genosketch/internal/adapter/minhash"
	"genosketch/internal/adapter/seqio"
	"genosketch/internal/adapter/store"
	"genosketch/internal/domain"
)

func TestRenameKeepsIndexAndCatalogConsistent(t *testing.T) {
	indexDir := t.TempDir()
	index, err := lsh.CreateDiskIndex(100, 10, 50, 8, indexDir)
	if err != nil {
		t.Fatal(err)
	}
	defer index.Close()

	catalog, err := store.NewBoltCatalog(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer catalog.Close()

	gen, err := minhash.New(8, 100)
	if err != nil {
		t.Fatal(err)
	}

	seq := testSequence(1, 600)
	sketch := gen.Sketch("old", "", seqio.Kmers(seq, 8))
	if err := index.Add(sketch); err != nil {
		t.Fatal(err)
	}
	if err := catalog.PutGenome(domain.GenomeRecord{Label: "old", KmerCount: len(sketch.Signature)}); err != nil {
		t.Fatal(err)
	}

	u := NewRenameUseCase(index, catalog)
	if err := u.Rename("old", "new"); err != nil {
		t.Fatal(err)
	}

	got, err := index.GetClosest(sketch.Signature, 1, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Label != "new" {
		t.Errorf("index still holds the old label: %v", got)
	}

	if _, err := catalog.GetGenome("old"); err == nil {
		t.Error("catalog still holds the old label")
	}
	if _, err := catalog.GetGenome("new"); err != nil {
		t.Errorf("catalog missing the new label: %v", err)
	}

	// The rename persists without an extra save.
	if err := index.Close(); err != nil {
		t.Fatal(err)
	}
	reloaded, err := lsh.LoadDiskIndex(indexDir, 8)
	if err != nil {
		t.Fatal(err)
	}
	defer reloaded.Close()
	got, err = reloaded.GetClosest(sketch.Signature, 1, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Label != "new" {
		t.Errorf("rename lost on reload: %v", got)
	}
}

func TestRenameErrors(t *testing.T) {
	index, err := lsh.CreateDiskIndex(100, 10, 50, 8, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer index.Close()

	catalog, err := store.NewBoltCatalog(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer catalog.Close()

	u := NewRenameUseCase(index, catalog)

	if err := u.Rename("same", "same"); err == nil {
		t.Error("expected error for identical labels")
	}
	if err := u.Rename("missing", "anything"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("rename of unknown label: got %v", err)
	}
}
