package store

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"genosketch/internal/domain"
)

func newTestCatalog(t *testing.T) *BoltCatalog {
	t.Helper()
	c, err := NewBoltCatalog(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCatalogPutGet(t *testing.T) {
	c := newTestCatalog(t)

	rec := domain.GenomeRecord{
		Label:     "ecoli_k12",
		Path:      "/data/ecoli_k12.fasta",
		Group:     "enterobacteria",
		KmerCount: 4639221,
		AddedAt:   time.Unix(1700000000, 0),
	}
	if err := c.PutGenome(rec); err != nil {
		t.Fatal(err)
	}

	got, err := c.GetGenome("ecoli_k12")
	if err != nil {
		t.Fatal(err)
	}
	if got.Path != rec.Path || got.Group != rec.Group || got.KmerCount != rec.KmerCount {
		t.Errorf("got %+v, want %+v", got, rec)
	}
	if !got.AddedAt.Equal(rec.AddedAt) {
		t.Errorf("AddedAt = %v, want %v", got.AddedAt, rec.AddedAt)
	}
}

func TestCatalogGetMissing(t *testing.T) {
	c := newTestCatalog(t)

	if _, err := c.GetGenome("missing"); err == nil {
		t.Error("expected error for unknown label")
	}
}

func TestCatalogPutOverwrites(t *testing.T) {
	c := newTestCatalog(t)

	if err := c.PutGenome(domain.GenomeRecord{Label: "g", KmerCount: 10}); err != nil {
		t.Fatal(err)
	}
	if err := c.PutGenome(domain.GenomeRecord{Label: "g", KmerCount: 20}); err != nil {
		t.Fatal(err)
	}

	got, err := c.GetGenome("g")
	if err != nil {
		t.Fatal(err)
	}
	if got.KmerCount != 20 {
		t.Errorf("KmerCount = %d, want 20", got.KmerCount)
	}

	recs, err := c.ListGenomes()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Errorf("overwrite must not duplicate entries, got %d", len(recs))
	}
}

func TestCatalogList(t *testing.T) {
	c := newTestCatalog(t)

	for _, label := range []string{"b", "a", "c"} {
		if err := c.PutGenome(domain.GenomeRecord{Label: label}); err != nil {
			t.Fatal(err)
		}
	}

	recs, err := c.ListGenomes()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}
	// bbolt iterates keys in byte order.
	for i, want := range []string{"a", "b", "c"} {
		if recs[i].Label != want {
			t.Errorf("recs[%d].Label = %s, want %s", i, recs[i].Label, want)
		}
	}
}

func TestCatalogRename(t *testing.T) {
	c := newTestCatalog(t)

	if err := c.PutGenome(domain.GenomeRecord{Label: "old", KmerCount: 5}); err != nil {
		t.Fatal(err)
	}
	if err := c.PutGenome(domain.GenomeRecord{Label: "taken"}); err != nil {
		t.Fatal(err)
	}

	if err := c.RenameGenome("old", "new"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetGenome("old"); err == nil {
		t.Error("old label should be gone after rename")
	}
	got, err := c.GetGenome("new")
	if err != nil {
		t.Fatal(err)
	}
	if got.KmerCount != 5 {
		t.Errorf("rename lost metadata: %+v", got)
	}

	if err := c.RenameGenome("missing", "anything"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("rename of missing label: got %v", err)
	}
	if err := c.RenameGenome("new", "taken"); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("rename onto existing label: got %v", err)
	}
}

func TestCatalogStats(t *testing.T) {
	c := newTestCatalog(t)

	got, err := c.GetStats()
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalGenomes != 0 {
		t.Errorf("fresh catalog stats = %+v, want zero value", got)
	}

	want := domain.Stats{TotalGenomes: 3, TotalKmers: 300, AvgKmers: 100}
	if err := c.UpdateStats(want); err != nil {
		t.Fatal(err)
	}
	got, err = c.GetStats()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCatalogPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	c, err := NewBoltCatalog(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.PutGenome(domain.GenomeRecord{Label: "g", KmerCount: 7}); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	c, err = NewBoltCatalog(path)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	got, err := c.GetGenome("g")
	if err != nil {
		t.Fatal(err)
	}
	if got.KmerCount != 7 {
		t.Errorf("reopened catalog lost data: %+v", got)
	}
}
