package lsh

import (
	"testing"

	"genosketch/internal/domain"
)

func TestNewBandingValidation(t *testing.T) {
	tests := []struct {
		name                   string
		width, stages, buckets int
		wantErr                bool
	}{
		{"valid", 100, 10, 50, false},
		{"zero width", 0, 10, 50, true},
		{"zero stages", 100, 0, 50, true},
		{"zero buckets", 100, 10, 0, true},
		{"more stages than width", 5, 10, 50, false}, // rows clamps to 1
	}

	for _, tt := range tests {
		_, err := NewBanding(tt.width, tt.stages, tt.buckets)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: NewBanding error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestBandingDeterministic(t *testing.T) {
	a, _, _ := testCorpus(t, 100)

	bd1, err := NewBanding(100, 10, 50)
	if err != nil {
		t.Fatal(err)
	}
	bd2, err := NewBanding(100, 10, 50)
	if err != nil {
		t.Fatal(err)
	}

	first := bd1.Indices(a.Signature)
	second := bd1.Indices(a.Signature)
	fresh := bd2.Indices(a.Signature)

	if len(first) != 10 {
		t.Fatalf("expected one index per stage, got %d", len(first))
	}
	for s := range first {
		if first[s] != second[s] || first[s] != fresh[s] {
			t.Fatalf("stage %d not deterministic: %d, %d, %d", s, first[s], second[s], fresh[s])
		}
		if first[s] < 0 || first[s] >= 50 {
			t.Fatalf("stage %d index out of range: %d", s, first[s])
		}
	}
}

func TestBandingIdenticalSignaturesCollide(t *testing.T) {
	a, _, _ := testCorpus(t, 100)

	bd, err := NewBanding(100, 10, 50)
	if err != nil {
		t.Fatal(err)
	}

	copied := make(domain.Signature, len(a.Signature))
	copy(copied, a.Signature)

	ia := bd.Indices(a.Signature)
	ib := bd.Indices(copied)

	collisions := 0
	for s := range ia {
		if ia[s] == ib[s] {
			collisions++
		}
	}
	if collisions == 0 {
		t.Error("identical signatures must collide in at least one stage")
	}
}

func TestBandingDwarfSignature(t *testing.T) {
	bd, err := NewBanding(100, 10, 50)
	if err != nil {
		t.Fatal(err)
	}

	dwarf := domain.Signature{7, 13, 42}
	first := bd.Indices(dwarf)
	second := bd.Indices(dwarf)

	for s := range first {
		if first[s] != second[s] {
			t.Fatalf("dwarf banding not deterministic at stage %d", s)
		}
		if first[s] < 0 || first[s] >= 50 {
			t.Fatalf("dwarf index out of range: %d", first[s])
		}
	}

	// The empty signature must band too: an empty query is valid input.
	for _, idx := range bd.Indices(nil) {
		if idx < 0 || idx >= 50 {
			t.Fatalf("empty-signature index out of range: %d", idx)
		}
	}
}
