package models_test

import (
	"testing"

	"github.com/mmdatafocus/recon_backend/models"
)

type keyedValue struct {
	Key   string
	Value int
}

func TestDeduplicateByLastOccurrenceWins(t *testing.T) {
	records := []keyedValue{
		{"a", 1},
		{"b", 2},
		{"a", 3},
		{"c", 4},
		{"b", 5},
	}

	got := models.DeduplicateBy(records, func(r keyedValue) string { return r.Key })

	want := []keyedValue{
		{"a", 3},
		{"b", 5},
		{"c", 4},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d records; got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("record %d: expected %v; got %v", i, want[i], got[i])
		}
	}
}

func TestDeduplicateByNoDuplicates(t *testing.T) {
	records := []keyedValue{{"a", 1}, {"b", 2}}
	got := models.DeduplicateBy(records, func(r keyedValue) string { return r.Key })
	if len(got) != 2 || got[0] != records[0] || got[1] != records[1] {
		t.Fatalf("expected input unchanged; got %v", got)
	}
}

func TestDeduplicateByEmpty(t *testing.T) {
	got := models.DeduplicateBy(nil, func(r keyedValue) string { return r.Key })
	if len(got) != 0 {
		t.Fatalf("expected empty output; got %v", got)
	}
}
