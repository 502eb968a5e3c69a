package utils_test

import (
	"testing"
	"time"

	"github.com/mmdatafocus/recon_backend/utils"
)

func TestParsePaginationDefaults(t *testing.T) {
	cases := []struct {
		name       string
		limitStr   string
		offsetStr  string
		wantLimit  int
		wantOffset int
	}{
		{"empty", "", "", 20, 0},
		{"valid", "50", "100", 50, 100},
		{"non numeric", "abc", "xyz", 20, 0},
		{"zero limit", "0", "0", 20, 0},
		{"negative", "-5", "-10", 20, 0},
		{"limit only", "7", "", 7, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			limit, offset := utils.ParsePagination(tc.limitStr, tc.offsetStr)
			if limit != tc.wantLimit || offset != tc.wantOffset {
				t.Fatalf("ParsePagination(%q, %q) = (%d, %d); want (%d, %d)",
					tc.limitStr, tc.offsetStr, limit, offset, tc.wantLimit, tc.wantOffset)
			}
		})
	}
}

func TestChunk(t *testing.T) {
	chunks := utils.Chunk([]int{1, 2, 3, 4, 5}, 2)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks; got %d", len(chunks))
	}
	if len(chunks[0]) != 2 || len(chunks[1]) != 2 || len(chunks[2]) != 1 {
		t.Fatalf("unexpected chunk sizes: %v", chunks)
	}
	if chunks[2][0] != 5 {
		t.Fatalf("expected last chunk to hold the tail; got %v", chunks[2])
	}

	if got := utils.Chunk([]int{}, 2); got != nil {
		t.Fatalf("expected nil for empty input; got %v", got)
	}
	if got := utils.Chunk([]int{1}, 0); got != nil {
		t.Fatalf("expected nil for non-positive size; got %v", got)
	}
}

func TestParseDateInAndFormatDate(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Bangkok")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	parsed, err := utils.ParseDateIn("05/01/2024", utils.DateLayoutSlashDMY, loc)
	if err != nil {
		t.Fatalf("ParseDateIn: %v", err)
	}
	if parsed.Day() != 5 || parsed.Month() != time.January || parsed.Year() != 2024 {
		t.Fatalf("unexpected parse result: %v", parsed)
	}
	if parsed.Location() != loc {
		t.Fatalf("expected date anchored to %v; got %v", loc, parsed.Location())
	}

	if got := utils.FormatDate(parsed, loc); got != "05/01/2024" {
		t.Fatalf("FormatDate = %q; want 05/01/2024", got)
	}

	if _, err := utils.ParseDateIn("2024/01/05", utils.DateLayoutSlashDMY, loc); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
}

func TestDereferencePtr(t *testing.T) {
	v := "x"
	if got := utils.DereferencePtr(&v); got != "x" {
		t.Fatalf("expected x; got %q", got)
	}
	if got := utils.DereferencePtr[string](nil); got != "" {
		t.Fatalf("expected zero value; got %q", got)
	}
	if got := utils.DereferencePtr[string](nil, "fallback"); got != "fallback" {
		t.Fatalf("expected fallback; got %q", got)
	}
}
