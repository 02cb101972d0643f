// Package testsupport holds fixture helpers shared by the package tests.
package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-invoicegen/pkg/records"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// WriteFixture writes content into a temp-dir file and returns its path.
func WriteFixture(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir fixture dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// RecordFromPairs builds a Record from alternating key/value arguments,
// keeping tests free of repeated Set calls.
func RecordFromPairs(t *testing.T, pairs ...any) *records.Record {
	t.Helper()

	if len(pairs)%2 != 0 {
		t.Fatalf("record pairs must be even, got %d", len(pairs))
	}
	rec := records.NewRecord()
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			t.Fatalf("record key %v is not a string", pairs[i])
		}
		rec.Set(key, pairs[i+1])
	}
	return rec
}

// FlatMap converts a Record into a plain map for cmp.Diff assertions.
func FlatMap(rec *records.Record) map[string]any {
	out := make(map[string]any, rec.Len())
	for _, key := range rec.Keys() {
		value, _ := rec.Get(key)
		out[key] = value
	}
	return out
}
