package store

import (
	"path/filepath"
	"testing"
)

// createTestStore creates a new file-backed store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRecord builds a minimal evaluation record.
func createTestRecord(op string, seq int64) map[string]any {
	return map[string]any{
		"op":  op,
		"seq": seq,
		"result": map[string]any{
			"numerator":   "1",
			"denominator": "2",
		},
	}
}
