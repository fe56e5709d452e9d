package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"NoteScope/internal/domain/model"
	"NoteScope/internal/infrastructure/logging"
)

// setupBenchmarkDir creates a flat directory with the given number of notes and subdirectories.
func setupBenchmarkDir(tb testing.TB, files, dirs int) string {
	tb.Helper()
	dir := tb.TempDir()

	for i := 0; i < files; i++ {
		name := filepath.Join(dir, fmt.Sprintf("note_%d.md", i))
		if err := os.WriteFile(name, []byte(fmt.Sprintf("# Note %d", i)), 0644); err != nil {
			tb.Fatalf("Failed to write file %s: %v", name, err)
		}
	}
	for i := 0; i < dirs; i++ {
		name := filepath.Join(dir, fmt.Sprintf("dir_%d", i))
		if err := os.Mkdir(name, 0755); err != nil {
			tb.Fatalf("Failed to create subdir %s: %v", name, err)
		}
	}
	return dir
}

// BenchmarkLister_List benchmarks listing a directory of 500 notes and 20 subdirectories.
func BenchmarkLister_List(b *testing.B) {
	// Discard logs during benchmark
	lister := NewLister(logging.NewJSONLogger(io.Discard))
	dir := setupBenchmarkDir(b, 500, 20)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := lister.List(dir, model.ListOptions{}); err != nil {
			b.Fatalf("List failed during benchmark: %v", err)
		}
	}
}

func BenchmarkLister_ListDirsOnly(b *testing.B) {
	lister := NewLister(logging.NewJSONLogger(io.Discard))
	dir := setupBenchmarkDir(b, 500, 20)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := lister.List(dir, model.ListOptions{Filter: model.FilterDirsOnly}); err != nil {
			b.Fatalf("List failed during benchmark: %v", err)
		}
	}
}
