package filesystem

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"NoteScope/internal/domain/model"
)

type mockLogger struct {
	logs []struct {
		level   string
		message string
		err     error
	}
}

func (m *mockLogger) Log(level, message string, err error) {
	m.logs = append(m.logs, struct {
		level   string
		message string
		err     error
	}{level, message, err})
}

func (m *mockLogger) count(level string) int {
	n := 0
	for _, l := range m.logs {
		if l.level == level {
			n++
		}
	}
	return n
}

// setupListingDir は "sub" ディレクトリと "a.md", "b.txt" ファイルを持つディレクトリを作成します
func setupListingDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatalf("テストディレクトリの作成に失敗: %v", err)
	}
	for name, content := range map[string]string{"a.md": "# A", "b.txt": "b"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("テストファイルの作成に失敗: %v", err)
		}
	}
	return dir
}

func sorted(names []string) []string {
	out := append([]string(nil), names...)
	sort.Strings(out)
	return out
}

func TestLister_List(t *testing.T) {
	dir := setupListingDir(t)

	tests := []struct {
		name string
		opts model.ListOptions
		want []string
	}{
		{name: "全エントリ", opts: model.ListOptions{}, want: []string{"a.md", "b.txt", "sub"}},
		{name: "ディレクトリのみ", opts: model.ListOptions{Filter: model.FilterDirsOnly}, want: []string{"sub"}},
		{name: "ファイルのみ", opts: model.ListOptions{Filter: model.FilterFilesOnly}, want: []string{"a.md", "b.txt"}},
		{name: "拡張子で絞り込み", opts: model.ListOptions{Extensions: []string{".md"}}, want: []string{"a.md", "sub"}},
		{name: "スキップポリシー", opts: model.ListOptions{OnEntryError: model.EntryErrorSkip}, want: []string{"a.md", "b.txt", "sub"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lister := NewLister(&mockLogger{})
			names, err := lister.ListNames(dir, tt.opts)
			if err != nil {
				t.Fatalf("ListNames() error = %v", err)
			}
			got := sorted(names)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("ListNames() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLister_ListMetadata(t *testing.T) {
	dir := setupListingDir(t)
	lister := NewLister(&mockLogger{})

	entries, err := lister.List(dir, model.ListOptions{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	for _, e := range entries {
		switch e.Name {
		case "sub":
			if !e.IsDir {
				t.Error("sub should be a directory")
			}
		case "a.md":
			if e.IsDir || e.Size != 3 {
				t.Errorf("a.md: IsDir = %v, Size = %d", e.IsDir, e.Size)
			}
			if e.ModTime.IsZero() {
				t.Error("a.md: ModTime is zero")
			}
		}
	}
}

func TestLister_ListEmptyDirectory(t *testing.T) {
	lister := NewLister(&mockLogger{})
	entries, err := lister.List(t.TempDir(), model.ListOptions{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("List() = %#v, want empty non-nil slice", entries)
	}
}

func TestLister_ListMultipleBatches(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 7; i++ {
		name := filepath.Join(dir, string(rune('a'+i))+".md")
		if err := os.WriteFile(name, nil, 0644); err != nil {
			t.Fatalf("テストファイルの作成に失敗: %v", err)
		}
	}

	lister := NewLister(&mockLogger{})
	lister.batchSize = 2

	names, err := lister.ListNames(dir, model.ListOptions{})
	if err != nil {
		t.Fatalf("ListNames() error = %v", err)
	}
	if len(names) != 7 {
		t.Errorf("ListNames() returned %d names, want 7: %v", len(names), names)
	}
}

func TestLister_ListErrors(t *testing.T) {
	dir := setupListingDir(t)

	tests := []struct {
		name     string
		path     string
		wantKind model.ErrorKind
	}{
		{name: "存在しないパス", path: filepath.Join(dir, "notexist"), wantKind: model.KindNotFound},
		{name: "ディレクトリではない", path: filepath.Join(dir, "a.md"), wantKind: model.KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lister := NewLister(&mockLogger{})
			entries, err := lister.List(tt.path, model.ListOptions{})
			if err == nil {
				t.Fatalf("List() error = nil, entries = %v", entries)
			}
			if model.KindOf(err) != tt.wantKind {
				t.Errorf("KindOf() = %v, want %v (%v)", model.KindOf(err), tt.wantKind, err)
			}
			if !strings.Contains(err.Error(), OpListDirectory) {
				t.Errorf("error message %q should name the operation", err.Error())
			}
		})
	}
}

// リンク先が存在しないシンボリックリンクは、ディレクトリのみの一覧でエントリ単位のエラーになる
func TestLister_EntryErrorPolicy(t *testing.T) {
	dir := setupListingDir(t)
	if err := os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "dangling")); err != nil {
		t.Skipf("シンボリックリンクを作成できません: %v", err)
	}

	t.Run("中断", func(t *testing.T) {
		logger := &mockLogger{}
		lister := NewLister(logger)

		entries, err := lister.List(dir, model.ListOptions{Filter: model.FilterDirsOnly, OnEntryError: model.EntryErrorAbort})
		if err == nil {
			t.Fatalf("List() error = nil, entries = %v", entries)
		}
		if entries != nil {
			t.Errorf("List() should not return partial entries on abort, got %v", entries)
		}
		if model.KindOf(err) != model.KindNotFound {
			t.Errorf("KindOf() = %v, want not_found", model.KindOf(err))
		}
		if logger.count("WARN") != 0 {
			t.Error("abort policy should not log skipped entries")
		}
	})

	t.Run("スキップ", func(t *testing.T) {
		logger := &mockLogger{}
		lister := NewLister(logger)

		names, err := lister.ListNames(dir, model.ListOptions{Filter: model.FilterDirsOnly, OnEntryError: model.EntryErrorSkip})
		if err != nil {
			t.Fatalf("ListNames() error = %v", err)
		}
		if len(names) != 1 || names[0] != "sub" {
			t.Errorf("ListNames() = %v, want [sub]", names)
		}
		if logger.count("WARN") != 1 {
			t.Errorf("WARN logs = %d, want 1", logger.count("WARN"))
		}
	})

	t.Run("全件ではリンク自体を列挙", func(t *testing.T) {
		lister := NewLister(&mockLogger{})
		names, err := lister.ListNames(dir, model.ListOptions{})
		if err != nil {
			t.Fatalf("ListNames() error = %v", err)
		}
		if len(names) != 4 {
			t.Errorf("ListNames() = %v, want 4 entries", names)
		}
	})
}

func TestLister_SymlinkToDirectory(t *testing.T) {
	dir := setupListingDir(t)
	if err := os.Symlink(filepath.Join(dir, "sub"), filepath.Join(dir, "link")); err != nil {
		t.Skipf("シンボリックリンクを作成できません: %v", err)
	}

	lister := NewLister(&mockLogger{})
	names, err := lister.ListNames(dir, model.ListOptions{Filter: model.FilterDirsOnly})
	if err != nil {
		t.Fatalf("ListNames() error = %v", err)
	}
	if got := sorted(names); strings.Join(got, ",") != "link,sub" {
		t.Errorf("ListNames() = %v, want [link sub]", got)
	}
}

func TestLister_PermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ではパーミッションが無視されるためスキップ")
	}
	dir := t.TempDir()
	locked := filepath.Join(dir, "locked")
	if err := os.Mkdir(locked, 0000); err != nil {
		t.Fatalf("テストディレクトリの作成に失敗: %v", err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	_, err := NewLister(&mockLogger{}).List(locked, model.ListOptions{})
	if model.KindOf(err) != model.KindPermissionDenied {
		t.Errorf("KindOf() = %v, want permission_denied (%v)", model.KindOf(err), err)
	}
}
