// package model はドメインモデルを定義します
package model

import (
	"path/filepath"
	"strings"
	"time"
)

// DirectoryEntry はディレクトリ内の要素（ファイルまたはディレクトリ）を表します
type DirectoryEntry struct {
	// Name はエントリのベース名を表します（フルパスではありません）
	Name string
	// IsDir はディレクトリであるかどうかを示します
	IsDir bool
	// Size はファイルサイズ（バイト）を表します
	Size int64
	// ModTime は最終更新日時を表します
	ModTime time.Time
}

// EntryFilter は一覧に含めるエントリの種類を表します
type EntryFilter int

const (
	// FilterAll はすべてのエントリを含めます
	FilterAll EntryFilter = iota
	// FilterDirsOnly はディレクトリのみを含めます
	FilterDirsOnly
	// FilterFilesOnly はディレクトリ以外のみを含めます
	FilterFilesOnly
)

func (f EntryFilter) String() string {
	switch f {
	case FilterDirsOnly:
		return "dirs_only"
	case FilterFilesOnly:
		return "files_only"
	default:
		return "all"
	}
}

// EntryErrorPolicy はエントリ単位の読み込みエラー発生時の動作を表します
type EntryErrorPolicy int

const (
	// EntryErrorAbort は最初のエラーで一覧取得全体を中断します
	EntryErrorAbort EntryErrorPolicy = iota
	// EntryErrorSkip はエラーをログに記録して該当エントリをスキップします
	EntryErrorSkip
)

func (p EntryErrorPolicy) String() string {
	if p == EntryErrorSkip {
		return "skip"
	}
	return "abort"
}

// ListOptions はディレクトリ一覧取得のオプションです
type ListOptions struct {
	Filter       EntryFilter
	OnEntryError EntryErrorPolicy
	// Extensions が空でない場合、ディレクトリ以外のエントリは拡張子（大文字小文字を区別しない）で絞り込まれます
	Extensions []string
}

// Accepts はエントリが絞り込み条件に一致するかを判定します
func (o ListOptions) Accepts(entry DirectoryEntry) bool {
	switch o.Filter {
	case FilterDirsOnly:
		return entry.IsDir
	case FilterFilesOnly:
		if entry.IsDir {
			return false
		}
	}
	if entry.IsDir || len(o.Extensions) == 0 {
		return true
	}
	ext := filepath.Ext(entry.Name)
	for _, want := range o.Extensions {
		if strings.EqualFold(ext, normalizeExt(want)) {
			return true
		}
	}
	return false
}

func normalizeExt(ext string) string {
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}

// CreateMode はファイル作成時に同名ファイルが存在した場合の動作を表します
type CreateMode int

const (
	// CreateOrTruncate は既存ファイルを切り詰めて上書きします
	CreateOrTruncate CreateMode = iota
	// CreateExclusive は既存ファイルがある場合に失敗します
	CreateExclusive
)

func (m CreateMode) String() string {
	if m == CreateExclusive {
		return "exclusive"
	}
	return "create_or_truncate"
}

// Names はエントリ名の一覧を列挙順のまま返します
func Names(entries []DirectoryEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}
