// Package notes はノートフォルダ内のマークダウンファイルを扱います
package notes

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"NoteScope/internal/domain/model"
)

const (
	// Extension はノートファイルの拡張子です
	Extension = ".md"
	// DefaultNamePrefix は名前が指定されなかった場合のファイル名の接頭辞です
	DefaultNamePrefix = "note-"
	// TimestampLayout は索引に出力する更新日時の形式です
	TimestampLayout = "2006-01-02 15:04"
)

// ErrInvalidName はファイル名として使えないノート名のエラーです
var ErrInvalidName = errors.New("ノート名にパス区切り文字は使用できません")

// Note はノートフォルダ内の1つのノートを表します
type Note struct {
	// Name はファイル名です（例: my-note.md）
	Name string
	// Title は拡張子を除いたファイル名です
	Title   string
	Size    int64
	ModTime time.Time
}

// Lister はノート一覧の取得に使うディレクトリ一覧のインターフェースです
type Lister interface {
	ListEntries(path string, opts model.ListOptions) ([]model.DirectoryEntry, error)
}

// Creator は空のノートを作成するためのインターフェースです
type Creator interface {
	CreateFile(path, content string, mode model.CreateMode) error
}

// Catalog はノートフォルダの一覧と作成を提供します
type Catalog struct {
	lister  Lister
	creator Creator
}

// NewCatalog は新しい Catalog インスタンスを作成します
func NewCatalog(lister Lister, creator Creator) *Catalog {
	return &Catalog{lister: lister, creator: creator}
}

// List はフォルダ直下の .md ファイルを名前順で返します
func (c *Catalog) List(dir string) ([]Note, error) {
	entries, err := c.lister.ListEntries(dir, model.ListOptions{
		Filter:       model.FilterFilesOnly,
		OnEntryError: model.EntryErrorAbort,
		Extensions:   []string{Extension},
	})
	if err != nil {
		return nil, err
	}

	notes := make([]Note, 0, len(entries))
	for _, e := range entries {
		notes = append(notes, Note{
			Name:    e.Name,
			Title:   strings.TrimSuffix(e.Name, filepath.Ext(e.Name)),
			Size:    e.Size,
			ModTime: e.ModTime,
		})
	}
	sort.Slice(notes, func(i, j int) bool {
		return strings.ToLower(notes[i].Name) < strings.ToLower(notes[j].Name)
	})
	return notes, nil
}

// Create は空のノートを作成し、作成したファイル名を返します。
// 同名のノートが既に存在する場合は上書きせずに失敗します
func (c *Catalog) Create(dir, name string) (string, error) {
	fileName, err := FileName(name)
	if err != nil {
		return "", err
	}
	if err := c.creator.CreateFile(filepath.Join(dir, fileName), "", model.CreateExclusive); err != nil {
		return "", err
	}
	return fileName, nil
}

// FileName はノート名からファイル名を作ります。
// 拡張子がなければ .md を付け、空の場合は一意な名前を生成します
func FileName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultNamePrefix + strings.ToLower(ulid.Make().String()) + Extension, nil
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if !strings.EqualFold(filepath.Ext(name), Extension) {
		name += Extension
	}
	return name, nil
}

// WriteIndex はノートの一覧をマークダウンの索引として出力します
func WriteIndex(w io.Writer, dir string, notes []Note) error {
	if _, err := fmt.Fprintf(w, "# %s\n\n", filepath.Base(dir)); err != nil {
		return err
	}
	if len(notes) == 0 {
		_, err := fmt.Fprintln(w, "_ノートはありません_")
		return err
	}
	for _, n := range notes {
		if _, err := fmt.Fprintf(w, "- [%s](%s) (%s)\n", n.Title, escapeLink(n.Name), n.ModTime.Format(TimestampLayout)); err != nil {
			return err
		}
	}
	return nil
}

func escapeLink(name string) string {
	return strings.NewReplacer(" ", "%20", "(", "%28", ")", "%29").Replace(name)
}
