// Package filesystem はファイルシステム操作を提供します
package filesystem

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"NoteScope/internal/domain/model"
	"NoteScope/internal/infrastructure/logging"
)

// DefaultBatchSize は一度に読み込むディレクトリエントリ数です
const DefaultBatchSize = 256

// OpListDirectory はディレクトリ一覧取得の操作名です
const OpListDirectory = "list_directory"

// DirectoryLister はディレクトリ一覧取得のインターフェースです
type DirectoryLister interface {
	List(path string, opts model.ListOptions) ([]model.DirectoryEntry, error)
}

// Lister はディレクトリの直下のエントリを列挙するための構造体です
type Lister struct {
	logger    logging.Logger
	batchSize int
}

// NewLister は新しい Lister インスタンスを作成します
func NewLister(logger logging.Logger) *Lister {
	return &Lister{
		logger:    logger,
		batchSize: DefaultBatchSize,
	}
}

// List はディレクトリを開き、エントリをOSの列挙順で返します（ソートはしません）。
// エントリ単位のエラーは opts.OnEntryError に従って中断またはスキップされます
func (l *Lister) List(path string, opts model.ListOptions) ([]model.DirectoryEntry, error) {
	dir, err := os.Open(path)
	if err != nil {
		return nil, model.NewOpError(OpListDirectory, path, err)
	}
	defer dir.Close()

	// os.Open はファイルも開けるため、ここでディレクトリであることを確認する
	info, err := dir.Stat()
	if err != nil {
		return nil, model.NewOpError(OpListDirectory, path, err)
	}
	if !info.IsDir() {
		return nil, model.NewOpError(OpListDirectory, path, errNotDirectory)
	}

	entries := []model.DirectoryEntry{}
	for {
		batch, err := dir.ReadDir(l.batchSize)
		for _, d := range batch {
			entry, err := l.readEntry(path, d, opts.Filter)
			if err != nil {
				if opts.OnEntryError == model.EntryErrorAbort {
					return nil, model.NewOpError(OpListDirectory, filepath.Join(path, d.Name()), err)
				}
				l.logger.Log("WARN", fmt.Sprintf("エントリ '%s' の読み込みに失敗したためスキップ", d.Name()), err)
				continue
			}
			if opts.Accepts(entry) {
				entries = append(entries, entry)
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if opts.OnEntryError == model.EntryErrorAbort {
				return nil, model.NewOpError(OpListDirectory, path, err)
			}
			l.logger.Log("WARN", fmt.Sprintf("ディレクトリ '%s' の走査が途中で失敗しました", path), err)
			break
		}
		if len(batch) == 0 {
			break
		}
	}

	return entries, nil
}

// ListNames は List の結果からエントリ名のみを返します
func (l *Lister) ListNames(path string, opts model.ListOptions) ([]string, error) {
	entries, err := l.List(path, opts)
	if err != nil {
		return nil, err
	}
	return model.Names(entries), nil
}

// readEntry はエントリのメタデータを取得します。
// シンボリックリンクは、ディレクトリのみの一覧ではリンク先を辿って種別を判定します
func (l *Lister) readEntry(dir string, d fs.DirEntry, filter model.EntryFilter) (model.DirectoryEntry, error) {
	info, err := d.Info()
	if err != nil {
		return model.DirectoryEntry{}, err
	}

	if info.Mode()&fs.ModeSymlink != 0 && filter == model.FilterDirsOnly {
		target, err := os.Stat(filepath.Join(dir, d.Name()))
		if err != nil {
			return model.DirectoryEntry{}, err
		}
		info = target
	}

	return model.DirectoryEntry{
		Name:    d.Name(),
		IsDir:   info.IsDir(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

var _ DirectoryLister = (*Lister)(nil)
