package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"unicode/utf8"

	"NoteScope/internal/domain/model"
	"NoteScope/internal/infrastructure/logging"
)

// 操作名
const (
	OpCreateFile = "create_file"
	OpReadFile   = "read_file"
	OpUpdateFile = "update_file"
	OpDeleteFile = "delete_file"
)

// DefaultFilePermission は新規作成するファイルのパーミッションです
const DefaultFilePermission fs.FileMode = 0644

var (
	errNotDirectory = errors.New("not a directory")
	errIsDirectory  = errors.New("is a directory")
)

// FileStore はテキストファイルの作成・読み込み・更新・削除のインターフェースです
type FileStore interface {
	Create(path, content string, mode model.CreateMode) error
	Read(path string) (string, error)
	Update(path, content string) error
	Delete(path string) error
}

// Files はファイル単位の操作をOSのファイルAPIで直接行う構造体です。
// 各操作は同期的に実行され、ハンドルは呼び出しごとに開いて閉じます
type Files struct {
	logger logging.Logger
	perm   fs.FileMode
}

// NewFiles は新しい Files インスタンスを作成します
func NewFiles(logger logging.Logger, perm fs.FileMode) *Files {
	if perm == 0 {
		perm = DefaultFilePermission
	}
	return &Files{logger: logger, perm: perm}
}

// Create はファイルを作成して内容を書き込みます。
// CreateOrTruncate では既存ファイルを切り詰め、CreateExclusive では既存ファイルがあると失敗します
func (f *Files) Create(path, content string, mode model.CreateMode) error {
	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if mode == model.CreateExclusive {
		flag = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	if err := writeFile(path, flag, f.perm, content); err != nil {
		return model.NewOpError(OpCreateFile, path, err)
	}
	f.logger.Log("DEBUG", "ファイルを作成しました: "+path, nil)
	return nil
}

// Read はファイル全体をテキストとして読み込みます。
// 有効なUTF-8でない場合は KindInvalidEncoding のエラーを返します
func (f *Files) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", model.NewOpError(OpReadFile, path, err)
	}
	if !utf8.Valid(data) {
		return "", model.NewOpError(OpReadFile, path, model.ErrInvalidEncoding)
	}
	return string(data), nil
}

// Update は既存ファイルの内容を切り詰めて書き換えます。ファイルが存在しない場合は作成せずに失敗します
func (f *Files) Update(path, content string) error {
	if err := writeFile(path, os.O_WRONLY|os.O_TRUNC, 0, content); err != nil {
		return model.NewOpError(OpUpdateFile, path, err)
	}
	f.logger.Log("DEBUG", "ファイルを更新しました: "+path, nil)
	return nil
}

// Delete はファイルを削除します。ディレクトリは削除しません
func (f *Files) Delete(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return model.NewOpError(OpDeleteFile, path, err)
	}
	if info.IsDir() {
		return model.NewOpError(OpDeleteFile, path, errIsDirectory)
	}
	if err := os.Remove(path); err != nil {
		return model.NewOpError(OpDeleteFile, path, err)
	}
	f.logger.Log("DEBUG", "ファイルを削除しました: "+path, nil)
	return nil
}

// writeFile は途中で失敗しても書き込み済みの内容を元に戻しません
func writeFile(path string, flag int, perm fs.FileMode, content string) (err error) {
	file, err := os.OpenFile(path, flag, perm)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	_, err = file.WriteString(content)
	return err
}

var _ FileStore = (*Files)(nil)
