// Package ui はOSネイティブのダイアログを提供します
package ui

import (
	"errors"
	"fmt"

	"github.com/sqweek/dialog"

	"NoteScope/internal/infrastructure/filesystem"
)

// ErrCancelled はユーザーがダイアログをキャンセルした場合のエラーです
var ErrCancelled = errors.New("フォルダの選択がキャンセルされました")

// DirectorySelector はネイティブダイアログでノートフォルダを選択します
type DirectorySelector struct {
	// validator はディレクトリパスの検証を行うインターフェースです
	validator filesystem.DirectoryValidator
	browse    func(title string) (string, error)
}

// NewDirectorySelector は新しい DirectorySelector インスタンスを作成します
func NewDirectorySelector(validator filesystem.DirectoryValidator) *DirectorySelector {
	return &DirectorySelector{validator: validator, browse: browseDirectory}
}

// SelectDirectory はダイアログを表示してディレクトリを選択します。ダイアログが閉じるまでブロックします
func (d *DirectorySelector) SelectDirectory(title string) (string, error) {
	selectedDir, err := d.browse(title)
	if errors.Is(err, dialog.ErrCancelled) {
		return "", ErrCancelled
	}
	if err != nil {
		return "", fmt.Errorf("ディレクトリの選択に失敗しました: %w", err)
	}

	if err := d.validator.ValidateDirectoryPath(selectedDir); err != nil {
		return "", fmt.Errorf("無効なディレクトリが選択されました: %w", err)
	}

	return selectedDir, nil
}

func browseDirectory(title string) (string, error) {
	return dialog.Directory().Title(title).Browse()
}
