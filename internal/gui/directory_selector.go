// Package gui はノートフォルダを扱うデスクトップウィンドウを提供します
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"NoteScope/internal/infrastructure/filesystem"
)

// Default window size constants
const (
	DefaultWindowWidth  = 1000
	DefaultWindowHeight = 700
)

// DirectorySelector は、Fyneのフォルダダイアログでノートフォルダを選択する構造体
type DirectorySelector struct {
	validator filesystem.DirectoryValidator
}

// NewDirectorySelector は、DirectorySelectorの新しいインスタンスを作成します
func NewDirectorySelector(validator filesystem.DirectoryValidator) *DirectorySelector {
	return &DirectorySelector{
		validator: validator,
	}
}

// SelectDirectory は、親ウィンドウ上にフォルダ選択ダイアログを表示します。
// 検証に成功したパスで onSelected を呼び出し、エラーはダイアログで表示します。
// キャンセルされた場合は何もしません
func (s *DirectorySelector) SelectDirectory(parent fyne.Window, title string, onSelected func(string)) {
	d := dialog.NewFolderOpen(func(selectedURI fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(fmt.Errorf("%s: %w", title, err), parent)
			return
		}
		if selectedURI == nil {
			return
		}
		path, err := s.Validate(selectedURI.Path())
		if err != nil {
			dialog.ShowError(err, parent)
			return
		}
		onSelected(path)
	}, parent)
	d.Show()
}

// Validate は選択されたパスを検証します
func (s *DirectorySelector) Validate(path string) (string, error) {
	if err := s.validator.ValidateDirectoryPath(path); err != nil {
		return "", fmt.Errorf("ノートフォルダが無効です: %w", err)
	}
	return path, nil
}
