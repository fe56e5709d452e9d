package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirectoryValidator はディレクトリの検証機能を提供するインターフェースです
type DirectoryValidator interface {
	ValidateDirectoryPath(path string) error
}

// Validator はGUIで選択されたノートフォルダを検証します。
// コアのファイル操作はパスを検証しません
type Validator struct{}

// NewValidator は新しい Validator インスタンスを作成します
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateDirectoryPath はパスが絶対パスで、存在するディレクトリであることを確認します
func (v *Validator) ValidateDirectoryPath(path string) error {
	if path == "" {
		return fmt.Errorf("ディレクトリパスが指定されていません")
	}

	if !filepath.IsAbs(path) {
		return fmt.Errorf("絶対パスで指定してください")
	}

	fileInfo, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("ディレクトリが存在しません: %w", err)
	}

	if !fileInfo.IsDir() {
		return fmt.Errorf("指定されたパスはディレクトリではありません")
	}

	return nil
}
