package filesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidator_ValidateDirectoryPath(t *testing.T) {
	validator := NewValidator()
	tempDir := t.TempDir()

	file := filepath.Join(tempDir, "a.md")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("テストファイルの作成に失敗: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "有効なディレクトリパス", path: tempDir, wantErr: false},
		{name: "空のパス", path: "", wantErr: true},
		{name: "相対パス", path: "notes", wantErr: true},
		{name: "存在しないパス", path: filepath.Join(tempDir, "notexist"), wantErr: true},
		{name: "ファイルのパス", path: file, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateDirectoryPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDirectoryPath() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
