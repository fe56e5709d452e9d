package ui

import (
	"errors"
	"testing"

	"github.com/sqweek/dialog"
)

type mockValidator struct {
	err error
}

func (m *mockValidator) ValidateDirectoryPath(path string) error {
	return m.err
}

func TestDirectorySelector_SelectDirectory(t *testing.T) {
	// ネイティブダイアログは表示せず、browse 関数を差し替えて検証します
	tests := []struct {
		name          string
		browsePath    string
		browseErr     error
		validateError error
		wantPath      string
		wantErr       error
	}{
		{
			name:       "選択成功",
			browsePath: "/home/user/Notes",
			wantPath:   "/home/user/Notes",
		},
		{
			name:          "バリデーションエラー",
			browsePath:    "/home/user/Notes",
			validateError: errors.New("無効なディレクトリ"),
		},
		{
			name:      "キャンセル",
			browseErr: dialog.ErrCancelled,
			wantErr:   ErrCancelled,
		},
		{
			name:      "ダイアログのエラー",
			browseErr: errors.New("no display"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selector := NewDirectorySelector(&mockValidator{err: tt.validateError})
			selector.browse = func(string) (string, error) {
				return tt.browsePath, tt.browseErr
			}

			path, err := selector.SelectDirectory("テスト")
			wantFailure := tt.wantPath == ""
			if (err != nil) != wantFailure {
				t.Fatalf("SelectDirectory() error = %v, wantErr %v", err, wantFailure)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("SelectDirectory() error = %v, want %v", err, tt.wantErr)
			}
			if path != tt.wantPath {
				t.Errorf("SelectDirectory() = %q, want %q", path, tt.wantPath)
			}
		})
	}
}
