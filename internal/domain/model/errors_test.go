package model

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestNewOpError_Kind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{name: "存在しない", err: &fs.PathError{Op: "open", Path: "/x", Err: fs.ErrNotExist}, want: KindNotFound},
		{name: "権限なし", err: fs.ErrPermission, want: KindPermissionDenied},
		{name: "既に存在する", err: fmt.Errorf("wrapped: %w", fs.ErrExist), want: KindAlreadyExists},
		{name: "不正なエンコーディング", err: ErrInvalidEncoding, want: KindInvalidEncoding},
		{name: "その他", err: errors.New("disk full"), want: KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opErr := NewOpError("read_file", "/x", tt.err)
			if opErr.Kind != tt.want {
				t.Errorf("Kind = %v, want %v", opErr.Kind, tt.want)
			}
			if KindOf(fmt.Errorf("outer: %w", opErr)) != tt.want {
				t.Errorf("KindOf() did not unwrap to %v", tt.want)
			}
			if !errors.Is(opErr, tt.err) {
				t.Errorf("errors.Is(opErr, %v) = false", tt.err)
			}
		})
	}
}

func TestOpError_Error(t *testing.T) {
	err := NewOpError("delete_file", "/tmp/t.md", &fs.PathError{Op: "remove", Path: "/tmp/t.md", Err: errors.New("no such file or directory")})
	want := "delete_file /tmp/t.md: no such file or directory"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestKindOf_PlainError(t *testing.T) {
	if KindOf(errors.New("x")) != KindOther {
		t.Error("KindOf() for a non-OpError should be KindOther")
	}
	if KindOther.String() != "other" || KindNotFound.String() != "not_found" {
		t.Error("unexpected ErrorKind strings")
	}
}
