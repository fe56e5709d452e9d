package model

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrInvalidEncoding はファイル内容が有効なUTF-8テキストでない場合のエラーです
var ErrInvalidEncoding = errors.New("stream did not contain valid UTF-8")

// ErrorKind は呼び出し側が分岐に使えるエラー種別です
type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindNotFound
	KindPermissionDenied
	KindAlreadyExists
	KindInvalidEncoding
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindPermissionDenied:
		return "permission_denied"
	case KindAlreadyExists:
		return "already_exists"
	case KindInvalidEncoding:
		return "invalid_encoding"
	default:
		return "other"
	}
}

// OpError はファイルシステム操作の失敗を表します。
// Err にはOSから返された元のエラーを保持します
type OpError struct {
	Op   string
	Path string
	Kind ErrorKind
	Err  error
}

// NewOpError はエラーを分類して OpError を作成します
func NewOpError(op, path string, err error) *OpError {
	return &OpError{Op: op, Path: path, Kind: classify(err), Err: err}
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, message(e.Err))
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// KindOf はエラーの種別を返します。OpError 以外は KindOther になります
func KindOf(err error) ErrorKind {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Kind
	}
	return KindOther
}

func classify(err error) ErrorKind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermissionDenied
	case errors.Is(err, fs.ErrExist):
		return KindAlreadyExists
	case errors.Is(err, ErrInvalidEncoding):
		return KindInvalidEncoding
	default:
		return KindOther
	}
}

// message はパス情報を重複させないよう、*fs.PathError の場合は内側のメッセージのみを返します
func message(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	return err.Error()
}
