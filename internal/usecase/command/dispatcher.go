// Package command はフロントエンドから呼び出されるコマンドをファイルシステム操作に振り分けます
package command

import (
	"context"
	"encoding/json"
	"fmt"

	"NoteScope/internal/domain/model"
	"NoteScope/internal/infrastructure/filesystem"
	"NoteScope/internal/infrastructure/logging"
)

// コマンド名
const (
	ListDirectory = "list_directory"
	CreateFile    = "create_file"
	ReadFile      = "read_file"
	UpdateFile    = "update_file"
	DeleteFile    = "delete_file"
)

// Commands はバインドされるコマンドの一覧です
var Commands = []string{ListDirectory, CreateFile, ReadFile, UpdateFile, DeleteFile}

// Request はフロントエンドからのコマンド呼び出しです。
// 省略可能な項目が nil の場合は設定の既定値を使用します。
// DirsOnly が false の場合はディレクトリのみの既定値だけを解除し、ファイルのみの既定値は維持します
type Request struct {
	Command    string   `json:"cmd"`
	Path       string   `json:"path"`
	Content    string   `json:"content,omitempty"`
	DirsOnly   *bool    `json:"dirs_only,omitempty"`
	SkipErrors *bool    `json:"skip_errors,omitempty"`
	Extensions []string `json:"extensions,omitempty"`
	Exclusive  *bool    `json:"exclusive,omitempty"`
}

// Response はコマンドの結果です。失敗時は Error にOSのエラーメッセージ、Kind にエラー種別が入ります。
// list_directory の成功時は空のディレクトリでも Entries が設定されます
type Response struct {
	OK      bool      `json:"ok"`
	Entries *[]string `json:"entries,omitempty"`
	Content *string   `json:"content,omitempty"`
	Error   string    `json:"error,omitempty"`
	Kind    string    `json:"kind,omitempty"`
}

// Defaults はリクエストで省略された項目の既定値です
type Defaults struct {
	List       model.ListOptions
	CreateMode model.CreateMode
}

// Dispatcher はコマンドを Lister と FileStore に振り分けます
type Dispatcher struct {
	lister   filesystem.DirectoryLister
	files    filesystem.FileStore
	logger   logging.Logger
	defaults Defaults
}

// NewDispatcher は新しい Dispatcher インスタンスを作成します
func NewDispatcher(lister filesystem.DirectoryLister, files filesystem.FileStore, logger logging.Logger, defaults Defaults) *Dispatcher {
	return &Dispatcher{
		lister:   lister,
		files:    files,
		logger:   logger,
		defaults: defaults,
	}
}

// Defaults は既定値を返します
func (d *Dispatcher) Defaults() Defaults {
	return d.defaults
}

// ListDirectory はディレクトリのエントリ名を列挙順で返します
func (d *Dispatcher) ListDirectory(path string, opts model.ListOptions) ([]string, error) {
	entries, err := d.lister.List(path, opts)
	if err != nil {
		return nil, err
	}
	return model.Names(entries), nil
}

// ListEntries はメタデータ付きでエントリを返します
func (d *Dispatcher) ListEntries(path string, opts model.ListOptions) ([]model.DirectoryEntry, error) {
	return d.lister.List(path, opts)
}

// CreateFile はファイルを作成します
func (d *Dispatcher) CreateFile(path, content string, mode model.CreateMode) error {
	return d.files.Create(path, content, mode)
}

// ReadFile はファイルの内容を返します
func (d *Dispatcher) ReadFile(path string) (string, error) {
	return d.files.Read(path)
}

// UpdateFile は既存ファイルの内容を書き換えます
func (d *Dispatcher) UpdateFile(path, content string) error {
	return d.files.Update(path, content)
}

// DeleteFile はファイルを削除します
func (d *Dispatcher) DeleteFile(path string) error {
	return d.files.Delete(path)
}

// Invoke はリクエストを実行して結果を返します。
// 失敗はすべて Response として返し、パニックは呼び出し側に伝播させません
func (d *Dispatcher) Invoke(ctx context.Context, req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			resp = d.failure(req, fmt.Errorf("%s: internal error: %v", req.Command, r))
		}
	}()

	d.logger.Log("DEBUG", fmt.Sprintf("コマンド実行: %s %s", req.Command, req.Path), nil)

	if err := ctx.Err(); err != nil {
		return d.failure(req, err)
	}

	switch req.Command {
	case ListDirectory:
		names, err := d.ListDirectory(req.Path, d.listOptions(req))
		if err != nil {
			return d.failure(req, err)
		}
		return Response{OK: true, Entries: &names}
	case CreateFile:
		if err := d.CreateFile(req.Path, req.Content, d.createMode(req)); err != nil {
			return d.failure(req, err)
		}
	case ReadFile:
		content, err := d.ReadFile(req.Path)
		if err != nil {
			return d.failure(req, err)
		}
		return Response{OK: true, Content: &content}
	case UpdateFile:
		if err := d.UpdateFile(req.Path, req.Content); err != nil {
			return d.failure(req, err)
		}
	case DeleteFile:
		if err := d.DeleteFile(req.Path); err != nil {
			return d.failure(req, err)
		}
	default:
		return d.failure(req, fmt.Errorf("unknown command %q", req.Command))
	}
	return Response{OK: true}
}

// InvokeJSON はJSONのリクエストを実行し、JSONのレスポンスを返します
func (d *Dispatcher) InvokeJSON(ctx context.Context, payload []byte) []byte {
	var req Request
	var resp Response
	if err := json.Unmarshal(payload, &req); err != nil {
		resp = d.failure(req, fmt.Errorf("invalid request: %w", err))
	} else {
		resp = d.Invoke(ctx, req)
	}

	out, err := json.Marshal(resp)
	if err != nil {
		// Response はマーシャルに失敗しない型のみで構成される
		return []byte(`{"ok":false,"error":"failed to encode response","kind":"other"}`)
	}
	return out
}

func (d *Dispatcher) listOptions(req Request) model.ListOptions {
	opts := d.defaults.List
	if req.DirsOnly != nil {
		if *req.DirsOnly {
			opts.Filter = model.FilterDirsOnly
		} else if opts.Filter == model.FilterDirsOnly {
			opts.Filter = model.FilterAll
		}
	}
	if req.SkipErrors != nil {
		if *req.SkipErrors {
			opts.OnEntryError = model.EntryErrorSkip
		} else {
			opts.OnEntryError = model.EntryErrorAbort
		}
	}
	if len(req.Extensions) > 0 {
		opts.Extensions = req.Extensions
	}
	return opts
}

func (d *Dispatcher) createMode(req Request) model.CreateMode {
	if req.Exclusive == nil {
		return d.defaults.CreateMode
	}
	if *req.Exclusive {
		return model.CreateExclusive
	}
	return model.CreateOrTruncate
}

func (d *Dispatcher) failure(req Request, err error) Response {
	kind := model.KindOf(err)
	d.logger.Log("WARN", fmt.Sprintf("コマンド失敗: %s (%s)", req.Command, kind), err)
	return Response{OK: false, Error: err.Error(), Kind: kind.String()}
}
