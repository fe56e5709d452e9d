// Package config はYAML設定ファイルと環境変数からアプリケーション設定を読み込みます
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"NoteScope/internal/domain/model"
)

const (
	// EnvConfigPath は設定ファイルのパスを指定する環境変数です
	EnvConfigPath = "NOTESCOPE_CONFIG"
	// EnvNotesDir はノートディレクトリを上書きする環境変数です
	EnvNotesDir = "NOTESCOPE_ROOT"
	// DefaultConfigFile はカレントディレクトリで探す設定ファイル名です
	DefaultConfigFile = "notescope.yaml"
)

// Config はアプリケーション全体の設定です
type Config struct {
	NotesDir string        `yaml:"notes_dir"`
	Log      LogConfig     `yaml:"log"`
	Listing  ListingConfig `yaml:"listing"`
	Files    FilesConfig   `yaml:"files"`
	GUI      GUIConfig     `yaml:"gui"`
}

// LogConfig はロガーの設定です
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // auto, json, text
	Output string `yaml:"output"` // stderr, stdout, またはファイルパス
}

// ListingConfig はディレクトリ一覧取得の既定値です
type ListingConfig struct {
	EntryFilter  string   `yaml:"entry_filter"`   // all, dirs_only, files_only
	OnEntryError string   `yaml:"on_entry_error"` // abort, skip
	Extensions   []string `yaml:"extensions"`
}

// FilesConfig はファイル作成の既定値です
type FilesConfig struct {
	CreateMode string `yaml:"create_mode"` // create_or_truncate, exclusive
	Permission string `yaml:"permission"`  // 8進数表記
}

// GUIConfig はデスクトップウィンドウの設定です
type GUIConfig struct {
	Picker string `yaml:"picker"` // fyne, native
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Watch  bool   `yaml:"watch"`
}

// Default は既定の設定を返します
func Default() *Config {
	return &Config{
		NotesDir: "~/Notes",
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
			Output: "stderr",
		},
		Listing: ListingConfig{
			EntryFilter:  "all",
			OnEntryError: "abort",
		},
		Files: FilesConfig{
			CreateMode: "create_or_truncate",
			Permission: "0644",
		},
		GUI: GUIConfig{
			Picker: "fyne",
			Width:  1000,
			Height: 700,
			Watch:  true,
		},
	}
}

// Load は設定を読み込みます。
// 優先順位: 引数のパス > NOTESCOPE_CONFIG > カレントディレクトリの notescope.yaml > 既定値
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := true
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = DefaultConfigFile
		explicit = false
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// 設定ファイルなし: 既定値を使用
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if dir := os.Getenv(EnvNotesDir); dir != "" {
		cfg.NotesDir = dir
	}
	cfg.NotesDir = ExpandHome(cfg.NotesDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は列挙値とパーミッションを検証します
func (c *Config) Validate() error {
	if _, err := parseFilter(c.Listing.EntryFilter); err != nil {
		return err
	}
	if _, err := parsePolicy(c.Listing.OnEntryError); err != nil {
		return err
	}
	if _, err := parseCreateMode(c.Files.CreateMode); err != nil {
		return err
	}
	if _, err := parsePermission(c.Files.Permission); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "auto", "json", "text":
	default:
		return fmt.Errorf("invalid log.format %q", c.Log.Format)
	}
	switch strings.ToLower(c.GUI.Picker) {
	case "", "fyne", "native":
	default:
		return fmt.Errorf("invalid gui.picker %q", c.GUI.Picker)
	}
	return nil
}

// ListOptions は一覧取得の既定値をドメインの型に変換します
func (c *Config) ListOptions() model.ListOptions {
	filter, _ := parseFilter(c.Listing.EntryFilter)
	policy, _ := parsePolicy(c.Listing.OnEntryError)
	return model.ListOptions{
		Filter:       filter,
		OnEntryError: policy,
		Extensions:   c.Listing.Extensions,
	}
}

// CreateMode はファイル作成モードをドメインの型に変換します
func (c *Config) CreateMode() model.CreateMode {
	mode, _ := parseCreateMode(c.Files.CreateMode)
	return mode
}

// Permission は新規ファイルのパーミッションを返します
func (c *Config) Permission() fs.FileMode {
	perm, _ := parsePermission(c.Files.Permission)
	return perm
}

// ExpandHome は先頭の ~ をホームディレクトリに展開します
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func parseFilter(s string) (model.EntryFilter, error) {
	switch strings.ToLower(s) {
	case "", "all":
		return model.FilterAll, nil
	case "dirs_only":
		return model.FilterDirsOnly, nil
	case "files_only":
		return model.FilterFilesOnly, nil
	}
	return model.FilterAll, fmt.Errorf("invalid listing.entry_filter %q", s)
}

func parsePolicy(s string) (model.EntryErrorPolicy, error) {
	switch strings.ToLower(s) {
	case "", "abort":
		return model.EntryErrorAbort, nil
	case "skip":
		return model.EntryErrorSkip, nil
	}
	return model.EntryErrorAbort, fmt.Errorf("invalid listing.on_entry_error %q", s)
}

func parseCreateMode(s string) (model.CreateMode, error) {
	switch strings.ToLower(s) {
	case "", "create_or_truncate":
		return model.CreateOrTruncate, nil
	case "exclusive":
		return model.CreateExclusive, nil
	}
	return model.CreateOrTruncate, fmt.Errorf("invalid files.create_mode %q", s)
}

func parsePermission(s string) (fs.FileMode, error) {
	if s == "" {
		return 0o644, nil
	}
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil || v > 0o777 {
		return 0, fmt.Errorf("invalid files.permission %q", s)
	}
	return fs.FileMode(v), nil
}
