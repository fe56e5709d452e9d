// Package logging はロギング機能を提供します
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"NoteScope/internal/infrastructure/config"
)

// Logger は構造化ログを出力するためのインターフェースです
type Logger interface {
	Log(level, message string, err error)
}

// SlogLogger は log/slog のハンドラにログを出力するロガーです
type SlogLogger struct {
	logger *slog.Logger
}

// NewJSONLogger は新しいJSON形式のロガーを作成します。すべてのレベルを出力します
func NewJSONLogger(writer io.Writer) *SlogLogger {
	if writer == nil {
		writer = os.Stdout
	}
	return &SlogLogger{
		logger: slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
}

// Discard は何も出力しないロガーを返します
func Discard() *SlogLogger {
	return &SlogLogger{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// New は設定に従ってロガーを作成します。
// 返されるクローズ関数はファイル出力の場合にハンドルを閉じます
func New(cfg config.LogConfig) (*SlogLogger, func() error, error) {
	writer, closer, err := openOutput(cfg.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("open log output: %w", err)
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	switch resolveFormat(cfg.Format, writer) {
	case "json":
		handler = slog.NewJSONHandler(writer, opts)
	default:
		handler = slog.NewTextHandler(writer, opts)
	}

	return &SlogLogger{logger: slog.New(handler)}, closer, nil
}

// Log はメッセージを指定レベルで出力します。err が nil でなければ error 属性として付与します
func (l *SlogLogger) Log(level, message string, err error) {
	var attrs []slog.Attr
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.logger.LogAttrs(context.Background(), parseLevel(level), message, attrs...)
}

// Slog は内部の *slog.Logger を返します
func (l *SlogLogger) Slog() *slog.Logger {
	return l.logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// resolveFormat は auto の場合、端末ならテキスト、それ以外ならJSONを選びます
func resolveFormat(format string, writer io.Writer) string {
	format = strings.ToLower(format)
	if format == "json" || format == "text" {
		return format
	}
	if f, ok := writer.(*os.File); ok {
		if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
			return "text"
		}
	}
	return "json"
}

func openOutput(output string) (io.Writer, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(output) {
	case "stdout":
		return os.Stdout, noop, nil
	case "stderr", "":
		return os.Stderr, noop, nil
	default:
		f, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return nil, nil, err
		}
		return f, f.Close, nil
	}
}
