// Package watch はノートフォルダの変更を監視します
package watch

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"NoteScope/internal/infrastructure/logging"
)

// DefaultDebounce は連続した変更イベントをまとめる待ち時間です
const DefaultDebounce = 200 * time.Millisecond

// Watcher は単一ディレクトリの変更を監視し、変更があれば onChange を呼び出します
type Watcher struct {
	logger   logging.Logger
	debounce time.Duration

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	timer   *time.Timer
	done    chan struct{}
}

// NewWatcher は新しい Watcher インスタンスを作成します
func NewWatcher(logger logging.Logger, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{logger: logger, debounce: debounce}
}

// Watch は dir の監視を開始します。既に監視中の場合は以前の監視を停止します。
// onChange は別のゴルーチンから呼び出されます
func (w *Watcher) Watch(dir string, onChange func()) error {
	if err := w.Close(); err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("監視の開始に失敗しました: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return fmt.Errorf("ディレクトリ '%s' を監視できません: %w", dir, err)
	}

	done := make(chan struct{})
	w.mu.Lock()
	w.watcher = fw
	w.done = done
	w.mu.Unlock()

	go w.loop(fw, done, onChange)
	return nil
}

// Close は監視を停止します
func (w *Watcher) Close() error {
	w.mu.Lock()
	fw, done := w.watcher, w.done
	w.watcher, w.done = nil, nil
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	if fw == nil {
		return nil
	}
	close(done)
	return fw.Close()
}

func (w *Watcher) loop(fw *fsnotify.Watcher, done chan struct{}, onChange func()) {
	for {
		select {
		case <-done:
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			w.schedule(done, onChange)
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Log("WARN", "フォルダ監視でエラーが発生しました", err)
		}
	}
}

// schedule は debounce 期間内の変更を1回の onChange にまとめます
func (w *Watcher) schedule(done chan struct{}, onChange func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case <-done:
		default:
			onChange()
		}
	})
}
