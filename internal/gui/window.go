package gui

import (
	"fmt"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"NoteScope/internal/infrastructure/config"
	"NoteScope/internal/infrastructure/logging"
)

// FolderPicker はネイティブのフォルダ選択ダイアログです
type FolderPicker interface {
	SelectDirectory(title string) (string, error)
}

// DirectoryWatcher はフォルダの変更を通知します
type DirectoryWatcher interface {
	Watch(dir string, onChange func()) error
	Close() error
}

const pickerTitle = "ノートフォルダを選択"

// Window はノート一覧、マークダウンエディタ、プレビューを持つメインウィンドウです
type Window struct {
	cfg       config.GUIConfig
	presenter *Presenter
	selector  *DirectorySelector
	picker    FolderPicker
	watcher   DirectoryWatcher
	logger    logging.Logger

	win     fyne.Window
	list    *widget.List
	editor  *widget.Entry
	preview *widget.RichText
	tabs    *container.AppTabs
	editTab *container.TabItem
	status  *widget.Label

	// フォルダ監視とネイティブピッカーのゴルーチンからも書き換えられる
	loading atomic.Bool
}

// NewWindow はウィンドウを作成します。picker と watcher は nil でも構いません
func NewWindow(app fyne.App, cfg config.GUIConfig, presenter *Presenter, selector *DirectorySelector, picker FolderPicker, watcher DirectoryWatcher, logger logging.Logger) *Window {
	w := &Window{
		cfg:       cfg,
		presenter: presenter,
		selector:  selector,
		picker:    picker,
		watcher:   watcher,
		logger:    logger,
		win:       app.NewWindow("NoteScope"),
	}
	w.build()
	return w
}

// ShowAndRun はウィンドウを表示し、dir が空でなければそのフォルダを開きます
func (w *Window) ShowAndRun(dir string) {
	if dir != "" {
		w.open(dir)
	}
	w.win.ShowAndRun()
}

func (w *Window) build() {
	width, height := float32(w.cfg.Width), float32(w.cfg.Height)
	if width <= 0 || height <= 0 {
		width, height = DefaultWindowWidth, DefaultWindowHeight
	}
	w.win.Resize(fyne.NewSize(width, height))

	w.list = widget.NewList(
		func() int { return len(w.presenter.Notes()) },
		func() fyne.CanvasObject { return widget.NewLabel("note") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			list := w.presenter.Notes()
			if id < len(list) {
				obj.(*widget.Label).SetText(list[id].Title)
			}
		},
	)
	w.list.OnSelected = w.onSelected

	w.preview = widget.NewRichTextFromMarkdown("")
	w.preview.Wrapping = fyne.TextWrapWord

	w.editor = widget.NewMultiLineEntry()
	w.editor.Wrapping = fyne.TextWrapWord
	w.editor.OnChanged = func(s string) {
		if w.loading.Load() {
			return
		}
		w.presenter.Edit(s)
		w.preview.ParseMarkdown(s)
		w.updateStatus()
	}

	w.editTab = container.NewTabItem("編集", w.editor)
	w.tabs = container.NewAppTabs(
		container.NewTabItem("プレビュー", container.NewVScroll(w.preview)),
		w.editTab,
	)

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), w.chooseFolder),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentAddIcon(), w.newNote),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), w.save),
		widget.NewToolbarAction(theme.DeleteIcon(), w.deleteNote),
	)

	w.status = widget.NewLabel("")
	split := container.NewHSplit(w.list, w.tabs)
	split.Offset = 0.25

	w.win.SetContent(container.NewBorder(toolbar, w.status, nil, nil, split))
	w.win.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		w.save()
	})
	w.win.SetOnClosed(func() {
		if w.watcher != nil {
			if err := w.watcher.Close(); err != nil {
				w.logger.Log("WARN", "フォルダ監視の停止に失敗しました", err)
			}
		}
	})
	w.updateStatus()
}

func (w *Window) chooseFolder() {
	if w.cfg.Picker == "native" && w.picker != nil {
		go func() {
			path, err := w.picker.SelectDirectory(pickerTitle)
			if err != nil {
				w.logger.Log("INFO", "フォルダ選択を中断しました", err)
				return
			}
			w.open(path)
		}()
		return
	}
	w.selector.SelectDirectory(w.win, pickerTitle, w.open)
}

func (w *Window) open(dir string) {
	if err := w.presenter.Open(dir); err != nil {
		w.showError("フォルダを開けませんでした", err)
		return
	}
	w.logger.Log("INFO", fmt.Sprintf("ノートフォルダを開きました: %s", dir), nil)
	w.list.UnselectAll()
	w.setEditor("")
	w.list.Refresh()
	w.updateStatus()

	if w.watcher != nil && w.cfg.Watch {
		if err := w.watcher.Watch(dir, w.refresh); err != nil {
			w.logger.Log("WARN", "フォルダ監視を開始できません", err)
		}
	}
}

// refresh はフォルダ監視から呼ばれます
func (w *Window) refresh() {
	if err := w.presenter.Refresh(); err != nil {
		w.logger.Log("WARN", "ノート一覧の更新に失敗しました", err)
		return
	}
	w.list.Refresh()
	if idx := w.presenter.Selected(); idx >= 0 {
		// 選択中のノートが残っていれば編集中の内容には触れない
		w.list.Select(idx)
		w.updateStatus()
		return
	}
	w.list.UnselectAll()
	w.setEditor("")
	w.updateStatus()
}

func (w *Window) onSelected(id widget.ListItemID) {
	if id == w.presenter.Selected() {
		return
	}
	if w.presenter.Dirty() {
		prev := w.presenter.Selected()
		dialog.ShowConfirm("未保存の変更", "保存されていない変更を破棄しますか?", func(discard bool) {
			if !discard {
				w.list.Select(prev)
				return
			}
			w.load(id)
		}, w.win)
		return
	}
	w.load(id)
}

func (w *Window) load(id widget.ListItemID) {
	content, err := w.presenter.Select(id)
	if err != nil {
		w.showError("ノートを読み込めませんでした", err)
		return
	}
	w.setEditor(content)
	w.updateStatus()
}

func (w *Window) newNote() {
	if w.presenter.Dir() == "" {
		w.showError("ノートを作成できません", ErrNoFolder)
		return
	}
	name := widget.NewEntry()
	name.SetPlaceHolder("my-note")
	items := []*widget.FormItem{widget.NewFormItem("名前", name)}

	dialog.ShowForm("新しいノート", "作成", "キャンセル", items, func(ok bool) {
		if !ok {
			return
		}
		index, err := w.presenter.New(name.Text)
		if err != nil {
			w.showError("ノートを作成できませんでした", err)
			return
		}
		w.list.Refresh()
		w.list.Select(index)
		w.setEditor(w.presenter.Content())
		w.tabs.Select(w.editTab)
		w.updateStatus()
	}, w.win)
}

func (w *Window) save() {
	if err := w.presenter.Save(); err != nil {
		w.showError("保存できませんでした", err)
		return
	}
	w.updateStatus()
}

func (w *Window) deleteNote() {
	idx := w.presenter.Selected()
	if idx < 0 {
		w.showError("削除できません", ErrNoSelection)
		return
	}
	name := w.presenter.Notes()[idx].Name
	dialog.ShowConfirm("ノートの削除", fmt.Sprintf("%s を削除しますか?", name), func(ok bool) {
		if !ok {
			return
		}
		if err := w.presenter.Delete(); err != nil {
			w.showError("削除できませんでした", err)
			return
		}
		w.list.UnselectAll()
		w.list.Refresh()
		w.setEditor("")
		w.updateStatus()
	}, w.win)
}

// setEditor は OnChanged による未保存扱いを避けて内容を差し替えます
func (w *Window) setEditor(content string) {
	w.loading.Store(true)
	defer w.loading.Store(false)
	w.editor.SetText(content)
	w.preview.ParseMarkdown(content)
}

func (w *Window) updateStatus() {
	dir := w.presenter.Dir()
	switch {
	case dir == "":
		w.status.SetText("フォルダが開かれていません")
	case w.presenter.Dirty():
		w.status.SetText(fmt.Sprintf("%s (%d件) *未保存", dir, len(w.presenter.Notes())))
	default:
		w.status.SetText(fmt.Sprintf("%s (%d件)", dir, len(w.presenter.Notes())))
	}
}

func (w *Window) showError(title string, err error) {
	w.logger.Log("ERROR", title, err)
	dialog.ShowError(fmt.Errorf("%s: %w", title, err), w.win)
}
