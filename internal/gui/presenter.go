package gui

import (
	"errors"
	"path/filepath"
	"sync"

	"NoteScope/internal/usecase/notes"
)

// ErrNoSelection はノートが選択されていない状態で保存・削除しようとした場合のエラーです
var ErrNoSelection = errors.New("ノートが選択されていません")

// ErrNoFolder はノートフォルダが開かれていない場合のエラーです
var ErrNoFolder = errors.New("ノートフォルダが開かれていません")

// FileBackend はノート本文の読み書きに使うコマンドです
type FileBackend interface {
	ReadFile(path string) (string, error)
	UpdateFile(path, content string) error
	DeleteFile(path string) error
}

// NoteCatalog はノート一覧の取得と作成を提供します
type NoteCatalog interface {
	List(dir string) ([]notes.Note, error)
	Create(dir, name string) (string, error)
}

// Presenter はウィンドウの状態（フォルダ、ノート一覧、選択中のノート、編集内容）を保持します。
// フォルダ監視のゴルーチンからも呼ばれるため、状態はミューテックスで保護します
type Presenter struct {
	files   FileBackend
	catalog NoteCatalog

	mu       sync.Mutex
	dir      string
	notes    []notes.Note
	selected int
	saved    string
	content  string
}

// NewPresenter は新しい Presenter インスタンスを作成します
func NewPresenter(files FileBackend, catalog NoteCatalog) *Presenter {
	return &Presenter{files: files, catalog: catalog, selected: -1}
}

// Open はノートフォルダを開いて一覧を読み込みます
func (p *Presenter) Open(dir string) error {
	list, err := p.catalog.List(dir)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.dir = dir
	p.notes = list
	p.clearSelection()
	return nil
}

// Refresh は一覧を読み直します。選択中のノートが残っていれば選択を維持します
func (p *Presenter) Refresh() error {
	p.mu.Lock()
	dir := p.dir
	p.mu.Unlock()
	if dir == "" {
		return ErrNoFolder
	}

	list, err := p.catalog.List(dir)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dir != dir {
		// 読み込み中に別のフォルダが開かれた
		return nil
	}
	name := p.selectedName()
	p.notes = list
	p.selected = -1
	for i, n := range list {
		if n.Name == name {
			p.selected = i
			break
		}
	}
	if p.selected < 0 {
		p.saved, p.content = "", ""
	}
	return nil
}

// Select は index のノートを読み込み、その内容を返します
func (p *Presenter) Select(index int) (string, error) {
	p.mu.Lock()
	if index < 0 || index >= len(p.notes) {
		p.mu.Unlock()
		return "", ErrNoSelection
	}
	path := filepath.Join(p.dir, p.notes[index].Name)
	p.mu.Unlock()

	content, err := p.files.ReadFile(path)
	if err != nil {
		return "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.selected = index
	p.saved, p.content = content, content
	return content, nil
}

// Edit は編集中の内容を更新します
func (p *Presenter) Edit(content string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.selected >= 0 {
		p.content = content
	}
}

// Save は編集中の内容を選択中のノートに書き込みます
func (p *Presenter) Save() error {
	p.mu.Lock()
	if p.selected < 0 {
		p.mu.Unlock()
		return ErrNoSelection
	}
	path := filepath.Join(p.dir, p.notes[p.selected].Name)
	content := p.content
	p.mu.Unlock()

	if err := p.files.UpdateFile(path, content); err != nil {
		return err
	}

	p.mu.Lock()
	p.saved = content
	p.mu.Unlock()
	return nil
}

// New は空のノートを作成して選択し、その位置を返します
func (p *Presenter) New(name string) (int, error) {
	p.mu.Lock()
	dir := p.dir
	p.mu.Unlock()
	if dir == "" {
		return -1, ErrNoFolder
	}

	fileName, err := p.catalog.Create(dir, name)
	if err != nil {
		return -1, err
	}
	if err := p.Refresh(); err != nil {
		return -1, err
	}

	index := p.indexOf(fileName)
	if index < 0 {
		return -1, ErrNoSelection
	}
	if _, err := p.Select(index); err != nil {
		return -1, err
	}
	return index, nil
}

// Delete は選択中のノートを削除します
func (p *Presenter) Delete() error {
	p.mu.Lock()
	if p.selected < 0 {
		p.mu.Unlock()
		return ErrNoSelection
	}
	path := filepath.Join(p.dir, p.notes[p.selected].Name)
	p.mu.Unlock()

	if err := p.files.DeleteFile(path); err != nil {
		return err
	}

	p.mu.Lock()
	p.clearSelection()
	p.mu.Unlock()
	return p.Refresh()
}

// Dir は開いているノートフォルダを返します
func (p *Presenter) Dir() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dir
}

// Notes はノート一覧のコピーを返します
func (p *Presenter) Notes() []notes.Note {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]notes.Note(nil), p.notes...)
}

// Selected は選択中のノートの位置を返します。未選択の場合は -1 です
func (p *Presenter) Selected() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selected
}

// Content は編集中の内容を返します
func (p *Presenter) Content() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.content
}

// Dirty は未保存の変更があるかを返します
func (p *Presenter) Dirty() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selected >= 0 && p.content != p.saved
}

func (p *Presenter) indexOf(name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, n := range p.notes {
		if n.Name == name {
			return i
		}
	}
	return -1
}

func (p *Presenter) selectedName() string {
	if p.selected < 0 || p.selected >= len(p.notes) {
		return ""
	}
	return p.notes[p.selected].Name
}

func (p *Presenter) clearSelection() {
	p.selected = -1
	p.saved, p.content = "", ""
}
