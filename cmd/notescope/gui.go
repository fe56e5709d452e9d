package main

import (
	"path/filepath"

	"fyne.io/fyne/v2/app"
	"github.com/urfave/cli/v2"

	"NoteScope/internal/gui"
	"NoteScope/internal/infrastructure/filesystem"
	"NoteScope/internal/infrastructure/watch"
	"NoteScope/internal/interface/ui"
)

func guiCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "gui",
		Usage:     "open the notes window",
		ArgsUsage: "[DIR]",
		Action: func(c *cli.Context) error {
			dir := c.Args().Get(0)
			if dir == "" {
				dir = e.cfg.NotesDir
			}

			if abs, err := filepath.Abs(dir); err == nil {
				dir = abs
			}

			validator := filesystem.NewValidator()
			if err := validator.ValidateDirectoryPath(dir); err != nil {
				// フォルダが無効な場合は未選択の状態で起動する
				e.logger.Log("WARN", "ノートフォルダを開けません: "+dir, err)
				dir = ""
			}

			presenter := gui.NewPresenter(e.dispatcher, e.catalog)
			window := gui.NewWindow(
				app.NewWithID("io.notescope"),
				e.cfg.GUI,
				presenter,
				gui.NewDirectorySelector(validator),
				ui.NewDirectorySelector(validator),
				watch.NewWatcher(e.logger, watch.DefaultDebounce),
				e.logger,
			)
			window.ShowAndRun(dir)
			return nil
		},
	}
}
