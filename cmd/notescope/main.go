// Package main はアプリケーションのエントリーポイントを提供します
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"NoteScope/internal/infrastructure/config"
	"NoteScope/internal/infrastructure/filesystem"
	"NoteScope/internal/infrastructure/logging"
	"NoteScope/internal/usecase/command"
	"NoteScope/internal/usecase/notes"
)

// env はコマンド間で共有する依存関係です
type env struct {
	cfg        *config.Config
	logger     *logging.SlogLogger
	closeLog   func() error
	dispatcher *command.Dispatcher
	catalog    *notes.Catalog
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	e := &env{}

	return &cli.App{
		Name:  "notescope",
		Usage: "markdown notes folder shell",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to notescope.yaml",
				EnvVars: []string{config.EnvConfigPath},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "auto, json or text",
			},
		},
		Before: func(c *cli.Context) error {
			return e.setup(c)
		},
		After: func(c *cli.Context) error {
			if e.closeLog != nil {
				return e.closeLog()
			}
			return nil
		},
		Commands: []*cli.Command{
			listCommand(e),
			catCommand(e),
			createCommand(e),
			updateCommand(e),
			removeCommand(e),
			invokeCommand(e),
			indexCommand(e),
			guiCommand(e),
		},
	}
}

func (e *env) setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Log.Format = c.String("log-format")
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	dispatcher := command.NewDispatcher(
		filesystem.NewLister(logger),
		filesystem.NewFiles(logger, cfg.Permission()),
		logger,
		command.Defaults{List: cfg.ListOptions(), CreateMode: cfg.CreateMode()},
	)

	e.cfg = cfg
	e.logger = logger
	e.closeLog = closeLog
	e.dispatcher = dispatcher
	e.catalog = notes.NewCatalog(dispatcher, dispatcher)
	return nil
}
