package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"NoteScope/internal/domain/model"
	"NoteScope/internal/usecase/notes"
)

func listCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Usage:     "list the entries of a directory in enumeration order",
		ArgsUsage: "DIR",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "dirs-only", Aliases: []string{"d"}, Usage: "list directories only"},
			&cli.BoolFlag{Name: "skip-errors", Usage: "skip unreadable entries instead of failing"},
			&cli.StringSliceFlag{Name: "ext", Usage: "only list files with these extensions"},
			&cli.BoolFlag{Name: "long", Aliases: []string{"l"}, Usage: "show kind, size and modification time"},
		},
		Action: func(c *cli.Context) error {
			dir, err := requireArg(c, 0, "DIR")
			if err != nil {
				return err
			}

			opts := e.dispatcher.Defaults().List
			if c.IsSet("dirs-only") {
				opts.Filter = model.FilterAll
				if c.Bool("dirs-only") {
					opts.Filter = model.FilterDirsOnly
				}
			}
			if c.IsSet("skip-errors") {
				opts.OnEntryError = model.EntryErrorAbort
				if c.Bool("skip-errors") {
					opts.OnEntryError = model.EntryErrorSkip
				}
			}
			if exts := c.StringSlice("ext"); len(exts) > 0 {
				opts.Extensions = exts
			}

			entries, err := e.dispatcher.ListEntries(dir, opts)
			if err != nil {
				return exit(err)
			}
			for _, entry := range entries {
				if !c.Bool("long") {
					fmt.Fprintln(c.App.Writer, entry.Name)
					continue
				}
				kind := "[FILE]"
				if entry.IsDir {
					kind = "[DIR] "
				}
				fmt.Fprintf(c.App.Writer, "%s %10d %s %s\n", kind, entry.Size, entry.ModTime.Format(notes.TimestampLayout), entry.Name)
			}
			return nil
		},
	}
}

func catCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "cat",
		Usage:     "print the content of a text file",
		ArgsUsage: "FILE",
		Action: func(c *cli.Context) error {
			path, err := requireArg(c, 0, "FILE")
			if err != nil {
				return err
			}
			content, err := e.dispatcher.ReadFile(path)
			if err != nil {
				return exit(err)
			}
			fmt.Fprint(c.App.Writer, content)
			return nil
		},
	}
}

func createCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "create a file (truncating an existing one unless --exclusive)",
		ArgsUsage: "FILE [CONTENT|-]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "exclusive", Aliases: []string{"n"}, Usage: "fail if the file already exists"},
		},
		Action: func(c *cli.Context) error {
			path, err := requireArg(c, 0, "FILE")
			if err != nil {
				return err
			}
			content, err := contentArg(c)
			if err != nil {
				return err
			}

			mode := e.dispatcher.Defaults().CreateMode
			if c.IsSet("exclusive") {
				mode = model.CreateOrTruncate
				if c.Bool("exclusive") {
					mode = model.CreateExclusive
				}
			}
			if err := e.dispatcher.CreateFile(path, content, mode); err != nil {
				return exit(err)
			}
			return nil
		},
	}
}

func updateCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "overwrite the content of an existing file",
		ArgsUsage: "FILE [CONTENT|-]",
		Action: func(c *cli.Context) error {
			path, err := requireArg(c, 0, "FILE")
			if err != nil {
				return err
			}
			content, err := contentArg(c)
			if err != nil {
				return err
			}
			if err := e.dispatcher.UpdateFile(path, content); err != nil {
				return exit(err)
			}
			return nil
		},
	}
}

func removeCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "delete a file",
		ArgsUsage: "FILE",
		Action: func(c *cli.Context) error {
			path, err := requireArg(c, 0, "FILE")
			if err != nil {
				return err
			}
			if err := e.dispatcher.DeleteFile(path); err != nil {
				return exit(err)
			}
			return nil
		},
	}
}

func invokeCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "invoke",
		Usage: "read one JSON command request from stdin and write the JSON response",
		Action: func(c *cli.Context) error {
			payload, err := io.ReadAll(c.App.Reader)
			if err != nil {
				return cli.Exit(fmt.Sprintf("failed to read request: %v", err), 1)
			}
			fmt.Fprintln(c.App.Writer, string(e.dispatcher.InvokeJSON(c.Context, payload)))
			return nil
		},
	}
}

func indexCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "index",
		Usage:     "write a markdown index of the notes in a directory",
		ArgsUsage: "[DIR]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write the index to this file instead of stdout"},
		},
		Action: func(c *cli.Context) error {
			dir := c.Args().Get(0)
			if dir == "" {
				dir = e.cfg.NotesDir
			}
			list, err := e.catalog.List(dir)
			if err != nil {
				return exit(err)
			}

			var buf strings.Builder
			if err := notes.WriteIndex(&buf, dir, list); err != nil {
				return exit(err)
			}
			if output := c.String("output"); output != "" {
				if err := e.dispatcher.CreateFile(output, buf.String(), model.CreateOrTruncate); err != nil {
					return exit(err)
				}
				return nil
			}
			fmt.Fprint(c.App.Writer, buf.String())
			return nil
		},
	}
}

func requireArg(c *cli.Context, n int, name string) (string, error) {
	if c.NArg() <= n {
		return "", cli.Exit(fmt.Sprintf("missing %s argument", name), 2)
	}
	return c.Args().Get(n), nil
}

// contentArg は2番目の引数を内容として返します。"-" の場合は標準入力から読み込みます
func contentArg(c *cli.Context) (string, error) {
	content := c.Args().Get(1)
	if content != "-" {
		return content, nil
	}
	data, err := io.ReadAll(c.App.Reader)
	if err != nil {
		return "", cli.Exit(fmt.Sprintf("failed to read content: %v", err), 1)
	}
	return string(data), nil
}

func exit(err error) error {
	return cli.Exit(err.Error(), 1)
}
