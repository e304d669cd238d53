// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command logicsim edits and simulates logic circuits in the terminal.
//
// Usage:
//
//	logicsim [options] [BOARD]
//
// BOARD is a JSON board file. It is created on the first save if it does not
// exist. With -export, the current chip (or the one named by -chip) is
// written as PNG or text and the editor is not started.
//
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	ls "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/hwlib"
	"github.com/db47h/logicsim/internal/config"
	"github.com/db47h/logicsim/internal/editor"
	"github.com/db47h/logicsim/internal/render"
	"github.com/pkg/errors"
)

type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

type options struct {
	config    string
	export    string
	out       string
	chip      string
	logLevel  string
	logFormat string
	logFile   string
	board     string
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			if ee.msg != "" {
				fmt.Fprintln(os.Stderr, ee.msg)
			}
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// parseArgs returns the command line options. It returns true if the program
// should exit without error, as with -h.
func parseArgs(args []string, output io.Writer) (*options, bool, error) {
	fs := flag.NewFlagSet("logicsim", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, `
logicsim - a logic circuit editor and simulator.

Usage:
  logicsim [options] [BOARD]

Options:
`)
		fs.PrintDefaults()
	}

	var o options
	fs.StringVar(&o.config, "config", "", "Path to the HCL configuration file.")
	fs.StringVar(&o.export, "export", "", "Export the chip and exit. Options: 'png' or 'txt'.")
	fs.StringVar(&o.out, "o", "", "Export output file. Defaults to standard output.")
	fs.StringVar(&o.chip, "chip", "", "Name of the chip to export. Defaults to the current chip.")
	fs.StringVar(&o.logLevel, "log-level", "", "Override the configured log level.")
	fs.StringVar(&o.logFormat, "log-format", "", "Override the configured log format.")
	fs.StringVar(&o.logFile, "log-file", "", "Log file. The editor discards logs without it.")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &exitError{code: 2, msg: err.Error()}
	}
	switch o.export {
	case "", "png", "txt":
	default:
		return nil, false, &exitError{code: 2, msg: "invalid export format: must be 'png' or 'txt'"}
	}
	if fs.NArg() > 1 {
		return nil, false, &exitError{code: 2, msg: "too many arguments"}
	}
	o.board = fs.Arg(0)
	return &o, false, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	o, exit, err := parseArgs(args, stderr)
	if err != nil || exit {
		return err
	}

	cfg, err := config.Load(o.config)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.logFormat != "" {
		cfg.LogFormat = o.logFormat
	}
	if err = cfg.Validate(); err != nil {
		return &exitError{code: 2, msg: err.Error()}
	}

	logW := io.Discard
	switch {
	case o.logFile != "":
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return errors.Wrap(err, "open log file")
		}
		defer f.Close()
		logW = f
	case o.export != "":
		logW = stderr
	}
	log := newLogger(cfg.LogLevel, cfg.LogFormat, logW)

	b, err := loadBoard(o.board, cfg, log)
	if err != nil {
		return err
	}

	if o.export != "" {
		return export(b, o, cfg, stdout, log)
	}

	m := editor.New(b, editor.Options{Config: cfg, Path: o.board, Logger: log})
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return errors.Wrap(err, "editor")
}

// loadBoard reads the board at path. A missing file gives a new board, with
// the library chips when enabled.
func loadBoard(path string, cfg config.Config, log *slog.Logger) (*ls.Board, error) {
	if path != "" {
		f, err := os.Open(path)
		switch {
		case err == nil:
			defer f.Close()
			b, err := ls.DecodeBoard(f)
			if err != nil {
				return nil, errors.Wrapf(err, "load %s", path)
			}
			log.Info("board loaded", "path", path, "chips", b.Len())
			return b, nil
		case !os.IsNotExist(err):
			return nil, errors.Wrap(err, "open board")
		}
	}
	b := ls.NewBoard()
	if cfg.Library {
		idx, err := hwlib.Install(b)
		if err != nil {
			return nil, errors.Wrap(err, "install library")
		}
		log.Debug("library installed", "chips", len(idx))
	}
	log.Info("new board", "path", path, "chips", b.Len())
	return b, nil
}

func export(b *ls.Board, o *options, cfg config.Config, stdout io.Writer, log *slog.Logger) error {
	c := b.Current()
	if o.chip != "" {
		c = nil
		for _, cc := range b.Chips() {
			if cc.Name() == o.chip {
				c = cc
				break
			}
		}
		if c == nil {
			return errors.Wrap(ls.ErrNotFound, "chip "+o.chip)
		}
	}

	var buf bytes.Buffer
	if o.export == "png" {
		if err := render.PNG(&buf, c, cfg.Render); err != nil {
			return err
		}
	} else {
		min, _, ok := render.Bounds(c)
		if !ok {
			return errors.Errorf("chip %q: nothing to draw", c.Name())
		}
		buf.WriteString(render.Text(c, cfg.Render, render.View{Origin: min, Width: cfg.Width, Height: cfg.Height}))
		buf.WriteByte('\n')
	}

	if o.out == "" {
		_, err := stdout.Write(buf.Bytes())
		return errors.Wrap(err, "export")
	}
	if err := os.WriteFile(o.out, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(err, "export")
	}
	log.Info("chip exported", "chip", c.Name(), "format", o.export, "path", o.out)
	return nil
}
