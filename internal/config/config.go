// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config loads the HCL configuration file of the logicsim editor.
//
// Every setting is optional:
//
//	log_level  = "info"   # debug, info, warn, error
//	log_format = "text"   # text, json
//	save_dir   = "~/logicsim"
//	library    = true     # add the hwlib chips to new boards
//
//	grid {
//	  cell_size = 16      # PNG pixels per cell
//	  width     = 80      # text export size, in cells
//	  height    = 24
//	  show      = true
//	}
//
//	colors {
//	  active     = "#e05050"
//	  inactive   = "#505050"
//	  wire       = "#8080a0"
//	  grid       = "#303030"
//	  body       = "#d0d0d0"
//	  background = "#101010"
//	}
//
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/db47h/logicsim/internal/render"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"
)

// Config is the editor configuration.
//
type Config struct {
	LogLevel  string
	LogFormat string
	SaveDir   string
	Library   bool
	Width     int
	Height    int
	Render    render.Config
}

// Default returns the configuration used when no file is given.
//
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		SaveDir:   ".",
		Library:   true,
		Width:     80,
		Height:    24,
		Render:    render.DefaultConfig(),
	}
}

// hclFile mirrors the file layout. Pointers tell missing settings apart from
// zero values.
type hclFile struct {
	LogLevel  *string    `hcl:"log_level,optional"`
	LogFormat *string    `hcl:"log_format,optional"`
	SaveDir   *string    `hcl:"save_dir,optional"`
	Library   *bool      `hcl:"library,optional"`
	Grid      *hclGrid   `hcl:"grid,block"`
	Colors    *hclColors `hcl:"colors,block"`
}

type hclGrid struct {
	CellSize *int  `hcl:"cell_size,optional"`
	Width    *int  `hcl:"width,optional"`
	Height   *int  `hcl:"height,optional"`
	Show     *bool `hcl:"show,optional"`
}

type hclColors struct {
	Active     *string `hcl:"active,optional"`
	Inactive   *string `hcl:"inactive,optional"`
	Wire       *string `hcl:"wire,optional"`
	Grid       *string `hcl:"grid,optional"`
	Body       *string `hcl:"body,optional"`
	Background *string `hcl:"background,optional"`
}

// Load reads the configuration file at path. An empty path returns the
// defaults.
//
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return Config{}, errors.Wrapf(diags, "failed to parse config file %s", path)
	}
	return decode(f, path)
}

// Parse reads a configuration from src. filename is only used in error
// messages.
//
func Parse(src []byte, filename string) (Config, error) {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return Config{}, errors.Wrapf(diags, "failed to parse config file %s", filename)
	}
	return decode(f, filename)
}

func decode(f *hcl.File, filename string) (Config, error) {
	var hf hclFile
	if diags := gohcl.DecodeBody(f.Body, nil, &hf); diags.HasErrors() {
		return Config{}, errors.Wrapf(diags, "failed to decode config file %s", filename)
	}

	cfg := Default()
	setString(&cfg.LogLevel, hf.LogLevel)
	setString(&cfg.LogFormat, hf.LogFormat)
	setString(&cfg.SaveDir, hf.SaveDir)
	if hf.Library != nil {
		cfg.Library = *hf.Library
	}
	if g := hf.Grid; g != nil {
		setInt(&cfg.Render.CellSize, g.CellSize)
		setInt(&cfg.Width, g.Width)
		setInt(&cfg.Height, g.Height)
		if g.Show != nil {
			cfg.Render.ShowGrid = *g.Show
		}
	}
	if c := hf.Colors; c != nil {
		r := &cfg.Render
		setString(&r.Active, c.Active)
		setString(&r.Inactive, c.Inactive)
		setString(&r.Wire, c.Wire)
		setString(&r.Grid, c.Grid)
		setString(&r.Body, c.Body)
		setString(&r.Background, c.Background)
	}
	cfg.SaveDir = expandHome(cfg.SaveDir)

	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(err, filename)
	}
	return cfg, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// Validate checks that every setting has an acceptable value.
//
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("invalid log_level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return errors.Errorf("invalid log_format %q", c.LogFormat)
	}
	if c.Render.CellSize < 4 {
		return errors.Errorf("grid cell_size must be at least 4, got %d", c.Render.CellSize)
	}
	if c.Width < 1 || c.Height < 1 {
		return errors.Errorf("invalid grid size %dx%d", c.Width, c.Height)
	}
	for _, col := range []struct{ name, v string }{
		{"active", c.Render.Active},
		{"inactive", c.Render.Inactive},
		{"wire", c.Render.Wire},
		{"grid", c.Render.Grid},
		{"body", c.Render.Body},
		{"background", c.Render.Background},
	} {
		if !isHexColor(col.v) {
			return errors.Errorf("colors: invalid %s color %q", col.name, col.v)
		}
	}
	return nil
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case '0' <= r && r <= '9', 'a' <= r && r <= 'f', 'A' <= r && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// SavePath returns the path of file name in the save directory.
//
func (c *Config) SavePath(name string) string {
	if c.SaveDir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.SaveDir, name)
}
