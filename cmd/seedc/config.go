package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/seed/pkg/layout"
)

// fileConfig is seedc.toml's shape: layout defaults a command-line flag
// can still override. This is ambient CLI configuration, not a compile
// input the core reads for itself (the core never touches the
// filesystem — pkg/tokenpack and this file are where that happens).
type fileConfig struct {
	Layout struct {
		ViewportWidth     float64 `toml:"viewport_width"`
		ViewportHeight    float64 `toml:"viewport_height"`
		DefaultFontSize   float64 `toml:"default_font_size"`
		DefaultLineHeight float64 `toml:"default_line_height"`
	} `toml:"layout"`
}

// loadLayoutOptions builds layout.Options from (in ascending priority)
// the built-in defaults, seedc.toml if present, and any --viewport-*
// flags the caller set.
func loadLayoutOptions(path string) (layout.Options, error) {
	opts := layout.DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return applyFlagOverrides(opts), nil
		}
		return opts, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg fileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return opts, fmt.Errorf("parsing %s: %w", path, err)
	}

	if cfg.Layout.ViewportWidth > 0 {
		opts.ViewportWidth = cfg.Layout.ViewportWidth
	}
	if cfg.Layout.ViewportHeight > 0 {
		opts.ViewportHeight = cfg.Layout.ViewportHeight
	}
	if cfg.Layout.DefaultFontSize > 0 {
		opts.DefaultFontSize = cfg.Layout.DefaultFontSize
	}
	if cfg.Layout.DefaultLineHeight > 0 {
		opts.DefaultLineHeight = cfg.Layout.DefaultLineHeight
	}

	return applyFlagOverrides(opts), nil
}

func applyFlagOverrides(opts layout.Options) layout.Options {
	if viewWidth > 0 {
		opts.ViewportWidth = viewWidth
	}
	if viewHeight > 0 {
		opts.ViewportHeight = viewHeight
	}
	if defaultFont > 0 {
		opts.DefaultFontSize = defaultFont
	}
	return opts
}
