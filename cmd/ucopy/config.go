package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rgonek/unified-copy/converter"
	"gopkg.in/yaml.v3"
)

const (
	presetDiscord = "discord"
	presetPlain   = "plain"
	presetStrict  = "strict"

	strictMaxDepth = 64
)

func presetConfig(preset string) (converter.Config, error) {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", presetDiscord:
		return converter.Config{}, nil
	case presetPlain:
		return converter.Config{
			NormalizeLanguages: true,
			Delimiters: converter.Delimiters{
				Italic:    "_",
				Underline: "_",
				Bullet:    "*",
			},
		}, nil
	case presetStrict:
		return converter.Config{
			MaxDepth: strictMaxDepth,
		}, nil
	default:
		return converter.Config{}, fmt.Errorf("unknown preset %q (allowed: discord, plain, strict)", preset)
	}
}

// fileConfig is the on-disk configuration. Unset fields keep the preset value.
type fileConfig struct {
	HiddenClassMarkers   []string          `toml:"hidden_class_markers" yaml:"hidden_class_markers"`
	SpoilerClassMarkers  []string          `toml:"spoiler_class_markers" yaml:"spoiler_class_markers"`
	InlineCodeClass      string            `toml:"inline_code_class" yaml:"inline_code_class"`
	CodeTableSelector    string            `toml:"code_table_selector" yaml:"code_table_selector"`
	CodeLanguageSelector string            `toml:"code_language_selector" yaml:"code_language_selector"`
	LanguageMap          map[string]string `toml:"language_map" yaml:"language_map"`
	NormalizeLanguages   *bool             `toml:"normalize_languages" yaml:"normalize_languages"`
	MaxDepth             *int              `toml:"max_depth" yaml:"max_depth"`
	Delimiters           fileDelimiters    `toml:"delimiters" yaml:"delimiters"`
	Copy                 fileCopyConfig    `toml:"copy" yaml:"copy"`
}

type fileDelimiters struct {
	Bold       string `toml:"bold" yaml:"bold"`
	Italic     string `toml:"italic" yaml:"italic"`
	Strike     string `toml:"strike" yaml:"strike"`
	Underline  string `toml:"underline" yaml:"underline"`
	InlineCode string `toml:"inline_code" yaml:"inline_code"`
	Spoiler    string `toml:"spoiler" yaml:"spoiler"`
	Subtext    string `toml:"subtext" yaml:"subtext"`
	Quote      string `toml:"quote" yaml:"quote"`
	Bullet     string `toml:"bullet" yaml:"bullet"`
}

type fileCopyConfig struct {
	Selectors      []string `toml:"selectors" yaml:"selectors"`
	WrapTarget     bool     `toml:"wrap_target" yaml:"wrap_target"`
	HighlightColor string   `toml:"highlight_color" yaml:"highlight_color"`
	TooltipText    string   `toml:"tooltip_text" yaml:"tooltip_text"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("failed to read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &fc); err != nil {
			return fc, fmt.Errorf("failed to parse TOML config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return fc, fmt.Errorf("failed to parse YAML config %s: %w", path, err)
		}
	default:
		return fc, fmt.Errorf("unsupported config format %q (expected .toml, .yaml or .yml)", filepath.Ext(path))
	}

	return fc, nil
}

// apply overlays the set fields of fc onto cfg.
func (fc fileConfig) apply(cfg converter.Config) converter.Config {
	if fc.HiddenClassMarkers != nil {
		cfg.HiddenClassMarkers = fc.HiddenClassMarkers
	}
	if fc.SpoilerClassMarkers != nil {
		cfg.SpoilerClassMarkers = fc.SpoilerClassMarkers
	}
	cfg.InlineCodeClass = overlay(cfg.InlineCodeClass, fc.InlineCodeClass)
	cfg.CodeTableSelector = overlay(cfg.CodeTableSelector, fc.CodeTableSelector)
	cfg.CodeLanguageSelector = overlay(cfg.CodeLanguageSelector, fc.CodeLanguageSelector)
	if fc.LanguageMap != nil {
		cfg.LanguageMap = fc.LanguageMap
	}
	if fc.NormalizeLanguages != nil {
		cfg.NormalizeLanguages = *fc.NormalizeLanguages
	}
	if fc.MaxDepth != nil {
		cfg.MaxDepth = *fc.MaxDepth
	}

	d := &cfg.Delimiters
	d.Bold = overlay(d.Bold, fc.Delimiters.Bold)
	d.Italic = overlay(d.Italic, fc.Delimiters.Italic)
	d.Strike = overlay(d.Strike, fc.Delimiters.Strike)
	d.Underline = overlay(d.Underline, fc.Delimiters.Underline)
	d.InlineCode = overlay(d.InlineCode, fc.Delimiters.InlineCode)
	d.Spoiler = overlay(d.Spoiler, fc.Delimiters.Spoiler)
	d.Subtext = overlay(d.Subtext, fc.Delimiters.Subtext)
	d.Quote = overlay(d.Quote, fc.Delimiters.Quote)
	d.Bullet = overlay(d.Bullet, fc.Delimiters.Bullet)

	return cfg
}

func overlay(base, override string) string {
	if override != "" {
		return override
	}
	return base
}

// resolveConfig builds the converter config: preset first, then the config
// file, then flags.
func resolveConfig(preset string, fc fileConfig, normalize bool) (converter.Config, error) {
	cfg, err := presetConfig(preset)
	if err != nil {
		return converter.Config{}, err
	}

	cfg = fc.apply(cfg)
	if normalize {
		cfg.NormalizeLanguages = true
	}

	return cfg, nil
}
