package converter

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
)

const (
	defaultCodeTableSelector    = "table"
	defaultCodeLanguageSelector = "[class*='lang']:not(code)"
	defaultHiddenClassMarker    = "hiddenVisually"
	defaultInlineCodeClass      = "inline"
	maxDelimiterLength          = 8
)

// Delimiters holds the markdown syntax emitted for each construct.
type Delimiters struct {
	Bold       string `json:"bold,omitempty"`
	Italic     string `json:"italic,omitempty"`
	Strike     string `json:"strike,omitempty"`
	Underline  string `json:"underline,omitempty"`
	InlineCode string `json:"inlineCode,omitempty"`
	Spoiler    string `json:"spoiler,omitempty"`
	Subtext    string `json:"subtext,omitempty"`
	Quote      string `json:"quote,omitempty"`
	Bullet     string `json:"bullet,omitempty"`
}

func (d Delimiters) applyDefaults() Delimiters {
	if d.Bold == "" {
		d.Bold = "**"
	}
	if d.Italic == "" {
		d.Italic = "*"
	}
	if d.Strike == "" {
		d.Strike = "~~"
	}
	if d.Underline == "" {
		d.Underline = "__"
	}
	if d.InlineCode == "" {
		d.InlineCode = "`"
	}
	if d.Spoiler == "" {
		d.Spoiler = "||"
	}
	if d.Subtext == "" {
		d.Subtext = "-# "
	}
	if d.Quote == "" {
		d.Quote = "> "
	}
	if d.Bullet == "" {
		d.Bullet = "-"
	}
	return d
}

func (d Delimiters) validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"bold", d.Bold},
		{"italic", d.Italic},
		{"strike", d.Strike},
		{"underline", d.Underline},
		{"inlineCode", d.InlineCode},
		{"spoiler", d.Spoiler},
		{"subtext", d.Subtext},
		{"quote", d.Quote},
		{"bullet", d.Bullet},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("delimiters.%s must be non-empty", f.name)
		}
		if len(f.value) > maxDelimiterLength {
			return fmt.Errorf("delimiters.%s %q is longer than %d bytes", f.name, f.value, maxDelimiterLength)
		}
		if strings.ContainsAny(f.value, "\n\r") {
			return fmt.Errorf("delimiters.%s must not contain line breaks", f.name)
		}
	}
	return nil
}

// Config holds all converter configuration options.
type Config struct {
	// HiddenClassMarkers mark a node as visually hidden when any class token contains one of them.
	HiddenClassMarkers []string `json:"hiddenClassMarkers,omitempty"`
	// SpoilerClassMarkers mark a node as a spoiler container when any class token contains one of them.
	SpoilerClassMarkers []string `json:"spoilerClassMarkers,omitempty"`
	// InlineCodeClass is the class token that turns CODE into inline code.
	InlineCodeClass string `json:"inlineCodeClass,omitempty"`
	// CodeTableSelector detects the syntax-highlighted table layout inside PRE.
	CodeTableSelector string `json:"codeTableSelector,omitempty"`
	// CodeLanguageSelector finds the language label of the table layout.
	CodeLanguageSelector string `json:"codeLanguageSelector,omitempty"`
	// LanguageMap rewrites extracted code languages (after lowercasing).
	LanguageMap map[string]string `json:"languageMap,omitempty"`
	// NormalizeLanguages maps language aliases to their canonical lexer alias.
	NormalizeLanguages bool       `json:"normalizeLanguages,omitempty"`
	Delimiters         Delimiters `json:"delimiters,omitempty"`
	// MaxDepth bounds element nesting; 0 means unlimited.
	MaxDepth int `json:"maxDepth,omitempty"`
}

// DefaultSpoilerClassMarkers are the class fragments Discord uses for spoiler containers.
var DefaultSpoilerClassMarkers = []string{"spoilerContent", "spoilerMarkdownContent", "obscured"}

func (c Config) applyDefaults() Config {
	if c.HiddenClassMarkers == nil {
		c.HiddenClassMarkers = []string{defaultHiddenClassMarker}
	}
	if c.SpoilerClassMarkers == nil {
		c.SpoilerClassMarkers = append([]string(nil), DefaultSpoilerClassMarkers...)
	}
	if c.InlineCodeClass == "" {
		c.InlineCodeClass = defaultInlineCodeClass
	}
	if c.CodeTableSelector == "" {
		c.CodeTableSelector = defaultCodeTableSelector
	}
	if c.CodeLanguageSelector == "" {
		c.CodeLanguageSelector = defaultCodeLanguageSelector
	}
	c.Delimiters = c.Delimiters.applyDefaults()

	return c
}

// clone returns a deep copy of Config for slice and map-backed fields.
func (c Config) clone() Config {
	cloned := c
	cloned.HiddenClassMarkers = cloneStrings(c.HiddenClassMarkers)
	cloned.SpoilerClassMarkers = cloneStrings(c.SpoilerClassMarkers)
	cloned.LanguageMap = cloneStringMap(c.LanguageMap)
	return cloned
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	for _, marker := range c.HiddenClassMarkers {
		if strings.TrimSpace(marker) == "" {
			return fmt.Errorf("hiddenClassMarkers contains empty marker")
		}
	}
	for _, marker := range c.SpoilerClassMarkers {
		if strings.TrimSpace(marker) == "" {
			return fmt.Errorf("spoilerClassMarkers contains empty marker")
		}
	}
	if strings.TrimSpace(c.InlineCodeClass) == "" || strings.ContainsAny(c.InlineCodeClass, " \t\n") {
		return fmt.Errorf("invalid inlineCodeClass %q", c.InlineCodeClass)
	}
	if _, err := cascadia.Compile(c.CodeTableSelector); err != nil {
		return fmt.Errorf("invalid codeTableSelector %q: %w", c.CodeTableSelector, err)
	}
	if _, err := cascadia.Compile(c.CodeLanguageSelector); err != nil {
		return fmt.Errorf("invalid codeLanguageSelector %q: %w", c.CodeLanguageSelector, err)
	}
	for from, to := range c.LanguageMap {
		if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
			return fmt.Errorf("languageMap keys and values must be non-empty")
		}
	}
	if err := c.Delimiters.validate(); err != nil {
		return err
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("maxDepth must not be negative, got %d", c.MaxDepth)
	}

	return nil
}

func cloneStrings(src []string) []string {
	if src == nil {
		return nil
	}
	return append([]string(nil), src...)
}

func cloneStringMap(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}

	dst := make(map[string]string, len(src))
	for key, value := range src {
		dst[key] = value
	}

	return dst
}
