package converter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := (Config{}).applyDefaults()

	assert.Equal(t, []string{"hiddenVisually"}, cfg.HiddenClassMarkers)
	assert.Equal(t, DefaultSpoilerClassMarkers, cfg.SpoilerClassMarkers)
	assert.Equal(t, "inline", cfg.InlineCodeClass)
	assert.Equal(t, "table", cfg.CodeTableSelector)
	assert.Equal(t, "[class*='lang']:not(code)", cfg.CodeLanguageSelector)
	assert.Equal(t, 0, cfg.MaxDepth)
	assert.False(t, cfg.NormalizeLanguages)
	assert.Equal(t, Delimiters{
		Bold:       "**",
		Italic:     "*",
		Strike:     "~~",
		Underline:  "__",
		InlineCode: "`",
		Spoiler:    "||",
		Subtext:    "-# ",
		Quote:      "> ",
		Bullet:     "-",
	}, cfg.Delimiters)
}

func TestApplyDefaultsKeepsExplicitEmptyMarkers(t *testing.T) {
	cfg := (Config{HiddenClassMarkers: []string{}}).applyDefaults()
	assert.Empty(t, cfg.HiddenClassMarkers)
	assert.NotNil(t, cfg.HiddenClassMarkers)
}

func TestValidateValid(t *testing.T) {
	cfg := Config{
		HiddenClassMarkers:   []string{"srOnly", "hiddenVisually"},
		SpoilerClassMarkers:  []string{"spoiler"},
		InlineCodeClass:      "inline",
		CodeTableSelector:    "table.vc-shiki-table",
		CodeLanguageSelector: ".vc-shiki-lang",
		LanguageMap: map[string]string{
			"c++": "cpp",
		},
		NormalizeLanguages: true,
		Delimiters:         Delimiters{Bullet: "*"}.applyDefaults(),
		MaxDepth:           64,
	}

	require.NoError(t, cfg.Validate())
}

func TestValidateInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{
			name:   "empty hidden marker",
			mutate: func(c *Config) { c.HiddenClassMarkers = []string{" "} },
			errMsg: "hiddenClassMarkers contains empty marker",
		},
		{
			name:   "empty spoiler marker",
			mutate: func(c *Config) { c.SpoilerClassMarkers = []string{""} },
			errMsg: "spoilerClassMarkers contains empty marker",
		},
		{
			name:   "inline code class with spaces",
			mutate: func(c *Config) { c.InlineCodeClass = "in line" },
			errMsg: `invalid inlineCodeClass "in line"`,
		},
		{
			name:   "bad table selector",
			mutate: func(c *Config) { c.CodeTableSelector = "table[" },
			errMsg: `invalid codeTableSelector "table["`,
		},
		{
			name:   "bad language selector",
			mutate: func(c *Config) { c.CodeLanguageSelector = ":nope(" },
			errMsg: `invalid codeLanguageSelector ":nope("`,
		},
		{
			name:   "empty language map value",
			mutate: func(c *Config) { c.LanguageMap = map[string]string{"py": ""} },
			errMsg: "languageMap keys and values must be non-empty",
		},
		{
			name:   "empty delimiter",
			mutate: func(c *Config) { c.Delimiters.Bold = "" },
			errMsg: "delimiters.bold must be non-empty",
		},
		{
			name:   "multiline delimiter",
			mutate: func(c *Config) { c.Delimiters.Quote = ">\n" },
			errMsg: "delimiters.quote must not contain line breaks",
		},
		{
			name:   "negative depth",
			mutate: func(c *Config) { c.MaxDepth = -1 },
			errMsg: "maxDepth must not be negative, got -1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := (Config{}).applyDefaults()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{MaxDepth: -3})
	require.Error(t, err)
}

func TestNewClonesConfig(t *testing.T) {
	languages := map[string]string{"py": "python"}
	markers := []string{"spoilerContent"}
	conv := newTestConverter(t, Config{LanguageMap: languages, SpoilerClassMarkers: markers})

	languages["py"] = "changed"
	markers[0] = "changed"

	assert.Equal(t, "python", conv.config.LanguageMap["py"])
	assert.Equal(t, "spoilerContent", conv.config.SpoilerClassMarkers[0])
}

func TestConfigJSON(t *testing.T) {
	raw := `{"spoilerClassMarkers":["spoiler"],"languageMap":{"py":"python"},"delimiters":{"bullet":"*"},"maxDepth":10}`

	var cfg Config
	require.NoError(t, json.Unmarshal([]byte(raw), &cfg))

	conv := newTestConverter(t, cfg)
	assert.Equal(t, []string{"spoiler"}, conv.config.SpoilerClassMarkers)
	assert.Equal(t, "*", conv.config.Delimiters.Bullet)
	assert.Equal(t, "**", conv.config.Delimiters.Bold)
	assert.Equal(t, 10, conv.config.MaxDepth)
}
