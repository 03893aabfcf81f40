package converter

import (
	"strings"

	"github.com/alecthomas/chroma/lexers"
)

// canonicalLanguage maps an alias such as "py" or "golang" to the first
// alias of the matching lexer. Unknown languages are returned unchanged.
func canonicalLanguage(language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		return language
	}

	cfg := lexer.Config()
	if cfg == nil {
		return language
	}
	if len(cfg.Aliases) > 0 {
		return strings.ToLower(cfg.Aliases[0])
	}
	if cfg.Name != "" {
		return strings.ToLower(cfg.Name)
	}
	return language
}
