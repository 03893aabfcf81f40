package converter

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tagHandler renders one element given the text accumulated by its parent so far.
type tagHandler func(s *state, el *html.Node, ws walkState, acc string) string

var tagHandlers map[atom.Atom]tagHandler

func init() {
	tagHandlers = map[atom.Atom]tagHandler{
		atom.Code:   convertCode,
		atom.Small:  convertSmall,
		atom.Strong: convertStrong,
		atom.Em:     convertEmphasis,
		atom.I:      convertEmphasis,
		atom.S:      convertStrike,
		atom.Del:    convertStrike,
		atom.U:      convertUnderline,
		atom.A:      convertLink,
		atom.Li:     convertListItem,
		atom.Ul:     convertList,
		atom.Ol:     convertList,
		atom.Img:    convertImage,
	}
}

// wrap converts the children of el and surrounds them with delim.
func (s *state) wrap(el *html.Node, ws walkState, delim string) string {
	return delim + s.convertChildren(el, ws.inline()) + delim
}

func convertStrong(s *state, el *html.Node, ws walkState, _ string) string {
	return s.wrap(el, ws, s.config.Delimiters.Bold)
}

func convertEmphasis(s *state, el *html.Node, ws walkState, _ string) string {
	return s.wrap(el, ws, s.config.Delimiters.Italic)
}

func convertStrike(s *state, el *html.Node, ws walkState, _ string) string {
	return s.wrap(el, ws, s.config.Delimiters.Strike)
}

func convertUnderline(s *state, el *html.Node, ws walkState, _ string) string {
	return s.wrap(el, ws, s.config.Delimiters.Underline)
}

// convertCode renders inline code. Block code bodies are handled by the PRE
// case, so a CODE without the inline marker passes its content through.
func convertCode(s *state, el *html.Node, ws walkState, _ string) string {
	if hasClass(el, s.config.InlineCodeClass) {
		return s.wrap(el, ws, s.config.Delimiters.InlineCode)
	}
	return s.convertChildren(el, ws)
}
