package converter

import (
	"golang.org/x/net/html"
)

// convertLink renders [text](href). A missing href yields an empty target.
func convertLink(s *state, el *html.Node, ws walkState, _ string) string {
	href, ok := getAttr(el, "href")
	if !ok {
		s.addWarning(WarningMissingAttribute, "a", "link without href rendered with empty target")
	}
	return "[" + s.convertChildren(el, ws.inline()) + "](" + href + ")"
}

// convertImage renders the alt text, which is how custom emoji and stickers carry their name.
func convertImage(_ *state, el *html.Node, _ walkState, _ string) string {
	return getStringAttr(el, "alt", "")
}

// convertSmall renders subtext on its own line.
func convertSmall(s *state, el *html.Node, ws walkState, acc string) string {
	prefix := ""
	if !ws.atLineStart(acc) {
		prefix = "\n"
	}
	return prefix + s.config.Delimiters.Subtext + s.convertChildren(el, ws.inline())
}
