package converter

import (
	"fmt"
	"strings"

	"github.com/rgonek/unified-copy/internal/inlinestyle"
	"golang.org/x/net/html"
)

// isHidden reports whether el is only present for screen readers or is not displayed.
func (s *state) isHidden(el *html.Node) bool {
	if el == nil || el.Type != html.ElementNode {
		return false
	}
	if classContainsAny(el, s.config.HiddenClassMarkers) {
		return true
	}
	if ariaHidden, ok := getAttr(el, "aria-hidden"); ok && strings.EqualFold(strings.TrimSpace(ariaHidden), "true") {
		return true
	}

	style, ok := getAttr(el, "style")
	if !ok {
		return false
	}
	decls, err := inlinestyle.Parse(style)
	if err != nil {
		s.addWarning(WarningMalformedStyle, tagName(el), fmt.Sprintf("ignoring unparsable style %q", style))
		return false
	}
	return decls.DisplayNone()
}

// isSpoiler reports whether el wraps spoilered content.
func (s *state) isSpoiler(el *html.Node) bool {
	if classContainsAny(el, s.config.SpoilerClassMarkers) {
		return true
	}
	role, _ := getAttr(el, "role")
	label, _ := getAttr(el, "aria-label")
	return strings.EqualFold(role, "button") && strings.EqualFold(strings.TrimSpace(label), "spoiler")
}

// convertSpoiler wraps the children of el in spoiler delimiters. Everything
// below is treated as inside the spoiler, so CSS-hidden content is kept.
func (s *state) convertSpoiler(el *html.Node, ws walkState) string {
	ws.insideSpoiler = true
	ws = ws.inline()
	delim := s.config.Delimiters.Spoiler
	return delim + s.convertChildren(el, ws) + delim
}
