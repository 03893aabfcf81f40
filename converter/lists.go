package converter

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// convertList renders UL and OL. Items are emitted by convertListItem one level deeper.
func convertList(s *state, el *html.Node, ws walkState, acc string) string {
	prefix := ""
	if !ws.atLineStart(acc) {
		prefix = "\n"
	}
	ws.listDepth++
	ws.lineStart = true
	return prefix + s.convertChildren(el, ws)
}

// convertListItem renders one list item with its marker and nesting indent.
func convertListItem(s *state, el *html.Node, ws walkState, _ string) string {
	indent := strings.Repeat("  ", max(0, ws.listDepth-1))
	marker := s.listMarker(el)

	content := s.convertChildren(el, ws.inline())
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	return indent + marker + " " + content
}

// listMarker returns "-" for unordered parents and "{start+index}." for ordered ones.
func (s *state) listMarker(item *html.Node) string {
	parent := item.Parent
	if parent == nil || parent.Type != html.ElementNode || parent.DataAtom != atom.Ol {
		return s.config.Delimiters.Bullet
	}

	index := listItemIndex(item)
	start := s.orderedListStart(parent, index == 0)
	return strconv.Itoa(start+index) + "."
}

// orderedListStart parses the start attribute, falling back to 1. Only the
// first item reports a malformed value.
func (s *state) orderedListStart(list *html.Node, report bool) int {
	raw, ok := getAttr(list, "start")
	if !ok {
		return 1
	}

	start, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		if report {
			s.addWarning(WarningMalformedAttribute, "ol", fmt.Sprintf("invalid start %q, numbering from 1", raw))
		}
		return 1
	}
	return start
}

// listItemIndex is the zero-based position of item among its LI siblings.
func listItemIndex(item *html.Node) int {
	index := 0
	for sibling := item.PrevSibling; sibling != nil; sibling = sibling.PrevSibling {
		if sibling.Type == html.ElementNode && sibling.DataAtom == atom.Li {
			index++
		}
	}
	return index
}
