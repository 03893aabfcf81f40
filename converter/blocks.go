package converter

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const minFenceLength = 3

// convertBlockquote moves the quote onto its own line and prefixes every
// line of it. An empty quote still yields one prefixed line.
func (s *state) convertBlockquote(el *html.Node, ws walkState, acc string) string {
	inner := ws
	inner.lineStart = true
	content := strings.TrimRight(s.convertChildren(el, inner), "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = s.config.Delimiters.Quote + line
	}

	return ws.breakLine(acc) + strings.Join(lines, "\n") + "\n"
}

// convertCodeBlock renders PRE as a fenced code block.
func (s *state) convertCodeBlock(pre *html.Node, ws walkState, acc string) string {
	language, body := s.extractCode(pre)
	fence := codeFence(body)

	var sb strings.Builder
	sb.WriteString(ws.breakLine(acc))
	sb.WriteString(fence)
	sb.WriteString(language)
	sb.WriteString("\n")
	sb.WriteString(body)
	sb.WriteString("\n")
	sb.WriteString(fence)

	return sb.String()
}

// extractCode returns the language tag and body of a code block in either
// the line-numbered table layout or the plain highlight.js layout.
func (s *state) extractCode(pre *html.Node) (string, string) {
	if table := findFirst(pre, s.conv.codeTable, nil); table != nil {
		language := ""
		if label := findFirst(pre, s.conv.codeLanguage, table); label != nil {
			language = strings.ToLower(strings.TrimSpace(textContent(label)))
		}
		return s.resolveLanguage(language), tableCodeBody(table)
	}

	code := findFirstElement(pre, atom.Code)
	if code == nil {
		return "", strings.TrimRight(textContent(pre), "\n")
	}
	return s.resolveLanguage(languageFromClasses(classTokens(code))), strings.TrimRight(textContent(code), "\n")
}

// tableCodeBody joins the second cell of every row; the first holds the line number.
func tableCodeBody(table *html.Node) string {
	var lines []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type != html.ElementNode {
				continue
			}
			if child.DataAtom != atom.Tr {
				walk(child)
				continue
			}
			cells := rowCells(child)
			if len(cells) < 2 {
				continue
			}
			lines = append(lines, strings.TrimRight(textContent(cells[1]), "\n"))
		}
	}
	walk(table)
	return strings.Join(lines, "\n")
}

func rowCells(row *html.Node) []*html.Node {
	var cells []*html.Node
	for child := row.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && (child.DataAtom == atom.Td || child.DataAtom == atom.Th) {
			cells = append(cells, child)
		}
	}
	return cells
}

// languageFromClasses picks the first class token that is not a highlighter or scrollbar marker.
func languageFromClasses(classes []string) string {
	for _, class := range classes {
		lower := strings.ToLower(class)
		if lower == "hljs" || strings.Contains(lower, "scrollbar") {
			continue
		}
		for _, prefix := range []string{"language-", "lang-"} {
			if trimmed, ok := strings.CutPrefix(lower, prefix); ok && trimmed != "" {
				return trimmed
			}
		}
		return lower
	}
	return ""
}

func (s *state) resolveLanguage(language string) string {
	if language == "" {
		return ""
	}
	if mapped, ok := s.config.LanguageMap[language]; ok {
		return mapped
	}
	if s.conv.languageAlias != nil {
		return s.conv.languageAlias(language)
	}
	return language
}

// codeFence returns a backtick fence longer than any backtick run in body.
func codeFence(body string) string {
	longest, run := 0, 0
	for _, r := range body {
		if r == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	return strings.Repeat("`", max(minFenceLength, longest+1))
}

// findFirst returns the first descendant of root matching sel, not descending into skip.
func findFirst(root *html.Node, sel cascadia.Selector, skip *html.Node) *html.Node {
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		if child == skip || child.Type != html.ElementNode {
			continue
		}
		if sel.Match(child) {
			return child
		}
		if found := findFirst(child, sel, skip); found != nil {
			return found
		}
	}
	return nil
}

func findFirstElement(root *html.Node, tag atom.Atom) *html.Node {
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			continue
		}
		if child.DataAtom == tag {
			return child
		}
		if found := findFirstElement(child, tag); found != nil {
			return found
		}
	}
	return nil
}
