package converter

import (
	"strings"

	"golang.org/x/net/html"
)

// getAttr returns the value of the named attribute and whether it was present.
func getAttr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, attr := range n.Attr {
		if attr.Namespace == "" && strings.EqualFold(attr.Key, key) {
			return attr.Val, true
		}
	}
	return "", false
}

// getStringAttr returns the attribute value or fallback when absent.
func getStringAttr(n *html.Node, key, fallback string) string {
	if value, ok := getAttr(n, key); ok {
		return value
	}
	return fallback
}

func classTokens(n *html.Node) []string {
	class, ok := getAttr(n, "class")
	if !ok {
		return nil
	}
	return strings.Fields(class)
}

func hasClass(n *html.Node, token string) bool {
	for _, class := range classTokens(n) {
		if class == token {
			return true
		}
	}
	return false
}

// classContainsAny reports whether any class token contains one of markers.
// Chat clients append build hashes to class names, so markers match substrings.
func classContainsAny(n *html.Node, markers []string) bool {
	for _, class := range classTokens(n) {
		for _, marker := range markers {
			if strings.Contains(class, marker) {
				return true
			}
		}
	}
	return false
}

// textContent concatenates every descendant text node, hidden or not.
func textContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			switch child.Type {
			case html.TextNode:
				sb.WriteString(child.Data)
			case html.ElementNode, html.DocumentNode:
				walk(child)
			}
		}
	}
	walk(n)
	return sb.String()
}

func tagName(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(n.Data)
}

// ensureTrailingNewline collapses trailing newlines to exactly one, appending
// one when missing.
func ensureTrailingNewline(text string) string {
	return strings.TrimRight(text, "\n") + "\n"
}

// needsLeadingNewline reports whether a block starting after text must be pushed onto its own line.
func needsLeadingNewline(text string) bool {
	return !strings.HasSuffix(text, "\n")
}
