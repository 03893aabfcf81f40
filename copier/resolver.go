package copier

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// DefaultSelectors are the copyable regions of a Discord message: inline
// code spans and embed field values. Add selectors to support new regions.
var DefaultSelectors = []string{
	"code.inline",
	"div[class*='embedFieldValue']",
}

// Resolver maps a click target to the copyable region that contains it.
type Resolver struct {
	selectors []cascadia.Selector
	raw       []string
}

// NewResolver compiles selectors. A nil slice selects DefaultSelectors.
func NewResolver(selectors []string) (*Resolver, error) {
	if selectors == nil {
		selectors = DefaultSelectors
	}
	if len(selectors) == 0 {
		return nil, fmt.Errorf("at least one copy selector is required")
	}

	r := &Resolver{raw: append([]string(nil), selectors...)}
	for _, raw := range selectors {
		if strings.TrimSpace(raw) == "" {
			return nil, fmt.Errorf("copy selectors must be non-empty")
		}
		sel, err := cascadia.Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid copy selector %q: %w", raw, err)
		}
		r.selectors = append(r.selectors, sel)
	}
	return r, nil
}

// Selectors returns the selector strings in priority order.
func (r *Resolver) Selectors() []string {
	return append([]string(nil), r.raw...)
}

// Resolve returns the closest ancestor-or-self of target matching the first
// selector that matches at all. Earlier selectors win over closer matches of
// later ones.
func (r *Resolver) Resolve(target *html.Node) *html.Node {
	if target == nil {
		return nil
	}
	for _, sel := range r.selectors {
		if el := closest(target, sel); el != nil {
			return el
		}
	}
	return nil
}

func closest(n *html.Node, sel cascadia.Selector) *html.Node {
	for node := n; node != nil; node = node.Parent {
		if node.Type == html.ElementNode && sel.Match(node) {
			return node
		}
	}
	return nil
}
