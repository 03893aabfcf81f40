package converter

import (
	"context"
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Converter converts rendered chat message markup to markdown.
type Converter struct {
	config        Config
	codeTable     cascadia.Selector
	codeLanguage  cascadia.Selector
	languageAlias func(string) string
}

// State is the traversal state a conversion starts from.
type State struct {
	InsideSpoiler bool
	ListDepth     int
}

// ConvertOptions carries optional per-conversion settings.
type ConvertOptions struct {
	State State
	// ContentsOnly converts the children of the node without applying the node's own tag.
	ContentsOnly bool
}

type state struct {
	config      Config
	ctx         context.Context
	conv        *Converter
	warnings    []Warning
	err         error
	depthWarned bool
}

// walkState is threaded through the recursion by value.
type walkState struct {
	listDepth     int
	insideSpoiler bool
	depth         int
	// lineStart is set when the output preceding the current accumulator
	// ends at the start of a line.
	lineStart bool
}

// atLineStart reports whether the output so far, ending with acc, ends at
// the start of a line.
func (ws walkState) atLineStart(acc string) bool {
	if acc == "" {
		return ws.lineStart
	}
	return !needsLeadingNewline(acc)
}

// breakLine ends acc with exactly one newline. Nothing is added when the
// output already sits at the start of a line.
func (ws walkState) breakLine(acc string) string {
	if acc == "" && ws.lineStart {
		return ""
	}
	return ensureTrailingNewline(acc)
}

// inline marks that content follows markup on the same line.
func (ws walkState) inline() walkState {
	ws.lineStart = false
	return ws
}

// New creates a new Converter with the given config.
func New(config Config) (*Converter, error) {
	cfg := config.applyDefaults().clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	codeTable, err := cascadia.Compile(cfg.CodeTableSelector)
	if err != nil {
		return nil, fmt.Errorf("invalid codeTableSelector %q: %w", cfg.CodeTableSelector, err)
	}
	codeLanguage, err := cascadia.Compile(cfg.CodeLanguageSelector)
	if err != nil {
		return nil, fmt.Errorf("invalid codeLanguageSelector %q: %w", cfg.CodeLanguageSelector, err)
	}

	conv := &Converter{
		config:       cfg,
		codeTable:    codeTable,
		codeLanguage: codeLanguage,
	}
	if cfg.NormalizeLanguages {
		conv.languageAlias = canonicalLanguage
	}
	return conv, nil
}

// Convert converts node, including its own tag, to markdown.
func (c *Converter) Convert(node *html.Node) Result {
	result, _ := c.ConvertWithContext(context.Background(), node, ConvertOptions{})
	return result
}

// ConvertState converts node starting from the given traversal state.
func (c *Converter) ConvertState(node *html.Node, st State) Result {
	result, _ := c.ConvertWithContext(context.Background(), node, ConvertOptions{State: st})
	return result
}

// ConvertContents converts the children of node. The node itself still
// suppresses everything when it is hidden.
func (c *Converter) ConvertContents(node *html.Node) Result {
	result, _ := c.ConvertWithContext(context.Background(), node, ConvertOptions{ContentsOnly: true})
	return result
}

// ConvertWithContext converts node and stops early when ctx is done.
func (c *Converter) ConvertWithContext(ctx context.Context, node *html.Node, opts ConvertOptions) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	s := &state{
		config: c.config,
		ctx:    ctx,
		conv:   c,
	}

	ws := walkState{
		listDepth:     max(0, opts.State.ListDepth),
		insideSpoiler: opts.State.InsideSpoiler,
		lineStart:     true,
	}

	var markdown string
	switch {
	case node == nil:
	case opts.ContentsOnly:
		if ws.insideSpoiler || !s.isHidden(node) {
			markdown = s.convertChildren(node, ws)
		}
	default:
		markdown = s.appendNode(node, ws, "")
	}

	if s.err != nil {
		return Result{}, s.err
	}
	return Result{
		Markdown: markdown,
		Warnings: s.warnings,
	}, nil
}

// ConvertHTML parses an HTML fragment in a body context and converts it.
func (c *Converter) ConvertHTML(fragment string) (Result, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return Result{}, fmt.Errorf("failed to parse HTML fragment: %w", err)
	}

	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return c.Convert(root), nil
}

func (s *state) addWarning(warnType WarningType, tag, message string) {
	s.warnings = append(s.warnings, Warning{
		Type:    warnType,
		Tag:     tag,
		Message: message,
	})
}

func (s *state) checkContext() bool {
	if s.err != nil {
		return false
	}
	if err := s.ctx.Err(); err != nil {
		s.err = err
		return false
	}
	return true
}

// convertChildren converts the children of n with a fresh accumulator.
func (s *state) convertChildren(n *html.Node, ws walkState) string {
	acc := ""
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		acc = s.appendNode(child, ws, acc)
	}
	return acc
}

// appendNode converts n and returns acc extended with the result. Block
// constructs may also normalise the trailing newlines of acc.
func (s *state) appendNode(n *html.Node, ws walkState, acc string) string {
	if !s.checkContext() {
		return acc
	}

	switch n.Type {
	case html.TextNode:
		return acc + n.Data
	case html.DocumentNode:
		ws.lineStart = ws.atLineStart(acc)
		return acc + s.convertChildren(n, ws)
	case html.ElementNode:
		return s.appendElement(n, ws, acc)
	default:
		return acc
	}
}

func (s *state) appendElement(el *html.Node, ws walkState, acc string) string {
	if s.config.MaxDepth > 0 && ws.depth >= s.config.MaxDepth {
		if !s.depthWarned {
			s.depthWarned = true
			s.addWarning(WarningDepthLimit, tagName(el), fmt.Sprintf("nesting deeper than %d skipped", s.config.MaxDepth))
		}
		return acc
	}
	ws.depth++
	ws.lineStart = ws.atLineStart(acc)

	if !ws.insideSpoiler {
		if s.isHidden(el) {
			return acc
		}
		if s.isSpoiler(el) {
			return acc + s.convertSpoiler(el, ws)
		}
	}

	if el.Namespace != "" {
		return acc + s.convertChildren(el, ws)
	}

	switch el.DataAtom {
	case atom.Blockquote:
		return s.convertBlockquote(el, ws, acc)
	case atom.Pre:
		return s.convertCodeBlock(el, ws, acc)
	}

	if handler, ok := tagHandlers[el.DataAtom]; ok {
		return acc + handler(s, el, ws, acc)
	}
	return acc + s.convertChildren(el, ws)
}
