package copier

import (
	"sync"
	"time"

	"github.com/aymerick/douceur/css"
	"github.com/charmbracelet/log"
	"github.com/rgonek/unified-copy/internal/inlinestyle"
	"golang.org/x/net/html"
)

const (
	DefaultHighlightColor    = "rgba(150,150,200,0.25)"
	DefaultHighlightDuration = 800 * time.Millisecond
	DefaultTooltipDuration   = 800 * time.Millisecond
	DefaultTooltipFade       = 200 * time.Millisecond
	DefaultTooltipText       = "Copied!"
	DefaultTooltipOffset     = 10.0

	backgroundColor = "background-color"
)

// Tooltip shows a transient message near the pointer.
type Tooltip interface {
	Show(text string, x, y float64) TooltipHandle
}

// TooltipHandle controls a tooltip returned by Tooltip.Show.
type TooltipHandle interface {
	FadeOut()
	Remove()
}

// AfterFunc schedules f after d and returns a function that cancels it.
type AfterFunc func(d time.Duration, f func()) (stop func() bool)

func timeAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// HighlightConfig configures a HighlightPresenter. Zero values select defaults.
type HighlightConfig struct {
	Color             string
	HighlightDuration time.Duration
	TooltipText       string
	TooltipDuration   time.Duration
	TooltipFade       time.Duration
	TooltipOffset     float64
}

func (c HighlightConfig) applyDefaults() HighlightConfig {
	out := c
	if out.Color == "" {
		out.Color = DefaultHighlightColor
	}
	if out.HighlightDuration <= 0 {
		out.HighlightDuration = DefaultHighlightDuration
	}
	if out.TooltipText == "" {
		out.TooltipText = DefaultTooltipText
	}
	if out.TooltipDuration <= 0 {
		out.TooltipDuration = DefaultTooltipDuration
	}
	if out.TooltipFade <= 0 {
		out.TooltipFade = DefaultTooltipFade
	}
	if out.TooltipOffset == 0 {
		out.TooltipOffset = DefaultTooltipOffset
	}
	return out
}

type highlight struct {
	prev     *css.Declaration
	hadStyle bool
	stop     func() bool
}

// HighlightPresenter tints the copied element and shows a tooltip, then
// restores the element's original background.
type HighlightPresenter struct {
	config    HighlightConfig
	tree      sync.Locker
	tooltip   Tooltip
	afterFunc AfterFunc
	logger    *log.Logger

	mu     sync.Mutex
	active map[*html.Node]*highlight
}

// NewHighlightPresenter creates a presenter. tree guards element mutations
// and should be shared with the Copier. A nil tooltip disables tooltips.
func NewHighlightPresenter(cfg HighlightConfig, tree sync.Locker, tooltip Tooltip) *HighlightPresenter {
	if tree == nil {
		tree = &sync.Mutex{}
	}
	return &HighlightPresenter{
		config:    cfg.applyDefaults(),
		tree:      tree,
		tooltip:   tooltip,
		afterFunc: timeAfterFunc,
		logger:    log.Default(),
		active:    make(map[*html.Node]*highlight),
	}
}

// SetLogger replaces the logger used for style warnings.
func (p *HighlightPresenter) SetLogger(l *log.Logger) {
	if l != nil {
		p.logger = l
	}
}

// Present implements Presenter.
func (p *HighlightPresenter) Present(el *html.Node, x, y float64) {
	if el == nil {
		return
	}
	p.highlight(el)
	p.showTooltip(x, y)
}

// Highlighted reports whether el currently carries the highlight.
func (p *HighlightPresenter) Highlighted(el *html.Node) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.active[el]
	return ok
}

func (p *HighlightPresenter) highlight(el *html.Node) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Re-clicking keeps the first saved background and restarts the timer.
	if h, ok := p.active[el]; ok {
		h.stop()
		h.stop = p.afterFunc(p.config.HighlightDuration, func() { p.restore(el) })
		return
	}

	p.tree.Lock()
	style, hadStyle := getAttr(el, "style")
	decls, err := inlinestyle.Parse(style)
	if err != nil {
		p.logger.Warn("replacing unparseable inline style", "err", err)
		decls = nil
	}
	h := &highlight{hadStyle: hadStyle}
	if prev, ok := decls.Lookup(backgroundColor); ok {
		saved := *prev
		h.prev = &saved
	}
	setAttr(el, "style", decls.Set(backgroundColor, p.config.Color, true).String())
	p.tree.Unlock()

	h.stop = p.afterFunc(p.config.HighlightDuration, func() { p.restore(el) })
	p.active[el] = h
}

func (p *HighlightPresenter) restore(el *html.Node) {
	p.mu.Lock()
	h, ok := p.active[el]
	if !ok {
		p.mu.Unlock()
		return
	}
	delete(p.active, el)
	p.mu.Unlock()

	p.tree.Lock()
	defer p.tree.Unlock()

	style, _ := getAttr(el, "style")
	decls, err := inlinestyle.Parse(style)
	if err != nil {
		p.logger.Warn("restoring unparseable inline style", "err", err)
		decls = nil
	}
	if h.prev != nil {
		decls = decls.Set(backgroundColor, h.prev.Value, h.prev.Important)
	} else {
		decls = decls.Remove(backgroundColor)
	}

	if len(decls) == 0 && !h.hadStyle {
		removeAttr(el, "style")
		return
	}
	setAttr(el, "style", decls.String())
}

func (p *HighlightPresenter) showTooltip(x, y float64) {
	if p.tooltip == nil {
		return
	}
	offset := p.config.TooltipOffset
	handle := p.tooltip.Show(p.config.TooltipText, x+offset, y+offset)
	if handle == nil {
		return
	}
	fade := p.config.TooltipFade
	p.afterFunc(p.config.TooltipDuration, func() {
		handle.FadeOut()
		p.afterFunc(fade, handle.Remove)
	})
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			continue
		}
		out = append(out, attr)
	}
	n.Attr = out
}
