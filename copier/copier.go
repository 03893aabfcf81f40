package copier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/rgonek/unified-copy/converter"
	"golang.org/x/net/html"
)

var (
	// ErrNoTarget indicates that the target is not inside a copyable region.
	ErrNoTarget = errors.New("target is not inside a copyable region")
	// ErrEmpty indicates that the copyable region converted to no text.
	ErrEmpty = errors.New("copyable region has no text")
)

// Clipboard receives copied text.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// ClipboardFunc adapts a function to Clipboard.
type ClipboardFunc func(ctx context.Context, text string) error

// WriteText implements Clipboard.
func (f ClipboardFunc) WriteText(ctx context.Context, text string) error {
	return f(ctx, text)
}

// Presenter shows that el was copied. x and y are pointer coordinates.
type Presenter interface {
	Present(el *html.Node, x, y float64)
}

// Option configures a Copier.
type Option func(*Copier)

// WithPresenter sets the feedback presenter.
func WithPresenter(p Presenter) Option {
	return func(c *Copier) { c.presenter = p }
}

// WithLogger sets the logger used for clipboard failures and diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Copier) { c.logger = l }
}

// WithWrapTarget converts the resolved element including its own tag, so an
// inline code target is copied with its backticks.
func WithWrapTarget(wrap bool) Option {
	return func(c *Copier) { c.wrapTarget = wrap }
}

// WithTreeLock guards reads of the markup tree against other writers such
// as a presenter restoring styles.
func WithTreeLock(l sync.Locker) Option {
	return func(c *Copier) { c.tree = l }
}

// Copier turns clicks on copyable regions into markdown on the clipboard.
type Copier struct {
	conv       *converter.Converter
	resolver   *Resolver
	clipboard  Clipboard
	presenter  Presenter
	logger     *log.Logger
	wrapTarget bool
	tree       sync.Locker

	writes sync.WaitGroup
}

// New creates a Copier.
func New(conv *converter.Converter, resolver *Resolver, clipboard Clipboard, opts ...Option) *Copier {
	c := &Copier{
		conv:      conv,
		resolver:  resolver,
		clipboard: clipboard,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	if c.tree == nil {
		c.tree = &sync.Mutex{}
	}
	return c
}

// Resolve returns the copyable region containing target.
func (c *Copier) Resolve(target *html.Node) (*html.Node, error) {
	el := c.resolver.Resolve(target)
	if el == nil {
		return nil, ErrNoTarget
	}
	return el, nil
}

// Markdown converts el and trims surrounding whitespace.
func (c *Copier) Markdown(ctx context.Context, el *html.Node) (string, error) {
	c.tree.Lock()
	result, err := c.conv.ConvertWithContext(ctx, el, converter.ConvertOptions{ContentsOnly: !c.wrapTarget})
	c.tree.Unlock()
	if err != nil {
		return "", fmt.Errorf("failed to convert copy target: %w", err)
	}

	for _, w := range result.Warnings {
		c.logger.Debug("conversion warning", "type", w.Type, "tag", w.Tag, "message", w.Message)
	}

	text := strings.TrimSpace(result.Markdown)
	if text == "" {
		return "", ErrEmpty
	}
	return text, nil
}

// HandleEvent copies the region under a click. It reports whether the event
// was intercepted; events outside copyable regions are left untouched.
func (c *Copier) HandleEvent(ctx context.Context, ev *Event) bool {
	if ev == nil || ev.Kind != EventClick || ev.Target == nil {
		return false
	}

	c.tree.Lock()
	el, err := c.Resolve(ev.Target)
	c.tree.Unlock()
	if err != nil {
		return false
	}

	ev.PreventDefault()
	ev.StopPropagation()

	text, err := c.Markdown(ctx, el)
	if err != nil {
		if !errors.Is(err, ErrEmpty) {
			c.logger.Warn("copy aborted", "err", err)
		}
		return true
	}

	c.write(ctx, text)
	if c.presenter != nil {
		c.presenter.Present(el, ev.X, ev.Y)
	}
	return true
}

// write hands text to the clipboard without waiting for it. Failures are
// logged and dropped.
func (c *Copier) write(ctx context.Context, text string) {
	ctx = context.WithoutCancel(ctx)

	c.writes.Add(1)
	go func() {
		defer c.writes.Done()
		if err := c.clipboard.WriteText(ctx, text); err != nil {
			c.logger.Error("clipboard write failed", "err", err)
			return
		}
		c.logger.Debug("copied to clipboard", "chars", len(text))
	}()
}

// Wait blocks until pending clipboard writes finish.
func (c *Copier) Wait() {
	c.writes.Wait()
}
