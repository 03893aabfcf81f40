package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/andybalholm/cascadia"
	"github.com/charmbracelet/log"
	"github.com/rgonek/unified-copy/copier"
	"github.com/spf13/cobra"
	"github.com/yosssi/gohtml"
	"golang.design/x/clipboard"
	"golang.org/x/net/html"
)

func newCopyCmd(getApp func() *app) *cobra.Command {
	var (
		target     string
		selectors  []string
		printOnly  bool
		wrapTarget bool
		feedback   bool
	)

	cmd := &cobra.Command{
		Use:   "copy --target <selector> [file]",
		Short: "Simulate a click on an element and copy its region as markdown",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp()

			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			doc, err := html.Parse(bytes.NewReader(data))
			if err != nil {
				return fmt.Errorf("failed to parse HTML: %w", err)
			}

			sel, err := cascadia.Compile(target)
			if err != nil {
				return fmt.Errorf("invalid target selector %q: %w", target, err)
			}
			el := sel.MatchFirst(doc)
			if el == nil {
				return fmt.Errorf("no element matches target %q", target)
			}

			if len(selectors) == 0 {
				selectors = a.file.Copy.Selectors
			}
			resolver, err := copier.NewResolver(selectors)
			if err != nil {
				return err
			}

			var clip copier.Clipboard
			if printOnly {
				clip = writerClipboard(cmd.OutOrStdout())
			} else {
				clip, err = newSystemClipboard()
				if err != nil {
					return err
				}
			}

			tree := &sync.Mutex{}
			opts := []copier.Option{
				copier.WithLogger(a.logger),
				copier.WithTreeLock(tree),
				copier.WithWrapTarget(wrapTarget || a.file.Copy.WrapTarget),
			}
			if feedback {
				presenter := copier.NewHighlightPresenter(copier.HighlightConfig{
					Color:       a.file.Copy.HighlightColor,
					TooltipText: a.file.Copy.TooltipText,
				}, tree, logTooltip{logger: a.logger})
				presenter.SetLogger(a.logger)
				opts = append(opts, copier.WithPresenter(presenter))
			}
			c := copier.New(a.conv, resolver, clip, opts...)

			if region := resolver.Resolve(el); region != nil && a.logger.GetLevel() <= log.DebugLevel {
				a.logger.Debug("resolved copy region", "markup", formatNode(region))
			}

			dispatcher := copier.NewDispatcher()
			session := copier.Activate(dispatcher, c)
			defaultAction := dispatcher.Dispatch(cmd.Context(), &copier.Event{Kind: copier.EventClick, Target: el})
			session.Release()

			if defaultAction {
				return fmt.Errorf("target %q: %w", target, copier.ErrNoTarget)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "CSS selector of the clicked element")
	cmd.Flags().StringArrayVar(&selectors, "selector", nil, "Copyable region selector, in priority order (repeatable)")
	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the copied text instead of writing the system clipboard")
	cmd.Flags().BoolVar(&wrapTarget, "wrap-target", false, "Include the region's own tag in the conversion")
	cmd.Flags().BoolVar(&feedback, "feedback", true, "Highlight the copied region and show a tooltip")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

// writerClipboard prints each copied text on its own line.
func writerClipboard(w io.Writer) copier.Clipboard {
	var mu sync.Mutex
	return copier.ClipboardFunc(func(_ context.Context, text string) error {
		mu.Lock()
		defer mu.Unlock()
		_, err := fmt.Fprintln(w, text)
		return err
	})
}

var initClipboard = sync.OnceValue(clipboard.Init)

func newSystemClipboard() (copier.Clipboard, error) {
	if err := initClipboard(); err != nil {
		return nil, fmt.Errorf("system clipboard unavailable: %w", err)
	}
	return copier.ClipboardFunc(func(_ context.Context, text string) error {
		clipboard.Write(clipboard.FmtText, []byte(text))
		return nil
	}), nil
}

// logTooltip renders tooltips as log lines.
type logTooltip struct {
	logger *log.Logger
}

func (t logTooltip) Show(text string, x, y float64) copier.TooltipHandle {
	t.logger.Info(text, "x", x, "y", y)
	return logTooltipHandle{logger: t.logger}
}

type logTooltipHandle struct {
	logger *log.Logger
}

func (h logTooltipHandle) FadeOut() { h.logger.Debug("tooltip fading") }
func (h logTooltipHandle) Remove()  { h.logger.Debug("tooltip removed") }

func formatNode(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return gohtml.Format(buf.String())
}
