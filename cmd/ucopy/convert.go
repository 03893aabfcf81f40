package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

func newConvertCmd(getApp func() *app) *cobra.Command {
	var (
		renderHTML bool
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert an HTML fragment to markdown",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp()
			if renderHTML && asJSON {
				return fmt.Errorf("--render-html and --json are mutually exclusive")
			}

			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			result, err := a.conv.ConvertHTML(string(data))
			if err != nil {
				return err
			}
			if err := a.reportWarnings(result.Warnings); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			case renderHTML:
				rendered, err := renderMarkdown(result.Markdown)
				if err != nil {
					return err
				}
				_, err = out.Write(rendered)
				return err
			default:
				_, err = fmt.Fprint(out, result.Markdown)
				return err
			}
		},
	}

	cmd.Flags().BoolVar(&renderHTML, "render-html", false, "Render the converted markdown back to HTML")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result with warnings as JSON")

	return cmd
}

func renderMarkdown(markdown string) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Strikethrough))
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.Bytes(), nil
}
