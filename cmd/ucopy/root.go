package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/rgonek/unified-copy/converter"
	"github.com/spf13/cobra"
)

// app is the state shared by subcommands once flags are parsed.
type app struct {
	logger *log.Logger
	conv   *converter.Converter
	file   fileConfig
	strict bool
}

func NewRootCmd() *cobra.Command {
	var (
		preset     string
		configPath string
		logLevel   string
		normalize  bool
		strict     bool
		a          *app
	)

	getApp := func() *app { return a }

	cmd := &cobra.Command{
		Use:           "ucopy",
		Short:         "Copy chat message markup as markdown",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), logLevel)
			if err != nil {
				return err
			}

			var fc fileConfig
			if configPath != "" {
				fc, err = loadFileConfig(configPath)
				if err != nil {
					return err
				}
				logger.Debug("loaded config", "path", configPath)
			}

			cfg, err := resolveConfig(preset, fc, normalize)
			if err != nil {
				return err
			}
			conv, err := converter.New(cfg)
			if err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			a = &app{logger: logger, conv: conv, file: fc, strict: strict || isStrictPreset(preset)}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&preset, "preset", presetDiscord, "Preset: discord|plain|strict")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (.toml, .yaml or .yml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().BoolVar(&normalize, "normalize-languages", false, "Map code language aliases to canonical names")
	cmd.PersistentFlags().BoolVar(&strict, "strict", false, "Fail when conversion produces warnings")

	cmd.AddCommand(newConvertCmd(getApp))
	cmd.AddCommand(newCopyCmd(getApp))

	return cmd
}

func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:  lvl,
		Prefix: "ucopy",
	})
	return logger, nil
}

func isStrictPreset(preset string) bool {
	return strings.EqualFold(strings.TrimSpace(preset), presetStrict)
}

// readInput reads the named file, or stdin when no file or "-" is given.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}

// reportWarnings logs conversion warnings and fails in strict mode.
func (a *app) reportWarnings(warnings []converter.Warning) error {
	for _, w := range warnings {
		a.logger.Warn(w.Message, "type", w.Type, "tag", w.Tag)
	}
	if a.strict && len(warnings) > 0 {
		return fmt.Errorf("conversion produced %d warning(s)", len(warnings))
	}
	return nil
}
