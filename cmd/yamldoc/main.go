// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// This binary inspects how the go.yaml.in/yamldoc library reads YAML: the
// concrete syntax tree, the resolved values, and the diagnostics recorded on
// the way.

package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.yaml.in/yamldoc"
)

// version is the current version of the yamldoc CLI tool.
const version = "0.1.0"

// cli holds the flags shared by all subcommands.
type cli struct {
	configFile  string
	optionFlags []string
	logLevel    string
	noColor     bool

	logger log.Logger
	opts   []yamldoc.Option
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "yamldoc",
		Short: "Inspect how yamldoc parses and resolves YAML",
		Long: `The 'yamldoc' tool shows how the go.yaml.in/yamldoc library handles YAML
both internally and externally. It is a tool for testing and debugging the
library.

It reads YAML input text from a file, or from stdin when no file (or "-") is
given, and writes results to stdout. Diagnostics are logged to stderr.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.noColor {
				color.NoColor = true
			}
			logger, err := newLogger(cmd.ErrOrStderr(), c.logLevel)
			if err != nil {
				return err
			}
			c.logger = logger
			opts, err := buildOptions(c.configFile, c.optionFlags)
			if err != nil {
				return err
			}
			c.opts = append(opts, yamldoc.WithLogger(logger))
			return nil
		},
	}

	c.addFlags(root.PersistentFlags())
	root.AddCommand(
		newCSTCmd(),
		newParseCmd(c),
		newCheckCmd(c),
		newRoundTripCmd(),
		newTagsCmd(c),
	)
	return root
}

func (c *cli) addFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.configFile, "config", "C", "", "Load options from YAML config file")
	flags.StringArrayVarP(&c.optionFlags, "option", "o", nil, "Set option (name=value, name, no-name); -o help lists them")
	flags.StringVar(&c.logLevel, "log-level", "warn", "Log level: debug, info, warn, error or none")
	flags.BoolVar(&c.noColor, "no-color", false, "Disable colored output")
}

// newLogger returns a logfmt logger writing to w that drops entries below
// the named level.
func newLogger(w io.Writer, name string) (log.Logger, error) {
	var allow level.Option
	switch name {
	case "debug":
		allow = level.AllowDebug()
	case "info":
		allow = level.AllowInfo()
	case "warn":
		allow = level.AllowWarn()
	case "error":
		allow = level.AllowError()
	case "none":
		allow = level.AllowNone()
	default:
		return nil, errors.Errorf("unknown log level %q (use debug, info, warn, error or none)", name)
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	return level.NewFilter(logger, allow), nil
}

// readInput returns the text of the file named by args, or of stdin.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", errors.Wrap(err, "failed to read stdin")
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", errors.Wrap(err, "failed to read input file")
	}
	return string(data), nil
}

// logWarnings logs the warnings of a document the way yamldoc.Parse does.
func logWarnings(logger log.Logger, doc *yamldoc.Document) {
	for _, w := range doc.Warnings {
		m := w.Mark()
		level.Warn(logger).Log("msg", w.Message, "line", m.Line, "column", m.Column+1)
	}
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		root.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
