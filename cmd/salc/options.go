package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"salc/internal/diagfmt"
)

// globalOptions: значения persistent-флагов корневой команды.
type globalOptions struct {
	color          string
	quiet          bool
	timings        bool
	maxDiagnostics int
}

func readGlobalOptions(cmd *cobra.Command) (globalOptions, error) {
	flags := cmd.Root().PersistentFlags()
	var (
		opts globalOptions
		err  error
	)
	if opts.color, err = flags.GetString("color"); err != nil {
		return opts, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch opts.color = strings.ToLower(strings.TrimSpace(opts.color)); opts.color {
	case "auto", "on", "off":
	default:
		return opts, fmt.Errorf("invalid --color value %q (expected auto|on|off)", opts.color)
	}
	if opts.quiet, err = flags.GetBool("quiet"); err != nil {
		return opts, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if opts.timings, err = flags.GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if opts.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return opts, nil
}

func (o globalOptions) colorFor(f *os.File) bool {
	switch o.color {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

func (o globalOptions) prettyOpts(f *os.File, withNotes bool) diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     o.colorFor(f),
		Context:   2,
		ShowNotes: withNotes,
	}
}
