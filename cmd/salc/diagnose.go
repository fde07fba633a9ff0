package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"salc/internal/diagfmt"
	"salc/internal/driver"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file.sal|directory>...",
	Short: "Run diagnostics on source files",
	Long:  `Run diagnostics to find syntax and semantic issues in source files or all *.sal files within a directory`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	diagCmd.Flags().String("stages", "all", "diagnostic stages to run (tokenize|syntax|sema|all)")
	diagCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	diagCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	diagCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

// runDiagnose runs the checker over every input and prints the diagnostics.
// The command fails when at least one file has errors.
func runDiagnose(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	stagesStr, err := cmd.Flags().GetString("stages")
	if err != nil {
		return fmt.Errorf("failed to get stages flag: %w", err)
	}
	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	opts, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}

	switch format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	stage, err := driver.ParseDiagnoseStage(stagesStr)
	if err != nil {
		return err
	}

	files, err := expandInputs(args)
	if err != nil {
		return err
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	out := cmd.OutOrStdout()
	jsonOutputs := make(map[string]diagfmt.DiagnosticsOutput, len(files))
	failed := 0
	for _, path := range files {
		result, err := driver.DiagnoseWithOptions(path, driver.DiagnoseOptions{
			Stage:          stage,
			MaxDiagnostics: opts.maxDiagnostics,
			IgnoreWarnings: noWarnings,
			EnableTimings:  opts.timings,
		})
		if err != nil {
			return fmt.Errorf("diagnostics failed: %w", err)
		}
		if result.Bag.HasErrors() {
			failed++
		}

		switch format {
		case "pretty":
			prettyOpts := opts.prettyOpts(os.Stdout, withNotes || opts.timings)
			prettyOpts.PathMode = pathMode
			diagfmt.Pretty(out, result.Bag, result.FileSet, prettyOpts)
		case "short":
			if err := diagfmt.Short(out, result.Bag, result.FileSet, withNotes); err != nil {
				return err
			}
		case "json":
			jsonOpts := diagfmt.JSONOpts{
				IncludePositions: true,
				PathMode:         pathMode,
				Max:              opts.maxDiagnostics,
				IncludeNotes:     withNotes || opts.timings,
			}
			if len(files) == 1 {
				if err := diagfmt.JSON(out, result.Bag, result.FileSet, jsonOpts); err != nil {
					return err
				}
				continue
			}
			jsonOutputs[path] = diagfmt.BuildDiagnosticsOutput(result.Bag, result.FileSet, jsonOpts)
		}
	}

	if format == "json" && len(files) > 1 {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(jsonOutputs); err != nil {
			return fmt.Errorf("failed to encode diagnostics: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) have errors", failed, len(files))
	}
	if !opts.quiet && format == "pretty" {
		fmt.Fprintf(os.Stderr, "%d file(s) checked, no errors\n", len(files))
	}
	return nil
}

// expandInputs раскрывает каталоги в отсортированный список *.sal файлов.
func expandInputs(args []string) ([]string, error) {
	files := make([]string, 0, len(args))
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %q: %w", arg, err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, "*.sal"))
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no .sal files in %s", arg)
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}
	return files, nil
}
