package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"salc/internal/diag"
	"salc/internal/diagfmt"
	"salc/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.sal>",
	Short: "Parse a source file and print its syntax tree",
	Long: `Parse a source file and output the AST.
With --types the tree is annotated with checked types and storage slots.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|json)")
	parseCmd.Flags().Bool("types", false, "run the checker and annotate expressions")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withTypes, err := cmd.Flags().GetBool("types")
	if err != nil {
		return fmt.Errorf("failed to get types flag: %w", err)
	}
	opts, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}

	stage := driver.DiagnoseStageSyntax
	if withTypes {
		stage = driver.DiagnoseStageSema
	}
	result, err := driver.DiagnoseWithOptions(filePath, driver.DiagnoseOptions{
		Stage:          stage,
		MaxDiagnostics: opts.maxDiagnostics,
	})
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, opts.prettyOpts(os.Stderr, true))
	}
	if result.Builder == nil {
		return fmt.Errorf("%s: no syntax tree", filePath)
	}

	astOpts := diagfmt.ASTOpts{Files: result.FileSet, Sema: result.Sema}
	out := cmd.OutOrStdout()
	switch format {
	case "tree":
		err = diagfmt.FormatASTPretty(out, result.Builder, result.Root, astOpts)
	case "json":
		err = diagfmt.FormatASTJSON(out, result.Builder, result.Root, astOpts)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	return bagError(filePath, result.Bag)
}

func bagError(path string, bag *diag.Bag) error {
	if bag == nil || !bag.HasErrors() {
		return nil
	}
	first, _ := bag.First()
	return fmt.Errorf("%s: %d diagnostic(s), first: %s", path, bag.Len(), first.Code.ID())
}
