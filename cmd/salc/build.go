package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"salc/internal/backend/msil"
	"salc/internal/buildpipeline"
	"salc/internal/diagfmt"
	"salc/internal/driver"
	"salc/internal/observ"
	"salc/internal/project"
	"salc/internal/ui"
)

const noManifestMessage = `no sal.toml found
pass source files explicitly or create a project with "salc init"`

var buildCmd = &cobra.Command{
	Use:   "build [flags] [file.sal|directory]...",
	Short: "Compile programs to MSIL",
	Long: `Compile programs to MSIL assembly text.
Without arguments the sources listed in sal.toml are built into its out_dir.`,
	RunE: buildExecution,
}

func init() {
	buildCmd.Flags().Int("jobs", 0, "max parallel compilations (0=auto)")
	buildCmd.Flags().String("ui", "auto", "user interface (auto|on|off)")
	buildCmd.Flags().Bool("no-cache", false, "do not read or write the disk cache")
	buildCmd.Flags().String("out-dir", "", "directory for .il files (overrides sal.toml)")
	buildCmd.Flags().Bool("msil-only", false, "print MSIL to stdout instead of writing files")
}

// buildPlan: что и куда компилировать.
type buildPlan struct {
	files   []string
	baseDir string
	outDir  string
	jobs    int
	msil    msil.Options
}

func buildExecution(cmd *cobra.Command, args []string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	outDirFlag, err := cmd.Flags().GetString("out-dir")
	if err != nil {
		return fmt.Errorf("failed to get out-dir flag: %w", err)
	}
	msilOnly, err := cmd.Flags().GetBool("msil-only")
	if err != nil {
		return fmt.Errorf("failed to get msil-only flag: %w", err)
	}
	opts, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}
	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	manifest, manifestFound, err := project.Load(".")
	if err != nil {
		return err
	}
	plan, err := planBuild(args, manifest, manifestFound)
	if err != nil {
		return err
	}
	if jobs > 0 {
		plan.jobs = jobs
	}
	if outDirFlag != "" {
		plan.outDir = outDirFlag
	}
	if msilOnly {
		plan.outDir = ""
	}

	var timer *observ.Timer
	if opts.timings {
		timer = observ.NewTimer()
	}
	buildOpts := driver.BuildOptions{
		Compile: driver.CompileOptions{
			MaxDiagnostics: opts.maxDiagnostics,
			MSIL:           plan.msil,
			Timer:          timer,
		},
		Jobs:    plan.jobs,
		OutDir:  plan.outDir,
		BaseDir: plan.baseDir,
	}
	if !noCache {
		cache, cacheErr := driver.OpenDiskCache("salc")
		if cacheErr != nil {
			fmt.Fprintf(os.Stderr, "warning: disk cache disabled: %v\n", cacheErr)
		} else {
			buildOpts.Cache = cache
		}
	}

	var results []driver.BuildResult
	useTUI := !msilOnly && shouldUseTUI(uiModeValue, opts.quiet)
	if useTUI {
		display := buildpipeline.DisplayFiles(plan.files, plan.baseDir)
		var buildErr error
		uiErr := ui.RunProgress(os.Stdout, "salc build", display, func(sink buildpipeline.ProgressSink) {
			buildOpts.Progress = sink
			results, buildErr = driver.BuildFiles(cmd.Context(), plan.files, buildOpts)
		})
		err = errors.Join(buildErr, uiErr)
	} else {
		results, err = driver.BuildFiles(cmd.Context(), plan.files, buildOpts)
	}
	if err != nil {
		return err
	}

	failed := reportBuild(cmd.OutOrStdout(), results, opts, msilOnly, useTUI)
	if opts.timings {
		printStageTimings(os.Stderr, results)
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	if failed > 0 {
		return fmt.Errorf("build failed: %d of %d file(s) have errors", failed, len(results))
	}
	return nil
}

// planBuild выбирает входные файлы: аргументы или [build].sources манифеста.
func planBuild(args []string, manifest *project.Manifest, manifestFound bool) (buildPlan, error) {
	var plan buildPlan
	if manifestFound {
		plan.jobs = manifest.Config.Build.Jobs
		plan.outDir = manifest.OutDir()
		plan.baseDir = manifest.Root
		plan.msil = msil.Options{
			Assembly:     manifest.Config.MSIL.Assembly,
			ProgramClass: manifest.Config.MSIL.ProgramClass,
			RuntimeClass: manifest.Config.MSIL.RuntimeClass,
		}
	}

	if len(args) == 0 {
		if !manifestFound {
			return plan, errors.New(noManifestMessage)
		}
		files, err := manifest.SourceFiles()
		if err != nil {
			return plan, err
		}
		if len(files) == 0 {
			return plan, fmt.Errorf("%s: no source files match [build].sources", manifest.Path)
		}
		plan.files = files
		return plan, nil
	}

	files, err := expandInputs(args)
	if err != nil {
		return plan, err
	}
	plan.files = files
	if !manifestFound {
		plan.outDir = "."
		if cwd, err := os.Getwd(); err == nil {
			plan.baseDir = cwd
		}
	}
	return plan, nil
}

// reportBuild печатает диагностики и итог; возвращает число файлов с ошибками.
func reportBuild(out io.Writer, results []driver.BuildResult, opts globalOptions, msilOnly, progressShown bool) int {
	failed := 0
	cached := 0
	for i := range results {
		res := &results[i]
		if res.Result == nil {
			failed++
			continue
		}
		if res.Result.Cached {
			cached++
		}
		if res.Result.Bag.Len() > 0 {
			diagfmt.Pretty(os.Stderr, res.Result.Bag, res.Result.FileSet, opts.prettyOpts(os.Stderr, true))
		}
		if !res.Result.OK() {
			failed++
			continue
		}
		switch {
		case msilOnly:
			fmt.Fprint(out, res.Result.Text())
		case !opts.quiet && !progressShown && res.Output != "":
			fmt.Fprintf(out, "%s -> %s\n", res.Display, formatPathForOutput(res.Output))
		}
	}
	if !opts.quiet && !msilOnly {
		fmt.Fprintf(out, "%d/%d compiled, %d cached, %d failed\n", len(results)-failed, len(results), cached, failed)
	}
	return failed
}

func formatPathForOutput(path string) string {
	cwd, err := os.Getwd()
	if err != nil || path == "" {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
