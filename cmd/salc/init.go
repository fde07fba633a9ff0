package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"salc/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new project",
	Long: `Initialize a new project by creating a manifest (sal.toml)
and an example program (main.sal). If [path|name] is omitted, initializes
the current directory. If a non-existing name is provided, a directory will be
created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) > 0 && args[0] != "" {
		target = args[0]
	}
	created, err := initProject(target)
	if err != nil {
		return err
	}

	rel := created.dir
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, created.dir); err2 == nil {
			rel = r
		}
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized project %q in %s\n", created.name, rel)
	fmt.Fprintf(out, "  - %s\n", project.ManifestName)
	if created.main {
		fmt.Fprintf(out, "  - main.sal\n")
	} else {
		fmt.Fprintf(out, "  - main.sal (existing)\n")
	}
	return nil
}

type initResult struct {
	dir  string
	name string
	main bool
}

// initProject создаёт sal.toml и, если его нет, main.sal.
func initProject(target string) (initResult, error) {
	var res initResult
	abs, err := filepath.Abs(target)
	if err != nil {
		return res, err
	}
	res.dir = abs

	if st, err := os.Stat(abs); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return res, err
		}
		if err = os.MkdirAll(abs, 0o755); err != nil {
			return res, fmt.Errorf("failed to create directory %q: %w", abs, err)
		}
	} else if !st.IsDir() {
		return res, fmt.Errorf("%q is not a directory", abs)
	}

	res.name = strings.TrimSpace(filepath.Base(abs))
	if res.name == "" || res.name == "." || res.name == string(filepath.Separator) {
		res.name = "sal-project"
	}

	manifestPath := filepath.Join(abs, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return res, fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	if err := project.Save(manifestPath, project.Default(res.name)); err != nil {
		return res, err
	}

	mainPath := filepath.Join(abs, "main.sal")
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(defaultMainSource), 0o600); err != nil {
			return res, fmt.Errorf("failed to write main.sal: %w", err)
		}
		res.main = true
	}
	return res, nil
}

const defaultMainSource = `алг сумма(арг цел a, b, рез цел r)
нач
  r := a + b
кон

цел i := 0
нц пока i < 3
  вывод сумма(i, 10)
  i := i + 1
кц
`
