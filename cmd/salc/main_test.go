package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nalgeon/be"

	"salc/internal/driver"
	"salc/internal/project"
)

func TestReadUIMode(t *testing.T) {
	cases := []struct {
		input string
		want  uiMode
	}{
		{"", uiModeAuto},
		{"auto", uiModeAuto},
		{" ON ", uiModeOn},
		{"off", uiModeOff},
	}
	for _, tc := range cases {
		got, err := readUIMode(tc.input)
		be.Err(t, err, nil)
		be.Equal(t, got, tc.want)
	}
	_, err := readUIMode("sometimes")
	be.Err(t, err, "invalid --ui value")
}

func TestInitProjectCreatesCompilableMain(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")
	res, err := initProject(dir)
	be.Err(t, err, nil)
	be.Equal(t, res.name, "demo")
	be.True(t, res.main)

	manifest, ok, err := project.Load(dir)
	be.Err(t, err, nil)
	be.True(t, ok)
	be.Equal(t, manifest.Config.Package.Name, "demo")

	files, err := manifest.SourceFiles()
	be.Err(t, err, nil)
	be.Equal(t, len(files), 1)

	compiled, err := driver.CompileFile(files[0], driver.CompileOptions{MaxDiagnostics: 10})
	be.Err(t, err, nil)
	be.True(t, compiled.OK())

	_, err = initProject(dir)
	be.Err(t, err, "already initialized")
}

func TestInitProjectKeepsExistingMain(t *testing.T) {
	dir := t.TempDir()
	mainPath := filepath.Join(dir, "main.sal")
	be.Err(t, os.WriteFile(mainPath, []byte("вывод 1\n"), 0o600), nil)

	res, err := initProject(dir)
	be.Err(t, err, nil)
	be.True(t, !res.main)

	data, err := os.ReadFile(mainPath)
	be.Err(t, err, nil)
	be.Equal(t, string(data), "вывод 1\n")
}

func TestPlanBuildWithoutManifest(t *testing.T) {
	_, err := planBuild(nil, nil, false)
	be.Err(t, err, "no sal.toml found")

	dir := t.TempDir()
	for _, name := range []string{"b.sal", "a.sal", "notes.txt"} {
		be.Err(t, os.WriteFile(filepath.Join(dir, name), []byte("вывод 1\n"), 0o600), nil)
	}
	plan, err := planBuild([]string{dir}, nil, false)
	be.Err(t, err, nil)
	be.Equal(t, plan.files, []string{filepath.Join(dir, "a.sal"), filepath.Join(dir, "b.sal")})
	be.Equal(t, plan.outDir, ".")
}

func TestPlanBuildFromManifest(t *testing.T) {
	dir := t.TempDir()
	_, err := initProject(dir)
	be.Err(t, err, nil)
	manifest, ok, err := project.Load(dir)
	be.Err(t, err, nil)
	be.True(t, ok)

	plan, err := planBuild(nil, manifest, true)
	be.Err(t, err, nil)
	be.Equal(t, plan.files, []string{filepath.Join(manifest.Root, "main.sal")})
	be.Equal(t, plan.outDir, filepath.Join(manifest.Root, project.DefaultOutDir))
	be.Equal(t, plan.msil.ProgramClass, project.DefaultProgramClass)
}

func TestExpandInputsEmptyDirectory(t *testing.T) {
	_, err := expandInputs([]string{t.TempDir()})
	be.Err(t, err, "no .sal files")
}
