package project

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	writeFile(t, path, "[package]\nname = \"demo\"\n\n[msil]\nprogram_class = \"App\"\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Package.Name != "demo" {
		t.Errorf("name = %q", cfg.Package.Name)
	}
	if cfg.Build.OutDir != DefaultOutDir {
		t.Errorf("out_dir = %q, want %q", cfg.Build.OutDir, DefaultOutDir)
	}
	if !slices.Equal(cfg.Build.Sources, []string{DefaultSources}) {
		t.Errorf("sources = %v", cfg.Build.Sources)
	}
	if cfg.MSIL.ProgramClass != "App" {
		t.Errorf("program_class = %q, want App", cfg.MSIL.ProgramClass)
	}
	if cfg.MSIL.RuntimeClass != DefaultRuntimeClass || cfg.MSIL.Assembly != DefaultAssembly {
		t.Errorf("msil defaults not applied: %+v", cfg.MSIL)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"no package", "[build]\nout_dir = \"x\"\n"},
		{"empty name", "[package]\nname = \"  \"\n"},
		{"unknown key", "[package]\nname = \"a\"\nversion = \"1\"\n"},
		{"negative jobs", "[package]\nname = \"a\"\n[build]\njobs = -1\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, tc.content)
			_, err := LoadConfig(path)
			if !errors.Is(err, ErrInvalidManifest) {
				t.Fatalf("expected ErrInvalidManifest, got %v", err)
			}
		})
	}
}

func TestLoadConfigSyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, "[package\nname = 1\n")
	if _, err := LoadConfig(path); err == nil || errors.Is(err, ErrInvalidManifest) {
		t.Fatalf("expected a TOML parse error, got %v", err)
	}
}

func TestSaveAndLoadFromSubdir(t *testing.T) {
	root := t.TempDir()
	cfg := Default("hello")
	cfg.Build.Jobs = 3
	if err := Save(filepath.Join(root, ManifestName), cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	sub := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	m, ok, err := Load(sub)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	wantRoot, _ := filepath.EvalSymlinks(root)
	gotRoot, _ := filepath.EvalSymlinks(m.Root)
	if gotRoot != wantRoot {
		t.Errorf("root = %q, want %q", gotRoot, wantRoot)
	}
	if m.Config.Build.Jobs != 3 || m.Config.Package.Name != "hello" {
		t.Errorf("round trip lost values: %+v", m.Config)
	}
	if m.OutDir() != filepath.Join(m.Root, DefaultOutDir) {
		t.Errorf("OutDir = %q", m.OutDir())
	}
}

func TestSourceFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.sal"), "вывод 1")
	writeFile(t, filepath.Join(root, "notes.txt"), "")
	writeFile(t, filepath.Join(root, "lib", "a.sal"), "вывод 2")
	writeFile(t, filepath.Join(root, "lib", "inner", "b.sal"), "вывод 3")

	m := &Manifest{
		Path:   filepath.Join(root, ManifestName),
		Root:   root,
		Config: Config{Build: BuildConfig{Sources: []string{"*.sal", "lib", "main.sal"}}},
	}
	got, err := m.SourceFiles()
	if err != nil {
		t.Fatalf("SourceFiles: %v", err)
	}
	want := []string{
		filepath.Join(root, "lib", "a.sal"),
		filepath.Join(root, "lib", "inner", "b.sal"),
		filepath.Join(root, "main.sal"),
	}
	if !slices.Equal(got, want) {
		t.Fatalf("SourceFiles = %v, want %v", got, want)
	}
}

func TestCombineIsOrderSensitive(t *testing.T) {
	a, b := DigestOf([]byte("a")), DigestOf([]byte("b"))
	if Combine(a, b) == Combine(b, a) {
		t.Fatalf("Combine must depend on argument order")
	}
	if Combine(a, b) != Combine(DigestOf([]byte("a")), b) {
		t.Fatalf("Combine must be deterministic")
	}
}
