package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalidManifest wraps every validation failure of sal.toml.
var ErrInvalidManifest = errors.New("invalid manifest")

const (
	DefaultOutDir       = "build"
	DefaultSources      = "*.sal"
	DefaultAssembly     = "program"
	DefaultProgramClass = "Program"
	DefaultRuntimeClass = "CompilerDemo.Runtime"
)

// Manifest is a loaded sal.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
	MSIL    MSILConfig    `toml:"msil"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type BuildConfig struct {
	OutDir  string   `toml:"out_dir"`
	Sources []string `toml:"sources"`
	Jobs    int      `toml:"jobs"` // 0: по числу CPU
}

type MSILConfig struct {
	Assembly     string `toml:"assembly"`
	ProgramClass string `toml:"program_class"`
	RuntimeClass string `toml:"runtime_class"`
}

// Default returns the configuration written by "salc init".
func Default(name string) Config {
	return Config{
		Package: PackageConfig{Name: name},
		Build: BuildConfig{
			OutDir:  DefaultOutDir,
			Sources: []string{DefaultSources},
		},
		MSIL: MSILConfig{
			Assembly:     DefaultAssembly,
			ProgramClass: DefaultProgramClass,
			RuntimeClass: DefaultRuntimeClass,
		},
	}
}

// LoadConfig decodes sal.toml and fills in every key the file leaves out.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]: %w", path, ErrInvalidManifest)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name: %w", path, ErrInvalidManifest)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q: %w", path, undecoded[0].String(), ErrInvalidManifest)
	}
	if cfg.Build.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [build].jobs must not be negative: %w", path, ErrInvalidManifest)
	}

	def := Default(cfg.Package.Name)
	if !meta.IsDefined("build", "out_dir") {
		cfg.Build.OutDir = def.Build.OutDir
	}
	if !meta.IsDefined("build", "sources") {
		cfg.Build.Sources = def.Build.Sources
	}
	if !meta.IsDefined("msil", "assembly") {
		cfg.MSIL.Assembly = def.MSIL.Assembly
	}
	if !meta.IsDefined("msil", "program_class") {
		cfg.MSIL.ProgramClass = def.MSIL.ProgramClass
	}
	if !meta.IsDefined("msil", "runtime_class") {
		cfg.MSIL.RuntimeClass = def.MSIL.RuntimeClass
	}
	return cfg, nil
}

// Load finds sal.toml above startDir and decodes it; ok is false when
// there is no manifest at all.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// Save encodes cfg into path.
func Save(path string, cfg Config) error {
	var buf bytes.Buffer
	buf.WriteString("# salc project manifest\n")
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("%s: failed to encode TOML: %w", path, err)
	}
	mode := os.FileMode(0o600)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, buf.Bytes(), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// OutDir is the absolute output directory of the project.
func (m *Manifest) OutDir() string {
	if filepath.IsAbs(m.Config.Build.OutDir) {
		return m.Config.Build.OutDir
	}
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Build.OutDir))
}
