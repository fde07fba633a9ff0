package driver

import (
	"salc/internal/backend/msil"
	"salc/internal/buildpipeline"
	"salc/internal/diag"
	"salc/internal/observ"
	"salc/internal/source"
)

type CompileOptions struct {
	MaxDiagnostics int
	MSIL           msil.Options
	// Timer may be shared by parallel compilations; nil disables timing.
	Timer *observ.Timer
}

// CompileResult holds the MSIL of one file or the diagnostics that stopped it.
type CompileResult struct {
	FileSet *source.FileSet
	File    *source.File
	Bag     *diag.Bag
	Lines   []string
	// Cached is set when the result was restored from the disk cache.
	Cached bool
}

// OK reports whether the file compiled without errors.
func (r *CompileResult) OK() bool {
	return r != nil && r.Lines != nil && !r.Bag.HasErrors()
}

// Text is the content of the .il file.
func (r *CompileResult) Text() string {
	return msil.Text(r.Lines)
}

func CompileFile(path string, opts CompileOptions) (*CompileResult, error) {
	fs := source.NewFileSet()
	idx := opts.Timer.Begin(observ.PhaseLoad)
	fileID, err := fs.Load(path)
	opts.Timer.End(idx, path)
	if err != nil {
		return nil, err
	}
	return compileLoaded(fs, fs.Get(fileID), opts, nil)
}

// CompileSource compiles in-memory content; name is used in diagnostics only.
func CompileSource(name string, content []byte, opts CompileOptions) (*CompileResult, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, content))
	return compileLoaded(fs, file, opts, nil)
}

func compileLoaded(fs *source.FileSet, file *source.File, opts CompileOptions, onStage func(buildpipeline.Stage)) (*CompileResult, error) {
	run := pipeline{
		fs:             fs,
		file:           file,
		maxDiagnostics: opts.MaxDiagnostics,
		timer:          opts.Timer,
		msil:           opts.MSIL,
		check:          true,
		generate:       true,
		onStage:        onStage,
	}
	res, lines, err := run.execute()
	if err != nil {
		return nil, err
	}
	return &CompileResult{
		FileSet: fs,
		File:    file,
		Bag:     res.Bag,
		Lines:   lines,
	}, nil
}
