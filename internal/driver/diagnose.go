package driver

import (
	"fmt"

	"salc/internal/ast"
	"salc/internal/backend/msil"
	"salc/internal/buildpipeline"
	"salc/internal/diag"
	"salc/internal/lexer"
	"salc/internal/observ"
	"salc/internal/sema"
	"salc/internal/source"
)

type DiagnoseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Bag     *diag.Bag
	Builder *ast.Builder
	Root    ast.StmtID
	Sema    *sema.Result
	Timer   *observ.Timer
}

// DiagnoseStage определяет уровень диагностики
type DiagnoseStage string

const (
	DiagnoseStageTokenize DiagnoseStage = "tokenize"
	DiagnoseStageSyntax   DiagnoseStage = "syntax"
	DiagnoseStageSema     DiagnoseStage = "sema"
	// DiagnoseStageAll additionally runs the generator to surface GEN errors.
	DiagnoseStageAll DiagnoseStage = "all"
)

// ParseDiagnoseStage validates a --stage flag value.
func ParseDiagnoseStage(s string) (DiagnoseStage, error) {
	switch stage := DiagnoseStage(s); stage {
	case DiagnoseStageTokenize, DiagnoseStageSyntax, DiagnoseStageSema, DiagnoseStageAll:
		return stage, nil
	default:
		return "", fmt.Errorf("unknown stage %q (must be tokenize, syntax, sema or all)", s)
	}
}

// DiagnoseOptions содержит опции для диагностики
type DiagnoseOptions struct {
	Stage          DiagnoseStage
	MaxDiagnostics int
	IgnoreWarnings bool
	// EnableTimings appends an OBS6001 diagnostic with the phase report.
	EnableTimings bool
}

// Diagnose запускает диагностику файла до указанного уровня
func Diagnose(path string, stage DiagnoseStage, maxDiagnostics int) (*DiagnoseResult, error) {
	return DiagnoseWithOptions(path, DiagnoseOptions{
		Stage:          stage,
		MaxDiagnostics: maxDiagnostics,
	})
}

// DiagnoseWithOptions запускает диагностику файла с указанными опциями
func DiagnoseWithOptions(path string, opts DiagnoseOptions) (*DiagnoseResult, error) {
	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}
	fs := source.NewFileSet()
	loadIdx := timer.Begin(observ.PhaseLoad)
	fileID, err := fs.Load(path)
	timer.End(loadIdx, "")
	if err != nil {
		return nil, err
	}
	return diagnoseLoaded(fs, fs.Get(fileID), opts, timer)
}

// DiagnoseSource diagnoses in-memory content registered under name.
func DiagnoseSource(name string, content []byte, opts DiagnoseOptions) (*DiagnoseResult, error) {
	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, content))
	return diagnoseLoaded(fs, file, opts, timer)
}

func diagnoseLoaded(fs *source.FileSet, file *source.File, opts DiagnoseOptions, timer *observ.Timer) (*DiagnoseResult, error) {
	var res *DiagnoseResult
	if opts.Stage == DiagnoseStageTokenize {
		res = &DiagnoseResult{FileSet: fs, File: file, Bag: diag.NewBag(opts.MaxDiagnostics), Timer: timer}
		idx := timer.Begin(observ.PhaseLex)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: res.Bag}})
		tokens := lx.All()
		timer.End(idx, fmt.Sprintf("tokens=%d", len(tokens)))
	} else {
		run := pipeline{
			fs:             fs,
			file:           file,
			maxDiagnostics: opts.MaxDiagnostics,
			timer:          timer,
			check:          opts.Stage != DiagnoseStageSyntax,
			generate:       opts.Stage == DiagnoseStageAll,
		}
		var err error
		res, _, err = run.execute()
		if err != nil {
			return nil, err
		}
	}

	if opts.IgnoreWarnings {
		res.Bag = withoutWarnings(res.Bag, opts.MaxDiagnostics)
	}
	if timer != nil {
		report := timer.Report()
		appendTimingDiagnostic(res.Bag, timingPayload{
			Kind:    "file",
			Path:    file.Path,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}
	return res, nil
}

func withoutWarnings(bag *diag.Bag, maxDiagnostics int) *diag.Bag {
	out := diag.NewBag(maxDiagnostics)
	for _, d := range bag.Items() {
		if d.Severity >= diag.SevError {
			out.Add(d)
		}
	}
	return out
}

// pipeline: один проход parse → check → generate над загруженным файлом.
type pipeline struct {
	fs             *source.FileSet
	file           *source.File
	maxDiagnostics int
	timer          *observ.Timer
	msil           msil.Options
	check          bool
	generate       bool
	// onStage вызывается перед каждой стадией (события прогресса сборки).
	onStage func(buildpipeline.Stage)
}

func (p *pipeline) enter(stage buildpipeline.Stage) {
	if p.onStage != nil {
		p.onStage(stage)
	}
}

// execute returns Go errors only for internal failures; compiler errors land in the bag.
func (p *pipeline) execute() (*DiagnoseResult, []string, error) {
	res := &DiagnoseResult{
		FileSet: p.fs,
		File:    p.file,
		Bag:     diag.NewBag(p.maxDiagnostics),
		Timer:   p.timer,
	}

	p.enter(buildpipeline.StageParse)
	idx := p.timer.Begin(observ.PhaseParse)
	builder, root, err := parseFile(p.file, res.Bag, p.maxDiagnostics)
	p.timer.End(idx, "")
	if err != nil {
		return nil, nil, err
	}
	res.Builder, res.Root = builder, root
	if !p.check || res.Bag.HasErrors() {
		return res, nil, nil
	}

	p.enter(buildpipeline.StageCheck)
	idx = p.timer.Begin(observ.PhaseCheck)
	semaRes, err := sema.Check(builder, root, sema.Options{
		Reporter: diag.BagReporter{Bag: res.Bag},
		Files:    p.fs,
	})
	note := ""
	if semaRes != nil {
		note = fmt.Sprintf("funcs=%d globals=%d", len(semaRes.Funcs), len(semaRes.Globals))
	}
	p.timer.End(idx, note)
	if err != nil {
		if _, ok := diag.AsError(err); ok {
			// уже в bag через Reporter
			return res, nil, nil
		}
		return nil, nil, fmt.Errorf("check %s: %w", p.file.Path, err)
	}
	res.Sema = semaRes
	if !p.generate {
		return res, nil, nil
	}

	p.enter(buildpipeline.StageGenerate)
	idx = p.timer.Begin(observ.PhaseGenerate)
	opts := p.msil
	opts.Files = p.fs
	lines, err := msil.Generate(builder, semaRes, opts)
	p.timer.End(idx, fmt.Sprintf("lines=%d", len(lines)))
	if err != nil {
		if de, ok := diag.AsError(err); ok {
			res.Bag.Add(de.Diagnostic)
			return res, nil, nil
		}
		return nil, nil, fmt.Errorf("generate %s: %w", p.file.Path, err)
	}
	return res, lines, nil
}
