package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"salc/internal/buildpipeline"
	"salc/internal/diag"
	"salc/internal/observ"
	"salc/internal/source"
)

// BuildOptions configure a parallel build of independent files.
type BuildOptions struct {
	Compile CompileOptions
	Jobs    int
	// OutDir receives the .il files; empty means nothing is written.
	OutDir string
	// BaseDir shortens progress labels and keeps the source layout under OutDir.
	BaseDir  string
	Cache    *DiskCache
	Progress buildpipeline.ProgressSink
}

// BuildResult is the outcome of one input file.
type BuildResult struct {
	Path    string
	Display string
	// Output is the written .il path, empty when nothing was written.
	Output  string
	Result  *CompileResult
	Timings buildpipeline.Timings
}

// BuildFiles компилирует файлы параллельно; результаты в порядке входа.
// Ошибки компиляции остаются в Result.Bag, error означает только отмену или сбой ввода-вывода.
func BuildFiles(ctx context.Context, files []string, opts BuildOptions) ([]BuildResult, error) {
	results := make([]BuildResult, len(files))
	if len(files) == 0 {
		return results, nil
	}
	if opts.BaseDir != "" {
		if abs, err := filepath.Abs(opts.BaseDir); err == nil {
			opts.BaseDir = abs
		}
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	buildpipeline.EmitQueued(opts.Progress, buildpipeline.DisplayFiles(files, opts.BaseDir))

	// индексы уникальны для каждой горутины, мьютекс не нужен
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := buildOne(path, opts)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func buildOne(path string, opts BuildOptions) (BuildResult, error) {
	out := BuildResult{Path: path, Display: buildpipeline.DisplayName(path, opts.BaseDir)}
	b := fileBuild{out: &out, opts: opts, start: time.Now()}
	b.clock.timings = &out.Timings
	err := b.run()
	b.clock.enter("")
	return out, err
}

// fileBuild: состояние сборки одного файла.
type fileBuild struct {
	out   *BuildResult
	opts  BuildOptions
	start time.Time
	clock stageClock
}

func (b *fileBuild) emit(stage buildpipeline.Stage, status buildpipeline.Status, err error) {
	buildpipeline.Emit(b.opts.Progress, b.out.Display, stage, status, err, time.Since(b.start))
}

func (b *fileBuild) run() error {
	name := b.out.Display
	timer := b.opts.Compile.Timer

	b.clock.enter(buildpipeline.StageLoad)
	b.emit(buildpipeline.StageLoad, buildpipeline.StatusWorking, nil)
	fs := source.NewFileSet()
	if b.opts.BaseDir != "" {
		fs.SetBaseDir(b.opts.BaseDir)
	}
	idx := timer.Begin(observ.PhaseLoad)
	fileID, err := fs.Load(b.out.Path)
	timer.End(idx, name)
	if err != nil {
		bag := diag.NewBag(b.opts.Compile.MaxDiagnostics)
		bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, fmt.Sprintf("cannot read %s: %v", name, err)))
		b.out.Result = &CompileResult{FileSet: fs, Bag: bag}
		b.emit(buildpipeline.StageLoad, buildpipeline.StatusError, err)
		return nil
	}
	file := fs.Get(fileID)

	key := cacheKey(file, b.opts.Compile)
	if b.opts.Cache != nil {
		var payload DiskPayload
		// битая запись считается промахом и перезапишется ниже
		if hit, getErr := b.opts.Cache.Get(key, &payload); getErr == nil && hit {
			b.out.Result = payload.restore(fs, file, b.opts.Compile.MaxDiagnostics)
			return b.finish(buildpipeline.StatusCached)
		}
	}

	res, err := compileLoaded(fs, file, b.opts.Compile, func(stage buildpipeline.Stage) {
		b.clock.enter(stage)
		b.emit(stage, buildpipeline.StatusWorking, nil)
	})
	if err != nil {
		b.emit(buildpipeline.StageGenerate, buildpipeline.StatusError, err)
		return err
	}
	b.out.Result = res
	if b.opts.Cache != nil {
		if err := b.opts.Cache.Put(key, payloadFromResult(res)); err != nil {
			return fmt.Errorf("cache %s: %w", name, err)
		}
	}
	return b.finish(buildpipeline.StatusDone)
}

// finish writes the .il file of a successful result and emits the terminal event.
func (b *fileBuild) finish(status buildpipeline.Status) error {
	res := b.out.Result
	if !res.OK() {
		first, _ := res.Bag.First()
		b.emit(stageOf(first.Code), buildpipeline.StatusError, fmt.Errorf("%s: %s", first.Code.ID(), first.Message))
		return nil
	}
	if b.opts.OutDir != "" {
		b.clock.enter(buildpipeline.StageWrite)
		b.emit(buildpipeline.StageWrite, buildpipeline.StatusWorking, nil)
		target := OutputPath(b.opts.OutDir, b.out.Display)
		idx := b.opts.Compile.Timer.Begin(observ.PhaseWrite)
		err := writeOutput(target, res.Text())
		b.opts.Compile.Timer.End(idx, b.out.Display)
		if err != nil {
			b.emit(buildpipeline.StageWrite, buildpipeline.StatusError, err)
			return err
		}
		b.out.Output = target
	}
	b.emit(buildpipeline.StageWrite, status, nil)
	return nil
}

// OutputPath maps a display label onto OutDir: a.sal -> OutDir/a.il, sub/b.sal -> OutDir/sub/b.il.
// Files outside the base directory keep only their base name.
func OutputPath(outDir, display string) string {
	rel := filepath.FromSlash(display)
	if filepath.IsAbs(rel) {
		rel = filepath.Base(rel)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ".il"
	return filepath.Join(outDir, rel)
}

func writeOutput(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}

// stageClock приписывает время между переходами текущей стадии.
type stageClock struct {
	timings *buildpipeline.Timings
	current buildpipeline.Stage
	since   time.Time
}

func (c *stageClock) enter(stage buildpipeline.Stage) {
	now := time.Now()
	if c.current != "" {
		c.timings.Add(c.current, now.Sub(c.since))
	}
	c.current, c.since = stage, now
}

func stageOf(code diag.Code) buildpipeline.Stage {
	switch code.Category() {
	case diag.CatLexicalOrSyntax:
		return buildpipeline.StageParse
	case diag.CatIO:
		return buildpipeline.StageLoad
	case diag.CatInternal:
		return buildpipeline.StageGenerate
	default:
		return buildpipeline.StageCheck
	}
}
