package main

import (
	"fmt"
	"io"
	"time"

	"salc/internal/buildpipeline"
	"salc/internal/driver"
)

// printStageTimings суммирует стадии по всем файлам сборки.
func printStageTimings(out io.Writer, results []driver.BuildResult) {
	if out == nil {
		return
	}
	var total buildpipeline.Timings
	for i := range results {
		for _, stage := range timedStages {
			if results[i].Timings.Has(stage) {
				total.Add(stage, results[i].Timings.Duration(stage))
			}
		}
	}
	if total.Has(buildpipeline.StageLoad) {
		fmt.Fprintf(out, "loaded %.1f ms\n", toMillis(total.Duration(buildpipeline.StageLoad)))
	}
	if total.Has(buildpipeline.StageParse) || total.Has(buildpipeline.StageCheck) {
		fmt.Fprintf(out, "diagnose %.1f ms\n", toMillis(total.Sum(buildpipeline.StageParse, buildpipeline.StageCheck)))
	}
	if total.Has(buildpipeline.StageGenerate) || total.Has(buildpipeline.StageWrite) {
		fmt.Fprintf(out, "built %.1f ms\n", toMillis(total.Sum(buildpipeline.StageGenerate, buildpipeline.StageWrite)))
	}
}

var timedStages = []buildpipeline.Stage{
	buildpipeline.StageLoad,
	buildpipeline.StageParse,
	buildpipeline.StageCheck,
	buildpipeline.StageGenerate,
	buildpipeline.StageWrite,
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
