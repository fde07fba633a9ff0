package observ

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeClock сдвигается на step при каждом чтении.
func fakeClock(step time.Duration) func() time.Time {
	var (
		mu  sync.Mutex
		cur = time.Unix(0, 0)
	)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		cur = cur.Add(step)
		return cur
	}
}

func TestReportFoldsPhasesByName(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)

	for range 2 {
		tm.End(tm.Begin(PhaseParse), "")
	}
	tm.End(tm.Begin(PhaseCheck), "ok")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("expected 2 folded phases, got %+v", r.Phases)
	}
	if r.Phases[0].Name != PhaseParse || r.Phases[0].Count != 2 || r.Phases[0].DurationMS != 2 {
		t.Errorf("unexpected parse report %+v", r.Phases[0])
	}
	if r.Phases[1].Note != "ok" {
		t.Errorf("note lost: %+v", r.Phases[1])
	}
	if r.TotalMS != 3 {
		t.Errorf("total = %v, want 3", r.TotalMS)
	}
	if s := tm.Summary(); !strings.Contains(s, "x2") || !strings.Contains(s, "total") {
		t.Errorf("unexpected summary:\n%s", s)
	}
}

func TestMeasureRecordsFailure(t *testing.T) {
	tm := NewTimer()
	want := errors.New("boom")
	if err := tm.Measure(PhaseGenerate, func() error { return want }); !errors.Is(err, want) {
		t.Fatalf("Measure returned %v", err)
	}
	r := tm.Report()
	if len(r.Phases) != 1 || r.Phases[0].Note != "failed: boom" {
		t.Fatalf("unexpected report %+v", r)
	}
}

func TestNilTimerIsNoop(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin(PhaseLex), "")
	if err := tm.Measure(PhaseLex, func() error { return nil }); err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Fatalf("nil timer must report nothing")
	}
}

func TestConcurrentPhases(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.End(tm.Begin(PhaseCheck), "")
		}()
	}
	wg.Wait()
	if r := tm.Report(); len(r.Phases) != 1 || r.Phases[0].Count != 8 {
		t.Fatalf("unexpected report %+v", r)
	}
}
