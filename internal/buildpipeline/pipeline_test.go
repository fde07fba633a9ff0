package buildpipeline

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func TestDisplayFiles(t *testing.T) {
	base := t.TempDir()
	files := []string{
		filepath.Join(base, "b.sal"),
		filepath.Join(base, "lib", "a.sal"),
		filepath.Join(base, "b.sal"),
		"",
		"/elsewhere/c.sal",
	}
	got := DisplayFiles(files, base)
	want := []string{"/elsewhere/c.sal", "b.sal", "lib/a.sal"}
	if !slices.Equal(got, want) {
		t.Fatalf("DisplayFiles = %v, want %v", got, want)
	}
}

func TestSinks(t *testing.T) {
	ch := make(chan Event, 4)
	EmitQueued(ChannelSink{Ch: ch}, []string{"a.sal", "b.sal"})
	Emit(ChannelSink{Ch: ch}, "a.sal", StageCheck, StatusError, errors.New("bad"), time.Millisecond)
	close(ch)

	var events []Event
	for evt := range ch {
		events = append(events, evt)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Status != StatusQueued || events[0].Terminal() {
		t.Errorf("unexpected queued event %+v", events[0])
	}
	if !events[2].Terminal() || events[2].Err == nil {
		t.Errorf("unexpected error event %+v", events[2])
	}

	var seen []Stage
	sink := FuncSink(func(e Event) { seen = append(seen, e.Stage) })
	Emit(sink, "x", StageParse, StatusWorking, nil, 0)
	Emit(nil, "x", StageParse, StatusWorking, nil, 0)
	if !slices.Equal(seen, []Stage{StageParse}) {
		t.Errorf("FuncSink saw %v", seen)
	}
}

func TestTimingsAccumulate(t *testing.T) {
	var tm Timings
	tm.Add(StageParse, time.Millisecond)
	tm.Add(StageParse, 2*time.Millisecond)
	tm.Add(StageCheck, time.Millisecond)
	if !tm.Has(StageParse) || tm.Has(StageWrite) {
		t.Fatalf("Has reports wrong stages")
	}
	if got := tm.Duration(StageParse); got != 3*time.Millisecond {
		t.Errorf("parse = %v", got)
	}
	if got := tm.Sum(StageParse, StageCheck, StageWrite); got != 4*time.Millisecond {
		t.Errorf("sum = %v", got)
	}
}
