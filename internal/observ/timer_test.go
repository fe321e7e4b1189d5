package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerPhases(t *testing.T) {
	timer := NewTimer()
	idx := timer.Begin("analyze")
	time.Sleep(time.Millisecond)
	timer.End(idx, "3 file(s)")

	report := timer.Report()
	if len(report.Phases) != 1 {
		t.Fatalf("phase count = %d, want 1", len(report.Phases))
	}
	p := report.Phases[0]
	if p.Name != "analyze" || p.Note != "3 file(s)" {
		t.Errorf("phase = %+v", p)
	}
	if p.DurationMS <= 0 || report.TotalMS < p.DurationMS {
		t.Errorf("durations: phase %.2f ms, total %.2f ms", p.DurationMS, report.TotalMS)
	}
}

func TestTimerSummaryFormat(t *testing.T) {
	timer := NewTimer()
	timer.End(timer.Begin("discover"), "")
	s := timer.Summary()
	if !strings.HasPrefix(s, "timings:\n") || !strings.Contains(s, "discover") || !strings.Contains(s, "total") {
		t.Errorf("summary = %q", s)
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	timer := NewTimer()
	timer.End(-1, "")
	timer.End(5, "")
	if got := timer.Report(); len(got.Phases) != 0 {
		t.Errorf("phases = %+v, want none", got.Phases)
	}
}

func TestNilTimerIsInert(t *testing.T) {
	var timer *Timer
	idx := timer.Begin("anything")
	timer.End(idx, "")
	if got := timer.Report(); len(got.Phases) != 0 || got.TotalMS != 0 {
		t.Errorf("nil timer report = %+v", got)
	}
}
