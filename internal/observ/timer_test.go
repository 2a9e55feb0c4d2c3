package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerMergesPhasesByName(t *testing.T) {
	tm := NewTimer()
	base := time.Now()
	tm.Add("parse", base, 2*time.Millisecond)
	tm.Add("bind", base.Add(time.Millisecond), 3*time.Millisecond)
	tm.Add("parse", base.Add(2*time.Millisecond), 4*time.Millisecond)

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(report.Phases))
	}
	if report.Phases[0].Name != "parse" || report.Phases[0].Count != 2 {
		t.Fatalf("unexpected first phase: %+v", report.Phases[0])
	}
	if report.Phases[0].DurationMS != 6 {
		t.Fatalf("parse duration = %v, want 6", report.Phases[0].DurationMS)
	}
	if report.TotalMS != 9 {
		t.Fatalf("total = %v, want 9", report.TotalMS)
	}
}

func TestTimerConcurrentBegin(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stop := tm.Begin("bind")
			stop()
		}()
	}
	wg.Wait()
	report := tm.Report()
	if len(report.Phases) != 1 || report.Phases[0].Count != 16 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestTimerSummary(t *testing.T) {
	tm := NewTimer()
	tm.Add("load", time.Now(), time.Millisecond)
	tm.Note("load", "3 files")
	out := tm.Summary()
	for _, want := range []string{"timings:", "load", "// 3 files", "total"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestNilTimerIsInert(t *testing.T) {
	var tm *Timer
	tm.Begin("x")()
	tm.Note("x", "y")
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Fatalf("nil timer produced phases: %+v", r)
	}
}
