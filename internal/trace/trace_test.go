package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestLevelScopes(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevelAndMode(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel(DETAIL) = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if m, err := ParseMode("both"); err != nil || m != ModeBoth {
		t.Fatalf("ParseMode(both) = %v, %v", m, err)
	}
	if f, err := ParseFormat("chrome"); err != nil || f != FormatChrome {
		t.Fatalf("ParseFormat(chrome) = %v, %v", f, err)
	}
}

func TestStartNestsSpansThroughContext(t *testing.T) {
	ring := NewRingTracer(16, LevelDebug)
	ctx := WithTracer(context.Background(), ring)

	ctx, outer := Start(ctx, ScopeFile, "bind:main.zph")
	_, inner := Start(ctx, ScopePass, "declare")
	inner.End("")
	outer.WithExtra("types", "3").End("ok")

	events := ring.Snapshot()
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}
	if events[1].ParentID != events[0].SpanID {
		t.Fatalf("inner span parent = %d, want %d", events[1].ParentID, events[0].SpanID)
	}
	last := events[3]
	if last.Kind != KindSpanEnd || last.Detail != "ok" || last.Extra["types"] != "3" {
		t.Fatalf("unexpected end event %+v", last)
	}
}

func TestDisabledTracerIsSilent(t *testing.T) {
	ctx := context.Background()
	if FromContext(ctx) != Nop {
		t.Fatal("empty context should yield Nop")
	}
	ctx2, span := Start(ctx, ScopePass, "parse")
	if ctx2 != ctx || span.ID() != 0 {
		t.Fatal("disabled tracing must not allocate span ids")
	}
	if d := span.End(""); d != 0 {
		t.Fatalf("nop span measured %v", d)
	}
}

func TestStreamFormats(t *testing.T) {
	var text bytes.Buffer
	st := NewStreamTracer(&text, LevelPhase, FormatText)
	Begin(st, ScopePass, "parse", 0).End("12 decls")
	Begin(st, ScopeNode, "type:Point", 0).End("")
	out := text.String()
	if !strings.Contains(out, "→ parse") || !strings.Contains(out, "← parse (12 decls)") {
		t.Fatalf("unexpected text trace:\n%s", out)
	}
	if strings.Contains(out, "type:Point") {
		t.Fatal("node scope leaked at phase level")
	}

	var chrome bytes.Buffer
	ct := NewStreamTracer(&chrome, LevelPhase, FormatChrome)
	Begin(ct, ScopeDriver, "diag", 0).End("")
	if err := ct.Close(); err != nil {
		t.Fatal(err)
	}
	var doc struct {
		TraceEvents []map[string]any `json:"traceEvents"`
	}
	if err := json.Unmarshal(chrome.Bytes(), &doc); err != nil {
		t.Fatalf("chrome output is not valid JSON: %v\n%s", err, chrome.String())
	}
	if len(doc.TraceEvents) != 2 || doc.TraceEvents[0]["ph"] != "B" {
		t.Fatalf("unexpected chrome events: %v", doc.TraceEvents)
	}
}

func TestMultiTracerFansOut(t *testing.T) {
	a := NewRingTracer(4, LevelPhase)
	b := NewRingTracer(4, LevelPhase)
	m := NewMultiTracer(LevelPhase, a, b)
	Point(m, ScopeDriver, "start", "", 0)
	if len(a.Snapshot()) != 1 || len(b.Snapshot()) != 1 {
		t.Fatal("event did not reach every tracer")
	}
}

func TestRingKeepsFileSpansAtErrorLevel(t *testing.T) {
	ring := NewRingTracer(8, LevelError)
	var text bytes.Buffer
	st := NewStreamTracer(&text, LevelError, FormatText)
	m := NewMultiTracer(LevelError, st, ring)
	if RingOf(m) != ring {
		t.Fatal("RingOf did not find the ring behind the multi tracer")
	}

	ctx := WithTracer(context.Background(), m)
	ctx, file := Start(ctx, ScopeFile, "bind:main.zph")
	Mark(ctx, ScopeFile, "import", "std:text")
	_, node := Start(ctx, ScopeNode, "type:Point")
	node.End("")
	file.WithCount("types", 2).End("")

	events := ring.Snapshot()
	if len(events) != 3 {
		t.Fatalf("expected begin, point and end in the ring, got %d", len(events))
	}
	if events[1].Kind != KindPoint || events[1].ParentID != events[0].SpanID {
		t.Fatalf("import mark not nested under file span: %+v", events[1])
	}
	if events[2].Extra["types"] != "2" {
		t.Fatalf("missing count extra: %+v", events[2])
	}
	if text.Len() != 0 {
		t.Fatalf("stream at error level wrote:\n%s", text.String())
	}
}

func TestRingWrapsOldestFirst(t *testing.T) {
	ring := NewRingTracer(3, LevelPhase)
	for i := range 5 {
		Point(ring, ScopeDriver, fmt.Sprint(i), "", 0)
	}
	var names []string
	for _, ev := range ring.Snapshot() {
		names = append(names, ev.Name)
	}
	if got := strings.Join(names, ","); got != "2,3,4" {
		t.Fatalf("ring order = %s, want 2,3,4", got)
	}
}

func TestHeartbeatStops(t *testing.T) {
	ring := NewRingTracer(64, LevelPhase)
	hb := StartHeartbeat(ring, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	hb.Stop()
	hb.Stop()
	n := len(ring.Snapshot())
	if n == 0 {
		t.Fatal("no heartbeat recorded")
	}
	time.Sleep(10 * time.Millisecond)
	if len(ring.Snapshot()) != n {
		t.Fatal("heartbeat kept running after Stop")
	}
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Fatal("heartbeat on a disabled tracer")
	}
}

func TestNewSelectsFormatFromPath(t *testing.T) {
	if got := formatFor(FormatAuto, "trace.ndjson"); got != FormatNDJSON {
		t.Fatalf("ndjson path resolved to %v", got)
	}
	if got := formatFor(FormatAuto, "trace.json"); got != FormatChrome {
		t.Fatalf("json path resolved to %v", got)
	}
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr != Nop {
		t.Fatal("LevelOff must yield Nop")
	}
}
