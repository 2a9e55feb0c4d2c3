package trace

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
	// openSpans counts spans begun but not yet ended; heartbeats report it.
	openSpans atomic.Int64
)

func nextSeq() uint64 { return seqCounter.Add(1) }

// goroutineID reads N from the "goroutine N [running]:" stack header.
func goroutineID() uint64 {
	var buf [64]byte
	hdr := buf[:runtime.Stack(buf[:], false)]
	hdr, ok := bytes.CutPrefix(hdr, []byte("goroutine "))
	if !ok {
		return 0
	}
	id, _, _ := bytes.Cut(hdr, []byte(" "))
	gid, err := strconv.ParseUint(string(id), 10, 64)
	if err != nil {
		return 0
	}
	return gid
}

// Span is an open begin event. Spans from a disabled tracer, or for a scope
// the level filters out, are inert and have ID 0.
type Span struct {
	t      Tracer
	id     uint64
	parent uint64
	gid    uint64
	scope  Scope
	name   string
	start  time.Time
	extra  map[string]string
	ended  bool
}

// Begin opens a span below parent (0 for a root) and emits its begin event.
// Most callers want Start, which finds the tracer and parent in a context.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().captures(scope) {
		return &Span{}
	}
	s := &Span{
		t:      t,
		id:     spanCounter.Add(1),
		parent: parent,
		gid:    goroutineID(),
		scope:  scope,
		name:   name,
		start:  time.Now(),
	}
	openSpans.Add(1)
	t.Emit(s.event(KindSpanBegin, s.start, ""))
	return s
}

func (s *Span) live() bool { return s != nil && s.t != nil && !s.ended }

func (s *Span) event(kind Kind, at time.Time, detail string) *Event {
	return &Event{
		Time:     at,
		Seq:      nextSeq(),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		GID:      s.gid,
		Name:     s.name,
		Detail:   detail,
	}
}

// End emits the end event carrying detail and the recorded extras, and
// returns how long the span was open. Only the first call emits.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	s.ended = true
	openSpans.Add(-1)
	now := time.Now()
	ev := s.event(KindSpanEnd, now, detail)
	ev.Extra = s.extra
	s.t.Emit(ev)
	return now.Sub(s.start)
}

// WithExtra records a key/value pair for the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s.live() {
		if s.extra == nil {
			s.extra = make(map[string]string, 2)
		}
		s.extra[key] = value
	}
	return s
}

// WithCount records a count, such as bound types or checked files.
func (s *Span) WithCount(key string, n int) *Span {
	if !s.live() {
		return s
	}
	return s.WithExtra(key, strconv.Itoa(n))
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}
