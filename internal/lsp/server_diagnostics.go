package lsp

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"zephyr/internal/diag"
	"zephyr/internal/driver"
	"zephyr/internal/source"
	"zephyr/internal/trace"
)

// scheduleRebind queues a full rebind of the document at uri. Edits that
// arrive within the debounce window collapse into one rebind.
func (s *Server) scheduleRebind(uri string) {
	delay := s.opts.Debounce
	if delay <= 0 {
		s.rebind(uri)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[uri]; ok && t.Stop() {
		s.pending.Done()
	}
	s.pending.Add(1)
	s.timers[uri] = time.AfterFunc(delay, func() {
		defer s.pending.Done()
		s.rebind(uri)
	})
}

// rebind analyzes the current text of one document from scratch and
// publishes its diagnostics. Results for a version that was superseded while
// binding are dropped.
func (s *Server) rebind(uri string) {
	s.mu.Lock()
	doc, ok := s.docs[uri]
	s.mu.Unlock()
	if !ok {
		return
	}
	doc.mu.Lock()
	defer doc.mu.Unlock()

	s.mu.Lock()
	if s.docs[uri] != doc {
		s.mu.Unlock()
		return
	}
	ver, text := doc.version, doc.text
	s.mu.Unlock()

	ctx, span := trace.Start(s.baseCtx, trace.ScopeDriver, "lsp.rebind")
	grouped := s.analyze(ctx, doc, text)
	span.WithExtra("uri", uri).End(fmt.Sprintf("version=%d files=%d", ver, len(grouped)))

	s.mu.Lock()
	stale := s.docs[uri] != doc || doc.version != ver
	s.mu.Unlock()
	if stale {
		return
	}
	s.publish(doc, ver, grouped)
}

// analyze binds text as the document's file in a fresh FileSet and groups
// the resulting diagnostics by the URI of the file they point into.
func (s *Server) analyze(ctx context.Context, doc *document, text string) map[string][]lspDiagnostic {
	path := doc.path
	if path == "" {
		s.mu.Lock()
		path = filepath.Join(s.workspaceRoot, "untitled.zph")
		s.mu.Unlock()
	}
	fset := source.NewFileSetWithBase(filepath.Dir(path))
	res := driver.AnalyzeSource(ctx, fset, path, []byte(text), driver.Options{
		MaxDiagnostics: s.opts.MaxDiagnostics,
		Library:        s.opts.Library,
	})
	grouped := map[string][]lspDiagnostic{doc.uri: nil}
	if res == nil || res.Bag == nil {
		return grouped
	}
	uriFor := func(id source.FileID) (string, *source.File) {
		file := fset.Get(id)
		if file == nil {
			return "", nil
		}
		if id == res.FileID {
			return doc.uri, file
		}
		return pathToURI(file.Path), file
	}
	for _, d := range res.Bag.Items() {
		target, file := uriFor(d.Primary.File)
		if file == nil {
			continue
		}
		out := lspDiagnostic{
			Range:    rangeForSpan(file, d.Primary),
			Severity: lspSeverity(d.Severity),
			Code:     d.Code.ID(),
			Source:   "zephyr",
			Message:  d.Message,
		}
		for _, note := range d.Notes {
			noteURI, noteFile := uriFor(note.Span.File)
			if noteFile == nil {
				continue
			}
			out.RelatedInformation = append(out.RelatedInformation, relatedInformation{
				Location: location{URI: noteURI, Range: rangeForSpan(noteFile, note.Span)},
				Message:  note.Msg,
			})
		}
		grouped[target] = append(grouped[target], out)
	}
	return grouped
}

// publish sends one notification per affected URI and clears URIs that the
// previous rebind of doc reported into but this one did not.
func (s *Server) publish(doc *document, ver int, grouped map[string][]lspDiagnostic) {
	targets := make([]string, 0, len(grouped))
	for uri := range grouped {
		targets = append(targets, uri)
	}
	sort.Strings(targets)
	for _, uri := range targets {
		var v *int
		if uri == doc.uri {
			v = &ver
		}
		if err := s.sendPublish(uri, v, grouped[uri]); err != nil {
			s.logf("failed to publish diagnostics: %v", err)
		}
	}
	for uri := range doc.published {
		if _, ok := grouped[uri]; ok {
			continue
		}
		if err := s.sendPublish(uri, nil, nil); err != nil {
			s.logf("failed to clear diagnostics: %v", err)
		}
	}
	doc.published = make(map[string]struct{}, len(grouped))
	for uri := range grouped {
		doc.published[uri] = struct{}{}
	}
}

func lspSeverity(sev diag.Severity) int {
	switch sev {
	case diag.SevError:
		return severityError
	case diag.SevWarning:
		return severityWarning
	default:
		return severityInformation
	}
}
