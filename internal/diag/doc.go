// Package diag defines the diagnostic model shared by the lexer, parser and binder.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – compact numeric identifier grouped by phase (codes.go): LEX1xxx,
//     SYN2xxx, SEM3xxx, IO4xxx, FUT7xxx. Codes have a stable ID such as SEM3101.
//   - Message – short, actionable text.
//   - Primary span – the source.Span the finding points at.
//   - Notes – optional secondary spans, e.g. "first declared here".
//
// # Emitting diagnostics
//
// Phases emit through a Reporter so they never depend on storage. The usual form is
//
//	diag.ReportError(reporter, diag.SemaUndefinedName, span, msg).Emit()
//
// optionally chaining WithNote before Emit. BagReporter collects into a Bag;
// DedupReporter drops exact repeats.
//
// Bags are append-only. Merge never drops entries, which is what lets an importer
// absorb every diagnostic of a failed import. HasErrors is the gate an importer uses
// to accept or reject an imported program.
//
// Rendering lives in internal/diagfmt; golden.go only offers the sorted one-line
// form behind `zephyr diag --format golden`, which tests compare against.
package diag
