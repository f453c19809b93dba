// Package diag defines the diagnostic model shared by the lexer, the binder
// and the driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error).
//   - Code – compact numeric identifier with a stable string form (LEX1001,
//     BND2001, IO4001).
//   - Message – short human oriented text.
//   - Primary – the source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages.
//   - Fixes – optional edits that would resolve the problem.
//
// # Emitting diagnostics
//
// Phases report through a Reporter so emission stays decoupled from storage.
// ReportError/ReportWarning return a ReportBuilder for chaining WithNote and
// WithFix before Emit. BagReporter collects into a Bag, which supports sorting,
// deduplication and merging; DedupReporter drops exact repeats before they
// reach the next reporter.
//
// Package diag does no formatting beyond the compact single-line form in
// short.go; rendering lives in internal/diagfmt.
package diag
