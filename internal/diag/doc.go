// Package diag defines the diagnostic model shared by the rule modules, the
// fix engine, and the CLI.
//
// Diagnostic is the central record: Severity, a stable Code, a short Message,
// the Primary source.Span pointing at the violation, optional Notes, and
// optional Fixes. A Fix carries concrete TextEdits; OldText on an edit acts as
// a guard the fix engine validates before touching the file.
//
// Rule modules emit through a Reporter so they stay decoupled from storage;
// BagReporter aggregates into a Bag, which supports sorting, deduplication,
// and a hard capacity limit. The model is data-only and deterministic: no IO,
// no formatting, no side effects.
package diag
