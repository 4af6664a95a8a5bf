package diag

import (
	"clint/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit replaces the span's current text with NewText. OldText, when
// non-empty, is a guard: the fix engine refuses the edit if the file no
// longer contains it at the span.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// FixApplicability is the confidence level of an automated fix.
type FixApplicability uint8

const (
	FixApplicabilityAlwaysSafe FixApplicability = iota
	FixApplicabilitySafeWithHeuristics
	FixApplicabilityManualReview
)

func (a FixApplicability) String() string {
	switch a {
	case FixApplicabilityAlwaysSafe:
		return "always-safe"
	case FixApplicabilitySafeWithHeuristics:
		return "safe-with-heuristics"
	case FixApplicabilityManualReview:
		return "manual-review"
	}
	return "unknown"
}

// Fix describes one automated correction for a diagnostic.
type Fix struct {
	ID            string
	Title         string
	Applicability FixApplicability
	Edits         []TextEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
