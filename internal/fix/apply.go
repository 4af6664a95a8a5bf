package fix

import (
	"sort"

	"clint/internal/diag"
)

// SkippedEdit reports an edit that ApplyToContent refused, with the index of
// the edit in the input slice.
type SkippedEdit struct {
	Index  int
	Reason string
}

// ApplyToContent применяет правки к тексту за один проход слева направо.
// Правки сортируются по началу; каждая применённая правка сдвигает позиции
// последующих на len(NewText) - len(Span), поэтому смещения исходного текста
// остаются валидными. Пересекающиеся правки не применяются обе: выживает
// более ранняя, поздняя попадает в skipped (см. spansConflict).
// Исходный слайс не модифицируется.
func ApplyToContent(content []byte, edits []diag.TextEdit) ([]byte, []SkippedEdit) {
	order := make([]int, len(edits))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ea, eb := edits[order[a]], edits[order[b]]
		if ea.Span.Start != eb.Span.Start {
			return ea.Span.Start < eb.Span.Start
		}
		return ea.Span.End < eb.Span.End
	})

	out := make([]byte, 0, len(content))
	skipped := make([]SkippedEdit, 0)
	pos := 0
	havePrev := false
	var prev diag.TextEdit

	for _, idx := range order {
		edit := edits[idx]
		s, e := int(edit.Span.Start), int(edit.Span.End)
		switch {
		case e < s || e > len(content):
			skipped = append(skipped, SkippedEdit{Index: idx, Reason: "edit span out of range"})
			continue
		case havePrev && spansConflict(prev, edit):
			skipped = append(skipped, SkippedEdit{Index: idx, Reason: "overlaps an earlier edit"})
			continue
		case edit.OldText != "" && string(content[s:e]) != edit.OldText:
			skipped = append(skipped, SkippedEdit{Index: idx, Reason: "existing text does not match expected content"})
			continue
		}
		out = append(out, content[pos:s]...)
		out = append(out, edit.NewText...)
		pos = e
		prev = edit
		havePrev = true
	}
	out = append(out, content[pos:]...)
	return out, skipped
}

// spansConflict reports whether two text edits' spans overlap.
// Spans are treated as half-open intervals [Start, End). Two zero-length
// edits (Start == End) never conflict. A zero-length edit conflicts with a
// non-zero span if its position is within that span (Start <= pos < End).
// For two non-zero spans, any overlap yields a conflict.
func spansConflict(a, b diag.TextEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart <= aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart <= bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}
