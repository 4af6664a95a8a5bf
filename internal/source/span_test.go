package source

import (
	"testing"
)

func TestSpan_Contains(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		off      uint32
		expected bool
	}{
		{
			name:     "offset inside span",
			span:     Span{File: 1, Start: 10, End: 20},
			off:      15,
			expected: true,
		},
		{
			name:     "offset at start - inclusive",
			span:     Span{File: 1, Start: 10, End: 20},
			off:      10,
			expected: true,
		},
		{
			name:     "offset at end - exclusive",
			span:     Span{File: 1, Start: 10, End: 20},
			off:      20,
			expected: false,
		},
		{
			name:     "offset before span",
			span:     Span{File: 1, Start: 10, End: 20},
			off:      9,
			expected: false,
		},
		{
			name:     "empty span contains nothing",
			span:     Span{File: 1, Start: 10, End: 10},
			off:      10,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Contains(tt.off); got != tt.expected {
				t.Errorf("Contains(%d) = %v, want %v", tt.off, got, tt.expected)
			}
		})
	}
}

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		other    Span
		expected Span
	}{
		{
			name:     "disjoint spans - cover both",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 1, Start: 30, End: 40},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "other inside span - unchanged",
			span:     Span{File: 1, Start: 10, End: 40},
			other:    Span{File: 1, Start: 20, End: 30},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "other extends left",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 1, Start: 5, End: 15},
			expected: Span{File: 1, Start: 5, End: 20},
		},
		{
			name:     "different files - no cover",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 2, Start: 0, End: 100},
			expected: Span{File: 1, Start: 10, End: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Cover(tt.other); got != tt.expected {
				t.Errorf("Cover() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestSpan_EmptyAndLen(t *testing.T) {
	empty := Span{File: 1, Start: 5, End: 5}
	if !empty.Empty() {
		t.Errorf("expected empty span")
	}
	if empty.Len() != 0 {
		t.Errorf("empty span Len() = %d, want 0", empty.Len())
	}

	span := Span{File: 1, Start: 5, End: 12}
	if span.Empty() {
		t.Errorf("expected non-empty span")
	}
	if span.Len() != 7 {
		t.Errorf("Len() = %d, want 7", span.Len())
	}
}
