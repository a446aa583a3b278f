package chanlun

import "log"

// fractalPrice returns the price that anchors a fractal's stroke endpoint:
// the high for a top, the low for a bottom.
func fractalPrice(bars []StructuralBar, m FractalMark) float64 {
	if m.Kind == MarkTop {
		return bars[m.Index].High
	}
	return bars[m.Index].Low
}

// buildStrokes walks the surviving fractals in order, enforces strict
// top/bottom alternation by skipping off-type fractals, and emits one
// stroke per consecutive kept pair.
func buildStrokes(bars []StructuralBar, marks []FractalMark) []Stroke {
	survivors := make([]FractalMark, 0, len(marks))
	for _, m := range marks {
		if m.Kind != MarkNone {
			survivors = append(survivors, m)
		}
	}
	if len(survivors) == 0 {
		return nil
	}

	kept := make([]FractalMark, 0, len(survivors))
	kept = append(kept, survivors[0])
	expected := survivors[0].Kind.Opposite()

	for _, m := range survivors[1:] {
		if m.Kind == expected {
			kept = append(kept, m)
			expected = expected.Opposite()
		} else {
			log.Printf("[DEBUG] chanlun: stroke builder skipping off-type fractal at index %d (want %v, got %v)", m.Index, expected, m.Kind)
		}
	}

	if len(kept) < 2 {
		return nil
	}

	strokes := make([]Stroke, 0, len(kept)-1)
	for i := 0; i < len(kept)-1; i++ {
		start, end := kept[i], kept[i+1]
		dir := Down
		if start.Kind == MarkBottom {
			dir = Up
		}
		strokes = append(strokes, Stroke{
			ID:         i,
			StartIndex: start.Index,
			EndIndex:   end.Index,
			StartKind:  start.Kind,
			EndKind:    end.Kind,
			StartPrice: fractalPrice(bars, start),
			EndPrice:   fractalPrice(bars, end),
			Direction:  dir,
		})
	}
	return strokes
}
