package chanlun

// Process runs the full Chanlun pipeline over a chronologically ordered
// sequence of raw bars: trim, merge, identify, filter, stroke. It is
// synchronous — no goroutines, no context — and its only I/O is the stroke
// builder's debug log line for each skipped off-type fractal.
//
// An empty input returns an empty Result and a nil error. A non-empty input
// that fails the shape/value checks of spec.md §7 returns a *ProcessError
// wrapping ErrInputShape or ErrInputValue, with no partial Result.
func Process(raw []RawBar) (Result, error) {
	if len(raw) == 0 {
		return Result{SeedDirection: Up}, nil
	}
	if err := validateRawBars(raw); err != nil {
		return Result{}, err
	}

	trimmed, seed := trim(raw)
	bars := merge(trimmed, seed)
	if err := checkNoContainment(bars); err != nil {
		return Result{}, err
	}

	marks := identify(bars, seed)
	marks, stats := filterChain(bars, marks)
	strokes := buildStrokes(bars, marks)

	return Result{
		SeedDirection: seed,
		Bars:          bars,
		Marks:         marks,
		Strokes:       strokes,
		Stats:         stats,
	}, nil
}

// checkNoContainment re-verifies the Merger's central post-condition: no two
// adjacent structural bars may stand in containment. A violation means a bug
// in merge, not a caller error.
func checkNoContainment(bars []StructuralBar) error {
	for i := 1; i < len(bars); i++ {
		a, b := bars[i-1], bars[i]
		if contains(a.High, a.Low, b.High, b.Low) {
			return invariantErrorf("structural bars %d and %d stand in containment (a=[%.8f,%.8f] b=[%.8f,%.8f])",
				i-1, i, a.Low, a.High, b.Low, b.High)
		}
	}
	return nil
}
