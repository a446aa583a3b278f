package chanlun

const (
	windowRadius = 4 // F1: W
	minGap       = 4 // F4: G
)

// filterChain runs the five-stage fractal validity chain described in
// spec.md §4.4, in the exact re-entrant order the source uses:
//
//	F1 -> F2 -> F3 (auto F2) -> F4 (auto F2) -> F5 = F3 (auto F2) -> F4 (auto F2)
func filterChain(bars []StructuralBar, marks []FractalMark) ([]FractalMark, FilterStats) {
	var stats FilterStats

	before := countSurviving(marks)
	marks = f1WindowFilter(bars, marks)
	stats.F1 = before - countSurviving(marks)

	before = countSurviving(marks)
	marks = f2Alternation(bars, marks)
	stats.F2 = before - countSurviving(marks)

	before = countSurviving(marks)
	marks = runF3(bars, marks)
	stats.F3 = before - countSurviving(marks)

	before = countSurviving(marks)
	marks = runF4(bars, marks)
	stats.F4 = before - countSurviving(marks)

	// F5: settle pass, re-running F3 then F4 once more.
	before = countSurviving(marks)
	marks = runF3(bars, marks)
	marks = runF4(bars, marks)
	stats.F5 = before - countSurviving(marks)

	return marks, stats
}

func countSurviving(marks []FractalMark) int {
	n := 0
	for _, m := range marks {
		if m.Kind != MarkNone {
			n++
		}
	}
	return n
}

func runF3(bars []StructuralBar, marks []FractalMark) []FractalMark {
	marks, changed := f3Relationship(bars, marks)
	if changed {
		marks = f2Alternation(bars, marks)
	}
	return marks
}

func runF4(bars []StructuralBar, marks []FractalMark) []FractalMark {
	marks, changed := f4Proximity(bars, marks)
	if changed {
		marks = f2Alternation(bars, marks)
	}
	return marks
}

// cloneMarks returns an independent copy so each stage can mutate freely.
func cloneMarks(marks []FractalMark) []FractalMark {
	out := make([]FractalMark, len(marks))
	copy(out, marks)
	return out
}

// ---- F1: window extremum filter ----

func f1WindowFilter(bars []StructuralBar, marks []FractalMark) []FractalMark {
	out := cloneMarks(marks)
	n := len(bars)
	for i := 0; i < n; i++ {
		if out[i].Kind == MarkNone {
			continue
		}
		lo := i - windowRadius
		if lo < 0 {
			lo = 0
		}
		hi := i + windowRadius
		if hi > n-1 {
			hi = n - 1
		}
		switch out[i].Kind {
		case MarkTop:
			maxHigh := bars[lo].High
			for j := lo + 1; j <= hi; j++ {
				if bars[j].High > maxHigh {
					maxHigh = bars[j].High
				}
			}
			if bars[i].High < maxHigh {
				out[i].Kind = MarkNone
			}
		case MarkBottom:
			minLow := bars[lo].Low
			for j := lo + 1; j <= hi; j++ {
				if bars[j].Low < minLow {
					minLow = bars[j].Low
				}
			}
			if bars[i].Low > minLow {
				out[i].Kind = MarkNone
			}
		}
	}
	return out
}

// ---- F2: consecutive-same-type filter ----

func f2Alternation(bars []StructuralBar, marks []FractalMark) []FractalMark {
	out := cloneMarks(marks)
	n := len(out)

	i := 0
	for i < n {
		if out[i].Kind == MarkNone {
			i++
			continue
		}
		kind := out[i].Kind
		runStart := i
		j := i
		for j < n {
			if out[j].Kind == MarkNone {
				j++
				continue
			}
			if out[j].Kind != kind {
				break
			}
			j++
		}
		// [runStart, j) now spans the run in *position* terms, but MarkNone
		// gaps inside it are neutral and must not be disturbed; only the
		// Kind==kind entries within are candidates.
		keep := -1
		for k := runStart; k < j; k++ {
			if out[k].Kind != kind {
				continue
			}
			if keep == -1 {
				keep = k
				continue
			}
			if kind == MarkTop {
				if bars[k].High > bars[keep].High {
					keep = k
				}
			} else {
				if bars[k].Low < bars[keep].Low {
					keep = k
				}
			}
		}
		for k := runStart; k < j; k++ {
			if out[k].Kind == kind && k != keep {
				out[k].Kind = MarkNone
			}
		}
		i = j
	}
	return out
}

// ---- F3: relationship validator ----

// nearestOppositeBefore scans backward over survivorIdx (a fixed index
// snapshot) but reads Kind live, so a mark cleared earlier in the same pass
// is correctly treated as absent.
func nearestOppositeBefore(marks []FractalMark, survivorIdx []int, pos int, kind Kind) (int, bool) {
	for j := pos - 1; j >= 0; j-- {
		idx := survivorIdx[j]
		if marks[idx].Kind != MarkNone && marks[idx].Kind != kind {
			return idx, true
		}
	}
	return 0, false
}

func nearestOppositeAfter(marks []FractalMark, survivorIdx []int, pos int, kind Kind) (int, bool) {
	for j := pos + 1; j < len(survivorIdx); j++ {
		idx := survivorIdx[j]
		if marks[idx].Kind != MarkNone && marks[idx].Kind != kind {
			return idx, true
		}
	}
	return 0, false
}

func survivorIndex(marks []FractalMark) []int {
	out := make([]int, 0, len(marks))
	for i, m := range marks {
		if m.Kind != MarkNone {
			out = append(out, i)
		}
	}
	return out
}

// f3Relationship requires every non-first surviving mark to strictly
// dominate its neighboring opposite-type survivors in price.
func f3Relationship(bars []StructuralBar, marks []FractalMark) ([]FractalMark, bool) {
	out := cloneMarks(marks)
	survivors := survivorIndex(out)
	if len(survivors) <= 1 {
		return out, false
	}

	changed := false
	for pos := 1; pos < len(survivors); pos++ {
		idx := survivors[pos]
		kind := out[idx].Kind
		if kind == MarkNone {
			continue
		}
		pIdx, hasP := nearestOppositeBefore(out, survivors, pos, kind)
		nIdx, hasN := nearestOppositeAfter(out, survivors, pos, kind)

		valid := true
		switch kind {
		case MarkBottom:
			if hasP && bars[idx].Low >= bars[pIdx].High {
				valid = false
			}
			if valid && hasN && bars[idx].Low >= bars[nIdx].High {
				valid = false
			}
		case MarkTop:
			if hasP && bars[idx].High <= bars[pIdx].Low {
				valid = false
			}
			if valid && hasN && bars[idx].High <= bars[nIdx].Low {
				valid = false
			}
		}
		if !valid {
			out[idx].Kind = MarkNone
			changed = true
		}
	}
	return out, changed
}

// ---- F4: proximity filter ----

// f4Proximity scans adjacent surviving pairs closer than minGap structural
// bars apart and resolves each one per spec.md's Case top->bottom / Case
// bottom->top rules. The pair list is a fixed snapshot taken at entry (so no
// pair is processed twice); every dependent lookup (A1, B1) re-reads the
// live marks slice, never a cached position, per the open-question
// resolution in DESIGN.md.
func f4Proximity(bars []StructuralBar, marks []FractalMark) ([]FractalMark, bool) {
	out := cloneMarks(marks)
	survivors := survivorIndex(out)
	if len(survivors) < 2 {
		return out, false
	}

	changed := false
	for i := 0; i < len(survivors)-1; i++ {
		aIdx, bIdx := survivors[i], survivors[i+1]
		if out[aIdx].Kind == MarkNone || out[bIdx].Kind == MarkNone {
			continue // cleared by an earlier pair in this same pass
		}
		if bIdx-aIdx >= minGap {
			continue
		}
		switch {
		case out[aIdx].Kind == MarkTop && out[bIdx].Kind == MarkBottom:
			if resolveTopThenBottom(bars, out, aIdx, bIdx) {
				changed = true
			}
		case out[aIdx].Kind == MarkBottom && out[bIdx].Kind == MarkTop:
			if resolveBottomThenTop(bars, out, aIdx, bIdx) {
				changed = true
			}
		}
	}
	return out, changed
}

// resolveTopThenBottom implements spec.md's Case top->bottom.
func resolveTopThenBottom(bars []StructuralBar, marks []FractalMark, aIdx, bIdx int) bool {
	a1Idx, hasA1 := firstSurvivingAfter(marks, bIdx, MarkTop)
	if !hasA1 {
		return false
	}
	changed := false
	if bars[a1Idx].High > bars[aIdx].High {
		marks[aIdx].Kind = MarkNone
		changed = true
		if b1Idx, hasB1 := nearestSurvivingBefore(marks, aIdx, MarkBottom); hasB1 {
			if bars[bIdx].Low < bars[b1Idx].Low {
				marks[b1Idx].Kind = MarkNone
			} else {
				marks[bIdx].Kind = MarkNone
			}
		}
	} else {
		marks[a1Idx].Kind = MarkNone
		changed = true
		if b1Idx, hasB1 := nearestSurvivingAfter(marks, a1Idx, MarkBottom); hasB1 {
			if bars[bIdx].Low < bars[b1Idx].Low {
				marks[b1Idx].Kind = MarkNone
			} else {
				marks[bIdx].Kind = MarkNone
			}
		}
	}
	return changed
}

// resolveBottomThenTop implements spec.md's Case bottom->top (mirror of
// resolveTopThenBottom with high/low and top/bottom swapped).
func resolveBottomThenTop(bars []StructuralBar, marks []FractalMark, aIdx, bIdx int) bool {
	a1Idx, hasA1 := firstSurvivingAfter(marks, bIdx, MarkBottom)
	if !hasA1 {
		return false
	}
	changed := false
	if bars[a1Idx].Low < bars[aIdx].Low {
		marks[aIdx].Kind = MarkNone
		changed = true
		if b1Idx, hasB1 := nearestSurvivingBefore(marks, aIdx, MarkTop); hasB1 {
			if bars[bIdx].High > bars[b1Idx].High {
				marks[b1Idx].Kind = MarkNone
			} else {
				marks[bIdx].Kind = MarkNone
			}
		}
	} else {
		marks[a1Idx].Kind = MarkNone
		changed = true
		if b1Idx, hasB1 := nearestSurvivingAfter(marks, a1Idx, MarkTop); hasB1 {
			if bars[bIdx].High > bars[b1Idx].High {
				marks[b1Idx].Kind = MarkNone
			} else {
				marks[bIdx].Kind = MarkNone
			}
		}
	}
	return changed
}

// firstSurvivingAfter returns the nearest surviving mark of kind strictly
// after index, scanning the live marks slice.
func firstSurvivingAfter(marks []FractalMark, after int, kind Kind) (int, bool) {
	for i := after + 1; i < len(marks); i++ {
		if marks[i].Kind == kind {
			return i, true
		}
	}
	return 0, false
}

func nearestSurvivingBefore(marks []FractalMark, before int, kind Kind) (int, bool) {
	for i := before - 1; i >= 0; i-- {
		if marks[i].Kind == kind {
			return i, true
		}
	}
	return 0, false
}

func nearestSurvivingAfter(marks []FractalMark, after int, kind Kind) (int, bool) {
	return firstSurvivingAfter(marks, after, kind)
}
