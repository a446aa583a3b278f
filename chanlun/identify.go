package chanlun

// identify tags each structural bar as top, bottom, or neither using a
// 3-bar window, with index 0 driven by the seed direction and the last
// index left unmarked (no right neighbor). A single bar is index 0 and
// carries the seed mark.
func identify(bars []StructuralBar, seed Direction) []FractalMark {
	n := len(bars)
	marks := make([]FractalMark, n)
	for i := range marks {
		marks[i] = FractalMark{Index: i, Kind: MarkNone}
	}
	if n == 0 {
		return marks
	}

	if seed == Down {
		marks[0].Kind = MarkTop
	} else {
		marks[0].Kind = MarkBottom
	}

	for i := 1; i <= n-2; i++ {
		prev, cur, next := bars[i-1], bars[i], bars[i+1]
		isTop := cur.High > prev.High && cur.High > next.High
		isBottom := cur.Low < prev.Low && cur.Low < next.Low
		if isTop {
			marks[i].Kind = MarkTop
		} else if isBottom {
			marks[i].Kind = MarkBottom
		}
	}

	return marks
}
