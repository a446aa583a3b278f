package chanlun

import (
	"time"
)

// contains reports whether a and b stand in a containment relation: one
// bar's range fully covers the other's.
func contains(aHigh, aLow, bHigh, bLow float64) bool {
	if aHigh >= bHigh && aLow <= bLow {
		return true
	}
	if bHigh >= aHigh && bLow <= aLow {
		return true
	}
	return false
}

// inferDirection is a pure function of the already-emitted structural bar
// buffer; it never looks at the candidate currently being formed.
func inferDirection(emitted []StructuralBar, seed Direction) Direction {
	n := len(emitted)
	if n <= 1 {
		return seed
	}
	a, b := emitted[n-2], emitted[n-1]
	if b.High > a.High {
		return Up
	}
	if b.Low < a.Low {
		return Down
	}
	return b.Direction
}

// candidate is the in-progress structural bar being folded from raw bars.
type candidate struct {
	time   time.Time
	open   float64
	high   float64
	low    float64
	close  float64
	volume float64
	amount float64
}

func newCandidate(r RawBar) candidate {
	return candidate{
		time:   r.Time,
		open:   r.Open,
		high:   r.High,
		low:    r.Low,
		close:  r.Close,
		volume: r.Volume,
		amount: r.Amount,
	}
}

func (c candidate) finish(dir Direction) StructuralBar {
	return StructuralBar{
		Time:      c.time,
		Open:      c.open,
		High:      c.high,
		Low:       c.low,
		Close:     c.close,
		Volume:    c.volume,
		Amount:    c.amount,
		Direction: dir,
	}
}

// merge folds consecutive raw bars standing in containment into structural
// bars. The direction used for any merge step is recomputed from the two
// most recently emitted structural bars, never from the in-progress
// candidate.
func merge(bars []RawBar, seed Direction) []StructuralBar {
	if len(bars) == 0 {
		return nil
	}

	out := make([]StructuralBar, 0, len(bars))
	cand := newCandidate(bars[0])

	for i := 1; i < len(bars); i++ {
		r := bars[i]
		if !contains(cand.high, cand.low, r.High, r.Low) {
			out = append(out, cand.finish(inferDirection(out, seed)))
			cand = newCandidate(r)
			continue
		}

		dir := inferDirection(out, seed)
		if dir == Up {
			if r.High > cand.high {
				cand.high = r.High
			}
			if r.Low > cand.low {
				cand.low = r.Low
			}
		} else {
			if r.High < cand.high {
				cand.high = r.High
			}
			if r.Low < cand.low {
				cand.low = r.Low
			}
		}
		cand.close = r.Close
		cand.volume += r.Volume
		cand.amount += r.Amount
	}
	out = append(out, cand.finish(inferDirection(out, seed)))
	return out
}
