package chanlun

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func rawOHLC(t int, o, h, l, c float64) RawBar {
	return RawBar{Time: time.Unix(int64(t)*60, 0), Open: o, High: h, Low: l, Close: c, Volume: 1, Amount: 1}
}

// TestMergeScenarioB reproduces spec.md Scenario B's three raw bars. The
// merged-bar-vs-Bar2 step is, by the containment formula in spec.md §4.2
// applied to (H,L)=(10,6) vs (11,4), itself a containment (Bar2 contains the
// merged bar) — confirmed against chanlun_processor.py's merge_klines, which
// keeps folding while containment holds. The result is a single structural
// bar, not the two the prose walkthrough describes; see DESIGN.md.
func TestMergeScenarioB(t *testing.T) {
	bars := []RawBar{
		rawOHLC(0, 7, 10, 5, 7),
		rawOHLC(1, 8, 9, 6, 8),
		rawOHLC(2, 6, 11, 4, 6),
	}
	out := merge(bars, Up)
	require.Len(t, out, 1)
	require.InDelta(t, 11, out[0].High, 1e-9)
	require.InDelta(t, 6, out[0].Low, 1e-9)
	require.Equal(t, bars[0].Open, out[0].Open)
	require.Equal(t, bars[2].Close, out[0].Close)
}

func TestMergeEmpty(t *testing.T) {
	require.Empty(t, merge(nil, Up))
}

func TestMergeSingleBar(t *testing.T) {
	bars := []RawBar{rawOHLC(0, 1, 2, 0.5, 1.5)}
	out := merge(bars, Down)
	require.Len(t, out, 1)
	require.Equal(t, Down, out[0].Direction)
}

// TestMergeNoContainmentStrictlyMonotone covers the boundary: strictly
// increasing highs and lows never merge.
func TestMergeNoContainmentStrictlyMonotone(t *testing.T) {
	var bars []RawBar
	for i := 0; i < 10; i++ {
		bars = append(bars, rawOHLC(i, float64(i), float64(i+10), float64(i), float64(i+1)))
	}
	out := merge(bars, Up)
	require.Len(t, out, len(bars))
}

// TestMergeAllIdentical covers the boundary: identical bars fully contain
// each other and collapse into a single structural bar.
func TestMergeAllIdentical(t *testing.T) {
	var bars []RawBar
	for i := 0; i < 5; i++ {
		bars = append(bars, rawOHLC(i, 5, 10, 5, 7))
	}
	out := merge(bars, Up)
	require.Len(t, out, 1)
	require.InDelta(t, 10, out[0].High, 1e-9)
	require.InDelta(t, 5, out[0].Low, 1e-9)
}

// TestInferDirectionInheritsOnTie ensures inferDirection falls back to the
// previous bar's direction when neither high nor low strictly extends.
func TestInferDirectionInheritsOnTie(t *testing.T) {
	emitted := []StructuralBar{
		{High: 10, Low: 5, Direction: Up},
		{High: 10, Low: 5, Direction: Up},
	}
	require.Equal(t, Up, inferDirection(emitted, Down))
}

func TestCheckNoContainmentInvariant(t *testing.T) {
	bars := []RawBar{
		rawOHLC(0, 1, 2, 0.5, 1.5),
		rawOHLC(1, 1, 3, 0.2, 1.5),
		rawOHLC(2, 1, 2.5, 0.3, 1.0),
	}
	out := merge(bars, Up)
	require.NoError(t, checkNoContainment(out))
}
