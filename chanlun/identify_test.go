package chanlun

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func barsFromHighsLows(highs, lows []float64) []StructuralBar {
	out := make([]StructuralBar, len(highs))
	for i := range highs {
		out[i] = StructuralBar{High: highs[i], Low: lows[i]}
	}
	return out
}

func TestIdentifyFirstBarFollowsSeed(t *testing.T) {
	bars := barsFromHighsLows([]float64{5, 6, 4}, []float64{1, 2, 0.5})
	marks := identify(bars, Down)
	require.Equal(t, MarkTop, marks[0].Kind)

	marks = identify(bars, Up)
	require.Equal(t, MarkBottom, marks[0].Kind)
}

func TestIdentifyLastBarUnmarked(t *testing.T) {
	bars := barsFromHighsLows([]float64{5, 6, 4}, []float64{1, 2, 0.5})
	marks := identify(bars, Up)
	require.Equal(t, MarkNone, marks[len(marks)-1].Kind)
}

// TestIdentifyScenarioC reproduces spec.md Scenario C's highs for the
// identifier step (the window filter is tested separately in filters_test.go).
func TestIdentifyScenarioC(t *testing.T) {
	highs := []float64{1, 2, 3, 4, 10, 4, 3, 2, 1}
	lows := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.45, 0.35, 0.25, 0.05}
	bars := barsFromHighsLows(highs, lows)
	marks := identify(bars, Up)
	require.Equal(t, MarkTop, marks[4].Kind)
}

func TestIdentifyStrictInequalityBothSides(t *testing.T) {
	// Equal high on one side must not qualify as a top.
	bars := barsFromHighsLows([]float64{5, 5, 3}, []float64{1, 1, 0.5})
	marks := identify(bars, Up)
	require.Equal(t, MarkNone, marks[1].Kind)
}

func TestIdentifyEmpty(t *testing.T) {
	marks := identify(nil, Up)
	require.Empty(t, marks)
}

func TestIdentifySingleBar(t *testing.T) {
	bars := barsFromHighsLows([]float64{5}, []float64{1})
	marks := identify(bars, Down)
	require.Len(t, marks, 1)
	require.Equal(t, MarkTop, marks[0].Kind)
}
