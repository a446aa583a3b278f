package chanlun

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestProcessEmptyInput(t *testing.T) {
	result, err := Process(nil)
	require.NoError(t, err)
	require.Equal(t, Up, result.SeedDirection)
	require.Empty(t, result.Bars)
	require.Empty(t, result.Marks)
	require.Empty(t, result.Strokes)
}

func TestProcessSingleBar(t *testing.T) {
	result, err := Process([]RawBar{rawOHLC(0, 1, 2, 0.5, 1.5)})
	require.NoError(t, err)
	require.Len(t, result.Bars, 1)
	require.Empty(t, result.Strokes)
}

func TestProcessRejectsNonMonotonicTimestamps(t *testing.T) {
	bars := []RawBar{
		rawOHLC(1, 1, 2, 0.5, 1.5),
		rawOHLC(0, 1, 2, 0.5, 1.5),
	}
	_, err := Process(bars)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInputShape))
}

func TestProcessRejectsNonPositivePrice(t *testing.T) {
	bars := []RawBar{rawOHLC(0, 0, 0, -1, 0)}
	_, err := Process(bars)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInputValue))
}

func TestProcessRejectsHighBelowLow(t *testing.T) {
	bars := []RawBar{rawOHLC(0, 1, 2, 3, 1)} // High(2) < Low(3)
	_, err := Process(bars)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInputValue))
}

// TestProcessIsDeterministic runs the same input through Process twice and
// requires byte-for-byte identical results, per spec.md's determinism
// requirement.
func TestProcessIsDeterministic(t *testing.T) {
	bars := buildZigzagBars(40)

	first, err := Process(bars)
	require.NoError(t, err)
	second, err := Process(bars)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestProcessFullPipelineProducesStrokes(t *testing.T) {
	bars := buildZigzagBars(40)
	result, err := Process(bars)
	require.NoError(t, err)
	require.NotEmpty(t, result.Bars)
	for i := 1; i < len(result.Bars); i++ {
		require.False(t, contains(result.Bars[i-1].High, result.Bars[i-1].Low, result.Bars[i].High, result.Bars[i].Low))
	}
	require.NotEmpty(t, result.Strokes)
	for i, s := range result.Strokes {
		require.Equal(t, i, s.ID)
		require.Less(t, s.StartIndex, s.EndIndex)
	}
}

// buildZigzagBars constructs a deterministic oscillating price series long
// enough to exercise merge, identify, the full filter chain, and stroke
// building without relying on random input.
func buildZigzagBars(n int) []RawBar {
	bars := make([]RawBar, n)
	base := time.Unix(0, 0)
	for i := 0; i < n; i++ {
		phase := float64(i % 8)
		amplitude := 5.0 + float64(i%5)
		high := 100 + amplitude*zigzagWave(phase) + float64(i)*0.01
		low := high - 3
		bars[i] = RawBar{
			Time:   base.Add(time.Duration(i) * time.Minute),
			Open:   low,
			High:   high,
			Low:    low,
			Close:  (high + low) / 2,
			Volume: 10,
			Amount: 10 * (high + low) / 2,
		}
	}
	return bars
}

func zigzagWave(phase float64) float64 {
	if int(phase)%2 == 0 {
		return phase
	}
	return -phase
}
