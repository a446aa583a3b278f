package chanlun

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func barAt(t int, high, low float64) RawBar {
	return RawBar{
		Time: time.Unix(int64(t)*60, 0),
		Open: low, High: high, Low: low, Close: low,
	}
}

// TestTrimScenarioA reproduces spec.md Scenario A.
func TestTrimScenarioA(t *testing.T) {
	bars := []RawBar{
		barAt(0, 10, 8),
		barAt(1, 15, 12),
		barAt(2, 12, 7),
		barAt(3, 11, 9),
		barAt(4, 13, 10),
	}
	out, seed := trim(bars)
	require.Equal(t, Down, seed)
	require.Len(t, out, 4)
	require.Equal(t, bars[1], out[0])
}

func TestTrimEmpty(t *testing.T) {
	out, seed := trim(nil)
	require.Empty(t, out)
	require.Equal(t, Up, seed)
}

func TestTrimNoLeadingExtreme(t *testing.T) {
	bars := []RawBar{
		barAt(0, 20, 5),
		barAt(1, 15, 10),
	}
	out, seed := trim(bars)
	require.Equal(t, Down, seed)
	require.Equal(t, bars, out)
}

func TestTrimTieBreaksEarliestIndex(t *testing.T) {
	bars := []RawBar{
		barAt(0, 20, 1),
		barAt(1, 20, 1),
		barAt(2, 5, 3),
	}
	out, seed := trim(bars)
	require.Equal(t, Down, seed)
	require.Equal(t, bars, out) // k=0, unchanged
}
