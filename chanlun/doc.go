// Package chanlun implements the Chanlun bar-processing pipeline: a
// deterministic, batch transformation of raw OHLCV bars into merged
// structural bars, filtered fractals, and alternating strokes.
//
// The pipeline is pure and synchronous. Its only I/O is a [DEBUG] line on
// the standard logger for each fractal the stroke builder skips; it starts
// no goroutines and accepts no context.Context — callers that need
// cancellation or timeouts wrap Process at the collaborator layer (see the
// repository root for acquisition, rendering, and CLI wiring, none of which
// this package imports).
//
// Stages, applied in order by Process:
//
//	Trim    -> drop bars before the earliest global extreme, fix seed direction
//	Merge   -> fold contained bars into structural bars
//	Identify -> tag 3-bar local extrema as fractals
//	Filter  -> five-stage validity chain (window, alternation, relationship,
//	           proximity, settle)
//	Stroke  -> connect surviving alternating fractals
package chanlun
