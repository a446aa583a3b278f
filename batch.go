// FILE: batch.go
// Package main – CSV loader and one-shot batch runner.
//
// What's here:
//   - loadCSV(path) -> []chanlun.RawBar : reads time,open,high,low,close,volume[,amount]
//   - runBatch(symbol, bars, render) : runs the pipeline once, logs a summary,
//     updates the run/result metrics, and optionally renders the result.
//
// Notes:
//   - Time column accepts RFC3339 or UNIX seconds.
//   - Unknown columns are ignored; headers are case-insensitive.
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/chidi150c/chanlun/chanlun"
)

// loadCSV reads a raw-bar CSV with headers:
// time|timestamp, open, high, low, close, volume[, amount]
func loadCSV(path string) ([]chanlun.RawBar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var out []chanlun.RawBar
	var headers []string
	rowIdx := 0

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if rowIdx == 0 {
			headers = rec
			rowIdx++
			continue
		}
		row := map[string]string{}
		for j, h := range headers {
			k := strings.ToLower(strings.TrimSpace(h))
			if j < len(rec) {
				row[k] = strings.TrimSpace(rec[j])
			}
		}
		ts := first(row, "time", "timestamp")
		op := first(row, "open")
		hp := first(row, "high")
		lp := first(row, "low")
		cp := first(row, "close")
		vp := first(row, "volume", "vol")
		ap := first(row, "amount", "turnover")
		if ts == "" || op == "" || cp == "" {
			continue
		}
		tt, err := parseTimeFlexible(ts)
		if err != nil {
			continue
		}
		o, _ := strconv.ParseFloat(op, 64)
		h, _ := strconv.ParseFloat(hp, 64)
		l, _ := strconv.ParseFloat(lp, 64)
		c, _ := strconv.ParseFloat(cp, 64)
		v, _ := strconv.ParseFloat(vp, 64)
		a, _ := strconv.ParseFloat(ap, 64)
		out = append(out, chanlun.RawBar{Time: tt, Open: o, High: h, Low: l, Close: c, Volume: v, Amount: a})
		rowIdx++
	}

	sortRawBars(out)
	return out, nil
}

// parseTimeFlexible supports RFC3339 or UNIX seconds.
func parseTimeFlexible(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(sec, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("bad time: %s", s)
}

// sortRawBars ensures ascending time.
func sortRawBars(b []chanlun.RawBar) {
	sort.Slice(b, func(i, j int) bool { return b[i].Time.Before(b[j].Time) })
}

// first returns the first non-empty value for keys in m.
func first(m map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := m[k]; v != "" {
			return v
		}
	}
	return ""
}

// runBatch runs the pipeline once over bars, logs a summary, and records
// metrics. If render is non-nil, it additionally writes a chart payload.
func runBatch(symbol string, bars []chanlun.RawBar, render Renderer) (chanlun.Result, error) {
	result, err := chanlun.Process(bars)
	if err != nil {
		recordRunOutcome(outcomeFor(err))
		return chanlun.Result{}, fmt.Errorf("pipeline: %w", err)
	}
	recordRunOutcome("ok")

	tops, bottoms := 0, 0
	for _, m := range result.SurvivingMarks() {
		if m.Kind == chanlun.MarkTop {
			tops++
		} else {
			bottoms++
		}
	}
	recordResultMetrics(len(result.Bars), tops, bottoms, len(result.Strokes))
	recordFilterCleared("f1", result.Stats.F1)
	recordFilterCleared("f2", result.Stats.F2)
	recordFilterCleared("f3", result.Stats.F3)
	recordFilterCleared("f4", result.Stats.F4)
	recordFilterCleared("f5", result.Stats.F5)

	log.Printf("chanlun: symbol=%s raw=%d structural=%d fractals=%d(top=%d,bottom=%d) strokes=%d",
		symbol, len(bars), len(result.Bars), tops+bottoms, tops, bottoms, len(result.Strokes))

	if render != nil {
		if err := render.Render(os.Stdout, symbol, result); err != nil {
			log.Printf("[WARN] chanlun: render: %v", err)
		}
	}
	return result, nil
}

func outcomeFor(err error) string {
	var pe *chanlun.ProcessError
	if as, ok := err.(*chanlun.ProcessError); ok {
		pe = as
	}
	if pe == nil {
		return "input_error"
	}
	switch pe.Kind {
	case chanlun.ErrInvariant:
		return "invariant_error"
	default:
		return "input_error"
	}
}
