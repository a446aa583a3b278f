// FILE: acquire.go
// Package main – Market-data acquirer collaborators.
//
// An Acquirer fetches a cleaned, strictly-ascending sequence of raw bars for
// a symbol/date range from one upstream. Two HTTP-backed implementations are
// provided, mootdxAcquirer and baostockAcquirer, following the same
// request/decode/typed-error shape as the bridge broker this is grounded on.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/chidi150c/chanlun/chanlun"
)

// ErrDataUnavailable marks an acquirer call whose upstream returned no rows
// for the requested window. This is a collaborator-level error; the core
// package never raises it.
var ErrDataUnavailable = errors.New("acquire: data unavailable")

// Acquirer fetches raw bars for a symbol over [start, end].
type Acquirer interface {
	Name() string
	Fetch(ctx context.Context, symbol string, start, end string, dataType DataType, frequency int, adjust Adjust) ([]chanlun.RawBar, error)
}

// httpAcquirer is the shared HTTP plumbing both upstreams use.
type httpAcquirer struct {
	name string
	base string
	hc   *http.Client
}

func newHTTPAcquirer(name, base string) *httpAcquirer {
	return &httpAcquirer{
		name: name,
		base: base,
		hc:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (a *httpAcquirer) Name() string { return a.name }

func (a *httpAcquirer) fetchPath(ctx context.Context, path string, q url.Values) ([]chanlun.RawBar, error) {
	traceID := uuid.New().String()
	u := fmt.Sprintf("%s%s?%s", a.base, path, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("acquire %s: newrequest: %w (url=%s)", a.name, err, u)
	}
	req.Header.Set("User-Agent", "chanlun/acquirer")
	req.Header.Set("X-Trace-Id", traceID)

	start := time.Now()
	res, err := a.hc.Do(req)
	recordAcquireLatency(a.name, time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("acquire %s: %w", a.name, err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		b, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("acquire %s: upstream %d: %s", a.name, res.StatusCode, string(b))
	}

	var rows []rawBarRow
	if err := json.NewDecoder(res.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("acquire %s: decode: %w", a.name, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("acquire %s: %w", a.name, ErrDataUnavailable)
	}

	out := make([]chanlun.RawBar, 0, len(rows))
	for _, r := range rows {
		b := r.toRawBar()
		// Drop rows with non-positive prices or inconsistent OHLC ordering.
		if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 || b.High < b.Low ||
			b.Open > b.High || b.Close > b.High || b.Open < b.Low || b.Close < b.Low {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return dedupeByTimestamp(out), nil
}

// rawBarRow is the upstream wire shape: fields may arrive as either strings
// or numbers depending on the feed.
type rawBarRow struct {
	Time   any `json:"time"`
	Open   any `json:"open"`
	High   any `json:"high"`
	Low    any `json:"low"`
	Close  any `json:"close"`
	Volume any `json:"volume"`
	Amount any `json:"amount"`
}

func (r rawBarRow) toRawBar() chanlun.RawBar {
	return chanlun.RawBar{
		Time:   parseRowTime(r.Time),
		Open:   parseRowFloat(r.Open),
		High:   parseRowFloat(r.High),
		Low:    parseRowFloat(r.Low),
		Close:  parseRowFloat(r.Close),
		Volume: parseRowFloat(r.Volume),
		Amount: parseRowFloat(r.Amount),
	}
}

func parseRowFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, _ := strconv.ParseFloat(t, 64)
		return f
	default:
		return 0
	}
}

func parseRowTime(v any) time.Time {
	switch t := v.(type) {
	case string:
		if tt, err := time.Parse(time.RFC3339, t); err == nil {
			return tt
		}
		if sec, err := strconv.ParseInt(t, 10, 64); err == nil {
			return time.Unix(sec, 0).UTC()
		}
	case float64:
		return time.Unix(int64(t), 0).UTC()
	}
	return time.Time{}
}

// dedupeByTimestamp drops rows sharing a timestamp with the prior row,
// keeping the first occurrence. Input must already be time-sorted.
func dedupeByTimestamp(bars []chanlun.RawBar) []chanlun.RawBar {
	out := bars[:0:0]
	for i, b := range bars {
		if i > 0 && !b.Time.After(bars[i-1].Time) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// mootdxAcquirer fetches bars from a local mootdx-backed HTTP bridge.
type mootdxAcquirer struct{ *httpAcquirer }

func newMootdxAcquirer(base string) *mootdxAcquirer {
	return &mootdxAcquirer{newHTTPAcquirer("mootdx", base)}
}

func (a *mootdxAcquirer) Fetch(ctx context.Context, symbol string, start, end string, dataType DataType, frequency int, adjust Adjust) ([]chanlun.RawBar, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("start", start)
	q.Set("end", end)
	q.Set("type", string(dataType))
	q.Set("adjust", string(adjust))
	if dataType == DataTypeMinute {
		q.Set("freq", strconv.Itoa(frequency))
	}
	return a.fetchPath(ctx, "/klines", q)
}

// baostockAcquirer fetches bars from a local baostock-backed HTTP bridge.
type baostockAcquirer struct{ *httpAcquirer }

func newBaostockAcquirer(base string) *baostockAcquirer {
	return &baostockAcquirer{newHTTPAcquirer("baostock", base)}
}

func (a *baostockAcquirer) Fetch(ctx context.Context, symbol string, start, end string, dataType DataType, frequency int, adjust Adjust) ([]chanlun.RawBar, error) {
	q := url.Values{}
	q.Set("code", symbol)
	q.Set("start_date", start)
	q.Set("end_date", end)
	q.Set("frequency", string(dataType))
	q.Set("adjustflag", string(adjust))
	if dataType == DataTypeMinute {
		q.Set("minute", strconv.Itoa(frequency))
	}
	return a.fetchPath(ctx, "/query_history_k_data", q)
}

// newAcquirer wires the configured data source to its implementation.
func newAcquirer(cfg Config) (Acquirer, error) {
	switch cfg.DataSource {
	case DataSourceMootdx:
		return newMootdxAcquirer(cfg.MootdxURL), nil
	case DataSourceBaostock:
		return newBaostockAcquirer(cfg.BaostockURL), nil
	default:
		return nil, fmt.Errorf("acquire: unknown data source %q", cfg.DataSource)
	}
}
