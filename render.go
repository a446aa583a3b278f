// FILE: render.go
// Package main – Renderer collaborator interface and default JSON
// implementation.
//
// The core chanlun package never imports this; a Renderer only consumes the
// finished chanlun.Result to produce something chart-ready. Field shapes
// (OHLC, merged bars, fractal markers, stroke polylines) follow what an
// interactive Chanlun chart needs, without pulling in a charting library.
package main

import (
	"encoding/json"
	"io"

	"github.com/chidi150c/chanlun/chanlun"
)

// Renderer turns a finished pipeline Result into a chart-ready payload.
type Renderer interface {
	Render(w io.Writer, symbol string, result chanlun.Result) error
}

type renderedBar struct {
	Time  string  `json:"time"`
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

type renderedFractal struct {
	Index int     `json:"index"`
	Type  string  `json:"type"`
	Price float64 `json:"price"`
}

type renderedStroke struct {
	ID         int     `json:"id"`
	StartIndex int     `json:"start_index"`
	EndIndex   int     `json:"end_index"`
	Direction  string  `json:"direction"`
	StartPrice float64 `json:"start_price"`
	EndPrice   float64 `json:"end_price"`
}

type renderedChart struct {
	Symbol    string            `json:"symbol"`
	Seed      string            `json:"seed_direction"`
	Bars      []renderedBar     `json:"bars"`
	Fractals  []renderedFractal `json:"fractals"`
	Strokes   []renderedStroke  `json:"strokes"`
}

// jsonRenderer is the default Renderer, emitting the payload any JS charting
// front-end could consume without this process depending on one.
type jsonRenderer struct{}

func newJSONRenderer() jsonRenderer { return jsonRenderer{} }

func (jsonRenderer) Render(w io.Writer, symbol string, result chanlun.Result) error {
	chart := renderedChart{
		Symbol: symbol,
		Seed:   result.SeedDirection.String(),
		Bars:   make([]renderedBar, len(result.Bars)),
	}
	for i, b := range result.Bars {
		chart.Bars[i] = renderedBar{
			Time:  b.Time.Format("2006-01-02T15:04:05Z07:00"),
			Open:  b.Open,
			High:  b.High,
			Low:   b.Low,
			Close: b.Close,
		}
	}
	for _, m := range result.SurvivingMarks() {
		price := result.Bars[m.Index].Low
		if m.Kind == chanlun.MarkTop {
			price = result.Bars[m.Index].High
		}
		chart.Fractals = append(chart.Fractals, renderedFractal{
			Index: m.Index,
			Type:  m.Kind.String(),
			Price: price,
		})
	}
	for _, s := range result.Strokes {
		chart.Strokes = append(chart.Strokes, renderedStroke{
			ID:         s.ID,
			StartIndex: s.StartIndex,
			EndIndex:   s.EndIndex,
			Direction:  s.Direction.String(),
			StartPrice: s.StartPrice,
			EndPrice:   s.EndPrice,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(chart)
}
