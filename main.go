// FILE: main.go
// Package main – Program entrypoint and HTTP/metrics server.
//
// Boot sequence:
//  1. loadEnv()                   – read .env (no shell exports required)
//  2. cfg := loadConfigFromEnv()  – build runtime Config, overridden by flags
//  3. cfg.Validate()              – exit on an invalid combination
//  4. start Prometheus /metrics and /healthz server on cfg.Port
//  5. run the selected one-shot mode (-csv, fetch-by-symbol through the
//     configured Acquirer, or -probe-servers)
//  6. graceful shutdown
//
// Flags:
//
//	-csv <path>        Run the pipeline once over a local raw-bar CSV
//	-symbol <sym>       Symbol to fetch and process (overrides .env SYMBOL)
//	-source mootdx|baostock
//	-type daily|minute
//	-freq 5|15|30|60    Minutes per bar (minute type only)
//	-adjust none|forward|back
//	-start YYYY-MM-DD
//	-end YYYY-MM-DD
//	-render             Also emit the Renderer JSON summary to stdout
//	-probe-servers      Run the latency prober once and persist its result
//
// Example:
//
//	go run . -csv bars.csv -render
//	go run . -symbol 600000 -source baostock -start 2024-01-01 -end 2024-06-01
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	var (
		csvPath      string
		symbolFlag   string
		sourceFlag   string
		typeFlag     string
		freqFlag     int
		adjustFlag   string
		startFlag    string
		endFlag      string
		render       bool
		probeServers bool
	)
	flag.StringVar(&csvPath, "csv", "", "Path to a raw-bar CSV (time,open,high,low,close,volume[,amount])")
	flag.StringVar(&symbolFlag, "symbol", "", "Symbol to fetch and process")
	flag.StringVar(&sourceFlag, "source", "", "Data source: mootdx|baostock")
	flag.StringVar(&typeFlag, "type", "", "Data type: daily|minute")
	flag.IntVar(&freqFlag, "freq", 0, "Minutes per bar (minute type only): 5|15|30|60")
	flag.StringVar(&adjustFlag, "adjust", "", "Price adjustment: none|forward|back")
	flag.StringVar(&startFlag, "start", "", "Start date, YYYY-MM-DD")
	flag.StringVar(&endFlag, "end", "", "End date, YYYY-MM-DD")
	flag.BoolVar(&render, "render", false, "Also emit the chart-ready JSON summary to stdout")
	flag.BoolVar(&probeServers, "probe-servers", false, "Run the latency prober once and persist its result")
	flag.Parse()

	loadEnv()
	cfg := loadConfigFromEnv()
	applyFlagOverrides(&cfg, symbolFlag, sourceFlag, typeFlag, freqFlag, adjustFlag, startFlag, endFlag)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok\n"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Port), Handler: mux}
	go func() {
		log.Printf("serving metrics on :%d/metrics", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var renderer Renderer
	if render {
		renderer = newJSONRenderer()
	}

	switch {
	case probeServers:
		runProbeServersMode(ctx, cfg)
	case csvPath != "":
		runCSVMode(csvPath, cfg.Symbol, renderer)
	default:
		runFetchMode(ctx, cfg, renderer)
	}

	shutdownCtx, c := context.WithTimeout(context.Background(), 2*time.Second)
	defer c()
	_ = srv.Shutdown(shutdownCtx)
}

func applyFlagOverrides(cfg *Config, symbol, source, dataType string, freq int, adjust, start, end string) {
	if symbol != "" {
		cfg.Symbol = normalizeSymbol(symbol)
	} else {
		cfg.Symbol = normalizeSymbol(cfg.Symbol)
	}
	if source != "" {
		cfg.DataSource = DataSource(strings.ToLower(source))
	}
	if dataType != "" {
		cfg.DataType = DataType(strings.ToLower(dataType))
	}
	if freq != 0 {
		cfg.Frequency = freq
	}
	if adjust != "" {
		cfg.Adjust = Adjust(strings.ToLower(adjust))
	}
	if start != "" {
		cfg.StartDate = start
	}
	if end != "" {
		cfg.EndDate = end
	}
}

func runCSVMode(path, symbol string, renderer Renderer) {
	bars, err := loadCSV(path)
	if err != nil {
		log.Fatalf("csv load: %v", err)
	}
	if _, err := runBatch(symbol, bars, renderer); err != nil {
		log.Fatalf("batch: %v", err)
	}
}

func runFetchMode(ctx context.Context, cfg Config, renderer Renderer) {
	acq, err := newAcquirer(cfg)
	if err != nil {
		log.Fatalf("acquirer: %v", err)
	}
	bars, err := acq.Fetch(ctx, cfg.Symbol, cfg.StartDate, cfg.EndDate, cfg.DataType, cfg.Frequency, cfg.Adjust)
	if err != nil {
		log.Fatalf("fetch: %v", err)
	}
	if _, err := runBatch(cfg.Symbol, bars, renderer); err != nil {
		log.Fatalf("batch: %v", err)
	}
}

func runProbeServersMode(ctx context.Context, cfg Config) {
	candidates := []string{cfg.MootdxURL, cfg.BaostockURL}
	ttl := time.Duration(cfg.ProbeTTLHours) * time.Hour
	st, err := runServerProbe(ctx, cfg.ProbeStatePath, ttl, stripScheme(candidates), true)
	if err != nil {
		log.Fatalf("probe-servers: %v", err)
	}
	log.Printf("probe-servers: optimal=%s latency_ms=%.2f", st.OptimalServer, st.LatencyMS)
}

func stripScheme(hosts []string) []string {
	out := make([]string, len(hosts))
	for i, h := range hosts {
		out[i] = strings.TrimPrefix(strings.TrimPrefix(h, "https://"), "http://")
	}
	return out
}
