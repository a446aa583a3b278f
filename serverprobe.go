// FILE: serverprobe.go
// Package main – Upstream server latency probe with a persisted, TTL'd
// choice of "best" server.
//
// Persisted state is a small JSON file (shape grounded on
// tools/migrate_state.go's read/write-with-backup pattern): the probe reads
// it, and if the recorded choice is older than its TTL, re-probes a list of
// candidate hosts and overwrites it.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
)

// ProbeState is the on-disk record of the last-chosen upstream server.
type ProbeState struct {
	OptimalServer string    `json:"optimal_server"`
	LatencyMS     float64   `json:"latency_ms"`
	LastUpdated   time.Time `json:"last_updated"`
}

func (s ProbeState) stale(ttl time.Duration) bool {
	return s.OptimalServer == "" || time.Since(s.LastUpdated) > ttl
}

func loadProbeState(path string) (ProbeState, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ProbeState{}, nil
		}
		return ProbeState{}, err
	}
	var st ProbeState
	if err := json.Unmarshal(raw, &st); err != nil {
		return ProbeState{}, fmt.Errorf("serverprobe: parse %s: %w", path, err)
	}
	return st, nil
}

func saveProbeState(path string, st ProbeState) error {
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("serverprobe: marshal: %w", err)
	}
	return os.WriteFile(path, b, 0644)
}

// probeLatency measures the round-trip time of an HTTP GET to host's health
// endpoint. A failed probe reports +Inf so it never wins the selection.
func probeLatency(ctx context.Context, client *http.Client, host string) float64 {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+host+"/healthz", nil)
	if err != nil {
		return math.Inf(1)
	}
	req.Header.Set("X-Probe-Id", uuid.New().String())

	start := time.Now()
	res, err := client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return math.Inf(1)
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return math.Inf(1)
	}
	return float64(elapsed.Microseconds()) / 1000.0
}

// runServerProbe returns the persisted state unchanged when it is younger
// than ttl and force is false. Otherwise it probes every candidate host,
// records each latency in metrics, picks the fastest, and persists it.
func runServerProbe(ctx context.Context, statePath string, ttl time.Duration, candidates []string, force bool) (ProbeState, error) {
	existing, err := loadProbeState(statePath)
	if err != nil {
		return ProbeState{}, err
	}
	if !force && !existing.stale(ttl) {
		return existing, nil
	}

	client := &http.Client{Timeout: 5 * time.Second}
	best := ProbeState{LatencyMS: math.Inf(1)}
	for _, host := range candidates {
		ms := probeLatency(ctx, client, host)
		recordServerProbeLatency(host, ms)
		if ms < best.LatencyMS {
			best = ProbeState{OptimalServer: host, LatencyMS: ms, LastUpdated: time.Now().UTC()}
		}
	}
	if best.OptimalServer == "" {
		return existing, fmt.Errorf("serverprobe: no candidate host responded")
	}
	if err := saveProbeState(statePath, best); err != nil {
		return best, err
	}
	return best, nil
}
