// FILE: config.go
// Package main – Runtime configuration model and loader.
//
// This file defines the Config struct (all the knobs the CLI uses) and a
// helper to populate it from environment variables. The .env file is read
// by loadEnv() (see env.go), so you can tune behavior without exports.
//
// Typical flow (see main.go):
//
//	loadEnv()
//	cfg := loadConfigFromEnv()
package main

import "fmt"

// DataSource selects which upstream acquirer to use.
type DataSource string

const (
	DataSourceMootdx   DataSource = "mootdx"
	DataSourceBaostock DataSource = "baostock"
)

// DataType selects the bar granularity family.
type DataType string

const (
	DataTypeDaily  DataType = "daily"
	DataTypeMinute DataType = "minute"
)

// Adjust selects the price-adjustment mode for fetched bars.
type Adjust string

const (
	AdjustNone    Adjust = "none"
	AdjustForward Adjust = "forward"
	AdjustBack    Adjust = "back"
)

// Config holds all runtime knobs for acquiring and processing bars.
type Config struct {
	Symbol     string
	DataSource DataSource
	DataType   DataType
	Frequency  int // minutes; only meaningful when DataType == minute
	Adjust     Adjust
	StartDate  string // YYYY-MM-DD
	EndDate    string // YYYY-MM-DD

	Port int

	MootdxURL      string
	BaostockURL    string
	ProbeStatePath string
	ProbeTTLHours  int
}

// loadConfigFromEnv reads the process env (already hydrated by loadEnv())
// and returns a Config with sane defaults if keys are missing.
func loadConfigFromEnv() Config {
	return Config{
		Symbol:     getEnv("SYMBOL", "600000"),
		DataSource: DataSource(getEnv("DATA_SOURCE", string(DataSourceMootdx))),
		DataType:   DataType(getEnv("DATA_TYPE", string(DataTypeDaily))),
		Frequency:  getEnvInt("FREQUENCY", 15),
		Adjust:     Adjust(getEnv("ADJUST", string(AdjustNone))),
		StartDate:  getEnv("START_DATE", ""),
		EndDate:    getEnv("END_DATE", ""),

		Port: getEnvInt("PORT", 8080),

		MootdxURL:      getEnv("MOOTDX_URL", "http://127.0.0.1:7709"),
		BaostockURL:    getEnv("BAOSTOCK_URL", "http://127.0.0.1:7710"),
		ProbeStatePath: getEnv("PROBE_STATE_PATH", "serverprobe_state.json"),
		ProbeTTLHours:  getEnvInt("PROBE_TTL_HOURS", 24*7),
	}
}

// Validate checks the combination of config fields the CLI would otherwise
// only discover at acquire time.
func (c Config) Validate() error {
	switch c.DataSource {
	case DataSourceMootdx, DataSourceBaostock:
	default:
		return fmt.Errorf("config: unknown data source %q", c.DataSource)
	}
	if classifyMarket(c.Symbol) == MarketHK {
		return fmt.Errorf("config: symbol %q is a Hong Kong listing; neither %s nor %s serves HK markets", c.Symbol, DataSourceMootdx, DataSourceBaostock)
	}
	switch c.DataType {
	case DataTypeDaily, DataTypeMinute:
	default:
		return fmt.Errorf("config: unknown data type %q", c.DataType)
	}
	if c.DataType == DataTypeMinute {
		switch c.Frequency {
		case 5, 15, 30, 60:
		default:
			return fmt.Errorf("config: minute frequency must be one of 5,15,30,60, got %d", c.Frequency)
		}
	}
	switch c.Adjust {
	case AdjustNone, AdjustForward, AdjustBack:
	default:
		return fmt.Errorf("config: unknown adjust mode %q", c.Adjust)
	}
	return nil
}
