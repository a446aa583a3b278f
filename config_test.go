package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	cfg := loadConfigFromEnv()
	cfg.Symbol = "600000"
	return cfg
}

func TestConfigValidateAcceptsMainlandSymbol(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestConfigValidateRejectsHKSymbolForEitherSource(t *testing.T) {
	cfg := validConfig()
	cfg.Symbol = "700"
	cfg.DataSource = DataSourceMootdx
	require.Error(t, cfg.Validate())

	cfg.DataSource = DataSourceBaostock
	require.Error(t, cfg.Validate())
}

func TestConfigValidateRejectsUnknownDataSource(t *testing.T) {
	cfg := validConfig()
	cfg.DataSource = DataSource("nope")
	require.Error(t, cfg.Validate())
}
