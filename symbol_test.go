package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeSymbolHKShortCode(t *testing.T) {
	require.Equal(t, "700", normalizeSymbol("700"))
	require.Equal(t, MarketHK, classifyMarket("700"))
}

func TestNormalizeSymbolQualifiedHK(t *testing.T) {
	require.Equal(t, "00700.HK", normalizeSymbol("00700.HK"))
	require.Equal(t, MarketHK, classifyMarket("00700.HK"))
}

func TestNormalizeSymbolQualifiedLowercased(t *testing.T) {
	require.Equal(t, "sh.600000", normalizeSymbol("SH.600000"))
}

func TestNormalizeSymbolSixDigitPrefixes(t *testing.T) {
	require.Equal(t, "sh.600000", normalizeSymbol("600000"))
	require.Equal(t, "sz.000001", normalizeSymbol("000001"))
	require.Equal(t, "sz.300001", normalizeSymbol("300001"))
	require.Equal(t, "sz.159919", normalizeSymbol("159919"))
	require.Equal(t, "sh.510300", normalizeSymbol("510300"))
	require.Equal(t, "bj.830001", normalizeSymbol("830001"))
	require.Equal(t, "bj.920001", normalizeSymbol("920001"))
	require.Equal(t, "bj.430001", normalizeSymbol("430001"))
}

func TestNormalizeSymbolUnrecognizedUnchanged(t *testing.T) {
	require.Equal(t, "AAPL", normalizeSymbol("AAPL"))
}

func TestClassifyMarketETFAndIndex(t *testing.T) {
	require.Equal(t, MarketETF, classifyMarket("510300"))
	require.Equal(t, MarketETF, classifyMarket("159919"))
	require.Equal(t, MarketIndex, classifyMarket("000001"))
	require.Equal(t, MarketIndex, classifyMarket("399001"))
	require.Equal(t, MarketIndex, classifyMarket("880001"))
	require.Equal(t, MarketStock, classifyMarket("600000"))
}

func TestNormalizeSymbolTrimsWhitespace(t *testing.T) {
	require.Equal(t, "sh.600000", normalizeSymbol("  600000  "))
}
