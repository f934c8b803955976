package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketalert/internal/alert"
	"marketalert/internal/compare"
	"marketalert/internal/logger"
	"marketalert/internal/marketdata"
	"marketalert/internal/notify"
	"marketalert/internal/yahoo"
)

// newMockYahoo serves chart and quoteSummary responses for a small set of
// symbols; anything else resolves as an in-band "Not Found" chart error.
func newMockYahoo(t *testing.T) *httptest.Server {
	t.Helper()

	prices := map[string][2]float64{
		"AAPL": {97.00, 100.00},
		"MSFT": {412.00, 405.00},
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch {
		case strings.HasPrefix(r.URL.Path, "/v8/finance/chart/"):
			symbol := strings.TrimPrefix(r.URL.Path, "/v8/finance/chart/")
			p, ok := prices[symbol]
			if !ok {
				fmt.Fprint(w, `{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}}}`)
				return
			}
			fmt.Fprintf(w, `{
				"chart": {
					"result": [{
						"meta": {
							"currency": "USD",
							"symbol": %q,
							"regularMarketPrice": %.2f,
							"chartPreviousClose": %.2f,
							"regularMarketTime": 1767114000
						},
						"timestamp": [1766854800, 1766941200, 1767027600],
						"indicators": {
							"quote": [{
								"open": [99, 100, 98],
								"high": [101, 102, 99],
								"low": [98, 99, 96],
								"close": [100, 110, 95],
								"volume": [1000, 1100, 1200]
							}]
						}
					}],
					"error": null
				}
			}`, symbol, p[0], p[1])

		case strings.HasPrefix(r.URL.Path, "/v10/finance/quoteSummary/"):
			fmt.Fprint(w, `{
				"quoteSummary": {
					"result": [{
						"price": {"currency": "USD", "marketCap": {"raw": 1000000000}},
						"summaryDetail": {
							"trailingPE": {"raw": 25.0},
							"dividendYield": {"raw": 0.01},
							"fiftyTwoWeekHigh": {"raw": 120.0},
							"fiftyTwoWeekLow": {"raw": 80.0}
						},
						"defaultKeyStatistics": {"trailingEps": {"raw": 4.0}}
					}],
					"error": null
				}
			}`)

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestIntegration_AlertWorkflow(t *testing.T) {
	server := newMockYahoo(t)
	defer server.Close()

	provider := yahoo.NewClient(server.URL, 5*time.Second)
	engine := alert.NewEngine(provider, notify.Noop{}, logger.NewNop())

	// AAPL dropped from 100 to 97: a 3% drop is HIGH against a 1% threshold.
	report, err := engine.Run(context.Background(), "AAPL", decimal.RequireFromString("1.0"))
	require.NoError(t, err)
	require.Equal(t, alert.StageDone, report.Stage)

	payload := report.Payload
	require.NotNil(t, payload)
	assert.Equal(t, "AAPL", payload.Symbol)
	assert.True(t, payload.PercentChange.Equal(decimal.RequireFromString("-3")))
	assert.True(t, payload.Triggered)
	assert.Equal(t, alert.SeverityHigh, payload.Severity)
	assert.True(t, report.Delivered)
}

func TestIntegration_AlertWorkflow_UnknownSymbol(t *testing.T) {
	server := newMockYahoo(t)
	defer server.Close()

	provider := yahoo.NewClient(server.URL, 5*time.Second)
	engine := alert.NewEngine(provider, notify.Noop{}, logger.NewNop())

	report, err := engine.Run(context.Background(), "BADSYM", decimal.RequireFromString("1.0"))
	require.Error(t, err)
	assert.Equal(t, alert.StageFailed, report.Stage)
	assert.Nil(t, report.Payload)

	mdErr, ok := err.(*marketdata.Error)
	require.True(t, ok)
	assert.Equal(t, marketdata.KindNotFound, mdErr.Kind)
}

func TestIntegration_Comparison(t *testing.T) {
	server := newMockYahoo(t)
	defer server.Close()

	provider := yahoo.NewClient(server.URL, 5*time.Second)
	comparer := compare.New(provider, logger.NewNop(), compare.Options{})

	entries, err := comparer.Compare(context.Background(), []string{"AAPL", "BADSYM", "MSFT"})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "AAPL", entries[0].Symbol)
	require.True(t, entries[0].Result.OK)
	performance := entries[0].Result.Value.Performance
	require.Len(t, performance, 3)
	assert.True(t, performance[0].ChangePercent.Equal(decimal.Zero))
	assert.True(t, performance[1].ChangePercent.Equal(decimal.RequireFromString("10")))
	assert.True(t, performance[2].ChangePercent.Equal(decimal.RequireFromString("-5")))
	assert.Equal(t, "USD", entries[0].Result.Value.Fundamentals.Currency)

	assert.Equal(t, "BADSYM", entries[1].Symbol)
	require.False(t, entries[1].Result.OK)
	assert.Equal(t, marketdata.KindNotFound, entries[1].Result.Err.Kind)

	assert.Equal(t, "MSFT", entries[2].Symbol)
	assert.True(t, entries[2].Result.OK)
}
