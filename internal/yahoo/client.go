// Package yahoo implements the market data provider against the Yahoo
// Finance chart and quoteSummary endpoints.
package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"resty.dev/v3"

	"marketalert/internal/marketdata"
)

// Yahoo rejects requests with Go's default User-Agent.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Client fetches quotes, fundamentals and history from Yahoo Finance.
// It implements marketdata.Provider.
type Client struct {
	http *resty.Client
}

// NewClient creates a Yahoo Finance client bound to the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", browserUserAgent)

	return &Client{http: client}
}

// Price retrieves the latest price snapshot for a symbol. The current price
// and previous close come from the chart metadata of a short daily range.
func (c *Client) Price(ctx context.Context, symbol string) marketdata.Result[marketdata.PriceSnapshot] {
	sym := marketdata.NormalizeSymbol(symbol)
	if sym == "" {
		return marketdata.Fail[marketdata.PriceSnapshot](marketdata.NewInvalidArgument("symbol must not be empty"))
	}

	result, ferr := c.chart(ctx, sym, marketdata.Range5d)
	if ferr != nil {
		return marketdata.Fail[marketdata.PriceSnapshot](ferr)
	}

	meta := result.Meta
	if meta.RegularMarketPrice <= 0 || meta.ChartPreviousClose <= 0 {
		return marketdata.Fail[marketdata.PriceSnapshot](
			marketdata.NewMalformedResponse(fmt.Sprintf("non-positive prices in chart meta for %s", sym)))
	}

	snapshot := marketdata.PriceSnapshot{
		Symbol:        sym,
		CurrentPrice:  decimal.NewFromFloat(meta.RegularMarketPrice),
		PreviousClose: decimal.NewFromFloat(meta.ChartPreviousClose),
		Currency:      meta.Currency,
		AsOf:          time.Unix(meta.RegularMarketTime, 0).UTC(),
	}
	return marketdata.Ok(snapshot)
}

// History retrieves daily OHLCV bars over the given range, oldest first.
// Bars without a close (market holidays, partial sessions) are skipped.
func (c *Client) History(ctx context.Context, symbol string, rng marketdata.Range) marketdata.Result[[]marketdata.Bar] {
	sym := marketdata.NormalizeSymbol(symbol)
	if sym == "" {
		return marketdata.Fail[[]marketdata.Bar](marketdata.NewInvalidArgument("symbol must not be empty"))
	}
	if rng == "" {
		rng = marketdata.Range1y
	}

	result, ferr := c.chart(ctx, sym, rng)
	if ferr != nil {
		return marketdata.Fail[[]marketdata.Bar](ferr)
	}

	if len(result.Indicators.Quote) == 0 {
		return marketdata.Fail[[]marketdata.Bar](
			marketdata.NewMalformedResponse(fmt.Sprintf("chart response for %s has no quote data", sym)))
	}
	quote := result.Indicators.Quote[0]
	if len(result.Timestamp) != len(quote.Close) {
		return marketdata.Fail[[]marketdata.Bar](
			marketdata.NewMalformedResponse(fmt.Sprintf("chart response for %s has mismatched series lengths", sym)))
	}

	bars := make([]marketdata.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if quote.Close[i] == 0 {
			continue
		}
		bars = append(bars, marketdata.Bar{
			Timestamp: time.Unix(ts, 0).UTC(),
			Open:      decimal.NewFromFloat(at(quote.Open, i)),
			High:      decimal.NewFromFloat(at(quote.High, i)),
			Low:       decimal.NewFromFloat(at(quote.Low, i)),
			Close:     decimal.NewFromFloat(quote.Close[i]),
			Volume:    volumeAt(quote.Volume, i),
		})
	}
	if len(bars) == 0 {
		return marketdata.Fail[[]marketdata.Bar](marketdata.NewNotFound(sym))
	}
	return marketdata.Ok(bars)
}

// Fundamentals retrieves summary fundamentals for a symbol.
func (c *Client) Fundamentals(ctx context.Context, symbol string) marketdata.Result[marketdata.FundamentalsSnapshot] {
	sym := marketdata.NormalizeSymbol(symbol)
	if sym == "" {
		return marketdata.Fail[marketdata.FundamentalsSnapshot](marketdata.NewInvalidArgument("symbol must not be empty"))
	}

	var body quoteSummaryResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("modules", "price,summaryDetail,defaultKeyStatistics").
		SetResult(&body).
		Get("/v10/finance/quoteSummary/" + sym)

	if ferr := classify(resp, err, sym); ferr != nil {
		return marketdata.Fail[marketdata.FundamentalsSnapshot](ferr)
	}
	if body.QuoteSummary.Error != nil {
		return marketdata.Fail[marketdata.FundamentalsSnapshot](upstreamError(body.QuoteSummary.Error, sym))
	}
	if len(body.QuoteSummary.Result) == 0 {
		return marketdata.Fail[marketdata.FundamentalsSnapshot](
			marketdata.NewMalformedResponse(fmt.Sprintf("quoteSummary response for %s has no result", sym)))
	}

	r := body.QuoteSummary.Result[0]
	snapshot := marketdata.FundamentalsSnapshot{
		Symbol:           sym,
		Currency:         r.Price.Currency,
		MarketCap:        decimal.NewFromFloat(r.Price.MarketCap.Raw),
		TrailingPE:       decimal.NewFromFloat(r.SummaryDetail.TrailingPE.Raw),
		TrailingEPS:      decimal.NewFromFloat(r.DefaultKeyStatistics.TrailingEPS.Raw),
		DividendYield:    decimal.NewFromFloat(r.SummaryDetail.DividendYield.Raw),
		FiftyTwoWeekHigh: decimal.NewFromFloat(r.SummaryDetail.FiftyTwoWeekHigh.Raw),
		FiftyTwoWeekLow:  decimal.NewFromFloat(r.SummaryDetail.FiftyTwoWeekLow.Raw),
	}
	return marketdata.Ok(snapshot)
}

// chart performs a chart API call and peels the single result out of the
// response envelope.
func (c *Client) chart(ctx context.Context, sym string, rng marketdata.Range) (*chartResult, *marketdata.Error) {
	var body chartResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"range":    string(rng),
			"interval": "1d",
		}).
		SetResult(&body).
		Get("/v8/finance/chart/" + sym)

	if ferr := classify(resp, err, sym); ferr != nil {
		return nil, ferr
	}
	if body.Chart.Error != nil {
		return nil, upstreamError(body.Chart.Error, sym)
	}
	if len(body.Chart.Result) == 0 {
		return nil, marketdata.NewMalformedResponse(fmt.Sprintf("chart response for %s has no result", sym))
	}
	return &body.Chart.Result[0], nil
}

// classify converts transport and HTTP-level failures into access-layer errors.
func classify(resp *resty.Response, err error, sym string) *marketdata.Error {
	if err != nil {
		return marketdata.NewUpstreamUnavailable(fmt.Errorf("request for %s failed: %w", sym, err))
	}
	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return marketdata.NewNotFound(sym)
	case !resp.IsSuccess():
		return marketdata.NewUpstreamUnavailable(fmt.Errorf("provider returned status %d for %s", resp.StatusCode(), sym))
	}
	return nil
}

// at reads index i of a possibly shorter parallel series.
func at(series []float64, i int) float64 {
	if i < len(series) {
		return series[i]
	}
	return 0
}

func volumeAt(series []int64, i int) int64 {
	if i < len(series) {
		return series[i]
	}
	return 0
}

// upstreamError maps an in-band API error object to an access-layer error.
func upstreamError(apiErr *apiError, sym string) *marketdata.Error {
	if strings.EqualFold(apiErr.Code, "not found") {
		return marketdata.NewNotFound(sym)
	}
	return marketdata.NewUpstreamUnavailable(errors.New(apiErr.Code + ": " + apiErr.Description))
}
