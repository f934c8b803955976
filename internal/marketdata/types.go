package marketdata

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Range selects how far back a history request reaches.
type Range string

const (
	Range1d  Range = "1d"
	Range5d  Range = "5d"
	Range1mo Range = "1mo"
	Range3mo Range = "3mo"
	Range6mo Range = "6mo"
	Range1y  Range = "1y"
	Range2y  Range = "2y"
	Range5y  Range = "5y"
	RangeYtd Range = "ytd"
	RangeMax Range = "max"
)

// PriceSnapshot is a point-in-time read of a symbol's price. It is constructed
// fresh on every fetch and never cached across calls.
type PriceSnapshot struct {
	Symbol        string          `json:"symbol"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	PreviousClose decimal.Decimal `json:"previous_close"`
	Currency      string          `json:"currency,omitempty"`
	AsOf          time.Time       `json:"as_of"`
}

// FundamentalsSnapshot carries provider-reported fundamentals for a symbol.
// The values are opaque pass-through data; the engine does not interpret them.
type FundamentalsSnapshot struct {
	Symbol           string          `json:"symbol"`
	Currency         string          `json:"currency,omitempty"`
	MarketCap        decimal.Decimal `json:"market_cap"`
	TrailingPE       decimal.Decimal `json:"trailing_pe"`
	TrailingEPS      decimal.Decimal `json:"trailing_eps"`
	DividendYield    decimal.Decimal `json:"dividend_yield"`
	FiftyTwoWeekHigh decimal.Decimal `json:"fifty_two_week_high"`
	FiftyTwoWeekLow  decimal.Decimal `json:"fifty_two_week_low"`
}

// Bar is a single OHLCV history entry.
type Bar struct {
	Timestamp time.Time       `json:"timestamp"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    int64           `json:"volume"`
}

// Provider is the uniform accessor over the external market data source.
// Every call settles to a Result; implementations convert any fault that
// crosses the provider boundary into a Result error.
type Provider interface {
	// Price fetches the latest price snapshot for a symbol.
	Price(ctx context.Context, symbol string) Result[PriceSnapshot]

	// Fundamentals fetches summary fundamentals for a symbol.
	Fundamentals(ctx context.Context, symbol string) Result[FundamentalsSnapshot]

	// History fetches daily OHLCV bars for a symbol over the given range,
	// ordered oldest first.
	History(ctx context.Context, symbol string, rng Range) Result[[]Bar]
}
