// Package compare implements the concurrent comparison fetcher: a bounded
// fan-out over N symbols with a fan-in that preserves request order and
// tolerates partial failure.
package compare

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"marketalert/internal/logger"
	"marketalert/internal/marketdata"
)

// DefaultMaxSymbols bounds how many symbols one comparison call may request.
const DefaultMaxSymbols = 5

const defaultFetchTimeout = 10 * time.Second

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Point is one entry of a rebased relative-performance series.
type Point struct {
	Timestamp     time.Time       `json:"timestamp"`
	ChangePercent decimal.Decimal `json:"change_percent"`
}

// Comparison is the per-symbol dataset assembled for a successful entry.
type Comparison struct {
	Fundamentals marketdata.FundamentalsSnapshot `json:"fundamentals"`
	Performance  []Point                         `json:"performance"`
}

// Entry pairs a requested symbol with its settled result. The result set
// always contains exactly one entry per requested symbol, in request order.
type Entry struct {
	Symbol string                        `json:"symbol"`
	Result marketdata.Result[Comparison] `json:"result"`
}

// Options tunes a Comparer. Zero fields fall back to defaults.
type Options struct {
	MaxSymbols   int
	FetchTimeout time.Duration
	HistoryRange marketdata.Range
}

// Comparer fans out independent composite fetches across symbols and joins
// on all of them before returning.
type Comparer struct {
	provider     marketdata.Provider
	log          *logger.Logger
	maxSymbols   int
	fetchTimeout time.Duration
	historyRange marketdata.Range
}

// New creates a Comparer over the given provider.
func New(provider marketdata.Provider, log *logger.Logger, opts Options) *Comparer {
	if opts.MaxSymbols <= 0 {
		opts.MaxSymbols = DefaultMaxSymbols
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = defaultFetchTimeout
	}
	if opts.HistoryRange == "" {
		opts.HistoryRange = marketdata.Range1y
	}
	return &Comparer{
		provider:     provider,
		log:          log,
		maxSymbols:   opts.MaxSymbols,
		fetchTimeout: opts.FetchTimeout,
		historyRange: opts.HistoryRange,
	}
}

// Compare fetches history and fundamentals for every symbol concurrently and
// assembles one entry per symbol in request order. Per-symbol failure is
// captured in that symbol's entry; the call itself fails only on input
// validation, before any fetch is launched.
func (c *Comparer) Compare(ctx context.Context, symbols []string) ([]Entry, error) {
	if len(symbols) == 0 {
		return nil, marketdata.NewNoSymbols()
	}
	if len(symbols) > c.maxSymbols {
		return nil, marketdata.NewTooManySymbols(len(symbols), c.maxSymbols)
	}

	// Each goroutine writes only its own slot, so assembly order is the
	// input order no matter how the fetches interleave.
	entries := make([]Entry, len(symbols))
	var wg sync.WaitGroup
	for i, symbol := range symbols {
		wg.Add(1)
		go func(slot int, symbol string) {
			defer wg.Done()
			entries[slot] = c.fetchOne(ctx, symbol)
		}(i, symbol)
	}
	wg.Wait()

	return entries, nil
}

// fetchOne performs the composite fetch for a single symbol under its own
// timeout. A timed-out fetch settles as UPSTREAM_UNAVAILABLE without
// cancelling sibling fetches.
func (c *Comparer) fetchOne(ctx context.Context, symbol string) Entry {
	fetchCtx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	historyRes := c.provider.History(fetchCtx, symbol, c.historyRange)
	if !historyRes.OK {
		c.log.Debug("comparison history fetch failed",
			logger.StringField("symbol", symbol),
			logger.ErrorField(historyRes.Err))
		return Entry{Symbol: symbol, Result: marketdata.Fail[Comparison](historyRes.Err)}
	}

	fundamentalsRes := c.provider.Fundamentals(fetchCtx, symbol)
	if !fundamentalsRes.OK {
		c.log.Debug("comparison fundamentals fetch failed",
			logger.StringField("symbol", symbol),
			logger.ErrorField(fundamentalsRes.Err))
		return Entry{Symbol: symbol, Result: marketdata.Fail[Comparison](fundamentalsRes.Err)}
	}

	performance, err := rebase(historyRes.Value)
	if err != nil {
		return Entry{Symbol: symbol, Result: marketdata.Fail[Comparison](err)}
	}

	return Entry{Symbol: symbol, Result: marketdata.Ok(Comparison{
		Fundamentals: fundamentalsRes.Value,
		Performance:  performance,
	})}
}

// rebase normalizes a history to relative performance: each close becomes
// (close/first - 1) * 100, so every series starts at zero.
func rebase(bars []marketdata.Bar) ([]Point, *marketdata.Error) {
	if len(bars) == 0 {
		return nil, marketdata.NewMalformedResponse("history is empty")
	}
	base := bars[0].Close
	if base.IsZero() {
		return nil, marketdata.NewDivisionByZero("first close in history is zero")
	}

	points := make([]Point, 0, len(bars))
	for _, bar := range bars {
		points = append(points, Point{
			Timestamp:     bar.Timestamp,
			ChangePercent: bar.Close.Div(base).Sub(one).Mul(hundred),
		})
	}
	return points, nil
}
