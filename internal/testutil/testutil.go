package testutil

import (
	"context"
	"sync/atomic"

	"marketalert/internal/marketdata"
)

// MockProvider is a mock implementation of marketdata.Provider for testing.
// Unset funcs resolve to NOT_FOUND. Call counters are safe for concurrent use.
type MockProvider struct {
	PriceFunc        func(ctx context.Context, symbol string) marketdata.Result[marketdata.PriceSnapshot]
	FundamentalsFunc func(ctx context.Context, symbol string) marketdata.Result[marketdata.FundamentalsSnapshot]
	HistoryFunc      func(ctx context.Context, symbol string, rng marketdata.Range) marketdata.Result[[]marketdata.Bar]

	priceCalls        atomic.Int64
	fundamentalsCalls atomic.Int64
	historyCalls      atomic.Int64
}

// Price implements marketdata.Provider.
func (m *MockProvider) Price(ctx context.Context, symbol string) marketdata.Result[marketdata.PriceSnapshot] {
	m.priceCalls.Add(1)
	if m.PriceFunc != nil {
		return m.PriceFunc(ctx, symbol)
	}
	return marketdata.Fail[marketdata.PriceSnapshot](marketdata.NewNotFound(symbol))
}

// Fundamentals implements marketdata.Provider.
func (m *MockProvider) Fundamentals(ctx context.Context, symbol string) marketdata.Result[marketdata.FundamentalsSnapshot] {
	m.fundamentalsCalls.Add(1)
	if m.FundamentalsFunc != nil {
		return m.FundamentalsFunc(ctx, symbol)
	}
	return marketdata.Fail[marketdata.FundamentalsSnapshot](marketdata.NewNotFound(symbol))
}

// History implements marketdata.Provider.
func (m *MockProvider) History(ctx context.Context, symbol string, rng marketdata.Range) marketdata.Result[[]marketdata.Bar] {
	m.historyCalls.Add(1)
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, symbol, rng)
	}
	return marketdata.Fail[[]marketdata.Bar](marketdata.NewNotFound(symbol))
}

// Calls reports how many provider calls were made, in total.
func (m *MockProvider) Calls() int64 {
	return m.priceCalls.Load() + m.fundamentalsCalls.Load() + m.historyCalls.Load()
}
