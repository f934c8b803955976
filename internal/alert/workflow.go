// Package alert implements the alert workflow engine: a strictly sequential
// fetch → analyze → classify → emit pipeline that turns one symbol and one
// drop threshold into a single alert decision.
package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"marketalert/internal/logger"
	"marketalert/internal/marketdata"
)

// Stage identifies where a workflow run currently is, or where it ended.
type Stage string

const (
	StageInit        Stage = "INIT"
	StageFetching    Stage = "FETCHING"
	StageAnalyzing   Stage = "ANALYZING"
	StageClassifying Stage = "CLASSIFYING"
	StageDone        Stage = "DONE"
	StageFailed      Stage = "FAILED"
)

// Payload is the terminal output of a workflow run. Severity is present only
// when Triggered is true.
type Payload struct {
	Symbol        string          `json:"symbol"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	PreviousClose decimal.Decimal `json:"previous_close"`
	PercentChange decimal.Decimal `json:"percent_change"`
	Severity      Severity        `json:"severity,omitempty"`
	Triggered     bool            `json:"triggered"`
	GeneratedAt   time.Time       `json:"generated_at"`
}

// Report is what a run hands back to the caller: the payload (nil when the
// run failed), the terminal stage, and the delivery outcome. Delivery failure
// never invalidates the alert decision, so it is carried separately.
type Report struct {
	Payload     *Payload `json:"payload,omitempty"`
	Stage       Stage    `json:"stage"`
	Delivered   bool     `json:"delivered"`
	DeliveryErr error    `json:"-"`
}

// Notifier is the external delivery channel. The engine fires it at most once
// per run, when the alert triggered, and only observes the acknowledgment.
type Notifier interface {
	Send(ctx context.Context, payload *Payload) error
}

var hundred = decimal.NewFromInt(100)

// Engine drives the alert workflow. It holds no state between runs.
type Engine struct {
	provider marketdata.Provider
	notifier Notifier
	log      *logger.Logger
	now      func() time.Time
}

// NewEngine creates an alert workflow engine. The notifier may be nil, in
// which case triggered alerts are only returned, never delivered.
func NewEngine(provider marketdata.Provider, notifier Notifier, log *logger.Logger) *Engine {
	return &Engine{
		provider: provider,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// Run executes one workflow for the given symbol and drop threshold
// (in percent, e.g. 1.0 means "alert on a 1% drop"). The pipeline is linear;
// a failure at any stage terminates the run without invoking later stages,
// and the engine never retries.
func (e *Engine) Run(ctx context.Context, symbol string, dropPercent decimal.Decimal) (*Report, error) {
	report := &Report{Stage: StageInit}

	if dropPercent.Sign() <= 0 {
		report.Stage = StageFailed
		return report, marketdata.NewInvalidArgument("drop percent must be positive")
	}

	report.Stage = StageFetching
	priceRes := e.provider.Price(ctx, symbol)
	if !priceRes.OK {
		report.Stage = StageFailed
		e.log.Debug("alert workflow fetch failed",
			logger.StringField("symbol", symbol),
			logger.ErrorField(priceRes.Err))
		return report, priceRes.Err
	}
	snapshot := priceRes.Value

	report.Stage = StageAnalyzing
	if snapshot.PreviousClose.IsZero() {
		report.Stage = StageFailed
		return report, marketdata.NewDivisionByZero(
			fmt.Sprintf("previous close for %s is zero", snapshot.Symbol))
	}
	percentChange := snapshot.CurrentPrice.Sub(snapshot.PreviousClose).
		Div(snapshot.PreviousClose).
		Mul(hundred)

	report.Stage = StageClassifying
	severity, triggered, err := Classify(percentChange, dropPercent)
	if err != nil {
		report.Stage = StageFailed
		return report, err
	}

	payload := &Payload{
		Symbol:        snapshot.Symbol,
		CurrentPrice:  snapshot.CurrentPrice,
		PreviousClose: snapshot.PreviousClose,
		PercentChange: percentChange,
		Triggered:     triggered,
		GeneratedAt:   e.now().UTC(),
	}
	if triggered {
		payload.Severity = severity
	}
	report.Payload = payload
	report.Stage = StageDone

	e.log.Debug("alert workflow finished",
		logger.StringField("symbol", payload.Symbol),
		logger.StringField("percent_change", percentChange.StringFixed(2)),
		logger.StringField("stage", string(report.Stage)))

	if triggered && e.notifier != nil {
		if err := e.notifier.Send(ctx, payload); err != nil {
			// The alert decision stands; delivery is reported separately.
			report.DeliveryErr = err
			e.log.Error("alert delivery failed",
				logger.StringField("symbol", payload.Symbol),
				logger.ErrorField(err))
		} else {
			report.Delivered = true
		}
	}

	return report, nil
}
