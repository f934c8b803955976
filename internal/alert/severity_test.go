package alert

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketalert/internal/marketdata"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestClassify_Tiers(t *testing.T) {
	threshold := dec("1.0")

	tests := []struct {
		name          string
		percentChange string
		wantTriggered bool
		wantSeverity  Severity
	}{
		{"below threshold", "-0.5", false, 0},
		{"just under threshold", "-0.99", false, 0},
		{"at threshold", "-1.0", true, SeverityLow},
		{"upper edge of low", "-1.99", true, SeverityLow},
		{"at medium boundary", "-2.0", true, SeverityMedium},
		{"upper edge of medium", "-2.99", true, SeverityMedium},
		{"at high boundary", "-3.0", true, SeverityHigh},
		{"deep drop", "-10.0", true, SeverityHigh},
		{"no move", "0", false, 0},
		{"gain does not trigger", "3.0", false, 0},
		{"large gain does not trigger", "50.0", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			severity, triggered, err := Classify(dec(tt.percentChange), threshold)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTriggered, triggered)
			assert.Equal(t, tt.wantSeverity, severity)
		})
	}
}

func TestClassify_ScalesWithThreshold(t *testing.T) {
	// A 3% drop is HIGH against a 1% threshold but LOW against a 2% one.
	severity, triggered, err := Classify(dec("-3.0"), dec("2.0"))
	require.NoError(t, err)
	assert.True(t, triggered)
	assert.Equal(t, SeverityLow, severity)
}

func TestClassify_InvalidThreshold(t *testing.T) {
	for _, threshold := range []string{"0", "-1.0"} {
		t.Run(threshold, func(t *testing.T) {
			_, triggered, err := Classify(dec("-5.0"), dec(threshold))
			require.Error(t, err)
			assert.False(t, triggered)

			var mdErr *marketdata.Error
			require.True(t, errors.As(err, &mdErr))
			assert.Equal(t, marketdata.KindInvalidArgument, mdErr.Kind)
		})
	}
}

func TestClassify_Monotonic(t *testing.T) {
	threshold := dec("1.5")
	drops := []string{"-0.1", "-0.5", "-1.5", "-2.0", "-2.9", "-3.0", "-4.4", "-4.5", "-7.0", "-100.0"}

	var last Severity
	for _, drop := range drops {
		severity, triggered, err := Classify(dec(drop), threshold)
		require.NoError(t, err)
		if !triggered {
			severity = 0
		}
		assert.GreaterOrEqual(t, severity, last, "severity decreased at %s", drop)
		last = severity
	}
	assert.Equal(t, SeverityHigh, last)
}

func TestSeverity_JSON(t *testing.T) {
	for _, s := range []Severity{SeverityLow, SeverityMedium, SeverityHigh} {
		data, err := s.MarshalJSON()
		require.NoError(t, err)

		var back Severity
		require.NoError(t, back.UnmarshalJSON(data))
		assert.Equal(t, s, back)
	}

	var s Severity
	assert.Error(t, s.UnmarshalJSON([]byte(`"CRITICAL"`)))
}
