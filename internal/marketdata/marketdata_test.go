package marketdata

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSymbol(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"AAPL", "AAPL"},
		{"aapl", "AAPL"},
		{"  msft  ", "MSFT"},
		{"RELIANCE", "RELIANCE.NS"},
		{"reliance", "RELIANCE.NS"},
		{"INFOSYS", "INFY.NS"},
		{"JIO", "RELIANCE.NS"},
		{"UNKNOWNCO", "UNKNOWNCO"},
		{"BRK-B", "BRK-B"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSymbol(tt.in))
		})
	}
}

func TestResultEnvelope(t *testing.T) {
	ok := Ok(42)
	assert.True(t, ok.OK)
	assert.Equal(t, 42, ok.Value)
	assert.Nil(t, ok.Err)

	fail := Fail[int](NewNotFound("BADSYM"))
	assert.False(t, fail.OK)
	assert.Zero(t, fail.Value)
	require.NotNil(t, fail.Err)
	assert.Equal(t, KindNotFound, fail.Err.Kind)
}

func TestErrorFormatting(t *testing.T) {
	err := NewTooManySymbols(7, 5)
	assert.Equal(t, KindTooManySymbols, err.Kind)
	assert.Equal(t, "TOO_MANY_SYMBOLS: got 7 symbols, maximum is 5", err.Error())
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewUpstreamUnavailable(cause)

	assert.Equal(t, KindUpstreamUnavailable, err.Kind)
	assert.True(t, errors.Is(err, cause))
}
