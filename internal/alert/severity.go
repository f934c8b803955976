package alert

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"marketalert/internal/marketdata"
)

// Severity classifies how large a detected price drop is.
// The tiers are totally ordered: SeverityLow < SeverityMedium < SeverityHigh.
type Severity int

const (
	SeverityLow Severity = iota + 1
	SeverityMedium
	SeverityHigh
)

// Tier boundaries as multiples of the user threshold. A drop of at least
// mediumMultiple*threshold is MEDIUM, at least highMultiple*threshold is HIGH.
const (
	mediumMultiple = 2
	highMultiple   = 3
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON encodes the severity as its tier name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a tier name back into a Severity.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "LOW":
		*s = SeverityLow
	case "MEDIUM":
		*s = SeverityMedium
	case "HIGH":
		*s = SeverityHigh
	default:
		return fmt.Errorf("unknown severity %q", name)
	}
	return nil
}

// Classify maps a measured percent change and a user threshold to a severity
// tier. It returns triggered=false unless the move is a drop whose magnitude
// meets or exceeds the threshold; the severity is only meaningful when
// triggered is true. A non-positive threshold is a caller contract violation.
func Classify(percentChange, threshold decimal.Decimal) (Severity, bool, error) {
	if threshold.Sign() <= 0 {
		return 0, false, marketdata.NewInvalidArgument("threshold must be positive")
	}

	// Only drops trigger.
	if percentChange.Sign() >= 0 {
		return 0, false, nil
	}

	magnitude := percentChange.Abs()
	switch {
	case magnitude.LessThan(threshold):
		return 0, false, nil
	case magnitude.LessThan(threshold.Mul(decimal.NewFromInt(mediumMultiple))):
		return SeverityLow, true, nil
	case magnitude.LessThan(threshold.Mul(decimal.NewFromInt(highMultiple))):
		return SeverityMedium, true, nil
	default:
		return SeverityHigh, true, nil
	}
}
