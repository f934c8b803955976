package notify

import (
	"fmt"
	"strings"

	"marketalert/internal/alert"
)

// FormatAlert renders an alert payload as a Markdown message.
func FormatAlert(p *alert.Payload) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🔔 *Price Alert: %s*\n\n", p.Symbol))
	b.WriteString(fmt.Sprintf("Severity: *%s*\n", p.Severity))
	b.WriteString(fmt.Sprintf("Change: *%s%%*\n", p.PercentChange.StringFixed(2)))
	b.WriteString(fmt.Sprintf("Current Price: %s\n", p.CurrentPrice.String()))
	b.WriteString(fmt.Sprintf("Previous Close: %s\n", p.PreviousClose.String()))
	b.WriteString(fmt.Sprintf("\n_%s_", p.GeneratedAt.Format("2006-01-02 15:04:05 MST")))

	return b.String()
}
