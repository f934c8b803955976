package marketdata

import "strings"

// symbolAliases maps common company shorthand to exchange-qualified tickers.
// Unknown symbols pass through untouched; the access layer performs no
// exchange validation.
var symbolAliases = map[string]string{
	// Major Indian banks
	"SBI":   "SBIN.NS",
	"HDFC":  "HDFCBANK.NS",
	"ICICI": "ICICIBANK.NS",
	"AXIS":  "AXISBANK.NS",
	"KOTAK": "KOTAKBANK.NS",

	// IT
	"INFOSYS": "INFY.NS",
	"TCS":     "TCS.NS",
	"WIPRO":   "WIPRO.NS",
	"HCL":     "HCLTECH.NS",

	// Conglomerates
	"RELIANCE": "RELIANCE.NS",
	"JIO":      "RELIANCE.NS",
	"LT":       "LT.NS",
	"TITAN":    "TITAN.NS",

	// Consumer
	"ITC":    "ITC.NS",
	"HUL":    "HINDUNILVR.NS",
	"NESTLE": "NESTLEIND.NS",
	"DMART":  "DMART.NS",

	// Autos
	"MARUTI":     "MARUTI.NS",
	"TATAMOTORS": "TATAMOTORS.NS",

	// Pharma
	"SUNPHARMA": "SUNPHARMA.NS",
	"CIPLA":     "CIPLA.NS",

	// Telecom
	"AIRTEL": "BHARTIARTL.NS",
}

// NormalizeSymbol trims whitespace, uppercases, and expands known aliases.
// An empty result means the input was not a usable symbol.
func NormalizeSymbol(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if mapped, ok := symbolAliases[s]; ok {
		return mapped
	}
	return s
}
