package yahoo

// chartResponse is the top-level container for the v8 chart endpoint.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"chart"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResult struct {
	Meta       chartMeta `json:"meta"`
	Timestamp  []int64   `json:"timestamp"`
	Indicators struct {
		Quote []chartQuote `json:"quote"`
	} `json:"indicators"`
}

type chartMeta struct {
	Currency           string  `json:"currency"`
	Symbol             string  `json:"symbol"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
	ChartPreviousClose float64 `json:"chartPreviousClose"`
	RegularMarketTime  int64   `json:"regularMarketTime"`
}

// chartQuote carries parallel OHLCV series. Null entries decode to zero.
type chartQuote struct {
	Open   []float64 `json:"open"`
	High   []float64 `json:"high"`
	Low    []float64 `json:"low"`
	Close  []float64 `json:"close"`
	Volume []int64   `json:"volume"`
}

// quoteSummaryResponse is the top-level container for the v10 quoteSummary
// endpoint. Numeric fields arrive as {raw, fmt} pairs; only raw is used.
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []quoteSummaryResult `json:"result"`
		Error  *apiError            `json:"error"`
	} `json:"quoteSummary"`
}

type quoteSummaryResult struct {
	Price struct {
		Currency  string      `json:"currency"`
		MarketCap yahooNumber `json:"marketCap"`
	} `json:"price"`
	SummaryDetail struct {
		TrailingPE       yahooNumber `json:"trailingPE"`
		DividendYield    yahooNumber `json:"dividendYield"`
		FiftyTwoWeekHigh yahooNumber `json:"fiftyTwoWeekHigh"`
		FiftyTwoWeekLow  yahooNumber `json:"fiftyTwoWeekLow"`
	} `json:"summaryDetail"`
	DefaultKeyStatistics struct {
		TrailingEPS yahooNumber `json:"trailingEps"`
	} `json:"defaultKeyStatistics"`
}

type yahooNumber struct {
	Raw float64 `json:"raw"`
	Fmt string  `json:"fmt"`
}
