package api

import (
	"github.com/shopspring/decimal"

	"marketalert/internal/alert"
	"marketalert/internal/compare"
	"marketalert/internal/marketdata"
)

type alertRequest struct {
	Symbol      string          `json:"symbol"`
	DropPercent decimal.Decimal `json:"drop_percent"`
}

type alertResponse struct {
	Payload       *alert.Payload `json:"payload"`
	Delivered     bool           `json:"delivered"`
	DeliveryError string         `json:"delivery_error,omitempty"`
}

type compareRequest struct {
	Symbols []string `json:"symbols"`
}

type compareResponse struct {
	Entries []compare.Entry `json:"entries"`
}

type historyResponse struct {
	Symbol string           `json:"symbol"`
	Bars   []marketdata.Bar `json:"bars"`
}
