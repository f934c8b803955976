// Package api exposes the alert engine and comparison fetcher over HTTP.
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"marketalert/internal/alert"
	"marketalert/internal/compare"
	"marketalert/internal/logger"
	"marketalert/internal/marketdata"
)

// Handler handles HTTP requests for the finance endpoints.
type Handler struct {
	provider    marketdata.Provider
	engine      *alert.Engine
	comparer    *compare.Comparer
	log         *logger.Logger
	defaultDrop decimal.Decimal
}

// NewHandler creates a new Handler.
func NewHandler(provider marketdata.Provider, engine *alert.Engine, comparer *compare.Comparer, log *logger.Logger, defaultDrop decimal.Decimal) *Handler {
	return &Handler{
		provider:    provider,
		engine:      engine,
		comparer:    comparer,
		log:         log,
		defaultDrop: defaultDrop,
	}
}

// RegisterRoutes registers the finance routes on the Echo group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/price", h.GetPrice)
	g.GET("/history", h.GetHistory)
	g.GET("/fundamentals", h.GetFundamentals)
	g.POST("/alert", h.RunAlert)
	g.POST("/compare", h.RunComparison)
}

// GetPrice returns the latest price snapshot for a symbol.
func (h *Handler) GetPrice(c echo.Context) error {
	symbol := c.QueryParam("symbol")
	if symbol == "" {
		return errorJSON(c, marketdata.NewInvalidArgument("symbol query parameter is required"))
	}

	res := h.provider.Price(c.Request().Context(), symbol)
	if !res.OK {
		return errorJSON(c, res.Err)
	}
	return c.JSON(http.StatusOK, res.Value)
}

// GetHistory returns daily OHLCV bars for a symbol.
func (h *Handler) GetHistory(c echo.Context) error {
	symbol := c.QueryParam("symbol")
	if symbol == "" {
		return errorJSON(c, marketdata.NewInvalidArgument("symbol query parameter is required"))
	}
	rng := marketdata.Range(c.QueryParam("range"))

	res := h.provider.History(c.Request().Context(), symbol, rng)
	if !res.OK {
		return errorJSON(c, res.Err)
	}
	return c.JSON(http.StatusOK, historyResponse{Symbol: marketdata.NormalizeSymbol(symbol), Bars: res.Value})
}

// GetFundamentals returns summary fundamentals for a symbol.
func (h *Handler) GetFundamentals(c echo.Context) error {
	symbol := c.QueryParam("symbol")
	if symbol == "" {
		return errorJSON(c, marketdata.NewInvalidArgument("symbol query parameter is required"))
	}

	res := h.provider.Fundamentals(c.Request().Context(), symbol)
	if !res.OK {
		return errorJSON(c, res.Err)
	}
	return c.JSON(http.StatusOK, res.Value)
}

// RunAlert runs one alert workflow for a symbol and drop threshold.
func (h *Handler) RunAlert(c echo.Context) error {
	var req alertRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, marketdata.NewInvalidArgument("invalid request payload"))
	}
	if req.Symbol == "" {
		return errorJSON(c, marketdata.NewInvalidArgument("symbol is required"))
	}

	drop := req.DropPercent
	if drop.IsZero() {
		drop = h.defaultDrop
	}

	report, err := h.engine.Run(c.Request().Context(), req.Symbol, drop)
	if err != nil {
		return errorJSON(c, err)
	}

	resp := alertResponse{
		Payload:   report.Payload,
		Delivered: report.Delivered,
	}
	if report.DeliveryErr != nil {
		resp.DeliveryError = report.DeliveryErr.Error()
	}
	return c.JSON(http.StatusOK, resp)
}

// RunComparison runs one concurrent comparison across the requested symbols.
func (h *Handler) RunComparison(c echo.Context) error {
	var req compareRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, marketdata.NewInvalidArgument("invalid request payload"))
	}

	entries, err := h.comparer.Compare(c.Request().Context(), req.Symbols)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, compareResponse{Entries: entries})
}

// errorJSON writes the typed error body with the status its kind maps to.
func errorJSON(c echo.Context, err error) error {
	if mdErr, ok := err.(*marketdata.Error); ok {
		return c.JSON(statusFor(mdErr.Kind), echo.Map{"error": mdErr})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": echo.Map{
		"kind":    "INTERNAL",
		"message": err.Error(),
	}})
}

func statusFor(kind marketdata.ErrorKind) int {
	switch kind {
	case marketdata.KindNotFound:
		return http.StatusNotFound
	case marketdata.KindInvalidArgument, marketdata.KindNoSymbols, marketdata.KindTooManySymbols:
		return http.StatusBadRequest
	case marketdata.KindDivisionByZero:
		return http.StatusUnprocessableEntity
	case marketdata.KindUpstreamUnavailable, marketdata.KindMalformedResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
