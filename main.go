package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"marketalert/internal/alert"
	"marketalert/internal/api"
	"marketalert/internal/compare"
	"marketalert/internal/config"
	"marketalert/internal/logger"
	"marketalert/internal/marketdata"
	"marketalert/internal/notify"
	"marketalert/internal/yahoo"
)

var (
	configPath  string
	dropPercent float64
)

type components struct {
	cfg      *config.Config
	log      *logger.Logger
	provider marketdata.Provider
	engine   *alert.Engine
	comparer *compare.Comparer
}

// build wires config, logger, provider, delivery channel, engine and comparer.
func build() (*components, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	provider := yahoo.NewClient(cfg.YahooBaseURL, cfg.FetchTimeout)

	var notifier alert.Notifier = notify.Noop{}
	if cfg.TelegramBotToken != "" {
		telegram, err := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize telegram notifier: %w", err)
		}
		notifier = telegram
	}

	engine := alert.NewEngine(provider, notifier, appLogger)
	comparer := compare.New(provider, appLogger, compare.Options{
		MaxSymbols:   cfg.MaxCompareSymbols,
		FetchTimeout: cfg.FetchTimeout,
		HistoryRange: marketdata.Range(cfg.CompareRange),
	})

	return &components{
		cfg:      cfg,
		log:      appLogger,
		provider: provider,
		engine:   engine,
		comparer: comparer,
	}, nil
}

var rootCmd = &cobra.Command{
	Use:   "marketalert",
	Short: "Threshold-crossing price alerts and multi-symbol comparisons",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the HTTP API server",
	RunE:  runServe,
}

var alertCmd = &cobra.Command{
	Use:   "alert SYMBOL",
	Short: "Runs one alert workflow and prints the result",
	Args:  cobra.ExactArgs(1),
	RunE:  runAlert,
}

var compareCmd = &cobra.Command{
	Use:   "compare SYMBOL[,SYMBOL...]",
	Short: "Runs one comparison across up to five symbols",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCompare,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	comp, err := build()
	if err != nil {
		return err
	}
	defer func() { _ = comp.log.Sync() }()

	handler := api.NewHandler(comp.provider, comp.engine, comp.comparer, comp.log,
		decimal.NewFromFloat(comp.cfg.DefaultDropPercent))

	e := echo.New()
	e.HideBanner = true
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	handler.RegisterRoutes(e.Group("/finance"))

	addr := fmt.Sprintf("%s:%d", comp.cfg.APIHost, comp.cfg.APIPort)
	go func() {
		comp.log.Info("starting HTTP server", logger.StringField("addr", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			comp.log.Error("HTTP server stopped", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()
	comp.log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func runAlert(cmd *cobra.Command, args []string) error {
	comp, err := build()
	if err != nil {
		return err
	}
	defer func() { _ = comp.log.Sync() }()

	drop := decimal.NewFromFloat(dropPercent)
	if drop.IsZero() {
		drop = decimal.NewFromFloat(comp.cfg.DefaultDropPercent)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	report, err := comp.engine.Run(ctx, args[0], drop)
	if err != nil {
		return err
	}
	return printJSON(report)
}

func runCompare(cmd *cobra.Command, args []string) error {
	comp, err := build()
	if err != nil {
		return err
	}
	defer func() { _ = comp.log.Sync() }()

	var symbols []string
	for _, arg := range args {
		for _, s := range strings.Split(arg, ",") {
			if s = strings.TrimSpace(s); s != "" {
				symbols = append(symbols, s)
			}
		}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	entries, err := comp.comparer.Compare(ctx, symbols)
	if err != nil {
		return err
	}
	return printJSON(entries)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	alertCmd.Flags().Float64Var(&dropPercent, "drop", 0, "drop threshold in percent (default from config)")

	rootCmd.AddCommand(serveCmd, alertCmd, compareCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
