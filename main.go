package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/storekit/storefront/internal/application/checkout"
	"github.com/storekit/storefront/internal/config"
	"github.com/storekit/storefront/internal/domain/catalog"
	"github.com/storekit/storefront/internal/domain/pricing"
	domstore "github.com/storekit/storefront/internal/domain/store"
	"github.com/storekit/storefront/internal/infrastructure/httptransport"
	"github.com/storekit/storefront/internal/infrastructure/id"
	"github.com/storekit/storefront/internal/infrastructure/memory"
	"github.com/storekit/storefront/internal/infrastructure/observability/oteltrace"
	"github.com/storekit/storefront/internal/infrastructure/observability/prometrics"
	"github.com/storekit/storefront/internal/infrastructure/observability/telemetry"
	"github.com/storekit/storefront/internal/infrastructure/observability/zaplogger"
	"github.com/storekit/storefront/internal/infrastructure/outbox"
	"github.com/storekit/storefront/internal/infrastructure/stockwatch"
	"github.com/storekit/storefront/internal/observability"
	"github.com/storekit/storefront/internal/presentation/cli"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := zaplogger.New(
		observability.F("service", cfg.ServiceName),
		observability.F("env", cfg.Env),
	)

	metrics := prometrics.New(cfg.ServiceName, "")
	counters := map[string]observability.Counter{
		observability.MUsecaseRequests: metrics.Counter(
			observability.MUsecaseRequests,
			"Total number of use case invocations.",
			"use_case", "outcome",
		),
		observability.MHTTPRequests: metrics.Counter(
			observability.MHTTPRequests,
			"Total number of HTTP requests.",
			"method", "path", "status",
		),
		observability.MProductsSoldOut: metrics.Counter(
			observability.MProductsSoldOut,
			"Count of products driven out of stock by orders.",
			"product",
		),
	}
	histograms := map[string]observability.Histogram{
		observability.MUsecaseDuration: metrics.Histogram(
			observability.MUsecaseDuration,
			"Duration of use case execution in seconds.",
			prometheus.DefBuckets,
			"use_case",
		),
		observability.MHTTPRequestDuration: metrics.Histogram(
			observability.MHTTPRequestDuration,
			"Duration of HTTP requests in seconds.",
			prometheus.DefBuckets,
			"method", "path",
		),
		observability.MOrderTotal: metrics.Histogram(
			observability.MOrderTotal,
			"Charged totals of committed orders.",
			[]float64{10, 50, 100, 500, 1000, 5000},
			"use_case",
		),
	}
	tel := telemetry.New(oteltrace.New(cfg.ServiceName), logger, counters, histograms)

	st, err := bootstrapStore()
	if err != nil {
		logger.Error("catalog_bootstrap_failed", observability.F("error", err))
		os.Exit(1)
	}

	bus := outbox.NewBus(logger)
	bus.Start(context.Background())
	defer bus.Stop(context.Background())

	receipts := memory.NewReceiptRepository()
	checkoutService := checkout.NewService(st, receipts, id.NewUUIDGenerator(), bus, tel)

	watcher := stockwatch.New(bus, tel)
	watcher.Start()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Mode {
	case config.ModeCLI:
		shell := cli.NewShell(checkoutService, os.Stdin, os.Stdout)
		shell.Run(ctx)
	default:
		runHTTP(ctx, cfg, checkoutService, tel, logger)
	}
}

func runHTTP(ctx context.Context, cfg config.Config, checkoutService *checkout.Service, tel observability.Telemetry, logger observability.Logger) {
	handler := httptransport.NewHandler(checkoutService)
	observe := httptransport.ObservabilityMiddleware(tel)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", observe(handler.Router()))

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}

	go func() {
		logger.Info("http_server_start", observability.F("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", observability.F("error", err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_server_shutdown_error", observability.F("error", err))
		return
	}
	logger.Info("http_server_stopped")
}

// bootstrapStore seeds the catalog so every product variant and every
// promotion rule is live from the first request.
func bootstrapStore() (*domstore.Store, error) {
	macbook, err := catalog.NewStandard("MacBook Air M2", 1450, 100)
	if err != nil {
		return nil, err
	}
	earbuds, err := catalog.NewStandard("Bose QuietComfort Earbuds", 250, 500)
	if err != nil {
		return nil, err
	}
	pixel, err := catalog.NewStandard("Google Pixel 7", 500, 250)
	if err != nil {
		return nil, err
	}
	license, err := catalog.NewNonStocked("Windows License", 125)
	if err != nil {
		return nil, err
	}
	shipping, err := catalog.NewLimited("Shipping", 10, 250, 1)
	if err != nil {
		return nil, err
	}

	macbook.SetPromotion(pricing.NewSecondUnitHalfPrice())
	earbuds.SetPromotion(pricing.NewEveryThirdFree())
	thirtyOff, err := pricing.NewPercentOff(30)
	if err != nil {
		return nil, err
	}
	license.SetPromotion(thirtyOff)

	return domstore.New(macbook, earbuds, pixel, license, shipping)
}
