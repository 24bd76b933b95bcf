// Package main runs the currency-swap widget core as a service:
// - Price feed (periodic): refetches the table on an interval
// - State engine: conversion, selection and search state machines
// - Render boundary: state snapshots out and commands in over /ws,
//   Prometheus metrics on /metrics
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"currency-swap/internal/config"
	"currency-swap/internal/controller"
	"currency-swap/internal/observability"
	"currency-swap/internal/pricefeed"
	"currency-swap/internal/render"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Flags override the environment.
	feedURL := flag.String("feed-url", cfg.FeedURL, "Price feed endpoint")
	feedTimeout := flag.Duration("feed-timeout", cfg.FeedTimeout, "Price feed request timeout")
	refreshInterval := flag.Duration("refresh-interval", cfg.RefreshInterval, "Price table refresh interval")
	listenAddr := flag.String("listen-addr", cfg.ListenAddr, "HTTP listen address")
	flag.Parse()

	logger := log.New(os.Stdout, "[widget] ", log.LstdFlags)

	source := pricefeed.NewHTTPSource(*feedURL, &pricefeed.HTTPSourceConfig{
		Timeout: *feedTimeout,
	})

	sink := render.NewWSSink(nil, logger, nil)
	ctrl := controller.New(controller.Options{
		Source: source,
		Logger: logger,
		Sink:   sink,
	})
	sink.SetOps(ctrl)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// First fetch before serving; a failure just means an empty table
	// until the next tick.
	fetchCtx, cancel := context.WithTimeout(ctx, *feedTimeout)
	if err := ctrl.Refresh(fetchCtx); err != nil {
		logger.Printf("initial refresh: %v", err)
	}
	cancel()

	go refreshLoop(ctx, ctrl, *refreshInterval, *feedTimeout, logger)

	mux := http.NewServeMux()
	mux.Handle("/ws", sink)
	mux.Handle("/metrics", observability.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: *listenAddr, Handler: mux}

	go func() {
		<-ctx.Done()
		logger.Println("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		sink.Close()
	}()

	logger.Printf("listening on %s (feed %s, refresh every %s)", *listenAddr, *feedURL, *refreshInterval)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("serve: %v", err)
	}
}

// refreshLoop refetches the price table until the context ends. Fetch
// failures are already logged and counted by the controller; the loop
// simply tries again next tick.
func refreshLoop(ctx context.Context, ctrl *controller.Controller, interval, timeout time.Duration, logger *log.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fetchCtx, cancel := context.WithTimeout(ctx, timeout)
			_ = ctrl.Refresh(fetchCtx)
			cancel()
		}
	}
}
