package main

import (
	"context"
	"errors"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/web"
)

// initTelemetry starts the OTel providers enabled in cfg and creates the
// domain metric instruments. The returned shutdown flushes every provider
// that was started.
func initTelemetry(ctx context.Context, cfg config.Config) (func(context.Context) error, error) {
	var shutdowns []func(context.Context) error

	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	if cfg.TracesEnabled {
		s, err := observability.InitTracing(ctx, cfg.ServiceName)
		if err != nil {
			return shutdown, err
		}
		shutdowns = append(shutdowns, s)
	}

	if cfg.MetricsEnabled {
		s, err := observability.InitMetrics(ctx, cfg.ServiceName)
		if err != nil {
			return shutdown, err
		}
		shutdowns = append(shutdowns, s)
	}

	if cfg.LogsEnabled {
		s, err := observability.InitLogging(ctx, cfg.ServiceName)
		if err != nil {
			return shutdown, err
		}
		shutdowns = append(shutdowns, s)
	}

	// Add new domain InitMetrics calls here as the project grows.
	if err := calculator.InitMetrics(); err != nil {
		return shutdown, err
	}
	if err := web.InitMetrics(); err != nil {
		return shutdown, err
	}

	return shutdown, nil
}
