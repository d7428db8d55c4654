package web

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

var (
	keyPresses   metric.Int64Counter = noop.Int64Counter{}
	errorCounter metric.Int64Counter = noop.Int64Counter{}
)

// InitMetrics registers the keypad page instruments. Call once at startup
// after observability.InitMetrics.
func InitMetrics() error {
	meter := otel.Meter("web")

	var err error

	keyPresses, err = meter.Int64Counter("web.key_presses.total",
		metric.WithDescription("Keypad buttons pressed through the HTML form"),
		metric.WithUnit("{press}"),
	)
	if err != nil {
		return fmt.Errorf("creating key press counter: %w", err)
	}

	errorCounter, err = meter.Int64Counter("web.errors.total",
		metric.WithDescription("Rejected keypad form submissions"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	return nil
}
