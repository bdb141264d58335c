// Package metrics records OpenTelemetry metrics for gateway API calls.
// Attributes are limited to method and classified outcome kind; identifiers,
// paths with user content, and free-text fields are never attached.
package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const scopeName = "github.com/crunchtools/gitlab-mcp/internal/gitlab"

// Recorder holds the instruments for gateway request metrics.
type Recorder struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

// NewRecorder creates a Recorder against the global meter provider.
func NewRecorder() (*Recorder, error) {
	meter := otel.Meter(scopeName)

	requests, err := meter.Int64Counter(
		"gitlab.client.requests",
		metric.WithDescription("API requests issued by the gateway, by method and outcome kind"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"gitlab.client.request.duration",
		metric.WithDescription("Full request/response duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &Recorder{requests: requests, duration: duration}, nil
}

// Record counts one gateway call and its duration.
func (r *Recorder) Record(ctx context.Context, method, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("outcome", outcome),
	)
	r.requests.Add(ctx, 1, attrs)
	r.duration.Record(ctx, elapsed.Seconds(), attrs)
}
