package services

import (
	"context"
	"net/http"

	"github.com/mudler/xlog"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	metricApi "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsService records API timings and failures and exposes them in the
// Prometheus text format.
type MetricsService struct {
	Meter           metric.Meter
	ApiTimeMetric   metric.Float64Histogram
	ApiErrorsMetric metric.Int64Counter

	provider *metricApi.MeterProvider
	registry *promclient.Registry
}

func (m *MetricsService) ObserveAPICall(method string, path string, duration float64) {
	opts := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
	)
	m.ApiTimeMetric.Record(context.Background(), duration, opts)
}

func (m *MetricsService) ObserveAPIError(path string, kind string) {
	opts := metric.WithAttributes(
		attribute.String("path", path),
		attribute.String("kind", kind),
	)
	m.ApiErrorsMetric.Add(context.Background(), 1, opts)
}

// Handler serves the collected metrics.
func (m *MetricsService) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// NewMetricsService bootstraps the OpenTelemetry pipeline for Prometheus export.
// Each service owns its registry. If it does not return an error, make sure to
// call Shutdown for proper cleanup.
func NewMetricsService() (*MetricsService, error) {
	registry := promclient.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, err
	}
	provider := metricApi.NewMeterProvider(metricApi.WithReader(exporter))
	meter := provider.Meter("github.com/phonolab/phonolab")

	apiTimeMetric, err := meter.Float64Histogram("api_call", metric.WithDescription("api calls"), metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}
	apiErrorsMetric, err := meter.Int64Counter("api_errors", metric.WithDescription("failed api calls by error kind"))
	if err != nil {
		return nil, err
	}

	return &MetricsService{
		Meter:           meter,
		ApiTimeMetric:   apiTimeMetric,
		ApiErrorsMetric: apiErrorsMetric,
		provider:        provider,
		registry:        registry,
	}, nil
}

func (m *MetricsService) Shutdown() error {
	xlog.Debug("Shutting down metrics service")
	return m.provider.Shutdown(context.Background())
}
