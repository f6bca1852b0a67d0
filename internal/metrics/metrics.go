// Package metrics exposes delivery and match counters through OpenTelemetry,
// scraped in Prometheus format.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/maxviazov/cricket-scoring-service/internal/model"
)

const (
	meterName = "github.com/maxviazov/cricket-scoring-service"

	metricDeliveriesTotal = "cricket.deliveries.total"
	metricRunsTotal       = "cricket.runs.total"
	metricWicketsTotal    = "cricket.wickets.total"
	metricMatchesFinished = "cricket.matches.finished.total"

	attrFormat  = "format"
	attrType    = "ball_type"
	attrKind    = "wicket_kind"
	attrOutcome = "outcome"
)

// Recorder is a match observer counting deliveries, runs, wickets and finished matches.
type Recorder struct {
	deliveries metric.Int64Counter
	runs       metric.Int64Counter
	wickets    metric.Int64Counter
	finished   metric.Int64Counter
}

// NewRecorder creates the instruments on mt.
func NewRecorder(mt metric.Meter) (*Recorder, error) {
	var errs []error
	counter := func(name, desc, unit string) metric.Int64Counter {
		c, err := mt.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
		if err != nil {
			errs = append(errs, fmt.Errorf("create %s: %w", name, err))
		}
		return c
	}

	r := &Recorder{
		deliveries: counter(metricDeliveriesTotal, "Deliveries accepted", "{delivery}"),
		runs:       counter(metricRunsTotal, "Runs scored including extras", "{run}"),
		wickets:    counter(metricWicketsTotal, "Wickets fallen", "{wicket}"),
		finished:   counter(metricMatchesFinished, "Matches completed or abandoned", "{match}"),
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Recorder) OnDelivery(info model.MatchInfo, d model.Delivery) {
	ctx := context.Background()
	format := attribute.String(attrFormat, string(info.Format))
	r.deliveries.Add(ctx, 1, metric.WithAttributes(format, attribute.String(attrType, string(d.Type))))
	if runs := d.TotalRuns(); runs > 0 {
		r.runs.Add(ctx, int64(runs), metric.WithAttributes(format))
	}
	if d.IsWicket {
		r.wickets.Add(ctx, 1, metric.WithAttributes(format, attribute.String(attrKind, string(d.WicketKind))))
	}
}

func (r *Recorder) OnMatchEnd(_ string, format model.Format, result model.MatchResult) {
	r.finished.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String(attrFormat, string(format)),
		attribute.String(attrOutcome, string(result.Outcome)),
	))
}

// PrometheusProvider builds a MeterProvider backed by a Prometheus exporter and
// the http.Handler serving its /metrics scrape endpoint. Each call uses its own
// registry so repeated construction never collides.
func PrometheusProvider() (*sdkmetric.MeterProvider, http.Handler, error) {
	registry := prometheus.NewRegistry()
	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, nil, fmt.Errorf("create prometheus exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	return mp, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), nil
}

// Meter returns the service meter from mp.
func Meter(mp metric.MeterProvider) metric.Meter { return mp.Meter(meterName) }
