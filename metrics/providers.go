// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// Exporter names a metrics exporter.
type Exporter string

// Available exporters.
const (
	// Prometheus exposes metrics for scraping through [Provider.Handler].
	Prometheus Exporter = "prometheus"
	// Stdout periodically writes metrics as JSON.
	Stdout Exporter = "stdout"
	// OTLPHTTP periodically pushes metrics to a collector over HTTP.
	OTLPHTTP Exporter = "otlp-http"
)

// DefaultExportInterval is the push interval of the periodic exporters.
const DefaultExportInterval = 30 * time.Second

var (
	// ErrNilRegistry is returned when [WithRegistry] is given a nil registry.
	ErrNilRegistry = errors.New("prometheus registry cannot be nil")

	// ErrUnsupportedExporter is returned for an unknown exporter name.
	ErrUnsupportedExporter = errors.New("unsupported metrics exporter")
)

// Provider is an OpenTelemetry meter provider bound to one exporter.
//
// Thread-safety: all methods are safe for concurrent use.
type Provider struct {
	exporter       Exporter
	registry       *promclient.Registry
	serviceName    string
	serviceVersion string
	registerGlobal bool
	customRegistry bool
	writer         io.Writer
	endpoint       string
	interval       time.Duration

	meterProvider *sdkmetric.MeterProvider
	handler       http.Handler
	shutdown      atomic.Bool
}

func newProvider(exporter Exporter, opts []Option) *Provider {
	p := &Provider{
		exporter:    exporter,
		serviceName: "rivaas-reverse",
		writer:      os.Stdout,
		interval:    DefaultExportInterval,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// New creates a provider for the named exporter.
// The context is used by the OTLP exporter to set up its client.
//
// Example:
//
//	mp, err := metrics.New(ctx, metrics.OTLPHTTP, metrics.WithOTLPEndpoint("http://collector:4318"))
func New(ctx context.Context, exporter Exporter, opts ...Option) (*Provider, error) {
	switch exporter {
	case Prometheus:
		return NewPrometheus(opts...)
	case Stdout:
		return NewStdout(opts...)
	case OTLPHTTP:
		return NewOTLPHTTP(ctx, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExporter, exporter)
	}
}

// ParseExporter returns the exporter named s.
func ParseExporter(s string) (Exporter, error) {
	switch e := Exporter(strings.ToLower(s)); e {
	case Prometheus, Stdout, OTLPHTTP:
		return e, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedExporter, s)
	}
}

// NewPrometheus creates a [Provider] exporting to a Prometheus registry.
//
// Example:
//
//	prom, err := metrics.NewPrometheus(metrics.WithServiceName("links"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer prom.Shutdown(context.Background())
func NewPrometheus(opts ...Option) (*Provider, error) {
	p := newProvider(Prometheus, opts)

	if p.customRegistry && p.registry == nil {
		return nil, ErrNilRegistry
	}
	if p.registry == nil {
		// A private registry avoids collisions with the global one.
		p.registry = promclient.NewRegistry()
	}

	exporter, err := prometheus.New(prometheus.WithRegisterer(p.registry))
	if err != nil {
		return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	p.handler = promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
	p.start(exporter)

	return p, nil
}

// NewStdout creates a [Provider] that writes metrics as JSON every export
// interval.
func NewStdout(opts ...Option) (*Provider, error) {
	p := newProvider(Stdout, opts)

	exporter, err := stdoutmetric.New(stdoutmetric.WithWriter(p.writer))
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
	}

	p.start(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(p.interval)))

	return p, nil
}

// NewOTLPHTTP creates a [Provider] that pushes metrics to an OTLP collector
// over HTTP every export interval. An endpoint with an "http://" prefix
// disables TLS.
func NewOTLPHTTP(ctx context.Context, opts ...Option) (*Provider, error) {
	p := newProvider(OTLPHTTP, opts)

	var hopts []otlpmetrichttp.Option
	if p.endpoint != "" {
		endpoint := p.endpoint
		insecure := false
		if trimmed, ok := strings.CutPrefix(endpoint, "http://"); ok {
			endpoint = trimmed
			insecure = true
		} else if trimmed, ok := strings.CutPrefix(endpoint, "https://"); ok {
			endpoint = trimmed
		}
		if idx := strings.Index(endpoint, "/"); idx != -1 {
			endpoint = endpoint[:idx]
		}
		hopts = append(hopts, otlpmetrichttp.WithEndpoint(endpoint))
		if insecure {
			hopts = append(hopts, otlpmetrichttp.WithInsecure())
		}
	}

	exporter, err := otlpmetrichttp.New(ctx, hopts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	p.start(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(p.interval)))

	return p, nil
}

// start builds the SDK meter provider around reader.
func (p *Provider) start(reader sdkmetric.Reader) {
	attrs := []attribute.KeyValue{attribute.String("service.name", p.serviceName)}
	if p.serviceVersion != "" {
		attrs = append(attrs, attribute.String("service.version", p.serviceVersion))
	}

	p.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(resource.NewSchemaless(attrs...)),
	)

	if p.registerGlobal {
		otel.SetMeterProvider(p.meterProvider)
	}
}

// MustNewPrometheus is like [NewPrometheus] but panics on error.
func MustNewPrometheus(opts ...Option) *Provider {
	p, err := NewPrometheus(opts...)
	if err != nil {
		panic(fmt.Sprintf("metrics initialization failed: %v", err))
	}

	return p
}

// MeterProvider returns the provider to pass to reverse.WithMeterProvider.
func (p *Provider) MeterProvider() metric.MeterProvider {
	return p.meterProvider
}

// Exporter returns the exporter the provider was built with.
func (p *Provider) Exporter() Exporter {
	return p.exporter
}

// Registry returns the Prometheus registry the metrics are exported to,
// or nil for push exporters.
func (p *Provider) Registry() *promclient.Registry {
	return p.registry
}

// Handler returns the HTTP handler serving the Prometheus exposition
// format, or nil for push exporters.
func (p *Provider) Handler() http.Handler {
	return p.handler
}

// Shutdown flushes and stops the meter provider. It is safe to call more
// than once; later calls are no-ops.
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.shutdown.CompareAndSwap(false, true) {
		return nil
	}

	if err := p.meterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("meter provider shutdown: %w", err)
	}

	return nil
}
