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

package tracing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/trace"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Exporter names a span exporter.
type Exporter string

// Available exporters.
const (
	// Noop records spans without exporting them.
	Noop Exporter = "noop"
	// Stdout writes spans as pretty-printed JSON.
	Stdout Exporter = "stdout"
	// OTLP exports spans to a collector over gRPC.
	OTLP Exporter = "otlp"
	// OTLPHTTP exports spans to a collector over HTTP.
	OTLPHTTP Exporter = "otlp-http"
)

// ErrUnsupportedExporter is returned for an unknown exporter name.
var ErrUnsupportedExporter = errors.New("unsupported tracing exporter")

// ParseExporter returns the exporter named s.
func ParseExporter(s string) (Exporter, error) {
	switch e := Exporter(strings.ToLower(s)); e {
	case Noop, Stdout, OTLP, OTLPHTTP:
		return e, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedExporter, s)
	}
}

// Provider is an SDK tracer provider bound to one exporter.
type Provider struct {
	exporter       Exporter
	serviceName    string
	serviceVersion string
	endpoint       string
	insecure       bool
	writer         io.Writer
	registerGlobal bool

	tp       *sdktrace.TracerProvider
	shutdown atomic.Bool
}

// New creates a tracer provider for exporter.
// The context is used by the OTLP exporters to set up their clients.
func New(ctx context.Context, exporter Exporter, opts ...Option) (*Provider, error) {
	p := &Provider{
		exporter:       exporter,
		serviceName:    "rivaas-reverse",
		serviceVersion: "dev",
		writer:         os.Stdout,
	}
	for _, opt := range opts {
		opt(p)
	}

	sp, err := p.newSpanProcessor(ctx)
	if err != nil {
		return nil, err
	}

	tpOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(p.resource())}
	if sp != nil {
		tpOpts = append(tpOpts, sdktrace.WithSpanProcessor(sp))
	}
	p.tp = sdktrace.NewTracerProvider(tpOpts...)

	if p.registerGlobal {
		otel.SetTracerProvider(p.tp)
	}

	return p, nil
}

// MustNew creates a tracer provider and panics on error.
func MustNew(ctx context.Context, exporter Exporter, opts ...Option) *Provider {
	p, err := New(ctx, exporter, opts...)
	if err != nil {
		panic(fmt.Sprintf("tracing.MustNew: %v", err))
	}

	return p
}

func (p *Provider) newSpanProcessor(ctx context.Context) (sdktrace.SpanProcessor, error) {
	switch p.exporter {
	case Noop:
		return nil, nil
	case Stdout:
		exp, err := stdouttrace.New(stdouttrace.WithWriter(p.writer), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
		}
		// Synchronous export keeps output ordered with the resolutions.
		return sdktrace.NewSimpleSpanProcessor(exp), nil
	case OTLP:
		var opts []otlptracegrpc.Option
		if p.endpoint != "" {
			opts = append(opts, otlptracegrpc.WithEndpoint(p.endpoint))
		}
		if p.insecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		exp, err := otlptracegrpc.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP gRPC exporter: %w", err)
		}
		return sdktrace.NewBatchSpanProcessor(exp), nil
	case OTLPHTTP:
		exp, err := otlptracehttp.New(ctx, p.httpOptions()...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP HTTP exporter: %w", err)
		}
		return sdktrace.NewBatchSpanProcessor(exp), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExporter, p.exporter)
	}
}

// httpOptions converts the endpoint into host:port form, taking TLS from
// its scheme.
func (p *Provider) httpOptions() []otlptracehttp.Option {
	var opts []otlptracehttp.Option

	insecure := p.insecure
	if p.endpoint != "" {
		endpoint := p.endpoint
		if trimmed, ok := strings.CutPrefix(endpoint, "http://"); ok {
			endpoint = trimmed
			insecure = true
		} else if trimmed, ok := strings.CutPrefix(endpoint, "https://"); ok {
			endpoint = trimmed
		}
		if idx := strings.Index(endpoint, "/"); idx != -1 {
			endpoint = endpoint[:idx]
		}
		opts = append(opts, otlptracehttp.WithEndpoint(endpoint))
	}
	if insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	return opts
}

func (p *Provider) resource() *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(p.serviceName),
		semconv.ServiceVersion(p.serviceVersion),
	)
}

// Exporter returns the exporter the provider was built with.
func (p *Provider) Exporter() Exporter {
	return p.exporter
}

// TracerProvider returns the provider to pass to reverse.WithTracerProvider.
func (p *Provider) TracerProvider() trace.TracerProvider {
	return p.tp
}

// Shutdown flushes pending spans and stops the exporter.
// It is safe to call more than once.
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.shutdown.CompareAndSwap(false, true) {
		return nil
	}

	return p.tp.Shutdown(ctx)
}
