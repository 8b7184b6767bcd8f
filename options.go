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

package reverse

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/reverse/query"
)

// Option configures a [Resolver].
type Option func(*Resolver)

// WithLookup sets the route lookup. It is required.
func WithLookup(l Lookup) Option {
	return func(r *Resolver) { r.lookup = l }
}

// WithRoutes is shorthand for WithLookup(MapLookup(routes)).
func WithRoutes(routes map[string]string) Option {
	return WithLookup(MapLookup(routes))
}

// WithLogger sets the logger. By default nothing is logged.
// Successful resolutions are logged at debug level, failures at warn level.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// WithQueryEncoder replaces the default [query.Form] encoder.
func WithQueryEncoder(enc query.Encoder) Option {
	return func(r *Resolver) { r.encoder = enc }
}

// WithMeterProvider records resolution metrics with the given provider.
// By default a no-op provider is used.
//
// Example:
//
//	prom, _ := metrics.NewPrometheus()
//	res := reverse.MustNew(
//	    reverse.WithLookup(table),
//	    reverse.WithMeterProvider(prom.MeterProvider()),
//	)
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(r *Resolver) { r.meterProvider = mp }
}

// WithTracerProvider records a span per resolution with the given provider.
// By default a no-op provider is used.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Resolver) { r.tracerProvider = tp }
}
