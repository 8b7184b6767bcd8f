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

// Package metrics exports resolution metrics of a reverse.Resolver.
//
// The resolver records with the OpenTelemetry metric API. [Provider]
// wires an OpenTelemetry SDK meter provider to one exporter:
//
//   - [Prometheus]: a pull exporter with its own registry, scraped from
//     [Provider.Handler] without touching the global Prometheus registry
//   - [Stdout]: JSON written to an [io.Writer] every export interval
//   - [OTLPHTTP]: pushed to an OTLP collector every export interval
//
// Push exporters flush on [Provider.Shutdown].
//
// # Basic Usage
//
//	prom := metrics.MustNewPrometheus(metrics.WithServiceName("links"))
//	defer prom.Shutdown(context.Background())
//
//	res := reverse.MustNew(
//	    reverse.WithLookup(routes),
//	    reverse.WithMeterProvider(prom.MeterProvider()),
//	)
//
//	http.Handle("/metrics", prom.Handler())
//
// Push exporters are built the same way:
//
//	mp, err := metrics.New(ctx, metrics.OTLPHTTP,
//	    metrics.WithOTLPEndpoint("http://collector:4318"),
//	    metrics.WithExportInterval(10*time.Second),
//	)
//
// # Exported Metrics
//
//   - reverse_resolutions_total: resolutions by operation ("uri" or "url")
//   - reverse_resolution_errors_total: failures by operation and error kind
//   - reverse_resolution_duration_seconds: resolution latency histogram
//
// # Global State
//
// By default the meter provider is NOT registered globally. Use
// [WithGlobalMeterProvider] to call otel.SetMeterProvider.
package metrics
