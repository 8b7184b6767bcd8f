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
	"io"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
)

// Option configures a [Provider].
type Option func(*Provider)

// WithRegistry uses the given Prometheus registry instead of a fresh one.
// Useful to serve resolver metrics next to existing collectors.
func WithRegistry(reg *promclient.Registry) Option {
	return func(p *Provider) {
		p.registry = reg
		p.customRegistry = true
	}
}

// WithServiceName sets the service.name resource attribute.
func WithServiceName(name string) Option {
	return func(p *Provider) { p.serviceName = name }
}

// WithServiceVersion sets the service.version resource attribute.
func WithServiceVersion(version string) Option {
	return func(p *Provider) { p.serviceVersion = version }
}

// WithGlobalMeterProvider registers the meter provider as the global
// OpenTelemetry meter provider via otel.SetMeterProvider().
func WithGlobalMeterProvider() Option {
	return func(p *Provider) { p.registerGlobal = true }
}

// WithWriter sets the destination of the stdout exporter.
// The default is os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(p *Provider) { p.writer = w }
}

// WithOTLPEndpoint sets the collector endpoint of the OTLP exporter.
func WithOTLPEndpoint(endpoint string) Option {
	return func(p *Provider) { p.endpoint = endpoint }
}

// WithExportInterval sets the push interval of the periodic exporters.
// Non-positive values keep [DefaultExportInterval].
func WithExportInterval(d time.Duration) Option {
	return func(p *Provider) {
		if d > 0 {
			p.interval = d
		}
	}
}
