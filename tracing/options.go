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

import "io"

// Option defines functional options for Provider configuration.
type Option func(*Provider)

// WithServiceName sets the service name reported as 'service.name'.
func WithServiceName(name string) Option {
	return func(p *Provider) {
		p.serviceName = name
	}
}

// WithServiceVersion sets the service version reported as 'service.version'.
func WithServiceVersion(version string) Option {
	return func(p *Provider) {
		p.serviceVersion = version
	}
}

// WithOTLPEndpoint sets the collector endpoint of the OTLP exporters.
// For OTLP over HTTP a "http://" prefix also disables TLS.
//
// Example:
//
//	tracing.New(ctx, tracing.OTLPHTTP, tracing.WithOTLPEndpoint("http://localhost:4318"))
func WithOTLPEndpoint(endpoint string) Option {
	return func(p *Provider) {
		p.endpoint = endpoint
	}
}

// WithInsecure disables TLS for the OTLP exporters.
func WithInsecure() Option {
	return func(p *Provider) {
		p.insecure = true
	}
}

// WithWriter sets the destination of the stdout exporter.
// The default is os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(p *Provider) {
		p.writer = w
	}
}

// WithGlobalTracerProvider registers the provider as the global
// OpenTelemetry tracer provider via otel.SetTracerProvider().
// By default, providers are not registered globally.
func WithGlobalTracerProvider() Option {
	return func(p *Provider) {
		p.registerGlobal = true
	}
}
