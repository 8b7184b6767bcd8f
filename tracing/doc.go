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

// Package tracing builds OpenTelemetry tracer providers for resolvers.
//
// A [Provider] owns an SDK tracer provider wired to one exporter: stdout
// for local debugging, OTLP over gRPC or OTLP over HTTP for collectors.
// Hand its [Provider.TracerProvider] to [reverse.WithTracerProvider] so
// every resolution is recorded as a "reverse.Resolve" span:
//
//	tp, err := tracing.New(ctx, tracing.OTLP,
//	    tracing.WithOTLPEndpoint("localhost:4317"),
//	    tracing.WithInsecure(),
//	    tracing.WithServiceName("links"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tp.Shutdown(context.Background())
//
//	res := reverse.MustNew(
//	    reverse.WithLookup(routes),
//	    reverse.WithTracerProvider(tp.TracerProvider()),
//	)
package tracing
