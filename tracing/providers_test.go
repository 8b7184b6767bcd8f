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
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/reverse"
)

func TestParseExporter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Exporter
		wantErr bool
	}{
		{"noop", Noop, false},
		{"STDOUT", Stdout, false},
		{"otlp", OTLP, false},
		{"otlp-http", OTLPHTTP, false},
		{"jaeger", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseExporter(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedExporter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_UnsupportedExporter(t *testing.T) {
	t.Parallel()

	_, err := New(t.Context(), Exporter("zipkin"))
	require.ErrorIs(t, err, ErrUnsupportedExporter)
	assert.Panics(t, func() { MustNew(t.Context(), Exporter("zipkin")) })
}

func TestStdout_ExportsResolutionSpans(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p, err := New(t.Context(), Stdout, WithWriter(&buf), WithServiceName("links"))
	require.NoError(t, err)

	res, err := reverse.New(
		reverse.WithRoutes(map[string]string{"user": "/users/{id}"}),
		reverse.WithTracerProvider(p.TracerProvider()),
	)
	require.NoError(t, err)

	_, err = res.ResolveURI(t.Context(), "user", reverse.Params{Path: reverse.PathParams{"id": 7}})
	require.NoError(t, err)
	require.NoError(t, p.Shutdown(t.Context()))

	out := buf.String()
	assert.Contains(t, out, "reverse.Resolve")
	assert.Contains(t, out, "reverse.route_id")
	assert.Contains(t, out, "links")
}

func TestOTLPHTTP_LazyConnection(t *testing.T) {
	t.Parallel()

	p, err := New(t.Context(), OTLPHTTP, WithOTLPEndpoint("http://127.0.0.1:1/v1/traces"))
	require.NoError(t, err)
	assert.Equal(t, OTLPHTTP, p.Exporter())
	assert.NotNil(t, p.TracerProvider())

	ctx, cancel := context.WithTimeout(t.Context(), time.Second)
	defer cancel()
	require.NoError(t, p.Shutdown(ctx))
}

func TestProvider_ShutdownIsIdempotent(t *testing.T) {
	t.Parallel()

	p := MustNew(t.Context(), Noop)
	require.NoError(t, p.Shutdown(t.Context()))
	require.NoError(t, p.Shutdown(t.Context()))
}

func TestHTTPOptions(t *testing.T) {
	t.Parallel()

	p := &Provider{endpoint: "https://collector:4318/v1/traces"}
	assert.Len(t, p.httpOptions(), 1)

	p = &Provider{endpoint: "http://collector:4318"}
	assert.Len(t, p.httpOptions(), 2)

	p = &Provider{insecure: true}
	assert.Len(t, p.httpOptions(), 1)
}
