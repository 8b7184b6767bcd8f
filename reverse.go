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
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"rivaas.dev/reverse/query"
)

// Configuration errors returned by [New].
var (
	ErrNoLookup   = errors.New("route lookup is required")
	ErrNilLogger  = errors.New("logger cannot be nil")
	ErrNilEncoder = errors.New("query encoder cannot be nil")
	ErrNilMeter   = errors.New("meter provider cannot be nil")
	ErrNilTracer  = errors.New("tracer provider cannot be nil")
)

// Resolver turns route identifiers and parameters into URIs.
//
// A Resolver holds no per-call state; all methods are safe for concurrent
// use. Each call reads the routing table once through the configured
// [Lookup] and works on its own copy of the template.
type Resolver struct {
	lookup         Lookup
	encoder        query.Encoder
	logger         *slog.Logger
	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider

	tracer trace.Tracer
	inst   *instruments
}

// New creates a [Resolver] and validates its configuration.
//
// Example:
//
//	res, err := reverse.New(
//	    reverse.WithRoutes(map[string]string{
//	        "users.get": "/users/{id}",
//	    }),
//	    reverse.WithLogger(slog.Default()),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
func New(opts ...Option) (*Resolver, error) {
	r := &Resolver{
		encoder:        query.Form{},
		logger:         slog.New(slog.DiscardHandler),
		meterProvider:  metricnoop.NewMeterProvider(),
		tracerProvider: tracenoop.NewTracerProvider(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("reverse: invalid configuration: %w", err)
	}

	inst, err := newInstruments(r.meterProvider)
	if err != nil {
		return nil, fmt.Errorf("reverse: %w", err)
	}
	r.inst = inst
	r.tracer = r.tracerProvider.Tracer(instrumentationName)

	return r, nil
}

// MustNew is like [New] but panics on error.
func MustNew(opts ...Option) *Resolver {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("reverse.MustNew: %v", err))
	}

	return r
}

func (r *Resolver) validate() error {
	switch {
	case r.lookup == nil:
		return ErrNoLookup
	case r.logger == nil:
		return ErrNilLogger
	case r.encoder == nil:
		return ErrNilEncoder
	case r.meterProvider == nil:
		return ErrNilMeter
	case r.tracerProvider == nil:
		return ErrNilTracer
	}

	return nil
}

// ResolveURI resolves a route to its relative URI: the expanded path plus
// the encoded query, without protocol or host.
//
// Example:
//
//	uri, err := res.ResolveURI(ctx, "files", reverse.Params{
//	    Path:  reverse.PathParams{"path": []string{"a", "b", "c"}},
//	    Query: query.Bag{"download": true},
//	})
//	// "/files/a/b/c?download=true"
//
// Errors: [ErrRouteNotFound], [ErrMissingParameter],
// [ErrInvalidParameterType], [ErrParameterCountMismatch] and
// [ErrInvalidOptions] for a query bag that cannot be encoded.
func (r *Resolver) ResolveURI(ctx context.Context, id string, params Params) (uri string, err error) {
	obs := r.observe(ctx, opURI, id)
	defer func() { obs.end(uri, err) }()

	return r.resolvePath(id, params, r.lookup)
}

// ResolveURL resolves a route and composes the result into a URL using
// opts and the request context rc, as described by [Compose].
//
// The options are validated before anything else. With opts.Rel set the
// relative URI is returned. When opts.Lookup is set it is used instead of
// the resolver's own lookup.
//
// Example:
//
//	u, err := res.ResolveURL(ctx, "users.get",
//	    reverse.Params{Path: reverse.PathParams{"id": 42}},
//	    reverse.URLOptions{Secure: reverse.Bool(true)},
//	    reverse.RequestContextFrom(req),
//	)
//	// "https://example.com/users/42"
func (r *Resolver) ResolveURL(ctx context.Context, id string, params Params, opts URLOptions, rc RequestContext) (u string, err error) {
	obs := r.observe(ctx, opURL, id)
	defer func() { obs.end(u, err) }()

	if err := opts.Validate(); err != nil {
		return "", withRoute(err, id)
	}

	lookup := r.lookup
	if opts.Lookup != nil {
		lookup = opts.Lookup
	}

	path, err := r.resolvePath(id, params, lookup)
	if err != nil {
		return "", err
	}

	return Compose(path, opts, rc)
}

// MustResolveURI is like [Resolver.ResolveURI] but panics on error.
func (r *Resolver) MustResolveURI(ctx context.Context, id string, params Params) string {
	uri, err := r.ResolveURI(ctx, id, params)
	if err != nil {
		panic(fmt.Sprintf("MustResolveURI failed: %v", err))
	}

	return uri
}

// MustResolveURL is like [Resolver.ResolveURL] but panics on error.
func (r *Resolver) MustResolveURL(ctx context.Context, id string, params Params, opts URLOptions, rc RequestContext) string {
	u, err := r.ResolveURL(ctx, id, params, opts, rc)
	if err != nil {
		panic(fmt.Sprintf("MustResolveURL failed: %v", err))
	}

	return u
}

// resolvePath looks the route up, expands its template and appends the
// query string.
func (r *Resolver) resolvePath(id string, params Params, lookup Lookup) (string, error) {
	rt, ok := lookup.Lookup(id)
	if !ok {
		return "", &Error{Kind: KindRouteNotFound, RouteID: id, Message: "no route matches the identifier"}
	}

	path, err := Expand(rt.Path, params.Path)
	if err != nil {
		return "", withRoute(err, id)
	}

	if params.Query == nil {
		return path, nil
	}

	qs, err := r.encoder.Encode(params.Query)
	if err != nil {
		e := invalidOptions("query", err)
		e.RouteID = id
		return "", e
	}
	if qs == "" {
		return path, nil
	}

	return path + "?" + qs, nil
}
