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

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	riverrors "rivaas.dev/errors"

	"rivaas.dev/reverse"
)

// ErrNoResolver is returned when a helper is called on a request that did
// not pass through the middleware.
var ErrNoResolver = errors.New("middleware: no resolver in request context")

type contextKey struct{}

// state is stored in the request context by the middleware.
type state struct {
	res *reverse.Resolver
	rc  reverse.RequestContext
	cfg *config
}

// New returns a middleware that exposes res and the request metadata to
// the helpers of this package.
//
// New panics if res is nil.
func New(res *reverse.Resolver, opts ...Option) func(http.Handler) http.Handler {
	if res == nil {
		panic("middleware.New: resolver cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			st := &state{
				res: res,
				rc:  reverse.RequestContextFromHeader(r, cfg.forwardedHeader),
				cfg: cfg,
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, st)))
		})
	}
}

func fromRequest(r *http.Request) (*state, bool) {
	st, ok := r.Context().Value(contextKey{}).(*state)
	return st, ok
}

// Resolver returns the resolver stored by the middleware.
func Resolver(r *http.Request) (*reverse.Resolver, bool) {
	st, ok := fromRequest(r)
	if !ok {
		return nil, false
	}

	return st.res, true
}

// RequestContext returns the request metadata captured by the middleware,
// or extracts it with the default header when the middleware did not run.
func RequestContext(r *http.Request) reverse.RequestContext {
	if st, ok := fromRequest(r); ok {
		return st.rc
	}

	return reverse.RequestContextFrom(r)
}

// URI resolves a route to a relative URI.
func URI(r *http.Request, id string, params reverse.Params) (string, error) {
	st, ok := fromRequest(r)
	if !ok {
		return "", ErrNoResolver
	}

	return st.res.ResolveURI(r.Context(), id, params)
}

// URL resolves a route to a URL, using the protocol and host of r unless
// opts say otherwise.
func URL(r *http.Request, id string, params reverse.Params, opts reverse.URLOptions) (string, error) {
	st, ok := fromRequest(r)
	if !ok {
		return "", ErrNoResolver
	}

	return st.res.ResolveURL(r.Context(), id, params, opts, st.rc)
}

// Redirect resolves a route and replies with a redirect to it. Resolution
// failures are written with [WriteError].
//
// Example:
//
//	middleware.Redirect(w, r, "users.get", reverse.Params{
//	    Path: reverse.PathParams{"id": id},
//	}, reverse.URLOptions{}, http.StatusSeeOther)
func Redirect(w http.ResponseWriter, r *http.Request, id string, params reverse.Params, opts reverse.URLOptions, code int) {
	u, err := URL(r, id, params, opts)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	http.Redirect(w, r, u, code)
}

// WriteError writes err with the configured formatter. Errors from this
// module carry their own status: 404 for unknown routes, 400 otherwise.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	cfg := defaultConfig()
	if st, ok := fromRequest(r); ok {
		cfg = st.cfg
	}

	response := cfg.formatter.Format(r, err)

	cfg.logger.WarnContext(r.Context(), "reverse routing error",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"status", response.Status,
	)

	w.Header().Set("Content-Type", response.ContentType)
	for key, values := range response.Headers {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	w.WriteHeader(response.Status)

	if err := json.NewEncoder(w).Encode(response.Body); err != nil {
		cfg.logger.ErrorContext(r.Context(), "failed to encode error response", "error", err)
	}
}

// Resolution errors carry their own status, code and details.
var (
	_ riverrors.ErrorType    = (*reverse.Error)(nil)
	_ riverrors.ErrorCode    = (*reverse.Error)(nil)
	_ riverrors.ErrorDetails = (*reverse.Error)(nil)
)
