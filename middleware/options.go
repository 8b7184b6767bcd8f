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
	"log/slog"

	riverrors "rivaas.dev/errors"

	"rivaas.dev/reverse"
)

// Option defines functional options for the middleware.
type Option func(*config)

// config holds the middleware configuration.
type config struct {
	// forwardedHeader is the header carrying the client-facing protocol.
	forwardedHeader string

	// formatter renders errors in WriteError.
	formatter riverrors.Formatter

	// logger receives one entry per error written by WriteError.
	logger *slog.Logger
}

func defaultConfig() *config {
	return &config{
		forwardedHeader: reverse.DefaultForwardedProtoHeader,
		formatter:       riverrors.NewRFC9457(""),
		logger:          slog.New(slog.DiscardHandler),
	}
}

// WithForwardedProtoHeader sets the header read for the forwarded protocol.
// An empty name ignores forwarded protocols, which is what servers that
// are not behind a trusted proxy should do.
//
// Example:
//
//	handler := middleware.New(res, middleware.WithForwardedProtoHeader("X-Scheme"))(mux)
func WithForwardedProtoHeader(name string) Option {
	return func(c *config) { c.forwardedHeader = name }
}

// WithFormatter sets the formatter used by [WriteError].
// The default is an RFC 9457 formatter.
func WithFormatter(f riverrors.Formatter) Option {
	return func(c *config) {
		if f != nil {
			c.formatter = f
		}
	}
}

// WithLogger sets the logger used by [WriteError].
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
