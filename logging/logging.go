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

package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"golang.org/x/term"
)

// HandlerType selects the output format.
type HandlerType string

// Available handler types.
const (
	// JSONHandler writes one JSON object per record.
	JSONHandler HandlerType = "json"
	// TextHandler writes key=value pairs.
	TextHandler HandlerType = "text"
	// ConsoleHandler writes colored, human-readable lines.
	ConsoleHandler HandlerType = "console"
	// AutoHandler picks ConsoleHandler when the output is a terminal and
	// JSONHandler otherwise.
	AutoHandler HandlerType = "auto"
)

// ErrInvalidHandlerType is returned for an unknown handler type.
var ErrInvalidHandlerType = errors.New("invalid handler type")

// ParseHandlerType returns the handler type named s.
func ParseHandlerType(s string) (HandlerType, error) {
	switch t := HandlerType(strings.ToLower(s)); t {
	case JSONHandler, TextHandler, ConsoleHandler, AutoHandler:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q: must be json, text, console or auto", ErrInvalidHandlerType, s)
	}
}

// ParseLevel returns the level named s ("debug", "info", "warn", "error",
// optionally with an offset such as "warn+2").
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid level %q: %w", s, err)
	}

	return lvl, nil
}

// Option defines functional options for logger configuration.
type Option func(*config)

type config struct {
	handlerType    HandlerType
	output         io.Writer
	level          slog.Level
	serviceName    string
	serviceVersion string
	addSource      bool
}

// WithHandlerType sets the handler type.
func WithHandlerType(t HandlerType) Option {
	return func(c *config) { c.handlerType = t }
}

// WithJSONHandler uses JSON structured logging (default).
func WithJSONHandler() Option {
	return WithHandlerType(JSONHandler)
}

// WithTextHandler uses text key=value logging.
func WithTextHandler() Option {
	return WithHandlerType(TextHandler)
}

// WithConsoleHandler uses human-readable console logging.
func WithConsoleHandler() Option {
	return WithHandlerType(ConsoleHandler)
}

// WithOutput sets the destination. The default is os.Stderr.
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.output = w }
}

// WithLevel sets the minimum level. The default is slog.LevelInfo.
func WithLevel(level slog.Level) Option {
	return func(c *config) { c.level = level }
}

// WithServiceName adds a "service" attribute to every record.
func WithServiceName(name string) Option {
	return func(c *config) { c.serviceName = name }
}

// WithServiceVersion adds a "version" attribute to every record.
func WithServiceVersion(version string) Option {
	return func(c *config) { c.serviceVersion = version }
}

// WithSource adds the source file and line to every record.
func WithSource(enabled bool) Option {
	return func(c *config) { c.addSource = enabled }
}

// New creates a logger.
func New(opts ...Option) (*slog.Logger, error) {
	c := &config{
		handlerType: JSONHandler,
		output:      os.Stderr,
		level:       slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.output == nil {
		return nil, errors.New("logging: output cannot be nil")
	}

	hopts := &slog.HandlerOptions{Level: c.level, AddSource: c.addSource}

	ht := c.handlerType
	if ht == AutoHandler {
		ht = JSONHandler
		if isTerminal(c.output) {
			ht = ConsoleHandler
		}
	}

	var h slog.Handler
	switch ht {
	case JSONHandler:
		h = slog.NewJSONHandler(c.output, hopts)
	case TextHandler:
		h = slog.NewTextHandler(c.output, hopts)
	case ConsoleHandler:
		h = charmlog.NewWithOptions(c.output, charmlog.Options{
			Level:           charmlog.Level(c.level),
			ReportTimestamp: true,
			ReportCaller:    c.addSource,
		})
	default:
		return nil, fmt.Errorf("logging: %w: %q", ErrInvalidHandlerType, c.handlerType)
	}

	logger := slog.New(&traceHandler{next: h})

	var attrs []any
	if c.serviceName != "" {
		attrs = append(attrs, "service", c.serviceName)
	}
	if c.serviceVersion != "" {
		attrs = append(attrs, "version", c.serviceVersion)
	}
	if len(attrs) > 0 {
		logger = logger.With(attrs...)
	}

	return logger, nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// MustNew creates a logger and panics on error.
func MustNew(opts ...Option) *slog.Logger {
	logger, err := New(opts...)
	if err != nil {
		panic(err)
	}

	return logger
}
