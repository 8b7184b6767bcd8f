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

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"rivaas.dev/reverse"
	"rivaas.dev/reverse/metrics"
	"rivaas.dev/reverse/middleware"
	"rivaas.dev/reverse/query"
	"rivaas.dev/reverse/table"
	"rivaas.dev/reverse/tracing"
)

const (
	paramPrefix = "param."
	queryPrefix = "query."
)

func serveCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve route resolutions over HTTP",
		Long: `Serve route resolutions over HTTP.

  GET /resolve/{id}   resolve a route; path parameters are passed as
                      param.<name>=<value> (repeat for multi-segment
                      placeholders), query parameters as query.<name>=<value>,
                      and the URL options as secure, host and rel
  GET /routes         list the loaded routes as JSON
  GET /metrics        Prometheus metrics, when the prometheus metrics
                      exporter is selected`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), g, cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.String("addr", ":8080", "listen address")
	flags.String("forwarded-proto-header", reverse.DefaultForwardedProtoHeader, "header carrying the client protocol; empty to ignore")
	flags.Duration("shutdown-timeout", 10*time.Second, "graceful shutdown timeout")
	flags.String("metrics-exporter", string(metrics.Prometheus), "metrics exporter: prometheus, stdout or otlp-http")
	flags.String("metrics-endpoint", "", "OTLP collector endpoint for metrics")
	flags.Duration("metrics-interval", metrics.DefaultExportInterval, "push interval of the stdout and otlp-http metrics exporters")
	flags.String("trace-exporter", string(tracing.Noop), "span exporter: noop, stdout, otlp or otlp-http")
	flags.String("otlp-endpoint", "", "OTLP collector endpoint")
	flags.Bool("otlp-insecure", false, "disable TLS for the OTLP exporter")

	return cmd
}

func serve(ctx context.Context, g *globals, spanOut io.Writer) error {
	s := g.settings

	exporter, err := tracing.ParseExporter(s.Tracing.Exporter)
	if err != nil {
		return err
	}

	metricsExporter, err := metrics.ParseExporter(s.Metrics.Exporter)
	if err != nil {
		return err
	}

	prov, err := metrics.New(ctx, metricsExporter,
		metrics.WithServiceName("reverse"),
		metrics.WithServiceVersion(version),
		metrics.WithWriter(spanOut),
		metrics.WithOTLPEndpoint(s.Metrics.Endpoint),
		metrics.WithExportInterval(s.Metrics.Interval),
	)
	if err != nil {
		return err
	}

	tracingOpts := []tracing.Option{
		tracing.WithServiceName("reverse"),
		tracing.WithServiceVersion(version),
		tracing.WithWriter(spanOut),
		tracing.WithOTLPEndpoint(s.Tracing.Endpoint),
	}
	if s.Tracing.Insecure {
		tracingOpts = append(tracingOpts, tracing.WithInsecure())
	}

	tp, err := tracing.New(ctx, exporter, tracingOpts...)
	if err != nil {
		return errors.Join(err, prov.Shutdown(ctx))
	}

	routes, res, err := g.loadResolver(ctx,
		reverse.WithMeterProvider(prov.MeterProvider()),
		reverse.WithTracerProvider(tp.TracerProvider()),
	)
	if err != nil {
		return errors.Join(err, tp.Shutdown(ctx), prov.Shutdown(ctx))
	}

	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           newHandler(res, routes, prov, g.logger, s.ForwardedProtoHeader),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		g.logger.Info("server starting", "addr", s.Addr, "routes", routes.Len(), "metrics", metricsExporter, "tracing", exporter)
		errCh <- srv.ListenAndServe()
	}()

	var serveErr error
	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			serveErr = fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		g.logger.Info("server shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
	defer cancel()

	return errors.Join(
		serveErr,
		srv.Shutdown(shutdownCtx),
		tp.Shutdown(shutdownCtx),
		prov.Shutdown(shutdownCtx),
	)
}

// newHandler builds the HTTP surface of the serve command.
func newHandler(res *reverse.Resolver, routes *table.Table, prov *metrics.Provider, logger *slog.Logger, forwardedHeader string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /resolve/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		var multi map[string]bool
		if rt, ok := routes.Lookup(id); ok {
			multi = multiNames(rt.Path)
		}

		params, raw, err := parseResolveQuery(r, multi)
		if err != nil {
			middleware.WriteError(w, r, err)
			return
		}

		opts, err := reverse.ParseURLOptions(raw)
		if err != nil {
			middleware.WriteError(w, r, err)
			return
		}

		u, err := middleware.URL(r, id, params, opts)
		if err != nil {
			middleware.WriteError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, u+"\n")
	})

	mux.HandleFunc("GET /routes", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(routes.Routes()); err != nil {
			logger.Error("failed to encode routes", "error", err)
		}
	})

	if h := prov.Handler(); h != nil {
		mux.Handle("GET /metrics", h)
	}

	return middleware.New(res,
		middleware.WithForwardedProtoHeader(forwardedHeader),
		middleware.WithLogger(logger),
	)(mux)
}

// multiNames returns the names of the multi-segment placeholders of path.
func multiNames(path string) map[string]bool {
	names := map[string]bool{}
	for _, p := range reverse.ParseTemplate(path) {
		if p.Kind == reverse.Multi {
			names[p.Name] = true
		}
	}

	return names
}

// parseResolveQuery splits the request query into path parameters, query
// parameters and raw URL options. Path parameters named in multi are
// always passed as segment lists.
func parseResolveQuery(r *http.Request, multi map[string]bool) (reverse.Params, map[string]any, error) {
	var (
		params reverse.Params
		raw    = map[string]any{}
	)

	for key, values := range r.URL.Query() {
		switch {
		case strings.HasPrefix(key, paramPrefix):
			if params.Path == nil {
				params.Path = reverse.PathParams{}
			}
			name := strings.TrimPrefix(key, paramPrefix)
			if len(values) == 1 && !multi[name] {
				params.Path[name] = values[0]
			} else {
				params.Path[name] = values
			}
		case strings.HasPrefix(key, queryPrefix):
			if params.Query == nil {
				params.Query = query.Bag{}
			}
			name := strings.TrimPrefix(key, queryPrefix)
			if len(values) == 1 {
				params.Query[name] = values[0]
			} else {
				params.Query[name] = values
			}
		case key == "secure" || key == "rel":
			b, err := cast.ToBoolE(values[0])
			if err != nil {
				return params, nil, &reverse.Error{
					Kind:    reverse.KindInvalidOptions,
					Param:   key,
					Message: "invalid options",
					Err:     err,
				}
			}
			raw[key] = b
		case key == "host":
			raw[key] = values[0]
		}
	}

	return params, raw, nil
}
