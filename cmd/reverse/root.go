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
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"rivaas.dev/reverse"
	"rivaas.dev/reverse/config"
	"rivaas.dev/reverse/logging"
	"rivaas.dev/reverse/table"
)

// consulScheme prefixes route sources read from Consul's key-value store.
const consulScheme = "consul:"

// globals holds the settings shared by all commands.
type globals struct {
	configPath string
	settings   config.Settings
	logger     *slog.Logger
}

// flagOverrides maps flags to the settings they override when set.
func flagOverrides(s *config.Settings) map[string]any {
	return map[string]any{
		"routes":                 &s.Routes,
		"log-format":             &s.Log.Format,
		"log-level":              &s.Log.Level,
		"consul-addr":            &s.Consul.Addr,
		"addr":                   &s.Addr,
		"forwarded-proto-header": &s.ForwardedProtoHeader,
		"shutdown-timeout":       &s.ShutdownTimeout,
		"metrics-exporter":       &s.Metrics.Exporter,
		"metrics-endpoint":       &s.Metrics.Endpoint,
		"metrics-interval":       &s.Metrics.Interval,
		"trace-exporter":         &s.Tracing.Exporter,
		"otlp-endpoint":          &s.Tracing.Endpoint,
		"otlp-insecure":          &s.Tracing.Insecure,
	}
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:   "reverse",
		Short: "Build URIs and URLs from named routes",
		Long: `reverse turns a route identifier plus parameters into a URI or URL.

Routes are read from a YAML, TOML or JSON file, or from a Consul key when
--routes is "consul:<key>":

  routes:
    - id: users.get
      path: /users/{id}
    - id: files
      path: /files/{path*}

Settings come from built-in defaults, the --config file, REVERSE_*
environment variables and finally flags, later sources winning.`,
		Version:       version + " (" + commit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			s, err := config.Load(g.configPath, os.Environ())
			if err != nil {
				return err
			}
			if err := applyFlags(cmd.Flags(), &s); err != nil {
				return err
			}
			if err := s.Validate(); err != nil {
				return err
			}
			g.settings = s

			logger, err := newLogger(cmd.ErrOrStderr(), s.Log.Format, s.Log.Level)
			if err != nil {
				return err
			}
			g.logger = logger

			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&g.configPath, "config", "c", "", "settings file (.yaml, .yml, .toml or .json)")
	flags.StringP("routes", "r", "routes.yaml", `route file (.yaml, .yml, .toml or .json) or "consul:<key>"`)
	flags.String("log-format", "text", "log format: text, json, console or auto")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")
	flags.String("consul-addr", "", "Consul agent address; defaults to CONSUL_HTTP_ADDR")

	cmd.AddCommand(
		resolveCmd(g),
		routesCmd(g),
		serveCmd(g),
	)

	return cmd
}

// applyFlags copies the flags set on the command line over s.
func applyFlags(flags *pflag.FlagSet, s *config.Settings) error {
	for name, dst := range flagOverrides(s) {
		f := flags.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}

		var err error
		switch p := dst.(type) {
		case *string:
			*p, err = flags.GetString(name)
		case *bool:
			*p, err = flags.GetBool(name)
		case *time.Duration:
			*p, err = flags.GetDuration(name)
		}
		if err != nil {
			return fmt.Errorf("flag --%s: %w", name, err)
		}
	}

	return nil
}

// newLogger builds the logger selected by the log settings.
func newLogger(w io.Writer, format, level string) (*slog.Logger, error) {
	ht, err := logging.ParseHandlerType(format)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-format: %w", err)
	}

	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	return logging.New(
		logging.WithHandlerType(ht),
		logging.WithOutput(w),
		logging.WithLevel(lvl),
		logging.WithServiceVersion(version),
	)
}

// loadRoutes reads the route source named by the settings.
func (g *globals) loadRoutes(ctx context.Context) (*table.Table, error) {
	src := g.settings.Routes

	key, ok := strings.CutPrefix(src, consulScheme)
	if !ok {
		return table.LoadFile(src)
	}

	kv, err := table.NewConsulKV(g.settings.Consul.Addr)
	if err != nil {
		return nil, err
	}

	return table.LoadConsul(ctx, kv, key, "")
}

// loadResolver reads the routes and builds a resolver over them.
func (g *globals) loadResolver(ctx context.Context, extra ...reverse.Option) (*table.Table, *reverse.Resolver, error) {
	routes, err := g.loadRoutes(ctx)
	if err != nil {
		return nil, nil, err
	}

	g.logger.DebugContext(ctx, "routes loaded", "source", g.settings.Routes, "count", routes.Len())

	opts := append([]reverse.Option{
		reverse.WithLookup(routes),
		reverse.WithLogger(g.logger),
	}, extra...)

	res, err := reverse.New(opts...)
	if err != nil {
		return nil, nil, err
	}

	return routes, res, nil
}
