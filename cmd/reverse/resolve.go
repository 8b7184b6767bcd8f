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
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rivaas.dev/reverse"
	"rivaas.dev/reverse/query"
)

type resolveFlags struct {
	params  []string
	multi   []string
	queries []string

	secure bool
	host   string
	rel    bool
	proto  string
}

func resolveCmd(g *globals) *cobra.Command {
	f := &resolveFlags{}

	cmd := &cobra.Command{
		Use:   "resolve ID",
		Short: "Resolve a route to a URI or URL",
		Long: `Resolve a route to a URI, or to an absolute URL when --host is set.

Path parameters are given as --param name=value. Multi-segment
parameters such as {path*2} take --multi name=a,b.
Query parameters are given as --query name=value and may repeat.`,
		Example: `  reverse resolve users.get --param id=42
  reverse resolve files --param path=docs/readme.md --host example.com --secure
  reverse resolve pair --multi path=a,b
  reverse resolve search --query q=go --query tag=a --query tag=b`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := f.buildParams()
			if err != nil {
				return err
			}

			opts, err := f.buildOptions(cmd)
			if err != nil {
				return err
			}

			_, res, err := g.loadResolver(cmd.Context())
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			var out string
			if opts.Host == "" || opts.Rel {
				out, err = res.ResolveURI(ctx, args[0], params)
			} else {
				out, err = res.ResolveURL(ctx, args[0], params, opts, reverse.RequestContext{Proto: f.proto})
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)

			return err
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&f.params, "param", "p", nil, "path parameter as name=value")
	flags.StringArrayVarP(&f.multi, "multi", "m", nil, "multi-segment path parameter as name=a,b,c")
	flags.StringArrayVarP(&f.queries, "query", "q", nil, "query parameter as name=value")
	flags.BoolVar(&f.secure, "secure", false, "use https")
	flags.StringVar(&f.host, "host", "", "host, optionally with port, for absolute URLs")
	flags.BoolVar(&f.rel, "rel", false, "always return a relative URI")
	flags.StringVar(&f.proto, "proto", "http", "protocol used when --secure is not set")

	return cmd
}

func (f *resolveFlags) buildParams() (reverse.Params, error) {
	var params reverse.Params

	for _, kv := range f.params {
		name, value, err := splitPair("param", kv)
		if err != nil {
			return params, err
		}
		if params.Path == nil {
			params.Path = reverse.PathParams{}
		}
		params.Path[name] = value
	}

	for _, kv := range f.multi {
		name, value, err := splitPair("multi", kv)
		if err != nil {
			return params, err
		}
		if params.Path == nil {
			params.Path = reverse.PathParams{}
		}
		params.Path[name] = strings.Split(value, ",")
	}

	for _, kv := range f.queries {
		name, value, err := splitPair("query", kv)
		if err != nil {
			return params, err
		}
		if params.Query == nil {
			params.Query = query.Bag{}
		}
		switch prev := params.Query[name].(type) {
		case nil:
			params.Query[name] = value
		case string:
			params.Query[name] = []string{prev, value}
		case []string:
			params.Query[name] = append(prev, value)
		}
	}

	return params, nil
}

// buildOptions validates the URL flags the same way raw options are
// validated. --secure only takes part when it was set explicitly.
func (f *resolveFlags) buildOptions(cmd *cobra.Command) (reverse.URLOptions, error) {
	raw := map[string]any{}
	if cmd.Flags().Changed("secure") {
		raw["secure"] = f.secure
	}
	if f.host != "" {
		raw["host"] = f.host
	}
	if f.rel {
		raw["rel"] = true
	}

	return reverse.ParseURLOptions(raw)
}

func splitPair(flag, kv string) (string, string, error) {
	name, value, ok := strings.Cut(kv, "=")
	if !ok || name == "" {
		return "", "", fmt.Errorf("invalid --%s %q: expected name=value", flag, kv)
	}

	return name, value, nil
}
