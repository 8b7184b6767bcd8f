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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"rivaas.dev/reverse"
)

func routesCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List routes and their placeholders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			routes, _, err := g.loadResolver(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPATH\tPLACEHOLDERS")
			for _, route := range routes.Routes() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", route.ID, route.Path, describe(reverse.ParseTemplate(route.Path)))
			}

			return w.Flush()
		},
	}
}

// describe renders placeholders as name:kind pairs, with the segment
// count for multi placeholders.
func describe(placeholders []reverse.Placeholder) string {
	if len(placeholders) == 0 {
		return "-"
	}

	parts := make([]string, 0, len(placeholders))
	for _, p := range placeholders {
		s := p.Name + ":" + p.Kind.String()
		if p.Kind == reverse.Multi {
			s += fmt.Sprintf("(%d)", p.Count)
		}
		parts = append(parts, s)
	}

	return strings.Join(parts, " ")
}
