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

// Package table provides an in-memory routing table for reverse routing.
//
// A [Table] maps route identifiers to path templates and implements
// [reverse.Lookup]. It is safe for concurrent use: lookups take a read
// lock, registrations a write lock.
//
//	t := table.New()
//	t.MustAdd("users.get", "/users/{id}")
//	t.MustAdd("files", "/files/{path*}")
//
//	res := reverse.MustNew(reverse.WithLookup(t))
//
// Tables can also be loaded from YAML, TOML or JSON files:
//
//	# routes.yaml
//	routes:
//	  - id: users.get
//	    path: /users/{id}
//
//	t, err := table.LoadFile("routes.yaml")
package table
