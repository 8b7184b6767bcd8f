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

// Route is a routing table entry as seen by the resolver.
type Route struct {
	// ID is the stable identifier of the route.
	ID string `json:"id"`

	// Path is the path template, e.g. "/users/{id}/files/{path*}".
	Path string `json:"path"`
}

// Lookup finds the route registered under an identifier.
// The routing table is owned by the host; the resolver only reads it and
// may call Lookup from many goroutines at once.
type Lookup interface {
	Lookup(id string) (Route, bool)
}

// LookupFunc adapts a function to the [Lookup] interface.
type LookupFunc func(id string) (Route, bool)

// Lookup calls f(id).
func (f LookupFunc) Lookup(id string) (Route, bool) {
	return f(id)
}

// Chain returns a [Lookup] that asks each lookup in order and returns the
// first match. Nil lookups are skipped.
//
// Example:
//
//	res := reverse.MustNew(reverse.WithLookup(reverse.Chain(public, admin)))
func Chain(lookups ...Lookup) Lookup {
	return LookupFunc(func(id string) (Route, bool) {
		for _, l := range lookups {
			if l == nil {
				continue
			}
			if rt, ok := l.Lookup(id); ok {
				return rt, true
			}
		}

		return Route{}, false
	})
}

// MapLookup is a fixed identifier-to-template [Lookup], handy for tests
// and small programs.
type MapLookup map[string]string

// Lookup implements [Lookup].
func (m MapLookup) Lookup(id string) (Route, bool) {
	path, ok := m[id]
	if !ok {
		return Route{}, false
	}

	return Route{ID: id, Path: path}, true
}
