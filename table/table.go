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

package table

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"rivaas.dev/reverse"
)

// Registration errors.
var (
	ErrEmptyID         = errors.New("route id cannot be empty")
	ErrDuplicateRoute  = errors.New("route id already registered")
	ErrInvalidTemplate = errors.New("invalid path template")
)

// Table is a concurrency-safe routing table.
type Table struct {
	mu     sync.RWMutex
	routes map[string]reverse.Route
}

// New returns an empty table.
func New() *Table {
	return &Table{routes: make(map[string]reverse.Route)}
}

// Add registers a path template under id.
//
// The template must start with "/" and may hold at most one wildcard
// ({name*} or {name*N}) placeholder.
func (t *Table) Add(id, path string) error {
	if id == "" {
		return ErrEmptyID
	}
	if err := checkTemplate(path); err != nil {
		return fmt.Errorf("route %q: %w", id, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.routes[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRoute, id)
	}
	t.routes[id] = reverse.Route{ID: id, Path: path}

	return nil
}

// MustAdd is like [Table.Add] but panics on error.
func (t *Table) MustAdd(id, path string) {
	if err := t.Add(id, path); err != nil {
		panic(fmt.Sprintf("table.MustAdd: %v", err))
	}
}

// Remove deletes the route registered under id and reports whether it existed.
func (t *Table) Remove(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.routes[id]
	delete(t.routes, id)

	return ok
}

// Lookup implements [reverse.Lookup].
func (t *Table) Lookup(id string) (reverse.Route, bool) {
	t.mu.RLock()
	rt, ok := t.routes[id]
	t.mu.RUnlock()

	return rt, ok
}

// Len returns the number of registered routes.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.routes)
}

// Routes returns all routes sorted by identifier.
func (t *Table) Routes() []reverse.Route {
	t.mu.RLock()
	out := make([]reverse.Route, 0, len(t.routes))
	for _, rt := range t.routes {
		out = append(out, rt)
	}
	t.mu.RUnlock()

	slices.SortFunc(out, func(a, b reverse.Route) int {
		return strings.Compare(a.ID, b.ID)
	})

	return out
}

func checkTemplate(path string) error {
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("%w: %q must start with /", ErrInvalidTemplate, path)
	}

	wildcards := 0
	for _, p := range reverse.ParseTemplate(path) {
		if p.Kind == reverse.Wildcard || p.Kind == reverse.Multi {
			wildcards++
		}
	}
	if wildcards > 1 {
		return fmt.Errorf("%w: %q has %d wildcard placeholders, at most one is allowed", ErrInvalidTemplate, path, wildcards)
	}

	return nil
}
