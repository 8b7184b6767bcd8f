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

import "rivaas.dev/reverse/query"

// Params is the parameter bag of one resolution: the values for the path
// placeholders and an optional query bag.
//
// A nil Query appends nothing. A non-nil Query is encoded and appended
// after "?", unless it encodes to nothing.
type Params struct {
	Path  PathParams `mapstructure:"params"`
	Query query.Bag  `mapstructure:"query"`
}

// ParseParams builds [Params] from a raw map of the shape
//
//	{"params": {...}, "query": {...}}
//
// Both keys are optional. Unknown keys or non-object values fail with
// [ErrInvalidOptions].
//
// Example:
//
//	p, err := reverse.ParseParams(map[string]any{
//	    "params": map[string]any{"id": "42"},
//	    "query":  map[string]any{"tab": "posts"},
//	})
func ParseParams(raw map[string]any) (Params, error) {
	var p Params
	if raw == nil {
		return p, nil
	}

	if err := checkShape(paramsSchema, raw); err != nil {
		return Params{}, err
	}
	if err := decodeStrict(raw, &p); err != nil {
		return Params{}, err
	}

	return p, nil
}
