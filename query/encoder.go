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

package query

import (
	"fmt"
	"net/url"
	"reflect"

	"github.com/spf13/cast"
)

// Bag maps query keys to values. A nil value means the key is not set.
type Bag map[string]any

// Encoder renders a [Bag] as a query string without the leading "?".
// An empty result means there is nothing to append.
type Encoder interface {
	Encode(b Bag) (string, error)
}

// EncoderFunc adapts a function to the [Encoder] interface.
type EncoderFunc func(b Bag) (string, error)

// Encode calls f(b).
func (f EncoderFunc) Encode(b Bag) (string, error) {
	return f(b)
}

// Form is the default [Encoder]. It produces
// application/x-www-form-urlencoded output sorted by key.
type Form struct{}

// Encode implements [Encoder].
func (Form) Encode(b Bag) (string, error) {
	values, err := Values(b)
	if err != nil {
		return "", err
	}

	return values.Encode(), nil
}

// Values converts a [Bag] to [url.Values], dropping unset keys.
func Values(b Bag) (url.Values, error) {
	values := make(url.Values, len(b))
	for key, v := range b {
		if isNil(v) {
			continue
		}

		if s, ok := v.(string); ok {
			values.Add(key, s)
			continue
		}

		rv := reflect.ValueOf(v)
		if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
			for i := range rv.Len() {
				elem := rv.Index(i).Interface()
				if isNil(elem) {
					continue
				}
				s, err := cast.ToStringE(elem)
				if err != nil {
					return nil, fmt.Errorf("query: key %q index %d: %w", key, i, err)
				}
				values.Add(key, s)
			}
			continue
		}

		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, fmt.Errorf("query: key %q: %w", key, err)
		}
		values.Add(key, s)
	}

	return values, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}

	return false
}
