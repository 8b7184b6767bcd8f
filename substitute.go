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

import (
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

// PathParams maps placeholder names to values.
//
// Plain, Optional and Wildcard placeholders take a scalar: a string, a
// number, a bool or a [fmt.Stringer]. Multi placeholders take a slice
// whose elements are scalars.
type PathParams map[string]any

// Replacement describes one substitution in the working path.
// Dst is the exact text to replace and Src the text that replaces it.
type Replacement struct {
	Dst string
	Src string
}

// Substitute computes the replacement for the placeholder from params.
//
// Errors:
//   - [ErrMissingParameter]: a required value is absent or empty
//   - [ErrInvalidParameterType]: the value cannot be rendered for this kind
//   - [ErrParameterCountMismatch]: a [Multi] sequence has the wrong length
func (p Placeholder) Substitute(params PathParams) (Replacement, error) {
	switch p.Kind {
	case Optional:
		return substituteOptional(p, params), nil
	case Wildcard:
		return substituteWildcard(p, params)
	case Multi:
		return substituteMulti(p, params)
	default:
		return substitutePlain(p, params)
	}
}

// substitutePlain fills a required placeholder.
func substitutePlain(p Placeholder, params PathParams) (Replacement, error) {
	v, err := scalar(p.Name, params[p.Name])
	if err != nil {
		return Replacement{}, err
	}

	return Replacement{Dst: p.Token, Src: v}, nil
}

// substituteOptional fills an optional placeholder. When no value is
// given, Dst covers the separator in front of the token as well, so the
// whole segment disappears.
func substituteOptional(p Placeholder, params PathParams) Replacement {
	v, _ := stringify(params[p.Name])
	if v == "" {
		return Replacement{Dst: "/" + p.Token}
	}

	return Replacement{Dst: p.Token, Src: v}
}

// substituteWildcard fills an unbounded wildcard. The value is inserted
// as is, slashes included.
func substituteWildcard(p Placeholder, params PathParams) (Replacement, error) {
	v, err := scalar(p.Name, params[p.Name])
	if err != nil {
		return Replacement{}, err
	}

	return Replacement{Dst: p.Token, Src: v}, nil
}

// substituteMulti fills a fixed-count wildcard from a sequence, joining the
// elements with "/".
func substituteMulti(p Placeholder, params PathParams) (Replacement, error) {
	raw, ok := params[p.Name]
	if !ok || raw == nil {
		return Replacement{}, missingParameter(p.Name)
	}

	segments, ok := sequence(raw)
	if !ok {
		return Replacement{}, &Error{
			Kind:    KindInvalidParameterType,
			Param:   p.Name,
			Message: "parameter must be a sequence of segments",
		}
	}

	if len(segments) != p.Count {
		return Replacement{}, &Error{
			Kind:     KindParameterCountMismatch,
			Param:    p.Name,
			Expected: p.Count,
			Actual:   len(segments),
			Message:  "number of segments does not match the placeholder multiplier",
		}
	}

	src := strings.Join(segments, "/")
	if src == "" {
		return Replacement{}, missingParameter(p.Name)
	}

	return Replacement{Dst: p.Token, Src: src}, nil
}

// scalar renders a required value.
func scalar(name string, v any) (string, error) {
	s, ok := stringify(v)
	if !ok {
		return "", &Error{
			Kind:    KindInvalidParameterType,
			Param:   name,
			Message: "parameter cannot be rendered as a path segment",
		}
	}
	if s == "" {
		return "", missingParameter(name)
	}

	return s, nil
}

// stringify renders a scalar value. Nil values and nil pointers render
// as the empty string; slices, maps and other composite values are
// rejected.
func stringify(v any) (string, bool) {
	if isNil(v) {
		return "", true
	}
	if b, ok := v.([]byte); ok {
		return string(b), true
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct, reflect.Func, reflect.Chan:
		if _, ok := v.(interface{ String() string }); !ok {
			return "", false
		}
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}

	return s, true
}

// sequence renders every element of a slice or array.
func sequence(v any) ([]string, bool) {
	if ss, ok := v.([]string); ok {
		return ss, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	out := make([]string, rv.Len())
	for i := range out {
		s, ok := stringify(rv.Index(i).Interface())
		if !ok {
			return nil, false
		}
		out[i] = s
	}

	return out, true
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
