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
	"math"
	"regexp"
	"strconv"
	"strings"
)

// placeholderPattern matches the four placeholder forms:
// {name}, {name?}, {name*} and {name*N}. Braces that do not enclose one of
// these forms are left in the path as literal text.
var placeholderPattern = regexp.MustCompile(`\{(\w+\*?|\w+\?|\w+\*[1-9][0-9]*)\}`)

// PlaceholderKind classifies a placeholder token in a path template.
type PlaceholderKind uint8

const (
	// Plain is a required single value: {name}.
	Plain PlaceholderKind = iota
	// Optional may be omitted, in which case it is erased together with
	// the separator in front of it: {name?}.
	Optional
	// Wildcard is a required value that may span several segments: {name*}.
	Wildcard
	// Multi requires exactly Count segments supplied as a sequence: {name*N}.
	Multi
)

// String returns the kind name.
func (k PlaceholderKind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Optional:
		return "optional"
	case Wildcard:
		return "wildcard"
	case Multi:
		return "multi"
	default:
		return "unknown"
	}
}

// Placeholder is a classified placeholder token of a path template.
// Placeholders are derived from the template on every resolution and never
// stored.
type Placeholder struct {
	// Token is the raw token text including braces, e.g. "{path*3}".
	Token string

	// Name is the parameter name the token is filled from, e.g. "path".
	Name string

	// Kind is the placeholder kind.
	Kind PlaceholderKind

	// Count is the number of segments a [Multi] placeholder requires.
	Count int

	// start and end locate Token in the template it was parsed from.
	start, end int
}

// ParseTemplate scans a path template and returns its placeholders in the
// order they appear. Duplicates are kept. A template without placeholders
// yields an empty slice.
//
// Example:
//
//	for _, p := range reverse.ParseTemplate("/files/{dir}/{rest*}") {
//	    fmt.Println(p.Name, p.Kind) // "dir plain", then "rest wildcard"
//	}
func ParseTemplate(path string) []Placeholder {
	locs := placeholderPattern.FindAllStringSubmatchIndex(path, -1)
	out := make([]Placeholder, 0, len(locs))
	for _, loc := range locs {
		p := classify(path[loc[0]:loc[1]], path[loc[2]:loc[3]])
		p.start, p.end = loc[0], loc[1]
		out = append(out, p)
	}

	return out
}

// classify derives a [Placeholder] from a token and its brace-stripped text.
func classify(token, stripped string) Placeholder {
	if name, ok := strings.CutSuffix(stripped, "?"); ok {
		return Placeholder{Token: token, Name: name, Kind: Optional}
	}

	if name, ok := strings.CutSuffix(stripped, "*"); ok {
		return Placeholder{Token: token, Name: name, Kind: Wildcard}
	}

	if name, digits, ok := strings.Cut(stripped, "*"); ok {
		count, err := strconv.Atoi(digits)
		if err != nil {
			// Only overflow can fail here; no sequence can satisfy it.
			count = math.MaxInt
		}

		return Placeholder{Token: token, Name: name, Kind: Multi, Count: count}
	}

	return Placeholder{Token: token, Name: stripped, Kind: Plain}
}
