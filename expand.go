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

import "strings"

// Expand substitutes every placeholder of template with its value from
// params and returns the resulting path.
//
// Placeholders are processed left to right over a working buffer. Values
// are inserted verbatim; no percent-encoding is applied. A template
// without placeholders is returned unchanged.
//
// An [Optional] placeholder without a value is erased together with the
// "/" immediately in front of it, so "/foobar/{param?}" expands to
// "/foobar" and "/{param?}" expands to "". An optional placeholder that is
// not preceded by "/" cannot be erased this way and is left in place.
//
// Example:
//
//	path, err := reverse.Expand("/{greet}/{object}", reverse.PathParams{
//	    "greet":  "hello",
//	    "object": "world",
//	})
//	// path == "/hello/world"
func Expand(template string, params PathParams) (string, error) {
	placeholders := ParseTemplate(template)
	if len(placeholders) == 0 {
		return template, nil
	}

	var buf strings.Builder
	buf.Grow(len(template))

	last := 0
	for _, p := range placeholders {
		r, err := p.Substitute(params)
		if err != nil {
			return "", err
		}

		lead := template[last:p.start]
		last = p.end

		if r.Dst != p.Token {
			// Dst spans the separator too; drop it from the literal run.
			trimmed, ok := strings.CutSuffix(lead, r.Dst[:len(r.Dst)-len(p.Token)])
			if !ok {
				buf.WriteString(lead)
				buf.WriteString(p.Token)
				continue
			}
			lead = trimmed
		}

		buf.WriteString(lead)
		buf.WriteString(r.Src)
	}
	buf.WriteString(template[last:])

	return buf.String(), nil
}
