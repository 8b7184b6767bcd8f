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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplate_NoPlaceholders(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ParseTemplate("/foo/bar"))
	assert.Empty(t, ParseTemplate(""))
}

func TestParseTemplate_Kinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		template string
		want     Placeholder
	}{
		{"/{name}", Placeholder{Token: "{name}", Name: "name", Kind: Plain}},
		{"/{name?}", Placeholder{Token: "{name?}", Name: "name", Kind: Optional}},
		{"/{name*}", Placeholder{Token: "{name*}", Name: "name", Kind: Wildcard}},
		{"/{name*3}", Placeholder{Token: "{name*3}", Name: "name", Kind: Multi, Count: 3}},
		{"/{name*12}", Placeholder{Token: "{name*12}", Name: "name", Kind: Multi, Count: 12}},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			t.Parallel()

			got := ParseTemplate(tt.template)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want.Token, got[0].Token)
			assert.Equal(t, tt.want.Name, got[0].Name)
			assert.Equal(t, tt.want.Kind, got[0].Kind)
			assert.Equal(t, tt.want.Count, got[0].Count)
		})
	}
}

func TestParseTemplate_OrderAndDuplicates(t *testing.T) {
	t.Parallel()

	got := ParseTemplate("/{a}/x/{b?}/{a}/{rest*}")
	require.Len(t, got, 4)

	names := make([]string, len(got))
	for i, p := range got {
		names[i] = p.Name
	}
	assert.Equal(t, []string{"a", "b", "a", "rest"}, names)
	assert.Equal(t, Wildcard, got[3].Kind)
}

func TestParseTemplate_IgnoresMalformedTokens(t *testing.T) {
	t.Parallel()

	// None of these are placeholders: zero multiplier, non-word names,
	// optional wildcard, empty braces.
	for _, tmpl := range []string{"/{a*0}", "/{a-b}", "/{a*?}", "/{}", "/{a?b}"} {
		assert.Empty(t, ParseTemplate(tmpl), tmpl)
	}
}

func TestParseTemplate_MultiplierOverflow(t *testing.T) {
	t.Parallel()

	got := ParseTemplate("/{a*99999999999999999999999}")
	require.Len(t, got, 1)
	assert.Equal(t, Multi, got[0].Kind)
	assert.Equal(t, math.MaxInt, got[0].Count)
}

func TestPlaceholderKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "plain", Plain.String())
	assert.Equal(t, "optional", Optional.String())
	assert.Equal(t, "wildcard", Wildcard.String())
	assert.Equal(t, "multi", Multi.String())
	assert.Equal(t, "unknown", PlaceholderKind(42).String())
}
