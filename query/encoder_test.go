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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type color string

func (c color) String() string { return "color:" + string(c) }

func TestForm_Encode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		bag  Bag
		want string
	}{
		{name: "nil bag", bag: nil, want: ""},
		{name: "empty bag", bag: Bag{}, want: ""},
		{name: "sorted keys", bag: Bag{"object": "world", "greet": "hello"}, want: "greet=hello&object=world"},
		{name: "unset value omitted", bag: Bag{"greet": nil}, want: ""},
		{name: "unset among set", bag: Bag{"greet": nil, "object": "world"}, want: "object=world"},
		{name: "nil pointer omitted", bag: Bag{"greet": (*string)(nil)}, want: ""},
		{name: "numbers and bools", bag: Bag{"page": 2, "ratio": 0.5, "draft": false}, want: "draft=false&page=2&ratio=0.5"},
		{name: "stringer", bag: Bag{"c": color("red")}, want: "c=color%3Ared"},
		{name: "slice repeats key", bag: Bag{"tag": []string{"a", "b"}}, want: "tag=a&tag=b"},
		{name: "mixed slice skips nil", bag: Bag{"id": []any{1, nil, "x"}}, want: "id=1&id=x"},
		{name: "escaping", bag: Bag{"q": "a b&c"}, want: "q=a+b%26c"},
		{name: "empty string kept", bag: Bag{"q": ""}, want: "q="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Form{}.Encode(tt.bag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestForm_EncodeRejectsComposite(t *testing.T) {
	t.Parallel()

	_, err := Form{}.Encode(Bag{"nested": map[string]any{"a": 1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `key "nested"`)
}

func TestEncoderFunc(t *testing.T) {
	t.Parallel()

	enc := EncoderFunc(func(b Bag) (string, error) {
		return "fixed", nil
	})

	got, err := enc.Encode(Bag{"a": "b"})
	require.NoError(t, err)
	assert.Equal(t, "fixed", got)
}
