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
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKind_Status(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind   ErrorKind
		code   string
		status int
	}{
		{KindRouteNotFound, "route_not_found", http.StatusNotFound},
		{KindMissingParameter, "missing_parameter", http.StatusBadRequest},
		{KindInvalidParameterType, "invalid_parameter_type", http.StatusBadRequest},
		{KindParameterCountMismatch, "parameter_count_mismatch", http.StatusBadRequest},
		{KindInvalidOptions, "invalid_options", http.StatusBadRequest},
		{KindUnknown, "unknown", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()

			err := &Error{Kind: tt.kind, Message: "x"}
			assert.Equal(t, tt.code, err.Code())
			assert.Equal(t, tt.status, err.HTTPStatus())
		})
	}
}

func TestError_IsMatchesKindOnly(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("wrapped: %w", &Error{Kind: KindMissingParameter, Param: "id", RouteID: "users.get", Message: "missing parameter"})

	assert.ErrorIs(t, err, ErrMissingParameter)
	assert.NotErrorIs(t, err, ErrRouteNotFound)
	assert.Equal(t, KindMissingParameter, KindOf(err))
	assert.Equal(t, KindUnknown, KindOf(errors.New("other")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestError_Message(t *testing.T) {
	t.Parallel()

	err := &Error{
		Kind:    KindInvalidOptions,
		Param:   "host",
		RouteID: "foo",
		Message: "invalid options",
		Err:     errors.New("bad host"),
	}

	assert.Equal(t, `reverse: invalid options "host" (route "foo"): bad host`, err.Error())
	assert.Equal(t, "bad host", errors.Unwrap(err).Error())
}

func TestError_Details(t *testing.T) {
	t.Parallel()

	err := &Error{Kind: KindParameterCountMismatch, Param: "path", RouteID: "files", Expected: 3, Actual: 2}
	assert.Equal(t, map[string]any{
		"route_id": "files",
		"param":    "path",
		"expected": 3,
		"actual":   2,
	}, err.Details())

	assert.Empty(t, (&Error{Kind: KindRouteNotFound}).Details())
}
