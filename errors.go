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
	"strings"
)

// ErrorKind classifies a resolution failure.
// Callers branch on the kind with [errors.Is] against the sentinel errors
// or with [KindOf], never by matching error strings.
type ErrorKind uint8

const (
	// KindUnknown is returned by [KindOf] for errors not produced by this package.
	KindUnknown ErrorKind = iota
	// KindRouteNotFound means no route is registered under the identifier.
	KindRouteNotFound
	// KindMissingParameter means a required parameter is absent or empty.
	KindMissingParameter
	// KindInvalidParameterType means a parameter value has the wrong shape,
	// e.g. a multi-segment placeholder received a non-sequence value.
	KindInvalidParameterType
	// KindParameterCountMismatch means a multi-segment value has the wrong length.
	KindParameterCountMismatch
	// KindInvalidOptions means a parameter bag or URL options failed validation.
	KindInvalidOptions
)

// String returns the machine-readable code of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindRouteNotFound:
		return "route_not_found"
	case KindMissingParameter:
		return "missing_parameter"
	case KindInvalidParameterType:
		return "invalid_parameter_type"
	case KindParameterCountMismatch:
		return "parameter_count_mismatch"
	case KindInvalidOptions:
		return "invalid_options"
	default:
		return "unknown"
	}
}

// HTTPStatus returns the status code a host server should answer with.
// An unknown route is a not-found condition; everything else is caused by
// malformed caller input.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindRouteNotFound:
		return http.StatusNotFound
	case KindUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// Sentinel errors for use with [errors.Is].
//
// Example:
//
//	uri, err := res.ResolveURI(ctx, "users.get", params)
//	if errors.Is(err, reverse.ErrMissingParameter) {
//	    // ask the caller for the parameter
//	}
var (
	ErrRouteNotFound          = &Error{Kind: KindRouteNotFound, Message: "route not found"}
	ErrMissingParameter       = &Error{Kind: KindMissingParameter, Message: "missing parameter"}
	ErrInvalidParameterType   = &Error{Kind: KindInvalidParameterType, Message: "invalid parameter type"}
	ErrParameterCountMismatch = &Error{Kind: KindParameterCountMismatch, Message: "parameter count mismatch"}
	ErrInvalidOptions         = &Error{Kind: KindInvalidOptions, Message: "invalid options"}
)

// Error is the error type returned by every resolution operation.
//
// It implements the optional interfaces understood by the rivaas.dev/errors
// formatters: HTTPStatus() for the response status, Code() for a
// machine-readable code and Details() for structured context.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// RouteID is the identifier being resolved, when known.
	RouteID string

	// Param is the placeholder or option name at fault, when known.
	Param string

	// Expected and Actual carry the declared and supplied segment counts
	// for [KindParameterCountMismatch].
	Expected int
	Actual   int

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("reverse: ")
	b.WriteString(e.Message)
	if e.Param != "" {
		fmt.Fprintf(&b, " %q", e.Param)
	}
	if e.RouteID != "" {
		fmt.Fprintf(&b, " (route %q)", e.RouteID)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an [*Error] of the same kind.
// This makes every error match the sentinel of its kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == e.Kind
}

// HTTPStatus returns the HTTP status code for the error.
func (e *Error) HTTPStatus() int {
	return e.Kind.HTTPStatus()
}

// Code returns the machine-readable error code.
func (e *Error) Code() string {
	return e.Kind.String()
}

// Details returns structured context about the failure.
func (e *Error) Details() any {
	d := make(map[string]any, 4)
	if e.RouteID != "" {
		d["route_id"] = e.RouteID
	}
	if e.Param != "" {
		d["param"] = e.Param
	}
	if e.Kind == KindParameterCountMismatch {
		d["expected"] = e.Expected
		d["actual"] = e.Actual
	}

	return d
}

// KindOf returns the [ErrorKind] of err, or [KindUnknown] if err was not
// produced by this package.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindUnknown
}

// withRoute stamps the route identifier onto err when it is an [*Error]
// that does not carry one yet.
func withRoute(err error, id string) error {
	var e *Error
	if errors.As(err, &e) && e.RouteID == "" {
		e.RouteID = id
	}

	return err
}

func missingParameter(name string) *Error {
	return &Error{Kind: KindMissingParameter, Param: name, Message: "missing parameter"}
}

func invalidOptions(param string, cause error) *Error {
	return &Error{Kind: KindInvalidOptions, Param: param, Message: "invalid options", Err: cause}
}
