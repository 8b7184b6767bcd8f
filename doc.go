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

// Package reverse builds URIs from named routes (reverse routing).
//
// A route is registered under a stable identifier with a path template.
// Given the identifier and a bag of parameters, a [Resolver] expands the
// template into a concrete path, appends an optional query string and,
// for absolute URLs, prefixes protocol and host taken from options or
// from the inbound request.
//
// # Path templates
//
// Templates contain zero or more placeholders:
//
//	{name}     plain: a required value
//	{name?}    optional: erased together with its leading "/" when absent
//	{name*}    wildcard: a required value that may contain "/"
//	{name*N}   multi: exactly N segments given as a slice, joined with "/"
//
// Examples:
//
//	"/{greet}/{object}"  + {greet: "hello", object: "world"}  -> "/hello/world"
//	"/{path*}"           + {path: "hello/world"}               -> "/hello/world"
//	"/{path*3}"          + {path: ["hello", "foo", "bar"]}     -> "/hello/foo/bar"
//	"/foobar/{param?}"   + {}                                  -> "/foobar"
//	"/{param?}"          + {}                                  -> ""
//
// # Quick start
//
//	res := reverse.MustNew(reverse.WithRoutes(map[string]string{
//	    "users.get": "/users/{id}",
//	}))
//
//	uri, err := res.ResolveURI(ctx, "users.get", reverse.Params{
//	    Path:  reverse.PathParams{"id": 42},
//	    Query: query.Bag{"tab": "posts"},
//	})
//	// uri == "/users/42?tab=posts"
//
//	u, err := res.ResolveURL(ctx, "users.get", reverse.Params{
//	    Path: reverse.PathParams{"id": 42},
//	}, reverse.URLOptions{}, reverse.RequestContextFrom(req))
//	// u == "https://example.com/users/42" behind a TLS-terminating proxy
//
// # Errors
//
// Every failure is an [*Error] with an [ErrorKind]. Use [errors.Is] with
// the sentinel errors or [KindOf] to branch:
//
//	switch reverse.KindOf(err) {
//	case reverse.KindRouteNotFound:
//	    // 404
//	case reverse.KindMissingParameter, reverse.KindInvalidOptions:
//	    // 400
//	}
//
// [*Error] implements HTTPStatus, Code and Details, so the rivaas.dev/errors
// formatters render it without further mapping. See the middleware
// package for net/http integration.
//
// # Raw options
//
// Parameter bags and URL options that arrive as untyped maps (decoded
// JSON, CLI flags) are checked with [ParseParams] and [ParseURLOptions],
// which enforce the recognized shapes and reject everything else with
// [ErrInvalidOptions].
package reverse
