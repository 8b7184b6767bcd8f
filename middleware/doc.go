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

// Package middleware integrates reverse routing with net/http servers.
//
// [New] returns a middleware that captures the request metadata needed to
// build absolute URLs (forwarded protocol, connection protocol, declared
// host) and makes a [reverse.Resolver] available to handlers:
//
//	res := reverse.MustNew(reverse.WithLookup(routes))
//
//	mux := http.NewServeMux()
//	mux.HandleFunc("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
//	    u, err := middleware.URL(r, "users.get", reverse.Params{
//	        Path: reverse.PathParams{"id": r.PathValue("id")},
//	    }, reverse.URLOptions{})
//	    if err != nil {
//	        middleware.WriteError(w, r, err)
//	        return
//	    }
//	    w.Header().Set("Location", u)
//	})
//
//	http.ListenAndServe(":8080", middleware.New(res)(mux))
//
// # Errors
//
// [WriteError] renders resolution failures as RFC 9457 problem details
// using rivaas.dev/errors: unknown routes answer 404, malformed or missing
// parameters and invalid options answer 400.
package middleware
