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

//go:build integration

package middleware_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"rivaas.dev/reverse"
	"rivaas.dev/reverse/middleware"
)

// linkRequest is the JSON body accepted by the test server.
type linkRequest struct {
	ID      string         `json:"id"`
	Params  map[string]any `json:"params"`
	Options map[string]any `json:"options"`
}

// newServer builds a server whose /link endpoint resolves the route named
// in the request body and answers with the resulting URL.
func newServer() *httptest.Server {
	res := reverse.MustNew(reverse.WithRoutes(map[string]string{
		"foo":      "/foo",
		"bar":      "/bar",
		"greeting": "/{greet}/{object}",
		"wildcard": "/hello/{path*}",
		"multi":    "/hello/{path*2}",
		"optional": "/foobar/{param?}",
		"root-opt": "/{param?}",
		"foobar":   "/foobar",
	}))

	mux := http.NewServeMux()
	mux.HandleFunc("POST /link", func(w http.ResponseWriter, r *http.Request) {
		var body linkRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		params, err := reverse.ParseParams(body.Params)
		if err != nil {
			middleware.WriteError(w, r, err)
			return
		}

		opts, err := reverse.ParseURLOptions(body.Options)
		if err != nil {
			middleware.WriteError(w, r, err)
			return
		}

		u, err := middleware.URL(r, body.ID, params, opts)
		if err != nil {
			middleware.WriteError(w, r, err)
			return
		}

		_, _ = io.WriteString(w, u)
	})

	return httptest.NewServer(middleware.New(res)(mux))
}

var _ = Describe("Reverse routing middleware", func() {
	var (
		server *httptest.Server
		base   string
	)

	BeforeEach(func() {
		server = newServer()
		base = "http://" + server.Listener.Addr().String()
	})

	AfterEach(func() {
		server.Close()
	})

	post := func(body string, header http.Header) (int, string) {
		req, err := http.NewRequest(http.MethodPost, server.URL+"/link", strings.NewReader(body))
		Expect(err).NotTo(HaveOccurred())
		for k, v := range header {
			req.Header[k] = v
		}

		resp, err := server.Client().Do(req)
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()

		payload, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())

		return resp.StatusCode, string(payload)
	}

	Describe("Resolving routes", func() {
		It("should build an absolute URL for a static route", func() {
			status, payload := post(`{"id":"foo"}`, nil)
			Expect(status).To(Equal(http.StatusOK))
			Expect(payload).To(Equal(base + "/foo"))
		})

		It("should substitute plain parameters", func() {
			status, payload := post(`{"id":"greeting","params":{"params":{"greet":"hello","object":"world"}}}`, nil)
			Expect(status).To(Equal(http.StatusOK))
			Expect(payload).To(Equal(base + "/hello/world"))
		})

		It("should substitute wildcard parameters", func() {
			_, payload := post(`{"id":"wildcard","params":{"params":{"path":"world"}}}`, nil)
			Expect(payload).To(Equal(base + "/hello/world"))
		})

		It("should join multi-segment parameters", func() {
			_, payload := post(`{"id":"multi","params":{"params":{"path":["foo","bar"]}}}`, nil)
			Expect(payload).To(Equal(base + "/hello/foo/bar"))
		})

		It("should drop a missing optional parameter with its separator", func() {
			_, payload := post(`{"id":"optional"}`, nil)
			Expect(payload).To(Equal(base + "/foobar"))
		})

		It("should collapse a missing root optional parameter", func() {
			_, payload := post(`{"id":"root-opt"}`, nil)
			Expect(payload).To(Equal(base))
		})

		It("should append the query string", func() {
			_, payload := post(`{"id":"foobar","params":{"query":{"greet":"hello","object":"world"}}}`, nil)
			Expect(payload).To(Equal(base + "/foobar?greet=hello&object=world"))
		})
	})

	Describe("Protocol and host", func() {
		It("should prefer the secure option over the forwarded protocol", func() {
			_, payload := post(`{"id":"foo","options":{"secure":true}}`, http.Header{"X-Forwarded-Proto": {"http"}})
			Expect(payload).To(Equal("https://" + server.Listener.Addr().String() + "/foo"))

			_, payload = post(`{"id":"foo","options":{"secure":false}}`, http.Header{"X-Forwarded-Proto": {"https"}})
			Expect(payload).To(Equal(base + "/foo"))
		})

		It("should follow the forwarded protocol", func() {
			_, payload := post(`{"id":"foo"}`, http.Header{"X-Forwarded-Proto": {"http"}})
			Expect(payload).To(Equal(base + "/foo"))

			_, payload = post(`{"id":"foo"}`, http.Header{"X-Forwarded-Proto": {"https"}})
			Expect(payload).To(Equal("https://" + server.Listener.Addr().String() + "/foo"))
		})

		It("should return a relative URI when rel is set", func() {
			_, payload := post(`{"id":"foo","options":{"rel":true}}`, nil)
			Expect(payload).To(Equal("/foo"))
		})

		It("should override the host", func() {
			_, payload := post(`{"id":"foo","options":{"host":"foobar.io:5000"}}`, nil)
			Expect(payload).To(Equal("http://foobar.io:5000/foo"))
		})
	})

	Describe("Errors", func() {
		problem := func(payload string) map[string]any {
			var body map[string]any
			Expect(json.Unmarshal([]byte(payload), &body)).To(Succeed())
			return body
		}

		It("should answer 404 for an unknown route", func() {
			status, payload := post(`{"id":"nope"}`, nil)
			Expect(status).To(Equal(http.StatusNotFound))
			Expect(problem(payload)).To(HaveKeyWithValue("code", "route_not_found"))
		})

		It("should answer 400 for a missing parameter", func() {
			status, payload := post(`{"id":"greeting","params":{"params":{"greet":"hello"}}}`, nil)
			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(problem(payload)).To(HaveKeyWithValue("code", "missing_parameter"))
		})

		It("should answer 400 for a multi parameter of the wrong length", func() {
			status, payload := post(`{"id":"multi","params":{"params":{"path":["foo"]}}}`, nil)
			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(problem(payload)).To(HaveKeyWithValue("code", "parameter_count_mismatch"))
		})

		It("should answer 400 for malformed options", func() {
			status, payload := post(`{"id":"foo","options":{"secure":"yes"}}`, nil)
			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(problem(payload)).To(HaveKeyWithValue("code", "invalid_options"))
		})
	})
})
