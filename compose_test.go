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
	"crypto/tls"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	t.Parallel()

	rc := RequestContext{Proto: "http", Host: "localhost:1337"}

	tests := []struct {
		name string
		path string
		opts URLOptions
		rc   RequestContext
		want string
	}{
		{"defaults", "/foo", URLOptions{}, rc, "http://localhost:1337/foo"},
		{"empty path is the root", "", URLOptions{}, rc, "http://localhost:1337"},
		{"rel", "/foo", URLOptions{Rel: true}, rc, "/foo"},
		{"rel ignores everything else", "/foo", URLOptions{Rel: true, Secure: Bool(true), Host: "example.com"}, rc, "/foo"},
		{"secure true beats forwarded http", "/foo", URLOptions{Secure: Bool(true)}, RequestContext{ForwardedProto: "http", Proto: "http", Host: "localhost:1337"}, "https://localhost:1337/foo"},
		{"secure false beats forwarded https", "/foo", URLOptions{Secure: Bool(false)}, RequestContext{ForwardedProto: "https", Proto: "https", Host: "localhost:1337"}, "http://localhost:1337/foo"},
		{"forwarded proto wins over connection", "/foo", URLOptions{}, RequestContext{ForwardedProto: "https", Proto: "http", Host: "localhost:1337"}, "https://localhost:1337/foo"},
		{"connection proto", "/foo", URLOptions{}, RequestContext{Proto: "https", Host: "localhost:1337"}, "https://localhost:1337/foo"},
		{"no protocol at all", "/foo", URLOptions{}, RequestContext{Host: "localhost"}, "http://localhost/foo"},
		{"host override", "/foo", URLOptions{Host: "foobar.io:5000"}, rc, "http://foobar.io:5000/foo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Compose(tt.path, tt.opts, tt.rc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompose_InvalidHost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		host    string
		want    string
		wantErr bool
	}{
		{host: "not a host/", wantErr: true},
		{host: "::1", wantErr: true},
		{host: "user@example.com", wantErr: true},
		{host: "example.com/path", wantErr: true},
		{host: "example.com?q", wantErr: true},
		{host: "[::1]:8080", want: "http://[::1]:8080/foo"},
		{host: "[::1]", want: "http://[::1]/foo"},
		{host: "my_host:8080", want: "http://my_host:8080/foo"},
		{host: "127.0.0.1", want: "http://127.0.0.1/foo"},
		{host: "foobar.io:5000", want: "http://foobar.io:5000/foo"},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			t.Parallel()

			u, err := Compose("/foo", URLOptions{Host: tt.host}, RequestContext{})
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidOptions)
				assert.Equal(t, KindInvalidOptions, KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, u)
		})
	}
}

func TestRequestContextFrom(t *testing.T) {
	t.Parallel()

	t.Run("plain request", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "http://localhost:1337/foo", nil)
		assert.Equal(t, RequestContext{Proto: "http", Host: "localhost:1337"}, RequestContextFrom(req))
	})

	t.Run("tls", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "https://example.com/foo", nil)
		req.TLS = &tls.ConnectionState{}
		assert.Equal(t, "https", RequestContextFrom(req).Proto)
	})

	t.Run("forwarded proto list", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "http://example.com/foo", nil)
		req.Header.Set("X-Forwarded-Proto", "HTTPS, http")
		assert.Equal(t, "https", RequestContextFrom(req).ForwardedProto)
	})

	t.Run("custom header", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "http://example.com/foo", nil)
		req.Header.Set("X-Forwarded-Proto", "https")
		req.Header.Set("X-Scheme", "wss")

		assert.Equal(t, "wss", RequestContextFromHeader(req, "X-Scheme").ForwardedProto)
		assert.Empty(t, RequestContextFromHeader(req, "").ForwardedProto)
	})

	t.Run("host from url", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "http://example.com/foo", nil)
		req.Host = ""
		assert.Equal(t, "example.com", RequestContextFrom(req).Host)
	})
}
