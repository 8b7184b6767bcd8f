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
	"net/http"
	"strings"
)

// DefaultForwardedProtoHeader is the header consulted for the protocol a
// client used in front of a proxy.
const DefaultForwardedProtoHeader = "X-Forwarded-Proto"

// RequestContext is the read-only request metadata used to build absolute
// URLs. It is taken per call and never retained.
type RequestContext struct {
	// ForwardedProto is the protocol reported by a proxy, e.g. "https".
	ForwardedProto string

	// Proto is the protocol of the connection itself: "http" or "https".
	Proto string

	// Host is the host the client addressed, possibly with a port.
	Host string
}

// RequestContextFrom extracts a [RequestContext] from an inbound request,
// reading the forwarded protocol from [DefaultForwardedProtoHeader].
//
// Example:
//
//	rc := reverse.RequestContextFrom(r)
//	// Request: https://example.com:8443/api -> {Proto: "https", Host: "example.com:8443"}
func RequestContextFrom(r *http.Request) RequestContext {
	return RequestContextFromHeader(r, DefaultForwardedProtoHeader)
}

// RequestContextFromHeader is like [RequestContextFrom] but reads the
// forwarded protocol from the named header. An empty name disables it.
func RequestContextFromHeader(r *http.Request, header string) RequestContext {
	rc := RequestContext{Proto: "http", Host: r.Host}
	if r.TLS != nil {
		rc.Proto = "https"
	}
	if rc.Host == "" && r.URL != nil {
		rc.Host = r.URL.Host
	}

	if header != "" {
		// Chained proxies append; the first entry is the client-facing one.
		proto, _, _ := strings.Cut(r.Header.Get(header), ",")
		rc.ForwardedProto = strings.ToLower(strings.TrimSpace(proto))
	}

	return rc
}

// Compose turns a resolved path into the final URI.
//
// With opts.Rel set the path is returned unchanged. Otherwise the
// protocol is "https" or "http" when opts.Secure is set, and falls back to
// rc.ForwardedProto, then rc.Proto, then "http". The host is opts.Host,
// falling back to rc.Host. The result is "<protocol>://<host><path>".
//
// The options are validated first; invalid options fail with
// [ErrInvalidOptions].
//
// Example:
//
//	u, _ := reverse.Compose("/foo", reverse.URLOptions{Secure: reverse.Bool(true)},
//	    reverse.RequestContext{ForwardedProto: "http", Host: "localhost:1337"})
//	// u == "https://localhost:1337/foo"
func Compose(path string, opts URLOptions, rc RequestContext) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}

	if opts.Rel {
		return path, nil
	}

	return protocol(opts, rc) + "://" + host(opts, rc) + path, nil
}

func protocol(opts URLOptions, rc RequestContext) string {
	if opts.Secure != nil {
		if *opts.Secure {
			return "https"
		}
		return "http"
	}

	switch {
	case rc.ForwardedProto != "":
		return rc.ForwardedProto
	case rc.Proto != "":
		return rc.Proto
	default:
		return "http"
	}
}

func host(opts URLOptions, rc RequestContext) string {
	if opts.Host != "" {
		return opts.Host
	}

	return rc.Host
}
