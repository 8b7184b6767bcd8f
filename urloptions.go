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
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared; validator.Validate caches struct metadata and is
// safe for concurrent use.
var validate = newValidator()

// newValidator reports fields under their option names ("host", not "Host").
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("mapstructure"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("url_host", func(fl validator.FieldLevel) bool {
		return validHost(fl.Field().String())
	})

	return v
}

// validHost reports whether h can stand as the authority of a URL: a
// hostname or IP with an optional port, IPv6 in brackets.
func validHost(h string) bool {
	if !strings.HasPrefix(h, "[") && strings.Count(h, ":") > 1 {
		return false
	}
	u, err := url.Parse("//" + h)

	return err == nil && u.Host == h
}

// URLOptions controls how a resolved path is turned into a URL.
//
// The zero value auto-detects the protocol from the request and uses the
// request's declared host.
type URLOptions struct {
	// Secure forces "https" when true and "http" when false. When nil the
	// protocol is taken from the request context.
	Secure *bool `mapstructure:"secure"`

	// Rel returns the bare path without protocol and host.
	Rel bool `mapstructure:"rel"`

	// Host overrides the request's declared host. It may carry a port.
	Host string `mapstructure:"host" validate:"omitempty,url_host"`

	// Lookup, when set, replaces the resolver's route lookup for this call.
	Lookup Lookup `mapstructure:"-" validate:"-"`
}

// Bool returns a pointer to v, for use with [URLOptions.Secure].
func Bool(v bool) *bool {
	return &v
}

// Validate checks the options and returns an [ErrInvalidOptions] error
// naming the first offending field.
func (o URLOptions) Validate() error {
	if err := validate.Struct(o); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return invalidOptions(fe.Field(), fmt.Errorf("failed on %q", fe.Tag()))
		}
		return invalidOptions("", err)
	}

	return nil
}

// ParseURLOptions builds [URLOptions] from a raw map of the shape
//
//	{"secure": bool, "rel": bool, "host": string}
//
// Every key is optional; rel defaults to false. Unknown keys or values of
// the wrong type fail with [ErrInvalidOptions].
//
// Example:
//
//	opts, err := reverse.ParseURLOptions(map[string]any{"secure": true})
func ParseURLOptions(raw map[string]any) (URLOptions, error) {
	var o URLOptions
	if raw == nil {
		return o, nil
	}

	if err := checkShape(urlOptionsSchema, raw); err != nil {
		return URLOptions{}, err
	}
	if err := decodeStrict(raw, &o); err != nil {
		return URLOptions{}, err
	}
	if err := o.Validate(); err != nil {
		return URLOptions{}, err
	}

	return o, nil
}
