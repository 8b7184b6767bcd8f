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

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

// EnvPrefix is the prefix of the environment variables read by [Load].
const EnvPrefix = "REVERSE_"

// ErrInvalidSettings is returned when the merged settings fail validation.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds the configuration of the reverse command.
type Settings struct {
	// Addr is the listen address of the serve command.
	Addr string `mapstructure:"addr" validate:"required"`

	// Routes is the route file, or "consul:<key>" for a route file stored
	// in Consul's key-value store.
	Routes string `mapstructure:"routes" validate:"required"`

	// ForwardedProtoHeader is the header carrying the client protocol.
	// Empty ignores forwarded protocols.
	ForwardedProtoHeader string `mapstructure:"forwarded_proto_header"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`

	Log     Log     `mapstructure:"log"`
	Metrics Metrics `mapstructure:"metrics"`
	Tracing Tracing `mapstructure:"tracing"`
	Consul  Consul  `mapstructure:"consul"`
}

// Log configures the logger.
type Log struct {
	Format string `mapstructure:"format" validate:"oneof=json text console auto"`
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

// Metrics configures metric export. Endpoint and Interval apply to the
// push exporters only.
type Metrics struct {
	Exporter string        `mapstructure:"exporter" validate:"oneof=prometheus stdout otlp-http"`
	Endpoint string        `mapstructure:"endpoint"`
	Interval time.Duration `mapstructure:"interval" validate:"gte=0"`
}

// Tracing configures span export.
type Tracing struct {
	Exporter string `mapstructure:"exporter" validate:"oneof=noop stdout otlp otlp-http"`
	Endpoint string `mapstructure:"endpoint"`
	Insecure bool   `mapstructure:"insecure"`
}

// Consul configures the Consul client used for "consul:" route sources.
type Consul struct {
	// Addr overrides CONSUL_HTTP_ADDR.
	Addr string `mapstructure:"addr"`
}

// Defaults returns the built-in settings as a nested map.
func Defaults() map[string]any {
	return map[string]any{
		"addr":                   ":8080",
		"routes":                 "routes.yaml",
		"forwarded_proto_header": "X-Forwarded-Proto",
		"shutdown_timeout":       "10s",
		"log": map[string]any{
			"format": "text",
			"level":  "warn",
		},
		"metrics": map[string]any{
			"exporter": "prometheus",
			"endpoint": "",
			"interval": "30s",
		},
		"tracing": map[string]any{
			"exporter": "noop",
			"endpoint": "",
			"insecure": false,
		},
		"consul": map[string]any{
			"addr": "",
		},
	}
}

// Load merges the defaults, the file at path (skipped when path is empty)
// and the REVERSE_ variables of environ, then decodes and validates the
// result.
//
// Example:
//
//	s, err := config.Load("reverse.yaml", os.Environ())
func Load(path string, environ []string) (Settings, error) {
	merged := flatten(Defaults())

	if path != "" {
		file, err := loadFile(path)
		if err != nil {
			return Settings{}, err
		}
		if err := merge(merged, flatten(file)); err != nil {
			return Settings{}, err
		}
	}

	if err := merge(merged, envLayer(environ, merged)); err != nil {
		return Settings{}, err
	}

	return Decode(unflatten(merged))
}

// Decode decodes and validates raw settings. Unknown keys are rejected.
func Decode(raw map[string]any) (Settings, error) {
	var s Settings

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "mapstructure",
		Result:           &s,
	})
	if err != nil {
		return Settings{}, err
	}

	if err := dec.Decode(raw); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	return s, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the settings.
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed on %q", ErrInvalidSettings, fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	return nil
}
