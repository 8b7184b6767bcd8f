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

// Package config loads the settings of the reverse command.
//
// Settings are layered, later layers overriding earlier ones:
//
//  1. built-in defaults ([Defaults])
//  2. a YAML, TOML or JSON file
//  3. environment variables prefixed with REVERSE_
//
// Nested keys map to environment variables by joining the path with
// underscores, so "tracing.exporter" is read from REVERSE_TRACING_EXPORTER
// and "shutdown_timeout" from REVERSE_SHUTDOWN_TIMEOUT.
//
// Example file:
//
//	addr: ":9090"
//	routes: routes.yaml
//	log:
//	  format: json
//	  level: info
//	tracing:
//	  exporter: otlp
//	  endpoint: collector:4317
//	  insecure: true
package config
