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

// Package logging builds [log/slog] loggers for the reverse command and
// servers embedding a resolver.
//
// Loggers created by [New] add trace_id and span_id to every record logged
// with a context that carries an OpenTelemetry span, so the warnings a
// resolver emits for failed resolutions line up with their
// "reverse.Resolve" spans:
//
//	logger, err := logging.New(
//	    logging.WithJSONHandler(),
//	    logging.WithLevel(slog.LevelDebug),
//	    logging.WithServiceName("links"),
//	)
//	res := reverse.MustNew(reverse.WithLookup(routes), reverse.WithLogger(logger))
package logging
