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

// Package query renders query parameter bags as URL query strings.
//
// A [Bag] maps keys to values. Nil values stand for "not set" and are
// omitted entirely instead of being rendered as "key=". Slices repeat the
// key once per element. Scalars are converted with spf13/cast, so numbers,
// bools and [fmt.Stringer] values are accepted alongside strings.
//
// The [Encoder] interface lets hosts plug in a different encoding. [Form]
// is the default and produces standard form encoding with keys sorted:
//
//	s, err := query.Form{}.Encode(query.Bag{"greet": "hello", "object": "world"})
//	// s == "greet=hello&object=world"
package query
