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
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"dario.cat/mergo"
	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

type decoder func(data []byte, v any) error

// decoders maps file extensions to their decoder.
var decoders = map[string]decoder{
	".yaml": func(data []byte, v any) error { return yaml.Unmarshal(data, v) },
	".yml":  func(data []byte, v any) error { return yaml.Unmarshal(data, v) },
	".toml": toml.Unmarshal,
	".json": json.Unmarshal,
}

func loadFile(path string) (map[string]any, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("config: unsupported file extension %q", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var out map[string]any
	if err := decode(data, &out); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	return out, nil
}

// merge overrides dst with the keys of src, empty values included.
func merge(dst, src map[string]any) error {
	if err := mergo.Merge(&dst, src, mergo.WithOverride, mergo.WithOverwriteWithEmptyValue); err != nil {
		return fmt.Errorf("config: merge: %w", err)
	}

	return nil
}

// envLayer picks the REVERSE_ variables that name one of the known keys.
// Unknown variables are ignored.
func envLayer(environ []string, known map[string]any) map[string]any {
	byEnv := make(map[string]string, len(known))
	for key := range known {
		byEnv[strings.ReplaceAll(key, ".", "_")] = key
	}

	out := make(map[string]any)
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		rest, ok := strings.CutPrefix(name, EnvPrefix)
		if !ok {
			continue
		}
		if key, ok := byEnv[strings.ToLower(rest)]; ok {
			out[key] = value
		}
	}

	return out
}

// flatten turns nested maps into dotted keys.
func flatten(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	flattenInto(out, "", m)

	return out
}

func flattenInto(out map[string]any, prefix string, m map[string]any) {
	for k, v := range m {
		key := strings.ToLower(k)
		if prefix != "" {
			key = prefix + "." + key
		}
		if nested, ok := v.(map[string]any); ok {
			flattenInto(out, key, nested)
			continue
		}
		out[key] = v
	}
}

// unflatten is the inverse of flatten.
func unflatten(flat map[string]any) map[string]any {
	out := make(map[string]any)
	for _, key := range slices.Sorted(maps.Keys(flat)) {
		parts := strings.Split(key, ".")
		node := out
		for _, p := range parts[:len(parts)-1] {
			next, ok := node[p].(map[string]any)
			if !ok {
				next = make(map[string]any)
				node[p] = next
			}
			node = next
		}
		node[parts[len(parts)-1]] = flat[key]
	}

	return out
}
