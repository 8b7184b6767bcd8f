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

package table

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// Format identifies a route file encoding.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// decoder decodes data into the value pointed to by v.
type decoder func(data []byte, v any) error

var decoders = map[Format]decoder{
	FormatYAML: func(data []byte, v any) error { return yaml.Unmarshal(data, v) },
	FormatTOML: toml.Unmarshal,
	FormatJSON: json.Unmarshal,
}

// Entry is one route of a route file.
type Entry struct {
	ID   string `yaml:"id" toml:"id" json:"id"`
	Path string `yaml:"path" toml:"path" json:"path"`
}

// File is the document layout of a route file.
type File struct {
	Routes []Entry `yaml:"routes" toml:"routes" json:"routes"`
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported route file extension %q", filepath.Ext(path))
	}
}

// LoadFile reads a route file, choosing the decoder by extension.
func LoadFile(path string) (*Table, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open route file: %w", err)
	}
	defer f.Close()

	t, err := Load(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

// Load decodes a route document and registers every entry in a new table.
// It fails on the first invalid or duplicate entry.
func Load(r io.Reader, format Format) (*Table, error) {
	decode, ok := decoders[format]
	if !ok {
		return nil, fmt.Errorf("decoder not found for format: %s", format)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read route file: %w", err)
	}

	var doc File
	if err := decode(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s route file: %w", format, err)
	}

	t := New()
	for i, e := range doc.Routes {
		if err := t.Add(e.ID, e.Path); err != nil {
			return nil, fmt.Errorf("routes[%d]: %w", i, err)
		}
	}

	return t, nil
}
