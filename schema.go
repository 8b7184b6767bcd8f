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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Recognized shapes of raw option maps. Anything outside them is
// rejected with [ErrInvalidOptions].
const (
	paramsSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "params": {"type": "object"},
    "query": {"type": "object"}
  },
  "additionalProperties": false
}`

	urlOptionsSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "secure": {"type": "boolean"},
    "rel": {"type": "boolean", "default": false},
    "host": {"type": "string"}
  },
  "additionalProperties": false
}`
)

var (
	paramsSchema     = sync.OnceValues(func() (*jsonschema.Schema, error) { return compileSchema("https://rivaas.dev/reverse/params.json", paramsSchemaJSON) })
	urlOptionsSchema = sync.OnceValues(func() (*jsonschema.Schema, error) { return compileSchema("https://rivaas.dev/reverse/url-options.json", urlOptionsSchemaJSON) })
)

// compileSchema compiles a JSON Schema from a JSON string.
func compileSchema(id, schemaJSON string) (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("invalid schema JSON: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(id, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	schema, err := compiler.Compile(id)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return schema, nil
}

// checkShape validates raw against schema. The value is round-tripped
// through JSON so the validator sees JSON types only.
func checkShape(schema func() (*jsonschema.Schema, error), raw map[string]any) error {
	sch, err := schema()
	if err != nil {
		return invalidOptions("", err)
	}

	b, err := json.Marshal(raw)
	if err != nil {
		return invalidOptions("", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return invalidOptions("", err)
	}

	if err := sch.Validate(inst); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return invalidOptions(firstInvalidField(verr), err)
		}
		return invalidOptions("", err)
	}

	return nil
}

// firstInvalidField returns the top-level property of the first leaf
// validation error, if any.
func firstInvalidField(verr *jsonschema.ValidationError) string {
	for len(verr.Causes) > 0 {
		verr = verr.Causes[0]
	}
	if len(verr.InstanceLocation) > 0 {
		return verr.InstanceLocation[0]
	}

	return ""
}

// decodeStrict decodes raw into out, failing on keys out does not declare.
func decodeStrict(raw map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		TagName:     "mapstructure",
		Result:      out,
	})
	if err != nil {
		return invalidOptions("", err)
	}

	if err := dec.Decode(raw); err != nil {
		return invalidOptions("", err)
	}

	return nil
}
