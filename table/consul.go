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
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/consul/api"
)

// ErrKeyNotFound is returned when the Consul key holding the route file
// does not exist.
var ErrKeyNotFound = errors.New("consul key not found")

// ConsulKV is the part of the Consul key-value API used to read route
// files. *api.KV implements it.
type ConsulKV interface {
	Get(key string, q *api.QueryOptions) (*api.KVPair, *api.QueryMeta, error)
}

// NewConsulKV returns the key-value client of a Consul agent. The client
// is configured from the CONSUL_HTTP_* environment variables; a non-empty
// addr overrides CONSUL_HTTP_ADDR.
func NewConsulKV(addr string) (*api.KV, error) {
	cfg := api.DefaultConfig()
	if addr != "" {
		cfg.Address = addr
	}

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client: %w", err)
	}

	return client.KV(), nil
}

// LoadConsul reads a route file stored under key. An empty format is
// derived from the key's extension, as for [LoadFile].
//
// Example:
//
//	kv, err := table.NewConsulKV("")
//	if err != nil {
//	    return err
//	}
//	routes, err := table.LoadConsul(ctx, kv, "services/links/routes.yaml", "")
func LoadConsul(ctx context.Context, kv ConsulKV, key string, format Format) (*Table, error) {
	if format == "" {
		f, err := FormatFromPath(key)
		if err != nil {
			return nil, err
		}
		format = f
	}

	pair, _, err := kv.Get(key, (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get consul key: %w", err)
	}
	if pair == nil {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}

	t, err := Load(bytes.NewReader(pair.Value), format)
	if err != nil {
		return nil, fmt.Errorf("consul:%s: %w", key, err)
	}

	return t, nil
}
