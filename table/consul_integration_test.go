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

//go:build integration

package table

import (
	"context"
	"testing"

	"github.com/hashicorp/consul/api"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/log"
	"github.com/testcontainers/testcontainers-go/modules/consul"
)

// ConsulSourceTestSuite loads route files from a real Consul agent.
type ConsulSourceTestSuite struct {
	suite.Suite
	consul *consul.ConsulContainer
	client *api.Client
	addr   string
}

func (s *ConsulSourceTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := consul.Run(ctx, "hashicorp/consul:1.15", testcontainers.WithLogger(log.TestLogger(s.T())))
	s.Require().NoError(err)
	s.consul = container

	s.addr, err = container.ApiEndpoint(ctx)
	s.Require().NoError(err)

	cfg := api.DefaultConfig()
	cfg.Address = s.addr
	s.client, err = api.NewClient(cfg)
	s.Require().NoError(err)
}

func (s *ConsulSourceTestSuite) TearDownSuite() {
	if s.consul != nil {
		s.Require().NoError(s.consul.Terminate(context.Background()))
	}
}

func TestConsulSourceTestSuite(t *testing.T) {
	suite.Run(t, new(ConsulSourceTestSuite))
}

func (s *ConsulSourceTestSuite) put(key, value string) {
	_, err := s.client.KV().Put(&api.KVPair{Key: key, Value: []byte(value)}, nil)
	s.Require().NoError(err)
}

func (s *ConsulSourceTestSuite) TestLoad_YAML() {
	s.put("links/routes.yaml", "routes:\n  - id: user\n    path: /users/{id}\n  - id: files\n    path: /files/{path*}\n")

	kv, err := NewConsulKV(s.addr)
	s.Require().NoError(err)

	routes, err := LoadConsul(context.Background(), kv, "links/routes.yaml", "")
	s.Require().NoError(err)
	s.Equal(2, routes.Len())
}

func (s *ConsulSourceTestSuite) TestLoad_TOML() {
	s.put("links/routes.toml", "[[routes]]\nid = \"home\"\npath = \"/\"\n")

	kv, err := NewConsulKV(s.addr)
	s.Require().NoError(err)

	routes, err := LoadConsul(context.Background(), kv, "links/routes.toml", "")
	s.Require().NoError(err)

	r, ok := routes.Lookup("home")
	s.Require().True(ok)
	s.Equal("/", r.Path)
}

func (s *ConsulSourceTestSuite) TestLoad_MissingKey() {
	kv, err := NewConsulKV(s.addr)
	s.Require().NoError(err)

	_, err = LoadConsul(context.Background(), kv, "links/absent.yaml", "")
	s.Require().ErrorIs(err, ErrKeyNotFound)
}
