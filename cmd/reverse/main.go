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

// Command reverse resolves route identifiers from a route file into URIs
// and URLs, lists the placeholders of each route, and can serve
// resolutions over HTTP.
//
// Usage:
//
//	reverse resolve users.get --routes routes.yaml --param id=42
//	reverse resolve files --routes routes.yaml --param path=a/b --host example.com --secure
//	reverse routes --routes routes.yaml
//	reverse serve --routes routes.yaml --addr :8080
package main

import (
	"fmt"
	"os"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
