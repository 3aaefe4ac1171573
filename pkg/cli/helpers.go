/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/sarahbx/must-oc/pkg/archive"
	"github.com/sarahbx/must-oc/pkg/oc"
	"github.com/sarahbx/must-oc/pkg/registry"
)

// Environment variables overriding the engine's size ceilings.
const (
	maxYAMLBytesEnv = "MUST_OC_MAX_YAML_BYTES"
	maxLogBytesEnv  = "MUST_OC_MAX_LOG_BYTES"
)

// newEngine loads the registry, discovers archive roots from the global
// --must-gather-dir flags, and assembles the query engine.
func newEngine(cmd *cli.Command) (*oc.Engine, error) {
	reg, err := registry.LoadWithDefaults(registry.ConfigDir())
	if err != nil {
		return nil, err
	}

	roots, err := archive.DiscoverRoots(cmd.StringSlice("must-gather-dir"))
	if err != nil {
		return nil, err
	}

	return oc.New(reg, roots, oc.Options{
		MaxYAMLBytes: bytesFromEnv(maxYAMLBytesEnv),
		MaxLogBytes:  bytesFromEnv(maxLogBytesEnv),
	}), nil
}

// bytesFromEnv parses a byte-count override, returning 0 (package default)
// when unset or unparseable.
func bytesFromEnv(name string) int64 {
	raw := os.Getenv(name)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0
	}
	return value
}

// requireArg returns the positional argument at index or a usage error.
func requireArg(cmd *cli.Command, index int, what string) (string, error) {
	value := cmd.Args().Get(index)
	if value == "" {
		return "", fmt.Errorf("missing required argument: %s", what)
	}
	return value, nil
}
