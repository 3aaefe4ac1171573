/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/sarahbx/must-oc/pkg/archive"
	"github.com/sarahbx/must-oc/pkg/oc"
	"github.com/sarahbx/must-oc/pkg/registry"
)

func updateTypesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "update-types",
		EnableShellCompletion: true,
		Usage:                 "Scan must-gather archives and grow the resource type registry",
		Description: `Walks the archive tree for evidence of resource types and merges the
findings into the registry files. The merge is strictly additive: existing
entries, including hand-written aliases, are never changed or removed.

# Examples

  must-oc update-types -d ./must-gather.local.123
  MUST_OC_CONFIG_DIR=/etc/must-oc must-oc update-types -d /archives`,
		Action: runUpdateTypes,
	}
}

func runUpdateTypes(ctx context.Context, cmd *cli.Command) error {
	roots, err := archive.DiscoverRoots(cmd.StringSlice("must-gather-dir"))
	if err != nil {
		return err
	}

	configDir := registry.ConfigDir()
	summary, err := oc.UpdateTypes(roots, configDir)
	if err != nil {
		return err
	}

	slog.Debug("registry updated", "config_dir", configDir)

	fmt.Printf("Scanned %d root(s).\n", summary.RootsScanned)
	fmt.Printf("Discovered %d resource type(s).\n", summary.DiscoveredTypes)
	fmt.Printf("Discovered %d cluster-scoped resource type(s).\n", summary.DiscoveredCluster)
	fmt.Printf("Added %d new resource type(s) to %s.\n", len(summary.AddedKinds), registry.ResourceMapFile)
	if len(summary.AddedKinds) > 0 {
		fmt.Printf("  %s\n", strings.Join(summary.AddedKinds, ", "))
	}
	fmt.Printf("Added %d new cluster-scoped type(s) to %s.\n", len(summary.AddedClusterScoped), registry.ClusterScopedFile)
	if len(summary.AddedClusterScoped) > 0 {
		fmt.Printf("  %s\n", strings.Join(summary.AddedClusterScoped, ", "))
	}
	if len(summary.AddedKinds) == 0 && len(summary.AddedClusterScoped) == 0 {
		fmt.Println("No new types discovered -- registry is up to date.")
	}
	return nil
}
