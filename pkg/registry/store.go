/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package registry

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
	"k8s.io/utils/set"

	mocerrors "github.com/sarahbx/must-oc/pkg/errors"
)

const configFileMode = 0o644

const resourceMapHeader = `# resource_map.yaml
# Maps resource plural names to API groups and user-facing aliases.
# Updated by: must-oc update-types -d <must-gather-dir>
# Manual edits are safe -- update-types only adds, never removes.

`

const clusterScopedHeader = `# cluster_scoped.yaml
# Resource types found under cluster-scoped-resources/ rather than namespaces/.
# Updated by: must-oc update-types -d <must-gather-dir>
# Manual edits are safe -- update-types only adds, never removes.

`

// MergeResult reports what a Merge added.
type MergeResult struct {
	AddedKinds         []string
	AddedClusterScoped []string
}

// Merge additively folds discovered (plural -> api group) evidence and
// cluster-scoped plurals into the registry, returning a new Registry. Existing
// entries are never modified: a discovered api group that disagrees with the
// registry is reported as a warning and the registry's value kept.
func Merge(reg *Registry, discovered map[string]string, discoveredCluster []string) (*Registry, MergeResult, error) {
	kinds := make(map[string]Kind, len(reg.kinds)+len(discovered))
	for plural, kind := range reg.kinds {
		kinds[plural] = kind
	}

	result := MergeResult{}

	for _, plural := range sortedKeys(discovered) {
		group := discovered[plural]
		if existing, known := kinds[plural]; known {
			if existing.APIGroup != group {
				slog.Warn("api group mismatch, keeping existing",
					"plural", plural,
					"existing", existing.APIGroup,
					"discovered", group,
				)
			}
			continue
		}
		kinds[plural] = Kind{APIGroup: group, Aliases: []string{}}
		result.AddedKinds = append(result.AddedKinds, plural)
	}

	clusterScoped := make([]string, len(reg.clusterScoped))
	copy(clusterScoped, reg.clusterScoped)
	present := set.New(reg.clusterScoped...)

	sorted := make([]string, len(discoveredCluster))
	copy(sorted, discoveredCluster)
	sort.Strings(sorted)

	for _, plural := range sorted {
		if present.Has(plural) {
			continue
		}
		clusterScoped = append(clusterScoped, plural)
		present.Insert(plural)
		result.AddedClusterScoped = append(result.AddedClusterScoped, plural)
	}

	merged, err := build(kinds, clusterScoped)
	if err != nil {
		return nil, MergeResult{}, err
	}
	return merged, result, nil
}

// Store persists the registry to both files in dir via write-then-rename so a
// partial write never leaves a truncated file in place. Map keys are written
// in sorted order so diffs stay clean.
func (r *Registry) Store(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return mocerrors.Wrap(mocerrors.ErrCodeInternal, fmt.Sprintf("cannot create config dir %s", dir), err)
	}

	mapData, err := marshalResourceMap(r.kinds)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(filepath.Join(dir, ResourceMapFile), append([]byte(resourceMapHeader), mapData...)); err != nil {
		return err
	}

	clusterScoped := r.clusterScoped
	if clusterScoped == nil {
		clusterScoped = []string{}
	}
	clusterData, err := yaml.Marshal(clusterScoped)
	if err != nil {
		return mocerrors.Wrap(mocerrors.ErrCodeInternal, "cannot marshal cluster-scoped list", err)
	}
	return writeFileAtomic(filepath.Join(dir, ClusterScopedFile), append([]byte(clusterScopedHeader), clusterData...))
}

// marshalResourceMap renders the map with deterministic key order via an
// explicit mapping node; yaml.v3's map ordering is not part of its contract.
func marshalResourceMap(kinds map[string]Kind) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, plural := range sortedKeys(kinds) {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: plural}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(kinds[plural]); err != nil {
			return nil, mocerrors.Wrap(mocerrors.ErrCodeInternal, fmt.Sprintf("cannot marshal entry %q", plural), err)
		}
		root.Content = append(root.Content, keyNode, valueNode)
	}
	data, err := yaml.Marshal(root)
	if err != nil {
		return nil, mocerrors.Wrap(mocerrors.ErrCodeInternal, "cannot marshal resource map", err)
	}
	return data, nil
}

// writeFileAtomic writes to a sibling temp file and renames it over path.
// The temp file lives in the same directory so the rename stays on one
// filesystem.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, configFileMode); err != nil {
		return mocerrors.Wrap(mocerrors.ErrCodeInternal, fmt.Sprintf("cannot write %s", tmp), err)
	}
	if err := os.Chmod(tmp, configFileMode); err != nil {
		os.Remove(tmp)
		return mocerrors.Wrap(mocerrors.ErrCodeInternal, fmt.Sprintf("cannot chmod %s", tmp), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return mocerrors.Wrap(mocerrors.ErrCodeInternal, fmt.Sprintf("cannot rename %s into place", tmp), err)
	}
	return nil
}
