/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package registry

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"
	"k8s.io/client-go/util/homedir"
	"k8s.io/utils/set"

	mocerrors "github.com/sarahbx/must-oc/pkg/errors"
)

// File names inside the config directory.
const (
	ResourceMapFile   = "resource_map.yaml"
	ClusterScopedFile = "cluster_scoped.yaml"
)

// ConfigDirEnv overrides the default config directory when set.
const ConfigDirEnv = "MUST_OC_CONFIG_DIR"

var (
	//go:embed config/resource_map.yaml
	defaultResourceMap []byte

	//go:embed config/cluster_scoped.yaml
	defaultClusterScoped []byte
)

// Kind is one entry of the resource map. APIGroup uses the sentinel "core"
// for the unnamed Kubernetes core group, which is also the literal directory
// segment in must-gather archives.
type Kind struct {
	APIGroup string   `yaml:"api_group"`
	Aliases  []string `yaml:"aliases"`
}

// Registry is the loaded, immutable resource-type registry.
type Registry struct {
	kinds         map[string]Kind
	aliases       map[string]string
	clusterScoped []string
	clusterSet    set.Set[string]
}

// ConfigDir returns the directory holding the registry files: the value of
// MUST_OC_CONFIG_DIR when set, otherwise $HOME/.config/must-oc.
func ConfigDir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir
	}
	return filepath.Join(homedir.HomeDir(), ".config", "must-oc")
}

// Load reads the registry from dir. A missing file is treated as empty so a
// fresh installation bootstraps cleanly; a malformed file is a fatal
// CONFIG_CORRUPT error and a duplicate alias is CONFIG_CONFLICT.
func Load(dir string) (*Registry, error) {
	kinds, err := loadResourceMap(filepath.Join(dir, ResourceMapFile))
	if err != nil {
		return nil, err
	}
	clusterScoped, err := loadClusterScoped(filepath.Join(dir, ClusterScopedFile))
	if err != nil {
		return nil, err
	}
	return build(kinds, clusterScoped)
}

// LoadWithDefaults is Load, except that a missing file is backed by the
// embedded defaults shipped with the binary. The CLI loads through this so
// the tool works out of the box; Load keeps the strict empty-bootstrap
// behavior for callers that manage the files themselves.
func LoadWithDefaults(dir string) (*Registry, error) {
	mapPath := filepath.Join(dir, ResourceMapFile)
	kinds, err := loadResourceMap(mapPath)
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(mapPath); os.IsNotExist(statErr) {
		if kinds, err = parseResourceMap(defaultResourceMap, mapPath); err != nil {
			return nil, err
		}
	}

	csPath := filepath.Join(dir, ClusterScopedFile)
	clusterScoped, err := loadClusterScoped(csPath)
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(csPath); os.IsNotExist(statErr) {
		if clusterScoped, err = parseClusterScoped(defaultClusterScoped, csPath); err != nil {
			return nil, err
		}
	}

	return build(kinds, clusterScoped)
}

func loadResourceMap(path string) (map[string]Kind, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]Kind{}, nil
	}
	if err != nil {
		return nil, mocerrors.Wrap(mocerrors.ErrCodeConfigCorrupt, fmt.Sprintf("cannot read %s", path), err)
	}
	return parseResourceMap(data, path)
}

func parseResourceMap(data []byte, path string) (map[string]Kind, error) {
	kinds := map[string]Kind{}
	if err := yaml.Unmarshal(data, &kinds); err != nil {
		return nil, mocerrors.Wrap(mocerrors.ErrCodeConfigCorrupt, fmt.Sprintf("malformed resource map %s", path), err)
	}
	return kinds, nil
}

func loadClusterScoped(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, mocerrors.Wrap(mocerrors.ErrCodeConfigCorrupt, fmt.Sprintf("cannot read %s", path), err)
	}
	return parseClusterScoped(data, path)
}

func parseClusterScoped(data []byte, path string) ([]string, error) {
	var plurals []string
	if err := yaml.Unmarshal(data, &plurals); err != nil {
		return nil, mocerrors.Wrap(mocerrors.ErrCodeConfigCorrupt, fmt.Sprintf("malformed cluster-scoped list %s", path), err)
	}
	return plurals, nil
}

func build(kinds map[string]Kind, clusterScoped []string) (*Registry, error) {
	aliases := map[string]string{}
	for _, plural := range sortedKeys(kinds) {
		for _, alias := range kinds[plural].Aliases {
			if other, dup := aliases[alias]; dup {
				return nil, mocerrors.Newf(mocerrors.ErrCodeConfigConflict,
					"alias %q is claimed by both %q and %q", alias, other, plural)
			}
			if _, isPlural := kinds[alias]; isPlural && alias != plural {
				return nil, mocerrors.Newf(mocerrors.ErrCodeConfigConflict,
					"alias %q of %q shadows an existing resource type", alias, plural)
			}
			aliases[alias] = plural
		}
	}

	clusterSet := set.New[string]()
	for _, plural := range clusterScoped {
		if _, known := kinds[plural]; !known {
			return nil, mocerrors.Newf(mocerrors.ErrCodeConfigCorrupt,
				"cluster-scoped type %q is not present in the resource map", plural)
		}
		clusterSet.Insert(plural)
	}

	return &Registry{
		kinds:         kinds,
		aliases:       aliases,
		clusterScoped: clusterScoped,
		clusterSet:    clusterSet,
	}, nil
}

// Resolve maps a user-typed token (a plural or an alias, case-insensitive) to
// its (api group, plural) pair. Unknown tokens return UNKNOWN_KIND, with a
// nearest-match suggestion when one is close enough.
func (r *Registry) Resolve(token string) (apiGroup, plural string, err error) {
	lowered := strings.ToLower(token)

	if kind, ok := r.kinds[lowered]; ok {
		return kind.APIGroup, lowered, nil
	}
	if target, ok := r.aliases[lowered]; ok {
		return r.kinds[target].APIGroup, target, nil
	}

	msg := fmt.Sprintf("unknown resource type %q", token)
	if suggestion := r.suggest(lowered); suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", suggestion)
	}
	msg += ". Use 'must-oc update-types' to discover resource types from a must-gather directory"
	return "", "", mocerrors.New(mocerrors.ErrCodeUnknownKind, msg)
}

// suggest returns the registered token nearest to the input, or "" when
// nothing is within an edit distance of 2.
func (r *Registry) suggest(token string) string {
	best := ""
	bestDist := 3
	candidates := make([]string, 0, len(r.kinds)+len(r.aliases))
	candidates = append(candidates, sortedKeys(r.kinds)...)
	for _, alias := range sortedKeys(r.aliases) {
		candidates = append(candidates, alias)
	}
	for _, candidate := range candidates {
		if dist := levenshtein.ComputeDistance(token, candidate); dist < bestDist {
			best = candidate
			bestDist = dist
		}
	}
	return best
}

// IsClusterScoped reports whether plural lives under cluster-scoped-resources/.
func (r *Registry) IsClusterScoped(plural string) bool {
	return r.clusterSet.Has(plural)
}

// Kinds returns the plural keys in sorted order.
func (r *Registry) Kinds() []string {
	return sortedKeys(r.kinds)
}

// Kind returns the entry for plural.
func (r *Registry) Kind(plural string) (Kind, bool) {
	kind, ok := r.kinds[plural]
	return kind, ok
}

// ClusterScoped returns the cluster-scoped plurals in file order.
func (r *Registry) ClusterScoped() []string {
	out := make([]string, len(r.clusterScoped))
	copy(out, r.clusterScoped)
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
