/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package archive

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"k8s.io/utils/set"
)

// Scope selects which part of an archive a query covers.
type Scope int

const (
	// ScopeNamespace restricts the query to a single namespace.
	ScopeNamespace Scope = iota
	// ScopeAllNamespaces covers every namespace present in the archives.
	ScopeAllNamespaces
	// ScopeCluster targets cluster-scoped-resources/.
	ScopeCluster
)

// Query identifies the resource files to resolve. Name is optional; when set,
// resolution short-circuits on the first existing file.
type Query struct {
	Group     string
	Plural    string
	Scope     Scope
	Namespace string
	Name      string
}

// FindResourceFiles resolves a query to an ordered, deduplicated list of
// validated YAML file paths across all roots. Within a root, Pattern A
// (direct layout) candidates come before Pattern B (aggregated layout), and
// list files before individual files; earlier roots outrank later ones.
// Deduplication keys on the file stem so the first occurrence in this order
// wins. Paths that fail validation are skipped with a warning.
func FindResourceFiles(roots []string, q Query) []string {
	seen := set.New[string]()
	var results []string

	appendValidated := func(root string, candidates []string) bool {
		for _, candidate := range candidates {
			stem := fileStem(candidate)
			if seen.Has(stem) {
				continue
			}
			validated, err := Validate(candidate, root)
			if err != nil {
				slog.Warn("skipping unresolvable candidate", "path", candidate, "error", err)
				continue
			}
			seen.Insert(stem)
			results = append(results, validated)
			if q.Name != "" {
				return true
			}
		}
		return false
	}

	for _, root := range roots {
		if q.Scope == ScopeCluster {
			if appendValidated(root, collectClusterScoped(root, q)) {
				return results
			}
			continue
		}

		namespaces := namespacesInScope(root, q)
		if appendValidated(root, collectPatternA(root, namespaces, q)) {
			return results
		}
		if appendValidated(root, collectPatternB(root, namespaces, q)) {
			return results
		}
	}

	return results
}

// namespacesInScope enumerates the namespaces a query covers under root. For
// all-namespaces queries this is the union of the direct and aggregated
// layouts, with the reserved name "all" excluded, sorted.
func namespacesInScope(root string, q Query) []string {
	if q.Scope == ScopeNamespace {
		return []string{q.Namespace}
	}

	names := set.New[string]()
	for _, base := range []string{
		filepath.Join(root, namespacesDir),
		filepath.Join(root, namespacesDir, "all", namespacesDir),
	} {
		entries, err := os.ReadDir(base)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() && entry.Name() != "all" {
				names.Insert(entry.Name())
			}
		}
	}
	return names.SortedList()
}

// collectPatternA gathers candidates from the direct layout. Three variants
// exist in the wild: the list file namespaces/<ns>/<group>/<plural>.yaml, flat
// files namespaces/<ns>/<group>/<plural>/<name>.yaml (some producers nest one
// more <name>/ level), and the bare namespaces/<ns>/<plural>/<name>/<name>.yaml
// layout without a group segment.
func collectPatternA(root string, namespaces []string, q Query) []string {
	var found []string
	for _, ns := range namespaces {
		groupDir := filepath.Join(root, namespacesDir, ns, q.Group, q.Plural)
		bareDir := filepath.Join(root, namespacesDir, ns, q.Plural)

		if q.Name == "" {
			if listFile := filepath.Join(root, namespacesDir, ns, q.Group, q.Plural+".yaml"); isFile(listFile) {
				found = append(found, listFile)
			}
			found = append(found, yamlFilesIn(groupDir)...)
			found = append(found, nestedNameFiles(groupDir)...)
			found = append(found, nestedNameFiles(bareDir)...)
			continue
		}

		if candidate := filepath.Join(groupDir, q.Name+".yaml"); isFile(candidate) {
			found = append(found, candidate)
		} else if candidate := filepath.Join(groupDir, q.Name, q.Name+".yaml"); isFile(candidate) {
			found = append(found, candidate)
		} else if candidate := filepath.Join(bareDir, q.Name, q.Name+".yaml"); isFile(candidate) {
			found = append(found, candidate)
		}
	}
	return found
}

// collectPatternB gathers candidates from the aggregated layout under
// namespaces/all/namespaces/<ns>/<group>/<plural>/.
func collectPatternB(root string, namespaces []string, q Query) []string {
	var found []string
	for _, ns := range namespaces {
		dir := filepath.Join(root, namespacesDir, "all", namespacesDir, ns, q.Group, q.Plural)
		if q.Name != "" {
			if candidate := filepath.Join(dir, q.Name+".yaml"); isFile(candidate) {
				found = append(found, candidate)
			}
			continue
		}
		found = append(found, yamlFilesIn(dir)...)
	}
	return found
}

// collectClusterScoped gathers candidates under
// cluster-scoped-resources/<group>/<plural>/.
func collectClusterScoped(root string, q Query) []string {
	dir := filepath.Join(root, clusterScopedDir, q.Group, q.Plural)
	if q.Name != "" {
		if candidate := filepath.Join(dir, q.Name+".yaml"); isFile(candidate) {
			return []string{candidate}
		}
		return nil
	}

	var found []string
	if listFile := filepath.Join(root, clusterScopedDir, q.Group, q.Plural+".yaml"); isFile(listFile) {
		found = append(found, listFile)
	}
	return append(found, yamlFilesIn(dir)...)
}

// yamlFilesIn returns the .yaml files directly inside dir, sorted by name.
func yamlFilesIn(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".yaml") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files
}

// nestedNameFiles returns <dir>/<name>/<name>.yaml files, sorted by name.
func nestedNameFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		candidate := filepath.Join(dir, entry.Name(), entry.Name()+".yaml")
		if isFile(candidate) {
			files = append(files, candidate)
		}
	}
	sort.Strings(files)
	return files
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
