/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package archive

import (
	"os"
	"path/filepath"
	"strings"

	"k8s.io/utils/set"
)

// ScanResourceTypes walks the roots and returns every (plural -> api group)
// pair evidenced by the tree. Evidence means a non-empty
// <group>/<plural>/ directory in either namespaced layout or under
// cluster-scoped-resources/, or a <group>/<plural>.yaml list file.
// First-seen wins when the same plural appears under several groups.
func ScanResourceTypes(roots []string) map[string]string {
	discovered := map[string]string{}

	record := func(plural, group string) {
		if _, ok := discovered[plural]; !ok {
			discovered[plural] = group
		}
	}

	for _, root := range roots {
		nsBase := filepath.Join(root, namespacesDir)

		for _, nsDir := range subdirNames(nsBase) {
			if nsDir == "all" {
				continue
			}
			scanGroupDirs(filepath.Join(nsBase, nsDir), record)
		}

		allBase := filepath.Join(nsBase, "all", namespacesDir)
		for _, nsDir := range subdirNames(allBase) {
			scanGroupDirs(filepath.Join(allBase, nsDir), record)
		}

		csrBase := filepath.Join(root, clusterScopedDir)
		scanGroupDirs(csrBase, record)
	}

	return discovered
}

// ScanClusterScoped returns the plurals evidenced under
// cluster-scoped-resources/ in any root, sorted.
func ScanClusterScoped(roots []string) []string {
	discovered := set.New[string]()

	for _, root := range roots {
		csrBase := filepath.Join(root, clusterScopedDir)
		for _, group := range subdirNames(csrBase) {
			groupDir := filepath.Join(csrBase, group)
			for _, plural := range subdirNames(groupDir) {
				if dirNonEmpty(filepath.Join(groupDir, plural)) {
					discovered.Insert(plural)
				}
			}
			for _, plural := range listFileStems(groupDir) {
				discovered.Insert(plural)
			}
		}
	}

	return discovered.SortedList()
}

// scanGroupDirs records (plural, group) evidence under one namespace (or the
// cluster-scoped base): non-empty <group>/<plural>/ directories and
// <group>/<plural>.yaml list files.
func scanGroupDirs(base string, record func(plural, group string)) {
	for _, group := range subdirNames(base) {
		groupDir := filepath.Join(base, group)
		for _, plural := range subdirNames(groupDir) {
			if dirNonEmpty(filepath.Join(groupDir, plural)) {
				record(plural, group)
			}
		}
		for _, plural := range listFileStems(groupDir) {
			record(plural, group)
		}
	}
}

// subdirNames returns the names of dir's immediate subdirectories, sorted.
func subdirNames(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names
}

// listFileStems returns the stems of *.yaml files directly inside dir, sorted.
func listFileStems(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var stems []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".yaml") {
			stems = append(stems, strings.TrimSuffix(entry.Name(), ".yaml"))
		}
	}
	return stems
}

// dirNonEmpty reports whether dir exists and contains at least one entry.
func dirNonEmpty(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	return len(entries) > 0
}
