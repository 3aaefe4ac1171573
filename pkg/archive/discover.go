/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package archive

import (
	"os"
	"path/filepath"
	"sort"

	"k8s.io/utils/set"

	mocerrors "github.com/sarahbx/must-oc/pkg/errors"
)

// Directory names that mark a must-gather archive root.
const (
	namespacesDir    = "namespaces"
	clusterScopedDir = "cluster-scoped-resources"
)

// isGatherRoot reports whether dir directly contains namespaces/ or
// cluster-scoped-resources/.
func isGatherRoot(dir string) bool {
	for _, marker := range []string{namespacesDir, clusterScopedDir} {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// hasNamespaces reports whether dir directly contains namespaces/. Nested
// sub-archives (e.g. a storage-specific gather embedded inside the image-hash
// directory) only qualify on this stronger marker.
func hasNamespaces(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, namespacesDir))
	return err == nil && info.IsDir()
}

// DiscoverRoots finds archive roots under the user-supplied directories.
// Immediate children of each directory are checked, plus one more level for
// nested sub-archives; recursion stops there to keep pathological archives
// bounded. Ordering is deterministic: user-argument order first, then
// lexicographic child name, nested roots directly after their parent.
// First-seen wins on duplicates. Returns NO_ARCHIVE when nothing is found.
func DiscoverRoots(dirs []string) ([]string, error) {
	seen := set.New[string]()
	var roots []string

	for _, base := range dirs {
		info, err := os.Stat(base)
		if err != nil || !info.IsDir() {
			return nil, mocerrors.Newf(mocerrors.ErrCodeNotFound, "must-gather directory does not exist: %s", base)
		}

		children, err := sortedSubdirs(base)
		if err != nil {
			return nil, err
		}

		for _, child := range children {
			if !isGatherRoot(child) {
				continue
			}
			validated, err := Validate(child, base)
			if err != nil {
				continue
			}
			if !seen.Has(validated) {
				seen.Insert(validated)
				roots = append(roots, validated)
			}

			nested, err := sortedSubdirs(child)
			if err != nil {
				continue
			}
			for _, sub := range nested {
				if !hasNamespaces(sub) {
					continue
				}
				validatedNested, err := Validate(sub, base)
				if err != nil {
					continue
				}
				if !seen.Has(validatedNested) {
					seen.Insert(validatedNested)
					roots = append(roots, validatedNested)
				}
			}
		}
	}

	if len(roots) == 0 {
		return nil, mocerrors.New(mocerrors.ErrCodeNoArchive, "no must-gather archive found under the given directories")
	}
	return roots, nil
}

// sortedSubdirs returns the absolute paths of dir's immediate subdirectories
// in lexicographic name order.
func sortedSubdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, mocerrors.Wrap(mocerrors.ErrCodeInternal, "cannot read directory "+dir, err)
	}

	var subdirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			subdirs = append(subdirs, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(subdirs)
	return subdirs, nil
}
