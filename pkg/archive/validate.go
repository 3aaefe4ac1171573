/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	mocerrors "github.com/sarahbx/must-oc/pkg/errors"
)

// Validate resolves symlinks in path and proves the result is a descendant of
// root. It returns the canonical path on success, PATH_ESCAPE when the path
// resolves outside the canonical root, and NOT_FOUND when the path stays
// inside the root but its leaf does not exist. Escape via a symlinked parent
// of a missing leaf is still detected: resolution walks down the deepest
// existing ancestor before deciding.
func Validate(path, root string) (string, error) {
	rootResolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", mocerrors.Wrap(mocerrors.ErrCodeNotFound, fmt.Sprintf("archive root %s", root), err)
	}

	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		if !isWithin(resolved, rootResolved) {
			return "", mocerrors.Newf(mocerrors.ErrCodePathEscape, "path escapes must-gather root: %s", path)
		}
		return resolved, nil
	}
	if !os.IsNotExist(err) {
		return "", mocerrors.Wrap(mocerrors.ErrCodeInternal, fmt.Sprintf("cannot resolve %s", path), err)
	}

	// The leaf is missing. Resolve the deepest existing ancestor so a
	// symlinked parent pointing outside the root is still caught.
	ancestor := filepath.Clean(path)
	var trailing []string
	for {
		parent := filepath.Dir(ancestor)
		if parent == ancestor {
			return "", mocerrors.Newf(mocerrors.ErrCodeNotFound, "no such path: %s", path)
		}
		trailing = append([]string{filepath.Base(ancestor)}, trailing...)
		ancestor = parent

		resolvedAncestor, err := filepath.EvalSymlinks(ancestor)
		if err == nil {
			projected := filepath.Join(append([]string{resolvedAncestor}, trailing...)...)
			if !isWithin(projected, rootResolved) {
				return "", mocerrors.Newf(mocerrors.ErrCodePathEscape, "path escapes must-gather root: %s", path)
			}
			return "", mocerrors.Newf(mocerrors.ErrCodeNotFound, "no such path: %s", path)
		}
		if !os.IsNotExist(err) {
			return "", mocerrors.Wrap(mocerrors.ErrCodeInternal, fmt.Sprintf("cannot resolve %s", ancestor), err)
		}
	}
}

func isWithin(path, root string) bool {
	if path == root {
		return true
	}
	return strings.HasPrefix(path, root+string(filepath.Separator))
}
