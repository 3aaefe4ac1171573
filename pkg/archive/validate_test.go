/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package archive

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mocerrors "github.com/sarahbx/must-oc/pkg/errors"
)

func TestValidate_PathInsideRoot(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "namespaces", "ns1", "core", "pods", "p.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte("kind: Pod\n"), 0o644))

	resolved, err := Validate(target, root)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(resolved))
}

func TestValidate_DotDotEscape(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "root")
	require.NoError(t, os.MkdirAll(root, 0o755))
	outside := filepath.Join(base, "outside.yaml")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	_, err := Validate(filepath.Join(root, "..", "outside.yaml"), root)
	require.Error(t, err)
	assert.Equal(t, mocerrors.ErrCodePathEscape, mocerrors.CodeOf(err))
}

func TestValidate_SymlinkEscape(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}

	base := t.TempDir()
	root := filepath.Join(base, "root")
	dir := filepath.Join(root, "namespaces", "ns1", "core", "pods")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	outside := filepath.Join(base, "secret.yaml")
	require.NoError(t, os.WriteFile(outside, []byte("top secret"), 0o644))
	evil := filepath.Join(dir, "evil.yaml")
	require.NoError(t, os.Symlink(outside, evil))

	_, err := Validate(evil, root)
	require.Error(t, err)
	assert.Equal(t, mocerrors.ErrCodePathEscape, mocerrors.CodeOf(err))
}

func TestValidate_MissingLeafIsNotFound(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "namespaces", "ns1"), 0o755))

	_, err := Validate(filepath.Join(root, "namespaces", "ns1", "missing.yaml"), root)
	require.Error(t, err)
	assert.Equal(t, mocerrors.ErrCodeNotFound, mocerrors.CodeOf(err))
}

func TestValidate_MissingLeafUnderEscapingSymlinkParent(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}

	base := t.TempDir()
	root := filepath.Join(base, "root")
	require.NoError(t, os.MkdirAll(root, 0o755))
	outsideDir := filepath.Join(base, "elsewhere")
	require.NoError(t, os.MkdirAll(outsideDir, 0o755))
	require.NoError(t, os.Symlink(outsideDir, filepath.Join(root, "link")))

	// The leaf does not exist, but its parent resolves outside the root:
	// this must be classified as an escape, not a missing file.
	_, err := Validate(filepath.Join(root, "link", "missing.yaml"), root)
	require.Error(t, err)
	assert.Equal(t, mocerrors.ErrCodePathEscape, mocerrors.CodeOf(err))
}
