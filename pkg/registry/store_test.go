/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package registry

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_InsertsUnknownKinds(t *testing.T) {
	reg, err := build(map[string]Kind{
		"pods": {APIGroup: "core", Aliases: []string{"pod", "po"}},
	}, nil)
	require.NoError(t, err)

	merged, result, err := Merge(reg, map[string]string{
		"pods":         "core",
		"cephclusters": "ceph.rook.io",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"cephclusters"}, result.AddedKinds)
	kind, ok := merged.Kind("cephclusters")
	require.True(t, ok)
	assert.Equal(t, "ceph.rook.io", kind.APIGroup)
	assert.Empty(t, kind.Aliases)
}

func TestMerge_NeverMutatesExistingEntries(t *testing.T) {
	reg, err := build(map[string]Kind{
		"pods": {APIGroup: "core", Aliases: []string{"pod", "po"}},
	}, nil)
	require.NoError(t, err)

	// Conflicting group for a known plural is kept out.
	merged, result, err := Merge(reg, map[string]string{"pods": "something.else"}, nil)
	require.NoError(t, err)

	assert.Empty(t, result.AddedKinds)
	kind, _ := merged.Kind("pods")
	assert.Equal(t, "core", kind.APIGroup)
	assert.Equal(t, []string{"pod", "po"}, kind.Aliases)
}

func TestMerge_ClusterScopedAppendsWithoutDuplicates(t *testing.T) {
	reg, err := build(map[string]Kind{
		"nodes":           {APIGroup: "core"},
		"clusterversions": {APIGroup: "config.openshift.io"},
	}, []string{"nodes"})
	require.NoError(t, err)

	merged, result, err := Merge(reg,
		map[string]string{"nodes": "core", "clusterversions": "config.openshift.io"},
		[]string{"nodes", "clusterversions"})
	require.NoError(t, err)

	assert.Equal(t, []string{"clusterversions"}, result.AddedClusterScoped)
	assert.Equal(t, []string{"nodes", "clusterversions"}, merged.ClusterScoped())
}

func TestStore_RoundTripIsByteIdentical(t *testing.T) {
	dir := t.TempDir()
	reg, err := build(map[string]Kind{
		"pods":  {APIGroup: "core", Aliases: []string{"pod", "po"}},
		"nodes": {APIGroup: "core", Aliases: []string{"node"}},
	}, []string{"nodes"})
	require.NoError(t, err)

	require.NoError(t, reg.Store(dir))
	first, err := os.ReadFile(filepath.Join(dir, ResourceMapFile))
	require.NoError(t, err)
	firstCluster, err := os.ReadFile(filepath.Join(dir, ClusterScopedFile))
	require.NoError(t, err)

	reloaded, err := Load(dir)
	require.NoError(t, err)
	require.NoError(t, reloaded.Store(dir))

	second, err := os.ReadFile(filepath.Join(dir, ResourceMapFile))
	require.NoError(t, err)
	secondCluster, err := os.ReadFile(filepath.Join(dir, ClusterScopedFile))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Equal(t, string(firstCluster), string(secondCluster))
}

func TestStore_IdempotentMergeLeavesFilesIdentical(t *testing.T) {
	dir := t.TempDir()
	reg, err := build(map[string]Kind{
		"pods": {APIGroup: "core", Aliases: []string{"pod", "po"}},
	}, nil)
	require.NoError(t, err)
	require.NoError(t, reg.Store(dir))

	before, err := os.ReadFile(filepath.Join(dir, ResourceMapFile))
	require.NoError(t, err)

	merged, result, err := Merge(reg, map[string]string{"pods": "core"}, nil)
	require.NoError(t, err)
	assert.Empty(t, result.AddedKinds)

	require.NoError(t, merged.Store(dir))
	after, err := os.ReadFile(filepath.Join(dir, ResourceMapFile))
	require.NoError(t, err)

	assert.Equal(t, string(before), string(after))
}

func TestStore_WritesModeAndNoTempLeftovers(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}

	dir := t.TempDir()
	reg, err := build(map[string]Kind{"pods": {APIGroup: "core"}}, nil)
	require.NoError(t, err)
	require.NoError(t, reg.Store(dir))

	info, err := os.Stat(filepath.Join(dir, ResourceMapFile))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.NotContains(t, entry.Name(), ".tmp")
	}
}

func TestStore_HeadersPreserved(t *testing.T) {
	dir := t.TempDir()
	reg, err := build(map[string]Kind{"pods": {APIGroup: "core"}}, nil)
	require.NoError(t, err)
	require.NoError(t, reg.Store(dir))

	data, err := os.ReadFile(filepath.Join(dir, ResourceMapFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Manual edits are safe")
}
