/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mocerrors "github.com/sarahbx/must-oc/pkg/errors"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

const sampleResourceMap = `
pods:
  api_group: core
  aliases: [pod, po]
deployments:
  api_group: apps
  aliases: [deployment, deploy]
nodes:
  api_group: core
  aliases: [node]
`

const sampleClusterScoped = `
- nodes
`

func TestLoad_MissingFilesBootstrapEmpty(t *testing.T) {
	reg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, reg.Kinds())
	assert.Empty(t, reg.ClusterScoped())
}

func TestLoad_ResolvePluralAliasAndCase(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ResourceMapFile, sampleResourceMap)
	writeConfig(t, dir, ClusterScopedFile, sampleClusterScoped)

	reg, err := Load(dir)
	require.NoError(t, err)

	for _, token := range []string{"pods", "pod", "po", "POD", "Pods"} {
		group, plural, err := reg.Resolve(token)
		require.NoError(t, err, "token %q", token)
		assert.Equal(t, "core", group)
		assert.Equal(t, "pods", plural)
	}

	group, plural, err := reg.Resolve("deploy")
	require.NoError(t, err)
	assert.Equal(t, "apps", group)
	assert.Equal(t, "deployments", plural)
}

func TestLoad_UnknownKindWithSuggestion(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ResourceMapFile, sampleResourceMap)

	reg, err := Load(dir)
	require.NoError(t, err)

	_, _, err = reg.Resolve("dployments")
	require.Error(t, err)
	assert.Equal(t, mocerrors.ErrCodeUnknownKind, mocerrors.CodeOf(err))
	assert.Contains(t, err.Error(), "deployments")
	assert.Contains(t, err.Error(), "update-types")
}

func TestLoad_DuplicateAliasIsConflict(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ResourceMapFile, `
pods:
  api_group: core
  aliases: [po]
podmonitors:
  api_group: monitoring.coreos.com
  aliases: [po]
`)

	_, err := Load(dir)
	require.Error(t, err)
	assert.Equal(t, mocerrors.ErrCodeConfigConflict, mocerrors.CodeOf(err))
}

func TestLoad_AliasShadowingPluralIsConflict(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ResourceMapFile, `
pods:
  api_group: core
  aliases: [deployments]
deployments:
  api_group: apps
  aliases: []
`)

	_, err := Load(dir)
	require.Error(t, err)
	assert.Equal(t, mocerrors.ErrCodeConfigConflict, mocerrors.CodeOf(err))
}

func TestLoad_MalformedMapIsCorrupt(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ResourceMapFile, "- this\n- is\n- a list\n")

	_, err := Load(dir)
	require.Error(t, err)
	assert.Equal(t, mocerrors.ErrCodeConfigCorrupt, mocerrors.CodeOf(err))
}

func TestLoad_ClusterScopedNotInMapIsCorrupt(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ResourceMapFile, sampleResourceMap)
	writeConfig(t, dir, ClusterScopedFile, "- clusterversions\n")

	_, err := Load(dir)
	require.Error(t, err)
	assert.Equal(t, mocerrors.ErrCodeConfigCorrupt, mocerrors.CodeOf(err))
}

func TestLoad_IsClusterScoped(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ResourceMapFile, sampleResourceMap)
	writeConfig(t, dir, ClusterScopedFile, sampleClusterScoped)

	reg, err := Load(dir)
	require.NoError(t, err)
	assert.True(t, reg.IsClusterScoped("nodes"))
	assert.False(t, reg.IsClusterScoped("pods"))
}

func TestLoadWithDefaults_EmptyDirUsesEmbedded(t *testing.T) {
	reg, err := LoadWithDefaults(t.TempDir())
	require.NoError(t, err)

	group, plural, err := reg.Resolve("deploy")
	require.NoError(t, err)
	assert.Equal(t, "apps", group)
	assert.Equal(t, "deployments", plural)
	assert.True(t, reg.IsClusterScoped("nodes"))
}

func TestLoadWithDefaults_FilesOnDiskWin(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ResourceMapFile, sampleResourceMap)
	writeConfig(t, dir, ClusterScopedFile, sampleClusterScoped)

	reg, err := LoadWithDefaults(dir)
	require.NoError(t, err)

	_, _, err = reg.Resolve("cm")
	require.Error(t, err, "configmaps come from the embedded defaults, not the on-disk map")
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		plural string
		want   string
	}{
		{"pods", "Pod"},
		{"deployments", "Deployment"},
		{"services", "Service"},
		{"policies", "Policy"},
		{"ingresses", "Ingress"},
		{"endpoints", "Endpoints"},
		{"statuses", "Status"},
		{"cronjobs", "CronJob"},
		{"storageclasses", "StorageClass"},
		{"cephclusters", "CephCluster"},
		{"boxes", "Box"},
		{"widgets", "Widget"},
	}

	for _, tt := range tests {
		t.Run(tt.plural, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.plural))
		})
	}
}
