/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package printer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarahbx/must-oc/pkg/resource"
)

func describeString(t *testing.T, record resource.Record) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Describe(record, &buf))
	return buf.String()
}

func TestDescribe_TopLevelOrderAndAlignment(t *testing.T) {
	record := resource.NewRecord(map[string]any{
		"status":     map[string]any{"phase": "Running"},
		"kind":       "Pod",
		"apiVersion": "v1",
		"metadata":   map[string]any{"name": "p", "namespace": "ns1"},
	})

	output := describeString(t, record)
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")

	// Preferred key order regardless of map iteration order.
	assert.True(t, strings.HasPrefix(lines[0], "apiVersion:"))
	assert.True(t, strings.HasPrefix(lines[1], "kind:"))
	assert.True(t, strings.HasPrefix(lines[2], "metadata:"))
	assert.Contains(t, output, "  name:      p\n")
	assert.Contains(t, output, "  namespace: ns1\n")
}

func TestDescribe_ListsOneItemPerLine(t *testing.T) {
	record := resource.NewRecord(map[string]any{
		"kind": "Service",
		"spec": map[string]any{
			"clusterIPs": []any{"10.0.0.1", "10.0.0.2"},
		},
	})

	output := describeString(t, record)
	assert.Contains(t, output, "  clusterIPs:\n    - 10.0.0.1\n    - 10.0.0.2\n")
}

func TestDescribe_EmptyAndNilValues(t *testing.T) {
	record := resource.NewRecord(map[string]any{
		"kind": "Thing",
		"spec": map[string]any{
			"empty":   []any{},
			"nothing": nil,
			"zero":    map[string]any{},
		},
	})

	output := describeString(t, record)
	assert.Contains(t, output, "empty: <none>\n")
	assert.Contains(t, output, "nothing: <none>\n")
	assert.Contains(t, output, "zero: {}\n")
}

func TestDescribe_Deterministic(t *testing.T) {
	record := resource.NewRecord(map[string]any{
		"kind": "Pod",
		"metadata": map[string]any{
			"name":   "p",
			"labels": map[string]any{"b": "2", "a": "1", "c": "3"},
		},
	})

	first := describeString(t, record)
	second := describeString(t, record)
	assert.Equal(t, first, second)

	aIdx := strings.Index(first, "a: ")
	bIdx := strings.Index(first, "b: ")
	cIdx := strings.Index(first, "c: ")
	assert.Less(t, aIdx, bIdx)
	assert.Less(t, bIdx, cIdx)
}
