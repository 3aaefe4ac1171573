/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package logstream

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mocerrors "github.com/sarahbx/must-oc/pkg/errors"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "current.log")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStream_EmitsWholeFile(t *testing.T) {
	content := "line one\nline two\nline three\n"
	path := writeLog(t, content)

	var sink bytes.Buffer
	require.NoError(t, NewStreamer(0).Stream(path, &sink))
	assert.Equal(t, content, sink.String())
}

func TestStream_PartialLastLineWithoutTerminator(t *testing.T) {
	content := "complete line\npartial"
	path := writeLog(t, content)

	var sink bytes.Buffer
	require.NoError(t, NewStreamer(0).Stream(path, &sink))
	assert.Equal(t, content, sink.String())
}

func TestStream_EmptyFile(t *testing.T) {
	path := writeLog(t, "")

	var sink bytes.Buffer
	require.NoError(t, NewStreamer(0).Stream(path, &sink))
	assert.Empty(t, sink.String())
}

func TestStream_TruncatesAtBudget(t *testing.T) {
	line := strings.Repeat("x", 9) + "\n" // 10 bytes per line
	path := writeLog(t, strings.Repeat(line, 10))

	var sink bytes.Buffer
	require.NoError(t, NewStreamer(35).Stream(path, &sink))

	output := sink.String()
	assert.Equal(t, 3, strings.Count(output, "xxxxxxxxx\n"), "only whole lines within budget are emitted")
	assert.Contains(t, output, "[Truncated: log exceeds 35 bytes")
	assert.True(t, strings.HasSuffix(output, "]\n"))
}

func TestStream_BudgetBoundaryExactFit(t *testing.T) {
	path := writeLog(t, "aaaa\nbbbb\n")

	var sink bytes.Buffer
	require.NoError(t, NewStreamer(10).Stream(path, &sink))
	assert.Equal(t, "aaaa\nbbbb\n", sink.String())
	assert.NotContains(t, sink.String(), "Truncated")
}

func TestStream_MissingFileIsNotFound(t *testing.T) {
	err := NewStreamer(0).Stream(filepath.Join(t.TempDir(), "nope.log"), &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, mocerrors.ErrCodeNotFound, mocerrors.CodeOf(err))
}

func TestStream_NoBytesBeyondBudgetPlusNotice(t *testing.T) {
	path := writeLog(t, strings.Repeat("0123456789\n", 1000))

	var sink bytes.Buffer
	budget := int64(100)
	require.NoError(t, NewStreamer(budget).Stream(path, &sink))

	notice := "\n[Truncated: log exceeds 100 bytes. View the file directly for the remainder.]\n"
	assert.LessOrEqual(t, int64(sink.Len()), budget+int64(len(notice)))
}
