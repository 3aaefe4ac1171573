/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package logstream emits captured container logs line by line under a hard
// byte budget. Files are never buffered whole; a single truncation notice is
// appended when the budget is hit.
package logstream

import (
	"bufio"
	"fmt"
	"io"
	"os"

	mocerrors "github.com/sarahbx/must-oc/pkg/errors"
)

// MaxLogBytes is the default output budget before truncation.
const MaxLogBytes int64 = 100 * 1024 * 1024

// state of the emission loop.
type state int

const (
	stateStreaming state = iota
	stateTruncated
	stateDone
)

// Streamer copies log files to a sink line by line.
type Streamer struct {
	maxBytes int64
}

// NewStreamer returns a Streamer with the given byte budget, or MaxLogBytes
// when maxBytes is zero.
func NewStreamer(maxBytes int64) *Streamer {
	if maxBytes == 0 {
		maxBytes = MaxLogBytes
	}
	return &Streamer{maxBytes: maxBytes}
}

// Stream writes the file at path to sink. Lines are emitted whole; when the
// running byte count would exceed the budget the loop switches to the
// truncated state, emits one notice line, and stops. A final line without a
// terminator is emitted as-is.
func (s *Streamer) Stream(path string, sink io.Writer) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return mocerrors.Newf(mocerrors.ErrCodeNotFound, "log file not found: %s", path)
		}
		return mocerrors.Wrap(mocerrors.ErrCodeInternal, "cannot open log file", err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	var written int64
	current := stateStreaming

	for current == stateStreaming {
		line, readErr := reader.ReadBytes('\n')

		if len(line) > 0 {
			if written+int64(len(line)) > s.maxBytes {
				current = stateTruncated
			} else {
				if _, err := sink.Write(line); err != nil {
					return mocerrors.Wrap(mocerrors.ErrCodeInternal, "cannot write log output", err)
				}
				written += int64(len(line))
			}
		}

		if current == stateStreaming && readErr != nil {
			if readErr == io.EOF {
				current = stateDone
			} else {
				return mocerrors.Wrap(mocerrors.ErrCodeInternal, "cannot read log file", readErr)
			}
		}
	}

	if current == stateTruncated {
		notice := fmt.Sprintf("\n[Truncated: log exceeds %d bytes. View the file directly for the remainder.]\n", s.maxBytes)
		if _, err := io.WriteString(sink, notice); err != nil {
			return mocerrors.Wrap(mocerrors.ErrCodeInternal, "cannot write truncation notice", err)
		}
	}
	return nil
}
