/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package serializer renders query results as structured documents for the
// -o/--output flag of the CLI.
package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the serialization format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// IsUnknown reports whether f is not a supported format.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatYAML, FormatJSON:
		return false
	}
	return true
}

// SupportedFormats returns the valid format names for help text.
func SupportedFormats() string {
	return strings.Join([]string{string(FormatYAML), string(FormatJSON)}, ", ")
}

// Writer serializes values to an output stream in one format.
type Writer struct {
	format Format
	out    io.Writer
}

// NewWriter creates a Writer. A nil output defaults to stdout; an unknown
// format falls back to YAML.
func NewWriter(format Format, out io.Writer) *Writer {
	if out == nil {
		out = os.Stdout
	}
	if format.IsUnknown() {
		format = FormatYAML
	}
	return &Writer{format: format, out: out}
}

// Serialize writes data to the output stream in the writer's format.
func (w *Writer) Serialize(_ context.Context, data any) error {
	switch w.format {
	case FormatJSON:
		encoded, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize to json: %w", err)
		}
		_, err = fmt.Fprintln(w.out, string(encoded))
		return err
	default:
		encoder := yaml.NewEncoder(w.out)
		encoder.SetIndent(2)
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to serialize to yaml: %w", err)
		}
		return encoder.Close()
	}
}
