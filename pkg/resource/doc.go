/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package resource loads Kubernetes resource documents from must-gather
// archives and prepares them for display: size-bounded safe YAML parsing,
// list-file flattening, identity-based deduplication, and sensitive-field
// redaction.
//
// Records are unstructured objects. Values are normalized to the JSON type
// set (string, bool, int64, float64, nil, []any, map[string]any) so the
// apimachinery accessors and deep-copy helpers apply uniformly.
package resource
