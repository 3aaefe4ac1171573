/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package oc is the core query engine behind the CLI. It composes the type
// registry, archive discovery, path resolution, safe YAML loading, label
// filtering, deduplication and redaction into the four operations the front
// end needs: List, Get, StreamLog and UpdateTypes.
//
// All operations are synchronous and deterministic: identical queries over an
// unchanged filesystem produce identical output.
package oc
