/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package registry maintains the mapping from user-facing resource tokens to
// (api group, plural) pairs, the set of cluster-scoped plurals, and the
// irregular plural-to-Kind table.
//
// The registry is data driven: it lives in two YAML files inside a config
// directory so operators can extend it by hand, and `must-oc update-types`
// grows it from filesystem evidence. Loading validates that every alias
// resolves to exactly one kind and that every cluster-scoped plural is known.
// Readers treat a loaded Registry as immutable; only the updater writes it
// back, atomically.
package registry
