/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package archive models must-gather archives on disk: discovering archive
// roots, resolving queries to candidate YAML files across the two producer
// layouts, locating container log files, and walking the tree for resource
// type evidence.
//
// Archive roots and resource file paths handed out by this package have been
// passed through Validate, which resolves symlinks and proves the path stays
// inside its archive root. LogFilePath and FindPodDir return paths that have
// not been validated; callers pass a log path through Validate before opening
// it. The tree is untrusted input; nothing here opens a file.
package archive
