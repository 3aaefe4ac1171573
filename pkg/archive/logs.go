/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package archive

import (
	"os"
	"path/filepath"
)

// LogVariant selects which captured log file to read.
type LogVariant string

const (
	LogCurrent  LogVariant = "current"
	LogPrevious LogVariant = "previous"
)

const podsDir = "pods"

// LogFilePath builds the path to a container log inside root. The container
// segment is doubled; that is the producer's layout, not a typo.
func LogFilePath(root, namespace, pod, container string, variant LogVariant) string {
	return filepath.Join(root, namespacesDir, namespace, podsDir, pod,
		container, container, "logs", string(variant)+".log")
}

// FindPodDir locates namespaces/<ns>/pods/<pod> in root order. Returns the
// pod directory and its owning root, or ok=false when no root has the pod.
func FindPodDir(roots []string, namespace, pod string) (podDir, root string, ok bool) {
	for _, r := range roots {
		dir := filepath.Join(r, namespacesDir, namespace, podsDir, pod)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, r, true
		}
	}
	return "", "", false
}

// ListContainers returns the container names under a pod directory, sorted.
// A subdirectory counts as a container only when it holds the doubled
// <name>/<name>/logs layout, which filters out entries like the pod YAML.
func ListContainers(podDir string) []string {
	entries, err := os.ReadDir(podDir)
	if err != nil {
		return nil
	}

	var containers []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		logsDir := filepath.Join(podDir, entry.Name(), entry.Name(), "logs")
		if info, err := os.Stat(logsDir); err == nil && info.IsDir() {
			containers = append(containers, entry.Name())
		}
	}
	return containers
}
