/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package oc

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/sarahbx/must-oc/pkg/archive"
	mocerrors "github.com/sarahbx/must-oc/pkg/errors"
	"github.com/sarahbx/must-oc/pkg/labels"
	"github.com/sarahbx/must-oc/pkg/logstream"
	"github.com/sarahbx/must-oc/pkg/registry"
	"github.com/sarahbx/must-oc/pkg/resource"
)

// Options bound the engine's resource usage.
type Options struct {
	// MaxYAMLBytes caps resource file sizes; 0 means the package default.
	MaxYAMLBytes int64
	// MaxLogBytes caps log output; 0 means the package default.
	MaxLogBytes int64
}

// Engine executes read queries against a fixed, ordered set of archive roots
// using an immutable type registry.
type Engine struct {
	registry *registry.Registry
	roots    []string
	reader   *resource.Reader
	streamer *logstream.Streamer
}

// New builds an Engine over the given registry and archive roots.
func New(reg *registry.Registry, roots []string, opts Options) *Engine {
	return &Engine{
		registry: reg,
		roots:    roots,
		reader:   resource.NewReader(opts.MaxYAMLBytes),
		streamer: logstream.NewStreamer(opts.MaxLogBytes),
	}
}

// Roots returns the engine's archive roots in precedence order.
func (e *Engine) Roots() []string {
	return e.roots
}

// BuildQuery resolves a user-typed resource token into an archive query.
// Cluster-scoped kinds ignore the namespace arguments.
func (e *Engine) BuildQuery(resourceType, namespace string, allNamespaces bool, name string) (archive.Query, error) {
	group, plural, err := e.registry.Resolve(resourceType)
	if err != nil {
		return archive.Query{}, err
	}

	q := archive.Query{Group: group, Plural: plural, Name: name}
	switch {
	case e.registry.IsClusterScoped(plural):
		q.Scope = archive.ScopeCluster
	case allNamespaces:
		q.Scope = archive.ScopeAllNamespaces
	default:
		q.Scope = archive.ScopeNamespace
		q.Namespace = namespace
	}
	return q, nil
}

// KindOf exposes the registry's plural-to-Kind conversion for display.
func (e *Engine) KindOf(plural string) string {
	return registry.KindOf(plural)
}

// List returns the deduplicated, optionally filtered records matching q.
// Files that cannot be read safely are skipped with a warning; the listing
// continues. Records are redacted unless reveal is set.
func (e *Engine) List(q archive.Query, selector labels.Selector, reveal bool) ([]resource.Record, error) {
	files := archive.FindResourceFiles(e.roots, q)

	var records []resource.Record
	for _, file := range files {
		loaded, err := e.reader.Load(file)
		if err != nil {
			slog.Warn("skipping file", "path", file, "error", err)
			continue
		}
		records = append(records, loaded...)
	}

	if len(selector) > 0 {
		filtered := records[:0]
		for _, record := range records {
			if selector.Matches(record.GetLabels()) {
				filtered = append(filtered, record)
			}
		}
		records = filtered
	}

	records = resource.Deduplicate(records)

	if !reveal {
		for i, record := range records {
			records[i] = resource.Redact(record)
		}
	}
	return records, nil
}

// Get returns the single record named by q, or NOT_FOUND. Unlike List, read
// failures are fatal.
func (e *Engine) Get(q archive.Query, reveal bool) (resource.Record, error) {
	if q.Name == "" {
		return resource.Record{}, mocerrors.New(mocerrors.ErrCodeInternal, "Get requires a resource name")
	}

	files := archive.FindResourceFiles(e.roots, q)
	if len(files) == 0 {
		return resource.Record{}, notFoundForQuery(q)
	}

	records, err := e.reader.Load(files[0])
	if err != nil {
		return resource.Record{}, err
	}
	if len(records) == 0 {
		return resource.Record{}, notFoundForQuery(q)
	}

	record := records[0]
	if !reveal {
		record = resource.Redact(record)
	}
	return record, nil
}

func notFoundForQuery(q archive.Query) error {
	if q.Namespace != "" {
		return mocerrors.Newf(mocerrors.ErrCodeNotFound, "%s %q not found in namespace %q", q.Plural, q.Name, q.Namespace)
	}
	return mocerrors.Newf(mocerrors.ErrCodeNotFound, "%s %q not found", q.Plural, q.Name)
}

// LogHandle identifies one container log to stream. An empty Container asks
// the engine to disambiguate from the pod's directory layout.
type LogHandle struct {
	Namespace string
	Pod       string
	Container string
	Variant   archive.LogVariant
}

// StreamLog resolves the handle to a single validated log file and streams it
// to sink. When the pod has several containers and none was named, the error
// is AMBIGUOUS_CONTAINER and carries the candidate names.
func (e *Engine) StreamLog(h LogHandle, sink io.Writer) error {
	podDir, root, ok := archive.FindPodDir(e.roots, h.Namespace, h.Pod)
	if !ok {
		return mocerrors.Newf(mocerrors.ErrCodeNotFound, "pod %q not found in namespace %q", h.Pod, h.Namespace)
	}

	containers := archive.ListContainers(podDir)
	container := h.Container

	if container == "" {
		switch len(containers) {
		case 0:
			return mocerrors.Newf(mocerrors.ErrCodeNotFound, "no log files found for pod %q", h.Pod)
		case 1:
			container = containers[0]
		default:
			return mocerrors.WrapWithContext(mocerrors.ErrCodeAmbiguousContainer,
				fmt.Sprintf("pod %q has multiple containers. Use -c to specify one of: [%s]",
					h.Pod, strings.Join(containers, ", ")),
				nil, map[string]any{"containers": containers})
		}
	} else if !slices.Contains(containers, container) {
		return mocerrors.Newf(mocerrors.ErrCodeNotFound, "container %q not found in pod %q", container, h.Pod)
	}

	variant := h.Variant
	if variant == "" {
		variant = archive.LogCurrent
	}

	logPath := archive.LogFilePath(root, h.Namespace, h.Pod, container, variant)
	validated, err := archive.Validate(logPath, root)
	if err != nil {
		if mocerrors.Is(err, mocerrors.ErrCodeNotFound) {
			return mocerrors.Newf(mocerrors.ErrCodeNotFound,
				"%s.log not found for container %q in pod %q", variant, container, h.Pod)
		}
		return err
	}

	return e.streamer.Stream(validated, sink)
}

// UpdateSummary reports what an UpdateTypes run discovered and added.
type UpdateSummary struct {
	RootsScanned       int
	DiscoveredTypes    int
	DiscoveredCluster  int
	AddedKinds         []string
	AddedClusterScoped []string
}

// UpdateTypes scans the given roots for resource type evidence and additively
// merges the findings into the registry files under configDir. Existing
// entries, including operator-authored aliases, are never modified.
func UpdateTypes(roots []string, configDir string) (UpdateSummary, error) {
	discovered := archive.ScanResourceTypes(roots)
	discoveredCluster := archive.ScanClusterScoped(roots)

	reg, err := registry.LoadWithDefaults(configDir)
	if err != nil {
		return UpdateSummary{}, err
	}

	merged, result, err := registry.Merge(reg, discovered, discoveredCluster)
	if err != nil {
		return UpdateSummary{}, err
	}

	if err := merged.Store(configDir); err != nil {
		return UpdateSummary{}, err
	}

	return UpdateSummary{
		RootsScanned:       len(roots),
		DiscoveredTypes:    len(discovered),
		DiscoveredCluster:  len(discoveredCluster),
		AddedKinds:         result.AddedKinds,
		AddedClusterScoped: result.AddedClusterScoped,
	}, nil
}
