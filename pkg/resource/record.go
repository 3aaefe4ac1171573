/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package resource

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// Record is one parsed resource document.
type Record struct {
	unstructured.Unstructured
}

// NewRecord wraps an already JSON-normalized object map.
func NewRecord(obj map[string]any) Record {
	return Record{unstructured.Unstructured{Object: obj}}
}

// Identity is the deduplication key. Namespace is empty for cluster-scoped
// kinds.
type Identity struct {
	Namespace string
	Kind      string
	Name      string
}

// Identity returns the record's (namespace, kind, name) triple.
func (r Record) Identity() Identity {
	return Identity{
		Namespace: r.GetNamespace(),
		Kind:      r.GetKind(),
		Name:      r.GetName(),
	}
}

// CreationTimestamp returns the raw metadata.creationTimestamp string, empty
// when absent.
func (r Record) CreationTimestamp() string {
	value, found, err := unstructured.NestedString(r.Object, "metadata", "creationTimestamp")
	if !found || err != nil {
		return ""
	}
	return value
}

// Deduplicate returns records with pairwise distinct identities, keeping the
// first occurrence. Input order is the resolver's precedence order, so
// Pattern A content and earlier roots survive.
func Deduplicate(records []Record) []Record {
	seen := map[Identity]struct{}{}
	out := make([]Record, 0, len(records))
	for _, record := range records {
		id := record.Identity()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, record)
	}
	return out
}
