/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package resource

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	mocerrors "github.com/sarahbx/must-oc/pkg/errors"
)

// MaxYAMLBytes is the default hard ceiling on file size, checked before the
// file is opened.
const MaxYAMLBytes int64 = 100 * 1024 * 1024

// tags the safe decoder accepts. Anything else, in particular host-language
// object constructors like !!python/object, is rejected before decoding.
var allowedTags = map[string]struct{}{
	"":            {},
	"!":           {},
	"!!str":       {},
	"!!int":       {},
	"!!float":     {},
	"!!bool":      {},
	"!!null":      {},
	"!!map":       {},
	"!!seq":       {},
	"!!timestamp": {},
	"!!binary":    {},
	"!!merge":     {},
}

// Reader performs size-bounded, safe YAML loads. The zero value is not
// usable; construct with NewReader.
type Reader struct {
	maxBytes int64
}

// NewReader returns a Reader with the given size ceiling, or MaxYAMLBytes
// when maxBytes is zero.
func NewReader(maxBytes int64) *Reader {
	if maxBytes == 0 {
		maxBytes = MaxYAMLBytes
	}
	return &Reader{maxBytes: maxBytes}
}

// Load parses the file at path into records. A document whose kind ends in
// "List" is flattened to its items, with each item's kind backfilled from the
// list kind when missing. Empty files yield zero records. Oversized files are
// TOO_LARGE, unsafe constructs UNSAFE_YAML, and anything else that fails to
// decode PARSE_ERROR carrying the path (and line, when the parser reports
// one).
func (r *Reader) Load(path string) ([]Record, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, mocerrors.Wrap(mocerrors.ErrCodeNotFound, path, err)
	}
	if info.Size() > r.maxBytes {
		return nil, mocerrors.Newf(mocerrors.ErrCodeTooLarge,
			"file %s is %d bytes, exceeding the maximum allowed size of %d bytes", path, info.Size(), r.maxBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, mocerrors.Wrap(mocerrors.ErrCodeParse, fmt.Sprintf("cannot read %s", path), err)
	}

	var node yaml.Node
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, mocerrors.Wrap(mocerrors.ErrCodeParse, fmt.Sprintf("malformed YAML in %s", path), err)
	}

	if err := checkSafeTags(&node, path); err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := node.Decode(&doc); err != nil {
		return nil, mocerrors.Wrap(mocerrors.ErrCodeParse,
			fmt.Sprintf("expected a YAML mapping in %s", path), err)
	}
	if doc == nil {
		return nil, nil
	}

	obj, ok := normalizeValue(doc).(map[string]any)
	if !ok {
		return nil, mocerrors.Newf(mocerrors.ErrCodeParse, "expected a YAML mapping in %s", path)
	}

	kind, _ := obj["kind"].(string)
	if strings.HasSuffix(kind, "List") {
		return flattenList(obj, kind, path)
	}
	return []Record{NewRecord(obj)}, nil
}

// flattenList expands a *List document into its items, backfilling each
// item's kind from the list kind.
func flattenList(obj map[string]any, listKind, path string) ([]Record, error) {
	rawItems, present := obj["items"]
	if !present || rawItems == nil {
		return nil, nil
	}
	items, ok := rawItems.([]any)
	if !ok {
		return nil, mocerrors.Newf(mocerrors.ErrCodeParse, "expected 'items' to be a sequence in %s", path)
	}

	itemKind := strings.TrimSuffix(listKind, "List")
	records := make([]Record, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, mocerrors.Newf(mocerrors.ErrCodeParse, "expected mapping items in %s", path)
		}
		if _, hasKind := entry["kind"]; !hasKind && itemKind != "" {
			entry["kind"] = itemKind
		}
		records = append(records, NewRecord(entry))
	}
	return records, nil
}

// checkSafeTags walks the node tree rejecting any tag outside the plain YAML
// type system.
func checkSafeTags(node *yaml.Node, path string) error {
	if _, ok := allowedTags[node.Tag]; !ok {
		return mocerrors.Newf(mocerrors.ErrCodeUnsafeYAML,
			"refusing unsafe YAML tag %q in %s, line %d", node.Tag, path, node.Line)
	}
	for _, child := range node.Content {
		if err := checkSafeTags(child, path); err != nil {
			return err
		}
	}
	return nil
}

// normalizeValue converts yaml.v3 decode output to the JSON type set used by
// the unstructured accessors and runtime.DeepCopyJSON: ints widen to int64
// and nested containers are rebuilt recursively.
func normalizeValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = normalizeValue(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = normalizeValue(val)
		}
		return out
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case uint64:
		return int64(v)
	case float32:
		return float64(v)
	case []byte:
		return string(v)
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	default:
		return v
	}
}
