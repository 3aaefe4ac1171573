/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package printer

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sarahbx/must-oc/pkg/resource"
)

// Top-level keys rendered first, in this order; anything else follows sorted.
var describeKeyOrder = []string{"apiVersion", "kind", "metadata", "spec", "data", "stringData", "status"}

// Describe writes a key/value rendering of the record in the style of
// `oc describe`: top-level keys aligned into a column, nested mappings
// indented by two spaces, list items one per line. Map keys are ordered
// deterministically so repeated runs are byte-identical.
func Describe(record resource.Record, w io.Writer) error {
	obj := record.Object
	keys := orderedKeys(obj)

	width := 0
	for _, key := range keys {
		if isScalar(obj[key]) && len(key)+1 > width {
			width = len(key) + 1
		}
	}

	for _, key := range keys {
		if err := writeEntry(w, key, obj[key], 0, width); err != nil {
			return err
		}
	}
	return nil
}

func orderedKeys(obj map[string]any) []string {
	seen := map[string]struct{}{}
	var keys []string
	for _, key := range describeKeyOrder {
		if _, ok := obj[key]; ok {
			keys = append(keys, key)
			seen[key] = struct{}{}
		}
	}

	var rest []string
	for key := range obj {
		if _, ok := seen[key]; !ok {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func writeEntry(w io.Writer, key string, value any, indent, width int) error {
	prefix := strings.Repeat(" ", indent)

	switch v := value.(type) {
	case map[string]any:
		if len(v) == 0 {
			_, err := fmt.Fprintf(w, "%s%s: {}\n", prefix, key)
			return err
		}
		if _, err := fmt.Fprintf(w, "%s%s:\n", prefix, key); err != nil {
			return err
		}
		nestedWidth := 0
		for _, k := range sortedMapKeys(v) {
			if isScalar(v[k]) && len(k)+1 > nestedWidth {
				nestedWidth = len(k) + 1
			}
		}
		for _, k := range sortedMapKeys(v) {
			if err := writeEntry(w, k, v[k], indent+2, nestedWidth); err != nil {
				return err
			}
		}
		return nil

	case []any:
		if len(v) == 0 {
			_, err := fmt.Fprintf(w, "%s%s: <none>\n", prefix, key)
			return err
		}
		if _, err := fmt.Fprintf(w, "%s%s:\n", prefix, key); err != nil {
			return err
		}
		for _, item := range v {
			if err := writeListItem(w, item, indent+2); err != nil {
				return err
			}
		}
		return nil

	default:
		padded := key + ":"
		if pad := width - len(padded); pad > 0 {
			padded += strings.Repeat(" ", pad)
		}
		_, err := fmt.Fprintf(w, "%s%s %s\n", prefix, padded, scalarString(value))
		return err
	}
}

func writeListItem(w io.Writer, item any, indent int) error {
	prefix := strings.Repeat(" ", indent)

	if m, ok := item.(map[string]any); ok {
		if _, err := fmt.Fprintf(w, "%s-\n", prefix); err != nil {
			return err
		}
		for _, k := range sortedMapKeys(m) {
			if err := writeEntry(w, k, m[k], indent+2, 0); err != nil {
				return err
			}
		}
		return nil
	}

	_, err := fmt.Fprintf(w, "%s- %s\n", prefix, scalarString(item))
	return err
}

func isScalar(value any) bool {
	switch value.(type) {
	case map[string]any, []any:
		return false
	}
	return true
}

func scalarString(value any) string {
	if value == nil {
		return "<none>"
	}
	return fmt.Sprintf("%v", value)
}

func sortedMapKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
