/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package resource

import (
	"strings"

	"k8s.io/apimachinery/pkg/runtime"
)

// Sentinel substituted for sensitive values.
const Redacted = "<REDACTED>"

// Resource kinds whose data/stringData fields are always redacted.
var sensitiveKinds = map[string]struct{}{
	"Secret": {},
}

// Key substrings that mark a value as sensitive at any depth.
var sensitiveKeyPatterns = []string{
	"password",
	"token",
	"secret",
	"api_key",
	"apikey",
	"private_key",
	"ssh_key",
	"certificate",
	"credentials",
}

const lastAppliedConfigKey = "kubectl.kubernetes.io/last-applied-configuration"

// Redact returns a deep copy of the record with sensitive values replaced by
// the sentinel. Rules:
//  1. Secrets have every value under data and stringData replaced.
//  2. At any depth, a mapping key whose lowercased form contains one of the
//     sensitive patterns has its value replaced.
//  3. The last-applied-configuration annotation is replaced, since it can
//     embed the full original object.
//
// The input record is never mutated.
func Redact(record Record) Record {
	obj := runtime.DeepCopyJSON(record.Object)

	if kind, _ := obj["kind"].(string); isSensitiveKind(kind) {
		for _, field := range []string{"data", "stringData"} {
			if section, ok := obj[field].(map[string]any); ok {
				for key := range section {
					section[key] = Redacted
				}
			}
		}
	}

	if metadata, ok := obj["metadata"].(map[string]any); ok {
		if annotations, ok := metadata["annotations"].(map[string]any); ok {
			if _, present := annotations[lastAppliedConfigKey]; present {
				annotations[lastAppliedConfigKey] = Redacted
			}
		}
	}

	redactMap(obj)
	return NewRecord(obj)
}

func isSensitiveKind(kind string) bool {
	_, ok := sensitiveKinds[kind]
	return ok
}

func keyIsSensitive(key string) bool {
	lowered := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(lowered, pattern) {
			return true
		}
	}
	return false
}

func redactMap(obj map[string]any) {
	for key, value := range obj {
		if keyIsSensitive(key) {
			obj[key] = Redacted
			continue
		}
		redactValue(value)
	}
}

func redactValue(value any) {
	switch v := value.(type) {
	case map[string]any:
		redactMap(v)
	case []any:
		for _, item := range v {
			redactValue(item)
		}
	}
}
