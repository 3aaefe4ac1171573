/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package registry

import (
	_ "embed"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed config/irregular_plurals.yaml
var irregularPluralsData []byte

var (
	irregularOnce    sync.Once
	irregularPlurals map[string]string
)

// suffixes whose plural form appends "es" rather than "s".
var esSuffixes = []string{"sses", "xes", "zes", "ches", "shes"}

func loadIrregularPlurals() map[string]string {
	irregularOnce.Do(func() {
		table := map[string]string{}
		// The table is embedded at build time; a parse failure would be a
		// packaging defect, so fall through to the bare heuristic.
		if err := yaml.Unmarshal(irregularPluralsData, &table); err != nil {
			table = map[string]string{}
		}
		irregularPlurals = table
	})
	return irregularPlurals
}

// KindOf converts a plural resource name to its PascalCase Kind for display
// and deduplication. Irregular plurals come from the embedded table; anything
// else strips a trailing s/es and capitalizes. The fallback can be slightly
// wrong for unknown irregulars, which only affects display.
func KindOf(plural string) string {
	if kind, ok := loadIrregularPlurals()[plural]; ok {
		return kind
	}

	singular := plural
	switch {
	case hasAnySuffix(plural, esSuffixes):
		singular = plural[:len(plural)-2]
	case strings.HasSuffix(plural, "s"):
		singular = plural[:len(plural)-1]
	}

	if singular == "" {
		return plural
	}
	return cases.Title(language.English, cases.NoLower).String(singular)
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}
