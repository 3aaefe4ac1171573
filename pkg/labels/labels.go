/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package labels implements the restricted label selector grammar accepted on
// the command line: comma-separated `key OP value` terms with OP one of
// =, ==, !=. Set-based selectors are out of scope.
package labels

import (
	"regexp"
	"strings"

	mocerrors "github.com/sarahbx/must-oc/pkg/errors"
)

// MaxSelectorTerms bounds how many terms a selector may carry.
const MaxSelectorTerms = 20

// termPattern restricts keys and values to the characters Kubernetes label
// keys use, including the / of prefixed keys like app.kubernetes.io/name.
var termPattern = regexp.MustCompile(`^[a-zA-Z0-9_./-]+(=|==|!=)[a-zA-Z0-9_./-]*$`)

// Operator is a selector term operator.
type Operator string

const (
	OpEquals    Operator = "="
	OpDoubleEq  Operator = "=="
	OpNotEquals Operator = "!="
)

// Term is one parsed `key OP value` clause.
type Term struct {
	Key      string
	Operator Operator
	Value    string
}

// Selector is a conjunction of terms. An empty selector matches everything.
type Selector []Term

// Parse validates and parses a selector string. Anything outside the grammar
// fails with BAD_SELECTOR.
func Parse(selector string) (Selector, error) {
	if selector == "" {
		return nil, nil
	}

	terms := strings.Split(selector, ",")
	if len(terms) > MaxSelectorTerms {
		return nil, mocerrors.Newf(mocerrors.ErrCodeBadSelector,
			"label selector has %d terms, exceeding the maximum of %d", len(terms), MaxSelectorTerms)
	}

	parsed := make(Selector, 0, len(terms))
	for idx, term := range terms {
		if term == "" {
			return nil, mocerrors.Newf(mocerrors.ErrCodeBadSelector,
				"empty term at position %d in selector %q", idx, selector)
		}
		if !termPattern.MatchString(term) {
			return nil, mocerrors.Newf(mocerrors.ErrCodeBadSelector,
				"invalid selector term at position %d: %q", idx, term)
		}
		parsed = append(parsed, splitTerm(term))
	}
	return parsed, nil
}

// splitTerm splits a term that already matched termPattern. != is checked
// before = so the ! is not swallowed into the key.
func splitTerm(term string) Term {
	if key, value, found := strings.Cut(term, "!="); found {
		return Term{Key: key, Operator: OpNotEquals, Value: value}
	}
	if key, value, found := strings.Cut(term, "=="); found {
		return Term{Key: key, Operator: OpDoubleEq, Value: value}
	}
	key, value, _ := strings.Cut(term, "=")
	return Term{Key: key, Operator: OpEquals, Value: value}
}

// Matches reports whether every term matches the given labels. For = and ==
// the key must exist with the exact value; for != the key must be absent or
// carry a different value.
func (s Selector) Matches(labels map[string]string) bool {
	for _, term := range s {
		value, present := labels[term.Key]
		switch term.Operator {
		case OpEquals, OpDoubleEq:
			if !present || value != term.Value {
				return false
			}
		case OpNotEquals:
			if present && value == term.Value {
				return false
			}
		}
	}
	return true
}
