// Copyright 2025 The JSON Schema Go Project Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package matcher wraps regular expression compilation behind a small
// factory so the schema compiler never depends on a specific regex
// engine directly. draft 2019-09 recommends ECMA 262 regex semantics;
// the standard library's RE2 engine is close enough for the keyword
// subset this validator supports (pattern, patternProperties) and is
// the only regex engine grounded anywhere in the reference corpus —
// see DESIGN.md for the non-goal on full ECMA lookaround support.
package matcher

import "regexp"

// Matcher tests strings against a compiled pattern.
type Matcher struct {
	re *regexp.Regexp
}

// Compile compiles pattern once. JSON Schema's "pattern" and
// "patternProperties" keywords test for a partial (unanchored) match,
// which is regexp's default MatchString behavior.
func Compile(pattern string) (Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Matcher{}, err
	}
	return Matcher{re: re}, nil
}

// MatchString reports whether s contains a match for the compiled pattern.
func (m Matcher) MatchString(s string) bool {
	if m.re == nil {
		return false
	}
	return m.re.MatchString(s)
}

// Pattern returns the original pattern source, or "" for the zero Matcher.
func (m Matcher) Pattern() string {
	if m.re == nil {
		return ""
	}
	return m.re.String()
}

// Valid reports whether m wraps a successfully compiled pattern.
func (m Matcher) Valid() bool {
	return m.re != nil
}
