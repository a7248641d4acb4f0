// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package util provides shared string helpers.
package util

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upper = cases.Upper(language.Und)

// ToLowerCamelCase converts PascalCase to camelCase.
func ToLowerCamelCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// UpperFirstChar upper-cases the first character and leaves the rest untouched.
func UpperFirstChar(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return upper.String(s[:size]) + s[size:]
}

// CollectionElementType unwraps an EDM collection type reference.
// For example: "Collection(NS.Customer)" returns "NS.Customer", true.
func CollectionElementType(t string) (string, bool) {
	t = strings.TrimSpace(t)
	if strings.HasPrefix(t, "Collection(") && strings.HasSuffix(t, ")") {
		return strings.TrimSpace(t[len("Collection(") : len(t)-1]), true
	}
	return t, false
}

// LastQualifiedPart returns the unqualified name of a namespace-qualified name.
// For example: "NS.Sub.Customer" returns "Customer".
func LastQualifiedPart(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}
