// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package record

import (
	"go/token"
	"strings"
	"unicode"
)

// snakeCase converts a Go identifier to snake_case, keeping acronyms
// together: UserProfileID -> user_profile_id, HTTPAddress -> http_address.
func snakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || (unicode.IsUpper(runes[i-1]) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// lowerFirst returns name with its leading acronym or letter lowercased,
// suitable for a local variable: UserProfile -> userProfile, ID -> id.
func lowerFirst(name string) string {
	runes := []rune(name)
	i := 0
	for i < len(runes) && unicode.IsUpper(runes[i]) {
		i++
	}
	switch {
	case i == 0:
	case i == 1 || i == len(runes):
		for j := 0; j < i; j++ {
			runes[j] = unicode.ToLower(runes[j])
		}
	default:
		// keep the last capital: it starts the next word (HTTPServer -> httpServer)
		for j := 0; j < i-1; j++ {
			runes[j] = unicode.ToLower(runes[j])
		}
	}
	s := string(runes)
	if token.IsKeyword(s) {
		s += "_"
	}
	return s
}

func plural(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, "s"), strings.HasSuffix(lower, "x"), strings.HasSuffix(lower, "z"),
		strings.HasSuffix(lower, "ch"), strings.HasSuffix(lower, "sh"):
		return name + "es"
	case strings.HasSuffix(lower, "y") && len(lower) > 1 && !strings.ContainsRune("aeiou", rune(lower[len(lower)-2])):
		return name[:len(name)-1] + "ies"
	}
	return name + "s"
}

// splitQualified splits "model.LowboyUser" into ("model.", "LowboyUser").
func splitQualified(typ string) (string, string) {
	if i := strings.LastIndexByte(typ, '.'); i >= 0 {
		return typ[:i+1], typ[i+1:]
	}
	return "", typ
}
