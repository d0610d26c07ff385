package authz

import (
	"regexp"
	"slices"
	"strings"
)

// scopeSatisfied reports whether the granted scope set covers a required
// scope. A grant covers it when:
//
//  1. the set contains the scope exactly,
//  2. the required scope contains "*" and some grant matches the
//     expanded pattern, or
//  3. the set contains the global wildcard "*" or the category wildcard
//     "<category>:*" for the required scope's first colon segment.
func scopeSatisfied(granted []string, required string) bool {
	if slices.Contains(granted, required) {
		return true
	}

	if strings.Contains(required, "*") {
		pattern := wildcardPattern(required)
		for _, scope := range granted {
			if pattern.MatchString(scope) {
				return true
			}
		}
	}

	category, _, _ := strings.Cut(required, ":")
	return slices.Contains(granted, "*") || slices.Contains(granted, category+":*")
}

// wildcardPattern expands "*" to ".*" while escaping every other
// character, so scope names containing regex metacharacters ("notes.v2")
// match literally instead of as patterns.
func wildcardPattern(scope string) *regexp.Regexp {
	parts := strings.Split(scope, "*")
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}
	return regexp.MustCompile("^" + strings.Join(parts, ".*") + "$")
}
