package domain

import (
	"fmt"
	"strings"
)

// UniqueName returns name if no entry of taken equals it, otherwise
// "name (n)" with the smallest n >= 1 that is free.
func UniqueName(name string, taken []string) string {
	return uniqueName(name, taken, func(a, b string) bool { return a == b })
}

// UniqueNameFold is UniqueName with case-insensitive comparison, for
// filesystems that do not distinguish case.
func UniqueNameFold(name string, taken []string) string {
	return uniqueName(name, taken, strings.EqualFold)
}

func uniqueName(name string, taken []string, eq func(a, b string) bool) string {
	contains := func(candidate string) bool {
		for _, t := range taken {
			if eq(t, candidate) {
				return true
			}
		}
		return false
	}
	if !contains(name) {
		return name
	}
	// len(taken)+1 candidates cannot all be taken.
	for i := 1; i <= len(taken)+1; i++ {
		candidate := fmt.Sprintf("%s (%d)", name, i)
		if !contains(candidate) {
			return candidate
		}
	}
	return name
}
