// internal/store/key.go
package store

import (
	"strconv"
	"strings"
)

// keyLess orders entity keys numerically when both parse as integers,
// falling back to a case-insensitive lexicographic comparison.
func keyLess(a, b string) bool {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		return na < nb
	}
	return strings.ToLower(a) < strings.ToLower(b)
}

// containsFold reports whether needle occurs in haystack ignoring case.
// An empty needle always matches.
func containsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
