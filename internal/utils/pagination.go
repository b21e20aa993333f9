// Package utils provides small helpers shared by the HTTP layer that carry no
// domain logic.
package utils

import "strconv"

// MaxLimit caps any requested page size.
const MaxLimit = 500

// AtoiDefault converts s with strconv.Atoi, returning def when s is empty or
// not an integer.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// Window parses skip/limit query values. Unparsable or negative values become
// 0. A limit of 0 means "no limit"; positive limits are capped at MaxLimit.
func Window(skipRaw, limitRaw string) (skip, limit int) {
	skip = max(AtoiDefault(skipRaw, 0), 0)
	limit = min(max(AtoiDefault(limitRaw, 0), 0), MaxLimit)
	return skip, limit
}
