package util

import "strconv"

const (
	DefaultSkip  = 0
	DefaultLimit = 100
	MaxLimit     = 1000
)

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// Window normalizes an offset/limit pair: negative skip starts at 0,
// a non-positive limit falls back to DefaultLimit and limits above
// MaxLimit are capped.
func Window(skip, limit int) (int, int) {
	if skip < 0 {
		skip = DefaultSkip
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return skip, limit
}
