package services

import "context"

const (
	defaultSkip  = 0
	defaultLimit = 20
)

func ensuredContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// normalizePagination clamps offset/limit to their defaults so malformed
// values never reach the database or leak into cache keys.
func normalizePagination(skip, limit int) (int, int) {
	if skip < 0 {
		skip = defaultSkip
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	return skip, limit
}
