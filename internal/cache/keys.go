package cache

import "fmt"

// Cache keys follow two fixed shapes per resource namespace:
//
//	{resource}:{id}                entity reads
//	{resource}:list:{skip}:{limit} list reads
//
// The shapes never collide because entity ids are numeric and the list segment
// is the literal "list". Pattern and ListPattern cover every key either shape
// can produce, so pattern-based invalidation cannot miss an entry.

// EntityKey derives the cache key for a single-entity read.
func EntityKey(resource string, id uint) string {
	return fmt.Sprintf("%s:%d", resource, id)
}

// ListKey derives the cache key for a paginated list read.
func ListKey(resource string, skip, limit int) string {
	return fmt.Sprintf("%s:list:%d:%d", resource, skip, limit)
}

// Pattern matches every key in a resource namespace.
func Pattern(resource string) string {
	return resource + ":*"
}

// ListPattern matches every list key in a resource namespace.
func ListPattern(resource string) string {
	return resource + ":list:*"
}
