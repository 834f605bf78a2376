package pathutil

import (
	"regexp"
	"strings"
)

// entityPath matches /{collection}/{uuid} with an optional sub-resource.
var entityPath = regexp.MustCompile(
	`^/(authors|magazines|articles)/[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}(/[a-z-]+)?$`,
)

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
// It converts paths with IDs (e.g., /authors/<uuid>/magazines) to template format
// (e.g., /authors/:id/magazines). Static paths remain unchanged.
//
// Examples:
//
//	NormalizePath("/authors/3f1c2a9e-8b7d-4c6e-9a1b-2d3e4f5a6b7c")           // "/authors/:id"
//	NormalizePath("/magazines/3f1c2a9e-8b7d-4c6e-9a1b-2d3e4f5a6b7c/contributors") // "/magazines/:id/contributors"
//	NormalizePath("/health")                                                  // "/health"
//	NormalizePath("/authors/not-a-uuid")                                      // "/authors/not-a-uuid"
//
// Query parameters and trailing slashes are stripped first.
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	m := entityPath.FindStringSubmatch(path)
	if m == nil {
		return path
	}
	return "/" + m[1] + "/:id" + m[2]
}
