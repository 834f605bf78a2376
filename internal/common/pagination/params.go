package pagination

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
)

// Params represents pagination query parameters from an HTTP request.
type Params struct {
	Page  int // 1-based page number
	Limit int // Items per page
}

// ParseQueryParams parses pagination parameters from HTTP request query string.
// Missing parameters take the defaults from config; a zero Config means DefaultConfig().
//
// Query parameters:
//   - page: Page number (must be positive integer, and its offset must fit in an int)
//   - limit: Items per page (must be between 1 and config.MaxLimit)
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	config = config.orDefault()
	params := Params{
		Page:  config.DefaultPage,
		Limit: config.DefaultLimit,
	}

	q := r.URL.Query()
	if pageStr := q.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid query parameter: page must be a positive integer")
		}
		params.Page = page
	}

	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > config.MaxLimit {
			return params, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", config.MaxLimit)
		}
		params.Limit = limit
	}

	// (page-1)*limit がオーバーフローしないこと
	if params.Page-1 > math.MaxInt/params.Limit {
		return params, fmt.Errorf("invalid query parameter: page is too large")
	}

	return params, nil
}
