package pagination

// Metadata contains pagination metadata included in API responses.
type Metadata struct {
	Total      int64 `json:"total"`       // Total number of items across all pages
	Page       int   `json:"page"`        // Current page number (1-based)
	Limit      int   `json:"limit"`       // Items per page
	TotalPages int   `json:"total_pages"` // Calculated total number of pages
}

// Window returns the slice of items on the requested page together with its
// metadata. A page past the end yields an empty, non-nil slice.
// params.Limit must be positive, as ParseQueryParams guarantees.
func Window[T any](items []T, params Params) ([]T, Metadata) {
	total := int64(len(items))
	meta := Metadata{
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: CalculateTotalPages(total, params.Limit),
	}
	RecordRequest(params.Page)

	// ページ数で比較してオフセット計算のオーバーフローを避ける
	filled := (len(items) + params.Limit - 1) / params.Limit
	if params.Page < 1 || params.Page > filled {
		return []T{}, meta
	}
	offset := CalculateOffset(params.Page, params.Limit)
	end := min(offset+params.Limit, len(items))
	return items[offset:end], meta
}
