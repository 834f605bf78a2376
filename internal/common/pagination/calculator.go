package pagination

// CalculateOffset calculates the offset of the first item on a page.
// Page numbers are 1-based, so page 1 has offset 0.
//
// Examples:
//   - Page 1, Limit 20 -> Offset 0
//   - Page 3, Limit 10 -> Offset 20
func CalculateOffset(page, limit int) int {
	return (page - 1) * limit
}

// CalculateTotalPages calculates the total number of pages based on total items and limit.
// An empty collection still has one page.
func CalculateTotalPages(total int64, limit int) int {
	if total == 0 {
		return 1
	}
	// 切り上げ除算
	return int((total + int64(limit) - 1) / int64(limit))
}
