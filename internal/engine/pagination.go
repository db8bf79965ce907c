package engine

// Paginate slices a fully fetched collection client-side. The page index is
// clamped into the valid range, so out-of-range requests never fail; hasPrev
// and hasNext report whether navigation controls should be shown.
func Paginate[T any](items []T, page, pageSize int) (pageItems []T, hasPrev, hasNext bool) {
	if pageSize <= 0 {
		pageSize = 1
	}
	if page < 0 {
		page = 0
	}
	if max := maxPage(len(items), pageSize); page > max {
		page = max
	}

	start := page * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return items[start:end], page > 0, end < len(items)
}

// ClampPage returns the page index Paginate would actually serve.
func ClampPage(totalItems, page, pageSize int) int {
	if page < 0 {
		return 0
	}
	if max := maxPage(totalItems, pageSize); page > max {
		return max
	}
	return page
}

func maxPage(totalItems, pageSize int) int {
	if totalItems <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalItems - 1) / pageSize
}
