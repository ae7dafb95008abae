// Package grid maps linear buffer indices onto 2D display coordinates.
package grid

// GetGridCoords converts a linear index into (x, y) coordinates on a grid
// with the given number of columns.
func GetGridCoords(index int, cols int) (int, int) {
	return index % cols, index / cols
}

// PageBounds returns the half-open index range [start, end) shown on the
// given page of a buffer of length size, with pageSize indices per page.
func PageBounds(page, pageSize, size int) (start, end int) {
	start = page * pageSize
	if start > size {
		start = size
	}
	end = start + pageSize
	if end > size {
		end = size
	}
	return start, end
}

// MaxPage returns the last valid page index for a buffer of length size.
func MaxPage(pageSize, size int) int {
	if size <= 0 {
		return 0
	}
	return (size - 1) / pageSize
}
