package models

// Filter keeps the items for which match returns true, preserving order.
// The input slice is not modified.
func Filter[T any](items []T, match func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if match(item) {
			out = append(out, item)
		}
	}
	return out
}

// Slice returns items[(page-1)*size : page*size], clamped to the slice
// bounds. Callers validate page >= 1 and size >= 1. Pages past the end are
// empty, including those whose offset would overflow int.
func Slice[T any](items []T, page, size int) []T {
	if len(items) == 0 || page < 1 || size < 1 || page-1 > (len(items)-1)/size {
		return []T{}
	}
	start := (page - 1) * size
	end := len(items)
	if size < end-start {
		end = start + size
	}
	return items[start:end]
}
