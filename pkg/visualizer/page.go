package visualizer

// PageSizes are the page sizes offered by the table views.
var PageSizes = []int{10, 20, 30, 40, 50}

// DefaultPageSize is used when no valid size is requested.
const DefaultPageSize = 10

// Page is one window of a table.
type Page[T any] struct {
	// Index is zero-based.
	Index int
	Size  int
	// Count is the number of pages, at least 1.
	Count int
	Items []T
}

// HasPrevious reports whether an earlier page exists.
func (p Page[T]) HasPrevious() bool {
	return p.Index > 0
}

// HasNext reports whether a later page exists.
func (p Page[T]) HasNext() bool {
	return p.Index < p.Count-1
}

// Paginate returns page index of items. Out of range indexes are clamped to the
// first or last page, and a non-positive size falls back to DefaultPageSize.
func Paginate[T any](items []T, index, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	count := (len(items) + size - 1) / size
	if count == 0 {
		count = 1
	}
	if index < 0 {
		index = 0
	}
	if index >= count {
		index = count - 1
	}

	start := index * size
	end := start + size
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{Index: index, Size: size, Count: count, Items: items[start:end]}
}
