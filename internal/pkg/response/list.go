package response

// List normalizes a slice for JSON list endpoints so an empty result is
// rendered as [] instead of null.
func List[T any](items []T) []T {
	if items == nil {
		return make([]T, 0)
	}
	return items
}
