// Package slices holds generic helpers the standard slices package does not provide.
package slices

// Map returns a new slice holding mapper applied to each element, in order.
func Map[F any, T any](original []F, mapper func(F) T) []T {
	destination := make([]T, 0, len(original))
	for _, item := range original {
		destination = append(destination, mapper(item))
	}
	return destination
}

// Filter returns a new slice containing only the elements for which the predicate function returns true.
func Filter[T any](slice []T, predicate func(T) bool) []T {
	var result []T
	for _, item := range slice {
		if predicate(item) {
			result = append(result, item)
		}
	}
	return result
}
