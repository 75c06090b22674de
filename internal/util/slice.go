package util

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// SortedKeys returns the keys of the given map in increasing order
func SortedKeys[T constraints.Ordered, K any](input map[T]K) []T {
	result := make([]T, 0, len(input))
	for k := range input {
		result = append(result, k)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i] < result[j]
	})
	return result
}
