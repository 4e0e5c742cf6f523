package sliceutil

import (
	"fmt"
	"strings"
)

func Filter[T any](list []T, filter func(T) bool) []T {
	filtered := make([]T, 0)

	for _, element := range list {
		if filter(element) {
			filtered = append(filtered, element)
		}
	}

	return filtered
}

func ToDelimitedString[T any](list []T) string {
	strTypes := make([]string, len(list))

	for i, t := range list {
		strTypes[i] = fmt.Sprintf("%v", t)
	}

	return strings.Join(strTypes, ", ")
}

type Group[K comparable, T any] struct {
	Key   K
	Items []T
}

// GroupOrdered groups elements by key. Groups are returned in the order their key first appears
// in the list, and elements keep their relative order within a group.
func GroupOrdered[K comparable, T any](list []T, key func(T) K) []Group[K, T] {
	groups := make([]Group[K, T], 0)
	index := make(map[K]int)

	for _, element := range list {
		k := key(element)

		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[K, T]{Key: k})
		}

		groups[i].Items = append(groups[i].Items, element)
	}

	return groups
}
