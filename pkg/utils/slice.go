package utils

import (
	"sort"
	"strings"
)

// map each element in sli.
//
// args:
//   - sli : slice of `T`s
//   - mapper : mapping function from T to R
//
// return:
//
//	slice of `R`s.
//	each element indexed `N` is given with `mapper(sli[N])` .
func Map[T any, R any](sli []T, mapper func(v T) R) []R {
	ret := make([]R, len(sli))
	for nth, v := range sli {
		ret[nth] = mapper(v)
	}
	return ret
}

// MapIndexed is Map with the index of each element.
func MapIndexed[T any, R any](sli []T, mapper func(i int, v T) R) []R {
	ret := make([]R, len(sli))
	for nth, v := range sli {
		ret[nth] = mapper(nth, v)
	}
	return ret
}

// filter elements match with predicator
//
// args:
//
// - vs: slice
//
// - predicator: function returns true for each element to be remain in result
//
// returns:
//
// - []T: elements in vs which predicator evaluates as true.
func Filter[T any](vs []T, predicator func(T) bool) []T {
	ret := []T{}
	for _, v := range vs {
		if predicator(v) {
			ret = append(ret, v)
		}
	}
	return ret
}

// find first element match with predicator.
//
// retruns (T, true) if found. otherwise, (zero value of T, false)
func First[T any](sli []T, predicator func(T) bool) (T, bool) {
	for _, v := range sli {
		if predicator(v) {
			return v, true
		}
	}

	var zero T
	return zero, false
}

// Count elements match with predicator.
func Count[T any](sli []T, predicator func(T) bool) int {
	n := 0
	for _, v := range sli {
		if predicator(v) {
			n += 1
		}
	}
	return n
}

// Uniq returns elements of sli without duplicates, keeping the first occurrence order.
func Uniq[T comparable](sli []T) []T {
	seen := map[T]struct{}{}
	ret := make([]T, 0, len(sli))
	for _, v := range sli {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		ret = append(ret, v)
	}
	return ret
}

// flatten map to slice of keys
func KeysOf[T any, K comparable](m map[K]T) []K {
	sli := make([]K, 0, len(m))
	for k := range m {
		sli = append(sli, k)
	}
	return sli
}

// SortedCaseInsensitive returns a sorted copy of strs, ignoring letter case.
//
// Strings equal except for case are ordered by their raw value, so the result is stable
// against map iteration order.
func SortedCaseInsensitive(strs []string) []string {
	sorted := make([]string, len(strs))
	copy(sorted, strs)

	sort.Slice(sorted, func(i, j int) bool {
		a, b := strings.ToLower(sorted[i]), strings.ToLower(sorted[j])
		if a != b {
			return a < b
		}
		return sorted[i] < sorted[j]
	})
	return sorted
}
