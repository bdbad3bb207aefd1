package validator

import (
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// asSlice returns data as []any when it is a slice or an array.
func asSlice(data any) ([]any, bool) {
	if items, ok := data.([]any); ok {
		return items, true
	}

	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// asMap returns data as map[string]any when it is a map keyed by strings.
func asMap(data any) (map[string]any, bool) {
	if m, ok := data.(map[string]any); ok {
		return m, true
	}

	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Map {
		return nil, false
	}

	m := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key()
		if k.Kind() == reflect.Interface {
			k = k.Elem()
		}
		if k.Kind() != reflect.String {
			return nil, false
		}
		m[k.String()] = iter.Value().Interface()
	}
	return m, true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// firstDuplicate returns the index of the first item equal to an earlier one,
// or -1. Numbers compare by value regardless of their Go type. Items that
// cannot be used as map keys fall back to a pairwise deep comparison.
func firstDuplicate(items []any) int {
	seen := make(map[any]struct{}, len(items))
	for i, item := range items {
		key := uniqueKey(item)
		if !isHashable(key) {
			return pairwiseDuplicate(items)
		}
		if _, ok := seen[key]; ok {
			return i
		}
		seen[key] = struct{}{}
	}
	return -1
}

func pairwiseDuplicate(items []any) int {
	for i := 1; i < len(items); i++ {
		for j := range i {
			if reflect.DeepEqual(uniqueKey(items[i]), uniqueKey(items[j])) {
				return i
			}
		}
	}
	return -1
}

type numberKey float64

func uniqueKey(item any) any {
	if _, isBool := item.(bool); !isBool {
		if f, ok := toFloat(item); ok {
			return numberKey(f)
		}
	}
	return item
}

func isHashable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.TypeOf(v).Comparable() && !containsUncomparable(reflect.ValueOf(v))
}

// containsUncomparable catches interface fields holding slices or maps, which
// pass the static Comparable check but panic when hashed.
func containsUncomparable(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return !rv.Elem().Type().Comparable() || containsUncomparable(rv.Elem())
	case reflect.Struct:
		for i := range rv.NumField() {
			if containsUncomparable(rv.Field(i)) {
				return true
			}
		}
	case reflect.Array:
		for i := range rv.Len() {
			if containsUncomparable(rv.Index(i)) {
				return true
			}
		}
	}
	return false
}

func joinKeys(keys []string) string {
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = strconv.Quote(k)
	}
	return strings.Join(quoted, ", ")
}
