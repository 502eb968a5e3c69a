package models

// DeduplicateBy collapses records to one per key, keeping the values of the
// last occurrence at the position the key was first seen. Empty input yields
// empty output.
func DeduplicateBy[T any](records []T, key func(T) string) []T {
	out := make([]T, 0, len(records))
	index := make(map[string]int, len(records))

	for _, record := range records {
		k := key(record)
		if i, seen := index[k]; seen {
			out[i] = record
			continue
		}
		index[k] = len(out)
		out = append(out, record)
	}
	return out
}
