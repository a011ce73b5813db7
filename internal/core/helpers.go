package core

import "sort"

func containsString(values []string, id string) bool {
	for _, existing := range values {
		if existing == id {
			return true
		}
	}
	return false
}

// removeString drops every occurrence of id, reporting whether anything changed.
func removeString(values []string, id string) ([]string, bool) {
	if !containsString(values, id) {
		return values, false
	}
	out := make([]string, 0, len(values)-1)
	for _, v := range values {
		if v != id {
			out = append(out, v)
		}
	}
	return out, true
}

func appendUnique(values []string, id string) []string {
	if containsString(values, id) {
		return values
	}
	return append(values, id)
}

func insertStringAt(values []string, id string, index int) []string {
	if index < 0 {
		index = 0
	}
	if index > len(values) {
		index = len(values)
	}
	out := make([]string, 0, len(values)+1)
	out = append(out, values[:index]...)
	out = append(out, id)
	out = append(out, values[index:]...)
	return out
}

func sortedIDs(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func stringPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
