package catalog

import "strings"

// FuzzyMatch reports whether every whitespace-separated term of query matches
// target, case-insensitively, either as a substring or as a subsequence of
// runes. An empty query matches everything.
func FuzzyMatch(target, query string) bool {
	t := strings.ToLower(target)
	for _, term := range strings.Fields(strings.ToLower(query)) {
		if !strings.Contains(t, term) && !subsequence(t, term) {
			return false
		}
	}
	return true
}

func subsequence(s, sub string) bool {
	want := []rune(sub)
	for _, r := range s {
		if r == want[0] {
			want = want[1:]
			if len(want) == 0 {
				return true
			}
		}
	}
	return false
}
