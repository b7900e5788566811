package store

import "strings"

// Normalize returns the comparison form of a list name: trimmed and lowercased.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Resolve maps user input to the canonical name of a stored list.
// Comparison is case-insensitive and ignores surrounding whitespace.
func (s *Store) Resolve(input string) (string, bool) {
	want := Normalize(input)
	for pair := s.lists.Oldest(); pair != nil; pair = pair.Next() {
		if Normalize(pair.Key) == want {
			return pair.Key, true
		}
	}
	return "", false
}
