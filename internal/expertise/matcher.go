// Package expertise matches normalized profile text against named subject
// catalogs.
//
// Matching is a case-insensitive contiguous substring test: a multi-word
// subject matches only when its exact phrase occurs in the text. There is no
// tokenization, word-boundary check, fuzzy matching or scoring.
package expertise

import "strings"

// Match returns the subjects of c whose lowercase form occurs in the
// lowercase form of text, in catalog order. It returns nil when nothing
// matches.
func Match(text string, c Catalog) []string {
	haystack := strings.ToLower(text)
	var matched []string
	for _, subject := range c.Subjects {
		if strings.Contains(haystack, strings.ToLower(subject)) {
			matched = append(matched, subject)
		}
	}
	return matched
}

// Set is a deduplicated collection of subjects that remembers insertion
// order. The zero value is not usable; call NewSet.
type Set struct {
	index map[string]struct{}
	items []string
}

// NewSet returns a set holding subjects.
func NewSet(subjects ...string) *Set {
	s := &Set{index: map[string]struct{}{}}
	s.Add(subjects...)
	return s
}

// Add inserts subjects not already present. Equality is exact string equality.
func (s *Set) Add(subjects ...string) {
	for _, subject := range subjects {
		if _, ok := s.index[subject]; ok {
			continue
		}
		s.index[subject] = struct{}{}
		s.items = append(s.items, subject)
	}
}

// Union adds every member of other to s.
func (s *Set) Union(other *Set) {
	if other != nil {
		s.Add(other.items...)
	}
}

// Contains reports whether subject is a member.
func (s *Set) Contains(subject string) bool {
	_, ok := s.index[subject]
	return ok
}

// Len returns the number of members.
func (s *Set) Len() int { return len(s.items) }

// Items returns a copy of the members in insertion order.
func (s *Set) Items() []string {
	return append([]string(nil), s.items...)
}
