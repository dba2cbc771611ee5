package models

import "sort"

// NotifiedSet holds the identifiers of deals that have already been pushed
// to the notification channel. It only grows during a run.
type NotifiedSet map[string]struct{}

// NewNotifiedSet builds a set from the given identifiers.
func NewNotifiedSet(ids ...string) NotifiedSet {
	s := make(NotifiedSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether id has already been notified.
func (s NotifiedSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Add marks id as notified.
func (s NotifiedSet) Add(id string) {
	s[id] = struct{}{}
}

// Len returns the number of notified identifiers.
func (s NotifiedSet) Len() int {
	return len(s)
}

// IDs returns the identifiers in sorted order so the persisted form is
// stable across runs.
func (s NotifiedSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
