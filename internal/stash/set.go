// Package stash holds the device side of the system: the local owned-set
// store, the cloud inventory adapter and the reconciliation policy that
// combines both at authentication boundaries.
package stash

import "sort"

// A Set is an owned-set: the identifiers the operator has on hand.
type Set map[string]struct{}

// NewSet returns a Set containing the given codes.
func NewSet(codes ...string) Set {
	s := make(Set, len(codes))
	for _, code := range codes {
		s[code] = struct{}{}
	}
	return s
}

// Has reports whether code belongs to the set.
func (s Set) Has(code string) bool {
	_, ok := s[code]
	return ok
}

// Add inserts code into the set.
func (s Set) Add(code string) {
	s[code] = struct{}{}
}

// Remove deletes code from the set.
func (s Set) Remove(code string) {
	delete(s, code)
}

// Union returns a new set holding every code of s and other.
func (s Set) Union(other Set) Set {
	u := make(Set, len(s)+len(other))
	for code := range s {
		u[code] = struct{}{}
	}
	for code := range other {
		u[code] = struct{}{}
	}
	return u
}

// Codes returns the sorted codes of the set. Order carries no meaning, it
// only keeps serialization deterministic.
func (s Set) Codes() []string {
	codes := make([]string, 0, len(s))
	for code := range s {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
