package model

import "strings"

// PublicReadEntry is the wildcard ACL entry granting anonymous read.
const PublicReadEntry = ".r:*"

// ACLSet is an ordered, deduplicated set of container ACL entries. The
// storage service stores each grant kind as an opaque comma- or
// space-delimited header string and will happily keep exact duplicates, so
// the set is always deduplicated here before it goes back over the wire.
type ACLSet struct {
	entries []string
}

// ParseACL builds a set from a raw grant header. Duplicates collapse to the
// first occurrence, order is otherwise preserved.
func ParseACL(header string) *ACLSet {
	s := &ACLSet{}
	parts := strings.FieldsFunc(header, func(r rune) bool {
		return r == ',' || r == ' '
	})
	for _, part := range parts {
		s.Add(part)
	}
	return s
}

func (s *ACLSet) Contains(entry string) bool {
	for _, e := range s.entries {
		if e == entry {
			return true
		}
	}
	return false
}

// Add appends entry unless it is empty or already present.
func (s *ACLSet) Add(entry string) {
	if entry == "" || s.Contains(entry) {
		return
	}
	s.entries = append(s.entries, entry)
}

// Remove drops every exact match of entry.
func (s *ACLSet) Remove(entry string) {
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e != entry {
			kept = append(kept, e)
		}
	}
	s.entries = kept
}

func (s *ACLSet) Len() int {
	return len(s.entries)
}

func (s *ACLSet) Entries() []string {
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

// String serializes the set for transmission: comma-joined, no trailing
// delimiter. An empty set serializes to "" which clears the header.
func (s *ACLSet) String() string {
	return strings.Join(s.entries, ",")
}
