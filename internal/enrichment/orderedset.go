// Package enrichment provides pure text transforms applied to extracted document text:
// contact-information discovery and reconciliation of embedded hyperlinks.
package enrichment

// OrderedSet is a set that remembers insertion order.
// Iteration via Values is deterministic, which keeps rendered output reproducible.
type OrderedSet[T comparable] struct {
	index  map[T]struct{}
	values []T
}

// NewOrderedSet creates an empty OrderedSet
func NewOrderedSet[T comparable]() *OrderedSet[T] {
	return &OrderedSet[T]{index: make(map[T]struct{})}
}

// Add inserts v if it is not already present and reports whether it was added
func (s *OrderedSet[T]) Add(v T) bool {
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = struct{}{}
	s.values = append(s.values, v)
	return true
}

// Contains reports whether v is in the set
func (s *OrderedSet[T]) Contains(v T) bool {
	_, ok := s.index[v]
	return ok
}

// Len returns the number of elements
func (s *OrderedSet[T]) Len() int {
	return len(s.values)
}

// Values returns the elements in first-seen order.
// The returned slice is a copy.
func (s *OrderedSet[T]) Values() []T {
	out := make([]T, len(s.values))
	copy(out, s.values)
	return out
}
