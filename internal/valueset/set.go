// Package valueset provides a set keyed by value rather than identity.
//
// Go maps cannot key on slices or on types with custom equality, so Set
// buckets elements by their Hash and resolves collisions with Equal. This
// mirrors the native Hashable set of a foreign runtime: correctness requires
// only that a.Equal(b) implies a.Hash() == b.Hash().
//
// A Set is not safe for concurrent mutation.
package valueset

import "iter"

// Hashable is implemented by types with value equality and a consistent hash.
type Hashable[T any] interface {
	Equal(other T) bool
	Hash() uint64
}

// Set holds at most one element per equivalence class.
type Set[T Hashable[T]] struct {
	buckets map[uint64][]T
	n       int
}

// New returns a set containing items, dropping duplicates.
func New[T Hashable[T]](items ...T) *Set[T] {
	s := &Set[T]{buckets: make(map[uint64][]T, len(items))}
	for _, v := range items {
		s.Insert(v)
	}
	return s
}

// Insert adds v and reports whether it was not already present.
func (s *Set[T]) Insert(v T) bool {
	if s.buckets == nil {
		s.buckets = make(map[uint64][]T)
	}
	h := v.Hash()
	for _, existing := range s.buckets[h] {
		if existing.Equal(v) {
			return false
		}
	}
	s.buckets[h] = append(s.buckets[h], v)
	s.n++
	return true
}

// Contains reports whether an element equal to v is present.
func (s *Set[T]) Contains(v T) bool {
	for _, existing := range s.buckets[v.Hash()] {
		if existing.Equal(v) {
			return true
		}
	}
	return false
}

// Remove deletes the element equal to v and reports whether one was present.
func (s *Set[T]) Remove(v T) bool {
	h := v.Hash()
	bucket := s.buckets[h]
	for i, existing := range bucket {
		if !existing.Equal(v) {
			continue
		}
		bucket = append(bucket[:i], bucket[i+1:]...)
		if len(bucket) == 0 {
			delete(s.buckets, h)
		} else {
			s.buckets[h] = bucket
		}
		s.n--
		return true
	}
	return false
}

// Len returns the number of distinct elements.
func (s *Set[T]) Len() int {
	return s.n
}

// All iterates over the elements in no particular order.
func (s *Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, bucket := range s.buckets {
			for _, v := range bucket {
				if !yield(v) {
					return
				}
			}
		}
	}
}
