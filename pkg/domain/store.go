package domain

import "sort"

// Store maps identifiers to objects of a single type and hands out
// ever-increasing identifiers for it.
//
// Lookups never fail loudly: a stale or foreign handle simply yields
// "not found". A Store is not safe for concurrent use; the whole project
// is guarded by one lock at a higher level.
type Store[T any] struct {
	objs map[Key]*T
	next Key
	// retired holds keys that were handed out and are not live now: removed
	// objects that undo may bring back, and reservations not yet filled.
	retired map[Key]struct{}
}

// NewStore creates an empty store whose first identifier is 1.
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		objs:    make(map[Key]*T),
		next:    1,
		retired: make(map[Key]struct{}),
	}
}

// Add inserts v under a freshly allocated identifier.
func (s *Store[T]) Add(v T) Box[T] {
	key := s.next
	s.next++
	obj := v
	s.objs[key] = &obj
	return Box[T]{ptr: Ptr[T]{key: key}}
}

// Insert places v under an explicit identifier, as needed when undoing a
// deletion or filling a reservation. It fails if key is null or live.
func (s *Store[T]) Insert(key Key, v T) (Box[T], bool) {
	if key == 0 {
		return Box[T]{}, false
	}
	if _, taken := s.objs[key]; taken {
		return Box[T]{}, false
	}
	delete(s.retired, key)
	obj := v
	s.objs[key] = &obj
	if key >= s.next {
		s.next = key + 1
	}
	return Box[T]{ptr: Ptr[T]{key: key}}, true
}

// Claim is Insert for identities coming from outside the store, such as
// keys read from a file. It also refuses retired keys, which may still be
// referenced by undo history.
func (s *Store[T]) Claim(key Key, v T) (Box[T], bool) {
	if _, retired := s.retired[key]; retired {
		return Box[T]{}, false
	}
	return s.Insert(key, v)
}

// Retired reports whether key was handed out and is not live.
func (s *Store[T]) Retired(key Key) bool {
	_, ok := s.retired[key]
	return ok
}

// Get returns a copy of the object for reading.
func (s *Store[T]) Get(p Ptr[T]) (T, bool) {
	obj, ok := s.objs[p.key]
	if !ok {
		var zero T
		return zero, false
	}
	return *obj, true
}

// GetMut returns the stored object for in-place mutation.
func (s *Store[T]) GetMut(p Ptr[T]) (*T, bool) {
	obj, ok := s.objs[p.key]
	return obj, ok
}

// Contains reports whether p refers to a live object.
func (s *Store[T]) Contains(p Ptr[T]) bool {
	_, ok := s.objs[p.key]
	return ok
}

// Remove deletes the object and returns its last value.
func (s *Store[T]) Remove(p Ptr[T]) (T, bool) {
	obj, ok := s.objs[p.key]
	if !ok {
		var zero T
		return zero, false
	}
	delete(s.objs, p.key)
	s.retired[p.key] = struct{}{}
	return *obj, true
}

// PeekNext returns the handle the next Add would allocate without
// allocating it.
func (s *Store[T]) PeekNext() Ptr[T] {
	return Ptr[T]{key: s.next}
}

// Reserve allocates an identifier without inserting anything. The caller
// is expected to Insert under it.
func (s *Store[T]) Reserve() Ptr[T] {
	key := s.next
	s.next++
	s.retired[key] = struct{}{}
	return Ptr[T]{key: key}
}

// Len returns the number of live objects.
func (s *Store[T]) Len() int {
	return len(s.objs)
}

// Keys returns the live identifiers in ascending order.
func (s *Store[T]) Keys() []Key {
	keys := make([]Key, 0, len(s.objs))
	for k := range s.objs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
