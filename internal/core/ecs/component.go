package ecs

import "fmt"

// Store is a sparse-set component store: components and their owners are packed
// in two parallel dense slices, and index maps an owner to its dense slot.
// An entity owns at most one component per store.
//
// Pointers returned by Create and Get are valid until the next Create or Remove
// on the same store.
type Store[T any] struct {
	dense  []T
	owners []Entity
	index  map[Entity]int
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		dense:  make([]T, 0, 64),
		owners: make([]Entity, 0, 64),
		index:  make(map[Entity]int, 64),
	}
}

func (s *Store[T]) Contains(e Entity) bool {
	_, ok := s.index[e]
	return ok
}

// Create appends a zero-valued component owned by e and returns it for
// initialisation. Creating a second component for the same owner is a
// programming error and panics.
func (s *Store[T]) Create(e Entity) *T {
	if _, ok := s.index[e]; ok {
		panic(fmt.Sprintf("ecs: entity %d already owns a %T", e, *new(T)))
	}
	var zero T
	s.dense = append(s.dense, zero)
	s.owners = append(s.owners, e)
	s.index[e] = len(s.dense) - 1
	return &s.dense[len(s.dense)-1]
}

func (s *Store[T]) Get(e Entity) (*T, bool) {
	i, ok := s.index[e]
	if !ok {
		return nil, false
	}
	return &s.dense[i], true
}

// Remove deletes e's component by moving the last slot into the vacated one.
// The relocated owner's index entry is rewritten to its new slot.
func (s *Store[T]) Remove(e Entity) {
	i, ok := s.index[e]
	if !ok {
		return
	}
	last := len(s.dense) - 1
	if i != last {
		moved := s.owners[last]
		s.dense[i] = s.dense[last]
		s.owners[i] = moved
		s.index[moved] = i
	}
	var zero T
	s.dense[last] = zero
	s.dense = s.dense[:last]
	s.owners = s.owners[:last]
	delete(s.index, e)
}

func (s *Store[T]) Len() int {
	return len(s.dense)
}

// Each visits every (owner, component) pair in dense order.
func (s *Store[T]) Each(fn func(Entity, *T)) {
	for i := range s.dense {
		fn(s.owners[i], &s.dense[i])
	}
}

// Owners returns a copy of the owner list in dense order.
func (s *Store[T]) Owners() []Entity {
	out := make([]Entity, len(s.owners))
	copy(out, s.owners)
	return out
}

// Clone copies the store. Component values are copied by assignment; use
// CloneWith when T holds references that must not be shared.
func (s *Store[T]) Clone() *Store[T] {
	return s.CloneWith(nil)
}

func (s *Store[T]) CloneWith(copyFn func(T) T) *Store[T] {
	c := &Store[T]{
		dense:  make([]T, len(s.dense), cap(s.dense)),
		owners: make([]Entity, len(s.owners), cap(s.owners)),
		index:  make(map[Entity]int, len(s.index)),
	}
	if copyFn == nil {
		copy(c.dense, s.dense)
	} else {
		for i, v := range s.dense {
			c.dense[i] = copyFn(v)
		}
	}
	copy(c.owners, s.owners)
	for e, i := range s.index {
		c.index[e] = i
	}
	return c
}
