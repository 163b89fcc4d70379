package ecs

import "sort"

// Entity is an opaque identifier with no data of its own. Zero is never issued.
type Entity uint64

func (e Entity) IsZero() bool { return e == 0 }

// EntityManager issues unique, monotonically increasing entity ids and tracks
// the live set. Ids are never reused; the first id is 1.
type EntityManager struct {
	live map[Entity]struct{}
	next Entity
}

func NewEntityManager() *EntityManager {
	return &EntityManager{
		live: make(map[Entity]struct{}, 64),
		next: 1,
	}
}

// Create allocates the next id and marks it live.
func (m *EntityManager) Create() Entity {
	id := m.next
	m.live[id] = struct{}{}
	m.next++
	return id
}

func (m *EntityManager) Alive(e Entity) bool {
	_, ok := m.live[e]
	return ok
}

// Count returns the number of live entities.
func (m *EntityManager) Count() int {
	return len(m.live)
}

// Entities returns the live set in ascending id order.
func (m *EntityManager) Entities() []Entity {
	out := make([]Entity, 0, len(m.live))
	for e := range m.live {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (m *EntityManager) Clone() *EntityManager {
	live := make(map[Entity]struct{}, len(m.live))
	for e := range m.live {
		live[e] = struct{}{}
	}
	return &EntityManager{live: live, next: m.next}
}
