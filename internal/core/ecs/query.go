package ecs

// Each2 visits entities that own both an A and a B. It walks the smaller store
// in dense order and probes the other, so the visit order is deterministic.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(Entity, *A, *B)) {
	if sa.Len() <= sb.Len() {
		for i := range sa.dense {
			id := sa.owners[i]
			if j, ok := sb.index[id]; ok {
				fn(id, &sa.dense[i], &sb.dense[j])
			}
		}
		return
	}
	for j := range sb.dense {
		id := sb.owners[j]
		if i, ok := sa.index[id]; ok {
			fn(id, &sa.dense[i], &sb.dense[j])
		}
	}
}
