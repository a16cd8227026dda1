package rain

// Arena stores a group of entities. Removal during a tick only marks a slot;
// Compact drops marked slots once the tick's iteration is over, so indices
// stay valid while collisions and updates walk the group.
type Arena[T any] struct {
	items []T
	dead  []bool
	live  int
}

// Add appends a live entity.
func (a *Arena[T]) Add(v T) {
	a.items = append(a.items, v)
	a.dead = append(a.dead, false)
	a.live++
}

// Len returns the number of slots, including ones marked for removal.
func (a *Arena[T]) Len() int {
	return len(a.items)
}

// Live returns the number of entities not marked for removal.
func (a *Arena[T]) Live() int {
	return a.live
}

// At returns a pointer to the entity in slot i.
func (a *Arena[T]) At(i int) *T {
	return &a.items[i]
}

// Alive reports whether slot i has not been marked.
func (a *Arena[T]) Alive(i int) bool {
	return !a.dead[i]
}

// Mark flags slot i for removal at the next Compact. Marking twice is a no-op.
func (a *Arena[T]) Mark(i int) {
	if a.dead[i] {
		return
	}
	a.dead[i] = true
	a.live--
}

// Compact removes marked slots, preserving the order of the rest.
// Returns the number of removed entities.
func (a *Arena[T]) Compact() int {
	n := 0
	for i := range a.items {
		if a.dead[i] {
			continue
		}
		a.items[n] = a.items[i]
		a.dead[n] = false
		n++
	}
	removed := len(a.items) - n
	clear(a.items[n:])
	a.items = a.items[:n]
	a.dead = a.dead[:n]
	return removed
}

// Clear drops every entity immediately.
func (a *Arena[T]) Clear() {
	clear(a.items)
	a.items = a.items[:0]
	a.dead = a.dead[:0]
	a.live = 0
}

// Each calls fn for every live entity.
func (a *Arena[T]) Each(fn func(i int, v *T)) {
	for i := range a.items {
		if !a.dead[i] {
			fn(i, &a.items[i])
		}
	}
}
