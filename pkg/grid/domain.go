package grid

import "slices"

// Entity is an element of a grid axis.
type Entity interface {
	Key() string
	Label() string
	Field(name string) (any, bool)
	Total() int
	Rank() float64
}

// Domain is the ordered sequence of one grid axis. Position in the domain is
// the only source of an entity's row or column index.
type Domain[T Entity] struct {
	items []T
}

// NewDomain returns a domain over items. The slice is owned by the domain.
func NewDomain[T Entity](items []T) *Domain[T] {
	return &Domain[T]{items: items}
}

// Len returns the number of entities.
func (d *Domain[T]) Len() int { return len(d.items) }

// At returns the entity at index i.
func (d *Domain[T]) At(i int) (T, bool) {
	if i < 0 || i >= len(d.items) {
		var zero T
		return zero, false
	}
	return d.items[i], true
}

// IndexOf returns the position of the entity with id, or -1.
func (d *Domain[T]) IndexOf(id string) int {
	return slices.IndexFunc(d.items, func(t T) bool { return t.Key() == id })
}

// Snapshot returns a copy of the ordering.
func (d *Domain[T]) Snapshot() []T { return slices.Clone(d.items) }

// SortByScore sorts by descending score with ascending id tie-break.
func (d *Domain[T]) SortByScore() {
	slices.SortStableFunc(d.items, CompareScore[T])
}

// SortBy stably sorts with a caller comparator.
func (d *Domain[T]) SortBy(cmp func(a, b T) int) {
	slices.SortStableFunc(d.items, cmp)
}

// RemoveWhere removes entities matching pred and returns them in their
// former order.
func (d *Domain[T]) RemoveWhere(pred func(T) bool) []T {
	var removed []T
	d.items = slices.DeleteFunc(d.items, func(t T) bool {
		if pred(t) {
			removed = append(removed, t)
			return true
		}
		return false
	})
	return removed
}

// SliceRange keeps exactly the entities whose index lies in [start, stop]
// and returns the rest.
func (d *Domain[T]) SliceRange(start, stop int) []T {
	var kept, removed []T
	for i, t := range d.items {
		if i < start || i > stop {
			removed = append(removed, t)
		} else {
			kept = append(kept, t)
		}
	}
	d.items = kept
	return removed
}

// ReorderSingle moves the entity at from to index to, clamped to the domain.
// Relative order of all other entities is preserved.
func (d *Domain[T]) ReorderSingle(from, to int) bool {
	if from < 0 || from >= len(d.items) {
		return false
	}
	t := d.items[from]
	d.items = slices.Delete(d.items, from, from+1)
	to = min(max(to, 0), len(d.items))
	d.items = slices.Insert(d.items, to, t)
	return true
}

// RemoveAt removes the entity at i.
func (d *Domain[T]) RemoveAt(i int) (T, bool) {
	t, ok := d.At(i)
	if ok {
		d.items = slices.Delete(d.items, i, i+1)
	}
	return t, ok
}

// IDs returns the entity ids in order.
func (d *Domain[T]) IDs() []string {
	out := make([]string, len(d.items))
	for i, t := range d.items {
		out[i] = t.Key()
	}
	return out
}
