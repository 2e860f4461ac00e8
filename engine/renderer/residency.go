package renderer

// residency tracks GPU resources keyed by image ID and evicts the ones not used for a while.
type residency[T any] struct {
	entries map[uint64]*residentEntry[T]
	maxIdle uint64
}

type residentEntry[T any] struct {
	value    T
	lastUsed uint64
}

func newResidency[T any](maxIdle uint64) *residency[T] {
	return &residency[T]{
		entries: make(map[uint64]*residentEntry[T]),
		maxIdle: maxIdle,
	}
}

// get returns the resource for id and marks it used at tick.
func (r *residency[T]) get(id, tick uint64) (T, bool) {
	e, ok := r.entries[id]
	if !ok {
		var zero T
		return zero, false
	}
	e.lastUsed = tick
	return e.value, true
}

func (r *residency[T]) put(id, tick uint64, value T) {
	r.entries[id] = &residentEntry[T]{value: value, lastUsed: tick}
}

// evict removes and returns every resource idle for more than maxIdle ticks.
func (r *residency[T]) evict(tick uint64) []T {
	var out []T
	for id, e := range r.entries {
		if tick > e.lastUsed && tick-e.lastUsed > r.maxIdle {
			out = append(out, e.value)
			delete(r.entries, id)
		}
	}
	return out
}

// drain removes and returns every resource.
func (r *residency[T]) drain() []T {
	out := make([]T, 0, len(r.entries))
	for id, e := range r.entries {
		out = append(out, e.value)
		delete(r.entries, id)
	}
	return out
}

func (r *residency[T]) len() int {
	return len(r.entries)
}
