package random

// Weighted selects items proportionally to their integer weights using a
// cumulative-weight table.
type Weighted[T any] struct {
	items      []T
	cumulative []int
	total      int
}

// WeightedItem pairs an item with its selection weight.
type WeightedItem[T any] struct {
	Item   T
	Weight int
}

// NewWeighted builds a chooser from items and their weights. Items with a
// non-positive weight are never selected.
func NewWeighted[T any](items []WeightedItem[T]) *Weighted[T] {
	w := &Weighted[T]{}
	for _, it := range items {
		if it.Weight <= 0 {
			continue
		}
		w.total += it.Weight
		w.items = append(w.items, it.Item)
		w.cumulative = append(w.cumulative, w.total)
	}
	return w
}

// Total returns the sum of all weights.
func (w *Weighted[T]) Total() int { return w.total }

// Choice draws one item using randomness from pool. Calling Choice on an
// empty chooser returns the zero value.
func (w *Weighted[T]) Choice(pool *Pool) T {
	var zero T
	if len(w.items) == 0 || w.total == 0 {
		return zero
	}

	r := pool.IntRange(0, w.total-1)
	for i, cum := range w.cumulative {
		if r < cum {
			return w.items[i]
		}
	}
	return w.items[len(w.items)-1]
}
