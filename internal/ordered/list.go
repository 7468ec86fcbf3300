// Package ordered implements immutable insertion-ordered lists and the move operation behind drag-and-drop.
//
// A [List] never changes after construction. [Move] returns replacement lists, so anything holding
// the old pointers keeps seeing the old snapshot. Two arguments denote the same list only when they
// are the same pointer; equal contents in distinct lists are distinct lists.
package ordered

import "slices"

// Keyed is implemented by items with a stable identity.
type Keyed interface {
	Key() string
}

// List is an immutable, insertion-ordered sequence of keyed items.
type List[T Keyed] struct {
	items []T
}

// New returns a list holding a copy of items.
func New[T Keyed](items ...T) *List[T] {
	return &List[T]{items: append([]T(nil), items...)}
}

// Len returns the number of items. A nil list is empty.
func (l *List[T]) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// At returns the item at index i and whether i is in range.
func (l *List[T]) At(i int) (T, bool) {
	var zero T
	if i < 0 || i >= l.Len() {
		return zero, false
	}
	return l.items[i], true
}

// Items returns a copy of the items in order.
func (l *List[T]) Items() []T {
	if l == nil {
		return nil
	}
	return append([]T(nil), l.items...)
}

// Keys returns the item keys in order.
func (l *List[T]) Keys() []string {
	keys := make([]string, 0, l.Len())
	for i := 0; i < l.Len(); i++ {
		keys = append(keys, l.items[i].Key())
	}
	return keys
}

// IndexOf returns the position of the item with key, or -1.
func (l *List[T]) IndexOf(key string) int {
	for i := 0; i < l.Len(); i++ {
		if l.items[i].Key() == key {
			return i
		}
	}
	return -1
}

// Move takes the item at from out of src and inserts it at to in dst.
//
// When src and dst are the same list the removal happens first and to is read against the
// shortened list, clamped to its end, so moving the first of [A B] to 2 yields [B A]; both
// results are then the same new list. A nil dst (cancelled drop), an out-of-range from, a to
// outside 0..dst.Len(), or an in-place drop (same list, from == to) return the inputs unchanged.
func Move[T Keyed](src, dst *List[T], from, to int) (*List[T], *List[T]) {
	if src == nil || dst == nil {
		return src, dst
	}
	if from < 0 || from >= src.Len() || to < 0 || to > dst.Len() {
		return src, dst
	}

	if src == dst {
		if from == to {
			return src, dst
		}
		items := make([]T, 0, src.Len())
		items = append(items, src.items[:from]...)
		items = append(items, src.items[from+1:]...)
		items = slices.Insert(items, min(to, len(items)), src.items[from])
		next := &List[T]{items: items}
		return next, next
	}

	moved := src.items[from]

	rest := make([]T, 0, src.Len()-1)
	rest = append(rest, src.items[:from]...)
	rest = append(rest, src.items[from+1:]...)

	grown := make([]T, 0, dst.Len()+1)
	grown = append(grown, dst.items...)
	grown = slices.Insert(grown, to, moved)

	return &List[T]{items: rest}, &List[T]{items: grown}
}
