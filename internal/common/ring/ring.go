// Package ring provides a fixed-capacity buffer that keeps the most recent
// items and evicts the oldest on overflow.
package ring

// Buffer holds at most Cap() items. The zero value is not usable; call New.
// Buffer is not safe for concurrent use.
type Buffer[T any] struct {
	items []T
	start int
	size  int
}

// New creates a buffer with the given capacity. A capacity below 1 is
// treated as 1.
func New[T any](capacity int) *Buffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer[T]{items: make([]T, capacity)}
}

// Push appends v, evicting the oldest item when the buffer is full.
// It reports whether an item was evicted.
func (b *Buffer[T]) Push(v T) bool {
	capacity := len(b.items)
	if b.size < capacity {
		b.items[(b.start+b.size)%capacity] = v
		b.size++
		return false
	}

	// full: overwrite the oldest slot and advance the start
	b.items[b.start] = v
	b.start = (b.start + 1) % capacity
	return true
}

// Len returns the number of items held.
func (b *Buffer[T]) Len() int {
	return b.size
}

// Cap returns the capacity.
func (b *Buffer[T]) Cap() int {
	return len(b.items)
}

// Items returns the held items oldest first.
func (b *Buffer[T]) Items() []T {
	out := make([]T, b.size)
	for i := 0; i < b.size; i++ {
		out[i] = b.items[(b.start+i)%len(b.items)]
	}
	return out
}

// Newest returns the held items newest first, which is the order the roll
// panels display them in.
func (b *Buffer[T]) Newest() []T {
	out := make([]T, b.size)
	for i := 0; i < b.size; i++ {
		out[i] = b.items[(b.start+b.size-1-i)%len(b.items)]
	}
	return out
}

// Clear drops every item.
func (b *Buffer[T]) Clear() {
	var zero T
	for i := range b.items {
		b.items[i] = zero
	}
	b.start = 0
	b.size = 0
}
