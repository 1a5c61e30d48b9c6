package chunk

import "fmt"

// Chunk is a fixed-capacity contiguous block of elements. A chunk is owned
// by exactly one sequence node at a time; shared chunks are never edited in
// place but replaced by a clone (copy-on-write at chunk granularity).
type Chunk[T any] struct {
	elems []T
}

// New allocates a chunk with the given capacity, bypassing any pool.
func New[T any](capacity int) *Chunk[T] {
	assertThat(capacity > 0, "chunk capacity must be positive, is %d", capacity)
	return &Chunk[T]{elems: make([]T, 0, capacity)}
}

// Len returns the number of elements currently stored.
func (c *Chunk[T]) Len() int {
	return len(c.elems)
}

// Cap returns the fixed capacity of the chunk.
func (c *Chunk[T]) Cap() int {
	return cap(c.elems)
}

// Full is true if no further element fits.
func (c *Chunk[T]) Full() bool {
	return len(c.elems) == cap(c.elems)
}

// At returns the element at position i. i must be within [0, Len).
func (c *Chunk[T]) At(i int) T {
	assertThat(i >= 0 && i < len(c.elems), "chunk index out of bounds: %d with length %d", i, len(c.elems))
	return c.elems[i]
}

// SetInPlace overwrites position i. Only legal for unshared chunks; shared
// chunks must go through WithSet.
func (c *Chunk[T]) SetInPlace(i int, v T) {
	assertThat(i >= 0 && i < len(c.elems), "chunk index out of bounds: %d with length %d", i, len(c.elems))
	c.elems[i] = v
}

// AppendInPlace appends v. The chunk must not be full.
func (c *Chunk[T]) AppendInPlace(v T) {
	assertThat(!c.Full(), "attempt to append to a full chunk")
	c.elems = append(c.elems, v)
}

// Truncate drops elements from the end until the chunk has length n.
func (c *Chunk[T]) Truncate(n int) {
	assertThat(n >= 0 && n <= len(c.elems), "truncation length out of bounds: %d with length %d", n, len(c.elems))
	c.elems = c.elems[:n]
}

// WithSet returns a copy of the chunk with position i replaced by v,
// leaving the receiver untouched. The copy is drawn from pool.
func (c *Chunk[T]) WithSet(i int, v T, pool *Pool[T]) *Chunk[T] {
	cow := c.CloneInto(pool)
	cow.SetInPlace(i, v)
	return cow
}

// CloneInto copies the chunk into a block acquired from pool.
func (c *Chunk[T]) CloneInto(pool *Pool[T]) *Chunk[T] {
	clone := pool.Get()
	clone.elems = clone.elems[:len(c.elems)]
	copy(clone.elems, c.elems)
	return clone
}

// Each calls f for every element in order until f returns false.
func (c *Chunk[T]) Each(f func(i int, v T) bool) bool {
	for i, v := range c.elems {
		if !f(i, v) {
			return false
		}
	}
	return true
}

func (c *Chunk[T]) reset() {
	var zero T
	for i := range c.elems {
		c.elems[i] = zero // do not retain references into recycled blocks
	}
	c.elems = c.elems[:0]
}

func (c *Chunk[T]) String() string {
	return fmt.Sprintf("chunk(%d/%d)", len(c.elems), cap(c.elems))
}

// --- Helpers ---------------------------------------------------------------

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("chunk: "+msg, msgargs...)
		panic(msg)
	}
}
