package chunked

import (
	"github.com/koficodedat/reduct/chunk"
)

// Editable is a single-owner mutable view over a list, used for batched
// edits. Chunks are copied on first write and edited in place afterwards
// ("copy-on-first-write"), so chunks still reachable from the source list
// are never touched. Editable is not safe for concurrent use.
type Editable[T any] struct {
	pool   *chunk.Pool[T]
	chunks []*chunk.Chunk[T]
	length int
	owned  map[*chunk.Chunk[T]]bool // chunks this view created and may edit
}

// Edit opens a mutable view over l. The list itself stays valid and
// unchanged regardless of what happens to the view.
func (l List[T]) Edit() *Editable[T] {
	return &Editable[T]{
		pool:   l.pool,
		chunks: cloneDirectory(l.chunks),
		length: l.length,
		owned:  make(map[*chunk.Chunk[T]]bool),
	}
}

// Len returns the current number of elements in the view.
func (e *Editable[T]) Len() int {
	return e.length
}

// Get returns the element at index i.
func (e *Editable[T]) Get(i int) T {
	assertThat(i >= 0 && i < e.length, "list index out of bounds: %d with length %d", i, e.length)
	ci, off := e.locate(i)
	return e.chunks[ci].At(off)
}

// Set overwrites index i with v.
func (e *Editable[T]) Set(i int, v T) {
	assertThat(i >= 0 && i < e.length, "list index out of bounds: %d with length %d", i, e.length)
	ci, off := e.locate(i)
	e.claim(ci).SetInPlace(off, v)
}

// Push appends v.
func (e *Editable[T]) Push(v T) {
	n := len(e.chunks)
	if n == 0 || e.chunks[n-1].Full() {
		c := e.pool.Get()
		e.owned[c] = true
		e.chunks = append(e.chunks, c)
		n++
	}
	e.claim(n - 1).AppendInPlace(v)
	e.length++
}

// Pop removes the last element.
func (e *Editable[T]) Pop() {
	assertThat(e.length > 0, "attempt to remove item from empty list")
	n := len(e.chunks)
	if e.chunks[n-1].Len() == 1 {
		if c := e.chunks[n-1]; e.owned[c] {
			delete(e.owned, c)
			e.pool.Put(c) // exclusively ours, recycle
		}
		e.chunks = e.chunks[:n-1]
	} else {
		edge := e.claim(n - 1)
		edge.Truncate(edge.Len() - 1)
	}
	e.length--
}

// Freeze publishes the view's current state as an immutable list. The view
// must not be used afterwards; callers enforce that (the sequence layer
// invalidates its transient context on commit).
func (e *Editable[T]) Freeze() List[T] {
	list := List[T]{pool: e.pool, chunks: e.chunks, length: e.length}
	e.chunks = nil
	e.owned = nil
	return list
}

// Release abandons the view, returning every chunk the view itself created
// to the pool. Shared chunks are left alone.
func (e *Editable[T]) Release() {
	for c := range e.owned {
		e.pool.Put(c)
	}
	tracer().Debugf("editable released %d owned chunks", len(e.owned))
	e.chunks = nil
	e.owned = nil
}

// claim returns the chunk at directory position ci, copying it first if the
// view does not own it yet.
func (e *Editable[T]) claim(ci int) *chunk.Chunk[T] {
	c := e.chunks[ci]
	if e.owned[c] {
		return c
	}
	cow := c.CloneInto(e.pool)
	e.owned[cow] = true
	e.chunks[ci] = cow
	return cow
}

func (e *Editable[T]) locate(i int) (ci int, off int) {
	off = i
	for ci = 0; ci < len(e.chunks); ci++ {
		n := e.chunks[ci].Len()
		if off < n {
			return ci, off
		}
		off -= n
	}
	panic("chunked: index not covered by chunk directory")
}
