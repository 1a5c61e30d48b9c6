package chunked

import (
	"fmt"

	"github.com/koficodedat/reduct/chunk"
)

// List is an immutable chunked sequence. The zero value is not usable;
// construct lists with Empty, FromSlice or Build so they are bound to a pool.
type List[T any] struct {
	pool   *chunk.Pool[T]
	chunks []*chunk.Chunk[T]
	length int
}

// Empty returns an empty list drawing its storage from pool.
func Empty[T any](pool *chunk.Pool[T]) List[T] {
	assertThat(pool != nil, "list requires a chunk pool")
	return List[T]{pool: pool}
}

// FromSlice builds a list holding the elements of xs.
func FromSlice[T any](pool *chunk.Pool[T], xs []T) List[T] {
	i := 0
	return Build(pool, len(xs), func() T {
		v := xs[i]
		i++
		return v
	})
}

// Build constructs a list of n elements produced by successive calls to next.
func Build[T any](pool *chunk.Pool[T], n int, next func() T) List[T] {
	assertThat(pool != nil, "list requires a chunk pool")
	list := List[T]{pool: pool, length: n}
	for remaining := n; remaining > 0; {
		c := pool.Get()
		for !c.Full() && remaining > 0 {
			c.AppendInPlace(next())
			remaining--
		}
		list.chunks = append(list.chunks, c)
	}
	return list
}

// Len returns the number of elements in the list.
func (l List[T]) Len() int {
	return l.length
}

// Pool returns the pool the list draws chunks from.
func (l List[T]) Pool() *chunk.Pool[T] {
	return l.pool
}

// locate finds the chunk holding index i and the offset within it.
func (l List[T]) locate(i int) (ci int, off int) {
	off = i
	for ci = 0; ci < len(l.chunks); ci++ {
		n := l.chunks[ci].Len()
		if off < n {
			return ci, off
		}
		off -= n
	}
	panic(fmt.Sprintf("chunked: index %d not covered by chunk directory (length %d)", i, l.length))
}

// Get returns the element at index i. i must be within [0, Len).
func (l List[T]) Get(i int) T {
	assertThat(i >= 0 && i < l.length, "list index out of bounds: %d with length %d", i, l.length)
	ci, off := l.locate(i)
	return l.chunks[ci].At(off)
}

// Set returns a copy of the list with index i replaced by v. Only the
// affected chunk and the chunk directory are copied.
func (l List[T]) Set(i int, v T) List[T] {
	assertThat(i >= 0 && i < l.length, "list index out of bounds: %d with length %d", i, l.length)
	ci, off := l.locate(i)
	dir := cloneDirectory(l.chunks)
	dir[ci] = l.chunks[ci].WithSet(off, v, l.pool)
	return List[T]{pool: l.pool, chunks: dir, length: l.length}
}

// Push returns a copy of the list with v appended.
func (l List[T]) Push(v T) List[T] {
	dir := cloneDirectory(l.chunks)
	if n := len(dir); n > 0 && !dir[n-1].Full() {
		edge := dir[n-1].CloneInto(l.pool)
		edge.AppendInPlace(v)
		dir[n-1] = edge
	} else {
		tracer().Debugf("edge chunk full, acquiring a new one")
		edge := l.pool.Get()
		edge.AppendInPlace(v)
		dir = append(dir, edge)
	}
	return List[T]{pool: l.pool, chunks: dir, length: l.length + 1}
}

// Pop returns a copy of the list with the last element removed.
func (l List[T]) Pop() List[T] {
	assertThat(l.length > 0, "attempt to remove item from empty list")
	dir := cloneDirectory(l.chunks)
	n := len(dir)
	if dir[n-1].Len() == 1 {
		dir = dir[:n-1] // edge chunk still referenced by the source list
	} else {
		edge := dir[n-1].CloneInto(l.pool)
		edge.Truncate(edge.Len() - 1)
		dir[n-1] = edge
	}
	return List[T]{pool: l.pool, chunks: dir, length: l.length - 1}
}

// PushFront returns a copy of the list with v prepended.
func (l List[T]) PushFront(v T) List[T] {
	// the front chunk grows by rebuild; front chunks are small by construction
	dir := cloneDirectory(l.chunks)
	if len(dir) > 0 && !dir[0].Full() {
		front := l.pool.Get()
		front.AppendInPlace(v)
		l.chunks[0].Each(func(_ int, x T) bool {
			front.AppendInPlace(x)
			return true
		})
		dir[0] = front
	} else {
		front := l.pool.Get()
		front.AppendInPlace(v)
		dir = append([]*chunk.Chunk[T]{front}, dir...)
	}
	return List[T]{pool: l.pool, chunks: dir, length: l.length + 1}
}

// PopFront returns a copy of the list with the first element removed.
func (l List[T]) PopFront() List[T] {
	assertThat(l.length > 0, "attempt to remove item from empty list")
	dir := cloneDirectory(l.chunks)
	if dir[0].Len() == 1 {
		dir = dir[1:]
	} else {
		front := l.pool.Get()
		l.chunks[0].Each(func(i int, x T) bool {
			if i > 0 {
				front.AppendInPlace(x)
			}
			return true
		})
		dir[0] = front
	}
	return List[T]{pool: l.pool, chunks: dir, length: l.length - 1}
}

// Slice returns the sub-list covering [start, end). Bounds must satisfy
// 0 ≤ start ≤ end ≤ Len.
func (l List[T]) Slice(start, end int) List[T] {
	assertThat(start >= 0 && start <= end && end <= l.length,
		"slice bounds out of range: [%d:%d] with length %d", start, end, l.length)
	i := start
	return Build(l.pool, end-start, func() T {
		v := l.Get(i)
		i++
		return v
	})
}

// Concat returns the concatenation of l and other. other's elements are
// re-chunked onto l's pool.
func (l List[T]) Concat(other List[T]) List[T] {
	result := l
	other.Each(func(_ int, v T) bool {
		result = result.Push(v)
		return true
	})
	return result
}

// Each calls f for every element in order until f returns false.
func (l List[T]) Each(f func(i int, v T) bool) {
	i := 0
	for _, c := range l.chunks {
		done := !c.Each(func(_ int, v T) bool {
			ok := f(i, v)
			i++
			return ok
		})
		if done {
			return
		}
	}
}

// --- Helpers ---------------------------------------------------------------

func cloneDirectory[T any](dir []*chunk.Chunk[T]) []*chunk.Chunk[T] {
	clone := make([]*chunk.Chunk[T], len(dir))
	copy(clone, dir)
	return clone
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("chunked: "+msg, msgargs...)
		panic(msg)
	}
}
