package reduct

import (
	"fmt"

	"github.com/koficodedat/reduct/chunk"
	"github.com/koficodedat/reduct/chunked"
	"github.com/koficodedat/reduct/hamt"
	"github.com/koficodedat/reduct/vector"
)

// Representation tags the backing strategy currently behind a Seq.
type Representation int

const (
	// RepSmall is an inline block without indirection, for tiny sequences.
	RepSmall Representation = iota
	// RepArray is a flat copy-on-write array for small homogeneous-scalar
	// sequences.
	RepArray
	// RepChunked is a directory of pooled fixed-capacity chunks, cheap at
	// the edges.
	RepChunked
	// RepVector is a bit-partitioned persistent trie with structural
	// sharing, for large index-heavy sequences.
	RepVector
	// RepHamt is a hashed trie for very large or sparse sequences.
	RepHamt
)

func (r Representation) String() string {
	switch r {
	case RepSmall:
		return "small"
	case RepArray:
		return "array"
	case RepChunked:
		return "chunked"
	case RepVector:
		return "vector"
	case RepHamt:
		return "hamt"
	}
	return "unknown"
}

// store is the contract every representation variant fulfills. All
// mutating methods are pure and return a new store; indices are validated
// by the Seq layer before they get here.
type store[T any] interface {
	Len() int
	Get(i int) T
	Set(i int, v T) store[T]
	Push(v T) store[T]
	Pop() store[T]
	Slice(start, end int) store[T]
	Each(f func(i int, v T) bool)
	rep() Representation
}

// --- Inline block ----------------------------------------------------------

// smallCap bounds the inline block. The small-size threshold is clamped
// below it so that one push past the threshold still fits before the
// selector transitions the sequence away.
const smallCap = 16

type smallStore[T any] struct {
	n     int
	elems [smallCap]T
}

func (s smallStore[T]) Len() int { return s.n }

func (s smallStore[T]) Get(i int) T { return s.elems[i] }

func (s smallStore[T]) Set(i int, v T) store[T] {
	s.elems[i] = v // receiver is a copy already
	return s
}

func (s smallStore[T]) Push(v T) store[T] {
	if s.n >= smallCap {
		panic(fmt.Sprintf("reduct: inline block overflow at %d elements", s.n))
	}
	s.elems[s.n] = v
	s.n++
	return s
}

func (s smallStore[T]) Pop() store[T] {
	var zero T
	s.n--
	s.elems[s.n] = zero
	return s
}

func (s smallStore[T]) Slice(start, end int) store[T] {
	t := smallStore[T]{n: end - start}
	copy(t.elems[:], s.elems[start:end])
	return t
}

func (s smallStore[T]) Each(f func(i int, v T) bool) {
	for i := 0; i < s.n; i++ {
		if !f(i, s.elems[i]) {
			return
		}
	}
}

func (s smallStore[T]) rep() Representation { return RepSmall }

// --- Flat array ------------------------------------------------------------

type arrayStore[T any] struct {
	elems []T // never mutated in place once published
}

func (a arrayStore[T]) Len() int { return len(a.elems) }

func (a arrayStore[T]) Get(i int) T { return a.elems[i] }

func (a arrayStore[T]) Set(i int, v T) store[T] {
	elems := make([]T, len(a.elems))
	copy(elems, a.elems)
	elems[i] = v
	return arrayStore[T]{elems: elems}
}

func (a arrayStore[T]) Push(v T) store[T] {
	elems := make([]T, len(a.elems)+1)
	copy(elems, a.elems)
	elems[len(a.elems)] = v
	return arrayStore[T]{elems: elems}
}

func (a arrayStore[T]) Pop() store[T] {
	elems := make([]T, len(a.elems)-1)
	copy(elems, a.elems)
	return arrayStore[T]{elems: elems}
}

func (a arrayStore[T]) Slice(start, end int) store[T] {
	elems := make([]T, end-start)
	copy(elems, a.elems[start:end])
	return arrayStore[T]{elems: elems}
}

func (a arrayStore[T]) Each(f func(i int, v T) bool) {
	for i, v := range a.elems {
		if !f(i, v) {
			return
		}
	}
}

func (a arrayStore[T]) rep() Representation { return RepArray }

// --- Chunked list ----------------------------------------------------------

type chunkedStore[T any] struct {
	list chunked.List[T]
}

func (c chunkedStore[T]) Len() int { return c.list.Len() }

func (c chunkedStore[T]) Get(i int) T { return c.list.Get(i) }

func (c chunkedStore[T]) Set(i int, v T) store[T] {
	return chunkedStore[T]{list: c.list.Set(i, v)}
}

func (c chunkedStore[T]) Push(v T) store[T] {
	return chunkedStore[T]{list: c.list.Push(v)}
}

func (c chunkedStore[T]) Pop() store[T] {
	return chunkedStore[T]{list: c.list.Pop()}
}

func (c chunkedStore[T]) Slice(start, end int) store[T] {
	return chunkedStore[T]{list: c.list.Slice(start, end)}
}

func (c chunkedStore[T]) Each(f func(i int, v T) bool) {
	c.list.Each(f)
}

func (c chunkedStore[T]) rep() Representation { return RepChunked }

// --- Trie vector -----------------------------------------------------------

type vectorStore[T any] struct {
	vec vector.Vector[T]
}

func (v vectorStore[T]) Len() int { return v.vec.Len() }

func (v vectorStore[T]) Get(i int) T { return v.vec.Get(i) }

func (v vectorStore[T]) Set(i int, x T) store[T] {
	return vectorStore[T]{vec: v.vec.Set(i, x)}
}

func (v vectorStore[T]) Push(x T) store[T] {
	return vectorStore[T]{vec: v.vec.Push(x)}
}

func (v vectorStore[T]) Pop() store[T] {
	return vectorStore[T]{vec: v.vec.Pop()}
}

func (v vectorStore[T]) Slice(start, end int) store[T] {
	return vectorStore[T]{vec: v.vec.Slice(start, end)}
}

func (v vectorStore[T]) Each(f func(i int, x T) bool) {
	v.vec.Each(f)
}

func (v vectorStore[T]) rep() Representation { return RepVector }

// --- Hashed trie -----------------------------------------------------------

type hamtStore[T any] struct {
	vec hamt.Vector[T]
}

func (h hamtStore[T]) Len() int { return h.vec.Len() }

func (h hamtStore[T]) Get(i int) T { return h.vec.Get(i) }

func (h hamtStore[T]) Set(i int, x T) store[T] {
	return hamtStore[T]{vec: h.vec.Set(i, x)}
}

func (h hamtStore[T]) Push(x T) store[T] {
	return hamtStore[T]{vec: h.vec.Push(x)}
}

func (h hamtStore[T]) Pop() store[T] {
	return hamtStore[T]{vec: h.vec.Pop()}
}

func (h hamtStore[T]) Slice(start, end int) store[T] {
	return hamtStore[T]{vec: h.vec.Slice(start, end)}
}

func (h hamtStore[T]) Each(f func(i int, x T) bool) {
	h.vec.Each(f)
}

func (h hamtStore[T]) rep() Representation { return RepHamt }

// --- Builders --------------------------------------------------------------

// buildStore materializes xs into the given representation. pool is only
// consulted for the chunked representation.
func buildStore[T any](target Representation, xs []T, cfg *Config, pool *chunk.Pool[T]) store[T] {
	switch target {
	case RepSmall:
		s := smallStore[T]{n: len(xs)}
		copy(s.elems[:], xs)
		return s
	case RepArray:
		elems := make([]T, len(xs))
		copy(elems, xs)
		return arrayStore[T]{elems: elems}
	case RepChunked:
		return chunkedStore[T]{list: chunked.FromSlice(pool, xs)}
	case RepVector:
		return vectorStore[T]{vec: vector.FromSlice(xs, vector.DegreeExponent(cfg.DegreeExponent))}
	case RepHamt:
		return hamtStore[T]{vec: hamt.FromSlice(xs)}
	}
	panic(fmt.Sprintf("reduct: unknown representation %d", target))
}

func toSlice[T any](st store[T]) []T {
	xs := make([]T, 0, st.Len())
	st.Each(func(_ int, v T) bool {
		xs = append(xs, v)
		return true
	})
	return xs
}
