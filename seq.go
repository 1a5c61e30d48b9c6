package reduct

import (
	"time"

	"github.com/koficodedat/reduct/chunk"
	"github.com/koficodedat/reduct/maybe"
	"github.com/koficodedat/reduct/perf"
)

// Seq is an adaptive immutable sequence. Every operation returns a new Seq
// and leaves the receiver untouched; incarnations derived from one another
// share structure wherever the backing representation allows it. The zero
// value is not usable, construct sequences with Empty, Of or From.
type Seq[T any] struct {
	cfg     *Config // shared between derived incarnations, never mutated
	pool    *chunk.Pool[T]
	profile ElementProfile
	store   store[T]
}

// Empty creates an empty sequence.
func Empty[T any](opts ...Option) Seq[T] {
	cfg := defaultConfig()
	for _, option := range opts {
		option(cfg)
	}
	return Seq[T]{cfg: cfg, profile: profileFor[T](), store: smallStore[T]{}}
}

// Of creates a sequence of the given elements.
func Of[T any](xs ...T) Seq[T] {
	return From(xs)
}

// From creates a sequence holding the elements of xs.
func From[T any](xs []T, opts ...Option) Seq[T] {
	s := Empty[T](opts...)
	for _, x := range xs {
		s.profile = s.profile.merge(classifyElem(x))
	}
	target := s.cfg.selectRep(len(xs), s.profile)
	s.ensurePool(target)
	s.store = buildStore(target, xs, s.cfg, s.pool)
	return s
}

// FromFunc creates a sequence of n elements produced by f.
func FromFunc[T any](n int, f func(i int) T, opts ...Option) Seq[T] {
	xs := make([]T, n)
	for i := range xs {
		xs[i] = f(i)
	}
	return From(xs, opts...)
}

// FromSeq creates a sequence from a push-style iterator: gen is called once
// and hands every element to yield. gen must honor a false return from
// yield and stop.
func FromSeq[T any](gen func(yield func(T) bool), opts ...Option) Seq[T] {
	var xs []T
	gen(func(x T) bool {
		xs = append(xs, x)
		return true
	})
	return From(xs, opts...)
}

// classifyElem refines the profile contribution of one element. For
// concrete element types the static profile is authoritative; only
// interface-typed elements need a dynamic look.
func classifyElem[T any](x T) ElementProfile {
	if p := profileFor[T](); p != ProfileUnknown {
		return p
	}
	return classify(any(x))
}

// --- Accessors -------------------------------------------------------------

// Len returns the number of elements in the sequence.
func (s Seq[T]) Len() int {
	if s.store == nil {
		return 0
	}
	return s.store.Len()
}

// Representation returns the tag of the currently backing variant.
func (s Seq[T]) Representation() Representation {
	if s.store == nil {
		return RepSmall
	}
	return s.store.rep()
}

// Profile returns the element profile the selector sees.
func (s Seq[T]) Profile() ElementProfile {
	return s.profile
}

// Get returns the element at index i.
func (s Seq[T]) Get(i int) (T, error) {
	if i < 0 || i >= s.Len() {
		var zero T
		return zero, ErrIndexOutOfRange
	}
	return s.store.Get(i), nil
}

// First returns the first element, if any.
func (s Seq[T]) First() maybe.Maybe[T] {
	if s.Len() == 0 {
		return maybe.Nothing[T]()
	}
	return maybe.Just(s.store.Get(0))
}

// Last returns the last element, if any.
func (s Seq[T]) Last() maybe.Maybe[T] {
	if s.Len() == 0 {
		return maybe.Nothing[T]()
	}
	return maybe.Just(s.store.Get(s.Len() - 1))
}

// Each calls f for every element in order until f returns false.
func (s Seq[T]) Each(f func(i int, v T) bool) {
	if s.store != nil {
		s.store.Each(f)
	}
}

// ToSlice returns the elements as a flat Go slice.
func (s Seq[T]) ToSlice() []T {
	if s.store == nil {
		return []T{}
	}
	return toSlice(s.store)
}

// --- Pure operations -------------------------------------------------------

// Set returns a sequence with index i replaced by v.
func (s Seq[T]) Set(i int, v T) (Seq[T], error) {
	if i < 0 || i >= s.Len() {
		return s, ErrIndexOutOfRange
	}
	start := time.Now()
	t := s
	t.profile = s.profile.merge(classifyElem(v))
	t.store = s.store.Set(i, v)
	t.record("set", start)
	return t, nil
}

// Append returns a sequence with v appended.
func (s Seq[T]) Append(v T) Seq[T] {
	start := time.Now()
	t := s
	t.profile = s.profile.merge(classifyElem(v))
	t.store = s.store.Push(v)
	t = t.reselected()
	t.record("append", start)
	return t
}

// Prepend returns a sequence with v prepended.
func (s Seq[T]) Prepend(v T) Seq[T] {
	start := time.Now()
	t := s
	t.profile = s.profile.merge(classifyElem(v))
	if cs, ok := s.store.(chunkedStore[T]); ok { // chunked edits its front edge directly
		t.store = chunkedStore[T]{list: cs.list.PushFront(v)}
	} else {
		xs := make([]T, 0, s.Len()+1)
		xs = append(xs, v)
		xs = append(xs, s.ToSlice()...)
		t.store = buildStore(s.Representation(), xs, s.cfg, s.poolFor(s.Representation()))
	}
	t = t.reselected()
	t.record("prepend", start)
	return t
}

// Insert returns a sequence with v inserted at index i; i may equal Len.
func (s Seq[T]) Insert(i int, v T) (Seq[T], error) {
	if i < 0 || i > s.Len() {
		return s, ErrIndexOutOfRange
	}
	switch i {
	case s.Len():
		return s.Append(v), nil
	case 0:
		return s.Prepend(v), nil
	}
	start := time.Now()
	xs := s.ToSlice()
	xs = append(xs[:i], append([]T{v}, xs[i:]...)...)
	t := s
	t.profile = s.profile.merge(classifyElem(v))
	t.store = buildStore(s.Representation(), xs, s.cfg, s.poolFor(s.Representation()))
	t = t.reselected()
	t.record("insert", start)
	return t, nil
}

// Remove returns a sequence with index i removed.
func (s Seq[T]) Remove(i int) (Seq[T], error) {
	if i < 0 || i >= s.Len() {
		return s, ErrIndexOutOfRange
	}
	start := time.Now()
	t := s
	if i == s.Len()-1 {
		t.store = s.store.Pop()
	} else {
		xs := s.ToSlice()
		xs = append(xs[:i], xs[i+1:]...)
		t.store = buildStore(s.Representation(), xs, s.cfg, s.poolFor(s.Representation()))
	}
	t = t.reselected()
	t.record("remove", start)
	return t, nil
}

// Slice returns the sub-sequence covering [start, end).
func (s Seq[T]) Slice(start, end int) (Seq[T], error) {
	if start < 0 || start > end || end > s.Len() {
		return s, ErrIndexOutOfRange
	}
	began := time.Now()
	t := s
	t.store = s.store.Slice(start, end)
	t = t.reselected()
	t.record("slice", began)
	return t, nil
}

// Concat returns the concatenation of s and other. The result carries s's
// configuration and profile merged with other's.
func (s Seq[T]) Concat(other Seq[T]) Seq[T] {
	start := time.Now()
	xs := make([]T, 0, s.Len()+other.Len())
	xs = append(xs, s.ToSlice()...)
	xs = append(xs, other.ToSlice()...)
	t := s
	t.profile = s.profile.merge(other.profile)
	target := s.cfg.selectRep(len(xs), t.profile)
	t.ensurePool(target)
	t.store = buildStore(target, xs, s.cfg, t.pool)
	t.record("concat", start)
	return t
}

// --- Representation transitions --------------------------------------------

// reselected runs the representation selector after a size-changing
// operation and rebuilds the backing store if the selector asks for a
// transition.
func (s Seq[T]) reselected() Seq[T] {
	target, transition := s.cfg.reselect(s.Len(), s.profile, s.Representation())
	if !transition {
		return s
	}
	tracer().Debugf("representation transition %s -> %s at length %d",
		s.Representation(), target, s.Len())
	start := time.Now()
	s.ensurePool(target)
	from := s.Representation()
	s.store = buildStore(target, toSlice(s.store), s.cfg, s.pool)
	s.cfg.recorder.Record(perf.Sample{
		Op:        "transition",
		Structure: target.String(),
		Size:      s.Len(),
		Elapsed:   time.Since(start),
		Meta:      map[string]any{"from": from.String()},
	})
	return s
}

// ensurePool creates the chunk pool on first need. Derived incarnations
// share the pool, so chunks released by one batch are reused by the next.
func (s *Seq[T]) ensurePool(target Representation) {
	if target == RepChunked && s.pool == nil {
		s.pool = chunk.NewPool[T](s.cfg.ChunkSize,
			chunk.Retention[T](s.cfg.PoolRetention),
			chunk.Observer[T](s.cfg.recorder))
	}
}

// poolFor hands out the pool when target needs one, creating it lazily.
func (s Seq[T]) poolFor(target Representation) *chunk.Pool[T] {
	s.ensurePool(target)
	return s.pool
}

func (s Seq[T]) record(op string, start time.Time) {
	s.cfg.recorder.Record(perf.Sample{
		Op:        op,
		Structure: s.Representation().String(),
		Size:      s.Len(),
		Elapsed:   time.Since(start),
	})
}
