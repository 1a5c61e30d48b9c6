package reduct

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/koficodedat/reduct/chunked"
	"github.com/koficodedat/reduct/vector"
)

// Transient is a scoped, single-owner mutable view over a sequence for
// batched edits. Edits mutate in place (after a copy-on-first-write per
// storage block), so a long edit run costs amortized O(1) per edit instead
// of one structure copy each. Sequences that existed before the transient
// was opened stay observably unchanged, whatever happens inside the scope.
//
// A transient is finished by exactly one call to Commit or Discard; any
// further use fails with ErrOwnershipViolation. It is not safe for
// concurrent use; ownership is single-holder by contract, enforced by
// invalidation, not by locking.
type Transient[T any] struct {
	owner uuid.UUID
	seq   Seq[T] // carries configuration and profile into the commit
	edits int
	alive bool

	// exactly one of the views below is active
	buf []T                  // inline/array representations
	ed  *chunked.Editable[T] // chunked representation
	tv  *vector.TVector[T]   // trie representations
}

// Transient opens a batch-edit context over s.
func (s Seq[T]) Transient() *Transient[T] {
	t := &Transient[T]{owner: uuid.New(), seq: s, alive: true}
	switch st := s.store.(type) {
	case smallStore[T]:
		t.buf = append([]T(nil), st.elems[:st.n]...)
	case arrayStore[T]:
		t.buf = append([]T(nil), st.elems...)
	case chunkedStore[T]:
		t.ed = st.list.Edit()
	case vectorStore[T]:
		t.tv = st.vec.Transient()
	case hamtStore[T]:
		// the hashed trie has no in-place edit path; batch on a dense trie
		// transient and let the commit's reselection settle the outcome
		tv := vector.Immutable[T](vector.DegreeExponent(s.cfg.DegreeExponent)).Transient()
		st.Each(func(_ int, v T) bool {
			tv.Push(v)
			return true
		})
		t.tv = tv
	default:
		t.buf = []T{}
	}
	tracer().Debugf("transient %s opened over %s sequence of length %d",
		t.owner, s.Representation(), s.Len())
	return t
}

// Owner returns the token identifying the sole permitted mutator.
func (t *Transient[T]) Owner() uuid.UUID {
	return t.owner
}

// Edits returns the number of edits applied so far.
func (t *Transient[T]) Edits() int {
	return t.edits
}

// Len returns the current number of elements.
func (t *Transient[T]) Len() int {
	switch {
	case t.ed != nil:
		return t.ed.Len()
	case t.tv != nil:
		return t.tv.Len()
	}
	return len(t.buf)
}

// Get returns the element at index i.
func (t *Transient[T]) Get(i int) (T, error) {
	var zero T
	if !t.alive {
		return zero, fmt.Errorf("read through transient %s: %w", t.owner, ErrOwnershipViolation)
	}
	if i < 0 || i >= t.Len() {
		return zero, ErrIndexOutOfRange
	}
	switch {
	case t.ed != nil:
		return t.ed.Get(i), nil
	case t.tv != nil:
		return t.tv.Get(i), nil
	}
	return t.buf[i], nil
}

// Set overwrites index i with v.
func (t *Transient[T]) Set(i int, v T) error {
	if err := t.editable(); err != nil {
		return err
	}
	if i < 0 || i >= t.Len() {
		return ErrIndexOutOfRange
	}
	switch {
	case t.ed != nil:
		t.ed.Set(i, v)
	case t.tv != nil:
		t.tv.Set(i, v)
	default:
		t.buf[i] = v
	}
	t.noteEdit(v)
	return nil
}

// Append adds v at the end.
func (t *Transient[T]) Append(v T) error {
	if err := t.editable(); err != nil {
		return err
	}
	switch {
	case t.ed != nil:
		t.ed.Push(v)
	case t.tv != nil:
		t.tv.Push(v)
	default:
		t.buf = append(t.buf, v)
	}
	t.noteEdit(v)
	return nil
}

// Pop removes the last element.
func (t *Transient[T]) Pop() error {
	if err := t.editable(); err != nil {
		return err
	}
	if t.Len() == 0 {
		return ErrIndexOutOfRange
	}
	switch {
	case t.ed != nil:
		t.ed.Pop()
	case t.tv != nil:
		t.tv.Pop()
	default:
		t.buf = t.buf[:len(t.buf)-1]
	}
	t.edits++
	return nil
}

// Commit seals the batch and publishes its state as a new immutable
// sequence. The context is invalid afterwards.
func (t *Transient[T]) Commit() (Seq[T], error) {
	if !t.alive {
		return Seq[T]{}, fmt.Errorf("commit of transient %s: %w", t.owner, ErrOwnershipViolation)
	}
	start := time.Now()
	t.alive = false
	result := t.seq
	switch {
	case t.ed != nil:
		result.store = chunkedStore[T]{list: t.ed.Freeze()}
		t.ed = nil
	case t.tv != nil:
		result.store = vectorStore[T]{vec: t.tv.Persistent()}
		t.tv = nil
	default:
		target := result.cfg.selectRep(len(t.buf), result.profile)
		result.ensurePool(target)
		result.store = buildStore(target, t.buf, result.cfg, result.pool)
		t.buf = nil
	}
	result = result.reselected()
	result.record("transient.commit", start)
	tracer().Debugf("transient %s committed after %d edits", t.owner, t.edits)
	return result, nil
}

// Discard abandons the batch without publishing anything. Storage blocks
// the batch itself created go back to their pool. The context is invalid
// afterwards.
func (t *Transient[T]) Discard() error {
	if !t.alive {
		return fmt.Errorf("discard of transient %s: %w", t.owner, ErrOwnershipViolation)
	}
	t.alive = false
	if t.ed != nil {
		t.ed.Release()
		t.ed = nil
	}
	t.tv = nil
	t.buf = nil
	tracer().Debugf("transient %s discarded after %d edits", t.owner, t.edits)
	return nil
}

func (t *Transient[T]) editable() error {
	if !t.alive {
		return fmt.Errorf("edit through transient %s: %w", t.owner, ErrOwnershipViolation)
	}
	return nil
}

func (t *Transient[T]) noteEdit(v T) {
	t.edits++
	t.seq.profile = t.seq.profile.merge(classifyElem(v))
}
