package reduct

import (
	"errors"
	"testing"

	"github.com/koficodedat/reduct/perf"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestTransientCommitEquivalence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reduct.seq")
	defer teardown()
	//
	// the same edit sequence, batched and one pure step at a time, must
	// produce observably equal sequences, for every starting representation
	for _, n := range []int{3, 6, 12, 20, 40} {
		base := FromFunc(n, func(i int) int { return i }, WithThresholds(4, 8, 16, 32))
		t.Logf("n=%3d backed by %s", n, base.Representation())

		tr := base.Transient()
		pure := base
		var err error
		for i := 0; i < n; i += 2 {
			if err = tr.Set(i, -i); err != nil {
				t.Fatalf("transient set failed: %v", err)
			}
			if pure, err = pure.Set(i, -i); err != nil {
				t.Fatalf("pure set failed: %v", err)
			}
		}
		for i := 0; i < 5; i++ {
			if err = tr.Append(100 + i); err != nil {
				t.Fatalf("transient append failed: %v", err)
			}
			pure = pure.Append(100 + i)
		}
		committed, err := tr.Commit()
		if err != nil {
			t.Fatalf("commit failed: %v", err)
		}
		assertElements(t, committed, pure.ToSlice())
	}
}

func TestTransientLeavesSourceUnchanged(t *testing.T) {
	for _, n := range []int{3, 12, 40} {
		base := FromFunc(n, func(i int) int { return i }, WithThresholds(4, 8, 16, 32))
		snapshot := base.ToSlice()

		tr := base.Transient()
		for i := 0; i < n; i++ {
			_ = tr.Set(i, -1000)
		}
		_ = tr.Append(1)
		if _, err := tr.Commit(); err != nil {
			t.Fatalf("commit failed: %v", err)
		}
		assertElements(t, base, snapshot)

		tr = base.Transient()
		_ = tr.Append(7)
		if err := tr.Discard(); err != nil {
			t.Fatalf("discard failed: %v", err)
		}
		assertElements(t, base, snapshot)
	}
}

func TestTransientOwnershipAfterCommit(t *testing.T) {
	tr := From([]int{1, 2, 3}).Transient()
	if _, err := tr.Commit(); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if err := tr.Set(0, 9); !errors.Is(err, ErrOwnershipViolation) {
		t.Errorf("expected set after commit to violate ownership, got %v", err)
	}
	if err := tr.Append(9); !errors.Is(err, ErrOwnershipViolation) {
		t.Errorf("expected append after commit to violate ownership, got %v", err)
	}
	if _, err := tr.Commit(); !errors.Is(err, ErrOwnershipViolation) {
		t.Errorf("expected double commit to violate ownership, got %v", err)
	}
	if err := tr.Discard(); !errors.Is(err, ErrOwnershipViolation) {
		t.Errorf("expected discard after commit to violate ownership, got %v", err)
	}
}

func TestTransientOwnershipAfterDiscard(t *testing.T) {
	tr := From([]int{1, 2, 3}).Transient()
	if err := tr.Discard(); err != nil {
		t.Fatalf("discard failed: %v", err)
	}
	if err := tr.Set(0, 9); !errors.Is(err, ErrOwnershipViolation) {
		t.Errorf("expected set after discard to violate ownership, got %v", err)
	}
	if _, err := tr.Commit(); !errors.Is(err, ErrOwnershipViolation) {
		t.Errorf("expected commit after discard to violate ownership, got %v", err)
	}
}

func TestTransientEditCountAndOwner(t *testing.T) {
	tr := From([]int{1, 2, 3}).Transient()
	if tr.Owner() == (From([]int{1}).Transient()).Owner() {
		t.Error("expected distinct transients to carry distinct owner tokens")
	}
	_ = tr.Set(0, 0)
	_ = tr.Append(4)
	_ = tr.Pop()
	if tr.Edits() != 3 {
		t.Errorf("expected 3 recorded edits, got %d", tr.Edits())
	}
}

func TestTransientPopAndBounds(t *testing.T) {
	tr := From([]int{1, 2}).Transient()
	if err := tr.Set(5, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected out-of-range transient set to fail, got %v", err)
	}
	_ = tr.Pop()
	_ = tr.Pop()
	if err := tr.Pop(); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected pop on empty transient to fail, got %v", err)
	}
	s, err := tr.Commit()
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expected committed sequence to be empty, has %d", s.Len())
	}
}

func TestTransientOverHashedTrie(t *testing.T) {
	base := FromFunc(100, func(i int) int { return i }, WithThresholds(4, 8, 16, 32))
	if base.Representation() != RepHamt {
		t.Fatalf("expected base to be hashed, is %s", base.Representation())
	}
	tr := base.Transient()
	_ = tr.Set(50, -50)
	committed, err := tr.Commit()
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if v, _ := committed.Get(50); v != -50 {
		t.Errorf("expected committed element -50 at 50, is %d", v)
	}
	if v, _ := base.Get(50); v != 50 {
		t.Errorf("expected base element 50 at 50, is %d", v)
	}
}

// Discarding many chunked batches must feed the chunk pool; later
// allocations are then served from it.
func TestDiscardedBatchesFeedThePool(t *testing.T) {
	capture := &perf.Capture{}
	base := FromFunc(10, func(i int) int { return i },
		WithThresholds(2, 4, 1024, 1<<20), WithRecorder(capture))
	if base.Representation() != RepChunked {
		t.Fatalf("expected base to be chunked, is %s", base.Representation())
	}
	for k := 0; k < 1000; k++ {
		tr := base.Transient()
		for i := 0; i < 64; i++ {
			_ = tr.Append(i)
		}
		if err := tr.Discard(); err != nil {
			t.Fatalf("discard failed: %v", err)
		}
	}
	if capture.Count("pool.hit") == 0 {
		t.Error("expected discarded batches to be served from the pool, no hit recorded")
	}
}
