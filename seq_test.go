package reduct

import (
	"errors"
	"testing"

	"github.com/koficodedat/reduct/perf"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestEmptySeq(t *testing.T) {
	s := Empty[int]()
	if s.Len() != 0 {
		t.Errorf("expected empty sequence to have length 0, is %d", s.Len())
	}
	if s.Representation() != RepSmall {
		t.Errorf("expected empty sequence to be inline, is %s", s.Representation())
	}
	if _, err := s.Get(0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Error("expected get on empty sequence to report the index, didn't")
	}
}

func TestFromGetSet(t *testing.T) {
	s := From([]int{1, 2, 3, 4, 5})
	if v, err := s.Get(2); err != nil || v != 3 {
		t.Errorf("expected element 3 at 2, is %d (err=%v)", v, err)
	}
	w, err := s.Set(2, 99)
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if v, _ := s.Get(2); v != 3 {
		t.Errorf("expected original to still hold 3 at 2, is %d", v)
	}
	if v, _ := w.Get(2); v != 99 {
		t.Errorf("expected new incarnation to hold 99 at 2, is %d", v)
	}
	assertElements(t, s, []int{1, 2, 3, 4, 5})
	assertElements(t, w, []int{1, 2, 99, 4, 5})
}

func TestGetSetOutOfRange(t *testing.T) {
	s := From([]int{1, 2, 3})
	if _, err := s.Get(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Error("expected get(-1) to fail, didn't")
	}
	if _, err := s.Get(3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Error("expected get(len) to fail, didn't")
	}
	if _, err := s.Set(3, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Error("expected set(len) to fail, didn't")
	}
}

func TestFromSeq(t *testing.T) {
	s := FromSeq(func(yield func(int) bool) {
		for i := 1; i <= 5; i++ {
			if !yield(i * i) {
				return
			}
		}
	})
	assertElements(t, s, []int{1, 4, 9, 16, 25})
}

func TestAppendPrepend(t *testing.T) {
	s := From([]int{2, 3})
	s = s.Append(4).Prepend(1)
	assertElements(t, s, []int{1, 2, 3, 4})
}

func TestInsertRemove(t *testing.T) {
	s := From([]int{1, 2, 4})
	s, err := s.Insert(2, 3)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	assertElements(t, s, []int{1, 2, 3, 4})
	s, err = s.Insert(4, 5) // insertion at length is legal
	if err != nil {
		t.Fatalf("insert at end failed: %v", err)
	}
	assertElements(t, s, []int{1, 2, 3, 4, 5})
	if _, err := s.Insert(7, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Error("expected insert past the end to fail, didn't")
	}
	s, err = s.Remove(0)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	assertElements(t, s, []int{2, 3, 4, 5})
	if _, err := s.Remove(4); !errors.Is(err, ErrIndexOutOfRange) {
		t.Error("expected remove past the end to fail, didn't")
	}
}

func TestSliceConcat(t *testing.T) {
	s := From([]int{1, 2, 3, 4, 5, 6})
	mid, err := s.Slice(1, 4)
	if err != nil {
		t.Fatalf("slice failed: %v", err)
	}
	assertElements(t, mid, []int{2, 3, 4})
	joined := mid.Concat(From([]int{7, 8}))
	assertElements(t, joined, []int{2, 3, 4, 7, 8})
	if _, err := s.Slice(4, 2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Error("expected inverted slice bounds to fail, didn't")
	}
}

func TestFirstLastFind(t *testing.T) {
	s := From([]int{10, 20, 30})
	if v := s.First().WithDefault(-1); v != 10 {
		t.Errorf("expected first element 10, is %d", v)
	}
	if v := s.Last().WithDefault(-1); v != 30 {
		t.Errorf("expected last element 30, is %d", v)
	}
	if Empty[int]().First().IsJust() {
		t.Error("expected empty sequence to have no first element, has")
	}
	if v := s.Find(func(x int) bool { return x > 15 }).WithDefault(-1); v != 20 {
		t.Errorf("expected find to yield 20, is %d", v)
	}
	if i := s.FindIndex(func(x int) bool { return x > 15 }); i != 1 {
		t.Errorf("expected find-index to yield 1, is %d", i)
	}
	if i := s.FindIndex(func(x int) bool { return x > 100 }); i != -1 {
		t.Errorf("expected find-index to yield -1 for no match, is %d", i)
	}
}

// Representation transparency: the observable element order must not
// depend on the backing variant, across sizes straddling every boundary.
func TestRepresentationTransparency(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reduct.seq")
	defer teardown()
	//
	opts := []Option{WithThresholds(4, 8, 16, 32)}
	for _, n := range []int{0, 1, 3, 4, 5, 7, 8, 9, 15, 16, 17, 31, 32, 33, 100} {
		s := FromFunc(n, func(i int) int { return i * 7 }, opts...)
		t.Logf("n=%3d backed by %s", n, s.Representation())
		if s.Len() != n {
			t.Fatalf("expected length %d, is %d", n, s.Len())
		}
		xs := s.ToSlice()
		for i, x := range xs {
			if x != i*7 {
				t.Fatalf("n=%d: expected element %d at %d, is %d", n, i*7, i, x)
			}
		}
	}
}

func TestRepresentationSelectionBySize(t *testing.T) {
	opts := []Option{WithThresholds(4, 8, 16, 32)}
	cases := []struct {
		n    int
		want Representation
	}{
		{3, RepSmall}, {4, RepSmall}, {5, RepArray}, {8, RepArray},
		{9, RepChunked}, {16, RepChunked}, {17, RepVector}, {32, RepVector},
		{33, RepHamt},
	}
	for _, c := range cases {
		s := FromFunc(c.n, func(i int) int { return i }, opts...)
		if s.Representation() != c.want {
			t.Errorf("expected length %d to be backed by %s, is %s", c.n, c.want, s.Representation())
		}
	}
}

func TestGrowthTransitions(t *testing.T) {
	capture := &perf.Capture{}
	s := Empty[int](WithThresholds(4, 8, 16, 32), WithRecorder(capture))
	for i := 0; i < 40; i++ {
		s = s.Append(i)
	}
	if s.Representation() != RepHamt {
		t.Errorf("expected a sequence of 40 to end up hashed, is %s", s.Representation())
	}
	assertElements(t, s, intRange(40))
	if capture.Count("transition") < 4 {
		t.Errorf("expected at least 4 recorded transitions while growing, got %d", capture.Count("transition"))
	}
}

func TestShrinkHysteresis(t *testing.T) {
	opts := []Option{WithThresholds(4, 8, 16, 32), WithHysteresis(4)}
	s := FromFunc(10, func(i int) int { return i }, opts...)
	if s.Representation() != RepChunked {
		t.Fatalf("expected length 10 to be chunked, is %s", s.Representation())
	}
	// drop just below the boundary: hysteresis keeps the representation
	s, _ = s.Remove(9)
	s, _ = s.Remove(8)
	if s.Representation() != RepChunked {
		t.Errorf("expected hysteresis to hold the representation at length 8, is %s", s.Representation())
	}
	// undercut the margin: now the downgrade is real
	for s.Len() > 4 {
		s, _ = s.Remove(s.Len() - 1)
	}
	if s.Representation() == RepChunked {
		t.Error("expected the representation to downgrade well below the boundary, didn't")
	}
	assertElements(t, s, intRange(4))
}

func TestMixedProfileSkipsFlatArray(t *testing.T) {
	opts := []Option{WithThresholds(4, 8, 16, 32)}
	xs := []any{1, "two", 3.0, []int{4}, 5, 6}
	s := From(xs, opts...)
	if s.Profile() != ProfileMixed {
		t.Errorf("expected mixed profile, is %s", s.Profile())
	}
	if s.Representation() == RepArray {
		t.Error("expected mixed elements to avoid the flat array, didn't")
	}
}

func TestNumericProfileUsesFlatArray(t *testing.T) {
	opts := []Option{WithThresholds(4, 8, 16, 32)}
	s := From([]int{1, 2, 3, 4, 5, 6}, opts...)
	if s.Profile() != ProfileNumeric {
		t.Errorf("expected numeric profile, is %s", s.Profile())
	}
	if s.Representation() != RepArray {
		t.Errorf("expected scalar elements in a flat array, is %s", s.Representation())
	}
}

// --- Helpers ---------------------------------------------------------------

func assertElements[T comparable](t *testing.T, s Seq[T], want []T) {
	t.Helper()
	got := s.ToSlice()
	if len(got) != len(want) {
		t.Fatalf("expected %d elements, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected element %v at %d, is %v (all: %v)", want[i], i, got[i], got)
		}
	}
}

func intRange(n int) []int {
	xs := make([]int, n)
	for i := range xs {
		xs[i] = i
	}
	return xs
}
