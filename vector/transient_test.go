package vector

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestTransientPushMatchesPure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reduct.vector")
	defer teardown()
	//
	const n = 200
	tv := Immutable[int](DegreeExponent(2)).Transient()
	pure := Immutable[int](DegreeExponent(2))
	for i := 0; i < n; i++ {
		tv.Push(i)
		pure = pure.Push(i)
	}
	v := tv.Persistent()
	if v.Len() != pure.Len() {
		t.Fatalf("expected transient and pure lengths to match, are %d and %d", v.Len(), pure.Len())
	}
	for i := 0; i < n; i++ {
		if v.Get(i) != pure.Get(i) {
			t.Fatalf("expected element %d at %d, is %d", pure.Get(i), i, v.Get(i))
		}
	}
}

func TestTransientLeavesSourceUnchanged(t *testing.T) {
	v := Immutable[int](DegreeExponent(2))
	for i := 0; i < 64; i++ {
		v = v.Push(i)
	}
	tv := v.Transient()
	for i := 0; i < 64; i++ {
		tv.Set(i, -i)
	}
	tv.Push(1000)
	w := tv.Persistent()
	for i := 0; i < 64; i++ {
		if v.Get(i) != i {
			t.Fatalf("expected source vector to still hold %d at %d, is %d", i, i, v.Get(i))
		}
		if w.Get(i) != -i {
			t.Fatalf("expected sealed vector to hold %d at %d, is %d", -i, i, w.Get(i))
		}
	}
	if v.Len() != 64 || w.Len() != 65 {
		t.Errorf("expected lengths 64 and 65, are %d and %d", v.Len(), w.Len())
	}
}

func TestTransientSetClaimsNodesOnce(t *testing.T) {
	v := Immutable[int](DegreeExponent(2))
	for i := 0; i < 64; i++ {
		v = v.Push(i)
	}
	tv := v.Transient()
	tv.Set(0, 100)
	claimed := tv.root
	tv.Set(1, 200) // same path, no further cloning
	if tv.root != claimed {
		t.Error("expected a claimed root to be edited in place, was cloned again")
	}
}

func TestTransientPop(t *testing.T) {
	tv := Immutable[int](DegreeExponent(2)).Transient()
	const n = 70
	for i := 0; i < n; i++ {
		tv.Push(i)
	}
	for i := 0; i < 30; i++ {
		tv.Pop()
	}
	v := tv.Persistent()
	if v.Len() != n-30 {
		t.Fatalf("expected length %d after popping, is %d", n-30, v.Len())
	}
	for i := 0; i < v.Len(); i++ {
		if v.Get(i) != i {
			t.Fatalf("expected element %d at %d, is %d", i, i, v.Get(i))
		}
	}
}

func TestTransientUseAfterSealPanics(t *testing.T) {
	tv := Immutable[int]().Transient()
	tv.Push(1)
	tv.Persistent()
	defer func() {
		if recover() == nil {
			t.Error("expected use of a sealed transient to panic, didn't")
		}
	}()
	tv.Push(2)
}
