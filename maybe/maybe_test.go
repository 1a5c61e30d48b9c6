package maybe_test

import (
	"testing"

	. "github.com/koficodedat/reduct/maybe"
)

func TestMaybeValue(t *testing.T) {
	x := Just(7)
	if v, ok := x.Value(); !ok || v != 7 {
		t.Errorf("expected Just(7) to unpack to 7, got %d (ok=%v)", v, ok)
	}
	y := Nothing[int]()
	if _, ok := y.Value(); ok {
		t.Error("expected Nothing to unpack with ok=false, didn't")
	}
}

func TestMaybeWithDefault(t *testing.T) {
	if x := Just(7).WithDefault(100); x != 7 {
		t.Errorf("expected Just(7) to have value 7, is %d", x)
	}
	if y := Nothing[int]().WithDefault(100); y != 100 {
		t.Errorf("expected Nothing to default to 100, is %d", y)
	}
}

func TestMaybeMap(t *testing.T) {
	double := func(n int) int { return n * 2 }
	if v := Just(21).Map(double).WithDefault(0); v != 42 {
		t.Errorf("expected mapped value 42, is %d", v)
	}
	if Nothing[int]().Map(double).IsJust() {
		t.Error("expected Nothing to survive mapping, didn't")
	}
}

func TestMaybeAndThen(t *testing.T) {
	half := func(n int) Maybe[int] {
		if n%2 != 0 {
			return Nothing[int]()
		}
		return Just(n / 2)
	}
	if v := AndThen(half, Just(42)).WithDefault(-1); v != 21 {
		t.Errorf("expected chained value 21, is %d", v)
	}
	if AndThen(half, Just(7)).IsJust() {
		t.Error("expected chaining an odd number to come up empty, didn't")
	}
}
