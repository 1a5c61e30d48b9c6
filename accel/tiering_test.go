package accel

import (
	"errors"
	"testing"

	"github.com/koficodedat/reduct/perf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategyEvaluationOrder(t *testing.T) {
	s := Strategy{
		Accelerated: func(in Input) bool { return in.Size > 100 },
		Conditional: func(in Input) bool { return in.Size > 10 },
	}
	assert.Equal(t, TierAccelerated, s.Choose(Input{Size: 1000}))
	assert.Equal(t, TierConditional, s.Choose(Input{Size: 50}))
	assert.Equal(t, TierFallback, s.Choose(Input{Size: 5}))
}

func TestStrategyDefaultsToFallback(t *testing.T) {
	assert.Equal(t, TierFallback, Strategy{}.Choose(Input{Size: 1 << 20}))
	assert.Equal(t, TierFallback, PreferFallback().Choose(Input{Size: 1 << 20}))
}

func TestAccelerateAboveThreshold(t *testing.T) {
	th := Thresholds{MinSliceLen: 100}
	s := AccelerateAbove(th)
	assert.Equal(t, TierFallback, s.Choose(Input{Size: 0}))
	assert.Equal(t, TierFallback, s.Choose(Input{Size: 99}))
	assert.Equal(t, TierConditional, s.Choose(Input{Size: 100}))
	assert.Equal(t, TierConditional, s.Choose(Input{Size: 101}))
}

func doubleAll(in any) (any, error) {
	xs, ok := in.([]int)
	if !ok {
		return nil, errors.New("unexpected payload type")
	}
	out := make([]int, len(xs))
	for i, x := range xs {
		out[i] = x * 2
	}
	return out, nil
}

func TestDispatchRunsAccelerator(t *testing.T) {
	reg := NewRegistry()
	key := listKey("double")
	reg.Register(key, Func(doubleAll, 4.0, nil))
	d := NewDispatcher(reg, nil)
	out, err := d.Execute(key, AlwaysAccelerate(), Input{Size: 3}, []int{1, 2, 3}, doubleAll)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 6}, out)
}

func TestDispatchFallsBackWhenUnregistered(t *testing.T) {
	d := NewDispatcher(NewRegistry(), nil)
	out, err := d.Execute(listKey("double"), AlwaysAccelerate(), Input{Size: 3}, []int{1, 2, 3}, doubleAll)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 6}, out)
}

func TestDispatchFallsBackWhenUnavailable(t *testing.T) {
	reg := NewRegistry()
	key := listKey("double")
	broken := Func(func(any) (any, error) {
		t.Fatal("an unavailable accelerator must never execute")
		return nil, nil
	}, 8.0, func() bool { return false })
	reg.Register(key, broken)
	d := NewDispatcher(reg, nil)
	out, err := d.Execute(key, AlwaysAccelerate(), Input{Size: 3}, []int{1, 2, 3}, doubleAll)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 6}, out)
}

func TestDispatchFallsBackOnAcceleratorError(t *testing.T) {
	reg := NewRegistry()
	key := listKey("double")
	reg.Register(key, Func(func(any) (any, error) {
		return nil, errors.New("native call rejected input")
	}, 8.0, nil))
	d := NewDispatcher(reg, nil)
	out, err := d.Execute(key, AlwaysAccelerate(), Input{Size: 3}, []int{1, 2, 3}, doubleAll)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 6}, out)
}

func TestTierParityAroundThreshold(t *testing.T) {
	th := Thresholds{MinSliceLen: 4}
	reg := NewRegistry()
	key := listKey("double")
	reg.Register(key, Func(doubleAll, 4.0, nil))
	d := NewDispatcher(reg, nil)
	for _, n := range []int{0, 3, 4, 5} { // empty, threshold-1, threshold, threshold+1
		xs := make([]int, n)
		for i := range xs {
			xs[i] = i
		}
		dispatched, err := d.Execute(key, AccelerateAbove(th), Input{Size: n}, xs, doubleAll)
		require.NoError(t, err)
		pure, err := doubleAll(xs)
		require.NoError(t, err)
		assert.Equal(t, pure, dispatched, "tiers must agree on size %d", n)
	}
}

func TestDispatchRecordsTier(t *testing.T) {
	capture := &perf.Capture{}
	reg := NewRegistry()
	key := listKey("double")
	reg.Register(key, Func(doubleAll, 4.0, nil))
	d := NewDispatcher(reg, capture)
	_, err := d.Execute(key, AlwaysAccelerate(), Input{Size: 2}, []int{1, 2}, doubleAll)
	require.NoError(t, err)
	samples := capture.Samples()
	require.Len(t, samples, 1)
	assert.Equal(t, "double", samples[0].Op)
	assert.Equal(t, "accelerated", samples[0].Meta["tier"])
}

func TestFallbackAcceleratorProfile(t *testing.T) {
	fb := Fallback(doubleAll)
	assert.True(t, fb.Available())
	assert.Equal(t, 1.0, fb.Profile().EstimatedSpeedup)
}
