package accel

import (
	"time"

	"github.com/koficodedat/reduct/perf"
)

// Tier is the execution tier chosen for one call.
type Tier int

const (
	// TierAccelerated runs the accelerator unconditionally.
	TierAccelerated Tier = iota
	// TierConditional runs the accelerator if the input crosses a threshold.
	TierConditional
	// TierFallback runs the pure implementation. It is the default tier.
	TierFallback
)

func (t Tier) String() string {
	switch t {
	case TierAccelerated:
		return "accelerated"
	case TierConditional:
		return "conditional"
	case TierFallback:
		return "fallback"
	}
	return "unknown"
}

// Input carries the characteristics of one call's input that tier
// predicates may inspect.
type Input struct {
	Size int // total element count
	Len  int // string length, where applicable
	Dim  int // matrix dimension, where applicable
}

// Thresholds are the tunable cut-offs for conditional acceleration.
type Thresholds struct {
	MinSliceLen     int
	MinStringLength int
	MinMatrixSize   int
}

// DefaultThresholds returns cut-offs that work reasonably across operations.
// Callers with measured workloads should tune them.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinSliceLen:     10_000,
		MinStringLength: 10_000,
		MinMatrixSize:   64,
	}
}

// Predicate inspects an input and votes for its tier.
type Predicate func(Input) bool

// Strategy is the tiering strategy for one operation: one predicate per
// tier, evaluated in the fixed order accelerated, conditional, fallback.
// The first predicate returning true selects the tier; if none does, the
// fallback tier is selected. Nil predicates never match.
type Strategy struct {
	Accelerated Predicate
	Conditional Predicate
	Fallback    Predicate
}

// Choose resolves the tier for input.
func (s Strategy) Choose(input Input) Tier {
	if s.Accelerated != nil && s.Accelerated(input) {
		return TierAccelerated
	}
	if s.Conditional != nil && s.Conditional(input) {
		return TierConditional
	}
	if s.Fallback != nil && s.Fallback(input) {
		return TierFallback
	}
	return TierFallback
}

// AlwaysAccelerate is the strategy for operations where acceleration pays
// off at any size.
func AlwaysAccelerate() Strategy {
	return Strategy{Accelerated: func(Input) bool { return true }}
}

// AccelerateAbove is the strategy for operations that only amortize the
// crossing cost above th.MinSliceLen elements.
func AccelerateAbove(th Thresholds) Strategy {
	return Strategy{Conditional: func(in Input) bool { return in.Size >= th.MinSliceLen }}
}

// PreferFallback is the strategy for operations where the pure
// implementation wins regardless of input.
func PreferFallback() Strategy {
	return Strategy{}
}

// Dispatcher routes operations to an execution tier. The zero value is not
// usable; construct dispatchers with NewDispatcher.
type Dispatcher struct {
	registry *Registry
	recorder perf.Recorder
}

// NewDispatcher creates a dispatcher over the given registry. A nil
// registry selects the process-wide default; a nil recorder drops samples.
func NewDispatcher(reg *Registry, rec perf.Recorder) *Dispatcher {
	if reg == nil {
		reg = Default()
	}
	if rec == nil {
		rec = perf.Nop()
	}
	return &Dispatcher{registry: reg, recorder: rec}
}

// Registry returns the registry the dispatcher resolves accelerators in.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Execute runs the operation identified by key on the tier chosen by
// strategy. payload is handed to whichever implementation runs. Resolution
// failures of any kind (no accelerator registered, accelerator unavailable,
// accelerator error) silently fall back to the pure implementation; the
// caller never errors out because of tiering.
func (d *Dispatcher) Execute(key Key, strategy Strategy, input Input, payload any,
	fallback func(any) (any, error)) (any, error) {
	tier := strategy.Choose(input)
	start := time.Now()
	if tier != TierFallback {
		if acc := d.registry.Get(key); acc != nil && acc.Available() {
			out, err := acc.Execute(payload)
			if err == nil {
				d.record(key, tier, input, time.Since(start))
				return out, nil
			}
			tracer().Infof("accelerator for %s/%s failed, falling back: %v", key.Type, key.Operation, err)
		} else {
			tracer().Debugf("no usable accelerator for %s/%s, falling back", key.Type, key.Operation)
		}
	}
	out, err := fallback(payload)
	d.record(key, TierFallback, input, time.Since(start))
	return out, err
}

func (d *Dispatcher) record(key Key, tier Tier, input Input, elapsed time.Duration) {
	d.recorder.Record(perf.Sample{
		Op:        key.Operation,
		Structure: key.Type,
		Size:      input.Size,
		Elapsed:   elapsed,
		Meta:      map[string]any{"tier": tier.String(), "domain": key.Domain},
	})
}
