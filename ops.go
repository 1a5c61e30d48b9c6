package reduct

import (
	"sort"
	"time"

	"github.com/koficodedat/reduct/accel"
	"github.com/koficodedat/reduct/maybe"
)

// Bulk operations traverse the whole sequence. When the sequence was
// created with WithDispatcher, they are routed through the tiering policy
// and may run on a registered accelerator; the pure implementation below is
// always the reference behaviour, and the two must agree.

// Accelerators for sequence operations receive the payload types below and
// are expected to type-assert to the concrete element type they were
// registered for.

// MapArgs is the dispatch payload of Map.
type MapArgs[T any] struct {
	Data []T
	Fn   func(T) T
}

// FilterArgs is the dispatch payload of Filter.
type FilterArgs[T any] struct {
	Data []T
	Pred func(T) bool
}

// ReduceArgs is the dispatch payload of Reduce.
type ReduceArgs[T, A any] struct {
	Data []T
	Fn   func(A, T) A
	Zero A
}

// MapFilterArgs is the dispatch payload of MapFilter.
type MapFilterArgs[T any] struct {
	Data []T
	Fn   func(T) T
	Pred func(T) bool
}

// MapReduceArgs is the dispatch payload of MapReduce.
type MapReduceArgs[T, A any] struct {
	Data []T
	Map  func(T) T
	Fn   func(A, T) A
	Zero A
}

// FilterReduceArgs is the dispatch payload of FilterReduce.
type FilterReduceArgs[T, A any] struct {
	Data []T
	Pred func(T) bool
	Fn   func(A, T) A
	Zero A
}

// MapFilterReduceArgs is the dispatch payload of MapFilterReduce.
type MapFilterReduceArgs[T, A any] struct {
	Data []T
	Map  func(T) T
	Pred func(T) bool
	Fn   func(A, T) A
	Zero A
}

// SortArgs is the dispatch payload of Sort.
type SortArgs[T any] struct {
	Data []T
	Less func(a, b T) bool
}

const opDomain = "data-structures"

func opKey(op string) accel.Key {
	return accel.Key{Domain: opDomain, Type: "list", Operation: op}
}

func strategyFor(op string, th accel.Thresholds) accel.Strategy {
	switch op {
	case "map", "filter", "reduce", "sort",
		"mapFilter", "mapReduce", "filterReduce", "mapFilterReduce":
		return accel.AccelerateAbove(th)
	}
	return accel.PreferFallback()
}

// dispatch routes one bulk operation, or runs the pure implementation
// directly when no dispatcher is configured. Pure implementations are
// total, so the returned error is always nil.
func dispatch[T any](s Seq[T], op string, payload any, pure func(any) (any, error)) any {
	if s.cfg.dispatcher == nil {
		out, _ := pure(payload)
		return out
	}
	input := accel.Input{Size: s.Len()}
	out, _ := s.cfg.dispatcher.Execute(opKey(op), strategyFor(op, s.cfg.Thresholds), input, payload, pure)
	return out
}

// --- Operations ------------------------------------------------------------

// Map returns a sequence with f applied to every element.
func (s Seq[T]) Map(f func(T) T) Seq[T] {
	start := time.Now()
	out := dispatch(s, "map", MapArgs[T]{Data: s.ToSlice(), Fn: f},
		func(in any) (any, error) {
			args := in.(MapArgs[T])
			mapped := make([]T, len(args.Data))
			for i, x := range args.Data {
				mapped[i] = args.Fn(x)
			}
			return mapped, nil
		}).([]T)
	t := s.rebuilt(out)
	t.record("map", start)
	return t
}

// Filter returns a sequence keeping only the elements pred accepts.
func (s Seq[T]) Filter(pred func(T) bool) Seq[T] {
	start := time.Now()
	out := dispatch(s, "filter", FilterArgs[T]{Data: s.ToSlice(), Pred: pred},
		func(in any) (any, error) {
			args := in.(FilterArgs[T])
			kept := make([]T, 0, len(args.Data))
			for _, x := range args.Data {
				if args.Pred(x) {
					kept = append(kept, x)
				}
			}
			return kept, nil
		}).([]T)
	t := s.rebuilt(out)
	t.record("filter", start)
	return t
}

// Reduce folds the sequence into a single value, starting from zero.
func Reduce[T, A any](s Seq[T], f func(A, T) A, zero A) A {
	return dispatch(s, "reduce", ReduceArgs[T, A]{Data: s.ToSlice(), Fn: f, Zero: zero},
		func(in any) (any, error) {
			args := in.(ReduceArgs[T, A])
			acc := args.Zero
			for _, x := range args.Data {
				acc = args.Fn(acc, x)
			}
			return acc, nil
		}).(A)
}

// MapFilter applies f to every element and keeps the results pred accepts,
// in a single traversal.
func (s Seq[T]) MapFilter(f func(T) T, pred func(T) bool) Seq[T] {
	start := time.Now()
	out := dispatch(s, "mapFilter", MapFilterArgs[T]{Data: s.ToSlice(), Fn: f, Pred: pred},
		func(in any) (any, error) {
			args := in.(MapFilterArgs[T])
			kept := make([]T, 0, len(args.Data))
			for _, x := range args.Data {
				mapped := args.Fn(x)
				if args.Pred(mapped) {
					kept = append(kept, mapped)
				}
			}
			return kept, nil
		}).([]T)
	t := s.rebuilt(out)
	t.record("mapFilter", start)
	return t
}

// MapReduce applies m to every element and folds the results, in a single
// traversal.
func MapReduce[T, A any](s Seq[T], m func(T) T, f func(A, T) A, zero A) A {
	return dispatch(s, "mapReduce", MapReduceArgs[T, A]{Data: s.ToSlice(), Map: m, Fn: f, Zero: zero},
		func(in any) (any, error) {
			args := in.(MapReduceArgs[T, A])
			acc := args.Zero
			for _, x := range args.Data {
				acc = args.Fn(acc, args.Map(x))
			}
			return acc, nil
		}).(A)
}

// FilterReduce folds only the elements pred accepts, in a single traversal.
func FilterReduce[T, A any](s Seq[T], pred func(T) bool, f func(A, T) A, zero A) A {
	return dispatch(s, "filterReduce", FilterReduceArgs[T, A]{Data: s.ToSlice(), Pred: pred, Fn: f, Zero: zero},
		func(in any) (any, error) {
			args := in.(FilterReduceArgs[T, A])
			acc := args.Zero
			for _, x := range args.Data {
				if args.Pred(x) {
					acc = args.Fn(acc, x)
				}
			}
			return acc, nil
		}).(A)
}

// MapFilterReduce applies m, filters by pred and folds, in a single
// traversal.
func MapFilterReduce[T, A any](s Seq[T], m func(T) T, pred func(T) bool, f func(A, T) A, zero A) A {
	return dispatch(s, "mapFilterReduce",
		MapFilterReduceArgs[T, A]{Data: s.ToSlice(), Map: m, Pred: pred, Fn: f, Zero: zero},
		func(in any) (any, error) {
			args := in.(MapFilterReduceArgs[T, A])
			acc := args.Zero
			for _, x := range args.Data {
				mapped := args.Map(x)
				if args.Pred(mapped) {
					acc = args.Fn(acc, mapped)
				}
			}
			return acc, nil
		}).(A)
}

// Sort returns a sequence sorted by less. The sort is stable, so results
// are deterministic; accelerated implementations must match it exactly.
func (s Seq[T]) Sort(less func(a, b T) bool) Seq[T] {
	start := time.Now()
	out := dispatch(s, "sort", SortArgs[T]{Data: s.ToSlice(), Less: less},
		func(in any) (any, error) {
			args := in.(SortArgs[T])
			sorted := make([]T, len(args.Data))
			copy(sorted, args.Data)
			sort.SliceStable(sorted, func(i, j int) bool { return args.Less(sorted[i], sorted[j]) })
			return sorted, nil
		}).([]T)
	t := s.rebuilt(out)
	t.record("sort", start)
	return t
}

// Find returns the first element pred accepts.
func (s Seq[T]) Find(pred func(T) bool) maybe.Maybe[T] {
	found := maybe.Nothing[T]()
	s.Each(func(_ int, v T) bool {
		if pred(v) {
			found = maybe.Just(v)
			return false
		}
		return true
	})
	return found
}

// FindIndex returns the index of the first element pred accepts, or -1.
func (s Seq[T]) FindIndex(pred func(T) bool) int {
	index := -1
	s.Each(func(i int, v T) bool {
		if pred(v) {
			index = i
			return false
		}
		return true
	})
	return index
}

// rebuilt materializes xs as the follow-up incarnation of s, re-running the
// representation selector for the new length.
func (s Seq[T]) rebuilt(xs []T) Seq[T] {
	t := s
	if profileFor[T]() == ProfileUnknown { // dynamic elements may have changed kind
		t.profile = ProfileUnknown
		for _, x := range xs {
			t.profile = t.profile.merge(classifyElem(x))
		}
	}
	target := t.cfg.selectRep(len(xs), t.profile)
	t.ensurePool(target)
	t.store = buildStore(target, xs, t.cfg, t.pool)
	return t
}
