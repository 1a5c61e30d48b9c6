package accel

// Profile describes the expected performance of an accelerator relative to
// the pure fallback. It is read-only after construction.
type Profile struct {
	EstimatedSpeedup float64 // 1.0 means parity with the fallback
}

// Accelerator is one implementation of an operation. Implementations are
// tagged at registration time as native-backed or pure-fallback; callers
// never learn which one ran, only the profile hints at it.
type Accelerator interface {
	Available() bool
	Execute(input any) (any, error)
	Profile() Profile
}

// funcAccelerator adapts a plain function.
type funcAccelerator struct {
	fn        func(input any) (any, error)
	profile   Profile
	available func() bool
}

// Func wraps fn as an accelerator with the given estimated speedup.
// available gates the accelerator at call time; a nil available means
// always available.
func Func(fn func(input any) (any, error), speedup float64, available func() bool) Accelerator {
	return funcAccelerator{fn: fn, profile: Profile{EstimatedSpeedup: speedup}, available: available}
}

// Fallback wraps a pure implementation of an operation. It always reports
// available and parity speedup.
func Fallback(fn func(input any) (any, error)) Accelerator {
	return funcAccelerator{fn: fn, profile: Profile{EstimatedSpeedup: 1.0}}
}

func (a funcAccelerator) Available() bool {
	if a.available == nil {
		return true
	}
	return a.available()
}

func (a funcAccelerator) Execute(input any) (any, error) {
	return a.fn(input)
}

func (a funcAccelerator) Profile() Profile {
	return a.profile
}
