package reduct

import (
	"reflect"

	"github.com/koficodedat/reduct/accel"
	"github.com/koficodedat/reduct/perf"
)

// ElementProfile classifies the elements of a sequence. The selector
// prefers flat storage for homogeneous scalar profiles and indirect
// storage otherwise.
type ElementProfile int

const (
	ProfileUnknown ElementProfile = iota
	ProfileNumeric
	ProfileString
	ProfileObjectRef
	ProfileMixed
)

func (p ElementProfile) String() string {
	switch p {
	case ProfileNumeric:
		return "numeric"
	case ProfileString:
		return "string"
	case ProfileObjectRef:
		return "object-reference"
	case ProfileMixed:
		return "mixed"
	}
	return "unknown"
}

// scalar is true for profiles that pack well into flat arrays.
func (p ElementProfile) scalar() bool {
	return p == ProfileNumeric || p == ProfileString
}

// merge combines the profile of further elements into p.
func (p ElementProfile) merge(q ElementProfile) ElementProfile {
	switch {
	case p == ProfileUnknown:
		return q
	case q == ProfileUnknown || p == q:
		return p
	}
	return ProfileMixed
}

// profileFor classifies a static element type. Interface element types get
// ProfileUnknown here and are refined per value on ingest.
func profileFor[T any]() ElementProfile {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return profileForKind(t.Kind())
}

func profileForKind(k reflect.Kind) ElementProfile {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128, reflect.Bool:
		return ProfileNumeric
	case reflect.String:
		return ProfileString
	case reflect.Interface, reflect.Invalid:
		return ProfileUnknown
	}
	return ProfileObjectRef
}

// classify refines an interface-typed element by its dynamic value.
func classify(v any) ElementProfile {
	if v == nil {
		return ProfileObjectRef
	}
	return profileForKind(reflect.TypeOf(v).Kind())
}

// --- Configuration ---------------------------------------------------------

// Config carries the tunable parameters of a sequence. Thresholds are
// deliberate configuration, not hardcoded constants; the defaults are
// starting points for workloads that have not been measured.
type Config struct {
	// SmallMax is the largest length backed by the inline block. Clamped
	// to the inline capacity.
	SmallMax int
	// ChunkThreshold is the largest length backed by a flat array (for
	// scalar profiles; reference profiles go chunked directly).
	ChunkThreshold int
	// VectorThreshold is the largest length backed by the chunked list.
	VectorThreshold int
	// HamtThreshold is the largest length backed by the dense trie vector;
	// above it the hashed trie takes over.
	HamtThreshold int
	// Hysteresis is the margin by which a shrinking sequence must undercut
	// a boundary before the selector downgrades the representation.
	// Prevents representation thrashing at a boundary.
	Hysteresis int
	// ChunkSize is the capacity of pooled chunks.
	ChunkSize int
	// PoolRetention bounds the free chunks a pool keeps around.
	PoolRetention int
	// DegreeExponent sets the trie vector's branching to 2^DegreeExponent.
	DegreeExponent int
	// Thresholds feed the tiering policy for accelerated bulk operations.
	Thresholds accel.Thresholds

	dispatcher *accel.Dispatcher
	recorder   perf.Recorder
}

func defaultConfig() *Config {
	return &Config{
		SmallMax:        8,
		ChunkThreshold:  64,
		VectorThreshold: 1024,
		HamtThreshold:   1 << 16,
		Hysteresis:      8,
		ChunkSize:       32,
		PoolRetention:   64,
		DegreeExponent:  5,
		Thresholds:      accel.DefaultThresholds(),
		recorder:        perf.Nop(),
	}
}

// Option is a type to help initializing sequences at creation time.
type Option func(*Config)

// WithThresholds overrides the representation boundaries.
func WithThresholds(smallMax, chunkThreshold, vectorThreshold, hamtThreshold int) Option {
	return func(c *Config) {
		if smallMax > 0 {
			c.SmallMax = min(smallMax, smallCap-1)
		}
		if chunkThreshold > c.SmallMax {
			c.ChunkThreshold = chunkThreshold
		}
		if vectorThreshold > c.ChunkThreshold {
			c.VectorThreshold = vectorThreshold
		}
		if hamtThreshold > c.VectorThreshold {
			c.HamtThreshold = hamtThreshold
		}
	}
}

// WithHysteresis sets the downgrade margin.
func WithHysteresis(n int) Option {
	return func(c *Config) {
		if n >= 0 {
			c.Hysteresis = n
		}
	}
}

// WithChunkSize sets the capacity of pooled chunks.
func WithChunkSize(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.ChunkSize = n
		}
	}
}

// WithDegreeExponent sets the trie vector's branching factor to 2^n.
func WithDegreeExponent(n int) Option {
	return func(c *Config) {
		if n >= 1 && n <= 5 {
			c.DegreeExponent = n
		}
	}
}

// WithDispatcher routes bulk operations through d. Without a dispatcher
// every bulk operation runs its pure implementation directly.
func WithDispatcher(d *accel.Dispatcher) Option {
	return func(c *Config) {
		c.dispatcher = d
	}
}

// WithRecorder wires the profiling collaborator into the sequence; it
// receives post-operation samples, pool hit/miss samples and
// representation-transition samples.
func WithRecorder(rec perf.Recorder) Option {
	return func(c *Config) {
		if rec != nil {
			c.recorder = rec
		}
	}
}

// WithTieringThresholds overrides the tiering policy cut-offs.
func WithTieringThresholds(th accel.Thresholds) Option {
	return func(c *Config) {
		c.Thresholds = th
	}
}

// --- Selection -------------------------------------------------------------

// selectRep returns the representation that should back a sequence of the
// given length and profile.
func (c *Config) selectRep(length int, profile ElementProfile) Representation {
	switch {
	case length <= c.SmallMax:
		return RepSmall
	case length <= c.ChunkThreshold && profile.scalar():
		return RepArray
	case length <= c.VectorThreshold:
		return RepChunked
	case length <= c.HamtThreshold:
		return RepVector
	}
	return RepHamt
}

// reselect decides whether a sequence should transition away from its
// current representation after a size change. Upgrades happen as soon as a
// boundary is crossed; downgrades only once the length undercuts the
// boundary by the hysteresis margin.
func (c *Config) reselect(length int, profile ElementProfile, current Representation) (Representation, bool) {
	target := c.selectRep(length, profile)
	if target == current {
		return current, false
	}
	if target < current {
		// shrinking: pretend the sequence were Hysteresis longer; only if
		// the smaller representation still wins is the downgrade real
		if c.selectRep(length+c.Hysteresis, profile) >= current {
			return current, false
		}
	}
	return target, true
}
