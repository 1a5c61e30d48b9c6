package perf

import (
	"sync"
	"time"
)

// Sample is a single performance observation.
type Sample struct {
	Op        string         // operation name, e.g. "map", "pool.get"
	Structure string         // backing structure, e.g. "vector", "chunked"
	Size      int            // input size the operation worked on
	Elapsed   time.Duration  // wall time, zero if not measured
	Meta      map[string]any // optional free-form annotations
}

// Recorder receives samples from the sequence core. Implementations must not
// block; a slow recorder slows every recorded operation.
type Recorder interface {
	Record(s Sample)
}

// --- Implementations -------------------------------------------------------

type nopRecorder struct{}

func (nopRecorder) Record(Sample) {}

// Nop returns a recorder that drops every sample. It is the default
// collaborator wherever none is configured.
func Nop() Recorder {
	return nopRecorder{}
}

type logRecorder struct{}

func (logRecorder) Record(s Sample) {
	tracer().Debugf("perf: %s on %s, size=%d, elapsed=%v", s.Op, s.Structure, s.Size, s.Elapsed)
}

// Log returns a recorder that writes samples to the trace log at debug level.
func Log() Recorder {
	return logRecorder{}
}

// Capture is a recorder that keeps every sample, intended for tests and
// diagnostics. The zero value is ready to use.
type Capture struct {
	mu      sync.Mutex
	samples []Sample
}

func (c *Capture) Record(s Sample) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.samples = append(c.samples, s)
}

// Samples returns a copy of everything recorded so far.
func (c *Capture) Samples() []Sample {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Sample, len(c.samples))
	copy(out, c.samples)
	return out
}

// Count returns the number of samples recorded for the given operation, or
// the total for op == "".
func (c *Capture) Count(op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if op == "" {
		return len(c.samples)
	}
	n := 0
	for _, s := range c.samples {
		if s.Op == op {
			n++
		}
	}
	return n
}
