package chunk

import (
	"github.com/koficodedat/reduct/perf"
)

const (
	defaultChunkSize = 32
	defaultRetention = 64 // free chunks kept before Put starts dropping
)

// Pool recycles chunks of one fixed capacity. Get pops from the free list
// if possible (a "hit") and allocates otherwise (a "miss"); Put pushes a
// released chunk back unless the retention ceiling is reached. Both are O(1).
type Pool[T any] struct {
	size      int
	retention int
	free      []*Chunk[T]
	stats     Stats
	recorder  perf.Recorder
}

// Stats are cumulative pool counters. They have no functional meaning and
// exist for performance diagnostics only.
type Stats struct {
	Hits    uint64 // Get served from the free list
	Misses  uint64 // Get had to allocate
	Returns uint64 // Put accepted a chunk back
	Drops   uint64 // Put discarded a chunk over the retention ceiling
}

// NewPool creates a pool producing chunks with the given capacity.
// A non-positive size selects the default.
func NewPool[T any](size int, opts ...PoolOption[T]) *Pool[T] {
	if size <= 0 {
		size = defaultChunkSize
	}
	p := &Pool[T]{
		size:      size,
		retention: defaultRetention,
		recorder:  perf.Nop(),
	}
	for _, option := range opts {
		option(p)
	}
	return p
}

// PoolOption is a type to help initializing pools at creation time.
type PoolOption[T any] func(*Pool[T])

// Retention sets the ceiling for retained free chunks. Chunks returned
// beyond the ceiling are dropped for the garbage collector to reclaim.
func Retention[T any](n int) PoolOption[T] {
	return func(p *Pool[T]) {
		if n >= 0 {
			p.retention = n
		}
	}
}

// Observer wires a perf recorder into the pool; it receives a sample for
// every hit and miss.
func Observer[T any](rec perf.Recorder) PoolOption[T] {
	return func(p *Pool[T]) {
		if rec != nil {
			p.recorder = rec
		}
	}
}

// ChunkSize returns the capacity of the chunks this pool produces.
func (p *Pool[T]) ChunkSize() int {
	return p.size
}

// Get returns an empty chunk, reusing a released one when available.
func (p *Pool[T]) Get() *Chunk[T] {
	if n := len(p.free); n > 0 {
		c := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		p.stats.Hits++
		p.recorder.Record(perf.Sample{Op: "pool.hit", Structure: "chunk", Size: p.size})
		return c
	}
	p.stats.Misses++
	p.recorder.Record(perf.Sample{Op: "pool.miss", Structure: "chunk", Size: p.size})
	return New[T](p.size)
}

// Put releases a chunk back to the pool. Chunks of a foreign capacity and
// chunks over the retention ceiling are dropped.
func (p *Pool[T]) Put(c *Chunk[T]) {
	if c == nil || c.Cap() != p.size {
		return
	}
	if len(p.free) >= p.retention {
		p.stats.Drops++
		tracer().Debugf("pool retention ceiling %d reached, dropping chunk", p.retention)
		return
	}
	c.reset()
	p.free = append(p.free, c)
	p.stats.Returns++
}

// Stats returns a snapshot of the pool counters.
func (p *Pool[T]) Stats() Stats {
	return p.stats
}
