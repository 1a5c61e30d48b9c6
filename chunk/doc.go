/*
Package chunk provides fixed-capacity storage blocks and a recycling pool
for them.

Chunks are the building blocks of the chunked sequence representation
(package chunked). Growth and shrinkage at chunk granularity cause a lot of
short-lived block allocations; the pool keeps released blocks on a free
list so that the next acquisition reuses memory instead of allocating.

Pools are not safe for concurrent use. The sequence core runs in a
single-threaded cooperative model; a multi-threaded host must guard the
pool itself.
*/
package chunk

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'reduct.chunk'.
func tracer() tracing.Trace {
	return tracing.Select("reduct.chunk")
}
