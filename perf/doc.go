/*
Package perf declares the narrow recording interface through which the
sequence core reports performance observations (operation timings, pool
reuse, representation transitions) to an external profiling collaborator.

The core only ever calls Recorder.Record and never depends on a result;
recording is fire-and-forget. Sampling-rate gating, aggregation and any
persistence are the collaborator's business, not ours.
*/
package perf

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'reduct.perf'.
func tracer() tracing.Trace {
	return tracing.Select("reduct.perf")
}
