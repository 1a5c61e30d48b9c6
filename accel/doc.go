/*
Package accel provides a uniform abstraction over accelerated operation
implementations, a process-wide registry of them, and the tiering policy
that decides per call whether acceleration is worth taking.

An Accelerator wraps either a natively accelerated implementation or a
pure fallback behind the same three capabilities: availability, execution
and a performance profile. The registry catalogs accelerators under a
(domain, type, operation) key. Dispatching an operation consults the
tiering policy first: inputs below the configured thresholds run the pure
implementation, since crossing into an accelerator has a fixed cost that
small inputs never amortize. Unavailability of an accelerator is never an
error; dispatch falls back to the pure implementation transparently, and
both paths are required to produce identical results.
*/
package accel

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'reduct.accel'.
func tracer() tracing.Trace {
	return tracing.Select("reduct.accel")
}
