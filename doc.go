/*
Package reduct provides an adaptive immutable sequence.

A Seq behaves like a persistent list: every operation returns a new
incarnation and leaves the original untouched, with structure shared
between incarnations wherever possible. Under the hood a Seq picks one of
five backing representations (inline block, flat array, chunked list,
bit-partitioned trie vector or hashed trie vector) based on its size and
element profile, and transitions between them transparently as it grows
and shrinks. Clients observe identical behaviour regardless of the
representation currently backing a sequence.

Batched edits go through a transient context (see Seq.Transient), which
claims exclusive edit rights, mutates in place for the duration of the
batch and seals the result back into an immutable Seq.

Bulk operations (map, filter, reduce and their fused forms) can be routed
through registered accelerators; see package accel. Dispatch is governed
by a per-operation tiering policy and falls back to the pure
implementation transparently, so acceleration never changes results, only
latency.
*/
package reduct

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'reduct.seq'.
func tracer() tracing.Trace {
	return tracing.Select("reduct.seq")
}
