/*
Package chunked implements an immutable sequence backed by a directory of
fixed-capacity chunks.

The representation favors work at the edges: append and prepend touch only
the edge chunk, acquiring a fresh block from a pool when the edge is full.
"Modification" has copy-on-write behaviour at chunk granularity: an edit
clones the affected chunk and the chunk directory, sharing every other
chunk with the original, which stays unchanged.

Indexed access scans the chunk directory; the representation is meant for
sequential growth/shrink patterns, not for random indexing into very large
sequences (the trie-backed representations cover that).
*/
package chunked

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'reduct.chunked'.
func tracer() tracing.Trace {
	return tracing.Select("reduct.chunked")
}
