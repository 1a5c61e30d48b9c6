/*
Package vector implements an immutable persistent vector, designed for
use-cases similar to Go slices.

An immutable persistent vector has copy-on-write behaviour: Each
“modification” of the vector (replacement, push or pop) creates a copy,
leaving the original unmodified. Under the hood, copy-on-write retains most
of the memory held by the original and creates a new incarnation of parts
of the structure only: an edit copies the O(log n) nodes on the path from
the root to the changed leaf and shares every sibling subtree by reference.

The vector is a bit-partitioned trie with a tail block. The last partial
leaf lives outside the trie in the tail, so pushes and pops at the end are
amortized O(1) array work.

For batched edits a vector can be opened as a transient (see Transient),
which trades structural sharing inside the batch for in-place mutation and
seals the result back into an immutable vector.
*/
package vector

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'reduct.vector'.
func tracer() tracing.Trace {
	return tracing.Select("reduct.vector")
}
