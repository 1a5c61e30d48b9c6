/*
Package hamt implements an immutable vector backed by a hash array mapped
trie.

Positions are looked up by a scrambled (hashed) copy of the index, and
inner nodes are bitmap-compressed: a node stores a 32-bit occupancy bitmap
and only the children that actually exist, with a child's slot computed by
counting the set bits below its bitmap position. Sparse and very large
sequences therefore stay shallow without dense reallocation.

Like the dense trie vector, all operations are persistent: an edit copies
the nodes on the path to the affected entry and shares everything else
with the original.
*/
package hamt

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'reduct.hamt'.
func tracer() tracing.Trace {
	return tracing.Select("reduct.hamt")
}
