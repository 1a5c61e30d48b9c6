package hamt

import (
	"fmt"
	"math/bits"
)

const (
	bitsPerLevel uint32 = 5
	degree       uint32 = 1 << bitsPerLevel // 32
	levelMask    uint32 = degree - 1        // 0x1F
	maxShift     uint32 = 30                // deepest level; below it buckets chain
)

// entry associates a sequence index with its element.
type entry[T any] struct {
	key   uint32 // the original index
	value T
}

// hnode is either an inner node (bitmap + packed children) or a bucket
// (entries). Buckets normally hold one entry; below maxShift they chain
// colliding entries for comparison one by one.
type hnode[T any] struct {
	bitmap   uint32
	children []*hnode[T]
	entries  []entry[T]
}

func (node *hnode[T]) bucket() bool {
	return node.entries != nil
}

// slotFor counts the set bits below pos; this is the packed child index for
// bitmap position pos.
func slotFor(bitmap, pos uint32) int {
	return bits.OnesCount32(bitmap & ((1 << pos) - 1))
}

// scramble avalanches an index into a well-distributed 32-bit hash
// (Wang's integer hash), so that dense index ranges spread over the trie.
func scramble(x uint32) uint32 {
	x = (x ^ 61) ^ (x >> 16)
	x += x << 3
	x ^= x >> 4
	x *= 0x27d4eb2d
	x ^= x >> 15
	return x
}

func newBucket[T any](e entry[T]) *hnode[T] {
	return &hnode[T]{entries: []entry[T]{e}}
}

// cloneInner copies an inner node's bitmap and child directory.
func (node *hnode[T]) cloneInner() *hnode[T] {
	n := &hnode[T]{bitmap: node.bitmap}
	n.children = make([]*hnode[T], len(node.children))
	copy(n.children, node.children)
	return n
}

// cloneBucket copies a bucket's entry chain.
func (node *hnode[T]) cloneBucket() *hnode[T] {
	n := &hnode[T]{}
	n.entries = make([]entry[T], len(node.entries))
	copy(n.entries, node.entries)
	return n
}

// withChildInserted returns a copy of an inner node with a new child spliced
// in at bitmap position pos.
func (node *hnode[T]) withChildInserted(pos uint32, child *hnode[T]) *hnode[T] {
	slot := slotFor(node.bitmap, pos)
	n := &hnode[T]{bitmap: node.bitmap | (1 << pos)}
	n.children = make([]*hnode[T], len(node.children)+1)
	copy(n.children, node.children[:slot])
	n.children[slot] = child
	copy(n.children[slot+1:], node.children[slot:])
	return n
}

// withChildRemoved returns a copy of an inner node with the child at bitmap
// position pos dropped, or nil if it was the last one.
func (node *hnode[T]) withChildRemoved(pos uint32) *hnode[T] {
	if bits.OnesCount32(node.bitmap) == 1 {
		return nil
	}
	slot := slotFor(node.bitmap, pos)
	n := &hnode[T]{bitmap: node.bitmap &^ (1 << pos)}
	n.children = make([]*hnode[T], len(node.children)-1)
	copy(n.children, node.children[:slot])
	copy(n.children[slot:], node.children[slot+1:])
	return n
}

// --- Helpers ---------------------------------------------------------------

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("hamt: "+msg, msgargs...)
		panic(msg)
	}
}
