package vector

import (
	"fmt"
	"strings"
)

const (
	defaultBits uint32 = 5 // will produce nodes with degree 2 ^ 5 = 32
)

// token marks nodes as editable by exactly one transient. Persistent nodes
// carry a nil owner; a transient stamps its own token into every node it
// clones and edits only nodes carrying that token.
type token struct{}

type props struct {
	bits   uint32 // number of bits to use per level
	degree uint32 // degree is always 2 ^ bits
	mask   uint32 // mask is degree - 1, i.e. a bit pattern with trailing 1s of length 'bits'
	shift  uint32 // we do not store the trie height h, but rather bits*(h-1)
}

// init fills in defaults for a zero-valued props, making the zero Vector
// usable without going through Immutable.
func (p props) init() props {
	if p.degree == 0 {
		p.bits = defaultBits
		p.degree = 1 << p.bits
		p.mask = p.degree - 1
	}
	return p
}

func (p props) withShift(shift uint32) props {
	p.shift = shift
	return p
}

// vnode represents a node in the trie a vector is made of. Inner nodes hold
// children, leaf nodes hold elements. A node reachable from two vector
// incarnations is never mutated; edits clone the node first.
type vnode[T any] struct {
	owner    *token // non-nil while editable by a transient
	children []*vnode[T]
	leafs    []T
}

func emptyNode[T any](k uint32, owner *token) *vnode[T] {
	return &vnode[T]{
		owner:    owner,
		children: make([]*vnode[T], int(k)),
	}
}

func newLeaf[T any](tail []T, owner *token) *vnode[T] {
	l := make([]T, len(tail))
	copy(l, tail)
	return &vnode[T]{owner: owner, leafs: l}
}

func (node *vnode[T]) leaf() bool {
	return node.children == nil
}

// cloneFor copies a node, stamping the copy with owner. Pure operations pass
// a nil owner; transients pass their token.
func (node *vnode[T]) cloneFor(owner *token) *vnode[T] {
	n := &vnode[T]{owner: owner}
	if node.leafs != nil {
		n.leafs = make([]T, len(node.leafs))
		copy(n.leafs, node.leafs)
	}
	if node.children != nil {
		n.children = make([]*vnode[T], len(node.children))
		copy(n.children, node.children)
	}
	return n
}

// cloneTail copies tail into a fresh slice of length l.
func cloneTail[T any](tail []T, l int) []T {
	newTail := make([]T, l)
	copy(newTail, tail[:min(l, len(tail))])
	return newTail
}

// newPath wraps the tail as a leaf below `levels/bits` fresh inner nodes.
// newPath(0, …) is the leaf itself.
func newPath[T any](levels, bits, k uint32, tail []T, owner *token) *vnode[T] {
	node := newLeaf(tail, owner)
	for level := levels; level > 0; level -= bits {
		wrap := emptyNode[T](k, owner)
		wrap.children[0] = node
		node = wrap
	}
	return node
}

func (node vnode[T]) String() string {
	b := strings.Builder{}
	b.WriteByte('[')
	if node.leafs != nil {
		for i, l := range node.leafs {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(fmt.Sprintf("%v", l))
		}
	} else {
		for i, c := range node.children {
			if i > 0 {
				b.WriteByte(',')
			}
			if c == nil {
				b.WriteByte('_')
			} else {
				b.WriteString("▪︎")
			}
		}
	}
	b.WriteByte(']')
	return b.String()
}

// --- Helpers ---------------------------------------------------------------

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("vector: "+msg, msgargs...)
		panic(msg)
	}
}
