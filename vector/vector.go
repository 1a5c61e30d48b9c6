package vector

import (
	"fmt"

	"github.com/koficodedat/reduct/maybe"
)

// Vector is an immutable persistent sequence of elements of type T.
// The zero value is an empty vector, ready to use.
type Vector[T any] struct {
	props
	length uint32
	tail   []T
	root   *vnode[T]
}

// Immutable creates an empty vector with options, if you need any.
//
//	vec := vector.Immutable[int](vector.DegreeExponent(5))
func Immutable[T any](opts ...Option) Vector[T] {
	v := Vector[T]{}
	for _, option := range opts {
		v.props = option.config(v.props)
	}
	return v
}

// FromSlice creates a vector holding the elements of xs.
func FromSlice[T any](xs []T, opts ...Option) Vector[T] {
	t := Immutable[T](opts...).Transient()
	for _, x := range xs {
		t.Push(x)
	}
	return t.Persistent()
}

// Option is a type to help initializing vectors at creation time.
type Option struct {
	config func(props) props
}

// DegreeExponent is an option to indirectly set the degree of the underlying
// trie for a vector. The degree of the trie will be 2^exp. Accepted exponents
// are [1…5]; default is 5, i.e. a degree of 32.
func DegreeExponent(n int) Option {
	conf := func(p props) props {
		if n <= 0 {
			n = 1
		} else if n > 5 {
			n = 5
		}
		p = props{bits: uint32(n)}
		p.degree = 1 << p.bits
		p.mask = p.degree - 1
		return p
	}
	return Option{config: conf}
}

// --- API -------------------------------------------------------------------

// Len returns the number of elements in the vector.
func (v Vector[T]) Len() int {
	return int(v.length)
}

// Last returns the last element, if any.
func (v Vector[T]) Last() maybe.Maybe[T] {
	if len(v.tail) == 0 {
		return maybe.Nothing[T]()
	}
	return maybe.Just(v.tail[len(v.tail)-1])
}

// Get returns the element at index i. i must be within [0, Len).
func (v Vector[T]) Get(i int) T {
	assertThat(i >= 0 && uint32(i) < v.length, fmt.Sprintf("vector index out of bounds: %d with length %d", i, v.length))
	v.props = v.props.init()
	if uint32(i) >= v.tailOffset() {
		return v.tail[uint32(i)&v.mask]
	}
	node := v.root
	for level := v.shift; level > 0; level -= v.bits {
		node = node.children[(uint32(i)>>level)&v.mask]
	}
	return node.leafs[uint32(i)&v.mask]
}

// Set returns a copy of the vector with index i replaced by value. Only the
// nodes on the path from the root to the changed leaf are copied; every
// sibling subtree is shared with the original.
func (v Vector[T]) Set(i int, value T) Vector[T] {
	assertThat(i >= 0 && uint32(i) < v.length, fmt.Sprintf("vector index out of bounds: %d with length %d", i, v.length))
	v.props = v.props.init()
	if uint32(i) >= v.tailOffset() {
		newTail := cloneTail(v.tail, len(v.tail))
		newTail[uint32(i)&v.mask] = value
		return Vector[T]{length: v.length, props: v.props, root: v.root, tail: newTail}
	}
	newRoot := v.root.cloneFor(nil)
	node := newRoot
	for level := v.shift; level > 0; level -= v.bits {
		subidx := (uint32(i) >> level) & v.mask
		child := node.children[subidx].cloneFor(nil)
		node.children[subidx] = child
		node = child
	}
	node.leafs[uint32(i)&v.mask] = value
	return Vector[T]{length: v.length, props: v.props, root: newRoot, tail: v.tail}
}

// Push returns a copy of the vector with value appended.
func (v Vector[T]) Push(value T) Vector[T] {
	v.props = v.props.init()
	if !v.tailFull() { // just append value to tail
		newTail := cloneTail(v.tail, len(v.tail)+1)
		newTail[len(newTail)-1] = value
		return Vector[T]{length: v.length + 1, props: v.props, root: v.root, tail: newTail}
	}
	// tail is full ⇒ have to move tail into the trie
	newTail := []T{value}
	if v.root == nil { // tail becomes the root leaf
		assertThat(v.length == v.degree, "inconsistency: expected trie to be empty with a full tail")
		leaf := newLeaf(v.tail, nil)
		return Vector[T]{length: v.length + 1, props: v.props.withShift(0), root: leaf, tail: newTail}
	}
	trieSize := v.length - v.degree
	if trieSize == 1<<(v.shift+v.bits) { // root is full ⇒ one more level, increment shift
		tracer().Debugf("trie root full at size %d, growing to shift %d", trieSize, v.shift+v.bits)
		newRoot := emptyNode[T](v.degree, nil)
		newRoot.children[0] = v.root
		newRoot.children[1] = newPath(v.shift, v.bits, v.degree, v.tail, nil)
		return Vector[T]{length: v.length + 1, props: v.props.withShift(v.shift + v.bits), root: newRoot, tail: newTail}
	}
	// still space in the root's subtree
	newRoot := v.pushLeaf(trieSize, nil)
	return Vector[T]{length: v.length + 1, props: v.props, root: newRoot, tail: newTail}
}

// pushLeaf path-copies the trie, hanging the full tail in as the leaf
// starting at index i.
func (v Vector[T]) pushLeaf(i uint32, owner *token) *vnode[T] {
	newRoot := v.root.cloneFor(owner)
	node := newRoot
	for level := v.shift; level > v.bits; level -= v.bits {
		subidx := (i >> level) & v.mask
		child := node.children[subidx]
		if child == nil {
			node.children[subidx] = newPath(level-v.bits, v.bits, v.degree, v.tail, owner)
			return newRoot
		}
		child = child.cloneFor(owner)
		node.children[subidx] = child
		node = child
	}
	node.children[(i>>v.bits)&v.mask] = newLeaf(v.tail, owner)
	return newRoot
}

// Pop returns a copy of the vector with the last element removed.
func (v Vector[T]) Pop() Vector[T] {
	assertThat(v.length > 0, "attempt to remove item from empty vector")
	v.props = v.props.init()
	if v.length == 1 {
		return Vector[T]{props: v.props.withShift(0)}
	}
	if ((v.length - 1) & v.mask) > 0 { // tail keeps at least one element
		newTail := cloneTail(v.tail, len(v.tail)-1)
		return Vector[T]{length: v.length - 1, props: v.props, root: v.root, tail: newTail}
	}
	// tail empties ⇒ pull the trie's last leaf out as the new tail
	newTrieSize := v.length - v.degree - 1
	if newTrieSize == 0 { // root vanishes into tail
		w := Vector[T]{length: v.length - 1, props: v.props, root: nil, tail: v.root.leafs}
		w.shift = 0
		return w
	}
	if newTrieSize == 1<<v.shift { // can lower the trie's height
		return v.lowerTrie()
	}
	newRoot, leaf := v.dropLastLeaf(v.root, v.shift, v.length-2, nil)
	return Vector[T]{length: v.length - 1, props: v.props, root: newRoot, tail: leaf}
}

func (v Vector[T]) lowerTrie() Vector[T] {
	lowerShift := v.shift - v.bits
	newRoot := v.root.children[0]
	// the leaf below children[1] becomes the new tail
	node := v.root.children[1]
	for level := lowerShift; level > 0; level -= v.bits {
		node = node.children[0]
	}
	w := Vector[T]{length: v.length - 1, props: v.props, root: newRoot, tail: node.leafs}
	w.shift = lowerShift
	return w
}

// dropLastLeaf path-copies the subtree with the leaf holding index i
// removed, and returns the removed leaf's elements. A subtree that becomes
// empty is replaced by nil.
func (v Vector[T]) dropLastLeaf(node *vnode[T], level, i uint32, owner *token) (*vnode[T], []T) {
	if level == 0 {
		return nil, node.leafs
	}
	subidx := (i >> level) & v.mask
	child, leaf := v.dropLastLeaf(node.children[subidx], level-v.bits, i, owner)
	if child == nil && subidx == 0 {
		return nil, leaf
	}
	cow := node.cloneFor(owner)
	cow.children[subidx] = child
	return cow, leaf
}

// Slice returns a vector covering [start, end). Bounds must satisfy
// 0 ≤ start ≤ end ≤ Len.
func (v Vector[T]) Slice(start, end int) Vector[T] {
	assertThat(start >= 0 && start <= end && end <= int(v.length),
		fmt.Sprintf("slice bounds out of range: [%d:%d] with length %d", start, end, v.length))
	t := Vector[T]{props: v.props}.Transient()
	v.Each(func(i int, x T) bool {
		if i >= end {
			return false
		}
		if i >= start {
			t.Push(x)
		}
		return true
	})
	return t.Persistent()
}

// Each calls f for every element in order until f returns false.
func (v Vector[T]) Each(f func(i int, x T) bool) {
	i := 0
	if v.root != nil && !v.root.each(&i, f) {
		return
	}
	for _, x := range v.tail {
		if !f(i, x) {
			return
		}
		i++
	}
}

func (node *vnode[T]) each(i *int, f func(int, T) bool) bool {
	if node.leaf() {
		for _, x := range node.leafs {
			if !f(*i, x) {
				return false
			}
			*i = *i + 1
		}
		return true
	}
	for _, child := range node.children {
		if child == nil {
			return true // nil children only follow the used region
		}
		if !child.each(i, f) {
			return false
		}
	}
	return true
}

func (v Vector[T]) tailOffset() uint32 {
	return (v.length - 1) &^ v.mask
}

func (v Vector[T]) tailFull() bool {
	return len(v.tail) >= int(v.degree)
}
