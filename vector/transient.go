package vector

import "fmt"

// TVector is a single-owner mutable view over a vector, used for batched
// edits. A transient claims nodes by stamping them with its own token on
// first write; claimed nodes are edited in place afterwards, unclaimed ones
// are cloned first. Nodes still reachable from the source vector are
// therefore never touched.
//
// A transient is sealed by Persistent, which hands the current state back
// as an immutable vector. Using a sealed transient is a programming error
// and panics; the sequence layer above maps this contract onto ownership
// errors before a call can ever get this far. TVector is not safe for
// concurrent use.
type TVector[T any] struct {
	props
	length uint32
	tail   []T
	root   *vnode[T]
	tok    *token
}

// Transient opens a mutable view over v. The vector itself stays valid and
// unchanged regardless of what happens to the view.
func (v Vector[T]) Transient() *TVector[T] {
	p := v.props.init()
	t := &TVector[T]{props: p, length: v.length, root: v.root, tok: &token{}}
	t.tail = make([]T, len(v.tail), p.degree)
	copy(t.tail, v.tail)
	return t
}

// Len returns the current number of elements.
func (t *TVector[T]) Len() int {
	return int(t.length)
}

// Get returns the element at index i.
func (t *TVector[T]) Get(i int) T {
	t.ensureAlive()
	assertThat(i >= 0 && uint32(i) < t.length, fmt.Sprintf("vector index out of bounds: %d with length %d", i, t.length))
	if uint32(i) >= t.tailOffset() {
		return t.tail[uint32(i)&t.mask]
	}
	node := t.root
	for level := t.shift; level > 0; level -= t.bits {
		node = node.children[(uint32(i)>>level)&t.mask]
	}
	return node.leafs[uint32(i)&t.mask]
}

// Set overwrites index i with value, claiming the nodes on the path.
func (t *TVector[T]) Set(i int, value T) {
	t.ensureAlive()
	assertThat(i >= 0 && uint32(i) < t.length, fmt.Sprintf("vector index out of bounds: %d with length %d", i, t.length))
	if uint32(i) >= t.tailOffset() {
		t.tail[uint32(i)&t.mask] = value
		return
	}
	t.root = t.claim(t.root)
	node := t.root
	for level := t.shift; level > 0; level -= t.bits {
		subidx := (uint32(i) >> level) & t.mask
		child := t.claim(node.children[subidx])
		node.children[subidx] = child
		node = child
	}
	node.leafs[uint32(i)&t.mask] = value
}

// Push appends value.
func (t *TVector[T]) Push(value T) {
	t.ensureAlive()
	if len(t.tail) < int(t.degree) { // tail is owned, append in place
		t.tail = append(t.tail, value)
		t.length++
		return
	}
	// tail is full ⇒ move it into the trie
	switch trieSize := t.length - t.degree; {
	case t.root == nil:
		t.root = newLeaf(t.tail, t.tok)
		t.shift = 0
	case trieSize == 1<<(t.shift+t.bits): // root is full ⇒ one more level
		newRoot := emptyNode[T](t.degree, t.tok)
		newRoot.children[0] = t.root
		newRoot.children[1] = newPath(t.shift, t.bits, t.degree, t.tail, t.tok)
		t.root = newRoot
		t.shift += t.bits
	default:
		t.pushLeaf(trieSize)
	}
	newTail := make([]T, 1, t.degree)
	newTail[0] = value
	t.tail = newTail
	t.length++
}

func (t *TVector[T]) pushLeaf(i uint32) {
	t.root = t.claim(t.root)
	node := t.root
	for level := t.shift; level > t.bits; level -= t.bits {
		subidx := (i >> level) & t.mask
		child := node.children[subidx]
		if child == nil {
			node.children[subidx] = newPath(level-t.bits, t.bits, t.degree, t.tail, t.tok)
			return
		}
		child = t.claim(child)
		node.children[subidx] = child
		node = child
	}
	node.children[(i>>t.bits)&t.mask] = newLeaf(t.tail, t.tok)
}

// Pop removes the last element.
func (t *TVector[T]) Pop() {
	t.ensureAlive()
	assertThat(t.length > 0, "attempt to remove item from empty vector")
	if t.length == 1 {
		t.root = nil
		t.shift = 0
		t.tail = t.tail[:0]
		t.length = 0
		return
	}
	if ((t.length - 1) & t.mask) > 0 { // tail keeps at least one element
		t.tail = t.tail[:len(t.tail)-1]
		t.length--
		return
	}
	// tail empties ⇒ pull the trie's last leaf out as the new tail
	newTrieSize := t.length - t.degree - 1
	switch {
	case newTrieSize == 0:
		t.adoptTail(t.root.leafs)
		t.root = nil
		t.shift = 0
	case newTrieSize == 1<<t.shift: // lower the trie's height
		lowerShift := t.shift - t.bits
		node := t.root.children[1]
		for level := lowerShift; level > 0; level -= t.bits {
			node = node.children[0]
		}
		t.adoptTail(node.leafs)
		t.root = t.root.children[0]
		t.shift = lowerShift
	default:
		v := Vector[T]{props: t.props, length: t.length, root: t.root, tail: t.tail}
		newRoot, leaf := v.dropLastLeaf(t.root, t.shift, t.length-2, t.tok)
		t.adoptTail(leaf)
		t.root = newRoot
	}
	t.length--
}

// adoptTail copies leaf elements into an owned tail block.
func (t *TVector[T]) adoptTail(leaf []T) {
	newTail := make([]T, len(leaf), t.degree)
	copy(newTail, leaf)
	t.tail = newTail
}

// Persistent seals the transient and returns its state as an immutable
// vector. The transient must not be used afterwards.
func (t *TVector[T]) Persistent() Vector[T] {
	t.ensureAlive()
	t.tok = nil // leaves stale owner marks behind; no future token compares equal
	tail := make([]T, len(t.tail))
	copy(tail, t.tail)
	return Vector[T]{props: t.props, length: t.length, root: t.root, tail: tail}
}

func (t *TVector[T]) tailOffset() uint32 {
	return (t.length - 1) &^ t.mask
}

// claim makes a node editable by this transient, cloning it on first touch.
func (t *TVector[T]) claim(node *vnode[T]) *vnode[T] {
	if node.owner == t.tok {
		return node
	}
	return node.cloneFor(t.tok)
}

func (t *TVector[T]) ensureAlive() {
	assertThat(t.tok != nil, "use of a transient after it has been sealed")
}
