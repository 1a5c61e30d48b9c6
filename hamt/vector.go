package hamt

import "fmt"

// Vector is an immutable sequence over a hash array mapped trie. The zero
// value is an empty vector, ready to use.
type Vector[T any] struct {
	length uint32
	root   *hnode[T]
}

// Immutable creates an empty vector.
func Immutable[T any]() Vector[T] {
	return Vector[T]{}
}

// FromSlice creates a vector holding the elements of xs.
func FromSlice[T any](xs []T) Vector[T] {
	v := Vector[T]{}
	for _, x := range xs {
		v = v.Push(x)
	}
	return v
}

// Len returns the number of elements in the vector.
func (v Vector[T]) Len() int {
	return int(v.length)
}

// Get returns the element at index i. i must be within [0, Len).
func (v Vector[T]) Get(i int) T {
	assertThat(i >= 0 && uint32(i) < v.length, fmt.Sprintf("vector index out of bounds: %d with length %d", i, v.length))
	key := uint32(i)
	h := scramble(key)
	node := v.root
	for shift := uint32(0); ; shift += bitsPerLevel {
		if node.bucket() {
			for _, e := range node.entries {
				if e.key == key {
					return e.value
				}
			}
			break
		}
		pos := (h >> shift) & levelMask
		if node.bitmap&(1<<pos) == 0 {
			break
		}
		node = node.children[slotFor(node.bitmap, pos)]
	}
	panic(fmt.Sprintf("hamt: entry for index %d missing from trie (length %d)", i, v.length))
}

// Set returns a copy of the vector with index i replaced by value. Only the
// nodes on the path to the entry are copied.
func (v Vector[T]) Set(i int, value T) Vector[T] {
	assertThat(i >= 0 && uint32(i) < v.length, fmt.Sprintf("vector index out of bounds: %d with length %d", i, v.length))
	key := uint32(i)
	root := assoc(v.root, 0, scramble(key), entry[T]{key: key, value: value})
	return Vector[T]{length: v.length, root: root}
}

// Push returns a copy of the vector with value appended.
func (v Vector[T]) Push(value T) Vector[T] {
	key := v.length
	root := assoc(v.root, 0, scramble(key), entry[T]{key: key, value: value})
	return Vector[T]{length: v.length + 1, root: root}
}

// Pop returns a copy of the vector with the last element removed.
func (v Vector[T]) Pop() Vector[T] {
	assertThat(v.length > 0, "attempt to remove item from empty vector")
	key := v.length - 1
	root := dissoc(v.root, 0, scramble(key), key)
	return Vector[T]{length: v.length - 1, root: root}
}

// Slice returns a vector covering [start, end). Bounds must satisfy
// 0 ≤ start ≤ end ≤ Len.
func (v Vector[T]) Slice(start, end int) Vector[T] {
	assertThat(start >= 0 && start <= end && end <= int(v.length),
		fmt.Sprintf("slice bounds out of range: [%d:%d] with length %d", start, end, v.length))
	w := Vector[T]{}
	for i := start; i < end; i++ {
		w = w.Push(v.Get(i))
	}
	return w
}

// Each calls f for every element in index order until f returns false.
// Trie order is hash order, so traversal walks indices explicitly.
func (v Vector[T]) Each(f func(i int, x T) bool) {
	for i := 0; i < int(v.length); i++ {
		if !f(i, v.Get(i)) {
			return
		}
	}
}

// assoc inserts or replaces an entry, path-copying from node downwards.
func assoc[T any](node *hnode[T], shift, h uint32, e entry[T]) *hnode[T] {
	if node == nil {
		return newBucket(e)
	}
	if node.bucket() {
		for idx, x := range node.entries {
			if x.key == e.key { // replace in a copied bucket
				cow := node.cloneBucket()
				cow.entries[idx] = e
				return cow
			}
		}
		if shift > maxShift || scramble(node.entries[0].key) == h {
			// exhausted hash bits or full-hash collision: chain
			tracer().Debugf("chaining entry for key %d at shift %d", e.key, shift)
			cow := node.cloneBucket()
			cow.entries = append(cow.entries, e)
			return cow
		}
		// split the bucket one level down and re-add everything
		inner := &hnode[T]{children: []*hnode[T]{}}
		for _, x := range node.entries {
			inner = assoc(inner, shift, scramble(x.key), x)
		}
		return assoc(inner, shift, h, e)
	}
	pos := (h >> shift) & levelMask
	if node.bitmap&(1<<pos) == 0 {
		return node.withChildInserted(pos, newBucket(e))
	}
	slot := slotFor(node.bitmap, pos)
	cow := node.cloneInner()
	cow.children[slot] = assoc(node.children[slot], shift+bitsPerLevel, h, e)
	return cow
}

// dissoc removes the entry for key, path-copying from node downwards.
// Subtrees that become empty collapse to nil.
func dissoc[T any](node *hnode[T], shift, h, key uint32) *hnode[T] {
	assertThat(node != nil, "inconsistency: removal walked into a missing subtree")
	if node.bucket() {
		for idx, x := range node.entries {
			if x.key == key {
				if len(node.entries) == 1 {
					return nil
				}
				cow := node.cloneBucket()
				cow.entries = append(cow.entries[:idx], cow.entries[idx+1:]...)
				return cow
			}
		}
		panic(fmt.Sprintf("hamt: entry for key %d missing from bucket", key))
	}
	pos := (h >> shift) & levelMask
	assertThat(node.bitmap&(1<<pos) != 0, "inconsistency: removal key not present in bitmap")
	slot := slotFor(node.bitmap, pos)
	child := dissoc(node.children[slot], shift+bitsPerLevel, h, key)
	if child == nil {
		return node.withChildRemoved(pos)
	}
	cow := node.cloneInner()
	cow.children[slot] = child
	return cow
}
