package merklebst

import "bytes"

// Tree is an immutable, AVL-balanced Merkle binary search tree over
// ordered byte-string keys. The zero value is not usable; construct one
// with New or NewFromPairs. Every mutating method returns a new *Tree,
// sharing unaffected subtrees with the receiver (spec section 3,
// "Lifecycles").
type Tree struct {
	root   node
	size   int
	hashFn HashFunc
}

// Pair is a key/value input to NewFromPairs.
type Pair struct {
	Key   []byte
	Value []byte
}

type treeConfig struct {
	algorithm Algorithm
	hashFn    HashFunc
}

// Option configures a Tree at construction. The hash algorithm (or a
// user-supplied HashFunc) is a process-wide choice read at tree creation;
// see spec section 5.
type Option func(*treeConfig)

// WithAlgorithm selects one of the built-in digest algorithms. Ignored if
// WithHashFunc is also supplied.
func WithAlgorithm(a Algorithm) Option {
	return func(c *treeConfig) { c.algorithm = a }
}

// WithHashFunc installs a user-supplied digest function, overriding
// WithAlgorithm. It is validated immediately by New/NewFromPairs, which
// are the first genuine use of a freshly configured hasher.
func WithHashFunc(fn HashFunc) Option {
	return func(c *treeConfig) { c.hashFn = fn }
}

func resolveHashFunc(opts ...Option) (HashFunc, error) {
	cfg := &treeConfig{algorithm: SHA256}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.hashFn != nil {
		if err := validateHashFunc(cfg.hashFn); err != nil {
			return nil, err
		}
		return cfg.hashFn, nil
	}
	return cfg.algorithm.hashFunc()
}

// New returns an empty tree configured with the given options. Default
// algorithm is SHA-256.
func New(opts ...Option) (*Tree, error) {
	hashFn, err := resolveHashFunc(opts...)
	if err != nil {
		return nil, err
	}
	return &Tree{hashFn: hashFn}, nil
}

// Size returns the number of leaves (key/value pairs) in the tree.
func (t *Tree) Size() int {
	return t.size
}

// RootHash returns the root's keyHash and true, or ("", false) for an
// empty tree (spec section 4.2: "none" for an empty tree).
func (t *Tree) RootHash() (string, bool) {
	if t.root == nil {
		return "", false
	}
	return t.root.keyHash(), true
}

// Lookup returns the value stored for key, or *ErrKeyNotFound.
func (t *Tree) Lookup(key []byte) ([]byte, error) {
	n := t.root
	for n != nil {
		switch v := n.(type) {
		case *leafNode:
			if bytes.Equal(v.key, key) {
				return v.value, nil
			}
			return nil, &ErrKeyNotFound{Key: key}
		case *innerNode:
			if keyLessEq(key, v.sKey) {
				n = v.left
			} else {
				n = v.right
			}
		}
	}
	return nil, &ErrKeyNotFound{Key: key}
}

// Keys returns every key in the tree, in the in-order traversal order of
// the current structure. Invariant I1 guarantees this order is sorted,
// but spec section 4.2/section 9 call this out explicitly because callers
// should not depend on *which* rotation-dependent shape produced it —
// only that it is in-order.
func (t *Tree) Keys() [][]byte {
	var out [][]byte
	var walk func(node)
	walk = func(n node) {
		switch v := n.(type) {
		case nil:
			return
		case *leafNode:
			out = append(out, v.key)
		case *innerNode:
			walk(v.left)
			walk(v.right)
		}
	}
	walk(t.root)
	return out
}

// Insert returns a new tree with key mapped to value. If key already
// exists, its value is replaced with no structural change and no hash
// change, since keyHash depends only on key (spec section 4.2). Otherwise
// a new leaf is inserted and the AVL property is restored via rotation
// (spec section 4.4).
func (t *Tree) Insert(key, value []byte) *Tree {
	if t.root == nil {
		return &Tree{root: newLeaf(t.hashFn, key, value), size: 1, hashFn: t.hashFn}
	}
	newRoot, isNew := insertRec(t.hashFn, t.root, key, value)
	size := t.size
	if isNew {
		size++
	}
	return &Tree{root: newRoot, size: size, hashFn: t.hashFn}
}

// insertRec descends to the insertion point, then unwinds rehashing and
// rebalancing every ancestor on the way back up. The returned bool is
// true iff a new leaf was created (as opposed to a value-only replace).
func insertRec(hashFn HashFunc, n node, key, value []byte) (node, bool) {
	switch v := n.(type) {
	case *leafNode:
		if bytes.Equal(v.key, key) {
			return newLeaf(hashFn, key, value), false
		}
		var left, right *leafNode
		var searchKey []byte
		if keyLessEq(key, v.key) {
			left, right = newLeaf(hashFn, key, value), v
			searchKey = key
		} else {
			left, right = v, newLeaf(hashFn, key, value)
			searchKey = v.key
		}
		return finalize(hashFn, left, right, searchKey), true

	case *innerNode:
		var newChild node
		var isNew bool
		goLeft := keyLessEq(key, v.sKey)
		if goLeft {
			newChild, isNew = insertRec(hashFn, v.left, key, value)
		} else {
			newChild, isNew = insertRec(hashFn, v.right, key, value)
		}
		if !isNew {
			// Value-only replace: the changed leaf's keyHash is
			// unchanged (it depends only on the key), so this
			// node's hash, height and search key are all still
			// correct. Just swap in the new child.
			cp := *v
			if goLeft {
				cp.left = newChild
			} else {
				cp.right = newChild
			}
			return &cp, false
		}

		// A structural insertion never changes this node's search
		// key directly: search key is the max of the left subtree,
		// and that subtree's content only changes as a result of
		// insertion into the left branch, which can only add a key
		// <= the existing search key (that is what sent it left).
		// Only a rotation can move the boundary.
		var rebuilt *innerNode
		if goLeft {
			rebuilt = finalize(hashFn, newChild, v.right, v.sKey)
		} else {
			rebuilt = finalize(hashFn, v.left, newChild, v.sKey)
		}
		if balanced := rebalance(hashFn, rebuilt, key); balanced != nil {
			return balanced, true
		}
		return rebuilt, true
	}
	panic("merklebst: unreachable node type")
}

// Delete returns a new tree with key removed, or *ErrKeyNotFound if key is
// absent. Deletion never rotates (spec section 4.3): only heights,
// hashes, and affected search keys are recomputed on the way back up.
func (t *Tree) Delete(key []byte) (*Tree, error) {
	if t.root == nil {
		return nil, &ErrKeyNotFound{Key: key}
	}
	if leaf, ok := t.root.(*leafNode); ok {
		if !bytes.Equal(leaf.key, key) {
			return nil, &ErrKeyNotFound{Key: key}
		}
		return &Tree{hashFn: t.hashFn}, nil
	}
	newRoot, found := deleteRec(t.hashFn, t.root, key)
	if !found {
		return nil, &ErrKeyNotFound{Key: key}
	}
	return &Tree{root: newRoot, size: t.size - 1, hashFn: t.hashFn}, nil
}

// deleteRec removes key from n's subtree. When the target leaf is a
// direct child, the subtree collapses to its sibling (I6: removing a
// leaf also removes its one-child-away parent). On the way back up, an
// ancestor whose search key equalled the deleted key gets the maximum
// key remaining in its (possibly reduced) left subtree.
func deleteRec(hashFn HashFunc, n node, key []byte) (node, bool) {
	v, ok := n.(*innerNode)
	if !ok {
		return n, false
	}

	if keyLessEq(key, v.sKey) {
		if leaf, ok := v.left.(*leafNode); ok {
			if !bytes.Equal(leaf.key, key) {
				return n, false
			}
			return v.right, true
		}
		newLeft, found := deleteRec(hashFn, v.left, key)
		if !found {
			return n, false
		}
		searchKey := v.sKey
		if bytes.Equal(v.sKey, key) {
			searchKey = maxKey(newLeft)
		}
		return finalize(hashFn, newLeft, v.right, searchKey), true
	}

	if leaf, ok := v.right.(*leafNode); ok {
		if !bytes.Equal(leaf.key, key) {
			return n, false
		}
		return v.left, true
	}
	newRight, found := deleteRec(hashFn, v.right, key)
	if !found {
		return n, false
	}
	// A deletion routed right can never touch the left subtree, so the
	// search key (max of the left subtree) cannot need updating.
	return finalize(hashFn, v.left, newRight, v.sKey), true
}
