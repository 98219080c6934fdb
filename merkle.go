package merklebst

// finalize recomputes an inner node's keyHash and height from its current
// children. It is the single place in the module that performs that
// computation; insert, delete, and both rotation helpers route every node
// they produce through it, so a structural change and its hash never drift
// apart (spec section 4.6 / section 9's "fused rotate+rehash" discipline).
func finalize(hashFn HashFunc, left, right node, searchKey []byte) *innerNode {
	return &innerNode{
		left:  left,
		right: right,
		sKey:  searchKey,
		h:     1 + max(nodeHeight(left), nodeHeight(right)),
		hash:  concatHash(hashFn, left.keyHash(), right.keyHash()),
	}
}
