// Package merklebst implements a Merkle Binary Search Tree: an ordered,
// AVL-balanced key/value container in which every node carries a
// cryptographic hash covering its subtree, so that a single root hash is a
// succinct commitment to the entire key/value set.
//
// The tree supports logarithmic insert, delete and lookup, logarithmic
// audit-proof generation, and proof verification without the tree. Nodes
// are immutable: every mutation returns a new *Tree, sharing unaffected
// subtrees with the receiver.
package merklebst
