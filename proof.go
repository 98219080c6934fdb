package merklebst

import "bytes"

// Side records which side of the folding step a sibling hash sits on
// during proof verification.
type Side int

const (
	SiblingOnRight Side = iota
	SiblingOnLeft
)

// ProofStep is one entry of an audit path: a sibling's hash and which side
// of the accumulator it folds into during verification.
type ProofStep struct {
	SiblingHash string
	Side        Side
}

// Proof is an audit proof for Key: the ordered, leaf-first list of sibling
// hashes sufficient to reconstruct a root hash (spec section 4.7). A nil
// Path means "unverifiable" (the tree was empty when the proof was
// generated); a non-nil, zero-length Path means the tree held exactly one
// leaf.
type Proof struct {
	Key  []byte
	Path []ProofStep
}

// Audit generates an audit proof for key. Returns *ErrKeyNotFound if key
// is absent from a non-empty tree.
func (t *Tree) Audit(key []byte) (*Proof, error) {
	if t.root == nil {
		return &Proof{Key: key, Path: nil}, nil
	}

	var descent []ProofStep
	n := t.root
	for {
		switch v := n.(type) {
		case *leafNode:
			if !bytes.Equal(v.key, key) {
				return nil, &ErrKeyNotFound{Key: key}
			}
			path := make([]ProofStep, len(descent))
			for i, step := range descent {
				path[len(descent)-1-i] = step
			}
			return &Proof{Key: key, Path: path}, nil

		case *innerNode:
			if keyLessEq(key, v.sKey) {
				descent = append(descent, ProofStep{SiblingHash: v.right.keyHash(), Side: SiblingOnRight})
				n = v.left
			} else {
				descent = append(descent, ProofStep{SiblingHash: v.left.keyHash(), Side: SiblingOnLeft})
				n = v.right
			}
		}
	}
}

// Verify reconstructs a root hash from proof and reports whether it
// matches rootHash. A proof with a nil Path (generated against an empty
// tree) always verifies false. A proof with an empty, non-nil Path
// verifies iff rootHash == hashFn(proof.Key) (the single-leaf case).
func Verify(proof *Proof, rootHash string, hashFn HashFunc) bool {
	if proof == nil || proof.Path == nil {
		return false
	}
	acc := hashFn(proof.Key)
	for _, step := range proof.Path {
		switch step.Side {
		case SiblingOnRight:
			acc = concatHash(hashFn, acc, step.SiblingHash)
		case SiblingOnLeft:
			acc = concatHash(hashFn, step.SiblingHash, acc)
		}
	}
	return acc == rootHash
}
