package merklebst

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// assertAVLBalanced walks the tree checking I4: every inner node's
// children differ in height by at most 1.
func assertAVLBalanced(t *testing.T, n node) {
	t.Helper()
	inner, ok := n.(*innerNode)
	if !ok {
		return
	}
	delta := nodeHeight(inner.left) - nodeHeight(inner.right)
	assert.LessOrEqual(t, delta, 1)
	assert.GreaterOrEqual(t, delta, -1)
	assert.Equal(t, 1+max(nodeHeight(inner.left), nodeHeight(inner.right)), inner.h)
	assertAVLBalanced(t, inner.left)
	assertAVLBalanced(t, inner.right)
}

// assertMerkleCoherent walks the tree checking I5: every inner node's hash
// is H(left.hash || right.hash) under hex concatenation.
func assertMerkleCoherent(t *testing.T, n node) {
	t.Helper()
	hashFn, err := SHA256.hashFunc()
	if err != nil {
		t.Fatal(err)
	}
	var walk func(node)
	walk = func(n node) {
		inner, ok := n.(*innerNode)
		if !ok {
			return
		}
		want := concatHash(hashFn, inner.left.keyHash(), inner.right.keyHash())
		assert.Equal(t, want, inner.hash)
		walk(inner.left)
		walk(inner.right)
	}
	walk(n)
}

// assertSearchKeysAreLeftMax checks I2: an inner node's search key equals
// the maximum leaf key in its left subtree.
func assertSearchKeysAreLeftMax(t *testing.T, n node) {
	t.Helper()
	inner, ok := n.(*innerNode)
	if !ok {
		return
	}
	assert.Equal(t, maxKey(inner.left), inner.sKey)
	assertSearchKeysAreLeftMax(t, inner.left)
	assertSearchKeysAreLeftMax(t, inner.right)
}

func log2Ceil(n int) int {
	return int(math.Ceil(math.Log2(float64(n))))
}
