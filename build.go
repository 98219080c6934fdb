package merklebst

import (
	"bytes"
	"sort"
)

// NewFromPairs bulk-builds a balanced tree in O(n log n) (dominated by the
// sort) plus one O(n) post-order hashing pass, per spec section 4.5.
// Unlike Insert, a repeated key is a structural error here, not a value
// replace — bulk build assumes a fresh dataset (spec section 9).
func NewFromPairs(pairs []Pair, opts ...Option) (*Tree, error) {
	hashFn, err := resolveHashFunc(opts...)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return &Tree{hashFn: hashFn}, nil
	}

	sorted := make([]Pair, len(pairs))
	copy(sorted, pairs)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].Key, sorted[j].Key) < 0
	})
	for i := 1; i < len(sorted); i++ {
		if bytes.Equal(sorted[i].Key, sorted[i-1].Key) {
			return nil, &ErrDuplicateKey{Key: sorted[i].Key}
		}
	}

	return &Tree{root: buildBalanced(hashFn, sorted), size: len(sorted), hashFn: hashFn}, nil
}

// buildBalanced recursively splits a sorted, deduplicated run of pairs at
// its midpoint, producing height ceil(log2(n)). The search key at each
// level is the last key of the left half, which is exactly the maximum
// key in the left subtree (I2) regardless of how "the pivot" is phrased.
func buildBalanced(hashFn HashFunc, pairs []Pair) node {
	if len(pairs) == 1 {
		return newLeaf(hashFn, pairs[0].Key, pairs[0].Value)
	}
	k := len(pairs) / 2
	left := buildBalanced(hashFn, pairs[:k])
	right := buildBalanced(hashFn, pairs[k:])
	return finalize(hashFn, left, right, pairs[k-1].Key)
}
