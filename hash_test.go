package merklebst

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceVectorSHA256(t *testing.T) {
	fn, err := SHA256.hashFunc()
	require.NoError(t, err)
	assert.Equal(t, "3755b417b0f937026ac1b867a397d6dec80dfd463c232c2daaf1de974b93da82", fn([]byte("starfish")))
}

func TestAllBuiltinAlgorithmsProduceLowercaseHex(t *testing.T) {
	algos := []Algorithm{SHA256, MD5, RIPEMD160, SHA1, SHA224, SHA384, SHA512, DoubleSHA256}
	for _, a := range algos {
		fn, err := a.hashFunc()
		require.NoError(t, err)
		digest := fn([]byte("starfish"))
		assert.NotEmpty(t, digest)
		assert.Equal(t, strings.ToLower(digest), digest)
		for _, r := range digest {
			assert.True(t, (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f'))
		}
		// deterministic
		assert.Equal(t, digest, fn([]byte("starfish")))
	}
}

func TestDoubleSHA256IsSHA256OfSHA256(t *testing.T) {
	single, err := SHA256.hashFunc()
	require.NoError(t, err)
	double, err := DoubleSHA256.hashFunc()
	require.NoError(t, err)

	once := single([]byte("starfish"))
	// DoubleSHA256 hashes the raw 32-byte digest, not its hex encoding, so
	// we can't derive it by re-hashing the hex string through single().
	// Instead compute SHA-256 of the raw SHA-256 digest directly, and check
	// it differs from a single pass and is itself stable.
	first := sha256.Sum256([]byte("starfish"))
	second := sha256.Sum256(first[:])
	assert.Equal(t, hex.EncodeToString(second[:]), double([]byte("starfish")))
	assert.NotEqual(t, once, double([]byte("starfish")))
	assert.Equal(t, double([]byte("starfish")), double([]byte("starfish")))
}

func TestConcatHashIsHexStringConcatenation(t *testing.T) {
	fn, err := SHA256.hashFunc()
	require.NoError(t, err)

	a := fn([]byte("left"))
	b := fn([]byte("right"))

	want := fn([]byte(a + b))
	assert.Equal(t, want, concatHash(fn, a, b))
}

func TestWithHashFuncOverridesAlgorithm(t *testing.T) {
	calls := 0
	custom := func(b []byte) string {
		calls++
		return "deadbeef"
	}

	tree, err := New(WithAlgorithm(MD5), WithHashFunc(custom))
	require.NoError(t, err)
	tree = tree.Insert([]byte("k"), []byte("v"))

	root, ok := tree.RootHash()
	require.True(t, ok)
	assert.Equal(t, "deadbeef", root)
	assert.Greater(t, calls, 0)
}

func TestInvalidHashFuncSurfacesOnConstruction(t *testing.T) {
	nondeterministic := func() HashFunc {
		n := 0
		return func(b []byte) string {
			n++
			if n%2 == 0 {
				return "aa"
			}
			return "bb"
		}
	}()

	_, err := New(WithHashFunc(nondeterministic))
	assert.ErrorIs(t, err, ErrInvalidHashFunc)

	notHex := func(b []byte) string { return "not-hex!" }
	_, err = New(WithHashFunc(notHex))
	assert.Error(t, err)
}

// TestHashInvocationsAreLogarithmic is the spec section 9 property test:
// a single insert should invoke the hash function O(log n) times, not
// O(n), since rotation+rehash is fused into a single pass up the spine.
func TestHashInvocationsAreLogarithmic(t *testing.T) {
	base, err := SHA256.hashFunc()
	require.NoError(t, err)

	var calls int
	counting := func(b []byte) string {
		calls++
		return base(b)
	}

	tree, err := New(WithHashFunc(counting))
	require.NoError(t, err)

	const n = 256
	for i := 0; i < n; i++ {
		calls = 0
		tree = tree.Insert([]byte{byte(i), byte(i >> 8)}, []byte("v"))
		// Generous logarithmic bound: height is at most ~2*log2(n+1) = 16
		// for an AVL tree, and each level costs one concatHash call plus a
		// constant number of rotation rehashes; allow 4 calls per level.
		assert.LessOrEqual(t, calls, 4*16)
	}
}
