package merklebst

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"

	"github.com/pkg/errors"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // RIPEMD-160 is a supported algorithm identifier, not a choice of new code.
)

// Algorithm selects one of the built-in digest functions. The zero value is
// SHA256, the default.
type Algorithm int

const (
	SHA256 Algorithm = iota
	MD5
	RIPEMD160
	SHA1
	SHA224
	SHA384
	SHA512
	DoubleSHA256
)

// HashFunc is a deterministic, pure digest function over a byte string,
// returning a fixed-length lowercase hexadecimal digest. A HashFunc must be
// injective in practice (collision-resistant); it must never block on
// anything but CPU work, since the tree invokes it synchronously, inline
// with every mutation.
type HashFunc func([]byte) string

// probe is hashed twice, eagerly, to validate a user-supplied HashFunc the
// first time it is installed on a Tree.
var probe = []byte("merklebst-probe")

func (a Algorithm) hashFunc() (HashFunc, error) {
	switch a {
	case SHA256:
		return hexHash(func(b []byte) []byte { d := sha256.Sum256(b); return d[:] }), nil
	case MD5:
		return hexHash(func(b []byte) []byte { d := md5.Sum(b); return d[:] }), nil
	case RIPEMD160:
		return hexHash(func(b []byte) []byte {
			h := ripemd160.New()
			h.Write(b) //nolint:errcheck // hash.Hash.Write never returns an error.
			return h.Sum(nil)
		}), nil
	case SHA1:
		return hexHash(func(b []byte) []byte { d := sha1.Sum(b); return d[:] }), nil
	case SHA224:
		return hexHash(func(b []byte) []byte { d := sha256.Sum224(b); return d[:] }), nil
	case SHA384:
		return hexHash(func(b []byte) []byte { d := sha512.Sum384(b); return d[:] }), nil
	case SHA512:
		return hexHash(func(b []byte) []byte { d := sha512.Sum512(b); return d[:] }), nil
	case DoubleSHA256:
		return hexHash(func(b []byte) []byte {
			first := sha256.Sum256(b)
			second := sha256.Sum256(first[:])
			return second[:]
		}), nil
	default:
		return nil, errors.Errorf("merklebst: unknown hash algorithm %d", a)
	}
}

func hexHash(digest func([]byte) []byte) HashFunc {
	return func(b []byte) string {
		return hex.EncodeToString(digest(b))
	}
}

// validateHashFunc checks that fn behaves like a digest: deterministic,
// non-empty, and valid hex. It runs eagerly, once, when a HashFunc is
// first installed on a Tree via New or NewFromPairs, so a bad hasher
// fails at construction rather than on some later, arbitrary insert.
func validateHashFunc(fn HashFunc) error {
	a := fn(probe)
	b := fn(probe)
	if a == "" || a != b {
		return ErrInvalidHashFunc
	}
	if _, err := hex.DecodeString(a); err != nil {
		return errors.Wrap(ErrInvalidHashFunc, err.Error())
	}
	return nil
}

// concatHash combines two digest strings the way inner nodes combine their
// children's hashes: by hashing the concatenation of their hex encodings,
// not their raw bytes. This is the interoperability invariant fixed by
// spec section 6 — switching to raw-byte concatenation produces different,
// non-conforming root hashes.
func concatHash(hashFn HashFunc, a, b string) string {
	buf := make([]byte, 0, len(a)+len(b))
	buf = append(buf, a...)
	buf = append(buf, b...)
	return hashFn(buf)
}
