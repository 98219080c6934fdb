package merklebst

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrKeyNotFound is returned by Lookup and Delete when the requested key is
// absent from the tree. It carries the key for diagnostics.
type ErrKeyNotFound struct {
	Key []byte
}

func (e *ErrKeyNotFound) Error() string {
	return fmt.Sprintf("merklebst: key not found: %x", e.Key)
}

// ErrDuplicateKey is returned by NewFromPairs when the input contains the
// same key more than once. Bulk build assumes a fresh, deduplicated
// dataset; unlike Insert, it does not silently update the value.
type ErrDuplicateKey struct {
	Key []byte
}

func (e *ErrDuplicateKey) Error() string {
	return fmt.Sprintf("merklebst: duplicate key: %x", e.Key)
}

// ErrInvalidHashFunc is returned when a user-supplied HashFunc does not
// behave like a digest: it must accept a byte string and return a
// deterministic, non-empty hex digest. Surfaces from New or NewFromPairs,
// which validate the hasher once at construction time.
var ErrInvalidHashFunc = errors.New("merklebst: hash function does not produce a stable hex digest")
