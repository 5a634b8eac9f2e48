// Package permute derives the shared secret path through an image: a
// deterministic permutation of component indices computed from nothing
// but the password and the image's component count. Sender and receiver
// run the same derivation independently and obtain the same sequence,
// so the shuffle map itself never has to be transmitted.
package permute

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/exp/rand"
)

// ErrInvalidSize is returned when a negative domain size is requested.
var ErrInvalidSize = errors.New("permute: domain size must be non-negative")

// Seed hashes the password with SHA-256 and keeps the first 64 bits of
// the digest. Identical passwords always map to identical seeds;
// distinct passwords collide only if the hash does.
func Seed(password string) uint64 {
	digest := sha256.Sum256([]byte(password))
	return binary.BigEndian.Uint64(digest[:8])
}

// Indices returns a permutation of [0, n) derived solely from the
// password. The generator is a PCG source with a frozen algorithm, so
// the sequence is reproducible across processes and releases. n == 0
// yields an empty sequence.
//
// The permutation does not need to be cryptographically unpredictable;
// recovering it without the password requires inverting the hash.
func Indices(password string, n int) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	// Fisher-Yates, pinned here rather than delegated to rand.Perm so
	// the exact shuffle order is part of this package's contract.
	rng := rand.New(rand.NewSource(Seed(password)))
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		indices[i], indices[j] = indices[j], indices[i]
	}
	return indices, nil
}
