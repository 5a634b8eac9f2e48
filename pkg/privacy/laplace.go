// Package privacy implements the Laplace mechanism that obfuscates how
// many pixel components the embedder touches. The true message bit count
// is a query with sensitivity 8 (one character added or removed changes
// it by 8 bits); adding Laplace noise at scale 8/epsilon makes the
// touched-component count an (epsilon, 0)-differentially-private answer
// to that query.
package privacy

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Sensitivity is the query sensitivity in bits: one character of message
// change moves the true bit count by 8.
const Sensitivity = 8.0

// ErrInvalidParameter is returned for epsilon <= 0 or inconsistent
// count/capacity arguments. Epsilon is rejected, never clamped.
var ErrInvalidParameter = errors.New("privacy: invalid parameter")

// Sampler draws Laplace noise from a fresh, non-reproducible stream.
// It must never be expected to reproduce a draw; only the resulting
// padded count matters, and only to the sender.
type Sampler struct {
	src rand.Source
}

// NewSampler returns a Sampler seeded from the operating system's
// entropy pool.
func NewSampler() *Sampler {
	return &Sampler{src: rand.NewSource(entropySeed())}
}

// NewSamplerFromSource returns a Sampler over the given source. Tests
// use this to make noise draws observable; production callers should
// prefer NewSampler.
func NewSamplerFromSource(src rand.Source) *Sampler {
	return &Sampler{src: src}
}

// PaddedCount computes how many components the embedder should modify
// for a message of n bits in an image with the given bit capacity:
// a Laplace draw at scale Sensitivity/epsilon is added to n, rounded,
// and clipped to [n, capacity]. The raw noise value is also returned
// for diagnostics.
//
// The lower clip is one-sided: the count never drops below n, so real
// message bits are never truncated. This rectifies the noise
// distribution relative to a textbook two-sided Laplace mechanism, and
// the formal privacy bound is correspondingly looser; the asymmetry is
// deliberate and documented rather than corrected.
func (s *Sampler) PaddedCount(n int, epsilon float64, capacity int) (m int, noise float64, err error) {
	if epsilon <= 0 {
		return 0, 0, fmt.Errorf("%w: epsilon must be > 0, got %g", ErrInvalidParameter, epsilon)
	}
	if n < 0 {
		return 0, 0, fmt.Errorf("%w: bit count must be >= 0, got %d", ErrInvalidParameter, n)
	}
	if capacity < n {
		return 0, 0, fmt.Errorf("%w: capacity %d below bit count %d", ErrInvalidParameter, capacity, n)
	}

	laplace := distuv.Laplace{
		Mu:    0,
		Scale: Sensitivity / epsilon,
		Src:   s.src,
	}
	noise = laplace.Rand()

	m = int(math.Round(float64(n) + noise))
	if m < n {
		m = n
	}
	if m > capacity {
		m = capacity
	}
	return m, noise, nil
}

func entropySeed() uint64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		// The entropy pool is unavailable; this is unrecoverable for a
		// sampler whose whole contract is fresh randomness.
		panic(fmt.Sprintf("privacy: reading entropy: %v", err))
	}
	return binary.LittleEndian.Uint64(buf[:])
}
