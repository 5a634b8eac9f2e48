// Package stego implements the embedding and extraction engines.
//
// The embedder hides a message in the LSBs of a cover matrix along a
// password-derived permutation of component indices, then pads the
// trail with random decoy bits so the number of touched components is a
// differentially-private function of the true message length. The
// extractor walks the same permutation and needs only the password and
// the true bit count; it knows nothing about epsilon or the decoys.
package stego

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/mithra009/Secrets-Beyond-Sight/pkg/bitstream"
	"github.com/mithra009/Secrets-Beyond-Sight/pkg/permute"
	"github.com/mithra009/Secrets-Beyond-Sight/pkg/pixel"
	"github.com/mithra009/Secrets-Beyond-Sight/pkg/privacy"
)

var (
	// ErrCapacityExceeded is returned when a message needs more bits
	// than the cover image has components. No partial output is made.
	ErrCapacityExceeded = errors.New("stego: message exceeds image capacity")

	// ErrInvalidParameter is returned for out-of-range arguments such
	// as a non-positive epsilon or an extraction length beyond the
	// image capacity.
	ErrInvalidParameter = errors.New("stego: invalid parameter")
)

// Plan records what an embedding run did. TotalBits/8, along with the
// password, is what the sender communicates out-of-band; the receiver
// only ever needs MessageBits.
type Plan struct {
	MessageBits int     // n: true message bits, occupying permutation positions [0, n)
	TotalBits   int     // m: components modified, n <= m <= capacity
	Noise       float64 // raw Laplace draw behind m
	Epsilon     float64
}

// DecoyBits returns how many random padding bits the run embedded.
func (p *Plan) DecoyBits() int {
	return p.TotalBits - p.MessageBits
}

// Embedder hides messages in cover matrices. Its decoy and noise
// streams are seeded fresh at construction and are deliberately not
// reproducible; re-running the same embedding produces a statistically
// similar but bitwise different stego image. Embedders are not safe for
// concurrent use; give each worker its own.
type Embedder struct {
	sampler *privacy.Sampler
	decoys  *rand.Rand
}

// NewEmbedder returns an Embedder with operating-system-seeded decoy
// and noise streams.
func NewEmbedder() *Embedder {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		panic(fmt.Sprintf("stego: reading entropy: %v", err))
	}
	return &Embedder{
		sampler: privacy.NewSampler(),
		decoys:  rand.New(rand.NewSource(binary.LittleEndian.Uint64(buf[:]))),
	}
}

// Embed hides message in a copy of cover and returns the stego matrix
// with the plan describing the run. The cover is never mutated, and
// only the LSBs of the first plan.TotalBits permuted components differ
// between the two matrices.
func (e *Embedder) Embed(cover *pixel.Matrix, message []byte, password string, epsilon float64) (*pixel.Matrix, *Plan, error) {
	if epsilon <= 0 {
		return nil, nil, fmt.Errorf("%w: epsilon must be > 0, got %g", ErrInvalidParameter, epsilon)
	}

	bits := bitstream.ToBits(message)
	n := len(bits)

	capacity := cover.Components()
	if n > capacity {
		return nil, nil, fmt.Errorf("%w: need %d bits, image holds %d (max %d characters)",
			ErrCapacityExceeded, n, capacity, capacity/8)
	}

	indices, err := permute.Indices(password, capacity)
	if err != nil {
		return nil, nil, err
	}

	m, noise, err := e.sampler.PaddedCount(n, epsilon, capacity)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}

	stego := cover.Clone()
	for i := 0; i < m; i++ {
		var bit uint8
		if i < n {
			bit = bits[i]
		} else {
			bit = uint8(e.decoys.Uint64() & 1)
		}
		idx := indices[i]
		stego.SetComponent(idx, stego.Component(idx)&0xFE|bit)
	}

	plan := &Plan{
		MessageBits: n,
		TotalBits:   m,
		Noise:       noise,
		Epsilon:     epsilon,
	}
	return stego, plan, nil
}

// EmbedSequential hides message with plain sequential LSB substitution:
// no permutation, no noise, no decoys. It exists as the detectability
// baseline the calibrated embedder is measured against.
func EmbedSequential(cover *pixel.Matrix, message []byte) (*pixel.Matrix, *Plan, error) {
	bits := bitstream.ToBits(message)
	n := len(bits)

	capacity := cover.Components()
	if n > capacity {
		return nil, nil, fmt.Errorf("%w: need %d bits, image holds %d", ErrCapacityExceeded, n, capacity)
	}

	stego := cover.Clone()
	for i, bit := range bits {
		stego.SetComponent(i, stego.Component(i)&0xFE|bit)
	}

	return stego, &Plan{MessageBits: n, TotalBits: n}, nil
}

// Extract recovers a message of messageBits bits from a stego matrix.
// The password and bit count are the receiver's only inputs; epsilon and
// the decoy padding play no part. A wrong password or wrong count
// silently desynchronizes the permutation and yields an unrelated
// message with no error raised; that deniability is part of the design.
//
// The permutation is derived from the stego image's own component
// count, so the image must reach the receiver at the exact dimensions
// it had when embedded.
func Extract(stego *pixel.Matrix, password string, messageBits int) ([]byte, error) {
	if messageBits < 0 {
		return nil, fmt.Errorf("%w: bit count must be >= 0, got %d", ErrInvalidParameter, messageBits)
	}
	capacity := stego.Components()
	if messageBits > capacity {
		return nil, fmt.Errorf("%w: requested %d bits, image holds %d", ErrInvalidParameter, messageBits, capacity)
	}

	indices, err := permute.Indices(password, capacity)
	if err != nil {
		return nil, err
	}

	bits := make([]uint8, messageBits)
	for i := 0; i < messageBits; i++ {
		bits[i] = stego.Component(indices[i]) & 1
	}
	return bitstream.FromBits(bits)
}

// Capacity returns the embeddable bit and character capacity of an
// image with the given shape.
func Capacity(width, height, channels int) (bits int, chars int) {
	bits = width * height * channels
	return bits, bits / 8
}
