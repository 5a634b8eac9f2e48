// Package bitstream converts byte-oriented messages to and from the flat
// bit sequences the embedder writes into pixel LSBs. The convention is
// fixed: each byte expands to 8 bits, most significant bit first.
package bitstream

import (
	"errors"
	"fmt"
)

// ErrMisaligned is returned by FromBits when the bit count is not a
// multiple of 8.
var ErrMisaligned = errors.New("bitstream: bit count not a multiple of 8")

// ToBits expands a message into its bit sequence, MSB first. An empty
// message yields an empty (non-nil) sequence.
func ToBits(message []byte) []uint8 {
	bits := make([]uint8, 0, len(message)*8)
	for _, b := range message {
		for shift := 7; shift >= 0; shift-- {
			bits = append(bits, (b>>uint(shift))&1)
		}
	}
	return bits
}

// FromBits packs a bit sequence back into bytes. It is the exact inverse
// of ToBits and rejects sequences whose length is not a multiple of 8.
func FromBits(bits []uint8) ([]byte, error) {
	if len(bits)%8 != 0 {
		return nil, fmt.Errorf("%w: got %d bits", ErrMisaligned, len(bits))
	}
	message := make([]byte, len(bits)/8)
	for i := range message {
		var b byte
		for j := 0; j < 8; j++ {
			b = b<<1 | bits[i*8+j]
		}
		message[i] = b
	}
	return message, nil
}
