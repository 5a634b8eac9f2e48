// Package synth generates synthetic cover images with uniformly random
// components. Their LSBs sit at an unbiased 50/50 split, which natural
// photographs never do, making them the reference covers for validating
// the chi-square detector and for reproducible experiments.
package synth

import (
	"golang.org/x/exp/rand"

	"github.com/mithra009/Secrets-Beyond-Sight/pkg/pixel"
)

// RandomImage returns a width x height RGB matrix filled with seeded
// uniform random component values. The same seed always reproduces the
// same image.
func RandomImage(width, height int, seed uint64) (*pixel.Matrix, error) {
	m, err := pixel.New(width, height, 3)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed))
	for i := range m.Data {
		m.Data[i] = uint8(rng.Uint32() & 0xFF)
	}
	return m, nil
}
