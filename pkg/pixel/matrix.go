// Package pixel provides the in-memory pixel matrix the steganography
// engine operates on: a width x height x channel block of 8-bit color
// components with flat component indexing.
package pixel

import (
	"errors"
	"fmt"
)

// ErrInvalidShape is returned when a matrix is requested with
// non-positive dimensions.
var ErrInvalidShape = errors.New("pixel: invalid matrix shape")

// Matrix is a raster of 8-bit color components stored row-major with
// interleaved channels (r,g,b,r,g,b,... for a 3-channel image). The flat
// component index used throughout the engine is
// row*(width*channels) + col*channels + channel.
type Matrix struct {
	Width    int
	Height   int
	Channels int
	Data     []uint8
}

// New allocates a zeroed matrix of the given shape.
func New(width, height, channels int) (*Matrix, error) {
	if width <= 0 || height <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrInvalidShape, width, height, channels)
	}
	return &Matrix{
		Width:    width,
		Height:   height,
		Channels: channels,
		Data:     make([]uint8, width*height*channels),
	}, nil
}

// Components returns the total number of color components, which is also
// the image's embeddable bit capacity.
func (m *Matrix) Components() int {
	return m.Width * m.Height * m.Channels
}

// Clone returns a deep copy sharing no storage with m.
func (m *Matrix) Clone() *Matrix {
	data := make([]uint8, len(m.Data))
	copy(data, m.Data)
	return &Matrix{
		Width:    m.Width,
		Height:   m.Height,
		Channels: m.Channels,
		Data:     data,
	}
}

// SameShape reports whether m and o have identical dimensions.
func (m *Matrix) SameShape(o *Matrix) bool {
	return m.Width == o.Width && m.Height == o.Height && m.Channels == o.Channels
}

// Size returns the shape as a "WxH" string.
func (m *Matrix) Size() string {
	return fmt.Sprintf("%dx%d", m.Width, m.Height)
}

// Component returns the component at flat index i.
func (m *Matrix) Component(i int) uint8 {
	return m.Data[i]
}

// SetComponent stores v at flat index i.
func (m *Matrix) SetComponent(i int, v uint8) {
	m.Data[i] = v
}

// At returns the component at (row, col, channel).
func (m *Matrix) At(row, col, channel int) uint8 {
	return m.Data[m.Index(row, col, channel)]
}

// Set stores v at (row, col, channel).
func (m *Matrix) Set(row, col, channel int, v uint8) {
	m.Data[m.Index(row, col, channel)] = v
}

// Index converts (row, col, channel) coordinates to a flat component index.
func (m *Matrix) Index(row, col, channel int) int {
	return row*(m.Width*m.Channels) + col*m.Channels + channel
}

// Coord converts a flat component index back to (row, col, channel).
func (m *Matrix) Coord(i int) (row, col, channel int) {
	stride := m.Width * m.Channels
	row = i / stride
	col = (i % stride) / m.Channels
	channel = i % m.Channels
	return row, col, channel
}
