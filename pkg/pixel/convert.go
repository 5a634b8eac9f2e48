package pixel

import (
	"image"
	"image/color"
)

// FromImage flattens a decoded image into a 3-channel RGB matrix. Any
// alpha channel is dropped, matching the engine's lossless RGB model.
// RGBA() yields alpha-premultiplied values, so partially transparent
// sources also lose color information, not just the alpha plane.
func FromImage(img image.Image) *Matrix {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	m := &Matrix{
		Width:    width,
		Height:   height,
		Channels: 3,
		Data:     make([]uint8, width*height*3),
	}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// RGBA() returns 16-bit values; keep the high byte.
			m.Data[i] = uint8(r >> 8)
			m.Data[i+1] = uint8(g >> 8)
			m.Data[i+2] = uint8(b >> 8)
			i += 3
		}
	}
	return m
}

// Image renders a 3-channel matrix as an opaque NRGBA image suitable for
// lossless encoding. Matrices with other channel counts render their
// first three channels, padding missing ones with zero.
func (m *Matrix) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
	for row := 0; row < m.Height; row++ {
		for col := 0; col < m.Width; col++ {
			var rgb [3]uint8
			for ch := 0; ch < 3 && ch < m.Channels; ch++ {
				rgb[ch] = m.At(row, col, ch)
			}
			img.SetNRGBA(col, row, color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
		}
	}
	return img
}
