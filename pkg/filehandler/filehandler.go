// Package filehandler moves pixel matrices between memory and disk. The
// engine only guarantees its payload through lossless 8-bit rasters, so
// PNG and BMP are supported on both sides; JPEG is accepted read-side
// only, as cover material that will be re-saved losslessly.
package filehandler

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/mithra009/Secrets-Beyond-Sight/pkg/pixel"
)

// LoadImage decodes the file at path into an RGB pixel matrix. PNG,
// BMP, and JPEG sources are recognized by extension.
func LoadImage(path string) (*pixel.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var img image.Image
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		img, err = png.Decode(f)
	case ".bmp":
		img, err = bmp.Decode(f)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(f)
	default:
		return nil, fmt.Errorf("filehandler: unsupported image format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("filehandler: decoding %s: %v", path, err)
	}
	return pixel.FromImage(img), nil
}

// SavePNG writes a matrix to path as a PNG. A non-.png extension is
// replaced; a lossy format here would destroy the payload.
func SavePNG(path string, m *pixel.Matrix) (string, error) {
	if strings.ToLower(filepath.Ext(path)) != ".png" {
		path = strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
	}
	if err := encodeTo(path, m, png.Encode); err != nil {
		return "", err
	}
	return path, nil
}

// SaveBMP writes a matrix to path as a BMP.
func SaveBMP(path string, m *pixel.Matrix) (string, error) {
	if strings.ToLower(filepath.Ext(path)) != ".bmp" {
		path = strings.TrimSuffix(path, filepath.Ext(path)) + ".bmp"
	}
	if err := encodeTo(path, m, bmp.Encode); err != nil {
		return "", err
	}
	return path, nil
}

func encodeTo(path string, m *pixel.Matrix, encode func(w io.Writer, img image.Image) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f, m.Image()); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("filehandler: encoding %s: %v", path, err)
	}
	return f.Close()
}
