package synth

import (
	"bytes"
	"testing"
)

func TestReproducible(t *testing.T) {
	a, err := RandomImage(64, 64, 42)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RandomImage(64, 64, 42)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Data, b.Data) {
		t.Fatal("same seed produced different images")
	}

	c, err := RandomImage(64, 64, 43)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a.Data, c.Data) {
		t.Fatal("different seeds produced identical images")
	}
}

func TestShapeAndBalance(t *testing.T) {
	img, err := RandomImage(128, 96, 1)
	if err != nil {
		t.Fatal(err)
	}
	if img.Width != 128 || img.Height != 96 || img.Channels != 3 {
		t.Fatalf("unexpected shape %dx%dx%d", img.Width, img.Height, img.Channels)
	}

	zeros := 0
	for _, v := range img.Data {
		if v&1 == 0 {
			zeros++
		}
	}
	ratio := float64(zeros) / float64(len(img.Data))
	if ratio < 0.47 || ratio > 0.53 {
		t.Fatalf("LSB zero ratio %.4f, expected near 0.5", ratio)
	}
}

func TestInvalidDimensions(t *testing.T) {
	if _, err := RandomImage(0, 64, 1); err == nil {
		t.Fatal("zero width accepted")
	}
	if _, err := RandomImage(64, -1, 1); err == nil {
		t.Fatal("negative height accepted")
	}
}
