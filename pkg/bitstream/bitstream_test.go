package bitstream

import (
	"bytes"
	"errors"
	"testing"
)

func TestToBitsMSBFirst(t *testing.T) {
	// 'H' = 0x48 = 01001000
	bits := ToBits([]byte("H"))
	want := []uint8{0, 1, 0, 0, 1, 0, 0, 0}
	if len(bits) != len(want) {
		t.Fatalf("got %d bits, want %d", len(bits), len(want))
	}
	for i := range want {
		if bits[i] != want[i] {
			t.Fatalf("bit %d: got %d, want %d", i, bits[i], want[i])
		}
	}
}

func TestRoundTrip(t *testing.T) {
	messages := [][]byte{
		[]byte("HELLO"),
		[]byte("The quick brown fox jumps over the lazy dog."),
		{0x00, 0xFF, 0x80, 0x01},
		{},
	}
	for _, msg := range messages {
		bits := ToBits(msg)
		if len(bits) != len(msg)*8 {
			t.Fatalf("message %q: got %d bits, want %d", msg, len(bits), len(msg)*8)
		}
		back, err := FromBits(bits)
		if err != nil {
			t.Fatalf("message %q: %v", msg, err)
		}
		if !bytes.Equal(back, msg) {
			t.Fatalf("round trip changed message: got %q, want %q", back, msg)
		}
	}
}

func TestEmptyMessage(t *testing.T) {
	if bits := ToBits(nil); len(bits) != 0 {
		t.Fatalf("empty message produced %d bits", len(bits))
	}
	msg, err := FromBits(nil)
	if err != nil {
		t.Fatalf("empty bit sequence: %v", err)
	}
	if len(msg) != 0 {
		t.Fatalf("empty bit sequence produced %d bytes", len(msg))
	}
}

func TestMisalignedBits(t *testing.T) {
	for _, n := range []int{1, 7, 9, 15} {
		_, err := FromBits(make([]uint8, n))
		if !errors.Is(err, ErrMisaligned) {
			t.Fatalf("%d bits: got %v, want ErrMisaligned", n, err)
		}
	}
}
