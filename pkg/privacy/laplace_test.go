package privacy

import (
	"errors"
	"math"
	"testing"

	"golang.org/x/exp/rand"
)

func TestPaddedCountBounds(t *testing.T) {
	sampler := NewSampler()
	cases := []struct {
		n, capacity int
		epsilon     float64
	}{
		{0, 1000, 0.1},
		{40, 196608, 0.5},
		{800, 1000, 1.0},
		{1000, 1000, 0.1}, // full capacity, clip must hold at both ends
		{8, 100000, 5.0},
	}
	for _, tc := range cases {
		for i := 0; i < 200; i++ {
			m, _, err := sampler.PaddedCount(tc.n, tc.epsilon, tc.capacity)
			if err != nil {
				t.Fatalf("n=%d eps=%g: %v", tc.n, tc.epsilon, err)
			}
			if m < tc.n || m > tc.capacity {
				t.Fatalf("n=%d eps=%g: m=%d outside [%d, %d]", tc.n, tc.epsilon, m, tc.n, tc.capacity)
			}
		}
	}
}

func TestInvalidParameters(t *testing.T) {
	sampler := NewSampler()
	if _, _, err := sampler.PaddedCount(40, 0, 1000); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("epsilon=0: got %v, want ErrInvalidParameter", err)
	}
	if _, _, err := sampler.PaddedCount(40, -0.5, 1000); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("epsilon<0: got %v, want ErrInvalidParameter", err)
	}
	if _, _, err := sampler.PaddedCount(-1, 1.0, 1000); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("n<0: got %v, want ErrInvalidParameter", err)
	}
	if _, _, err := sampler.PaddedCount(2000, 1.0, 1000); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("capacity<n: got %v, want ErrInvalidParameter", err)
	}
}

func TestNoiseScalesWithEpsilon(t *testing.T) {
	// The mean absolute value of a Laplace draw equals its scale, so a
	// 50x epsilon drop should raise it by roughly 50x.
	sampler := NewSamplerFromSource(rand.NewSource(1))
	const trials = 2000

	meanAbs := func(epsilon float64) float64 {
		var sum float64
		for i := 0; i < trials; i++ {
			_, noise, err := sampler.PaddedCount(100, epsilon, 1<<30)
			if err != nil {
				t.Fatal(err)
			}
			sum += math.Abs(noise)
		}
		return sum / trials
	}

	tight := meanAbs(5.0) // scale 1.6
	loose := meanAbs(0.1) // scale 80
	if loose < tight*10 {
		t.Fatalf("noise did not grow as epsilon shrank: eps=5.0 mean |noise|=%.2f, eps=0.1 mean |noise|=%.2f", tight, loose)
	}
}

func TestNoiseOnlyPads(t *testing.T) {
	sampler := NewSamplerFromSource(rand.NewSource(7))
	sawNegativeDraw := false
	for i := 0; i < 500; i++ {
		m, noise, err := sampler.PaddedCount(400, 0.5, 1<<20)
		if err != nil {
			t.Fatal(err)
		}
		if noise < 0 {
			sawNegativeDraw = true
			if m < 400 {
				t.Fatalf("negative draw %.2f truncated the message: m=%d", noise, m)
			}
		}
	}
	if !sawNegativeDraw {
		t.Fatal("500 Laplace draws produced no negative value; sampler looks broken")
	}
}
