package steganalysis

import (
	"errors"
	"testing"

	"github.com/mithra009/Secrets-Beyond-Sight/pkg/pixel"
	"github.com/mithra009/Secrets-Beyond-Sight/pkg/synth"
)

func TestUniformRandomImageLooksRandom(t *testing.T) {
	// On covers with genuinely random components the deviation should
	// hover near zero and the p-value should spread over (0, 1) rather
	// than collapse toward either end.
	const trials = 40
	var deviationSum, pSum float64
	aboveAlpha := 0
	for seed := uint64(0); seed < trials; seed++ {
		img, err := synth.RandomImage(64, 64, seed)
		if err != nil {
			t.Fatal(err)
		}
		report, err := ChiSquare(img, ChannelAll)
		if err != nil {
			t.Fatal(err)
		}
		deviationSum += report.Deviation
		pSum += report.PValue
		if report.PValue >= Alpha {
			aboveAlpha++
		}
	}

	if mean := deviationSum / trials; mean > 0.6 {
		t.Fatalf("mean deviation %.3f%% on random covers, expected near 0", mean)
	}
	if mean := pSum / trials; mean < 0.3 || mean > 0.7 {
		t.Fatalf("mean p-value %.3f, expected near 0.5 for uniform LSBs", mean)
	}
	// A 5% false positive rate allows a few detections, not many.
	if aboveAlpha < trials-6 {
		t.Fatalf("only %d of %d random covers passed as random-looking", aboveAlpha, trials)
	}
}

func TestFlatImageIsNonRandom(t *testing.T) {
	img, err := pixel.New(32, 32, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := range img.Data {
		img.Data[i] = 128 // LSB 0 everywhere
	}

	report, err := ChiSquare(img, ChannelAll)
	if err != nil {
		t.Fatal(err)
	}
	if report.Verdict != VerdictNonRandom {
		t.Fatalf("flat image judged %v", report.Verdict)
	}
	if report.Deviation != 50 {
		t.Fatalf("deviation %.2f%%, want 50%%", report.Deviation)
	}
	if report.PValue >= 1e-9 {
		t.Fatalf("p-value %.3g, expected effectively zero", report.PValue)
	}
}

func TestPerChannel(t *testing.T) {
	// Zero the red LSBs, leave green and blue random: only red should
	// be flagged.
	img, err := synth.RandomImage(64, 64, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < len(img.Data); i += img.Channels {
		img.Data[i] &= 0xFE
	}

	reports, err := PerChannel(img)
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 3 {
		t.Fatalf("got %d channel reports, want 3", len(reports))
	}
	if reports[0].Channel != ChannelRed || reports[0].Verdict != VerdictNonRandom {
		t.Fatalf("red channel: %v / %v, want non-random", reports[0].Channel, reports[0].Verdict)
	}
	if reports[0].Deviation != 50 {
		t.Fatalf("red deviation %.2f%%, want 50%%", reports[0].Deviation)
	}
	for _, r := range reports[1:] {
		if r.Deviation > 5 {
			t.Fatalf("channel %v deviates %.2f%% despite untouched LSBs", r.Channel, r.Deviation)
		}
	}
}

func TestMissingChannel(t *testing.T) {
	img, err := pixel.New(8, 8, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ChiSquare(img, ChannelGreen); !errors.Is(err, ErrInvalidChannel) {
		t.Fatalf("got %v, want ErrInvalidChannel", err)
	}
	// The single present channel still works.
	if _, err := ChiSquare(img, ChannelRed); err != nil {
		t.Fatal(err)
	}
}
