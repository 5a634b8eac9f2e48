package steganalysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/mithra009/Secrets-Beyond-Sight/pkg/pixel"
)

// ErrShapeMismatch is returned when Compare is given images of
// different dimensions.
var ErrShapeMismatch = errors.New("steganalysis: images differ in shape")

// ComparisonReport quantifies the statistical and visual footprint an
// embedding left on a cover image. DeviationChange is the primary
// detectability metric; MSE and PSNR grade visual fidelity.
type ComparisonReport struct {
	Cover *DetectionReport
	Stego *DetectionReport

	DeviationChange float64 // |stego deviation - cover deviation|, percent
	PValueChange    float64
	MSE             float64
	PSNR            float64 // dB; +Inf for identical images
}

// Compare runs the chi-square test on both images and measures how much
// the LSB distribution moved, together with MSE and PSNR. The images
// must share a shape; mismatches are an error, never truncated.
func Compare(cover, stego *pixel.Matrix) (*ComparisonReport, error) {
	if !cover.SameShape(stego) {
		return nil, fmt.Errorf("%w: %dx%dx%d vs %dx%dx%d", ErrShapeMismatch,
			cover.Width, cover.Height, cover.Channels,
			stego.Width, stego.Height, stego.Channels)
	}

	coverReport, err := ChiSquare(cover, ChannelAll)
	if err != nil {
		return nil, err
	}
	stegoReport, err := ChiSquare(stego, ChannelAll)
	if err != nil {
		return nil, err
	}

	var sum float64
	for i := range cover.Data {
		d := float64(cover.Data[i]) - float64(stego.Data[i])
		sum += d * d
	}
	mse := sum / float64(len(cover.Data))

	psnr := math.Inf(1)
	if mse > 0 {
		psnr = 20 * math.Log10(255/math.Sqrt(mse))
	}

	return &ComparisonReport{
		Cover:           coverReport,
		Stego:           stegoReport,
		DeviationChange: math.Abs(stegoReport.Deviation - coverReport.Deviation),
		PValueChange:    stegoReport.PValue - coverReport.PValue,
		MSE:             mse,
		PSNR:            psnr,
	}, nil
}

// EffectivenessRating buckets a deviation change into the qualitative
// scale used when reporting concealment quality.
func EffectivenessRating(deviationChange float64) string {
	switch {
	case deviationChange < 0.5:
		return "excellent"
	case deviationChange < 1.0:
		return "good"
	case deviationChange < 2.0:
		return "fair"
	default:
		return "poor"
	}
}
