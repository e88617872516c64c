// Package exposure computes exposure time and binning corrections from
// sampled pixel statistics.  The optimizer is a pure function over its
// inputs: no I/O, no shared state, deterministic for identical arguments.
package exposure

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/skywatch-obs/camkit/imgdata"
)

const (
	// fullScale is the 16-bit intensity domain the fractional targets are
	// scaled into
	fullScale = 65535.0

	// minFraction is the smallest representable target in that domain
	// (1/65535, rounded down)
	minFraction = 1.6e-5

	// sentinel replaces a sample value that could not be resolved, and
	// floors resolved values to keep the exposure ratio finite
	sentinel = 1e-5
)

// Settings holds the optimizer targets and limits.  Build one with
// NewSettings, which performs the range validation; the zero value is not
// usable.
type Settings struct {
	// Percentile selects the sample point from the ascending-sorted
	// pixel values, in [0, 100]
	Percentile float64

	// TargetFraction is the desired sample value as a fraction of full
	// scale, in [1.6e-5, 1]
	TargetFraction float64

	// UncertaintyFraction is the acceptance band around the target, in
	// [1.6e-5, 1]
	UncertaintyFraction float64

	// MinExposure and MaxExposure bound the returned exposure;
	// MinExposure must be strictly less than MaxExposure
	MinExposure time.Duration
	MaxExposure time.Duration

	// MaxBin is the maximum binning factor; below 2 binning adjustment
	// is disabled
	MaxBin int

	// PixelExclusion excludes the brightest N pixels from selection
	PixelExclusion int
}

// NewSettings validates the targets and limits and returns a usable
// Settings.
func NewSettings(percentile, target, uncertainty float64, minExp, maxExp time.Duration, maxBin, pixelExclusion int) (Settings, error) {
	s := Settings{
		Percentile:          percentile,
		TargetFraction:      target,
		UncertaintyFraction: uncertainty,
		MinExposure:         minExp,
		MaxExposure:         maxExp,
		MaxBin:              maxBin,
		PixelExclusion:      pixelExclusion,
	}
	return s, s.Validate()
}

// Validate checks the contractual ranges of every field.
func (s Settings) Validate() error {
	if s.TargetFraction < minFraction || s.TargetFraction > 1 {
		return fmt.Errorf("%w: target fraction %g outside [%g, 1]",
			imgdata.ErrInvalidValue, s.TargetFraction, minFraction)
	}
	if s.UncertaintyFraction < minFraction || s.UncertaintyFraction > 1 {
		return fmt.Errorf("%w: uncertainty fraction %g outside [%g, 1]",
			imgdata.ErrInvalidValue, s.UncertaintyFraction, minFraction)
	}
	if s.Percentile < 0 || s.Percentile > 100 {
		return fmt.Errorf("%w: percentile %g outside [0, 100]",
			imgdata.ErrInvalidValue, s.Percentile)
	}
	if s.MinExposure >= s.MaxExposure {
		return fmt.Errorf("%w: min exposure %v must be less than max exposure %v",
			imgdata.ErrInvalidValue, s.MinExposure, s.MaxExposure)
	}
	if s.PixelExclusion < 0 {
		return fmt.Errorf("%w: pixel exclusion %d is negative",
			imgdata.ErrInvalidValue, s.PixelExclusion)
	}
	return nil
}

// Optimize proposes the next (exposure, bin) pair from the current
// acquisition metadata and an ascending-sorted luma sample.
//
// The sampled value is compared against the target scaled to the 16-bit
// domain; within the uncertainty band the current exposure and bin come
// back unchanged.  Otherwise the exposure is rescaled proportionally and,
// when the current binning is square and binning is enabled, traded against
// the bin factor in steps of 4x signal per binning step.  An unresolvable
// sample substitutes a near-zero sentinel rather than failing; this is a
// deliberate fallback for degenerate statistics.
func (s Settings) Optimize(meta imgdata.Metadata, sortedSample []uint16) (time.Duration, int, error) {
	if err := s.Validate(); err != nil {
		return 0, 0, err
	}

	maxBin := s.MaxBin
	if maxBin < 2 {
		maxBin = 1
	}
	target := s.TargetFraction * fullScale
	uncertainty := s.UncertaintyFraction * fullScale
	changeBin := maxBin >= 2 && meta.BinX == meta.BinY
	bin := meta.BinX
	exposure := meta.Exposure
	log.Printf("exposure input: %v, bin %d", exposure, bin)

	val := sampleAt(sortedSample, s.Percentile, s.PixelExclusion)

	if math.Abs(target-val) < uncertainty {
		log.Printf("target %g reached at exposure %v, bin %d, unchanged", target, exposure, bin)
		return exposure, bin, nil
	}

	if val <= sentinel {
		val = sentinel
	}

	// seconds, rescaled by how far the sample fell from the target
	cand := math.Abs(exposure.Seconds() * target / val)
	maxSec := s.MaxExposure.Seconds()

	if changeBin {
		if cand < maxSec {
			for cand < maxSec && bin > 2 {
				bin /= 2
				cand *= 4
			}
		} else {
			for cand > maxSec && bin*2 <= maxBin {
				bin *= 2
				cand /= 4
			}
		}
	}

	out := time.Duration(cand * float64(time.Second))
	if out > s.MaxExposure {
		out = s.MaxExposure
	}
	if out < s.MinExposure {
		out = s.MinExposure
	}
	if bin < 1 {
		bin = 1
	}
	if bin > maxBin {
		bin = maxBin
	}
	log.Printf("exposure target: %v, bin %d", out, bin)
	return out, bin, nil
}

// sampleAt picks the percentile sample, keeping the index out of the
// excluded brightest pixels.  Out-of-range indices resolve to the sentinel.
func sampleAt(sample []uint16, percentile float64, exclusion int) float64 {
	n := len(sample)
	if n == 0 {
		return sentinel
	}
	var coord int
	if percentile > 99.9 {
		coord = n - 1
	} else {
		coord = int(math.Floor(percentile * float64(n-1) * 0.01))
	}
	if coord > n-1-exclusion {
		coord = n - 1 - exclusion
	}
	if coord < 0 || coord >= n {
		return sentinel
	}
	return float64(sample[coord])
}
