package engine

import (
	"math"
)

// rewardSlope is the logistic slope of the centipawn-to-probability curve.
// Around 400cp of advantage maps to a ~73% winning chance, which lines up
// with the texel-tuning constant most engines settle on.
const rewardSlope = 1.0 / 400.0

// WinningProb maps a side-to-move-relative centipawn score to a winning
// probability in (0,1). Total over all finite inputs.
func WinningProb(cp int32) float64 {
	p := 1.0 / (1.0 + math.Exp(-rewardSlope*float64(cp)))
	// Far out on either tail the float64 result rounds onto 0 or 1; keep it
	// inside the open interval.
	return Clamp(p, math.SmallestNonzeroFloat64, math.Nextafter(1, 0))
}

// CentipawnFromProb is the numerically safe inverse of WinningProb. The
// endpoints 0 and 1 are unreachable by the forward map and decode to the
// mate sentinels.
func CentipawnFromProb(p float64) int32 {
	if p <= 0 {
		return -MateScore
	}
	if p >= 1 {
		return MateScore
	}
	cp := math.Log(p/(1-p)) / rewardSlope
	return int32(Clamp(math.Round(cp), float64(-MateScore), float64(MateScore)))
}
