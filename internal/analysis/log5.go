package analysis

import "math"

// log5Epsilon guards the Log5 denominator against floating-point zero,
// which occurs exactly when both ratings are 0.5 and in general whenever
// ratingHome + ratingAway == 2*ratingHome*ratingAway.
const log5Epsilon = 1e-12

// WinProbability combines two strength ratings in (0,1) into the home
// side's win probability using the Log5 formula:
//
//	p = (a - ab) / (a + b - 2ab)
//
// A degenerate denominator yields an even 0.5, and the result is clamped to
// [0,1] to guard against ratings outside the expected open interval.
func WinProbability(ratingHome, ratingAway float64) float64 {
	denom := ratingHome + ratingAway - 2*ratingHome*ratingAway
	if math.Abs(denom) < log5Epsilon {
		return 0.5
	}

	p := (ratingHome - ratingHome*ratingAway) / denom
	return clamp01(p)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
