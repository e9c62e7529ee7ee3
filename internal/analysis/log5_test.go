package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWinProbabilityEqualRatings(t *testing.T) {
	for _, rating := range []float64{0.1, 0.25, 0.5, 0.75, 0.9371} {
		assert.InDelta(t, 0.5, WinProbability(rating, rating), 1e-9, "rating %v", rating)
	}
}

func TestWinProbabilityDegenerateDenominator(t *testing.T) {
	// 0.5/0.5 makes the denominator exactly zero; must not divide by zero.
	assert.Equal(t, 0.5, WinProbability(0.5, 0.5))
}

func TestWinProbabilityKnownValue(t *testing.T) {
	// (0.8 - 0.24) / (0.8 + 0.3 - 0.48) = 0.56 / 0.62
	assert.InDelta(t, 0.9032, WinProbability(0.8, 0.3), 0.0001)
}

func TestWinProbabilityComplement(t *testing.T) {
	// Swapping sides must yield complementary probabilities.
	p := WinProbability(0.8, 0.3)
	q := WinProbability(0.3, 0.8)
	assert.InDelta(t, 1.0, p+q, 1e-9)
}

func TestWinProbabilityMonotonicInHomeRating(t *testing.T) {
	const away = 0.45
	prev := -1.0
	for rating := 0.05; rating < 1.0; rating += 0.05 {
		p := WinProbability(rating, away)
		assert.Greater(t, p, prev, "rating %v", rating)
		prev = p
	}
}

func TestWinProbabilityClamped(t *testing.T) {
	// Ratings outside the expected open interval must not escape [0,1].
	for _, tc := range [][2]float64{{1.2, 0.3}, {-0.1, 0.4}, {1.5, -0.5}} {
		p := WinProbability(tc[0], tc[1])
		assert.GreaterOrEqual(t, p, 0.0, "ratings %v", tc)
		assert.LessOrEqual(t, p, 1.0, "ratings %v", tc)
	}
}
