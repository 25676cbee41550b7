package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuccessRate(t *testing.T) {
	assert.Equal(t, 100.0, SuccessRate("CAT", "CAT"))
	assert.InDelta(t, 100.0/3.0, SuccessRate("CAT", "COG"), 1e-9)
}

func TestSuccessRateNoLetters(t *testing.T) {
	assert.Zero(t, SuccessRate("123", "456"))
	assert.Zero(t, SuccessRate("", ""))
}

func TestSuccessRatePlaceholdersNeverMatch(t *testing.T) {
	assert.Equal(t, 50.0, SuccessRate("AB CD", "A_ _D"))
}

func TestSuccessRateStopsAtShorterText(t *testing.T) {
	// Only the first two letters are compared; both are counted.
	assert.Equal(t, 50.0, SuccessRate("ABCD", "AX"))
}
