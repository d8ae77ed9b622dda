package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateHaversineDistance(t *testing.T) {
	assert.InDelta(t, 0, CalculateHaversineDistance(-23.55, -46.63, -23.55, -46.63), 0.001)

	// São Paulo (Praça da Sé) to Rio de Janeiro (Candelária), roughly 360 km.
	d := CalculateHaversineDistance(-23.5503, -46.6339, -22.9009, -43.1776)
	assert.InDelta(t, 361000, d, 5000)
}

func TestWithinRadius(t *testing.T) {
	assert.True(t, WithinRadius(-23.5503, -46.6339, -23.5600, -46.6400, 4000))
	assert.False(t, WithinRadius(-23.5503, -46.6339, -22.9009, -43.1776, 4000))
}
