package oddsmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoVigTwoWay_Symmetric(t *testing.T) {
	fairA, fairB, err := NoVigTwoWay(-110, -110)
	require.NoError(t, err)

	assert.InDelta(t, 0.50, fairA, 0.0001)
	assert.InDelta(t, 0.50, fairB, 0.0001)
}

func TestNoVigTwoWay_Asymmetric(t *testing.T) {
	fairA, fairB, err := NoVigTwoWay(-135, 115)
	require.NoError(t, err)

	// implied -135 = 0.5745, implied +115 = 0.4651, overround 1.0396
	assert.InDelta(t, 0.5526, fairA, 0.001)
	assert.InDelta(t, 0.4474, fairB, 0.001)
	assert.InDelta(t, 1.0, fairA+fairB, 1e-9, "fair pair must sum to 1")
	assert.Greater(t, fairA, fairB, "favorite keeps the larger fair share")
}

func TestNoVigTwoWay_DegeneratePair(t *testing.T) {
	// +120 / +120 implies 45.45% each: the pair sums under 1 and cannot
	// be normalized into a probability distribution.
	_, _, err := NoVigTwoWay(120, 120)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "degenerate price pair")
}

func TestNoVigTwoWay_InvalidSide(t *testing.T) {
	_, _, err := NoVigTwoWay(0, -110)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "side a")

	_, _, err = NoVigTwoWay(-110, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "side b")
}

func TestVigPercent(t *testing.T) {
	vig, err := VigPercent(-110, -110)
	require.NoError(t, err)
	assert.InDelta(t, 4.76, vig, 0.01)

	vig, err = VigPercent(-125, -125)
	require.NoError(t, err)
	assert.InDelta(t, 11.11, vig, 0.01)

	_, err = VigPercent(0, -110)
	require.Error(t, err)
}

func TestEdge(t *testing.T) {
	assert.InDelta(t, 0.10, Edge(0.55, 0.50), 1e-9)
	assert.InDelta(t, -0.10, Edge(0.45, 0.50), 1e-9)
	assert.InDelta(t, 0.0, Edge(0.50, 0.50), 1e-9)
	assert.Equal(t, 0.0, Edge(0.55, 0), "unpriceable implied yields no edge")
}
