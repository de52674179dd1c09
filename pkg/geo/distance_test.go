package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestDistanceKMZeroForSamePoint(t *testing.T) {
	d := DistanceKM(f(51.5074), f(-0.1278), f(51.5074), f(-0.1278))
	require.NotNil(t, d)
	assert.InDelta(t, 0, *d, 0.001)
}

func TestDistanceKMKnownValue(t *testing.T) {
	// London to Paris, great-circle, roughly 343 km.
	d := DistanceKM(f(51.5074), f(-0.1278), f(48.8566), f(2.3522))
	require.NotNil(t, d)
	assert.InDelta(t, 343, *d, 5)
}

func TestDistanceKMSymmetric(t *testing.T) {
	a := DistanceKM(f(40.7128), f(-74.0060), f(34.0522), f(-118.2437))
	b := DistanceKM(f(34.0522), f(-118.2437), f(40.7128), f(-74.0060))
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.InDelta(t, *a, *b, 0.001)
}

func TestDistanceKMNilCoordinates(t *testing.T) {
	assert.Nil(t, DistanceKM(nil, f(0), f(0), f(0)))
	assert.Nil(t, DistanceKM(f(0), nil, f(0), f(0)))
	assert.Nil(t, DistanceKM(f(0), f(0), nil, f(0)))
	assert.Nil(t, DistanceKM(f(0), f(0), f(0), nil))
}
