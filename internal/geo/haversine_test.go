package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDistance_SamePoint(t *testing.T) {
	require.Zero(t, Distance(17.7200, 79.1600, 17.7200, 79.1600))
}

func TestDistance_NearbyShops(t *testing.T) {
	// Two shops a street apart in Jangaon, roughly 65 meters.
	d := Distance(17.7200, 79.1600, 17.7205, 79.1603)
	require.InDelta(t, 0.065, d, 0.01)
}

func TestDistance_AcrossDistricts(t *testing.T) {
	d := Distance(17.7200, 79.1600, 18.5, 80.0)
	require.Greater(t, d, 100.0)
	require.Less(t, d, 150.0)
}

func TestDistance_Symmetric(t *testing.T) {
	a := Distance(17.750854, 79.122778, 17.714069, 79.224329)
	b := Distance(17.714069, 79.224329, 17.750854, 79.122778)
	require.InDelta(t, a, b, 1e-9)
}
