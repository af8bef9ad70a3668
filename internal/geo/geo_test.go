package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDistanceKm_Identity verifies that the distance from a point to itself is zero.
func TestDistanceKm_Identity(t *testing.T) {
	t.Parallel()

	points := []Point{
		{Lat: 0, Lng: 0},
		{Lat: 12.9, Lng: 77.6},
		{Lat: -33.8688, Lng: 151.2093},
		{Lat: 90, Lng: 0},
	}
	for _, p := range points {
		require.Zero(t, DistanceKm(p, p))
	}
}

// TestDistanceKm_Symmetry verifies DistanceKm(a, b) == DistanceKm(b, a) within epsilon.
func TestDistanceKm_Symmetry(t *testing.T) {
	t.Parallel()

	a := Point{Lat: 12.9716, Lng: 77.5946}
	b := Point{Lat: 28.7041, Lng: 77.1025}

	require.InEpsilon(t, DistanceKm(a, b), DistanceKm(b, a), 1e-12)
}

// TestDistanceKm_KnownValues checks the haversine result against
// independently computed reference distances.
func TestDistanceKm_KnownValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		a, b Point
		want float64
	}{
		{
			// One degree of longitude on the equator.
			name: "equator degree",
			a:    Point{Lat: 0, Lng: 0},
			b:    Point{Lat: 0, Lng: 1},
			want: 111.19,
		},
		{
			// Half a degree of longitude at latitude 10.
			name: "responder half degree",
			a:    Point{Lat: 10, Lng: 21},
			b:    Point{Lat: 10, Lng: 20.5},
			want: 54.75,
		},
		{
			name: "bangalore to delhi",
			a:    Point{Lat: 12.9716, Lng: 77.5946},
			b:    Point{Lat: 28.7041, Lng: 77.1025},
			want: 1750.0,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.InDelta(t, tc.want, DistanceKm(tc.a, tc.b), 2.0)
		})
	}
}

// TestFormatKm verifies the two-fraction-digit wire formatting.
func TestFormatKm(t *testing.T) {
	t.Parallel()

	require.Equal(t, "55.50", FormatKm(55.5))
	require.Equal(t, "0.00", FormatKm(0))
	require.Equal(t, "1234.57", FormatKm(1234.5678))
}
