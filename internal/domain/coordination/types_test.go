package coordination

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/safelink/internal/geo"
)

// TestPresenceClone verifies that Clone returns a copy and handles nil safely.
func TestPresenceClone(t *testing.T) {
	t.Parallel()
	require.Nil(t, (*Presence)(nil).Clone())

	p := &Presence{
		Location:      geo.Point{Lat: 12.9, Lng: 77.6},
		ShareLocation: true,
		NeedsHelp:     true,
	}

	c := p.Clone()

	require.Equal(t, p, c)
	require.NotSame(t, p, c)
}

// TestHelperResponseClone verifies that Clone returns a copy and handles nil safely.
func TestHelperResponseClone(t *testing.T) {
	t.Parallel()
	require.Nil(t, (*HelperResponse)(nil).Clone())

	r := &HelperResponse{
		Location: geo.Point{Lat: 10, Lng: 20.5},
		Distance: "54.75",
	}

	c := r.Clone()

	require.Equal(t, r, c)
	require.NotSame(t, r, c)
}
