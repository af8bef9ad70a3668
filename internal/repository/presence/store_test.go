package presence

import (
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/safelink/internal/domain/coordination"
	"github.com/oshokin/safelink/internal/geo"
)

// TestUpsert_PreservesNeedsHelp verifies that a location update never
// clears an active alert flag.
func TestUpsert_PreservesNeedsHelp(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.SetAlert("asha", geo.Point{Lat: 10, Lng: 21}, true)
	s.Upsert("asha", geo.Point{Lat: 10.1, Lng: 21}, false)

	record, ok := s.Get("asha")
	require.True(t, ok)
	require.True(t, record.NeedsHelp)
	require.False(t, record.ShareLocation)
	require.InDelta(t, 10.1, record.Location.Lat, 1e-9)
}

// TestUpsert_NewRecordDefaults verifies defaults for a first-time record.
func TestUpsert_NewRecordDefaults(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Upsert("ravi", geo.Point{Lat: 12.9, Lng: 77.6}, true)

	record, ok := s.Get("ravi")
	require.True(t, ok)
	require.False(t, record.NeedsHelp)
	require.True(t, record.ShareLocation)
}

// TestSetAlert_ForcesSharing verifies that touching the alert path makes
// the user visible even after sharing was switched off.
func TestSetAlert_ForcesSharing(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Upsert("asha", geo.Point{Lat: 10, Lng: 21}, false)
	s.SetAlert("asha", geo.Point{Lat: 10, Lng: 21}, true)

	record, ok := s.Get("asha")
	require.True(t, ok)
	require.True(t, record.ShareLocation)
	require.True(t, record.NeedsHelp)
}

// TestDisableSharing verifies the soft not-found outcome and the flag flip.
func TestDisableSharing(t *testing.T) {
	t.Parallel()

	s := NewStore()

	require.ErrorIs(t, s.DisableSharing("ghost"), domain.ErrNotFound)

	s.Upsert("ravi", geo.Point{Lat: 12.9, Lng: 77.6}, true)
	require.NoError(t, s.DisableSharing("ravi"))

	record, ok := s.Get("ravi")
	require.True(t, ok)
	require.False(t, record.ShareLocation)
}

// TestRemoveAndSnapshot verifies removal and that snapshots are detached copies.
func TestRemoveAndSnapshot(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Upsert("ravi", geo.Point{Lat: 12.9, Lng: 77.6}, true)
	s.Upsert("asha", geo.Point{Lat: 10, Lng: 21}, false)

	snapshot := s.Snapshot()
	require.Len(t, snapshot, 2)

	// Mutating the snapshot must not leak back into the store.
	snapshot["ravi"].ShareLocation = false

	record, ok := s.Get("ravi")
	require.True(t, ok)
	require.True(t, record.ShareLocation)

	s.Remove("ravi")

	_, ok = s.Get("ravi")
	require.False(t, ok)
	require.Len(t, s.Snapshot(), 1)
}
