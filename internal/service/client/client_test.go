package client

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	api "github.com/oshokin/safelink/internal/api/http/safelink"
	"github.com/oshokin/safelink/internal/geo"
	"github.com/oshokin/safelink/internal/service/coordinator"
)

// newTestClient spins up a real coordinator behind httptest and returns
// a client pointed at it.
func newTestClient(t *testing.T) *Client {
	t.Helper()

	srv := httptest.NewServer(api.NewServer(coordinator.NewService()).Handler())
	t.Cleanup(srv.Close)

	c, err := New(strings.TrimPrefix(srv.URL, "http://"))
	require.NoError(t, err)

	return c
}

// TestNew_RequiresAddress verifies the address guard.
func TestNew_RequiresAddress(t *testing.T) {
	t.Parallel()

	_, err := New("")
	require.ErrorIs(t, err, errAddressRequired)
}

// TestClient_Roundtrip drives the full flow through the HTTP client:
// alert, response, refinement, poll, logout.
func TestClient_Roundtrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newTestClient(t)

	status, err := c.SendAlert(ctx, "asha", geo.Point{Lat: 10, Lng: 21}, true)
	require.NoError(t, err)
	require.Equal(t, "success", status.Status)

	status, err = c.Respond(ctx, "chitra", "asha", geo.Point{Lat: 10, Lng: 20.5})
	require.NoError(t, err)
	require.Equal(t, "helper response recorded", status.Status)
	require.NotEmpty(t, status.Distance)

	status, err = c.RefineDistance(ctx, "asha", "chitra", "3.20")
	require.NoError(t, err)
	require.Equal(t, "needy notified", status.Status)

	alerts, err := c.Alerts(ctx, "asha")
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	require.Equal(t, "3.20", alerts[0].ActiveHelpers[0].Distance)

	// Anonymous poll sees the entry without the roster.
	alerts, err = c.Alerts(ctx, "")
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	require.Nil(t, alerts[0].ActiveHelpers)

	status, err = c.Logout(ctx, "asha")
	require.NoError(t, err)
	require.Equal(t, "logged out", status.Status)

	alerts, err = c.Alerts(ctx, "asha")
	require.NoError(t, err)
	require.Empty(t, alerts)
}

// TestClient_SurfacesServerErrors verifies that non-2xx statuses come
// back as errors carrying the server's status text.
func TestClient_SurfacesServerErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newTestClient(t)

	status, err := c.RefineDistance(ctx, "ghost", "nobody", "1.00")
	require.Error(t, err)
	require.Equal(t, "helper response not found", status.Status)

	_, err = c.SendAlert(ctx, "", geo.Point{}, true)
	require.Error(t, err)
}
