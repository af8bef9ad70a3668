package server

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestResolveListenAddress covers override precedence and port extraction.
func TestResolveListenAddress(t *testing.T) {
	t.Parallel()

	got, err := resolveListenAddress("safelink.example.com:8080", "")
	require.NoError(t, err)
	require.Equal(t, ":8080", got)

	got, err = resolveListenAddress("safelink.example.com:8080", "127.0.0.1:9090")
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9090", got)

	_, err = resolveListenAddress("no-port-here", "")
	require.Error(t, err)
}
