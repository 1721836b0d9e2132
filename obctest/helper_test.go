package obctest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mellowdrifter/pdusim/internal/config"
	"github.com/mellowdrifter/pdusim/internal/logging"
	"github.com/mellowdrifter/pdusim/internal/server"
)

// Subtype classes and subtypes the OBC uses on this channel.
const (
	classTelecommand      = 1
	classTelemetryRequest = 3

	subtypeHeartbeat    = 1
	subtypeStatus       = 25
	subtypeLineStates   = 129
	subtypeMeasurements = 131
)

// startSimulator brings up a fresh simulator on an ephemeral port and
// returns a connected OBC client.
func startSimulator(t *testing.T) *OBCClient {
	t.Helper()

	cfg := config.Default()
	cfg.BindAddress = "127.0.0.1"
	cfg.BindPort = 0

	srv := server.New(cfg, logging.Nop())
	require.NoError(t, srv.Listen())
	go srv.Serve() //nolint:errcheck
	t.Cleanup(func() { _ = srv.Stop() })

	client, err := NewOBCClient(srv.Addr().String(), 2*time.Second)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return client
}

// goOperate walks the simulator from Boot into Operate.
func goOperate(t *testing.T, client *OBCClient) {
	t.Helper()

	code, err := client.ReturnCode(map[string]any{"PduGoLoad": map[string]any{}}, classTelecommand, subtypeHeartbeat)
	require.NoError(t, err)
	require.Equal(t, 0, code)

	code, err = client.ReturnCode(map[string]any{"PduGoOperate": map[string]any{}}, classTelecommand, subtypeHeartbeat)
	require.NoError(t, err)
	require.Equal(t, 0, code)
}
