package obctest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeartbeat(t *testing.T) {
	client := startSimulator(t)

	tm, err := client.Exchange(map[string]any{"ObcHeartBeat": map[string]any{"HeartBeat": 42}}, classTelemetryRequest, subtypeHeartbeat)
	require.NoError(t, err)

	assert.Equal(t, uint16(apid), tm.APID)
	assert.False(t, tm.Telecommand, "responses carry the telemetry type bit")
	require.Contains(t, tm.JSON, "PduHeartBeat")

	var hb struct {
		HeartBeat uint32 `json:"HeartBeat"`
		PduState  *int   `json:"PduState"`
	}
	require.NoError(t, json.Unmarshal(tm.JSON["PduHeartBeat"], &hb))
	assert.Equal(t, uint32(42), hb.HeartBeat)
	require.NotNil(t, hb.PduState, "PduState field must be present")
	assert.Equal(t, 0, *hb.PduState, "fresh simulator starts in Boot")
}

func TestHeartbeatEchoesSubtype(t *testing.T) {
	client := startSimulator(t)

	tm, err := client.Exchange(map[string]any{"ObcHeartBeat": map[string]any{"HeartBeat": 7}}, classTelemetryRequest, subtypeHeartbeat)
	require.NoError(t, err)
	assert.Equal(t, byte(subtypeHeartbeat), tm.Subtype)
}

func TestSequenceCountIncrements(t *testing.T) {
	client := startSimulator(t)

	first, err := client.Exchange(map[string]any{"ObcHeartBeat": map[string]any{"HeartBeat": 1}}, classTelemetryRequest, subtypeHeartbeat)
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		tm, err := client.Exchange(map[string]any{"ObcHeartBeat": map[string]any{"HeartBeat": 1}}, classTelemetryRequest, subtypeHeartbeat)
		require.NoError(t, err)
		want := (first.SeqCount + uint16(i)) % 16384
		assert.Equal(t, want, tm.SeqCount, "response %d", i)
	}
}
