package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mellowdrifter/pdusim/internal/ccsds"
	"github.com/mellowdrifter/pdusim/internal/config"
	"github.com/mellowdrifter/pdusim/internal/logging"
	"github.com/mellowdrifter/pdusim/internal/pdu"
)

func TestNextSeqWraps(t *testing.T) {
	s := New(config.Default(), logging.Nop())

	assert.Equal(t, uint16(0), s.nextSeq())
	assert.Equal(t, uint16(1), s.nextSeq())

	s.seq = ccsds.SeqCountModulus - 1
	assert.Equal(t, ccsds.SeqCountModulus-1, s.nextSeq())
	assert.Equal(t, uint16(0), s.nextSeq(), "sequence count wraps modulo 16384")
}

func TestNewStartsInBoot(t *testing.T) {
	s := New(config.Default(), logging.Nop())
	assert.Equal(t, pdu.Boot, s.Simulator().State())
	assert.Nil(t, s.Addr(), "no address before Listen")
}

func TestListenEphemeralPort(t *testing.T) {
	cfg := config.Default()
	cfg.BindAddress = "127.0.0.1"
	cfg.BindPort = 0

	s := New(cfg, logging.Nop())
	require.NoError(t, s.Listen())
	t.Cleanup(func() { _ = s.Stop() })

	require.NotNil(t, s.Addr())
	assert.Equal(t, "udp", s.Addr().Network())
}

func TestStopBeforeListen(t *testing.T) {
	s := New(config.Default(), logging.Nop())
	assert.NoError(t, s.Stop())
}
