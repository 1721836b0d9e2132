// Package server runs the datagram event loop of the PDU simulator: one
// telecommand in, one telemetry packet out, processed strictly in arrival
// order by a single goroutine.
package server

import (
	"errors"
	"fmt"
	"net"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/mellowdrifter/pdusim/internal/ccsds"
	"github.com/mellowdrifter/pdusim/internal/config"
	"github.com/mellowdrifter/pdusim/internal/icd"
	"github.com/mellowdrifter/pdusim/internal/pdu"
)

// maxDatagram bounds one incoming telecommand. The ICD payloads are tiny;
// anything larger is not ours.
const maxDatagram = 4096

type Server struct {
	// large fields first
	conn   *net.UDPConn
	logger *zap.SugaredLogger
	cfg    *config.Config
	sim    *pdu.Simulator

	// smaller fields last
	seq          uint16
	shuttingDown atomic.Bool
}

// New creates a new Server instance around a fresh simulator.
func New(cfg *config.Config, logger *zap.SugaredLogger) *Server {
	return &Server{
		logger: logger,
		cfg:    cfg,
		sim:    pdu.New(cfg.Seed),
	}
}

// Simulator exposes the owned simulator, used by tests to inspect state.
func (s *Server) Simulator() *pdu.Simulator {
	return s.sim
}

// Addr returns the bound local address, valid once Start has logged ready.
func (s *Server) Addr() net.Addr {
	if s.conn == nil {
		return nil
	}
	return s.conn.LocalAddr()
}

// Start binds the UDP socket and serves telecommands until Stop. It only
// returns on a bind failure or a graceful shutdown.
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Listen binds the UDP socket. Telecommands queue in the kernel from this
// point on; Serve drains them.
func (s *Server) Listen() error {
	addr, err := net.ResolveUDPAddr("udp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", s.cfg.Addr(), err)
	}

	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", s.cfg.Addr(), err)
	}
	s.conn = conn
	s.logger.Infof("PDU simulator ready on %s (APID %#x)", conn.LocalAddr(), s.cfg.APID)
	return nil
}

// Serve runs the receive loop until Stop closes the socket.
func (s *Server) Serve() error {
	conn := s.conn
	buf := make([]byte, maxDatagram)
	for {
		n, src, err := conn.ReadFromUDP(buf)
		if err != nil {
			if s.shuttingDown.Load() {
				return nil // graceful exit
			}
			s.logger.Errorf("receive error: %v", err)
			continue
		}

		s.handleDatagram(buf[:n], src)
	}
}

// handleDatagram processes one telecommand and sends at most one response.
func (s *Server) handleDatagram(data []byte, src *net.UDPAddr) {
	packet, err := ccsds.Decode(data)
	switch {
	case errors.Is(err, ccsds.ErrPacketTooShort):
		s.logger.Debugf("dropping %d byte runt from %s", len(data), src)
		return
	case errors.Is(err, ccsds.ErrBadPayload):
		s.logger.Warnf("bad payload from %s: %v", src, err)
		s.respond(icd.Response{
			Key:  icd.RespPduMsgAcknowledgement,
			Body: icd.PduMsgAcknowledgement{PduReturnCode: icd.ReturnRejected},
		}, packet.Subtype, src)
		return
	case err != nil:
		s.logger.Warnf("undecodable packet from %s: %v", src, err)
		return
	}

	s.logger.Debugf("telecommand from %s: seq %d subtype %d/%d, %d byte payload",
		src, packet.SeqCount, packet.SubtypeClass, packet.Subtype, len(packet.Payload))

	resp := icd.Dispatch(s.sim, packet.Payload)
	s.respond(resp, packet.Subtype, src)
}

// respond encodes one response as telemetry and sends it to the source of
// the request. Send failures are logged and the response is dropped; the
// OBC retries on its own timeout.
func (s *Server) respond(resp icd.Response, subtype ccsds.Subtype, src *net.UDPAddr) {
	payload, err := resp.Encode()
	if err != nil {
		s.logger.Errorf("failed to encode %s response: %v", resp.Key, err)
		return
	}

	packet := ccsds.NewTelemetry(s.cfg.APID, s.nextSeq(), ccsds.ClassTelecommand, subtype, payload)
	data, err := packet.Marshal()
	if err != nil {
		s.logger.Errorf("failed to marshal response packet: %v", err)
		return
	}

	if _, err := s.conn.WriteToUDP(data, src); err != nil {
		s.logger.Warnf("failed to send %s to %s: %v", resp.Key, src, err)
	}
}

// nextSeq hands out the PDU's own monotonic sequence count, modulo 16384.
func (s *Server) nextSeq() uint16 {
	seq := s.seq
	s.seq = (s.seq + 1) % ccsds.SeqCountModulus
	return seq
}

// Stop shuts down the server gracefully by closing the socket; the read
// loop then exits on its next wakeup.
func (s *Server) Stop() error {
	s.shuttingDown.Store(true)

	s.logger.Info("Shutting down listener...")
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}
