// Package obctest exercises the simulator from the OBC side of the wire:
// raw UDP datagrams framed as CCSDS space packets, built and parsed here
// independently of the simulator's own codec.
package obctest

import (
	"encoding/json"
	"fmt"
)

const apid = 0x100

// Telemetry is one decoded PDU response packet.
type Telemetry struct {
	APID         uint16
	Telecommand  bool
	SeqCount     uint16
	SubtypeClass byte
	Subtype      byte
	JSON         map[string]json.RawMessage
}

// BuildSpacePacket frames a JSON command string as a telecommand packet.
func BuildSpacePacket(command string, seq int, class, subtype byte) []byte {
	payload := []byte(command)

	// Secondary header: class and subtype, then the fixed tail.
	secondary := []byte{0x10, class, subtype, 0x00, 0x2F, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}

	dataLen := len(secondary) + len(payload) - 1

	packet := []byte{
		// version 0, type 1 (telecommand), secondary header flag, APID 0x100
		0x00<<5 | 0x01<<4 | 0x01<<3 | byte(apid>>8),
		byte(apid & 0xFF),
		// unsegmented, 14-bit sequence count
		0x03<<6 | byte(seq>>8&0x3F),
		byte(seq & 0xFF),
		byte(dataLen >> 8),
		byte(dataLen & 0xFF),
	}
	packet = append(packet, secondary...)
	packet = append(packet, payload...)
	return packet
}

// ParseSpacePacket decodes a telemetry packet received from the simulator.
func ParseSpacePacket(data []byte) (*Telemetry, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("packet too short: %d bytes", len(data))
	}

	tm := &Telemetry{
		APID:         uint16(data[0]&0x07)<<8 | uint16(data[1]),
		Telecommand:  data[0]>>4&0x01 == 1,
		SeqCount:     uint16(data[2]&0x3F)<<8 | uint16(data[3]),
		SubtypeClass: data[7],
		Subtype:      data[8],
	}

	if err := json.Unmarshal(data[18:], &tm.JSON); err != nil {
		return nil, fmt.Errorf("failed to parse payload %q: %w", data[18:], err)
	}
	return tm, nil
}
