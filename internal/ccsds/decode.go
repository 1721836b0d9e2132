package ccsds

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// Decode parses one datagram into a Packet.
//
// A datagram too short to carry both headers yields ErrPacketTooShort and
// must be dropped without a reply. A payload that is not valid UTF-8 yields
// ErrBadPayload together with the decoded headers, so the caller can still
// address a negative acknowledgement.
func Decode(data []byte) (*Packet, error) {
	if len(data) < minPacketLength {
		return nil, fmt.Errorf("%w: got %d bytes", ErrPacketTooShort, len(data))
	}

	p := &Packet{}

	p.Telecommand = data[0]>>4&0x01 == typeTelecommand
	p.APID = uint16(data[0]&0x07)<<8 | uint16(data[1])
	p.SeqCount = uint16(data[2]&0x3F)<<8 | uint16(data[3])

	// The declared data length is informational on receive; the datagram
	// boundary is authoritative. Still reject an obviously inconsistent one.
	declared := int(binary.BigEndian.Uint16(data[4:6])) + 1
	if declared < secondaryHeaderLength {
		return nil, fmt.Errorf("%w: declared data length %d below secondary header", ErrPacketTooShort, declared)
	}

	p.SubtypeClass = SubtypeClass(data[7])
	p.Subtype = Subtype(data[8])

	payload := data[minPacketLength:]
	if !utf8.Valid(payload) {
		return p, ErrBadPayload
	}
	p.Payload = payload

	return p, nil
}
