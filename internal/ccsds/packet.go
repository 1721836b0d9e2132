package ccsds

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Packet is one CCSDS space packet on the PDU channel.
type Packet struct {
	/*
		0          8          16         24        31
		.-------------------------------------------.
		| Ver |T|S|   APID    | SF |  Sequence Count |
		| 000 |x|1|  11 bits  | 11 |     14 bits     |
		+-------------------------------------------+
		|  Packet Data Length  |  0x10    | Subtype |
		|  (after hdr) - 1     |          |  Class  |
		+-------------------------------------------+
		| Subtype  |   0x00   |   0x2F   |   0x00   |
		+-------------------------------------------+
		|                  0x00 ... 0x00            |
		|             (secondary header pad)        |
		+-------------------------------------------+
		|                                           |
		~             UTF-8 JSON payload            ~
		|                                           |
		`-------------------------------------------'
	*/
	APID         uint16
	Telecommand  bool
	SeqCount     uint16
	SubtypeClass SubtypeClass
	Subtype      Subtype
	Payload      []byte
}

// secondaryHeaderPad is the fixed tail of the 12-byte secondary header.
// The OBC sends it verbatim and expects it back verbatim.
var secondaryHeaderPad = [8]byte{0x2F, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}

// NewTelemetry builds a PDU-to-OBC packet around a JSON payload.
func NewTelemetry(apid uint16, seq uint16, class SubtypeClass, subtype Subtype, payload []byte) *Packet {
	return &Packet{
		APID:         apid,
		Telecommand:  false,
		SeqCount:     seq % SeqCountModulus,
		SubtypeClass: class,
		Subtype:      subtype,
		Payload:      payload,
	}
}

// NewTelecommand builds an OBC-to-PDU packet. Used by the codec tests.
func NewTelecommand(apid uint16, seq uint16, class SubtypeClass, subtype Subtype, payload []byte) *Packet {
	return &Packet{
		APID:         apid,
		Telecommand:  true,
		SeqCount:     seq % SeqCountModulus,
		SubtypeClass: class,
		Subtype:      subtype,
		Payload:      payload,
	}
}

// Marshal encodes the packet into wire bytes.
func (p *Packet) Marshal() ([]byte, error) {
	if p.APID > 0x7FF {
		return nil, fmt.Errorf("APID %#x does not fit in 11 bits", p.APID)
	}

	buf := make([]byte, minPacketLength+len(p.Payload))

	typeBit := typeTelemetry
	if p.Telecommand {
		typeBit = typeTelecommand
	}

	buf[0] = version<<5 | typeBit<<4 | secHeaderFlag<<3 | uint8(p.APID>>8)
	buf[1] = uint8(p.APID & 0xFF)

	seq := p.SeqCount % SeqCountModulus
	buf[2] = seqFlagsUnseg<<6 | uint8(seq>>8)
	buf[3] = uint8(seq & 0xFF)

	// Data length field counts everything after the primary header, minus one.
	binary.BigEndian.PutUint16(buf[4:6], uint16(secondaryHeaderLength+len(p.Payload)-1))

	buf[6] = 0x10
	buf[7] = uint8(p.SubtypeClass)
	buf[8] = uint8(p.Subtype)
	buf[9] = 0x00
	copy(buf[10:18], secondaryHeaderPad[:])

	copy(buf[18:], p.Payload)

	return buf, nil
}

// Write marshals the packet and writes it in full to w.
func (p *Packet) Write(w io.Writer) error {
	buf, err := p.Marshal()
	if err != nil {
		return err
	}
	if err := writeFull(w, buf); err != nil {
		return fmt.Errorf("failed to write packet: %w", err)
	}
	return nil
}

func writeFull(w io.Writer, buf []byte) error {
	total := 0
	for total < len(buf) {
		n, err := w.Write(buf[total:])
		if err != nil {
			return fmt.Errorf("write error after %d bytes (wanted %d): %w", total, len(buf), err)
		}
		if n == 0 {
			return fmt.Errorf("short write: wrote 0 bytes after %d", total)
		}
		total += n
	}
	return nil
}
