package ccsds

import "errors"

type SubtypeClass uint8
type Subtype uint8

const (
	// Primary header field values
	version         uint8 = 0
	typeTelecommand uint8 = 1
	typeTelemetry   uint8 = 0
	secHeaderFlag   uint8 = 1
	seqFlagsUnseg   uint8 = 3

	// DefaultAPID is the logical channel of the PDU.
	DefaultAPID uint16 = 0x100

	// SeqCountModulus wraps the 14-bit sequence counter.
	SeqCountModulus uint16 = 16384

	// lengths
	primaryHeaderLength   = 6
	secondaryHeaderLength = 12
	minPacketLength       = primaryHeaderLength + secondaryHeaderLength

	// Subtype classes carried in the secondary header
	ClassTelecommand      SubtypeClass = 1
	ClassTelemetryRequest SubtypeClass = 3

	// Subtypes used by the OBC
	SubtypeHeartbeat    Subtype = 1
	SubtypeStatus       Subtype = 25
	SubtypeLineStates   Subtype = 129
	SubtypeMeasurements Subtype = 131
)

var (
	// ErrPacketTooShort means the datagram cannot hold both headers, or its
	// declared data length is shorter than the secondary header.
	// Such packets are dropped without a reply.
	ErrPacketTooShort = errors.New("packet shorter than primary and secondary header")

	// ErrBadPayload means the data field is not valid UTF-8.
	ErrBadPayload = errors.New("payload is not valid UTF-8")
)
