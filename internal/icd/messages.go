// Package icd implements the PDU interface control document: the command
// set carried as JSON inside space packets, the mandated response for each
// command, and the dispatch from command name to handler.
package icd

import "github.com/mellowdrifter/pdusim/internal/pdu"

// Command names recognised on the wire.
const (
	CmdObcHeartBeat             = "ObcHeartBeat"
	CmdGetPduStatus             = "GetPduStatus"
	CmdGetUnitLineStates        = "GetUnitLineStates"
	CmdGetConvertedMeasurements = "GetConvertedMeasurements"
	CmdSetUnitPwLines           = "SetUnitPwLines"
	CmdResetUnitPwLines         = "ResetUnitPwLines"
	CmdPduGoLoad                = "PduGoLoad"
	CmdPduGoOperate             = "PduGoOperate"
	CmdPduGoSafe                = "PduGoSafe"
	CmdPduGoBoot                = "PduGoBoot"
	CmdPduGoMaintenance         = "PduGoMaintenance"
)

// Response names emitted by the PDU.
const (
	RespPduHeartBeat             = "PduHeartBeat"
	RespPduStatus                = "PduStatus"
	RespPduUnitLineStates        = "PduUnitLineStates"
	RespPduConvertedMeasurements = "PduConvertedMeasurements"
	RespPduMsgAcknowledgement    = "PduMsgAcknowledgement"
)

// Return codes inside PduMsgAcknowledgement.
const (
	ReturnOK       = 0
	ReturnRejected = 1
)

// ObcHeartBeatArgs is the body of an ObcHeartBeat command.
type ObcHeartBeatArgs struct {
	HeartBeat uint32 `json:"HeartBeat"`
}

// UnitLineArgs is the body of SetUnitPwLines and ResetUnitPwLines. Pointers
// distinguish missing fields from zero values.
type UnitLineArgs struct {
	LogicUnitId *int    `json:"LogicUnitId"`
	Parameters  *uint16 `json:"Parameters"`
}

// MeasurementArgs is the body of GetConvertedMeasurements.
type MeasurementArgs struct {
	LogicUnitId *int `json:"LogicUnitId"`
}

// PduHeartBeat echoes the OBC heartbeat alongside the current state.
type PduHeartBeat struct {
	HeartBeat uint32    `json:"HeartBeat"`
	PduState  pdu.State `json:"PduState"`
}

// PduStatus is the status telemetry tuple.
type PduStatus struct {
	PduState         pdu.State `json:"PduState"`
	ProtectionStatus uint32    `json:"ProtectionStatus"`
	PduMode          pdu.Mode  `json:"PduMode"`
}

// PduMsgAcknowledgement is the generic command acknowledgement.
type PduMsgAcknowledgement struct {
	PduReturnCode int `json:"PduReturnCode"`
}
