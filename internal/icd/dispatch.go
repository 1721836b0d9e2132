package icd

import (
	"encoding/json"
	"fmt"

	"github.com/mellowdrifter/pdusim/internal/pdu"
)

// Response is one reply message: the response name and its body, encoded as
// a single-key JSON object.
type Response struct {
	Key  string
	Body any
}

// Encode renders the response as its wire JSON.
func (r Response) Encode() ([]byte, error) {
	data, err := json.Marshal(map[string]any{r.Key: r.Body})
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s response: %w", r.Key, err)
	}
	return data, nil
}

func ack(code int) Response {
	return Response{Key: RespPduMsgAcknowledgement, Body: PduMsgAcknowledgement{PduReturnCode: code}}
}

// handlerFunc executes one command against the simulator. args is the raw
// JSON body under the command key.
type handlerFunc func(sim *pdu.Simulator, args json.RawMessage) Response

// handlers is the closed command schema. Anything not in here is rejected
// with return code 1.
var handlers = map[string]handlerFunc{
	CmdObcHeartBeat:             handleHeartbeat,
	CmdGetPduStatus:             handleGetStatus,
	CmdGetUnitLineStates:        handleGetLineStates,
	CmdGetConvertedMeasurements: handleGetMeasurements,
	CmdSetUnitPwLines:           handleSetLines,
	CmdResetUnitPwLines:         handleResetLines,
	CmdPduGoLoad:                goState(pdu.Load),
	CmdPduGoOperate:             goState(pdu.Operate),
	CmdPduGoSafe:                goState(pdu.Safe),
	CmdPduGoBoot:                goState(pdu.Boot),
	CmdPduGoMaintenance:         goState(pdu.Maintenance),
}

// Dispatch parses the payload of one telecommand and runs the matching
// handler. Every outcome, including malformed or unknown payloads, yields
// exactly one response.
func Dispatch(sim *pdu.Simulator, payload []byte) Response {
	var msg map[string]json.RawMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return ack(ReturnRejected)
	}
	// The schema is a single top-level key; anything else is malformed.
	if len(msg) != 1 {
		return ack(ReturnRejected)
	}

	for name, args := range msg {
		handler, ok := handlers[name]
		if !ok {
			return ack(ReturnRejected)
		}
		return handler(sim, args)
	}
	return ack(ReturnRejected) // unreachable
}

func handleHeartbeat(sim *pdu.Simulator, args json.RawMessage) Response {
	var hb ObcHeartBeatArgs
	if err := json.Unmarshal(args, &hb); err != nil {
		return ack(ReturnRejected)
	}
	echo, state := sim.Heartbeat(hb.HeartBeat)
	return Response{Key: RespPduHeartBeat, Body: PduHeartBeat{HeartBeat: echo, PduState: state}}
}

func handleGetStatus(sim *pdu.Simulator, _ json.RawMessage) Response {
	state, protection, mode := sim.Status()
	return Response{Key: RespPduStatus, Body: PduStatus{
		PduState:         state,
		ProtectionStatus: protection,
		PduMode:          mode,
	}}
}

func handleGetLineStates(sim *pdu.Simulator, _ json.RawMessage) Response {
	return Response{Key: RespPduUnitLineStates, Body: sim.LineStates()}
}

func handleGetMeasurements(sim *pdu.Simulator, args json.RawMessage) Response {
	var req MeasurementArgs
	if err := json.Unmarshal(args, &req); err != nil || req.LogicUnitId == nil {
		return ack(ReturnRejected)
	}
	label, readings, err := sim.Measurements(*req.LogicUnitId)
	if err != nil {
		return ack(ReturnRejected)
	}
	return Response{Key: RespPduConvertedMeasurements, Body: map[string][]float64{label: readings}}
}

func handleSetLines(sim *pdu.Simulator, args json.RawMessage) Response {
	unit, mask, ok := lineArgs(args)
	if !ok {
		return ack(ReturnRejected)
	}
	if err := sim.SetLines(unit, mask); err != nil {
		return ack(ReturnRejected)
	}
	return ack(ReturnOK)
}

func handleResetLines(sim *pdu.Simulator, args json.RawMessage) Response {
	unit, mask, ok := lineArgs(args)
	if !ok {
		return ack(ReturnRejected)
	}
	if err := sim.ResetLines(unit, mask); err != nil {
		return ack(ReturnRejected)
	}
	return ack(ReturnOK)
}

func lineArgs(args json.RawMessage) (int, uint16, bool) {
	var req UnitLineArgs
	if err := json.Unmarshal(args, &req); err != nil {
		return 0, 0, false
	}
	if req.LogicUnitId == nil || req.Parameters == nil {
		return 0, 0, false
	}
	return *req.LogicUnitId, *req.Parameters, true
}

// goState builds the handler for one PduGo* transition command.
func goState(dst pdu.State) handlerFunc {
	return func(sim *pdu.Simulator, _ json.RawMessage) Response {
		if err := sim.Transition(dst); err != nil {
			return ack(ReturnRejected)
		}
		return ack(ReturnOK)
	}
}
