package distsim

import "encoding/json"

// InitPayload is the payload of an INIT envelope: the entity id subset
// assigned to the receiving worker.
type InitPayload struct {
	EntityIDs []string `json:"entityIds"`
}

// StepPayload is the payload of a STEP envelope.
type StepPayload struct {
	Dt   float64 `json:"dt"`
	Time float64 `json:"time"`
}

// EntityState is one entity's kinematic state as reported in a
// SYNC_RESPONSE payload.
type EntityState struct {
	ID       string     `json:"id"`
	Position [3]float64 `json:"position"`
	Velocity [3]float64 `json:"velocity"`
	Time     float64    `json:"time"`
}

// SyncResponsePayload is the payload of a SYNC_RESPONSE envelope.
type SyncResponsePayload struct {
	Entities []EntityState `json:"entities"`
}

// decodePayload unmarshals payload into v, failing safe to v's zero value
// on any decode error or empty string rather than propagating an error,
// per spec.md §4.10's "missing/invalid payload fields fail-safe to
// zero/empty" requirement.
func decodePayload(payload string, v interface{}) {
	if payload == "" {
		return
	}
	_ = json.Unmarshal([]byte(payload), v)
}

func encodePayload(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
