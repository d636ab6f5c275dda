// Package distsim implements the distributed coordinator/worker
// step-barrier protocol spec.md §4.10 describes: entities partitioned
// across N worker processes, a tagged message envelope exchanged over a
// path-addressed local socket, and a time barrier that releases once
// every worker has reported for the current step. Modeled on
// DriftPursuit's fixed-timestep internal/simulation.Loop accumulator
// (texture only — this protocol's network framing and barrier have no
// analog in that package) and the Counter-UAS simulation's
// SimulationController orchestration shape, redesigned to explicit
// barrier-synchronized stepping per spec.md §5.
package distsim

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net"

	"github.com/google/uuid"
)

// MessageType tags a distributed-protocol envelope's purpose.
type MessageType uint8

const (
	MsgReady MessageType = iota
	MsgInit
	MsgStep
	MsgStepComplete
	MsgSyncRequest
	MsgSyncResponse
	MsgShutdown
)

func (t MessageType) String() string {
	switch t {
	case MsgReady:
		return "READY"
	case MsgInit:
		return "INIT"
	case MsgStep:
		return "STEP"
	case MsgStepComplete:
		return "STEP_COMPLETE"
	case MsgSyncRequest:
		return "SYNC_REQUEST"
	case MsgSyncResponse:
		return "SYNC_RESPONSE"
	case MsgShutdown:
		return "SHUTDOWN"
	default:
		return "UNKNOWN"
	}
}

// Envelope is the wire message spec.md §4.10 defines: a type tag, a
// UTF-8 payload string carrying small JSON-like records, and a
// simulated-time timestamp. CorrelationID is an extra diagnostic field:
// NewEnvelope gives every envelope a fresh id, and a reply does not echo
// the id of the request it answers, so it does not link a SYNC_RESPONSE
// to its SYNC_REQUEST.
type Envelope struct {
	Type          MessageType `json:"type"`
	Payload       string      `json:"payload"`
	Timestamp     float64     `json:"timestamp"`
	CorrelationID string      `json:"correlationId"`
}

// NewEnvelope builds an envelope with a fresh correlation id.
func NewEnvelope(t MessageType, payload string, timestamp float64) Envelope {
	return Envelope{Type: t, Payload: payload, Timestamp: timestamp, CorrelationID: uuid.NewString()}
}

// WriteEnvelope writes a length-prefixed JSON-encoded envelope to w.
func WriteEnvelope(w io.Writer, e Envelope) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding envelope: %w", err)
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(body)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return fmt.Errorf("writing envelope length: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("writing envelope body: %w", err)
	}
	return nil
}

// ReadEnvelope reads one length-prefixed JSON-encoded envelope from r.
// Missing/invalid payload fields fail safe to the zero value rather than
// erroring, per spec.md §4.10's failure semantics.
func ReadEnvelope(r io.Reader) (Envelope, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return Envelope{}, err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		return Envelope{}, fmt.Errorf("reading envelope body: %w", err)
	}
	var e Envelope
	if err := json.Unmarshal(body, &e); err != nil {
		// Fail-safe to an empty envelope of the zero message type rather
		// than propagating a decode error into the step loop.
		return Envelope{}, nil
	}
	return e, nil
}

// Conn wraps a net.Conn with buffered envelope framing.
type Conn struct {
	nc net.Conn
	r  *bufio.Reader
}

// NewConn wraps an established connection for envelope exchange.
func NewConn(nc net.Conn) *Conn {
	return &Conn{nc: nc, r: bufio.NewReader(nc)}
}

// Send writes one envelope.
func (c *Conn) Send(e Envelope) error { return WriteEnvelope(c.nc, e) }

// Recv reads one envelope.
func (c *Conn) Recv() (Envelope, error) { return ReadEnvelope(c.r) }

// Close closes the underlying connection.
func (c *Conn) Close() error { return c.nc.Close() }
