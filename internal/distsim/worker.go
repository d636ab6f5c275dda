package distsim

import (
	"errors"
	"fmt"
	"net"
)

// UpdateFunc advances one assigned entity by dt seconds at simulated time
// t. It is the worker's per-entity update hook; the tacsim worker command
// supplies one that runs only physics.Step on the entity (no AI, sensors
// or weapons).
type UpdateFunc func(entityID string, t, dt float64) error

// StateFunc reports one entity's current position/velocity for a
// SYNC_RESPONSE reply.
type StateFunc func(entityID string) (pos, vel [3]float64, ok bool)

// Worker is one worker process's connection to the coordinator.
type Worker struct {
	conn      *Conn
	entityIDs []string
	update    UpdateFunc
}

// Dial connects to the coordinator's socket and sends the initial READY.
func Dial(path string) (*Worker, error) {
	nc, err := net.Dial("unix", path)
	if err != nil {
		return nil, fmt.Errorf("dialing coordinator at %s: %w", path, err)
	}
	conn := NewConn(nc)
	if err := conn.Send(NewEnvelope(MsgReady, "", 0)); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("sending initial READY: %w", err)
	}
	return &Worker{conn: conn}, nil
}

// ErrShutdown is returned by Run when the coordinator cleanly closed the
// session with SHUTDOWN.
var ErrShutdown = errors.New("distsim: worker received shutdown")

// Run processes envelopes from the coordinator until SHUTDOWN or a
// connection error. update is called once per assigned entity per STEP;
// state supplies SYNC_RESPONSE data. A worker whose update call returns an
// error breaks out of the loop and closes the channel, per spec.md
// §4.10's failure semantics, leaving the coordinator's barrier to time
// out on that worker.
func (w *Worker) Run(update UpdateFunc, state StateFunc) error {
	w.update = update
	defer w.conn.Close()
	for {
		env, err := w.conn.Recv()
		if err != nil {
			return fmt.Errorf("reading envelope: %w", err)
		}
		switch env.Type {
		case MsgInit:
			var p InitPayload
			decodePayload(env.Payload, &p)
			w.entityIDs = p.EntityIDs
			if err := w.conn.Send(NewEnvelope(MsgReady, "", env.Timestamp)); err != nil {
				return err
			}
		case MsgStep:
			var p StepPayload
			decodePayload(env.Payload, &p)
			if err := w.runStep(p); err != nil {
				return err
			}
		case MsgSyncRequest:
			if err := w.runSync(env.Timestamp, state); err != nil {
				return err
			}
		case MsgShutdown:
			return ErrShutdown
		}
	}
}

func (w *Worker) runStep(p StepPayload) error {
	for _, id := range w.entityIDs {
		if w.update == nil {
			continue
		}
		if err := w.update(id, p.Time, p.Dt); err != nil {
			return fmt.Errorf("updating entity %s: %w", id, err)
		}
	}
	return w.conn.Send(NewEnvelope(MsgStepComplete, "", p.Time+p.Dt))
}

func (w *Worker) runSync(t float64, state StateFunc) error {
	var entities []EntityState
	if state != nil {
		for _, id := range w.entityIDs {
			pos, vel, ok := state(id)
			if !ok {
				continue
			}
			entities = append(entities, EntityState{ID: id, Position: pos, Velocity: vel, Time: t})
		}
	}
	payload := encodePayload(SyncResponsePayload{Entities: entities})
	return w.conn.Send(NewEnvelope(MsgSyncResponse, payload, t))
}
