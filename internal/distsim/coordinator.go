package distsim

import (
	"fmt"
	"net"
	"os"
	"time"
)

// workerHandle is the coordinator's view of one connected worker.
type workerHandle struct {
	conn      *Conn
	entityIDs []string
}

// Coordinator partitions entities across N workers and drives the
// barrier-synchronized step lifecycle spec.md §4.10 describes, over a
// path-addressed local (unix-domain) socket.
type Coordinator struct {
	listener net.Listener
	workers  []*workerHandle
}

// Listen opens the coordinator's socket at path, removing any stale
// socket file left behind by a prior run.
func Listen(path string) (*Coordinator, error) {
	_ = os.Remove(path)
	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", path, err)
	}
	return &Coordinator{listener: ln}, nil
}

// AcceptWorkers blocks until n workers have connected and sent READY.
func (c *Coordinator) AcceptWorkers(n int) error {
	for i := 0; i < n; i++ {
		nc, err := c.listener.Accept()
		if err != nil {
			return fmt.Errorf("accepting worker %d: %w", i, err)
		}
		conn := NewConn(nc)
		env, err := conn.Recv()
		if err != nil || env.Type != MsgReady {
			_ = conn.Close()
			return fmt.Errorf("worker %d did not send READY", i)
		}
		c.workers = append(c.workers, &workerHandle{conn: conn})
	}
	return nil
}

// Init sends each worker its assigned entity id subset and waits for its
// acknowledging READY.
func (c *Coordinator) Init(assignments [][]string) error {
	if len(assignments) != len(c.workers) {
		return fmt.Errorf("assignment count %d does not match worker count %d", len(assignments), len(c.workers))
	}
	for i, w := range c.workers {
		w.entityIDs = assignments[i]
		payload := encodePayload(InitPayload{EntityIDs: assignments[i]})
		if err := w.conn.Send(NewEnvelope(MsgInit, payload, 0)); err != nil {
			return fmt.Errorf("sending INIT to worker %d: %w", i, err)
		}
		env, err := w.conn.Recv()
		if err != nil || env.Type != MsgReady {
			return fmt.Errorf("worker %d did not acknowledge INIT", i)
		}
	}
	return nil
}

// Step drives one barrier-synchronized step: sends STEP to every worker,
// waits (up to timeout) for every STEP_COMPLETE, and reports whether the
// step succeeded across the whole fleet.
func (c *Coordinator) Step(t, dt float64, timeout time.Duration) bool {
	barrier := NewBarrier(len(c.workers))
	payload := encodePayload(StepPayload{Dt: dt, Time: t})

	for i, w := range c.workers {
		i, w := i, w
		go func() {
			if err := w.conn.Send(NewEnvelope(MsgStep, payload, t)); err != nil {
				barrier.WorkerDone(i, false)
				return
			}
			env, err := w.conn.Recv()
			barrier.WorkerDone(i, err == nil && env.Type == MsgStepComplete)
		}()
	}

	released := barrier.WaitForAll(timeout)
	return released && barrier.AllSucceeded()
}

// SyncAll broadcasts SYNC_REQUEST and collects each worker's
// SYNC_RESPONSE, flattening every reported entity's state into one slice.
func (c *Coordinator) SyncAll(t float64, timeout time.Duration) ([]EntityState, bool) {
	results := make([][]EntityState, len(c.workers))
	barrier := NewBarrier(len(c.workers))

	for i, w := range c.workers {
		i, w := i, w
		go func() {
			if err := w.conn.Send(NewEnvelope(MsgSyncRequest, "", t)); err != nil {
				barrier.WorkerDone(i, false)
				return
			}
			env, err := w.conn.Recv()
			if err != nil || env.Type != MsgSyncResponse {
				barrier.WorkerDone(i, false)
				return
			}
			var resp SyncResponsePayload
			decodePayload(env.Payload, &resp)
			results[i] = resp.Entities
			barrier.WorkerDone(i, true)
		}()
	}

	released := barrier.WaitForAll(timeout)
	ok := released && barrier.AllSucceeded()

	var all []EntityState
	for _, r := range results {
		all = append(all, r...)
	}
	return all, ok
}

// Shutdown sends SHUTDOWN to every worker and closes all connections and
// the listening socket.
func (c *Coordinator) Shutdown() {
	for _, w := range c.workers {
		_ = w.conn.Send(NewEnvelope(MsgShutdown, "", 0))
		_ = w.conn.Close()
	}
	if c.listener != nil {
		_ = c.listener.Close()
	}
}
