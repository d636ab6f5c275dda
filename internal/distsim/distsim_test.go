package distsim

import (
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestCoordinatorWorkerLifecycle(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "tacsim.sock")

	coord, err := Listen(sock)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	var wg sync.WaitGroup
	var updateCount int
	var mu sync.Mutex

	wg.Add(1)
	go func() {
		defer wg.Done()
		w, err := Dial(sock)
		if err != nil {
			t.Errorf("dial: %v", err)
			return
		}
		update := func(id string, simTime, dt float64) error {
			mu.Lock()
			updateCount++
			mu.Unlock()
			return nil
		}
		state := func(id string) ([3]float64, [3]float64, bool) {
			return [3]float64{1, 2, 3}, [3]float64{0, 0, 0}, true
		}
		if err := w.Run(update, state); err != nil && err != ErrShutdown {
			t.Errorf("worker run: %v", err)
		}
	}()

	if err := coord.AcceptWorkers(1); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := coord.Init([][]string{{"e1", "e2"}}); err != nil {
		t.Fatalf("init: %v", err)
	}

	for step := 0; step < 3; step++ {
		ok := coord.Step(float64(step), 0.1, time.Second)
		if !ok {
			t.Fatalf("step %d: expected barrier to release successfully", step)
		}
	}

	entities, ok := coord.SyncAll(0.3, time.Second)
	if !ok {
		t.Fatalf("expected sync to succeed")
	}
	if len(entities) != 2 {
		t.Fatalf("expected 2 entity states from sync, got %d", len(entities))
	}

	coord.Shutdown()
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if updateCount != 6 {
		t.Fatalf("expected 2 entities x 3 steps = 6 update calls, got %d", updateCount)
	}
}

func TestEnvelopeFailsSafeOnInvalidPayload(t *testing.T) {
	var p StepPayload
	decodePayload("{not valid json", &p)
	if p.Dt != 0 || p.Time != 0 {
		t.Fatalf("expected zero-value fail-safe decode, got %+v", p)
	}
	decodePayload("", &p)
	if p.Dt != 0 {
		t.Fatalf("expected empty payload to decode to zero value")
	}
}
