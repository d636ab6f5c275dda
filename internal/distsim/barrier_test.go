package distsim

import (
	"sync"
	"testing"
	"time"
)

func TestBarrierReleasesOnceAllWorkersReport(t *testing.T) {
	b := NewBarrier(3)
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.WorkerDone(i, true)
		}()
	}
	if !b.WaitForAll(time.Second) {
		t.Fatalf("expected barrier to release once all workers reported")
	}
	wg.Wait()
	if !b.AllSucceeded() {
		t.Fatalf("expected all_succeeded true when every worker reported ok")
	}
}

func TestBarrierTimesOutWhenAWorkerNeverReports(t *testing.T) {
	b := NewBarrier(2)
	b.WorkerDone(0, true)
	if b.WaitForAll(50 * time.Millisecond) {
		t.Fatalf("expected timeout when only 1 of 2 workers reported")
	}
}

func TestWorkerDoneIsIdempotentPerCycle(t *testing.T) {
	b := NewBarrier(1)
	b.WorkerDone(0, true)
	b.WorkerDone(0, false) // second call for same k this cycle must be ignored
	if !b.WaitForAll(time.Second) {
		t.Fatalf("expected barrier to release")
	}
	if !b.AllSucceeded() {
		t.Fatalf("expected the first (ok=true) report to stick, not the ignored second call")
	}
}

func TestResetAllowsNextCycle(t *testing.T) {
	b := NewBarrier(1)
	b.WorkerDone(0, true)
	b.WaitForAll(time.Second)
	b.Reset()

	if b.WaitForAll(50 * time.Millisecond) {
		t.Fatalf("expected barrier to block again after reset until re-reported")
	}
	b.WorkerDone(0, false)
	if !b.WaitForAll(time.Second) {
		t.Fatalf("expected barrier to release on second cycle")
	}
	if b.AllSucceeded() {
		t.Fatalf("expected all_succeeded false: second cycle reported ok=false")
	}
}

func TestAllSucceededFalseWhenAnyWorkerFailed(t *testing.T) {
	b := NewBarrier(2)
	b.WorkerDone(0, true)
	b.WorkerDone(1, false)
	b.WaitForAll(time.Second)
	if b.AllSucceeded() {
		t.Fatalf("expected all_succeeded false when one worker reported ok=false")
	}
}
