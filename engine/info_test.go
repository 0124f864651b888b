package engine

import (
	"testing"
	"time"
)

func TestSearchInfoClearPreservesLimits(t *testing.T) {
	var info SearchInfo
	info.DepthLimit = 12
	info.TimeSet = true
	info.Deadline = time.Now().Add(time.Minute)
	info.Nodes = 99
	info.Seldepth = 7
	info.FailHigh = 3
	info.FailHighFirst = 2
	info.RequestStop()

	info.Clear()

	if info.Nodes != 0 || info.Seldepth != 0 || info.FailHigh != 0 || info.FailHighFirst != 0 {
		t.Fatalf("counters survived Clear: %+v", &info)
	}
	if info.StopRequested() {
		t.Fatalf("stop flag survived Clear")
	}
	if info.DepthLimit != 12 || !info.TimeSet {
		t.Fatalf("limits did not survive Clear: %+v", &info)
	}
}

func TestStoppedByFlagAndDeadline(t *testing.T) {
	var info SearchInfo
	if info.Stopped() {
		t.Fatalf("fresh info already stopped")
	}

	info.RequestStop()
	if !info.Stopped() {
		t.Fatalf("stop request not observed")
	}

	info.Clear()
	info.TimeSet = true
	info.Deadline = time.Now().Add(-time.Millisecond)
	if !info.Stopped() {
		t.Fatalf("expired deadline not observed")
	}

	info.Deadline = time.Now().Add(time.Hour)
	if info.Stopped() {
		t.Fatalf("future deadline reported as expired")
	}
}
