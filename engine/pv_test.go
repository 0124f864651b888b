package engine

import (
	"testing"

	gm "github.com/dylhunn/dragontoothmg"
)

func TestPVRowStarts(t *testing.T) {
	if pvRowStart(0) != 0 {
		t.Fatalf("row 0 starts at %d", pvRowStart(0))
	}
	// Consecutive rows shrink by one slot each.
	for ply := 1; ply < MaxDepth; ply++ {
		width := pvRowStart(ply) - pvRowStart(ply-1)
		if width != MaxDepth-(ply-1) {
			t.Fatalf("row %d has width %d, want %d", ply-1, width, MaxDepth-(ply-1))
		}
	}
	last := pvRowStart(MaxDepth-1) + 1
	if last > len(pvTable{}.moves) {
		t.Fatalf("triangular layout overruns the flat buffer: %d > %d", last, len(pvTable{}.moves))
	}
}

func TestPVUpdatePullsChildLine(t *testing.T) {
	var pv pvTable
	pv.beginPly(2)
	pv.update(2, gm.Move(30))

	pv.beginPly(1)
	pv.update(1, gm.Move(20))

	pv.beginPly(0)
	pv.update(0, gm.Move(10))

	line := pv.line(0)
	want := []gm.Move{10, 20, 30}
	if len(line) != len(want) {
		t.Fatalf("pv length %d, want %d", len(line), len(want))
	}
	for i := range want {
		if line[i] != want[i] {
			t.Fatalf("pv[%d] = %d, want %d", i, line[i], want[i])
		}
	}
	if pv.bestMove() != 10 {
		t.Fatalf("bestMove = %d, want 10", pv.bestMove())
	}
}

func TestPVClear(t *testing.T) {
	var pv pvTable
	pv.beginPly(0)
	pv.update(0, gm.Move(5))
	pv.clear()
	if pv.bestMove() != NullMove {
		t.Fatalf("cleared table still reports a best move")
	}
	if len(pv.line(0)) != 0 {
		t.Fatalf("cleared table still has a line")
	}
}
