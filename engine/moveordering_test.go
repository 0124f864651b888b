package engine

import (
	"testing"

	gm "github.com/dylhunn/dragontoothmg"
)

func findMoveByString(t *testing.T, board *gm.Board, uci string) gm.Move {
	t.Helper()
	for _, m := range board.GenerateLegalMoves() {
		if m.String() == uci {
			return m
		}
	}
	t.Fatalf("move %s not found in position %s", uci, board.ToFen())
	return NullMove
}

func TestNextBestConsumesInScoreOrder(t *testing.T) {
	var ml moveList
	ml.add(gm.Move(1), 10, 0)
	ml.add(gm.Move(2), 30, 0)
	ml.add(gm.Move(3), 20, 0)

	wantOrder := []gm.Move{2, 3, 1}
	for i, want := range wantOrder {
		if got := ml.NextBest(); got != want {
			t.Fatalf("pick %d: got move %d, want %d", i, got, want)
		}
	}
	if got := ml.NextBest(); got != NullMove {
		t.Fatalf("exhausted list returned %d, want null move", got)
	}
}

func TestNextBestStableOnTies(t *testing.T) {
	var ml moveList
	ml.add(gm.Move(7), 5, 0)
	ml.add(gm.Move(8), 5, 0)
	ml.add(gm.Move(9), 5, 0)
	for _, want := range []gm.Move{7, 8, 9} {
		if got := ml.NextBest(); got != want {
			t.Fatalf("tie broken out of insertion order: got %d, want %d", got, want)
		}
	}
}

func TestMoveListRemove(t *testing.T) {
	var ml moveList
	ml.add(gm.Move(1), 0, 0)
	ml.add(gm.Move(2), 0, 0)
	ml.add(gm.Move(3), 0, 0)
	if !ml.removeMove(gm.Move(2)) {
		t.Fatalf("failed to remove a present move")
	}
	if ml.removeMove(gm.Move(2)) {
		t.Fatalf("removed the same move twice")
	}
	if ml.Len() != 2 {
		t.Fatalf("length %d after removal, want 2", ml.Len())
	}
}

func TestScoreMovesCapturesBeforeQuiets(t *testing.T) {
	// White can capture the d5 pawn with the e4 pawn.
	board := gm.ParseFen("rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2")
	var killers [2]gm.Move
	var history historyTable
	ml := scoreMoves(&board, board.GenerateLegalMoves(), NullMove, &killers, &history)

	first := ml.NextBest()
	if first.String() != "e4d5" {
		t.Fatalf("first ordered move %s, want the capture e4d5", first.String())
	}
}

func TestScoreMovesPVFirst(t *testing.T) {
	board := gm.ParseFen(gm.Startpos)
	pvMove := findMoveByString(t, &board, "g1f3")
	var killers [2]gm.Move
	var history historyTable
	ml := scoreMoves(&board, board.GenerateLegalMoves(), pvMove, &killers, &history)

	if first := ml.NextBest(); first != pvMove {
		t.Fatalf("first ordered move %s, want the hinted %s", first.String(), pvMove.String())
	}
}

func TestScoreMovesKillersBeforeHistory(t *testing.T) {
	board := gm.ParseFen(gm.Startpos)
	killer := findMoveByString(t, &board, "b1c3")
	other := findMoveByString(t, &board, "g1f3")
	killers := [2]gm.Move{killer, NullMove}
	var history historyTable
	// Give a competing quiet move a solid history score; the killer still
	// has to come out first.
	history.increment(0, gm.Knight, uint8(other.To()), 8)
	ml := scoreMoves(&board, board.GenerateLegalMoves(), NullMove, &killers, &history)

	if first := ml.NextBest(); first != killer {
		t.Fatalf("first ordered move %s, want the killer %s", first.String(), killer.String())
	}
}

func TestScoreNoisyMovesFiltersQuiets(t *testing.T) {
	board := gm.ParseFen("rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2")
	ml := scoreNoisyMoves(&board, board.GenerateLegalMoves())
	if ml.Len() != 1 {
		t.Fatalf("noisy list has %d entries, want just the e4d5 capture", ml.Len())
	}
	if got := ml.NextBest(); got.String() != "e4d5" {
		t.Fatalf("noisy move %s, want e4d5", got.String())
	}
}

func TestKillerInsertion(t *testing.T) {
	var stack searchStack
	stack.insertKiller(gm.Move(11), 3)
	stack.insertKiller(gm.Move(22), 3)
	if stack[3].killers[0] != 22 || stack[3].killers[1] != 11 {
		t.Fatalf("killers = %v, want [22 11]", stack[3].killers)
	}
	// Re-inserting the current first killer must not duplicate it.
	stack.insertKiller(gm.Move(22), 3)
	if stack[3].killers[0] != 22 || stack[3].killers[1] != 11 {
		t.Fatalf("killers after repeat = %v, want [22 11]", stack[3].killers)
	}
}

func TestHistoryAging(t *testing.T) {
	var h historyTable
	h.increment(0, gm.Knight, 42, 4)
	if h.score(0, gm.Knight, 42) != 16 {
		t.Fatalf("history bonus = %d, want depth squared", h.score(0, gm.Knight, 42))
	}
	h.age(historyAgingShift)
	if h.score(0, gm.Knight, 42) != 1 {
		t.Fatalf("aged history = %d, want 1", h.score(0, gm.Knight, 42))
	}
}
