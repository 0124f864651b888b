package engine

import (
	gm "github.com/dylhunn/dragontoothmg"
)

// MaxMoves bounds any move list; no legal chess position exceeds 218 moves.
const MaxMoves = 256

type scoredMove struct {
	move          gm.Move
	score         uint16
	capturedPiece gm.Piece
}

// moveList is a bounded list of scored moves. Ordering routines permute it in
// place; NextBest consumes entries front to back, rotating the chosen entry
// forward so equal scores keep their generation order.
type moveList struct {
	moves [MaxMoves]scoredMove
	count int
	next  int
}

func (ml *moveList) add(m gm.Move, score uint16, captured gm.Piece) {
	if ml.count >= MaxMoves {
		return
	}
	ml.moves[ml.count] = scoredMove{move: m, score: score, capturedPiece: captured}
	ml.count++
}

func (ml *moveList) Len() int {
	return ml.count
}

// NextBest returns the highest-scoring move not yet consumed and marks it
// consumed. Returns NullMove once the list is exhausted.
func (ml *moveList) NextBest() gm.Move {
	if ml.next >= ml.count {
		return NullMove
	}
	bestIndex := ml.next
	bestScore := ml.moves[bestIndex].score
	for i := ml.next + 1; i < ml.count; i++ {
		if ml.moves[i].score > bestScore {
			bestIndex = i
			bestScore = ml.moves[i].score
		}
	}
	best := ml.moves[bestIndex]
	copy(ml.moves[ml.next+1:bestIndex+1], ml.moves[ml.next:bestIndex])
	ml.moves[ml.next] = best
	m := best.move
	ml.next++
	return m
}

// removeMove drops the first occurrence of m, preserving order of the rest.
func (ml *moveList) removeMove(m gm.Move) bool {
	for i := ml.next; i < ml.count; i++ {
		if ml.moves[i].move == m {
			copy(ml.moves[i:ml.count-1], ml.moves[i+1:ml.count])
			ml.count--
			return true
		}
	}
	return false
}
