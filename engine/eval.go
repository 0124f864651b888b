package engine

import (
	"math/bits"
	"sync"

	gm "github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog/log"
)

// =============================================================================
// MATERIAL
// =============================================================================
var PieceValueMG = [7]int32{0, 100, 320, 330, 500, 900, 0}
var PieceValueEG = [7]int32{0, 120, 300, 320, 550, 950, 0}

var tempoBonus int32 = 10

// Game phase weights per piece; 24 with all minors and majors on the board.
var phaseWeight = [7]int32{0, 0, 1, 1, 2, 4, 0}

const totalPhase int32 = 24

// EvalScratch is the per-search evaluation workspace. One lives in each
// search instance, never shared across workers.
type EvalScratch struct {
	phase      int32
	middlegame int32
	endgame    int32
	score      int32
}

// =============================================================================
// PIECE-SQUARE TABLES
// Written rank 8 first, as seen from White; white lookups flip with sq^56.
// =============================================================================
var pawnTableMG = [64]int32{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var pawnTableEG = [64]int32{
	0, 0, 0, 0, 0, 0, 0, 0,
	80, 80, 80, 80, 80, 80, 80, 80,
	50, 50, 50, 50, 50, 50, 50, 50,
	30, 30, 30, 30, 30, 30, 30, 30,
	15, 15, 15, 15, 15, 15, 15, 15,
	5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightTable = [64]int32{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopTable = [64]int32{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookTable = [64]int32{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

var queenTable = [64]int32{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingTableMG = [64]int32{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

var kingTableEG = [64]int32{
	-50, -40, -30, -20, -20, -30, -40, -50,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-50, -30, -30, -30, -30, -30, -30, -50,
}

func psqt(piece gm.Piece, sq int, endgame bool) int32 {
	switch piece {
	case gm.Pawn:
		if endgame {
			return pawnTableEG[sq]
		}
		return pawnTableMG[sq]
	case gm.Knight:
		return knightTable[sq]
	case gm.Bishop:
		return bishopTable[sq]
	case gm.Rook:
		return rookTable[sq]
	case gm.Queen:
		return queenTable[sq]
	case gm.King:
		if endgame {
			return kingTableEG[sq]
		}
		return kingTableMG[sq]
	}
	return 0
}

var clampWarnOnce sync.Once

// Evaluation is the static tapered evaluation, in centipawns from the side
// to move's perspective.
func Evaluation(board *gm.Board, scratch *EvalScratch) int32 {
	scratch.phase = 0
	scratch.middlegame = 0
	scratch.endgame = 0

	scratch.accumulate(&board.White, true)
	scratch.accumulate(&board.Black, false)

	phase := Clamp(scratch.phase, 0, totalPhase)
	score := (scratch.middlegame*phase + scratch.endgame*(totalPhase-phase)) / totalPhase

	if !board.Wtomove {
		score = -score
	}
	score += tempoBonus

	// A static score can never reach the mate band; anything out there is a
	// corrupted term and gets clamped so the search's mate accounting holds.
	limit := MateScore - int32(MaxDepth)
	if score > limit || score < -limit {
		clampWarnOnce.Do(func() {
			log.Warn().Int32("score", score).Str("fen", board.ToFen()).
				Msg("static evaluation clamped to mate boundary")
		})
		score = Clamp(score, -limit, limit)
	}

	scratch.score = score
	return score
}

// accumulate folds one side's material and piece-square terms into the
// scratch, from White's perspective.
func (e *EvalScratch) accumulate(bb *gm.Bitboards, white bool) {
	sign := int32(1)
	if !white {
		sign = -1
	}
	pieces := [6]struct {
		piece gm.Piece
		board uint64
	}{
		{gm.Pawn, bb.Pawns},
		{gm.Knight, bb.Knights},
		{gm.Bishop, bb.Bishops},
		{gm.Rook, bb.Rooks},
		{gm.Queen, bb.Queens},
		{gm.King, bb.Kings},
	}
	for _, p := range pieces {
		for x := p.board; x != 0; x &= x - 1 {
			sq := bits.TrailingZeros64(x)
			tableSq := sq
			if white {
				tableSq = sq ^ 56
			}
			e.phase += phaseWeight[p.piece]
			e.middlegame += sign * (PieceValueMG[p.piece] + psqt(p.piece, tableSq, false))
			e.endgame += sign * (PieceValueEG[p.piece] + psqt(p.piece, tableSq, true))
		}
	}
}
