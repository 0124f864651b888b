package engine

import (
	gm "github.com/dylhunn/dragontoothmg"
)

// Most Valuable Victim - Least Valuable Aggressor; used to score & sort captures
var mvvLva = [7][7]uint16{
	{0, 0, 0, 0, 0, 0, 0},
	{0, 14, 13, 12, 11, 10, 0}, // victim Pawn
	{0, 24, 23, 22, 21, 20, 0}, // victim Knight
	{0, 34, 33, 32, 31, 30, 0}, // victim Bishop
	{0, 44, 43, 42, 41, 40, 0}, // victim Rook
	{0, 54, 53, 52, 51, 50, 0}, // victim Queen
	{0, 0, 0, 0, 0, 0, 0},      // victim King
}

/*
	Move ordering offsets.
	A hinted PV move goes first, then captures by MVV-LVA, then promotions,
	then the two killers of the current ply. Everything quiet falls back to
	the history heuristic, whose values stay below historyMax so the bands
	never overlap.
*/
var pvOffset uint16 = 30000
var captureOffset uint16 = 20000
var promotionOffset uint16 = 15000
var killerOffset uint16 = 12000

// GetPieceTypeAtPosition reports which piece of the given bitboard set, if
// any, sits on the square.
func GetPieceTypeAtPosition(position uint8, bitboards *gm.Bitboards) (pieceType gm.Piece, occupied bool) {
	if bitboards.Pawns&(1<<position) > 0 {
		return gm.Pawn, true
	} else if bitboards.Knights&(1<<position) > 0 {
		return gm.Knight, true
	} else if bitboards.Bishops&(1<<position) > 0 {
		return gm.Bishop, true
	} else if bitboards.Rooks&(1<<position) > 0 {
		return gm.Rook, true
	} else if bitboards.Queens&(1<<position) > 0 {
		return gm.Queen, true
	} else if bitboards.Kings&(1<<position) > 0 {
		return gm.King, true
	}
	return 0, false
}

func sideBitboards(board *gm.Board) (own, opponent *gm.Bitboards) {
	if board.Wtomove {
		return &board.White, &board.Black
	}
	return &board.Black, &board.White
}

// scoreMoves fills a moveList from the generated moves, annotating each with
// its ordering priority.
func scoreMoves(board *gm.Board, moves []gm.Move, pvMove gm.Move, killers *[2]gm.Move, history *historyTable) (ml moveList) {
	own, opponent := sideBitboards(board)
	side := sideIndex(board.Wtomove)

	for _, move := range moves {
		var moveEval uint16
		capturedPiece, isCapture := GetPieceTypeAtPosition(uint8(move.To()), opponent)
		promotePiece := move.Promote()

		switch {
		case move == pvMove:
			moveEval = pvOffset
		case isCapture:
			attacker, _ := GetPieceTypeAtPosition(uint8(move.From()), own)
			moveEval = captureOffset + mvvLva[capturedPiece][attacker]
		case promotePiece > 0:
			moveEval = promotionOffset + uint16(promotePiece)
		case killers != nil && killers[0] == move:
			moveEval = killerOffset + 200
		case killers != nil && killers[1] == move:
			moveEval = killerOffset
		default:
			piece, _ := GetPieceTypeAtPosition(uint8(move.From()), own)
			moveEval = uint16(history.score(side, piece, uint8(move.To())))
		}

		ml.add(move, moveEval, capturedPiece)
	}
	return ml
}

// scoreNoisyMoves keeps only captures and promotions, the move set quiescence
// is allowed to look at.
func scoreNoisyMoves(board *gm.Board, moves []gm.Move) (ml moveList) {
	own, opponent := sideBitboards(board)

	for _, move := range moves {
		enemyPiece, isCapture := GetPieceTypeAtPosition(uint8(move.To()), opponent)
		isPromotion := move.Promote() > 0
		if !isCapture && !isPromotion && !gm.IsCapture(move, board) {
			continue
		}

		var moveEval uint16
		if isPromotion {
			moveEval = promotionOffset + uint16(move.Promote())
		} else if isCapture {
			attacker, _ := GetPieceTypeAtPosition(uint8(move.From()), own)
			moveEval = captureOffset + mvvLva[enemyPiece][attacker]
		} else {
			// En passant: the target square is empty, IsCapture caught it.
			moveEval = captureOffset + mvvLva[gm.Pawn][gm.Pawn]
			enemyPiece = gm.Pawn
		}
		ml.add(move, moveEval, enemyPiece)
	}
	return ml
}
