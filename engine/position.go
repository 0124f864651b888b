package engine

import (
	"math/bits"

	gm "github.com/dylhunn/dragontoothmg"
)

// inCheck reports whether the given side's king is attacked, regardless of
// who is to move.
func inCheck(board *gm.Board, white bool) bool {
	var kings uint64
	if white {
		kings = board.White.Kings
	} else {
		kings = board.Black.Kings
	}
	if kings == 0 {
		return false
	}
	kingSq := uint8(bits.TrailingZeros64(kings))
	byBlack := white // the attacker is the opposite color
	return board.UnderDirectAttack(byBlack, kingSq)
}

// sideInCheckCode mirrors pos.turn: 0 for White, 1 for Black.
func sideInCheckCode(board *gm.Board, color int) bool {
	return inCheck(board, color == 0)
}

func colorCode(wtomove bool) int {
	if wtomove {
		return 0
	}
	return 1
}

func containsMove(moves []gm.Move, m gm.Move) bool {
	for _, x := range moves {
		if x == m {
			return true
		}
	}
	return false
}
