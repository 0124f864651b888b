package engine

import (
	"time"

	gm "github.com/dylhunn/dragontoothmg"
)

// TimeControl is the parsed `go` command: clocks, increments, explicit move
// time, or a fixed depth. Zero values mean "not given".
type TimeControl struct {
	WTime, BTime int
	WInc, BInc   int
	MoveTime     int
	MovesToGo    int
	Depth        int
	Infinite     bool
}

// Engine-side safety knobs
const (
	overheadMs  = 30  // reserve for protocol/IO jitter
	minMoveMs   = 5   // never less than this
	maxFrac     = 0.7 // never spend more than 70% of remaining time
	panicMs     = 1000
	panicFrac   = 0.90 // in panic mode lean on the increment
	defaultMs   = 300000
	fallbackDiv = 40
)

// Plan fills the search limits on info: the depth cap and, when the clock is
// running, a hard deadline.
func (tc TimeControl) Plan(board *gm.Board, info *SearchInfo) {
	info.DepthLimit = MaxDepth - 1
	if tc.Depth > 0 {
		info.DepthLimit = int8(Clamp(tc.Depth, 1, MaxDepth-1))
	}

	info.TimeSet = false
	if tc.Infinite || (tc.Depth > 0 && tc.MoveTime == 0 && tc.WTime == 0 && tc.BTime == 0) {
		return
	}

	moveTime := tc.MoveTime
	if moveTime == 0 {
		rem, inc := tc.remainingFor(board)
		moveTime = budgetMoveTime(rem, inc, tc.MovesToGo)
	}

	info.TimeSet = true
	info.Deadline = time.Now().Add(time.Duration(moveTime) * time.Millisecond)
}

func (tc TimeControl) remainingFor(board *gm.Board) (rem, inc int) {
	if board.Wtomove {
		rem, inc = tc.WTime, tc.WInc
	} else {
		rem, inc = tc.BTime, tc.BInc
	}
	if rem <= 0 {
		rem = defaultMs
	}
	return rem, inc
}

// budgetMoveTime splits the remaining clock across the moves we still expect
// to play, banking time when the clock runs dangerously low.
func budgetMoveTime(rem, inc, movesToGo int) int {
	movesLeft := movesToGo
	if movesLeft <= 0 {
		movesLeft = fallbackDiv
	}

	var moveTime int
	if inc > 0 {
		if rem < panicMs {
			moveTime = int(float64(inc) * panicFrac)
		} else {
			moveTime = rem/movesLeft + inc
		}
	} else {
		moveTime = rem / movesLeft
	}

	if moveTime > int(float64(rem)*maxFrac) {
		moveTime = int(float64(rem) * maxFrac)
	}
	if moveTime > rem-overheadMs {
		moveTime = rem - overheadMs
	}
	if moveTime < minMoveMs {
		moveTime = minMoveMs
	}
	return moveTime
}
