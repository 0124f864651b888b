package engine

import (
	gm "github.com/dylhunn/dragontoothmg"
)

const fiftyMoveLimit = 100

// histState captures what we need to reason about repetitions and draws.
type histState struct {
	hash   uint64
	rule50 int
}

// HistoryStack records the Zobrist hash of every position reached since the
// last irreversible reset. The driver seeds it with the game moves; the
// search pushes and pops around every make/undo.
type HistoryStack struct {
	states []histState
}

// Reset rebuilds the stack so that it only contains the current board.
func (h *HistoryStack) Reset(board *gm.Board) {
	h.states = h.states[:0]
	h.Push(board)
}

// Push appends the board's current state to the stack.
func (h *HistoryStack) Push(board *gm.Board) {
	h.states = append(h.states, histState{
		hash:   board.Hash(),
		rule50: int(board.Halfmoveclock),
	})
}

func (h *HistoryStack) Pop() {
	if len(h.states) == 0 {
		return
	}
	h.states = h.states[:len(h.states)-1]
}

// IsRepetition reports whether the current position's hash occurred earlier,
// scanning back no further than the halfmove clock allows.
func (h *HistoryStack) IsRepetition() bool {
	if len(h.states) <= 1 {
		return false
	}
	curr := h.states[len(h.states)-1]
	start := len(h.states) - 1 - curr.rule50
	if start < 0 {
		start = 0
	}
	for i := len(h.states) - 2; i >= start; i-- {
		if h.states[i].hash == curr.hash {
			return true
		}
	}
	return false
}

// FiftyMoveDraw reports whether the halfmove clock has hit the limit.
func (h *HistoryStack) FiftyMoveDraw() bool {
	if len(h.states) == 0 {
		return false
	}
	return h.states[len(h.states)-1].rule50 >= fiftyMoveLimit
}

func (h *HistoryStack) Len() int {
	return len(h.states)
}
