package engine

import (
	gm "github.com/dylhunn/dragontoothmg"
)

/*
	HISTORY HEURISTIC
	Quiet moves that caused a beta-cutoff earn a depth-squared bonus keyed by
	(side, piece, to-square). The table is scaled down by historyAgingShift at
	the start of every search, so old evidence fades without being discarded.
*/

const historyAgingShift = 4 // divide by 16 per search
var historyMax int32 = 10000 // Ensure history scores stay below the killer band

type historyTable struct {
	scores [2][7][64]int32
}

func sideIndex(wtomove bool) int {
	if wtomove {
		return 0
	}
	return 1
}

func (h *historyTable) score(side int, piece gm.Piece, to uint8) int32 {
	return h.scores[side][piece][to]
}

// Increment the history score for the given move if it caused a beta-cutoff and is quiet.
func (h *historyTable) increment(side int, piece gm.Piece, to uint8, depth int8) {
	h.scores[side][piece][to] += int32(depth) * int32(depth)
	if h.scores[side][piece][to] >= historyMax {
		h.age(1)
	}
}

// age halves (or more) every entry; shift 4 is the per-search scaling.
func (h *historyTable) age(shift uint) {
	for side := 0; side < 2; side++ {
		for piece := 0; piece < 7; piece++ {
			for sq := 0; sq < 64; sq++ {
				h.scores[side][piece][sq] >>= shift
			}
		}
	}
}

func (h *historyTable) clear() {
	*h = historyTable{}
}
