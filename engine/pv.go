package engine

import (
	"strings"

	gm "github.com/dylhunn/dragontoothmg"
)

/*
	Principal variation table, triangular layout.

	Row p holds the best line found from ply p and can never be longer than
	MaxDepth-p moves, so the rows pack into one flat buffer of
	MaxDepth*(MaxDepth+1)/2 moves with per-row start offsets. No per-row
	allocations, and a child line copy is a single copy() over the buffer.
*/

type pvTable struct {
	moves [MaxDepth * (MaxDepth + 1) / 2]gm.Move
	size  [MaxDepth]int
}

func pvRowStart(ply int) int {
	// Row p starts after rows of length MaxDepth, MaxDepth-1, ..., MaxDepth-p+1.
	return ply*MaxDepth - ply*(ply-1)/2
}

func (pv *pvTable) clear() {
	for ply := 0; ply < MaxDepth; ply++ {
		pv.size[ply] = 0
	}
}

// beginPly marks the row empty before the ply is searched.
func (pv *pvTable) beginPly(ply int) {
	pv.size[ply] = 0
}

// update records move as the best at ply and pulls up the child line below it.
func (pv *pvTable) update(ply int, move gm.Move) {
	row := pvRowStart(ply)
	pv.moves[row] = move
	if ply+1 < MaxDepth {
		child := pvRowStart(ply + 1)
		n := pv.size[ply+1]
		copy(pv.moves[row+1:row+1+n], pv.moves[child:child+n])
		pv.size[ply] = n + 1
	} else {
		pv.size[ply] = 1
	}
}

// line returns the stored principal variation from the given ply.
func (pv *pvTable) line(ply int) []gm.Move {
	row := pvRowStart(ply)
	return pv.moves[row : row+pv.size[ply]]
}

// bestMove is the root move of the last completed iteration.
func (pv *pvTable) bestMove() gm.Move {
	if pv.size[0] == 0 {
		return NullMove
	}
	return pv.moves[0]
}

func (pv *pvTable) rootLineString() string {
	var sb strings.Builder
	for i, m := range pv.line(0) {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(moveString(m))
	}
	return sb.String()
}
