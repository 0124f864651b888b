package engine

import (
	gm "github.com/dylhunn/dragontoothmg"
)

// stackEntry is one ply of the search stack: the two quiet moves that last
// caused a beta-cutoff here, and the cached static score of the position.
type stackEntry struct {
	killers [2]gm.Move
	score   int32
}

type searchStack [MaxDepth + 1]stackEntry

func (s *searchStack) insertKiller(move gm.Move, ply int) {
	if move != s[ply].killers[0] {
		s[ply].killers[1] = s[ply].killers[0]
		s[ply].killers[0] = move
	}
}

// clear zeroes killers and cached scores for a fresh search.
func (s *searchStack) clear() {
	for ply := 0; ply <= MaxDepth; ply++ {
		s[ply].killers[0] = NullMove
		s[ply].killers[1] = NullMove
		s[ply].score = 0
	}
}
