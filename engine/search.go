package engine

import (
	"fmt"
	"time"

	gm "github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog/log"
)

// historyHeuristic persists across searches; initSearch ages it rather than
// clearing it, so evidence from earlier moves keeps guiding the ordering.
var historyHeuristic historyTable

type alphaBetaSearch struct {
	board *gm.Board
	info  *SearchInfo
	hist  *HistoryStack
	stack searchStack
	pv    pvTable
	eval  EvalScratch
	ply   int
}

// Search runs the iterative-deepening alpha-beta engine. It emits one info
// line per completed depth and a final bestmove, and leaves the board exactly
// as it found it.
func Search(board *gm.Board, info *SearchInfo, hist *HistoryStack) gm.Move {
	s := &alphaBetaSearch{board: board, info: info, hist: hist}
	s.initSearch()

	bestMove := NullMove
	for depth := int8(1); int(depth) <= int(info.DepthLimit); depth++ {
		score := s.negamax(-MateScore, MateScore, depth)
		if info.Stopped() {
			// Partial depth: discard, keep the last completed iteration.
			break
		}
		bestMove = s.pv.bestMove()
		s.emitDepthInfo(depth, score)
	}

	if PrintOrderingStats {
		dumpOrderingStats(info)
	}
	fmt.Fprintln(output, "bestmove", moveString(bestMove))
	info.State = EngineStopped
	return bestMove
}

func (s *alphaBetaSearch) initSearch() {
	historyHeuristic.age(historyAgingShift)
	s.pv.clear()
	s.info.Clear()
	s.info.State = EngineSearching
	s.info.StartTime = time.Now()
	s.stack.clear()
	s.ply = 0
}

func (s *alphaBetaSearch) negamax(alpha, beta int32, depth int8) int32 {
	if alpha >= beta {
		log.Fatal().Int32("alpha", alpha).Int32("beta", beta).
			Str("fen", s.board.ToFen()).Msg("negamax entered with an empty window")
	}

	// The row must be emptied before any early return, or a parent would
	// copy a stale line from an earlier iteration below this ply.
	s.pv.beginPly(s.ply)

	if depth <= 0 {
		return s.quiescence(alpha, beta)
	}

	s.info.Nodes++

	// Draw detection, skipped at the root so we always produce a move. The
	// jitter keeps repeated shuffling lines from all scoring identically.
	if s.ply > 0 && (int(s.board.Halfmoveclock) >= fiftyMoveLimit || s.hist.IsRepetition()) {
		return -2 + int32(s.info.Nodes&3)
	}

	if s.ply >= MaxDepth-1 {
		return Evaluation(s.board, &s.eval)
	}

	s.stack[s.ply].score = Evaluation(s.board, &s.eval)

	moves := s.board.GenerateLegalMoves()
	ml := scoreMoves(s.board, moves, NullMove, &s.stack[s.ply].killers, &historyHeuristic)

	side := sideIndex(s.board.Wtomove)
	movesSearched := 0

	for move := ml.NextBest(); move != NullMove; move = ml.NextBest() {
		isCapture := gm.IsCapture(move, s.board)

		undo := s.applyMove(move)
		score := -s.negamax(-beta, -alpha, depth-1)
		undo()

		if s.info.Stopped() {
			// Result discarded by the outer iterative deepening.
			return 0
		}
		movesSearched++

		if score >= beta {
			if movesSearched == 1 {
				s.info.FailHighFirst++
			}
			s.info.FailHigh++
			if !isCapture {
				s.stack.insertKiller(move, s.ply)
				own, _ := sideBitboards(s.board)
				piece, _ := GetPieceTypeAtPosition(uint8(move.From()), own)
				historyHeuristic.increment(side, piece, uint8(move.To()), depth)
			}
			return beta // fail-hard
		}

		if score > alpha {
			alpha = score
			s.pv.update(s.ply, move)
		}
	}

	if movesSearched == 0 {
		if s.board.OurKingInCheck() {
			return -MateScore + int32(s.ply) // mated here
		}
		return DrawScore // stalemate
	}

	return alpha
}

func (s *alphaBetaSearch) quiescence(alpha, beta int32) int32 {
	s.info.Nodes++
	if s.ply > s.info.Seldepth {
		s.info.Seldepth = s.ply
	}

	standpat := Evaluation(s.board, &s.eval)
	s.stack[s.ply].score = standpat

	if s.ply >= MaxDepth-1 {
		return standpat
	}
	if standpat >= beta {
		return beta
	}
	if standpat > alpha {
		alpha = standpat
	}

	ml := scoreNoisyMoves(s.board, s.board.GenerateLegalMoves())
	movesSearched := 0

	for move := ml.NextBest(); move != NullMove; move = ml.NextBest() {
		undo := s.applyMove(move)
		score := -s.quiescence(-beta, -alpha)
		undo()

		if s.info.Stopped() {
			return 0
		}
		movesSearched++

		if score >= beta {
			if movesSearched == 1 {
				s.info.FailHighFirst++
			}
			s.info.FailHigh++
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

func (s *alphaBetaSearch) applyMove(move gm.Move) func() {
	unapply := s.board.Apply(move)
	s.hist.Push(s.board)
	s.ply++
	return func() {
		s.ply--
		s.hist.Pop()
		unapply()
	}
}

func (s *alphaBetaSearch) emitDepthInfo(depth int8, score int32) {
	fmt.Fprintf(output, "info depth %d seldepth %d score %s nodes %d time %d pv %s\n",
		depth, s.info.Seldepth, scoreString(score), s.info.Nodes,
		s.info.ElapsedMs(), s.pv.rootLineString())
}

// scoreString renders a centipawn or mate-distance score. Mate scores encode
// the distance from the root, so the ply count falls out of the sentinel.
func scoreString(score int32) string {
	if abs(score) >= MateScore-int32(MaxDepth) {
		plies := (MateScore - abs(score) + 1) / 2
		if score < 0 {
			plies = -plies
		}
		return fmt.Sprintf("mate %d", plies)
	}
	return fmt.Sprintf("cp %d", score)
}
