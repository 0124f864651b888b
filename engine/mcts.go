package engine

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	gm "github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog/log"
)

// Constants (TODO: tune UCB with self-play)
const (
	ucbConst       = 1.4
	rolloutBudget  = 4
	infoEveryNodes = 10000
)

// Node is one state in the MCTS tree. The parent link is a back reference
// only; ownership runs parent to children, and both live as indices into the
// arena so the tree never holds a raw pointer into the slab.
type Node struct {
	parent   int32
	action   gm.Move
	children []int32
	untried  []gm.Move
	visits   uint32
	reward   float64
}

// A node is fully expanded once every move from it has a child; fully
// expanded with no children means no legal continuation existed.
func (n *Node) fullyExpanded() bool { return len(n.untried) == 0 }
func (n *Node) terminal() bool      { return n.fullyExpanded() && len(n.children) == 0 }

func (n *Node) Visits() uint32       { return n.visits }
func (n *Node) TotalReward() float64 { return n.reward }
func (n *Node) Action() gm.Move      { return n.action }

// ucbValue is the UCB1 score of a child: exploitation mean plus, when
// exploring, the confidence radius. The +1 on child visits avoids division
// by zero; the parent needs no +1 because it was visited before any of its
// children existed.
func ucbValue(reward float64, visits, parentVisits uint32, exploration bool) float64 {
	v := reward / float64(visits+1)
	if exploration {
		v += ucbConst * math.Sqrt(math.Log(float64(parentVisits))/float64(visits+1))
	}
	return v
}

type mctsSearch struct {
	arena *Arena
	info  *SearchInfo
	board *gm.Board
	rng   *rand.Rand
	eval  EvalScratch
	ply   int

	lastInfoNodes uint64
}

func (m *mctsSearch) ucb(idx int32, exploration bool) float64 {
	n := m.arena.node(idx)
	return ucbValue(n.reward, n.visits, m.arena.node(n.parent).visits, exploration)
}

// bestChild picks the child with the highest UCB value; ties keep the first
// one encountered. With exploration off this is the pure exploitation winner
// used to report the move.
func (m *mctsSearch) bestChild(idx int32, exploration bool) int32 {
	node := m.arena.node(idx)
	best := nullNode
	bestValue := math.Inf(-1)
	for _, child := range node.children {
		if v := m.ucb(child, exploration); v > bestValue {
			bestValue = v
			best = child
		}
	}
	return best
}

// newNode allocates a node for the position currently on the board.
func (m *mctsSearch) newNode(parent int32, action gm.Move) (int32, bool) {
	idx, ok := m.arena.Alloc()
	if !ok {
		return nullNode, false
	}
	n := m.arena.node(idx)
	n.parent = parent
	n.action = action
	n.untried = m.board.GenerateLegalMoves()
	return idx, true
}

// selectNode descends from the root along best UCB children, advancing the
// board with each step, until it reaches a node that is terminal or still
// has untried moves.
func (m *mctsSearch) selectNode(root int32) int32 {
	idx := root
	for {
		node := m.arena.node(idx)
		if node.terminal() || !node.fullyExpanded() {
			return idx
		}
		child := m.bestChild(idx, true)
		action := m.arena.node(child).action
		if !containsMove(m.board.GenerateLegalMoves(), action) {
			// A stored child whose move its own position rejects means the
			// tree is corrupt; continuing would desync board and tree.
			log.Fatal().Str("fen", m.board.ToFen()).Str("move", action.String()).
				Msg("tree stores a child with an illegal move")
		}
		m.board.Apply(action)
		m.ply++
		idx = child
	}
}

// expand grows the tree by one child of idx, sampled uniformly from the
// untried moves. Running out of arena is a soft failure: the search keeps
// refining the tree it already has.
func (m *mctsSearch) expand(idx int32) int32 {
	node := m.arena.node(idx)
	if node.terminal() || node.fullyExpanded() {
		return idx
	}
	if !m.arena.HasSpace(1) {
		return idx
	}

	// Legal generation means the first sample is playable; with a
	// pseudolegal generator this would resample and discard.
	pick := m.rng.Intn(len(node.untried))
	action := node.untried[pick]
	node.untried[pick] = node.untried[len(node.untried)-1]
	node.untried = node.untried[:len(node.untried)-1]

	m.board.Apply(action)
	m.ply++

	child, ok := m.newNode(idx, action)
	if !ok {
		return idx
	}
	node = m.arena.node(idx)
	node.children = append(node.children, child)

	m.info.Nodes++
	if m.ply > m.info.Seldepth {
		m.info.Seldepth = m.ply
	}
	return child
}

// simulate plays up to rolloutBudget random legal plies from the current
// board and scores the result for the side that was to move when the rollout
// started.
func (m *mctsSearch) simulate() float64 {
	color := colorCode(m.board.Wtomove)
	budget := rolloutBudget

	for {
		moves := m.board.GenerateLegalMoves()
		if len(moves) == 0 {
			// Terminal: mate or stalemate decides the reward outright.
			if sideInCheckCode(m.board, color) {
				return -1
			}
			if sideInCheckCode(m.board, color^1) {
				// The opponent is mated: a win for the rollout starter.
				return 1
			}
			return 0
		}
		if budget <= 0 {
			break
		}
		m.board.Apply(moves[m.rng.Intn(len(moves))])
		budget--
	}

	// Heuristic leaf: the evaluation is from the leaf's side to move, so
	// flip it back to the rollout starter before squashing to (-1,+1).
	score := Evaluation(m.board, &m.eval)
	if colorCode(m.board.Wtomove) != color {
		score = -score
	}
	return 2*WinningProb(score) - 1
}

// backprop walks the parent chain from the expanded node to the root,
// flipping the reward's sign before every update: each node stores reward
// from the perspective of the side to move at its parent, which is exactly
// who reads it during UCB selection.
func (m *mctsSearch) backprop(idx int32, reward float64) {
	for cur := idx; cur != nullNode; cur = m.arena.node(cur).parent {
		reward = -reward
		n := m.arena.node(cur)
		n.visits++
		n.reward += reward
	}
}

func (m *mctsSearch) emitInfo(root int32) {
	if m.info.Nodes == m.lastInfoNodes || m.info.Nodes%infoEveryNodes != 0 {
		return
	}
	m.lastInfoNodes = m.info.Nodes
	best := m.bestChild(root, false)
	if best == nullNode {
		return
	}
	n := m.arena.node(best)
	q := n.reward / float64(n.visits+1)
	cp := CentipawnFromProb((q + 1) / 2)
	fmt.Fprintf(output, "info depth %d score cp %d nodes %d time %d pv %s\n",
		m.info.Seldepth, cp, m.info.Nodes, m.info.ElapsedMs(), moveString(n.action))
}

// releaseTree drops every node's owned containers depth-first so the arena
// reset leaves no live references behind.
func (m *mctsSearch) releaseTree(root int32) {
	stack := []int32{root}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := m.arena.node(idx)
		stack = append(stack, n.children...)
		n.children = nil
		n.untried = nil
	}
}

// mctsArena is built on first use and reused across searches; one search
// owns it at a time.
var mctsArena *Arena

// SetArenaSizeMB replaces the shared arena. Only valid between searches.
func SetArenaSizeMB(megabytes int) {
	mctsArena = NewArena(megabytes)
}

// MCTSSearch runs the Monte Carlo engine until the driver stops it, then
// reports the root's best exploitation-only child.
func MCTSSearch(board *gm.Board, info *SearchInfo) gm.Move {
	if mctsArena == nil {
		mctsArena = NewArena(DefaultArenaMB)
	}
	return MCTSSearchArena(board, info, mctsArena)
}

// MCTSSearchArena is MCTSSearch against a caller-supplied arena.
func MCTSSearchArena(board *gm.Board, info *SearchInfo, arena *Arena) gm.Move {
	info.Clear()
	info.State = EngineSearching
	info.StartTime = time.Now()

	rootBoard := *board
	m := &mctsSearch{
		arena: arena,
		info:  info,
		board: board,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	arena.Reset()
	root, ok := m.newNode(nullNode, NullMove)

	if ok {
		for !info.Stopped() {
			if m.arena.node(root).terminal() {
				// No legal root move; nothing to search.
				break
			}
			m.ply = 0
			node := m.selectNode(root)
			node = m.expand(node)
			reward := m.simulate()
			m.backprop(node, reward)
			m.emitInfo(root)
			*board = rootBoard
		}
		*board = rootBoard
	}

	bestMove := NullMove
	if ok {
		if best := m.bestChild(root, false); best != nullNode {
			bestMove = m.arena.node(best).action
		}
	}
	fmt.Fprintln(output, "bestmove", moveString(bestMove))

	if ok {
		m.releaseTree(root)
	}
	arena.Reset()
	info.State = EngineStopped
	return bestMove
}
