package engine

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	gm "github.com/dylhunn/dragontoothmg"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	MaxDepth        = 64
	MateScore int32 = 30000
	DrawScore int32 = 0
)

// NullMove is the "no move" sentinel, printed as 0000 on the wire.
const NullMove gm.Move = 0

// EngineState tracks where a SearchInfo is in its lifecycle.
type EngineState int32

const (
	EngineIdle EngineState = iota
	EngineSearching
	EngineStopped
)

// SearchInfo is the shared record between the driver and the search worker.
// The worker owns every field except the stop flag, which the driver may set
// from another goroutine at any time.
type SearchInfo struct {
	Nodes         uint64
	Seldepth      int
	DepthLimit    int8
	StartTime     time.Time
	Deadline      time.Time
	TimeSet       bool
	State         EngineState
	FailHigh      uint64
	FailHighFirst uint64

	stop atomic.Bool
}

// Clear resets the per-search counters. The depth limit and timing fields are
// preserved: the driver sets those before handing the record to the engine.
func (info *SearchInfo) Clear() {
	info.Nodes = 0
	info.Seldepth = 0
	info.FailHigh = 0
	info.FailHighFirst = 0
	info.stop.Store(false)
}

// RequestStop asks the running search to wind down. Safe to call from any
// goroutine; the worker polls it between tree operations.
func (info *SearchInfo) RequestStop() {
	info.stop.Store(true)
}

func (info *SearchInfo) StopRequested() bool {
	return info.stop.Load()
}

// Stopped reports whether the search should terminate, either because the
// driver requested it or because the deadline has passed. Called from the hot
// loop, so it stays branch-cheap.
func (info *SearchInfo) Stopped() bool {
	if info.stop.Load() {
		return true
	}
	return info.TimeSet && !time.Now().Before(info.Deadline)
}

// ElapsedMs is the wall time since the search started, for info lines.
func (info *SearchInfo) ElapsedMs() int64 {
	ms := time.Since(info.StartTime).Milliseconds()
	if ms <= 0 {
		ms = 1
	}
	return ms
}

// PrintOrderingStats toggles the fail-high ordering dump after a search.
var PrintOrderingStats bool

// Protocol output goes through this writer so tests can capture it.
var output io.Writer = os.Stdout

// SetOutput redirects protocol output and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	prev := output
	output = w
	return prev
}

func dumpOrderingStats(info *SearchInfo) {
	if info.FailHigh == 0 {
		return
	}
	ratio := float64(info.FailHighFirst) / float64(info.FailHigh)
	fmt.Fprintf(output, "info string ordering %.2f fail-high %d first %d\n",
		ratio, info.FailHigh, info.FailHighFirst)
}

func moveString(m gm.Move) string {
	if m == NullMove {
		return "0000"
	}
	return m.String()
}
