package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	gm "github.com/dylhunn/dragontoothmg"
	"golang.org/x/sync/errgroup"

	"mallard/engine"
)

func main() {
	uciLoop()
}

type uciState struct {
	board   gm.Board
	hist    engine.HistoryStack
	info    engine.SearchInfo
	group   errgroup.Group
	running bool
	useMCTS bool
}

func uciLoop() {
	scanner := bufio.NewScanner(os.Stdin)
	var st uciState
	st.board = gm.ParseFen(gm.Startpos)
	st.hist.Reset(&st.board)

	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			fmt.Println("id name Mallard 0.1")
			fmt.Println("id author Mallard team")
			fmt.Println("option name MCTS type check default false")
			fmt.Printf("option name ArenaMB type spin default %d min 1 max 4096\n", engine.DefaultArenaMB)
			fmt.Println("option name Stats type check default false")
			fmt.Println("uciok")
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			st.joinSearch()
			st.board = gm.ParseFen(gm.Startpos)
			st.hist.Reset(&st.board)
		case "setoption":
			st.handleSetOption(tokens)
		case "position":
			st.joinSearch()
			st.handlePosition(line)
		case "go":
			st.joinSearch()
			st.handleGo(tokens)
		case "stop":
			st.info.RequestStop()
		case "eval":
			// Debug helper: static evaluation of the current position.
			var scratch engine.EvalScratch
			fmt.Println("info string static eval", engine.Evaluation(&st.board, &scratch))
		case "quit":
			st.joinSearch()
			return
		default:
			fmt.Println("info string Unknown command", tokens[0])
		}
	}
	st.joinSearch()
}

// joinSearch stops any running search and waits for its bestmove to flush.
func (st *uciState) joinSearch() {
	if !st.running {
		return
	}
	st.info.RequestStop()
	_ = st.group.Wait()
	st.running = false
}

func (st *uciState) handleSetOption(tokens []string) {
	name, value := "", ""
	for i := 1; i < len(tokens)-1; i++ {
		switch strings.ToLower(tokens[i]) {
		case "name":
			name = strings.ToLower(tokens[i+1])
		case "value":
			value = strings.ToLower(tokens[i+1])
		}
	}
	switch name {
	case "mcts":
		st.useMCTS = value == "true"
	case "arenamb":
		if mb, err := strconv.Atoi(value); err == nil && mb > 0 {
			engine.SetArenaSizeMB(mb)
		} else {
			fmt.Println("info string Bad ArenaMB value", value)
		}
	case "stats":
		engine.PrintOrderingStats = value == "true"
	default:
		fmt.Println("info string Unknown option", name)
	}
}

func (st *uciState) handlePosition(line string) {
	posScanner := bufio.NewScanner(strings.NewReader(line))
	posScanner.Split(bufio.ScanWords)
	posScanner.Scan() // skip the first token
	if !posScanner.Scan() {
		fmt.Println("info string Malformed position command")
		return
	}
	switch strings.ToLower(posScanner.Text()) {
	case "startpos":
		st.board = gm.ParseFen(gm.Startpos)
		posScanner.Scan() // advance the scanner to leave it in a consistent state
	case "fen":
		fenstr := ""
		for posScanner.Scan() && strings.ToLower(posScanner.Text()) != "moves" {
			fenstr += posScanner.Text() + " "
		}
		if fenstr == "" {
			fmt.Println("info string Invalid fen position")
			return
		}
		st.board = gm.ParseFen(fenstr)
	default:
		fmt.Println("info string Invalid position subcommand")
		return
	}

	st.hist.Reset(&st.board)
	if strings.ToLower(posScanner.Text()) != "moves" {
		return
	}
	for posScanner.Scan() { // for each move
		moveStr := strings.ToLower(posScanner.Text())
		found := false
		for _, mv := range st.board.GenerateLegalMoves() {
			if mv.String() == moveStr {
				st.board.Apply(mv)
				st.hist.Push(&st.board)
				found = true
				break
			}
		}
		if !found {
			fmt.Println("info string Illegal move in position command:", moveStr)
			return
		}
	}
}

func (st *uciState) handleGo(tokens []string) {
	var tc engine.TimeControl
	var err error
	readInt := func(i int) int {
		if i >= len(tokens) {
			return 0
		}
		var n int
		n, err = strconv.Atoi(tokens[i])
		return n
	}
	for i := 1; i < len(tokens); i++ {
		switch strings.ToLower(tokens[i]) {
		case "infinite":
			tc.Infinite = true
		case "wtime":
			tc.WTime = readInt(i + 1)
			i++
		case "btime":
			tc.BTime = readInt(i + 1)
			i++
		case "winc":
			tc.WInc = readInt(i + 1)
			i++
		case "binc":
			tc.BInc = readInt(i + 1)
			i++
		case "movetime":
			tc.MoveTime = readInt(i + 1)
			i++
		case "movestogo":
			tc.MovesToGo = readInt(i + 1)
			i++
		case "depth":
			tc.Depth = readInt(i + 1)
			i++
		default:
			fmt.Println("info string Unknown go subcommand", tokens[i])
		}
		if err != nil {
			fmt.Println("info string Malformed go command option", tokens[i])
			return
		}
	}

	tc.Plan(&st.board, &st.info)
	st.info.State = engine.EngineSearching

	useMCTS := st.useMCTS
	st.running = true
	st.group.Go(func() error {
		if useMCTS {
			engine.MCTSSearch(&st.board, &st.info)
		} else {
			engine.Search(&st.board, &st.info, &st.hist)
		}
		return nil
	})
}
