// Command uci is a minimal UCI-style stdin/stdout adapter over the
// engine core, grounded on the teacher's root uci.go/cmd/uci/main.go
// read-loop shape. It exists only to exercise the core API at the
// boundary the way the teacher's own UCI entrypoints do (spec §1: any
// end-user or protocol interface is outside the core).
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"chesscore/board"
	"chesscore/engine"
)

func main() {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 1<<20), 1<<20)

	pos := board.NewPosition()
	eng := engine.New(engine.Master, nil)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "uci":
			fmt.Println("id name chesscore")
			fmt.Println("id author chesscore contributors")
			fmt.Println("uciok")
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			pos = board.NewPosition()
		case "position":
			pos = handlePosition(fields[1:])
		case "go":
			move, ok := eng.ChooseMove(pos)
			if !ok {
				fmt.Println("bestmove 0000")
				continue
			}
			fmt.Printf("bestmove %s\n", move.UCI())
		case "quit":
			return
		}
	}
}

func handlePosition(fields []string) *board.Position {
	var pos *board.Position
	idx := 0

	switch {
	case len(fields) > 0 && fields[0] == "startpos":
		pos = board.NewPosition()
		idx = 1
	case len(fields) > 0 && fields[0] == "fen":
		movesAt := len(fields)
		for i, f := range fields {
			if f == "moves" {
				movesAt = i
				break
			}
		}
		fen := strings.Join(fields[1:movesAt], " ")
		p, err := board.FromFEN(fen)
		if err != nil {
			return board.NewPosition()
		}
		pos = p
		idx = movesAt
	default:
		return board.NewPosition()
	}

	if idx < len(fields) && fields[idx] == "moves" {
		for _, uciMove := range fields[idx+1:] {
			m, ok := board.ParseUCI(pos, uciMove)
			if !ok {
				break
			}
			pos.Make(m)
		}
	}
	return pos
}
