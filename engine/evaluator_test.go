package engine

import (
	"testing"

	"chesscore/board"
)

// Testable property 12: evaluating a position from White's perspective
// matches the negation of evaluating the same position from Black's
// perspective.
func TestEvaluateSymmetry(t *testing.T) {
	p, err := board.FromFEN("r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4")
	if err != nil {
		t.Fatal(err)
	}
	white := Evaluate(p, board.White, Master)
	black := Evaluate(p, board.Black, Master)
	if white != -black {
		t.Errorf("evaluate(white)=%d, evaluate(black)=%d, want negation", white, black)
	}
}

func TestMaterialEvaluationStartingPositionIsZero(t *testing.T) {
	p := board.NewPosition()
	score := Evaluate(p, board.White, DifficultyProfile{Heuristics: []Heuristic{HeuristicMaterial}})
	if score != 0 {
		t.Errorf("material score at start = %d, want 0", score)
	}
}

func TestPhaseDecreasesAsMaterialIsRemoved(t *testing.T) {
	start := board.NewPosition()
	startPhase := Phase(start)

	endgame, err := board.FromFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if Phase(endgame) >= startPhase {
		t.Errorf("bare-kings phase %d should be less than starting phase %d", Phase(endgame), startPhase)
	}
	if EndgameWeight(Phase(endgame)) != 1.0 {
		t.Errorf("endgame weight with no material = %v, want 1.0", EndgameWeight(Phase(endgame)))
	}
}
