package engine

import (
	"testing"

	"chesscore/board"
)

func fastProfile(minDepth, maxDepth int) DifficultyProfile {
	p := Casual
	p.MinDepth = minDepth
	p.MaxDepth = maxDepth
	p.MaxTimeMS = 3000
	return p
}

// Scenario A — Scholar's mate: after g8f6??, h5xf7 must be the engine's
// chosen move at any depth >= 1.
func TestScholarsMateFindsMateInOne(t *testing.T) {
	p, err := board.FromFEN("r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4")
	if err != nil {
		t.Fatal(err)
	}
	ordering := NewOrdering()
	result := NewSearch(fastProfile(1, 3), ordering, board.Move{}).Run(p)
	if result.BestMove.UCI() != "h5f7" {
		t.Errorf("best move = %s, want h5f7", result.BestMove.UCI())
	}
	if result.Score <= MateCutoff {
		t.Errorf("mating score %d should exceed the mate cutoff", result.Score)
	}
}

// Scenario E — mate in one at every difficulty tier, with blunder and
// mistake suppressed.
func TestMateInOneAcrossDifficulties(t *testing.T) {
	fen := "6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1"
	for _, tier := range []DifficultyProfile{Rookie, Casual, Strategic, Master} {
		t.Run(tier.Name, func(t *testing.T) {
			p, err := board.FromFEN(fen)
			if err != nil {
				t.Fatal(err)
			}
			profile := tier
			profile.BlunderChance = 0
			profile.MistakeChance = 0
			profile.MaxTimeMS = 4000

			eng := New(profile, nil)
			move, ok := eng.ChooseMove(p)
			if !ok {
				t.Fatal("expected a move")
			}
			if move.UCI() != "a1a8" {
				t.Errorf("%s chose %s, want a1a8", tier.Name, move.UCI())
			}
		})
	}
}

// Testable property 13: choose_move never returns "no move" while legal
// moves exist.
func TestChooseMoveNeverEmptyWithLegalMoves(t *testing.T) {
	p := board.NewPosition()
	eng := New(fastProfile(1, 2), nil)
	move, ok := eng.ChooseMove(p)
	if !ok || move.IsZero() {
		t.Fatal("expected a legal move from the starting position")
	}
}

func TestChooseMoveReturnsFalseWithNoLegalMoves(t *testing.T) {
	p, err := board.FromFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if err != nil {
		t.Fatal(err)
	}
	eng := New(fastProfile(1, 2), nil)
	_, ok := eng.ChooseMove(p)
	if ok {
		t.Fatal("expected no legal moves for checkmated side")
	}
}

// Testable property 14: with both imperfection chances at zero, the
// engine always plays the search's own best move.
func TestNoImperfectionWhenChancesAreZero(t *testing.T) {
	p := board.NewPosition()
	profile := fastProfile(2, 3)
	profile.BlunderChance = 0
	profile.MistakeChance = 0

	eng := New(profile, nil)
	move, ok := eng.ChooseMove(p)
	if !ok {
		t.Fatal("expected a move")
	}
	report, ok := eng.LatestReport()
	if !ok {
		t.Fatal("expected a report")
	}
	if report.Imperfection.Kind != "none" {
		t.Errorf("imperfection kind = %q, want none", report.Imperfection.Kind)
	}
	if move.UCI() != report.ChosenMove {
		t.Errorf("final move %s should equal search's chosen move %s", move.UCI(), report.ChosenMove)
	}
}

// Scenario F — report contents at the initial position.
func TestReportContentsAtInitialPosition(t *testing.T) {
	p := board.NewPosition()
	profile := fastProfile(2, 3)
	eng := New(profile, nil)

	move, ok := eng.ChooseMove(p)
	if !ok {
		t.Fatal("expected a move")
	}
	report, _ := eng.LatestReport()
	if len(report.LegalMoves) != 20 {
		t.Errorf("legal moves = %d, want 20", len(report.LegalMoves))
	}
	found := false
	for _, uci := range report.LegalMoves {
		if uci == move.UCI() {
			found = true
		}
	}
	if !found {
		t.Error("final move should appear in legal_moves")
	}
	for _, ev := range report.AllMoveEvaluations {
		if len(ev.Breakdown) != len(profile.Heuristics) {
			t.Errorf("breakdown entries = %d, want %d", len(ev.Breakdown), len(profile.Heuristics))
		}
	}
}
