package board

import "testing"

func findMove(t *testing.T, p *Position, uci string) Move {
	t.Helper()
	m, ok := ParseUCI(p, uci)
	if !ok {
		t.Fatalf("move %s not legal in position %s", uci, p.ToFEN())
	}
	return m
}

// Universal property: make followed by unmake restores the position
// bit-for-bit, including the Zobrist key (spec §8 property 1).
func TestMakeUnmakeRoundTrip(t *testing.T) {
	p := NewPosition()
	sequence := []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1b5", "a7a6"}
	for _, uci := range sequence {
		before := *p
		beforeZobrist := p.Zobrist()
		m := findMove(t, p, uci)

		p.Make(m)
		p.Unmake()

		if p.Zobrist() != beforeZobrist {
			t.Fatalf("zobrist mismatch after make/unmake of %s", uci)
		}
		if !p.Validate() {
			t.Fatalf("Validate() failed after make/unmake of %s", uci)
		}
		if p.mailbox != before.mailbox || p.sideToMove != before.sideToMove ||
			p.castling != before.castling || p.epSquare != before.epSquare {
			t.Fatalf("state mismatch after make/unmake of %s", uci)
		}

		p.Make(m)
	}
}

func TestZobristFromScratchAfterMakeSequence(t *testing.T) {
	p := NewPosition()
	for _, uci := range []string{"e2e4", "e7e5", "g1f3", "b8c6"} {
		m := findMove(t, p, uci)
		p.Make(m)
		if p.Zobrist() != zobristFromScratch(p) {
			t.Fatalf("zobrist diverged from scratch after %s", uci)
		}
	}
}

// Scenario D — castling rights loss: moving a rook off its home square
// clears only that corner's castling right.
func TestCastlingRightsLossOnRookMove(t *testing.T) {
	p, err := FromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	m := findMove(t, p, "a1a2")
	p.Make(m)
	if got := p.ToFEN(); got != "r3k2r/8/8/8/8/8/R7/4K2R b Kkq - 1 1" {
		t.Errorf("FEN after a1a2 = %q", got)
	}
}

// Scenario C — en passant: e5xd6 becomes legal after a two-step black
// pawn push and disappears one ply later, and unmake restores the
// pre-move Zobrist exactly.
func TestEnPassantReachabilityAndRoundTrip(t *testing.T) {
	p := NewPosition()
	for _, uci := range []string{"e2e4", "g8f6", "e4e5", "d7d5"} {
		m := findMove(t, p, uci)
		p.Make(m)
	}
	preMoveZobrist := p.Zobrist()

	if _, ok := ParseUCI(p, "e5d6"); !ok {
		t.Fatal("e5d6 should be legal en passant")
	}

	m := findMove(t, p, "e5d6")
	p.Make(m)
	if p.PieceAt(NewSquare(3, 4)) != None {
		t.Error("captured pawn should be removed from d5")
	}
	p.Unmake()
	if p.Zobrist() != preMoveZobrist {
		t.Error("zobrist should match pre-move value after unmake")
	}

	declined := findMove(t, p, "g1f3")
	p.Make(declined)
	if _, ok := ParseUCI(p, "e5d6"); ok {
		t.Error("en-passant capture should no longer be legal after an intervening half-move")
	}
}

// Testable property 11: promotion generates all four promotion kinds to
// the same target square.
func TestPromotionGeneratesFourMoves(t *testing.T) {
	p, err := FromFEN("8/P6k/8/8/8/8/7p/7K w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for _, m := range p.LegalMoves() {
		if m.From == NewSquare(0, 6) && m.To == NewSquare(0, 7) {
			count++
		}
	}
	if count != 4 {
		t.Errorf("promotion move count = %d, want 4", count)
	}
}

// Testable property 9: castling is disallowed while in check, even with
// no blockers and all other conditions met.
func TestCastlingDisallowedThroughCheck(t *testing.T) {
	p, err := FromFEN("k3r3/8/8/8/8/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if !p.IsInCheck(White) {
		t.Fatal("white king should be in check from the e8 rook")
	}
	for _, m := range p.LegalMoves() {
		if m.isCastle() {
			t.Error("castling should not be legal while in check")
		}
	}
}

// Scenario B / testable property 6: a repeated knight shuffle returns
// the exact starting Zobrist key, so the starting position occurs three
// times (at the start, after ply 4 and after ply 8).
func TestThreefoldRepetitionZobristMatch(t *testing.T) {
	p := NewPosition()
	initial := p.Zobrist()
	sequence := []string{
		"g1f3", "b8c6", "f3g1", "c6b8",
		"g1f3", "b8c6", "f3g1", "c6b8",
	}
	var seenAtInitial int
	for i, uci := range sequence {
		m := findMove(t, p, uci)
		p.Make(m)
		if i%4 == 3 && p.Zobrist() == initial {
			seenAtInitial++
		}
	}
	if p.Zobrist() != initial {
		t.Error("zobrist after repetition sequence should equal initial")
	}
	if seenAtInitial != 2 {
		t.Errorf("starting position recurred %d times, want 2 (threefold with the start)", seenAtInitial)
	}
}
