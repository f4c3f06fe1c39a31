package board

// Move is the structured move value exposed at the external boundary
// (spec §3, §6). Castling and en-passant are implied by MovingKind plus
// the from/to squares, not by a separate flag, per spec §3's Move
// definition; Position.Make derives them (see isCastle/isEnPassant in
// makeunmake.go) the same way spec §4.C says the generator and §4.B says
// make() should.
type Move struct {
	From, To      Square
	MovingKind    PieceKind
	CapturedKind  PieceKind // None if not a capture
	IsPromotion   bool
	PromotionKind PieceKind // meaningful only if IsPromotion
}

// IsZero reports whether m is the zero Move (used as a "no move" sentinel
// in killer/history tables, never a legal move since From==To==a1).
func (m Move) IsZero() bool { return m == Move{} }

// isCastle reports whether m is a king move of two files — the only way a
// legal king move can have a file delta of 2 per spec §4.C.
func (m Move) isCastle() bool {
	return m.MovingKind == King && abs(m.To.File()-m.From.File()) == 2
}

// effectivePromotionKind returns the kind to place on the destination
// square, defaulting an unspecified promotion to Queen (spec §3, §9).
func (m Move) effectivePromotionKind() PieceKind {
	if !m.IsPromotion {
		return m.MovingKind
	}
	// PromotionKind's zero value is King (iota 0); an unspecified
	// promotion defaults to Queen per spec §3/§9.
	if m.PromotionKind < Queen || m.PromotionKind > Knight {
		return Queen
	}
	return m.PromotionKind
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

var fileLetters = "abcdefgh"

// squareUCI renders a square as algebraic coordinates, e.g. 0 -> "a1".
func squareUCI(sq Square) string {
	return string([]byte{fileLetters[sq.File()], byte('1' + sq.Rank())})
}

// UCI renders the move in UCI-style long algebraic notation: "e2e4",
// "e7e8q" for promotions (spec §6).
func (m Move) UCI() string {
	s := squareUCI(m.From) + squareUCI(m.To)
	if m.IsPromotion {
		s += string(m.effectivePromotionKind().Letter())
	}
	return s
}

// ParseUCI parses a UCI-style move string against the legal moves
// available in p. Returns false if no legal move matches.
func ParseUCI(p *Position, s string) (Move, bool) {
	for _, m := range p.LegalMoves() {
		if m.UCI() == s {
			return m, true
		}
	}
	return Move{}, false
}
