package board

// Move generation: enumerate pseudo-legal moves per piece kind, then
// filter to legal moves by making each one, checking whether it leaves
// the mover's own king in check, and unmaking it (spec §4.C). Grounded on
// goosemg/movegen.go's per-kind generation loops, deliberately without
// its pin-mask/check-mask optimizations — the simpler generate-then-filter
// approach spec §4.C describes.

const (
	rank2 = 1
	rank7 = 6
)

// pseudoLegalMoves appends every pseudo-legal move for the side to move
// into dst and returns the extended slice. "Pseudo-legal" here means: a
// piece of the correct color moves to a square it could otherwise reach,
// respecting blockers and not capturing its own side, but without
// verifying the mover's king ends up safe.
func (p *Position) pseudoLegalMoves(dst []Move) []Move {
	us := p.sideToMove
	them := us.Opponent()
	own := p.sideBB[us]
	occ := p.Occupancy()

	dst = p.genPawnMoves(dst, us, them, occ)

	knights := p.pieceBB[us][Knight]
	for knights != 0 {
		var from Square
		from, knights = knights.PopLSB()
		targets := knightAttacks[from] &^ own
		dst = p.emitSliderLike(dst, from, Knight, targets)
	}

	bishops := p.pieceBB[us][Bishop]
	for bishops != 0 {
		var from Square
		from, bishops = bishops.PopLSB()
		targets := bishopAttacksFrom(from, occ) &^ own
		dst = p.emitSliderLike(dst, from, Bishop, targets)
	}

	rooks := p.pieceBB[us][Rook]
	for rooks != 0 {
		var from Square
		from, rooks = rooks.PopLSB()
		targets := rookAttacksFrom(from, occ) &^ own
		dst = p.emitSliderLike(dst, from, Rook, targets)
	}

	queens := p.pieceBB[us][Queen]
	for queens != 0 {
		var from Square
		from, queens = queens.PopLSB()
		targets := (rookAttacksFrom(from, occ) | bishopAttacksFrom(from, occ)) &^ own
		dst = p.emitSliderLike(dst, from, Queen, targets)
	}

	kingSq := p.KingSquare(us)
	targets := kingAttacks[kingSq] &^ own
	dst = p.emitSliderLike(dst, kingSq, King, targets)
	dst = p.genCastles(dst, us, occ)

	return dst
}

// emitSliderLike appends one move per target square for a non-pawn piece,
// filling in CapturedKind from the mailbox.
func (p *Position) emitSliderLike(dst []Move, from Square, kind PieceKind, targets Bitboard) []Move {
	for targets != 0 {
		var to Square
		to, targets = targets.PopLSB()
		dst = append(dst, Move{From: from, To: to, MovingKind: kind, CapturedKind: p.mailbox[to]})
	}
	return dst
}

var promotionKinds = [4]PieceKind{Queen, Rook, Bishop, Knight}

func (p *Position) genPawnMoves(dst []Move, us, them Color, occ Bitboard) []Move {
	pawns := p.pieceBB[us][Pawn]
	forward := 1
	startRank := rank2
	promoRank := 7
	if us == Black {
		forward = -1
		startRank = rank7
		promoRank = 0
	}

	for bb := pawns; bb != 0; {
		var from Square
		from, bb = bb.PopLSB()
		rank, file := from.Rank(), from.File()

		one := NewSquare(file, rank+forward)
		if !p.IsOccupied(one) {
			dst = p.appendPawnMove(dst, from, one, None, promoRank)
			if rank == startRank {
				two := NewSquare(file, rank+2*forward)
				if !p.IsOccupied(two) {
					dst = append(dst, Move{From: from, To: two, MovingKind: Pawn, CapturedKind: None})
				}
			}
		}

		for _, df := range [2]int{-1, 1} {
			tf := file + df
			if tf < 0 || tf > 7 {
				continue
			}
			to := NewSquare(tf, rank+forward)
			if p.sideBB[them].Get(to) {
				dst = p.appendPawnMove(dst, from, to, p.mailbox[to], promoRank)
			} else if to == p.epSquare {
				dst = append(dst, Move{From: from, To: to, MovingKind: Pawn, CapturedKind: Pawn})
			}
		}
	}
	return dst
}

func (p *Position) appendPawnMove(dst []Move, from, to Square, captured PieceKind, promoRank int) []Move {
	if to.Rank() == promoRank {
		for _, pk := range promotionKinds {
			dst = append(dst, Move{From: from, To: to, MovingKind: Pawn, CapturedKind: captured, IsPromotion: true, PromotionKind: pk})
		}
		return dst
	}
	return append(dst, Move{From: from, To: to, MovingKind: Pawn, CapturedKind: captured})
}

// genCastles appends pseudo-legal castling moves: both the king's home
// square and path squares must be unattacked and the path must be empty
// (spec §4.C). The squares checked for attacks are the one the king
// crosses and its destination; the resulting king move is then checked
// again by the generic make/is_in_check/unmake legality filter.
func (p *Position) genCastles(dst []Move, us Color, occ Bitboard) []Move {
	rank := 0
	them := us.Opponent()
	kingSide, queenSide := CastleWK, CastleWQ
	if us == Black {
		rank = 7
		kingSide, queenSide = CastleBK, CastleBQ
	}
	kingFrom := NewSquare(4, rank)
	if p.KingSquare(us) != kingFrom {
		return dst
	}
	if p.IsSquareAttacked(kingFrom, them) {
		return dst
	}

	if p.castling.Has(kingSide) {
		f, g, h := NewSquare(5, rank), NewSquare(6, rank), NewSquare(7, rank)
		if !p.IsOccupied(f) && !p.IsOccupied(g) && p.mailbox[h] == Rook &&
			!p.IsSquareAttacked(f, them) && !p.IsSquareAttacked(g, them) {
			dst = append(dst, Move{From: kingFrom, To: g, MovingKind: King, CapturedKind: None})
		}
	}
	if p.castling.Has(queenSide) {
		b, c, d, a := NewSquare(1, rank), NewSquare(2, rank), NewSquare(3, rank), NewSquare(0, rank)
		if !p.IsOccupied(b) && !p.IsOccupied(c) && !p.IsOccupied(d) && p.mailbox[a] == Rook &&
			!p.IsSquareAttacked(c, them) && !p.IsSquareAttacked(d, them) {
			dst = append(dst, Move{From: kingFrom, To: c, MovingKind: King, CapturedKind: None})
		}
	}
	return dst
}

// LegalMoves returns every legal move for the side to move (spec §4.C).
func (p *Position) LegalMoves() []Move {
	us := p.sideToMove
	pseudo := p.pseudoLegalMoves(make([]Move, 0, 48))
	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		p.Make(m)
		if !p.IsInCheck(us) {
			legal = append(legal, m)
		}
		p.Unmake()
	}
	return legal
}

// HasAnyLegalMove reports whether the side to move has at least one legal
// move, short-circuiting as soon as one is found (spec §4.C) — used by
// IsCheckmate/IsStalemate without paying for full enumeration.
func (p *Position) HasAnyLegalMove() bool {
	us := p.sideToMove
	pseudo := p.pseudoLegalMoves(make([]Move, 0, 48))
	for _, m := range pseudo {
		p.Make(m)
		inCheck := p.IsInCheck(us)
		p.Unmake()
		if !inCheck {
			return true
		}
	}
	return false
}

// IsCheckmate reports whether the side to move is in check with no legal
// moves.
func (p *Position) IsCheckmate() bool {
	return p.IsInCheck(p.sideToMove) && !p.HasAnyLegalMove()
}

// IsStalemate reports whether the side to move is not in check but has no
// legal moves.
func (p *Position) IsStalemate() bool {
	return !p.IsInCheck(p.sideToMove) && !p.HasAnyLegalMove()
}

// IsFiftyMoveDraw reports whether the halfmove clock has reached 100
// (fifty full moves without a capture or pawn push).
func (p *Position) IsFiftyMoveDraw() bool {
	return p.halfmoveClock >= 100
}
