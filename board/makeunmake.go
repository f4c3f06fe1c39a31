package board

// isEnPassant reports whether m is an en-passant capture: a pawn moving to
// the current en-passant target square.
func (p *Position) isEnPassant(m Move) bool {
	return m.MovingKind == Pawn && m.To == p.epSquare && p.mailbox[m.To] == None
}

// castleRookSquares returns the rook's from/to squares for a castling move,
// determined by the king's destination file (spec §4.C: g-file is
// kingside, c-file is queenside).
func castleRookSquares(c Color, to Square) (from, to2 Square) {
	rank := 0
	if c == Black {
		rank = 7
	}
	if to.File() == 6 {
		return NewSquare(7, rank), NewSquare(5, rank)
	}
	return NewSquare(0, rank), NewSquare(3, rank)
}

// castlingLossMask returns the castling rights that are permanently lost
// the moment a piece leaves or arrives on sq (king move, rook move, or rook
// capture all pass through here since they all touch one of the four
// corner squares or the king's home square).
func castlingLossMask(sq Square) CastlingRights {
	switch sq {
	case NewSquare(4, 0):
		return CastleWK | CastleWQ
	case NewSquare(4, 7):
		return CastleBK | CastleBQ
	case NewSquare(7, 0):
		return CastleWK
	case NewSquare(0, 0):
		return CastleWQ
	case NewSquare(7, 7):
		return CastleBK
	case NewSquare(0, 7):
		return CastleBQ
	default:
		return 0
	}
}

// Make applies m to the position, pushing an UndoRecord onto the history
// stack so the move can later be reversed with Unmake. Grounded on
// goosemg/makemove.go's MakeMove, adapted to the Zobrist always-XOR-ep
// convention established in zobrist.go and to the simpler (non-packed)
// Move representation (spec §4.B's twelve-step algorithm):
//  1. record undo state
//  2. clear any ep capture
//  3. remove the moving piece from From
//  4. remove any captured piece from To
//  5. place the (possibly promoted) piece on To
//  6. move the castling rook, if any
//  7. update castling rights
//  8. set the new en-passant target, if any
//  9. update halfmove clock
//  10. update fullmove number
//  11. flip side to move
//  12. push the undo record
func (p *Position) Make(m Move) {
	us := p.sideToMove
	them := us.Opponent()

	rec := UndoRecord{
		Move:            m,
		CapturedKind:    m.CapturedKind,
		EPCaptureSquare: NoSquare,
		CastleRookFrom:  NoSquare,
		CastleRookTo:    NoSquare,
		PrevCastling:    p.castling,
		PrevEPSquare:    p.epSquare,
		PrevHalfmove:    p.halfmoveClock,
		PrevFullmove:    p.fullmoveNumber,
		PrevZobrist:     p.zobrist,
	}

	enPassant := p.isEnPassant(m)
	if enPassant {
		capSq := NewSquare(m.To.File(), m.From.Rank())
		rec.EPCaptureSquare = capSq
		rec.CapturedKind = Pawn
		p.removePiece(them, Pawn, capSq)
	}

	p.removePiece(us, m.MovingKind, m.From)
	if !enPassant && m.CapturedKind != None {
		p.removePiece(them, m.CapturedKind, m.To)
	}
	p.addPiece(us, m.effectivePromotionKind(), m.To)

	if m.isCastle() {
		rookFrom, rookTo := castleRookSquares(us, m.To)
		rec.CastleRookFrom = rookFrom
		rec.CastleRookTo = rookTo
		p.removePiece(us, Rook, rookFrom)
		p.addPiece(us, Rook, rookTo)
	}

	newCastling := p.castling &^ (castlingLossMask(m.From) | castlingLossMask(m.To))
	if newCastling != p.castling {
		p.zobrist ^= zobristCastling[p.castling]
		p.castling = newCastling
		p.zobrist ^= zobristCastling[p.castling]
	}

	p.zobrist ^= zobristEP[epZobristIndex(p.epSquare)]
	newEP := NoSquare
	if m.MovingKind == Pawn && abs(m.To.Rank()-m.From.Rank()) == 2 {
		newEP = NewSquare(m.From.File(), (m.From.Rank()+m.To.Rank())/2)
	}
	p.epSquare = newEP
	p.zobrist ^= zobristEP[epZobristIndex(p.epSquare)]

	if m.MovingKind == Pawn || m.CapturedKind != None {
		p.halfmoveClock = 0
	} else {
		p.halfmoveClock++
	}

	if us == Black {
		p.fullmoveNumber++
	}

	p.zobrist ^= zobristSideKey[p.sideToMove]
	p.sideToMove = them
	p.zobrist ^= zobristSideKey[p.sideToMove]

	p.history = append(p.history, rec)
}

// nullUndo captures just enough to reverse MakeNull: the prior
// en-passant square and Zobrist key (side-to-move and ep contributions
// are the only ones a null move touches).
type nullUndo struct {
	prevEP      Square
	prevZobrist uint64
}

// MakeNull passes the turn without moving a piece, for null-move pruning
// (spec §4.G). Returns an opaque token consumed by UnmakeNull.
func (p *Position) MakeNull() any {
	tok := nullUndo{prevEP: p.epSquare, prevZobrist: p.zobrist}
	p.zobrist ^= zobristEP[epZobristIndex(p.epSquare)]
	p.epSquare = NoSquare
	p.zobrist ^= zobristEP[epZobristIndex(p.epSquare)]
	p.zobrist ^= zobristSideKey[p.sideToMove]
	p.sideToMove = p.sideToMove.Opponent()
	p.zobrist ^= zobristSideKey[p.sideToMove]
	return tok
}

// UnmakeNull reverses the MakeNull call that produced tok.
func (p *Position) UnmakeNull(tok any) {
	u := tok.(nullUndo)
	p.sideToMove = p.sideToMove.Opponent()
	p.epSquare = u.prevEP
	p.zobrist = u.prevZobrist
}

// Unmake reverses the most recent Make call. Panics if called with an
// empty history, since that indicates a caller bug (make/unmake calls must
// always be balanced).
func (p *Position) Unmake() {
	n := len(p.history)
	if n == 0 {
		panic("board: Unmake called with empty history")
	}
	rec := p.history[n-1]
	p.history = p.history[:n-1]

	m := rec.Move
	us := p.sideToMove.Opponent()
	them := p.sideToMove

	p.removePiece(us, m.effectivePromotionKind(), m.To)
	p.addPiece(us, m.MovingKind, m.From)

	if rec.EPCaptureSquare != NoSquare {
		p.addPiece(them, Pawn, rec.EPCaptureSquare)
	} else if rec.CapturedKind != None {
		p.addPiece(them, rec.CapturedKind, m.To)
	}

	if rec.CastleRookFrom != NoSquare {
		p.removePiece(us, Rook, rec.CastleRookTo)
		p.addPiece(us, Rook, rec.CastleRookFrom)
	}

	p.castling = rec.PrevCastling
	p.epSquare = rec.PrevEPSquare
	p.halfmoveClock = rec.PrevHalfmove
	p.fullmoveNumber = rec.PrevFullmove
	p.zobrist = rec.PrevZobrist
	p.sideToMove = us
}
