package board

import "math/bits"

// Precomputed attack/ray tables. Grounded on goosemg/movegen.go's
// initAttackTables/initRays (Oliverans-GooseEngine/goosemg/movegen.go):
// knight and king jump tables, pawn attack tables, and four-directional
// sliding rays per square, all built once at package init.
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard // [color][square] squares that color's pawn attacks from square

	// Rook rays: 0=N 1=S 2=E 3=W. Bishop rays: 0=NE 1=NW 2=SE 3=SW.
	rookRays   [64][4]Bitboard
	bishopRays [64][4]Bitboard
)

func init() {
	knightOffsets := [8][2]int{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	kingOffsets := [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

	for sq := 0; sq < 64; sq++ {
		file, rank := sq%8, sq/8
		var kn, ki Bitboard
		for _, o := range knightOffsets {
			rf, ff := rank+o[0], file+o[1]
			if rf >= 0 && rf < 8 && ff >= 0 && ff < 8 {
				kn = kn.Set(Square(rf*8 + ff))
			}
		}
		for _, o := range kingOffsets {
			rf, ff := rank+o[0], file+o[1]
			if rf >= 0 && rf < 8 && ff >= 0 && ff < 8 {
				ki = ki.Set(Square(rf*8 + ff))
			}
		}
		knightAttacks[sq] = kn
		kingAttacks[sq] = ki

		if rank < 7 {
			if file > 0 {
				pawnAttacks[White][sq] = pawnAttacks[White][sq].Set(Square((rank+1)*8 + file - 1))
			}
			if file < 7 {
				pawnAttacks[White][sq] = pawnAttacks[White][sq].Set(Square((rank+1)*8 + file + 1))
			}
		}
		if rank > 0 {
			if file > 0 {
				pawnAttacks[Black][sq] = pawnAttacks[Black][sq].Set(Square((rank-1)*8 + file - 1))
			}
			if file < 7 {
				pawnAttacks[Black][sq] = pawnAttacks[Black][sq].Set(Square((rank-1)*8 + file + 1))
			}
		}
	}

	for sq := 0; sq < 64; sq++ {
		file, rank := sq%8, sq/8

		var n, s, e, w Bitboard
		for r := rank + 1; r < 8; r++ {
			n = n.Set(Square(r*8 + file))
		}
		for r := rank - 1; r >= 0; r-- {
			s = s.Set(Square(r*8 + file))
		}
		for f := file + 1; f < 8; f++ {
			e = e.Set(Square(rank*8 + f))
		}
		for f := file - 1; f >= 0; f-- {
			w = w.Set(Square(rank*8 + f))
		}
		rookRays[sq] = [4]Bitboard{n, s, e, w}

		var ne, nw, se, sw Bitboard
		for r, f := rank+1, file+1; r < 8 && f < 8; r, f = r+1, f+1 {
			ne = ne.Set(Square(r*8 + f))
		}
		for r, f := rank+1, file-1; r < 8 && f >= 0; r, f = r+1, f-1 {
			nw = nw.Set(Square(r*8 + f))
		}
		for r, f := rank-1, file+1; r >= 0 && f < 8; r, f = r-1, f+1 {
			se = se.Set(Square(r*8 + f))
		}
		for r, f := rank-1, file-1; r >= 0 && f >= 0; r, f = r-1, f-1 {
			sw = sw.Set(Square(r*8 + f))
		}
		bishopRays[sq] = [4]Bitboard{ne, nw, se, sw}
	}
}

// firstBlockerHigh returns the highest-index set square in bb (used for
// rays that decrease in index away from the origin: S and W for rooks,
// SE and SW for bishops).
func firstBlockerHigh(bb Bitboard) Square {
	return Square(63 - bits.LeadingZeros64(uint64(bb)))
}

// rookAttacksFrom returns the rook attack bitboard from sq given the
// current total occupancy, stopping at (and including) the first blocker
// in each of the four directions. Grounded on goosemg/movegen.go's
// rookAttacks ray-scan (non-magic variant).
func rookAttacksFrom(sq Square, occ Bitboard) Bitboard {
	var attacks Bitboard
	rays := rookRays[sq]

	ray := rays[0]
	if blockers := ray & occ; blockers != 0 {
		first := blockers.LeastSignificantSquare()
		ray &^= rookRays[first][0]
	}
	attacks |= ray

	ray = rays[1]
	if blockers := ray & occ; blockers != 0 {
		first := firstBlockerHigh(blockers)
		ray &^= rookRays[first][1]
	}
	attacks |= ray

	ray = rays[2]
	if blockers := ray & occ; blockers != 0 {
		first := blockers.LeastSignificantSquare()
		ray &^= rookRays[first][2]
	}
	attacks |= ray

	ray = rays[3]
	if blockers := ray & occ; blockers != 0 {
		first := firstBlockerHigh(blockers)
		ray &^= rookRays[first][3]
	}
	attacks |= ray

	return attacks
}

// bishopAttacksFrom is rookAttacksFrom's diagonal counterpart.
func bishopAttacksFrom(sq Square, occ Bitboard) Bitboard {
	var attacks Bitboard
	rays := bishopRays[sq]

	ray := rays[0]
	if blockers := ray & occ; blockers != 0 {
		first := blockers.LeastSignificantSquare()
		ray &^= bishopRays[first][0]
	}
	attacks |= ray

	ray = rays[1]
	if blockers := ray & occ; blockers != 0 {
		first := blockers.LeastSignificantSquare()
		ray &^= bishopRays[first][1]
	}
	attacks |= ray

	ray = rays[2]
	if blockers := ray & occ; blockers != 0 {
		first := firstBlockerHigh(blockers)
		ray &^= bishopRays[first][2]
	}
	attacks |= ray

	ray = rays[3]
	if blockers := ray & occ; blockers != 0 {
		first := firstBlockerHigh(blockers)
		ray &^= bishopRays[first][3]
	}
	attacks |= ray

	return attacks
}

// attackedBy reports whether sq is attacked by color `by` given the
// supplied occupancy, without mutating the position. Grounded on
// goosemg's isSquareAttackedWithOcc; used both for IsSquareAttacked and
// for speculative (pre-move) castling/king-safety checks.
func (p *Position) attackedBy(sq Square, by Color, occ Bitboard) bool {
	if by == White {
		if pawnAttacks[Black][sq]&p.pieceBB[White][Pawn] != 0 {
			return true
		}
	} else {
		if pawnAttacks[White][sq]&p.pieceBB[Black][Pawn] != 0 {
			return true
		}
	}
	if knightAttacks[sq]&p.pieceBB[by][Knight] != 0 {
		return true
	}
	if kingAttacks[sq]&p.pieceBB[by][King] != 0 {
		return true
	}
	rq := p.pieceBB[by][Rook] | p.pieceBB[by][Queen]
	if rq != 0 && rookAttacksFrom(sq, occ)&rq != 0 {
		return true
	}
	bq := p.pieceBB[by][Bishop] | p.pieceBB[by][Queen]
	if bq != 0 && bishopAttacksFrom(sq, occ)&bq != 0 {
		return true
	}
	return false
}

// IsSquareAttacked reports whether sq is attacked by color `by` in the
// current position (spec §4.C).
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	return p.attackedBy(sq, by, p.Occupancy())
}

// IsInCheck reports whether color's king currently stands on an attacked
// square (spec §4.C: is_in_check). Castling is never consulted here, so
// there is no recursion risk between check detection and castle legality.
func (p *Position) IsInCheck(c Color) bool {
	ks := p.KingSquare(c)
	if ks == NoSquare {
		return false
	}
	return p.IsSquareAttacked(ks, c.Opponent())
}
