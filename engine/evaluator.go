package engine

import "chesscore/board"

// Static evaluation: a weighted sum of independently enabled heuristics
// with game-phase interpolation. Grounded on
// Oliverans-GooseEngine/engine/evaluation.go's PSQT-plus-phase-blend
// shape, rewritten against the fixed formulas spec §4.E specifies (the
// teacher's tuned PSQT tables and king-safety attacker weights have no
// home here; this evaluator's weights are fixed constants, not tunable).

var pieceValue = [...]int{
	board.King:   0,
	board.Queen:  900,
	board.Rook:   500,
	board.Bishop: 330,
	board.Knight: 320,
	board.Pawn:   100,
}

var phaseWeight = [...]int{
	board.King:   0,
	board.Queen:  4,
	board.Rook:   2,
	board.Bishop: 1,
	board.Knight: 1,
	board.Pawn:   0,
}

// Phase returns the game-phase measure (spec §4.E): a weighted count of
// remaining non-pawn, non-king material.
func Phase(p *board.Position) int {
	phase := 0
	for c := board.White; c <= board.Black; c++ {
		for _, k := range [...]board.PieceKind{board.Queen, board.Rook, board.Bishop, board.Knight} {
			phase += p.PieceBB(c, k).PopCount() * phaseWeight[k]
		}
	}
	return phase
}

// EndgameWeight returns max(0, 1 - phase/24) (spec §4.E).
func EndgameWeight(phase int) float64 {
	w := 1.0 - float64(phase)/24.0
	if w < 0 {
		return 0
	}
	return w
}

// HeuristicBreakdown maps each evaluated heuristic to its contribution
// (spec §4.E: evaluate_with_breakdown; spec §4.I: per-move breakdown).
type HeuristicBreakdown map[Heuristic]int

// Evaluate returns the composite centipawn score from us's perspective
// (spec §4.E).
func Evaluate(p *board.Position, us board.Color, profile DifficultyProfile) int {
	total, _ := EvaluateWithBreakdown(p, us, profile)
	return total
}

// EvaluateWithBreakdown evaluates p from us's perspective and also
// returns the per-heuristic contributions, for the per-move report entry
// (spec §4.I).
func EvaluateWithBreakdown(p *board.Position, us board.Color, profile DifficultyProfile) (int, HeuristicBreakdown) {
	them := us.Opponent()
	phase := Phase(p)
	endgameWeight := EndgameWeight(phase)
	plyCount := p.Ply()

	breakdown := make(HeuristicBreakdown, len(profile.Heuristics))
	total := 0
	for _, h := range profile.Heuristics {
		var v int
		switch h {
		case HeuristicMaterial:
			v = evalMaterial(p, us, them)
		case HeuristicCenterControl:
			v = evalCenterControl(p, us, them)
		case HeuristicDevelopment:
			if plyCount <= 20 {
				v = evalDevelopment(p, us, them, plyCount)
			}
		case HeuristicPawnStructure:
			v = evalPawnStructure(p, us, them)
		case HeuristicKingSafety:
			v = evalKingSafety(p, us, them, endgameWeight)
		}
		breakdown[h] = v
		total += v
	}
	return total, breakdown
}

func evalMaterial(p *board.Position, us, them board.Color) int {
	score := 0
	for _, k := range [...]board.PieceKind{board.Queen, board.Rook, board.Bishop, board.Knight, board.Pawn} {
		diff := p.PieceBB(us, k).PopCount() - p.PieceBB(them, k).PopCount()
		score += diff * pieceValue[k]
	}
	return score
}

var innerCenter = [...]board.Square{
	board.NewSquare(3, 3), board.NewSquare(4, 3), // d4, e4
	board.NewSquare(3, 4), board.NewSquare(4, 4), // d5, e5
}

var extendedCenterRing = func() []board.Square {
	var sqs []board.Square
	for file := 2; file <= 5; file++ {
		for rank := 2; rank <= 5; rank++ {
			sq := board.NewSquare(file, rank)
			if sq == innerCenter[0] || sq == innerCenter[1] || sq == innerCenter[2] || sq == innerCenter[3] {
				continue
			}
			sqs = append(sqs, sq)
		}
	}
	return sqs
}()

func centerPieceBonus(k board.PieceKind) int {
	switch k {
	case board.Pawn:
		return 30
	case board.Knight:
		return 20
	case board.Bishop:
		return 15
	default:
		return 10
	}
}

func evalCenterControl(p *board.Position, us, them board.Color) int {
	score := 0
	for _, sq := range innerCenter {
		k := p.PieceAt(sq)
		if k == board.None {
			continue
		}
		bonus := centerPieceBonus(k)
		if p.ColorAt(sq) == us {
			score += bonus
		} else {
			score -= bonus
		}
	}
	for _, sq := range extendedCenterRing {
		k := p.PieceAt(sq)
		if k == board.None {
			continue
		}
		if p.ColorAt(sq) == us {
			score += 5
		} else {
			score -= 5
		}
	}
	return score
}

func startSquares(c board.Color) (knights, bishops [2]board.Square, kingHome, queenHome board.Square) {
	rank := 0
	if c == board.Black {
		rank = 7
	}
	return [2]board.Square{board.NewSquare(1, rank), board.NewSquare(6, rank)},
		[2]board.Square{board.NewSquare(2, rank), board.NewSquare(5, rank)},
		board.NewSquare(4, rank), board.NewSquare(3, rank)
}

func undevelopedMinors(p *board.Position, c board.Color) int {
	knights, bishops, _, _ := startSquares(c)
	n := 0
	for _, sq := range knights {
		if p.PieceAt(sq) == board.Knight && p.ColorAt(sq) == c {
			n++
		}
	}
	for _, sq := range bishops {
		if p.PieceAt(sq) == board.Bishop && p.ColorAt(sq) == c {
			n++
		}
	}
	return n
}

func developmentFor(p *board.Position, c board.Color, plyCount int) int {
	score := -25 * undevelopedMinors(p, c)

	_, _, kingHome, queenHome := startSquares(c)
	rank := kingHome.Rank()
	ks := p.KingSquare(c)
	if ks == kingHome {
		score -= 15
	} else if ks.Rank() == rank && (ks.File() == 6 || ks.File() == 2) {
		score += 40
	}

	if plyCount < 8 {
		qHasMoved := p.PieceAt(queenHome) != board.Queen || p.ColorAt(queenHome) != c
		if qHasMoved && undevelopedMinors(p, c) >= 2 {
			queenOffRank := true
			bb := p.PieceBB(c, board.Queen)
			for bb != 0 {
				var sq board.Square
				sq, bb = bb.PopLSB()
				if sq.Rank() == rank {
					queenOffRank = false
				}
			}
			if queenOffRank {
				score -= 30
			}
		}
	}
	return score
}

func evalDevelopment(p *board.Position, us, them board.Color, plyCount int) int {
	return developmentFor(p, us, plyCount) - developmentFor(p, them, plyCount)
}

var passedPawnBonusByRank = [8]int{0, 10, 15, 25, 40, 60, 90, 0}

func pawnStructureFor(p *board.Position, c board.Color) int {
	them := c.Opponent()
	ourPawns := p.PieceBB(c, board.Pawn)
	theirPawns := p.PieceBB(them, board.Pawn)

	var fileCount [8]int
	bb := ourPawns
	for bb != 0 {
		var sq board.Square
		sq, bb = bb.PopLSB()
		fileCount[sq.File()]++
	}

	score := 0
	for f := 0; f < 8; f++ {
		n := fileCount[f]
		if n > 1 {
			score -= 12 * (n - 1)
		}
		if n == 0 {
			continue
		}
		adjacentHasFriend := (f > 0 && fileCount[f-1] > 0) || (f < 7 && fileCount[f+1] > 0)
		if adjacentHasFriend {
			score += 8 * n
		} else {
			score -= 15 * n
		}
	}

	bb = ourPawns
	for bb != 0 {
		var sq board.Square
		sq, bb = bb.PopLSB()
		if isPassedPawn(sq, c, theirPawns) {
			advanced := sq.Rank()
			if c == board.Black {
				advanced = 7 - sq.Rank()
			}
			score += passedPawnBonusByRank[advanced]
		}
	}
	return score
}

func isPassedPawn(sq board.Square, c board.Color, theirPawns board.Bitboard) bool {
	file := sq.File()
	rank := sq.Rank()
	bb := theirPawns
	for bb != 0 {
		var osq board.Square
		osq, bb = bb.PopLSB()
		of := osq.File()
		if of != file && of != file-1 && of != file+1 {
			continue
		}
		if c == board.White && osq.Rank() > rank {
			return false
		}
		if c == board.Black && osq.Rank() < rank {
			return false
		}
	}
	return true
}

func evalPawnStructure(p *board.Position, us, them board.Color) int {
	return pawnStructureFor(p, us) - pawnStructureFor(p, them)
}

func kingSafetyFor(p *board.Position, c board.Color) int {
	rank := 0
	pawnRank := 1
	if c == board.Black {
		rank = 7
		pawnRank = 6
	}
	ks := p.KingSquare(c)
	if ks.Rank() != rank {
		return 0
	}
	file := ks.File()
	if file >= 3 && file <= 4 {
		return 0
	}

	score := 0
	pawns := p.PieceBB(c, board.Pawn)
	for df := -1; df <= 1; df++ {
		f := file + df
		if f < 0 || f > 7 {
			continue
		}
		if pawns.Get(board.NewSquare(f, pawnRank)) {
			score += 12
		} else {
			score -= 25
		}
	}
	return score
}

func evalKingSafety(p *board.Position, us, them board.Color, endgameWeight float64) int {
	raw := kingSafetyFor(p, us) - kingSafetyFor(p, them)
	scale := 1 - endgameWeight
	if scale < 0.2 {
		scale = 0.2
	}
	return int(float64(raw) * scale)
}
