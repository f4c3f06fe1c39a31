package engine

import (
	"sort"

	"chesscore/board"
)

// MaxPly bounds the killer-move table; search never recurses deeper than
// this within a single choose_move call.
const MaxPly = 128

// Ordering holds the per-search mutable state that move ordering reads
// and writes: killer moves and the history heuristic table. Grounded on
// Oliverans-GooseEngine/engine/killer.go's KillerStruct and the
// dragontoothmg-keyed history table in engine/moveordering.go, rewritten
// against board.Move/board.Square and cleared per choose_move call (spec
// §4.H step 5) rather than kept as unbounded package globals.
type Ordering struct {
	killers [MaxPly][2]board.Move
	history [64][64]int
}

// NewOrdering returns a zeroed Ordering ready for a fresh search.
func NewOrdering() *Ordering {
	return &Ordering{}
}

// Clear resets both tables, called at the start of every choose_move
// (spec §4.H step 5).
func (o *Ordering) Clear() {
	*o = Ordering{}
}

// InsertKiller records m as a killer at ply, keeping the two most recent
// distinct killers (spec's glossary: "up to two killers per ply").
func (o *Ordering) InsertKiller(m board.Move, ply int) {
	if ply < 0 || ply >= MaxPly || m == o.killers[ply][0] {
		return
	}
	o.killers[ply][1] = o.killers[ply][0]
	o.killers[ply][0] = m
}

// BumpHistory increments the quiet-move history entry on a beta cutoff,
// by depth*depth (spec §4.F).
func (o *Ordering) BumpHistory(m board.Move, depth int) {
	o.history[m.From][m.To] += depth * depth
}

func isKiller(o *Ordering, m board.Move, ply int) int {
	if o == nil || ply < 0 || ply >= MaxPly {
		return -1
	}
	if m == o.killers[ply][0] {
		return 0
	}
	if m == o.killers[ply][1] {
		return 1
	}
	return -1
}

// mvvLvaScore implements spec §4.F's capture ordering: raw = 10*victim -
// attacker, shifted into winning/equal/losing bands.
func mvvLvaScore(victim, attacker board.PieceKind) int {
	v, a := pieceValue[victim], pieceValue[attacker]
	raw := 10*v - a
	switch {
	case v > a:
		return 12000 + raw
	case v == a:
		return 9000 + raw
	default:
		return 7000 + raw
	}
}

// pawnPushBonus scores a beneficial pawn double-push per spec §4.F.
// Returns 0 (meaning "not a qualifying push") unless m is a two-square
// pawn advance.
func pawnPushBonus(p *board.Position, m board.Move) (bonus int, qualifies bool) {
	if m.MovingKind != board.Pawn {
		return 0, false
	}
	delta := m.To.Rank() - m.From.Rank()
	if delta != 2 && delta != -2 {
		return 0, false
	}

	bonus = 15
	file := m.From.File()
	switch file {
	case 3, 4: // d, e
		bonus += 20
	case 2, 5: // c, f
		bonus += 10
	}

	us := p.ColorAt(m.From)
	forward := 1
	if us == board.Black {
		forward = -1
	}
	diagFiles := [2]int{file - 1, file + 1}
	for _, df := range diagFiles {
		if df < 0 || df > 7 {
			continue
		}
		bishopSq := board.NewSquare(df, m.From.Rank()+forward)
		if p.PieceAt(bishopSq) == board.Bishop && p.ColorAt(bishopSq) == us {
			_, bishops, _, _ := startSquares(us)
			if bishopSq == bishops[0] || bishopSq == bishops[1] {
				bonus -= 10
			}
		}
	}

	if p.EPSquare() != board.NoSquare {
		bonus += 5
	}

	if file >= 2 && file <= 5 {
		them := us.Opponent()
		for _, csq := range innerCenter {
			if p.PieceAt(csq) == board.Pawn && p.ColorAt(csq) == them {
				bonus += 15
				break
			}
		}
	}

	return bonus, true
}

// Score returns a candidate move's ordering score at the given search
// ply, with priority an optional opening-book hint (spec §4.F).
func (o *Ordering) Score(p *board.Position, m board.Move, ply int, priority board.Move) int {
	if m.IsPromotion && m.PromotionKind == board.Queen {
		return 15000
	}

	if m.CapturedKind != board.None {
		return mvvLvaScore(m.CapturedKind, m.MovingKind)
	}

	if !priority.IsZero() && m == priority {
		return 8500
	}

	if k := isKiller(o, m, ply); k >= 0 {
		return 10000 - 100*k
	}

	if bonus, ok := pawnPushBonus(p, m); ok {
		return 8000 + bonus
	}

	if o != nil {
		return o.history[m.From][m.To]
	}
	return 0
}

// Order sorts moves descending by ordering score. Stable order across
// equal scores is not required (spec §4.F).
func (o *Ordering) Order(p *board.Position, moves []board.Move, ply int, priority board.Move) {
	sort.Slice(moves, func(i, j int) bool {
		return o.Score(p, moves[i], ply, priority) > o.Score(p, moves[j], ply, priority)
	})
}
