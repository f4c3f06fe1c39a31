package engine

import (
	"time"

	"chesscore/board"
)

// Mate scoring bounds (spec §9's open question on fixed-width safety):
// kept well inside [-32000, 32000] for signed 32-bit headroom.
const (
	MateScore  = 20000
	MateCutoff = 15000
)

// SearchResult is what a completed (or timed-out) iterative-deepening
// search hands back to the decision layer (spec §4.G, §4.H step 6).
type SearchResult struct {
	BestMove        board.Move
	Score           int
	MaxDepthReached int
	Nodes           int
	ElapsedMS       int64
	Timeout         bool
}

// Search holds one choose_move invocation's mutable search state.
// Grounded on Oliverans-GooseEngine/engine/search.go's StartSearch/
// rootsearch shape, rewritten against board.Position and deliberately
// without a transposition table or aspiration windows — spec §4.G names
// neither, and a from-scratch TT keyed on the new Zobrist layout has no
// grounding text to follow faithfully, so it is left out rather than
// invented (see DESIGN.md).
type Search struct {
	profile  DifficultyProfile
	ordering *Ordering
	priority board.Move

	deadline time.Time
	nodes    int
	timedOut bool
}

// NewSearch prepares a search against profile, biasing ordering toward
// priority (the opening-book hint, or the zero Move if none).
func NewSearch(profile DifficultyProfile, ordering *Ordering, priority board.Move) *Search {
	return &Search{profile: profile, ordering: ordering, priority: priority}
}

// Run performs iterative deepening from profile.MinDepth to
// profile.MaxDepth, stopping early on timeout or once a mate score is
// found (spec §4.G).
func (s *Search) Run(p *board.Position) SearchResult {
	start := time.Now()
	s.deadline = start.Add(time.Duration(s.profile.MaxTimeMS) * time.Millisecond)

	legal := p.LegalMoves()
	result := SearchResult{}
	if len(legal) == 0 {
		result.ElapsedMS = time.Since(start).Milliseconds()
		return result
	}
	s.ordering.Order(p, legal, 0, s.priority)
	result.BestMove = legal[0]

	for depth := s.profile.MinDepth; depth <= s.profile.MaxDepth; depth++ {
		if time.Now().After(s.deadline) {
			break
		}
		move, score, timedOut := s.searchRoot(p, legal, depth)
		if !move.IsZero() {
			result.BestMove = move
			result.Score = score
			result.MaxDepthReached = depth
		}
		if timedOut {
			result.Timeout = true
			break
		}
		if score > MateCutoff || score < -MateCutoff {
			break
		}
		if float64(time.Since(start).Milliseconds()) > 0.7*float64(s.profile.MaxTimeMS) {
			break
		}
	}

	result.Nodes = s.nodes
	result.ElapsedMS = time.Since(start).Milliseconds()
	return result
}

func (s *Search) timeUp() bool {
	if s.timedOut {
		return true
	}
	if time.Now().After(s.deadline) {
		s.timedOut = true
	}
	return s.timedOut
}

func (s *Search) searchRoot(p *board.Position, moves []board.Move, depth int) (board.Move, int, bool) {
	s.ordering.Order(p, moves, 0, s.priority)

	best := moves[0]
	bestScore := -MateScore - 1
	alpha, beta := -MateScore-1, MateScore+1

	for i, m := range moves {
		p.Make(m)
		childDepth := depth - 1
		if s.profile.UseLMR && i >= 4 && depth >= 3 && isQuietMove(m) {
			childDepth--
			if childDepth < 0 {
				childDepth = 0
			}
		}
		score := -s.negamax(p, childDepth, -beta, -alpha, 1)
		p.Unmake()

		if score > bestScore {
			bestScore = score
			best = m
		}
		if score > alpha {
			alpha = score
		}
		if s.timeUp() {
			return best, bestScore, true
		}
	}
	return best, bestScore, false
}

func isQuietMove(m board.Move) bool {
	return m.CapturedKind == board.None && !m.IsPromotion
}

// negamax is fail-hard alpha-beta from the side-to-move's perspective at
// each node (spec §4.G).
func (s *Search) negamax(p *board.Position, depth, alpha, beta, ply int) int {
	s.nodes++
	if s.timeUp() {
		return Evaluate(p, p.SideToMove(), s.profile)
	}

	us := p.SideToMove()
	if !p.HasAnyLegalMove() {
		if p.IsInCheck(us) {
			return -(MateScore - ply)
		}
		return 0
	}

	if depth <= 0 {
		if s.profile.UseQuiescence {
			return s.quiescence(p, alpha, beta, 0)
		}
		return Evaluate(p, us, s.profile)
	}

	if s.profile.UseNullMove && depth >= 3 && ply > 0 && !p.IsInCheck(us) {
		tok := p.MakeNull()
		score := -s.negamax(p, depth-3, -beta, -beta+1, ply+1)
		p.UnmakeNull(tok)
		if score >= beta {
			return beta
		}
	}

	moves := p.LegalMoves()
	s.ordering.Order(p, moves, ply, s.priority)

	best := -MateScore - 1
	for i, m := range moves {
		p.Make(m)
		childDepth := depth - 1
		if s.profile.UseLMR && i >= 4 && depth >= 3 && isQuietMove(m) {
			childDepth--
			if childDepth < 0 {
				childDepth = 0
			}
		}
		score := -s.negamax(p, childDepth, -beta, -alpha, ply+1)
		p.Unmake()

		if score >= beta {
			if isQuietMove(m) {
				s.ordering.InsertKiller(m, ply)
				s.ordering.BumpHistory(m, depth)
			}
			return beta
		}
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if s.timeUp() {
			break
		}
	}
	return best
}

// seeApprox is the quiescence-only capture ordering approximation (spec
// §4.G): victim_value - attacker_value/10.
func seeApprox(victim, attacker board.PieceKind) int {
	return pieceValue[victim] - pieceValue[attacker]/10
}

// quiescence resolves tactical sequences at search leaves (spec §4.G).
// Bounded by profile.QuiescenceDepth.
func (s *Search) quiescence(p *board.Position, alpha, beta, qDepth int) int {
	s.nodes++
	if s.timeUp() {
		return Evaluate(p, p.SideToMove(), s.profile)
	}

	standPat := Evaluate(p, p.SideToMove(), s.profile)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}
	if qDepth >= s.profile.QuiescenceDepth {
		return alpha
	}

	captures := make([]board.Move, 0, 8)
	for _, m := range p.LegalMoves() {
		if m.CapturedKind != board.None {
			captures = append(captures, m)
		}
	}
	sortCapturesBySEE(captures)

	for _, m := range captures {
		p.Make(m)
		score := -s.quiescence(p, -beta, -alpha, qDepth+1)
		p.Unmake()

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

func sortCapturesBySEE(moves []board.Move) {
	for i := 1; i < len(moves); i++ {
		for j := i; j > 0 && seeApprox(moves[j].CapturedKind, moves[j].MovingKind) > seeApprox(moves[j-1].CapturedKind, moves[j-1].MovingKind); j-- {
			moves[j], moves[j-1] = moves[j-1], moves[j]
		}
	}
}
