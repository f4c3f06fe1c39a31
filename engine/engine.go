package engine

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"chesscore/board"
)

// BookMove is one weighted candidate returned by a BookSource (spec §6).
type BookMove struct {
	Move   board.Move
	Weight float64
}

// BookSource is the external opening-book collaborator (spec §6). The
// core never loads book files itself; bookstore.Store is one concrete
// implementation wired at the boundary.
type BookSource interface {
	Query(zobristKey uint64) []BookMove
}

// Engine is the decision layer: it owns a difficulty profile, an
// optional book source, move-ordering state, a bounded report history,
// and its own random source (spec §4.H, §9's "thread state through the
// engine instance rather than a global"). Grounded on
// Oliverans-GooseEngine's engine package structure (search + ordering +
// opening book composed behind one entry point), rewritten around
// board.Position instead of dragontoothmg.Board.
type Engine struct {
	profile DifficultyProfile
	book    BookSource

	ordering *Ordering
	history  *reportHistory
	rnd      *rand.Rand
	log      zerolog.Logger
}

// EngineOption configures optional Engine behavior at construction time
// (spec §9: functional options in place of a dynamic config object).
type EngineOption func(*Engine)

// WithLogger injects a structured logger; the default is zerolog's
// no-op logger, so an Engine built without this option stays silent.
func WithLogger(l zerolog.Logger) EngineOption {
	return func(e *Engine) { e.log = l }
}

// WithReportHistoryCapacity overrides the bounded report ring buffer's
// capacity (spec §5 default: 100).
func WithReportHistoryCapacity(n int) EngineOption {
	return func(e *Engine) { e.history = newReportHistory(n) }
}

// WithRandSource pins the engine's random source, for deterministic
// imperfection injection and book sampling in tests (spec §8 property
// 15: determinism under a fixed seed stream).
func WithRandSource(src rand.Source) EngineOption {
	return func(e *Engine) { e.rnd = rand.New(src) }
}

// New builds an Engine for the given difficulty, with an optional book
// source (spec §6: Engine::new(difficulty, book_source?)).
func New(profile DifficultyProfile, book BookSource, opts ...EngineOption) *Engine {
	e := &Engine{
		profile:  profile,
		book:     book,
		ordering: NewOrdering(),
		history:  newReportHistory(100),
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// LatestReport returns the most recent decision's report (spec §6:
// Engine::latest_report).
func (e *Engine) LatestReport() (Report, bool) {
	return e.history.latest()
}

// ReportHistory returns every retained report, oldest first.
func (e *Engine) ReportHistory() []Report {
	return e.history.all()
}

// ChooseMove runs the full decision protocol of spec §4.H and returns
// the selected move, or false if the position has no legal moves (spec
// §6: Engine::choose_move returns None only then).
func (e *Engine) ChooseMove(p *board.Position) (board.Move, bool) {
	start := time.Now()
	report := Report{
		TimestampUnixMS: start.UnixMilli(),
		Side:            p.SideToMove().String(),
		Difficulty:      e.profile.Name,
		FEN:             p.ToFEN(),
		Ply:             p.Ply(),
		Imperfection:    Imperfection{Kind: "none"},
	}

	delay := e.thinkingDelay()
	if delay > 0 {
		time.Sleep(delay)
	}

	legal := p.LegalMoves()
	for _, m := range legal {
		report.LegalMoves = append(report.LegalMoves, m.UCI())
	}
	if len(legal) == 0 {
		e.log.Debug().Str("fen", report.FEN).Msg("no legal moves")
		e.history.append(report)
		return board.Move{}, false
	}
	if len(legal) == 1 {
		report.ChosenMove = legal[0].UCI()
		report.FinalMove = legal[0].UCI()
		e.history.append(report)
		return legal[0], true
	}

	priority := e.consultBook(p, &report)

	e.ordering.Clear()
	e.recordMoveEvaluations(p, legal, &report)

	search := NewSearch(e.profile, e.ordering, priority)
	result := search.Run(p)

	report.SearchStats = SearchStats{
		PositionsEvaluated: result.Nodes,
		MaxDepthReached:    result.MaxDepthReached,
		ElapsedMS:          result.ElapsedMS,
		Timeout:            result.Timeout,
	}
	if result.ElapsedMS > 0 {
		report.SearchStats.NodesPerSecond = float64(result.Nodes) / (float64(result.ElapsedMS) / 1000.0)
	}
	e.log.Debug().
		Int("depth", result.MaxDepthReached).
		Int("score", result.Score).
		Int("nodes", result.Nodes).
		Int64("elapsed_ms", result.ElapsedMS).
		Msg("search complete")

	bestMove := result.BestMove
	report.ChosenMove = bestMove.UCI()
	report.ChosenScore = result.Score

	finalMove := e.applyImperfection(p, legal, bestMove, &report)
	if finalMove.IsZero() {
		finalMove = legal[0]
	}
	report.FinalMove = finalMove.UCI()

	e.history.append(report)
	return finalMove, true
}

// thinkingDelay draws a UX pacing delay uniformly from the configured
// range (spec §4.H step 2). When the maximum is not above the minimum the
// delay is exactly the minimum, so a 0..0 range yields no delay.
func (e *Engine) thinkingDelay() time.Duration {
	lo, hi := e.profile.ThinkingDelayMinMS, e.profile.ThinkingDelayMaxMS
	if hi <= lo {
		return time.Duration(lo) * time.Millisecond
	}
	ms := lo + e.rnd.Intn(hi-lo+1)
	return time.Duration(ms) * time.Millisecond
}

// consultBook implements spec §4.H step 4: query the book only when
// enabled and within the opening window, sample one candidate by weight,
// and feed it to move ordering as a priority hint rather than playing it
// directly.
func (e *Engine) consultBook(p *board.Position, report *Report) board.Move {
	if !e.profile.UseBook || e.book == nil || p.Ply() > 30 {
		return board.Move{}
	}
	report.Book.Tried = true

	candidates := e.book.Query(p.Zobrist())
	if len(candidates) == 0 {
		return board.Move{}
	}
	report.Book.Found = true

	picked := e.sampleByWeight(candidates)
	if picked.Move.IsZero() {
		return board.Move{}
	}
	for _, m := range p.LegalMoves() {
		if m == picked.Move {
			report.Book.Move = m.UCI()
			report.Book.UsedAsPriority = true
			e.log.Debug().Str("book_move", m.UCI()).Msg("book hint fed to ordering")
			return m
		}
	}
	return board.Move{}
}

func (e *Engine) sampleByWeight(candidates []BookMove) BookMove {
	total := 0.0
	for _, c := range candidates {
		total += c.Weight
	}
	if total <= 0 {
		return candidates[0]
	}
	r := e.rnd.Float64() * total
	for _, c := range candidates {
		r -= c.Weight
		if r <= 0 {
			return c
		}
	}
	return candidates[len(candidates)-1]
}

// recordMoveEvaluations fills in the report's full move-analysis list
// and its top-10 subset (spec §4.I). Each entry is a 1-ply static
// evaluation of the position after the candidate move, from the mover's
// perspective.
func (e *Engine) recordMoveEvaluations(p *board.Position, legal []board.Move, report *Report) {
	us := p.SideToMove()
	evals := make([]MoveEvaluation, 0, len(legal))
	for _, m := range legal {
		p.Make(m)
		total, breakdown := EvaluateWithBreakdown(p, us, e.profile)
		p.Unmake()

		named := make(map[string]int, len(breakdown))
		for h, v := range breakdown {
			named[h.String()] = v
		}
		evals = append(evals, MoveEvaluation{Move: m.UCI(), TotalScore: total, Breakdown: named})
	}

	sorted := append([]MoveEvaluation(nil), evals...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].TotalScore > sorted[j-1].TotalScore; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	top := 10
	if top > len(sorted) {
		top = len(sorted)
	}

	report.AllMoveEvaluations = evals
	report.Top10Evaluations = sorted[:top]
}

// applyImperfection implements spec §4.H step 7: with blunder_chance
// probability, replace the search's move with a uniformly random legal
// move; else with mistake_chance probability, pick uniformly among the
// top mistake_pool_size moves by 1-ply static evaluation.
func (e *Engine) applyImperfection(p *board.Position, legal []board.Move, best board.Move, report *Report) board.Move {
	if e.rnd.Float64() < e.profile.BlunderChance {
		pick := legal[e.rnd.Intn(len(legal))]
		report.Imperfection = Imperfection{Kind: "blunder", OriginalMove: best.UCI()}
		e.log.Debug().Str("original", best.UCI()).Str("blunder", pick.UCI()).Msg("imperfection: blunder")
		return pick
	}

	if e.rnd.Float64() < e.profile.MistakeChance {
		pool := e.mistakePool(report.AllMoveEvaluations, legal)
		if len(pool) > 0 {
			pick := pool[e.rnd.Intn(len(pool))]
			if pick != best {
				report.Imperfection = Imperfection{Kind: "suboptimal", OriginalMove: best.UCI()}
				e.log.Debug().Str("original", best.UCI()).Str("mistake", pick.UCI()).Msg("imperfection: suboptimal")
			}
			return pick
		}
	}

	report.Imperfection = Imperfection{Kind: "none"}
	return best
}

// mistakePool ranks legal moves by their already-computed 1-ply static
// evaluation and returns the top mistake_pool_size moves.
func (e *Engine) mistakePool(evals []MoveEvaluation, legal []board.Move) []board.Move {
	type scored struct {
		move  board.Move
		score int
	}
	byUCI := make(map[string]int, len(evals))
	for _, ev := range evals {
		byUCI[ev.Move] = ev.TotalScore
	}
	ranked := make([]scored, 0, len(legal))
	for _, m := range legal {
		ranked = append(ranked, scored{m, byUCI[m.UCI()]})
	}
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].score > ranked[j-1].score; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}
	n := e.profile.MistakePoolSize
	if n > len(ranked) {
		n = len(ranked)
	}
	pool := make([]board.Move, n)
	for i := 0; i < n; i++ {
		pool[i] = ranked[i].move
	}
	return pool
}
