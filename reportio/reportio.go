// Package reportio serializes an engine.Report at the core's boundary
// (spec §4.I: "free functions at the boundary; not core logic"). The
// JSON field names follow the vocabulary recovered from
// original_source/scripts/analyze_decisions.py rather than the Go
// struct's own field names.
package reportio

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"chesscore/engine"
)

type jsonMeta struct {
	Timestamp  string `json:"timestamp"`
	BotColor   string `json:"botColor"`
	Difficulty string `json:"difficulty"`
	MoveNumber int    `json:"moveNumber"`
	FEN        string `json:"fen"`
}

type jsonOpeningBook struct {
	Tried                bool   `json:"tried"`
	Found                bool   `json:"found"`
	Move                 string `json:"move"`
	IntegratedIntoSearch bool   `json:"integratedIntoSearch"`
}

type jsonSearchStats struct {
	PositionsEvaluated int     `json:"positionsEvaluated"`
	MaxDepthReached    int     `json:"maxDepthReached"`
	TimeSpentMs        int64   `json:"timeSpentMs"`
	NodesPerSecond     float64 `json:"nodesPerSecond"`
	Timeout            bool    `json:"timeout"`
}

type jsonMoveRef struct {
	Algebraic string `json:"algebraic"`
}

type jsonMoveEval struct {
	Move      jsonMoveRef    `json:"move"`
	Score     int            `json:"score"`
	Breakdown map[string]int `json:"breakdown"`
}

type jsonMoveAnalysis struct {
	TotalLegalMoves int            `json:"totalLegalMoves"`
	AllMoves        []jsonMoveEval `json:"allMoves"`
	Top10           []jsonMoveEval `json:"top10"`
}

type jsonImperfection struct {
	Type         string `json:"type"`
	OriginalMove string `json:"originalMove,omitempty"`
}

type jsonDecision struct {
	SelectedMove  string           `json:"selectedMove"`
	SelectedScore int              `json:"selectedScore"`
	Imperfection  jsonImperfection `json:"imperfection"`
}

type jsonReport struct {
	Meta         jsonMeta         `json:"meta"`
	OpeningBook  jsonOpeningBook  `json:"openingBook"`
	SearchStats  jsonSearchStats  `json:"searchStats"`
	MoveAnalysis jsonMoveAnalysis `json:"moveAnalysis"`
	Decision     jsonDecision     `json:"decision"`
}

func toMoveEvals(evals []engine.MoveEvaluation) []jsonMoveEval {
	out := make([]jsonMoveEval, 0, len(evals))
	for _, e := range evals {
		out = append(out, jsonMoveEval{
			Move:      jsonMoveRef{Algebraic: e.Move},
			Score:     e.TotalScore,
			Breakdown: e.Breakdown,
		})
	}
	return out
}

func toJSONReport(r *engine.Report) jsonReport {
	imperfectionType := r.Imperfection.Kind
	if imperfectionType == "" {
		imperfectionType = "none"
	}
	return jsonReport{
		Meta: jsonMeta{
			Timestamp:  time.UnixMilli(r.TimestampUnixMS).UTC().Format(time.RFC3339Nano),
			BotColor:   r.Side,
			Difficulty: r.Difficulty,
			MoveNumber: r.Ply,
			FEN:        r.FEN,
		},
		OpeningBook: jsonOpeningBook{
			Tried:                r.Book.Tried,
			Found:                r.Book.Found,
			Move:                 r.Book.Move,
			IntegratedIntoSearch: r.Book.UsedAsPriority,
		},
		SearchStats: jsonSearchStats{
			PositionsEvaluated: r.SearchStats.PositionsEvaluated,
			MaxDepthReached:    r.SearchStats.MaxDepthReached,
			TimeSpentMs:        r.SearchStats.ElapsedMS,
			NodesPerSecond:     r.SearchStats.NodesPerSecond,
			Timeout:            r.SearchStats.Timeout,
		},
		MoveAnalysis: jsonMoveAnalysis{
			TotalLegalMoves: len(r.LegalMoves),
			AllMoves:        toMoveEvals(r.AllMoveEvaluations),
			Top10:           toMoveEvals(r.Top10Evaluations),
		},
		Decision: jsonDecision{
			SelectedMove:  r.ChosenMove,
			SelectedScore: r.ChosenScore,
			Imperfection: jsonImperfection{
				Type:         imperfectionType,
				OriginalMove: r.Imperfection.OriginalMove,
			},
		},
	}
}

// ToJSON renders r in the analyzer-compatible JSON shape (spec §4.I).
func ToJSON(r *engine.Report) ([]byte, error) {
	b, err := json.MarshalIndent(toJSONReport(r), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("reportio: encoding report: %w", err)
	}
	return b, nil
}

// ToText renders r as a line-oriented, human-readable summary (spec
// §4.I).
func ToText(r *engine.Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "decision ply=%d side=%s difficulty=%s\n", r.Ply, r.Side, r.Difficulty)
	fmt.Fprintf(&sb, "fen: %s\n", r.FEN)
	fmt.Fprintf(&sb, "legal moves: %d\n", len(r.LegalMoves))

	if r.Book.Tried {
		fmt.Fprintf(&sb, "book: found=%v move=%s used_as_priority=%v\n", r.Book.Found, r.Book.Move, r.Book.UsedAsPriority)
	} else {
		sb.WriteString("book: not consulted\n")
	}

	fmt.Fprintf(&sb, "search: positions=%d max_depth=%d elapsed_ms=%d nps=%.0f timeout=%v\n",
		r.SearchStats.PositionsEvaluated, r.SearchStats.MaxDepthReached,
		r.SearchStats.ElapsedMS, r.SearchStats.NodesPerSecond, r.SearchStats.Timeout)

	fmt.Fprintf(&sb, "top moves:\n")
	for _, e := range r.Top10Evaluations {
		fmt.Fprintf(&sb, "  %-6s %d\n", e.Move, e.TotalScore)
	}

	imperfectionKind := r.Imperfection.Kind
	if imperfectionKind == "" {
		imperfectionKind = "none"
	}
	fmt.Fprintf(&sb, "chosen: %s (score %d)\n", r.ChosenMove, r.ChosenScore)
	fmt.Fprintf(&sb, "imperfection: %s", imperfectionKind)
	if r.Imperfection.OriginalMove != "" {
		fmt.Fprintf(&sb, " (original %s)", r.Imperfection.OriginalMove)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "final move: %s\n", r.FinalMove)

	return sb.String()
}
