package engine

// Heuristic is one tagged entry in the evaluator's fixed heuristic set
// (spec §9: "tagged variant over a fixed set of heuristic kinds" rather
// than an object-oriented evaluator hierarchy per heuristic).
type Heuristic int

const (
	HeuristicMaterial Heuristic = iota
	HeuristicCenterControl
	HeuristicDevelopment
	HeuristicPawnStructure
	HeuristicKingSafety
)

var heuristicNames = [...]string{
	HeuristicMaterial:      "material",
	HeuristicCenterControl: "center_control",
	HeuristicDevelopment:   "development",
	HeuristicPawnStructure: "pawn_structure",
	HeuristicKingSafety:    "king_safety",
}

func (h Heuristic) String() string { return heuristicNames[h] }

// DifficultyProfile is a flat value type read directly by the engine, not
// a dynamic config object with runtime dispatch (spec §9).
type DifficultyProfile struct {
	Name string

	MinDepth int
	MaxDepth int
	MaxTimeMS int

	UseQuiescence    bool
	QuiescenceDepth  int
	UseKillers       bool
	UseHistory       bool
	UseNullMove      bool
	UseLMR           bool
	UseBook          bool

	Heuristics []Heuristic

	BlunderChance   float64
	MistakeChance   float64
	MistakePoolSize int

	ThinkingDelayMinMS int
	ThinkingDelayMaxMS int
}

var allHeuristics = []Heuristic{
	HeuristicMaterial, HeuristicCenterControl, HeuristicDevelopment,
	HeuristicPawnStructure, HeuristicKingSafety,
}

// Difficulty tiers fixed by spec §4.H's table.
var (
	Rookie = DifficultyProfile{
		Name: "Rookie",

		MinDepth: 2, MaxDepth: 4, MaxTimeMS: 2000,
		UseQuiescence: true, QuiescenceDepth: 4,
		UseKillers: false, UseHistory: false,
		UseNullMove: false, UseLMR: false,
		UseBook: false,

		Heuristics: allHeuristics,

		BlunderChance: 0.10, MistakeChance: 0.15, MistakePoolSize: 6,

		ThinkingDelayMinMS: 200, ThinkingDelayMaxMS: 600,
	}

	Casual = DifficultyProfile{
		Name: "Casual",

		MinDepth: 4, MaxDepth: 6, MaxTimeMS: 3500,
		UseQuiescence: true, QuiescenceDepth: 6,
		UseKillers: false, UseHistory: false,
		UseNullMove: false, UseLMR: false,
		UseBook: true,

		Heuristics: allHeuristics,

		BlunderChance: 0.03, MistakeChance: 0.08, MistakePoolSize: 4,

		ThinkingDelayMinMS: 300, ThinkingDelayMaxMS: 900,
	}

	Strategic = DifficultyProfile{
		Name: "Strategic",

		MinDepth: 6, MaxDepth: 8, MaxTimeMS: 5000,
		UseQuiescence: true, QuiescenceDepth: 8,
		UseKillers: true, UseHistory: true,
		UseNullMove: false, UseLMR: true,
		UseBook: true,

		Heuristics: allHeuristics,

		BlunderChance: 0.0, MistakeChance: 0.02, MistakePoolSize: 3,

		ThinkingDelayMinMS: 400, ThinkingDelayMaxMS: 1200,
	}

	Master = DifficultyProfile{
		Name: "Master",

		MinDepth: 8, MaxDepth: 10, MaxTimeMS: 8000,
		UseQuiescence: true, QuiescenceDepth: 10,
		UseKillers: true, UseHistory: true,
		UseNullMove: true, UseLMR: true,
		UseBook: true,

		Heuristics: allHeuristics,

		BlunderChance: 0.0, MistakeChance: 0.0, MistakePoolSize: 1,

		ThinkingDelayMinMS: 500, ThinkingDelayMaxMS: 1500,
	}
)

// ProfileByName looks up a tier by its display name; ok is false for an
// unrecognized name.
func ProfileByName(name string) (DifficultyProfile, bool) {
	switch name {
	case "Rookie":
		return Rookie, true
	case "Casual":
		return Casual, true
	case "Strategic":
		return Strategic, true
	case "Master":
		return Master, true
	default:
		return DifficultyProfile{}, false
	}
}

func (p DifficultyProfile) hasHeuristic(h Heuristic) bool {
	for _, x := range p.Heuristics {
		if x == h {
			return true
		}
	}
	return false
}
