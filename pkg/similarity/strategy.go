package similarity

import (
	"fmt"
	"strings"

	"github.com/dd0wney/cluso-graphsim/pkg/graph"
)

// Strategy selects a whole-graph similarity score.
type Strategy int

const (
	StrategySphere Strategy = iota // SphereGraphSimilarity
	StrategyVEO                    // VEO
	StrategyFuzzy                  // FuzzyJaccard (always undirected)
)

// GraphFunc scores two graphs.
type GraphFunc func(g1, g2 *graph.Graph, d graph.Directedness) float64

// String returns the strategy's name as accepted by ParseStrategy.
func (s Strategy) String() string {
	switch s {
	case StrategySphere:
		return "sphere"
	case StrategyVEO:
		return "veo"
	case StrategyFuzzy:
		return "fuzzy"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// Func returns the scoring function of the strategy, nil for an unknown one.
func (s Strategy) Func() GraphFunc {
	switch s {
	case StrategySphere:
		return SphereGraphSimilarity
	case StrategyVEO:
		return VEO
	case StrategyFuzzy:
		return func(g1, g2 *graph.Graph, _ graph.Directedness) float64 {
			return FuzzyJaccard(g1, g2)
		}
	default:
		return nil
	}
}

// ParseStrategy maps a case-insensitive name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sphere":
		return StrategySphere, nil
	case "veo":
		return StrategyVEO, nil
	case "fuzzy", "fuzzyjaccard":
		return StrategyFuzzy, nil
	default:
		return 0, fmt.Errorf("unknown similarity strategy %q", name)
	}
}
