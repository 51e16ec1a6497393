package scoring

import "github.com/agentarena/agentarena/internal/core"

// Level thresholds. The server table is canonical; clients must not ship
// their own.
const (
	legendThreshold    = 5000
	architectThreshold = 2500
	creatorThreshold   = 1000
	builderThreshold   = 500
)

// LevelFor maps a total score to its display tier
func LevelFor(totalScore int) core.Level {
	switch {
	case totalScore >= legendThreshold:
		return core.LevelLegend
	case totalScore >= architectThreshold:
		return core.LevelArchitect
	case totalScore >= creatorThreshold:
		return core.LevelCreator
	case totalScore >= builderThreshold:
		return core.LevelBuilder
	default:
		return core.LevelApprentice
	}
}
