package achievements

import (
	"github.com/agentarena/agentarena/internal/core"
)

// Evaluate scans the catalog against a stats snapshot and returns, in
// catalog order, every entry that is newly satisfied and not in the
// already-unlocked set. The caller persists the unlocks; a UNIQUE
// constraint on (agent, achievement) at the storage layer makes concurrent
// duplicate unlocks degrade to rejected inserts rather than double-awards.
//
// Running Evaluate twice with the same snapshot and the same unlocked set
// yields nothing the second time, provided the first run's results were
// added to the set.
func Evaluate(snap Snapshot, alreadyUnlocked map[string]bool) []core.Achievement {
	var newly []core.Achievement
	for _, rule := range catalog {
		if alreadyUnlocked[rule.ID] {
			continue
		}
		if rule.Unlocked(snap) {
			newly = append(newly, rule.Achievement)
		}
	}
	return newly
}
