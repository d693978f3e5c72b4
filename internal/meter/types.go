package meter

import "github.com/zonemeter/zonemeter/internal/schema"

// Scope selects which of the meter's three session projections a stats
// query or reset applies to.
type Scope int

const (
	LastFight Scope = iota
	Zone
	Overall
)

// PlayerStatistics is one row of a stats snapshot; derived fields (Dps,
// FamePerMinute, FamePerHour) are always recomputed from the primitives,
// never stored independently across a merge.
type PlayerStatistics struct {
	Player          string
	Damage          float32
	TimeInCombatMs  float32
	Dps             float32
	SecondsInGame   float32
	Fame            float32
	FamePerMinute   uint32
	FamePerHour     uint32
	Items           schema.Items
	Idle            bool
	MainPlayerStats bool
}

func dpsOf(damage, timeInCombatMs float32) float32 {
	if timeInCombatMs == 0 {
		return 0
	}
	return damage / timeInCombatMs * 1000
}

func famePerMinuteOf(fame, secondsInGame float32) uint32 {
	minutes := secondsInGame / 60
	if minutes <= 0 {
		return 0
	}
	return uint32(fame / minutes)
}

func famePerHourOf(fame, secondsInGame float32) uint32 {
	hours := secondsInGame / 3600
	if hours <= 0 {
		return 0
	}
	return uint32(fame / hours)
}

// mergeStatistics combines two stats sets by player name, summing the raw
// accumulators and recomputing every derived field. The most recently
// observed MainPlayerStats flag wins, matching b's entries overriding a's
// on conflict.
func mergeStatistics(a, b []PlayerStatistics) []PlayerStatistics {
	byName := make(map[string]PlayerStatistics, len(a)+len(b))
	order := make([]string, 0, len(a)+len(b))
	apply := func(s PlayerStatistics) {
		existing, ok := byName[s.Player]
		if !ok {
			byName[s.Player] = s
			order = append(order, s.Player)
			return
		}
		existing.Damage += s.Damage
		existing.TimeInCombatMs += s.TimeInCombatMs
		existing.SecondsInGame += s.SecondsInGame
		existing.Fame += s.Fame
		existing.Dps = dpsOf(existing.Damage, existing.TimeInCombatMs)
		existing.FamePerMinute = famePerMinuteOf(existing.Fame, existing.SecondsInGame)
		existing.FamePerHour = famePerHourOf(existing.Fame, existing.SecondsInGame)
		existing.MainPlayerStats = s.MainPlayerStats
		existing.Items = s.Items
		existing.Idle = s.Idle
		byName[s.Player] = existing
	}
	for _, s := range a {
		apply(s)
	}
	for _, s := range b {
		apply(s)
	}
	out := make([]PlayerStatistics, 0, len(order))
	for _, name := range order {
		out = append(out, byName[name])
	}
	return out
}
