package meter

import (
	"time"

	"github.com/zonemeter/zonemeter/internal/world"
)

// session is an insertion-ordered PlayerName -> player mapping.
type session struct {
	order   []string
	players map[string]*player
}

func newSession() *session {
	return &session{players: make(map[string]*player)}
}

func (s *session) addPlayer(id world.StaticId, name string, main bool, now time.Time) {
	if _, ok := s.players[name]; ok {
		return
	}
	s.players[name] = newPlayer(id, name, main, now)
	s.order = append(s.order, name)
}

func (s *session) byID(id world.StaticId) *player {
	for _, name := range s.order {
		if p := s.players[name]; p.id == id {
			return p
		}
	}
	return nil
}

func (s *session) has(id world.StaticId) bool {
	return s.byID(id) != nil
}

// byIDSafe is byID but tolerant of a nil session (the zone session doesn't
// exist until the first PlayerAppeared/MainPlayerAppeared event).
func (s *session) byIDSafe(id world.StaticId) *player {
	if s == nil {
		return nil
	}
	return s.byID(id)
}

// rollover produces a fresh session whose players preserve identity and
// combat state but reset accumulated stats, per §4.6/§3's rollover rule.
func (s *session) rollover(now time.Time) *session {
	out := newSession()
	for _, name := range s.order {
		out.players[name] = s.players[name].rollover(now)
		out.order = append(out.order, name)
	}
	return out
}

func (s *session) stats(now time.Time) []PlayerStatistics {
	out := make([]PlayerStatistics, 0, len(s.order))
	for _, name := range s.order {
		p := s.players[name]
		out = append(out, PlayerStatistics{
			Player:          p.name,
			Damage:          p.damageDealt,
			TimeInCombatMs:  p.timeInCombatMillis(now),
			Dps:             p.dps(now),
			SecondsInGame:   float32(p.timeInGame(now).Seconds()),
			Fame:            p.fame,
			FamePerMinute:   p.famePerMinute(now),
			FamePerHour:     p.famePerHour(now),
			Items:           p.items,
			Idle:            p.idle,
			MainPlayerStats: p.main,
		})
	}
	return out
}
