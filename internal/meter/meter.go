// Package meter turns a stream of world.GameEvents into per-zone,
// per-last-fight and overall player statistics.
package meter

import (
	"time"

	"github.com/zonemeter/zonemeter/internal/schema"
	"github.com/zonemeter/zonemeter/internal/world"
)

// Meter is the statistics engine: it owns three projections of the same
// per-player accumulators (zone, last-fight, overall) and applies one
// GameEvent at a time. It is not safe for concurrent use; callers that
// need concurrent stats queries should guard it with their own mutex (see
// internal/pipeline).
type Meter struct {
	clock Clock

	zoneHistory      []PlayerStatistics
	zoneSession      *session
	lastFightSession *session
	mainPlayerID     *world.StaticId
	unconsumedItems  map[world.StaticId]schema.Items
}

func New(clock Clock) *Meter {
	return &Meter{
		clock:            clock,
		lastFightSession: newSession(),
		unconsumedItems:  make(map[world.StaticId]schema.Items),
	}
}

// Apply advances meter state by one event.
func (m *Meter) Apply(evt world.GameEvent) {
	switch evt.Kind {
	case world.EventPlayerAppeared:
		m.onPlayerAppeared(evt.Player, false)
	case world.EventMainPlayerAppeared:
		m.onPlayerAppeared(evt.Player, true)
	case world.EventZoneChange:
		m.onZoneChange()
	case world.EventDamageDone:
		m.onDamage(evt.Damage)
	case world.EventHealthReceived:
		// Healing isn't tracked as a stat primitive in this model; the
		// event still flows through for subscribers, but the meter has no
		// healing accumulator to update.
	case world.EventEnterCombat:
		m.onEnterCombat(evt.Player)
	case world.EventLeaveCombat:
		m.onLeaveCombat(evt.Player)
	case world.EventUpdateFame:
		m.onUpdateFame(evt.Fame)
	case world.EventUpdateItems:
		m.onUpdateItems(evt.Items)
	case world.EventUpdateParty:
		// Party rosters aren't part of the per-player stats model.
	}
}

func (m *Meter) onPlayerAppeared(p world.Player, main bool) {
	now := m.clock.Now()
	if m.zoneSession == nil {
		m.startNewZoneSession(now)
	}
	if main {
		m.mainPlayerID = &p.ID
	}
	if !m.zoneSession.has(p.ID) {
		m.zoneSession.addPlayer(p.ID, p.Name, main, now)
		m.lastFightSession.addPlayer(p.ID, p.Name, main, now)
	}
	if items, ok := m.unconsumedItems[p.ID]; ok {
		m.applyItems(p.ID, items)
		delete(m.unconsumedItems, p.ID)
	}
}

func (m *Meter) onZoneChange() {
	m.startNewZoneSession(m.clock.Now())
}

func (m *Meter) startNewZoneSession(now time.Time) {
	if m.zoneSession != nil {
		m.zoneHistory = mergeStatistics(m.zoneHistory, m.zoneSession.stats(now))
	}
	m.zoneSession = newSession()
	m.lastFightSession = newSession()
}

func (m *Meter) onDamage(d world.Damage) {
	if zp := m.zoneSession.byIDSafe(d.Source); zp != nil {
		zp.registerDamage(d.Value)
	}
	if lp := m.lastFightSession.byIDSafe(d.Source); lp != nil {
		lp.registerDamage(d.Value)
	}
}

func (m *Meter) onEnterCombat(p world.Player) {
	now := m.clock.Now()
	if m.combatState() == OutOfCombat {
		m.lastFightSession = m.lastFightSession.rollover(now)
	}
	if zp := m.zoneSession.byIDSafe(p.ID); zp != nil {
		zp.enterCombat(now)
	}
	if lp := m.lastFightSession.byIDSafe(p.ID); lp != nil {
		lp.enterCombat(now)
	}
}

func (m *Meter) onLeaveCombat(p world.Player) {
	now := m.clock.Now()
	if zp := m.zoneSession.byIDSafe(p.ID); zp != nil {
		zp.leaveCombat(now)
	}
	if lp := m.lastFightSession.byIDSafe(p.ID); lp != nil {
		lp.leaveCombat(now)
	}
}

func (m *Meter) onUpdateFame(f world.Fame) {
	if zp := m.zoneSession.byIDSafe(f.Source); zp != nil {
		zp.registerFame(f.Value)
	}
	if lp := m.lastFightSession.byIDSafe(f.Source); lp != nil {
		lp.registerFame(f.Value)
	}
}

func (m *Meter) onUpdateItems(i world.ItemsUpdate) {
	m.applyItems(i.Source, i.Value)
}

func (m *Meter) applyItems(id world.StaticId, items schema.Items) {
	applied := false
	if zp := m.zoneSession.byIDSafe(id); zp != nil {
		zp.updateItems(items)
		applied = true
	}
	if lp := m.lastFightSession.byIDSafe(id); lp != nil {
		lp.updateItems(items)
		applied = true
	}
	if !applied {
		m.unconsumedItems[id] = items
	}
}

// combatState reports whether any player in the last-fight session is
// currently in combat.
func (m *Meter) combatState() CombatState {
	if m.lastFightSession == nil {
		return OutOfCombat
	}
	for _, name := range m.lastFightSession.order {
		if m.lastFightSession.players[name].combatState == InCombat {
			return InCombat
		}
	}
	return OutOfCombat
}

// Stats returns a snapshot for the requested scope, filtering out idle
// players with zero fame (the main player is always included).
func (m *Meter) Stats(scope Scope) []PlayerStatistics {
	now := m.clock.Now()
	var raw []PlayerStatistics
	switch scope {
	case LastFight:
		raw = m.lastFightSession.stats(now)
	case Zone:
		if m.zoneSession != nil {
			raw = m.zoneSession.stats(now)
		}
	case Overall:
		var zoneStats []PlayerStatistics
		if m.zoneSession != nil {
			zoneStats = m.zoneSession.stats(now)
		}
		raw = mergeStatistics(m.zoneHistory, zoneStats)
	}

	out := make([]PlayerStatistics, 0, len(raw))
	for _, s := range raw {
		if s.Idle && s.Fame == 0 && !s.MainPlayerStats {
			continue
		}
		out = append(out, s)
	}
	return out
}

// ResetLastFight rolls the last-fight session over in place.
func (m *Meter) ResetLastFight() {
	m.lastFightSession = m.lastFightSession.rollover(m.clock.Now())
}

// ResetZone rolls the zone session over in place, if one exists.
func (m *Meter) ResetZone() {
	if m.zoneSession == nil {
		return
	}
	m.zoneSession = m.zoneSession.rollover(m.clock.Now())
}

// ResetOverall clears accumulated zone history and rolls both live
// sessions over.
func (m *Meter) ResetOverall() {
	m.zoneHistory = nil
	now := m.clock.Now()
	if m.zoneSession != nil {
		m.zoneSession = m.zoneSession.rollover(now)
	}
	m.lastFightSession = m.lastFightSession.rollover(now)
}
