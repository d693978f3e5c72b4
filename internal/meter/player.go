package meter

import (
	"time"

	"github.com/zonemeter/zonemeter/internal/schema"
	"github.com/zonemeter/zonemeter/internal/world"
)

// CombatState is whether a player is currently taking or dealing damage.
type CombatState int

const (
	OutOfCombat CombatState = iota
	InCombat
)

// player is the meter's own per-session record for one player. A given
// player name has one independent copy per session (zone, last-fight) so
// that rolling one session over never disturbs the other.
type player struct {
	id          world.StaticId
	name        string
	main        bool
	damageDealt float32
	combatState CombatState
	enteredAt   *time.Time
	timeInCombat time.Duration
	timeStarted time.Time
	fame        float32
	items       schema.Items
	idle        bool
}

func newPlayer(id world.StaticId, name string, main bool, now time.Time) *player {
	return &player{
		id:          id,
		name:        name,
		main:        main,
		combatState: OutOfCombat,
		timeStarted: now,
		idle:        true,
	}
}

// registerDamage ignores damage dealt while the player is out of combat.
func (p *player) registerDamage(value float32) {
	if p.combatState == OutOfCombat {
		return
	}
	p.idle = false
	p.damageDealt += value
}

func (p *player) enterCombat(now time.Time) {
	p.idle = false
	t := now
	p.enteredAt = &t
	p.combatState = InCombat
}

func (p *player) leaveCombat(now time.Time) {
	if p.enteredAt != nil {
		p.timeInCombat += now.Sub(*p.enteredAt)
	}
	p.enteredAt = nil
	p.combatState = OutOfCombat
}

func (p *player) registerFame(value float32) {
	p.fame += value
	p.idle = false
}

func (p *player) updateItems(items schema.Items) {
	p.items = items
	p.idle = false
}

func (p *player) timeInCombatMillis(now time.Time) float32 {
	d := p.timeInCombat
	if p.combatState == InCombat && p.enteredAt != nil {
		d += now.Sub(*p.enteredAt)
	}
	return float32(d.Milliseconds())
}

func (p *player) dps(now time.Time) float32 {
	ms := p.timeInCombatMillis(now)
	if ms == 0 {
		return 0
	}
	return p.damageDealt / ms * 1000
}

func (p *player) timeInGame(now time.Time) time.Duration {
	return now.Sub(p.timeStarted)
}

func (p *player) famePerMinute(now time.Time) uint32 {
	minutes := p.timeInGame(now).Seconds() / 60
	if minutes <= 0 {
		return 0
	}
	return uint32(p.fame / float32(minutes))
}

func (p *player) famePerHour(now time.Time) uint32 {
	hours := p.timeInGame(now).Seconds() / 3600
	if hours <= 0 {
		return 0
	}
	return uint32(p.fame / float32(hours))
}

// rollover produces a fresh copy preserving identity, items and start time
// but resetting accumulated stats. A player who was in combat stays in
// combat, with combat freshly entered as of now — see §4.6 ZoneChange/
// reset semantics.
func (p *player) rollover(now time.Time) *player {
	np := &player{
		id:          p.id,
		name:        p.name,
		main:        p.main,
		combatState: p.combatState,
		timeStarted: p.timeStarted,
		items:       p.items,
		idle:        true,
	}
	if p.combatState == InCombat {
		t := now
		np.enteredAt = &t
	}
	return np
}
