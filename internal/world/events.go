// Package world resolves the game's per-zone-unstable actor ids into
// stable identities and emits a stream of ordered game events.
package world

import "github.com/zonemeter/zonemeter/internal/schema"

// DynamicId is the per-zone-unstable id the game sends on the wire.
type DynamicId uint32

// StaticId is assigned once per distinct player name and stays stable for
// the process lifetime.
type StaticId uint32

// GameEventKind selects which branch of GameEvent is populated.
type GameEventKind int

const (
	EventMainPlayerAppeared GameEventKind = iota
	EventPlayerAppeared
	EventZoneChange
	EventDamageDone
	EventHealthReceived
	EventEnterCombat
	EventLeaveCombat
	EventUpdateFame
	EventUpdateItems
	EventUpdateParty
)

// Player identifies an actor by its stable id and durable name.
type Player struct {
	ID   StaticId
	Name string
}

// Damage carries a health-changing event's value and, when resolvable, the
// id of the other party involved.
type Damage struct {
	Source StaticId
	Target *StaticId
	Value  float32
}

type Fame struct {
	Source StaticId
	Value  float32
}

type ItemsUpdate struct {
	Source StaticId
	Value  schema.Items
}

type PartyUpdate struct {
	PlayerNames []string
}

// GameEvent is the closed sum emitted by World.Transform. Exactly one field
// matching Kind is meaningful.
type GameEvent struct {
	Kind GameEventKind

	Player Player
	Damage Damage
	Fame   Fame
	Items  ItemsUpdate
	Party  PartyUpdate
}
