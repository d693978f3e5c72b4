// Package schema binds a protocol-layer message's parameters to a typed
// GameMessage through a data-driven schema table, and projects item-code
// arrays through the item-id table.
package schema

// Kind selects which branch of GameMessage is populated.
type Kind int

const (
	KindLeave Kind = iota
	KindJoin
	KindNewCharacter
	KindHealthUpdate
	KindRegenerationHealthChanged
	KindKnockedDown
	KindUpdateFame
	KindCharacterEquipmentChanged
	KindPartyJoined
	KindPartyPlayerJoined
	KindPartyPlayerLeft
	KindPartyDisbanded
	// KindPartyAcknowledged covers the Party-* variants that carry no
	// fields and produce no world events: PartyInvitation,
	// PartyChangedOrder, PartyLeaderChanged,
	// PartyLootSettingChangedPlayer, PartySilverGained,
	// PartyPlayerUpdated, PartyInvitationPlayerBusy,
	// PartyMarkedObjectsUpdated, PartyOnClusterPartyJoined,
	// PartySetRoleFlag.
	KindPartyAcknowledged
)

// Items is the fixed ten-slot equipment record. Each slot is the item's
// code-name, or absent if the corresponding wire id was zero or unknown to
// the item table.
type Items struct {
	Weapon  *string
	Offhand *string
	Helmet  *string
	Armor   *string
	Boots   *string
	Bag     *string
	Cape    *string
	Mount   *string
	Potion  *string
	Food    *string
}

const itemSlotCount = 10

// slots returns pointers into an Items value in fixed wire order, so
// projectItems can fill them by index in one pass.
func (it *Items) slots() [itemSlotCount]**string {
	return [itemSlotCount]**string{
		&it.Weapon, &it.Offhand, &it.Helmet, &it.Armor, &it.Boots,
		&it.Bag, &it.Cape, &it.Mount, &it.Potion, &it.Food,
	}
}

type Leave struct {
	Source uint32
}

type Join struct {
	Source        uint32
	CharacterName string
	Health        float32
	MaxHealth     float32
	Energy        float32
	MaxEnergy     float32
}

type NewCharacter struct {
	Source        uint32
	CharacterName string
	Health        float32
	MaxHealth     float32
	Energy        float32
	MaxEnergy     float32
	Items         Items
}

type HealthUpdate struct {
	Source uint32
	Target uint32
	Value  float32
}

type RegenerationHealthChanged struct {
	Source            uint32
	Health            float32
	MaxHealth         float32
	RegenerationRate  *float32
}

type KnockedDown struct {
	Source     uint32
	Target     uint32
	TargetName string
}

type UpdateFame struct {
	Source uint32
	Fame   uint32
}

type CharacterEquipmentChanged struct {
	Source uint32
	Items  Items
}

type PartyJoined struct {
	PartyID         uint32
	PartyStructures [][]uint32
	CharacterNames  []string
}

type PartyPlayerJoined struct {
	PartyID        uint32
	PartyStructure []uint32
	Name           string
}

type PartyPlayerLeft struct {
	PartyID        uint32
	PartyStructure []uint32
}

// GameMessage is the closed set of strongly-typed messages the binder
// produces. Exactly one field matching Kind is meaningful.
type GameMessage struct {
	Kind Kind

	Leave                     Leave
	Join                      Join
	NewCharacter              NewCharacter
	HealthUpdate              HealthUpdate
	RegenerationHealthChanged RegenerationHealthChanged
	KnockedDown               KnockedDown
	UpdateFame                UpdateFame
	CharacterEquipmentChanged CharacterEquipmentChanged
	PartyJoined               PartyJoined
	PartyPlayerJoined         PartyPlayerJoined
	PartyPlayerLeft           PartyPlayerLeft
}
