package schema

import (
	"github.com/zonemeter/zonemeter/internal/photonmsg"
	"github.com/zonemeter/zonemeter/internal/photonvalue"
)

// gameEventCodeParam and responseCodeParam are the well-known parameter
// indices carrying the dispatch code: an Event{code=1}'s actual game-event
// code lives in parameter 252, a Response{code=1}'s in parameter 253.
const (
	gameEventCodeParam = 252
	responseCodeParam  = 253
)

const outerCode = 1

// Binder dispatches protocol-layer Messages to GameMessages via the schema
// table, projecting item arrays through an ItemTable.
type Binder struct {
	items *ItemTable
}

func NewBinder(items *ItemTable) *Binder {
	return &Binder{items: items}
}

// Bind returns the GameMessage produced by msg, or ok=false if msg doesn't
// carry a recognised dispatch code or its mandatory fields don't decode.
func (b *Binder) Bind(msg photonmsg.Message) (GameMessage, bool) {
	switch msg.Kind {
	case photonmsg.KindEvent:
		if msg.Event.Code != outerCode {
			return GameMessage{}, false
		}
		return b.bindByCode(msg.Event.Parameters, gameEventCodeParam, eventSchema)
	case photonmsg.KindResponse:
		if msg.Response.Code != outerCode {
			return GameMessage{}, false
		}
		return b.bindByCode(msg.Response.Parameters, responseCodeParam, responseSchema)
	case photonmsg.KindRequest:
		// Request{code=1} parameter 253 currently has no recognised codes.
		return GameMessage{}, false
	default:
		return GameMessage{}, false
	}
}

func (b *Binder) bindByCode(params photonvalue.Parameters, dispatchParam uint8, table map[int16]MessageSpec) (GameMessage, bool) {
	codeValue, found := params[dispatchParam]
	if !found {
		return GameMessage{}, false
	}
	code, ok := codeValue.AsShort()
	if !ok {
		return GameMessage{}, false
	}
	spec, found := table[code]
	if !found {
		return GameMessage{}, false
	}
	fields, ok := decodeFields(params, spec)
	if !ok {
		return GameMessage{}, false
	}
	return b.build(spec.Name, fields)
}

func (b *Binder) build(name string, f map[string]fieldValue) (GameMessage, bool) {
	switch name {
	case "Leave":
		return GameMessage{Kind: KindLeave, Leave: Leave{Source: f["source"].Number}}, true
	case "Join":
		return GameMessage{Kind: KindJoin, Join: Join{
			Source:        f["source"].Number,
			CharacterName: f["character_name"].Str,
			Health:        f["health"].Float,
			MaxHealth:     f["max_health"].Float,
			Energy:        f["energy"].Float,
			MaxEnergy:     f["max_energy"].Float,
		}}, true
	case "NewCharacter":
		return GameMessage{Kind: KindNewCharacter, NewCharacter: NewCharacter{
			Source:        f["source"].Number,
			CharacterName: f["character_name"].Str,
			Health:        f["health"].Float,
			MaxHealth:     f["max_health"].Float,
			Energy:        f["energy"].Float,
			MaxEnergy:     f["max_energy"].Float,
			Items:         b.projectItems(f["items"].NumList),
		}}, true
	case "HealthUpdate":
		return GameMessage{Kind: KindHealthUpdate, HealthUpdate: HealthUpdate{
			Source: f["source"].Number,
			Target: f["target"].Number,
			Value:  f["value"].Float,
		}}, true
	case "RegenerationHealthChanged":
		v := RegenerationHealthChanged{
			Source:    f["source"].Number,
			Health:    f["health"].Float,
			MaxHealth: f["max_health"].Float,
		}
		if fv, ok := f["regeneration_rate"]; ok {
			rate := fv.Float
			v.RegenerationRate = &rate
		}
		return GameMessage{Kind: KindRegenerationHealthChanged, RegenerationHealthChanged: v}, true
	case "KnockedDown":
		return GameMessage{Kind: KindKnockedDown, KnockedDown: KnockedDown{
			Source:     f["source"].Number,
			Target:     f["target"].Number,
			TargetName: f["target_name"].Str,
		}}, true
	case "UpdateFame":
		return GameMessage{Kind: KindUpdateFame, UpdateFame: UpdateFame{
			Source: f["source"].Number,
			Fame:   f["fame"].Number,
		}}, true
	case "CharacterEquipmentChanged":
		return GameMessage{Kind: KindCharacterEquipmentChanged, CharacterEquipmentChanged: CharacterEquipmentChanged{
			Source: f["source"].Number,
			Items:  b.projectItems(f["items"].NumList),
		}}, true
	case "PartyJoined":
		return GameMessage{Kind: KindPartyJoined, PartyJoined: PartyJoined{
			PartyID:         f["party_id"].Number,
			PartyStructures: f["party_structures"].NumListList,
			CharacterNames:  f["character_names"].StrList,
		}}, true
	case "PartyPlayerJoined":
		return GameMessage{Kind: KindPartyPlayerJoined, PartyPlayerJoined: PartyPlayerJoined{
			PartyID:        f["party_id"].Number,
			PartyStructure: f["party_structure"].NumList,
			Name:           f["name"].Str,
		}}, true
	case "PartyPlayerLeft":
		return GameMessage{Kind: KindPartyPlayerLeft, PartyPlayerLeft: PartyPlayerLeft{
			PartyID:        f["party_id"].Number,
			PartyStructure: f["party_structure"].NumList,
		}}, true
	case "PartyDisbanded":
		return GameMessage{Kind: KindPartyDisbanded}, true
	default:
		// Fieldless, acknowledged-but-inert party variants.
		return GameMessage{Kind: KindPartyAcknowledged}, true
	}
}

// projectItems maps a fixed-order array of item wire ids (length up to 10;
// short arrays leave trailing slots absent) through the item table, zeros
// and unknown ids becoming absent slots.
func (b *Binder) projectItems(ids []uint32) Items {
	var items Items
	slots := items.slots()
	for i := 0; i < itemSlotCount && i < len(ids); i++ {
		if b.items == nil {
			continue
		}
		if name, ok := b.items.Name(ids[i]); ok {
			n := name
			*slots[i] = &n
		}
	}
	return items
}
