package world

import "github.com/zonemeter/zonemeter/internal/schema"

// World resolves a stream of GameMessages into GameEvents, maintaining the
// dynamic-to-static id mapping and the main player's party roster across
// zone transitions.
type World struct {
	cache       *IdCache
	party       *Party
	mainPlayer  *StaticId
	unconsumed  map[DynamicId][]schema.GameMessage
}

func NewWorld() *World {
	return &World{
		cache:      NewIdCache(),
		party:      NewParty(),
		unconsumed: make(map[DynamicId][]schema.GameMessage),
	}
}

func (w *World) resolve(dynamicID uint32) (StaticId, bool) {
	return w.cache.StaticID(DynamicId(dynamicID))
}

// Transform advances world state by one GameMessage and returns the
// (possibly empty) sequence of GameEvents it produces.
func (w *World) Transform(msg schema.GameMessage) []GameEvent {
	switch msg.Kind {
	case schema.KindNewCharacter:
		return w.onNewCharacter(msg.NewCharacter)
	case schema.KindJoin:
		return w.onJoin(msg.Join)
	case schema.KindLeave:
		return w.onLeave(msg.Leave)
	case schema.KindHealthUpdate:
		return w.onHealthUpdate(msg.HealthUpdate)
	case schema.KindRegenerationHealthChanged:
		return w.onRegenerationHealthChanged(msg.RegenerationHealthChanged)
	case schema.KindKnockedDown:
		return w.onKnockedDown(msg.KnockedDown)
	case schema.KindUpdateFame:
		return w.onUpdateFame(msg.UpdateFame)
	case schema.KindCharacterEquipmentChanged:
		return w.onCharacterEquipmentChanged(msg.CharacterEquipmentChanged)
	case schema.KindPartyJoined:
		return []GameEvent{w.party.Joined(msg.PartyJoined)}
	case schema.KindPartyPlayerJoined:
		return []GameEvent{w.party.SinglePlayerJoined(msg.PartyPlayerJoined)}
	case schema.KindPartyPlayerLeft:
		if evt, ok := w.party.PlayerLeft(msg.PartyPlayerLeft); ok {
			return []GameEvent{evt}
		}
		return nil
	case schema.KindPartyDisbanded:
		return []GameEvent{w.party.Disbanded()}
	case schema.KindPartyAcknowledged:
		return nil
	default:
		return nil
	}
}

func (w *World) onNewCharacter(msg schema.NewCharacter) []GameEvent {
	dyn := DynamicId(msg.Source)
	w.cache.Save(dyn, msg.CharacterName)
	staticID, ok := w.resolve(msg.Source)
	if !ok {
		return nil
	}
	events := []GameEvent{
		{Kind: EventPlayerAppeared, Player: Player{ID: staticID, Name: msg.CharacterName}},
		{Kind: EventUpdateItems, Items: ItemsUpdate{Source: staticID, Value: msg.Items}},
	}
	events = append(events, w.drainUnconsumed(dyn)...)
	return events
}

func (w *World) onJoin(msg schema.Join) []GameEvent {
	dyn := DynamicId(msg.Source)
	w.cache.Save(dyn, msg.CharacterName)
	staticID, ok := w.resolve(msg.Source)
	if !ok {
		return nil
	}

	var events []GameEvent
	if w.mainPlayer == nil {
		events = append(events, GameEvent{Kind: EventZoneChange})
	}
	w.party.SetMainPlayerName(msg.CharacterName)
	events = append(events, GameEvent{Kind: EventMainPlayerAppeared, Player: Player{ID: staticID, Name: msg.CharacterName}})
	w.mainPlayer = &staticID
	events = append(events, w.drainUnconsumed(dyn)...)
	return events
}

func (w *World) onLeave(msg schema.Leave) []GameEvent {
	staticID, ok := w.resolve(msg.Source)
	if !ok {
		return nil
	}
	if w.mainPlayer != nil && *w.mainPlayer == staticID {
		return []GameEvent{{Kind: EventZoneChange}}
	}
	return nil
}

func (w *World) onHealthUpdate(msg schema.HealthUpdate) []GameEvent {
	targetID, ok := w.resolve(msg.Target)
	if !ok {
		return nil
	}
	var target *StaticId
	if sourceID, ok := w.resolve(msg.Source); ok {
		target = &sourceID
	}
	if msg.Value < 0 {
		return []GameEvent{{Kind: EventDamageDone, Damage: Damage{Source: targetID, Target: target, Value: -msg.Value}}}
	}
	return []GameEvent{{Kind: EventHealthReceived, Damage: Damage{Source: targetID, Target: target, Value: msg.Value}}}
}

func (w *World) onRegenerationHealthChanged(msg schema.RegenerationHealthChanged) []GameEvent {
	staticID, ok := w.resolve(msg.Source)
	if !ok {
		return nil
	}
	name, _ := w.cache.Name(staticID)
	player := Player{ID: staticID, Name: name}
	if msg.RegenerationRate != nil {
		return []GameEvent{{Kind: EventLeaveCombat, Player: player}}
	}
	return []GameEvent{{Kind: EventEnterCombat, Player: player}}
}

func (w *World) onKnockedDown(msg schema.KnockedDown) []GameEvent {
	staticID, ok := w.resolve(msg.Source)
	if !ok {
		return nil
	}
	name, _ := w.cache.Name(staticID)
	return []GameEvent{{Kind: EventLeaveCombat, Player: Player{ID: staticID, Name: name}}}
}

func (w *World) onUpdateFame(msg schema.UpdateFame) []GameEvent {
	staticID, ok := w.resolve(msg.Source)
	if !ok {
		return nil
	}
	return []GameEvent{{Kind: EventUpdateFame, Fame: Fame{Source: staticID, Value: float32(msg.Fame) / 10000.0}}}
}

func (w *World) onCharacterEquipmentChanged(msg schema.CharacterEquipmentChanged) []GameEvent {
	staticID, ok := w.resolve(msg.Source)
	if !ok {
		dyn := DynamicId(msg.Source)
		w.unconsumed[dyn] = append(w.unconsumed[dyn], schema.GameMessage{
			Kind:                      schema.KindCharacterEquipmentChanged,
			CharacterEquipmentChanged: msg,
		})
		return nil
	}
	return []GameEvent{{Kind: EventUpdateItems, Items: ItemsUpdate{Source: staticID, Value: msg.Items}}}
}

// drainUnconsumed replays messages that arrived for dyn before its owning
// NewCharacter/Join was seen, now that dyn resolves to a static id.
func (w *World) drainUnconsumed(dyn DynamicId) []GameEvent {
	pending := w.unconsumed[dyn]
	if len(pending) == 0 {
		return nil
	}
	delete(w.unconsumed, dyn)
	var events []GameEvent
	for _, m := range pending {
		events = append(events, w.Transform(m)...)
	}
	return events
}
