package world

import "github.com/zonemeter/zonemeter/internal/schema"

// partyItem is one member of the tracked party, keyed by the composite id
// derived from its party structure.
type partyItem struct {
	Name        string
	CompositeID uint32
}

// Party tracks the main player's current party roster from the sequence of
// PartyJoined/PartyPlayerJoined/PartyPlayerLeft/PartyDisbanded messages.
//
// Membership is tracked by a composite id (the sum of a member's party
// structure), not by name: the main player's own composite id is recorded
// whenever their entry is (re)established, and PlayerLeft compares against
// it directly to decide whether the party disbanded out from under the main
// player or merely lost another member.
type Party struct {
	mainPlayerName string
	mainComposite  *uint32
	items          []partyItem
}

func NewParty() *Party {
	return &Party{}
}

func compositeID(structure []uint32) uint32 {
	var sum uint32
	for _, v := range structure {
		sum += v
	}
	return sum
}

// SetMainPlayerName records the main player's character name so that future
// roster rebuilds can identify which entry is the main player's own.
func (p *Party) SetMainPlayerName(name string) {
	p.mainPlayerName = name
}

// Joined replaces the roster wholesale from a PartyJoined message.
func (p *Party) Joined(msg schema.PartyJoined) GameEvent {
	items := make([]partyItem, 0, len(msg.CharacterNames))
	n := len(msg.PartyStructures)
	if len(msg.CharacterNames) < n {
		n = len(msg.CharacterNames)
	}
	for i := 0; i < n; i++ {
		id := compositeID(msg.PartyStructures[i])
		items = append(items, partyItem{Name: msg.CharacterNames[i], CompositeID: id})
		if msg.CharacterNames[i] == p.mainPlayerName {
			c := id
			p.mainComposite = &c
		}
	}
	p.items = items
	return p.gameEvent()
}

// SinglePlayerJoined appends one member to the roster.
func (p *Party) SinglePlayerJoined(msg schema.PartyPlayerJoined) GameEvent {
	id := compositeID(msg.PartyStructure)
	p.items = append(p.items, partyItem{Name: msg.Name, CompositeID: id})
	if msg.Name == p.mainPlayerName {
		c := id
		p.mainComposite = &c
	}
	return p.gameEvent()
}

// PlayerLeft removes the member whose composite id matches msg's party
// structure. If that composite id is the main player's own, the whole
// party is considered disbanded. Returns ok=false (no event) if the party
// has no main player recorded yet.
func (p *Party) PlayerLeft(msg schema.PartyPlayerLeft) (GameEvent, bool) {
	if p.mainComposite == nil {
		return GameEvent{}, false
	}
	id := compositeID(msg.PartyStructure)
	if id == *p.mainComposite {
		return p.Disbanded(), true
	}
	for i, it := range p.items {
		if it.CompositeID == id {
			p.items = append(p.items[:i], p.items[i+1:]...)
			break
		}
	}
	return p.gameEvent(), true
}

// Disbanded clears the roster entirely.
func (p *Party) Disbanded() GameEvent {
	p.items = nil
	p.mainComposite = nil
	return p.gameEvent()
}

func (p *Party) gameEvent() GameEvent {
	names := make([]string, len(p.items))
	for i, it := range p.items {
		names[i] = it.Name
	}
	return GameEvent{Kind: EventUpdateParty, Party: PartyUpdate{PlayerNames: names}}
}
