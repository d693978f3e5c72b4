package world

import (
	"testing"

	"github.com/zonemeter/zonemeter/internal/schema"
)

func TestWorld_PlayerAppeared(t *testing.T) {
	w := NewWorld()
	events := w.Transform(schema.GameMessage{
		Kind: schema.KindNewCharacter,
		NewCharacter: schema.NewCharacter{
			Source:        100,
			CharacterName: "Villain",
		},
	})
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Kind != EventPlayerAppeared || events[0].Player.Name != "Villain" {
		t.Fatalf("events[0] = %+v", events[0])
	}
	if events[1].Kind != EventUpdateItems {
		t.Fatalf("events[1] = %+v", events[1])
	}
}

func TestWorld_MainPlayerAppearedEmitsZoneChangeOnce(t *testing.T) {
	w := NewWorld()
	events := w.Transform(schema.GameMessage{
		Kind: schema.KindJoin,
		Join: schema.Join{Source: 1, CharacterName: "Hero"},
	})
	if len(events) != 2 {
		t.Fatalf("got %d events, want [ZoneChange, MainPlayerAppeared], got %+v", len(events), events)
	}
	if events[0].Kind != EventZoneChange {
		t.Fatalf("events[0] = %+v, want ZoneChange", events[0])
	}
	if events[1].Kind != EventMainPlayerAppeared || events[1].Player.Name != "Hero" {
		t.Fatalf("events[1] = %+v", events[1])
	}

	// A second Join (re-entering a new zone) must not re-announce ZoneChange
	// via this path handled elsewhere; mainPlayer is now set so only the
	// appearance repeats.
	events = w.Transform(schema.GameMessage{
		Kind: schema.KindJoin,
		Join: schema.Join{Source: 2, CharacterName: "Hero"},
	})
	if len(events) != 1 || events[0].Kind != EventMainPlayerAppeared {
		t.Fatalf("second join events = %+v", events)
	}
}

func TestWorld_LeaveEmitsZoneChangeOnlyForMainPlayer(t *testing.T) {
	w := NewWorld()
	w.Transform(schema.GameMessage{Kind: schema.KindJoin, Join: schema.Join{Source: 1, CharacterName: "Hero"}})
	w.Transform(schema.GameMessage{Kind: schema.KindNewCharacter, NewCharacter: schema.NewCharacter{Source: 2, CharacterName: "Villain"}})

	events := w.Transform(schema.GameMessage{Kind: schema.KindLeave, Leave: schema.Leave{Source: 2}})
	if len(events) != 0 {
		t.Fatalf("non-main leave should emit nothing, got %+v", events)
	}

	events = w.Transform(schema.GameMessage{Kind: schema.KindLeave, Leave: schema.Leave{Source: 1}})
	if len(events) != 1 || events[0].Kind != EventZoneChange {
		t.Fatalf("main player leave = %+v, want [ZoneChange]", events)
	}
}

func TestWorld_DamageDoneResolvesBothSides(t *testing.T) {
	w := NewWorld()
	w.Transform(schema.GameMessage{Kind: schema.KindJoin, Join: schema.Join{Source: 1, CharacterName: "Hero"}})
	w.Transform(schema.GameMessage{Kind: schema.KindNewCharacter, NewCharacter: schema.NewCharacter{Source: 2, CharacterName: "Villain"}})

	events := w.Transform(schema.GameMessage{
		Kind: schema.KindHealthUpdate,
		HealthUpdate: schema.HealthUpdate{Source: 1, Target: 2, Value: -15},
	})
	if len(events) != 1 || events[0].Kind != EventDamageDone {
		t.Fatalf("events = %+v", events)
	}
	dmg := events[0].Damage
	if dmg.Value != 15 {
		t.Fatalf("damage value = %v, want 15", dmg.Value)
	}
	if dmg.Target == nil || *dmg.Target != StaticId(0) {
		t.Fatalf("damage target = %v, want resolved attacker", dmg.Target)
	}
}

func TestWorld_HealthUpdateDropsWhenTargetUnresolved(t *testing.T) {
	w := NewWorld()
	events := w.Transform(schema.GameMessage{
		Kind:         schema.KindHealthUpdate,
		HealthUpdate: schema.HealthUpdate{Source: 1, Target: 99, Value: -15},
	})
	if len(events) != 0 {
		t.Fatalf("events = %+v, want none", events)
	}
}

func TestWorld_CombatToggleViaRegeneration(t *testing.T) {
	w := NewWorld()
	w.Transform(schema.GameMessage{Kind: schema.KindJoin, Join: schema.Join{Source: 1, CharacterName: "Hero"}})

	events := w.Transform(schema.GameMessage{
		Kind: schema.KindRegenerationHealthChanged,
		RegenerationHealthChanged: schema.RegenerationHealthChanged{Source: 1},
	})
	if len(events) != 1 || events[0].Kind != EventEnterCombat {
		t.Fatalf("events = %+v, want EnterCombat", events)
	}

	rate := float32(1.0)
	events = w.Transform(schema.GameMessage{
		Kind: schema.KindRegenerationHealthChanged,
		RegenerationHealthChanged: schema.RegenerationHealthChanged{Source: 1, RegenerationRate: &rate},
	})
	if len(events) != 1 || events[0].Kind != EventLeaveCombat {
		t.Fatalf("events = %+v, want LeaveCombat", events)
	}
}

func TestWorld_KnockedDownLeavesCombat(t *testing.T) {
	w := NewWorld()
	w.Transform(schema.GameMessage{Kind: schema.KindJoin, Join: schema.Join{Source: 1, CharacterName: "Hero"}})

	events := w.Transform(schema.GameMessage{
		Kind:        schema.KindKnockedDown,
		KnockedDown: schema.KnockedDown{Source: 1, Target: 2, TargetName: "Villain"},
	})
	if len(events) != 1 || events[0].Kind != EventLeaveCombat {
		t.Fatalf("events = %+v", events)
	}
}

func TestWorld_UpdateFameDividesByTenThousand(t *testing.T) {
	w := NewWorld()
	w.Transform(schema.GameMessage{Kind: schema.KindJoin, Join: schema.Join{Source: 1, CharacterName: "Hero"}})

	events := w.Transform(schema.GameMessage{
		Kind:       schema.KindUpdateFame,
		UpdateFame: schema.UpdateFame{Source: 1, Fame: 50000},
	})
	if len(events) != 1 || events[0].Kind != EventUpdateFame {
		t.Fatalf("events = %+v", events)
	}
	if events[0].Fame.Value != 5.0 {
		t.Fatalf("fame value = %v, want 5.0", events[0].Fame.Value)
	}
}

func TestWorld_EquipmentChangeDefersUntilCharacterKnown(t *testing.T) {
	w := NewWorld()

	events := w.Transform(schema.GameMessage{
		Kind: schema.KindCharacterEquipmentChanged,
		CharacterEquipmentChanged: schema.CharacterEquipmentChanged{Source: 5},
	})
	if len(events) != 0 {
		t.Fatalf("equipment change for unknown character should defer, got %+v", events)
	}

	events = w.Transform(schema.GameMessage{
		Kind:         schema.KindNewCharacter,
		NewCharacter: schema.NewCharacter{Source: 5, CharacterName: "Villain"},
	})
	// PlayerAppeared + UpdateItems(from NewCharacter) + UpdateItems(drained equipment change)
	if len(events) != 3 {
		t.Fatalf("events = %+v, want 3 (appeared, items, drained items)", events)
	}
	if events[2].Kind != EventUpdateItems {
		t.Fatalf("events[2] = %+v, want drained UpdateItems", events[2])
	}
}

func TestWorld_PartyJoinedThenMainPlayerLeavesDisbandsParty(t *testing.T) {
	w := NewWorld()
	w.Transform(schema.GameMessage{Kind: schema.KindJoin, Join: schema.Join{Source: 1, CharacterName: "Hero"}})

	events := w.Transform(schema.GameMessage{
		Kind: schema.KindPartyJoined,
		PartyJoined: schema.PartyJoined{
			PartyID:         1,
			PartyStructures: [][]uint32{{1, 2}, {3, 4}},
			CharacterNames:  []string{"Hero", "Sidekick"},
		},
	})
	if len(events) != 1 || events[0].Kind != EventUpdateParty {
		t.Fatalf("events = %+v", events)
	}
	if len(events[0].Party.PlayerNames) != 2 {
		t.Fatalf("party names = %v, want 2", events[0].Party.PlayerNames)
	}

	events = w.Transform(schema.GameMessage{
		Kind: schema.KindPartyPlayerLeft,
		PartyPlayerLeft: schema.PartyPlayerLeft{
			PartyID:        1,
			PartyStructure: []uint32{1, 2},
		},
	})
	if len(events) != 1 || events[0].Kind != EventUpdateParty {
		t.Fatalf("events = %+v", events)
	}
	if len(events[0].Party.PlayerNames) != 0 {
		t.Fatalf("party should be disbanded, got %v", events[0].Party.PlayerNames)
	}
}

func TestWorld_PartyPlayerLeftRemovesOnlyThatMember(t *testing.T) {
	w := NewWorld()
	w.Transform(schema.GameMessage{Kind: schema.KindJoin, Join: schema.Join{Source: 1, CharacterName: "Hero"}})
	w.Transform(schema.GameMessage{
		Kind: schema.KindPartyJoined,
		PartyJoined: schema.PartyJoined{
			PartyID:         1,
			PartyStructures: [][]uint32{{1, 2}, {3, 4}},
			CharacterNames:  []string{"Hero", "Sidekick"},
		},
	})

	events := w.Transform(schema.GameMessage{
		Kind: schema.KindPartyPlayerLeft,
		PartyPlayerLeft: schema.PartyPlayerLeft{
			PartyID:        1,
			PartyStructure: []uint32{3, 4},
		},
	})
	if len(events) != 1 || events[0].Kind != EventUpdateParty {
		t.Fatalf("events = %+v", events)
	}
	if len(events[0].Party.PlayerNames) != 1 || events[0].Party.PlayerNames[0] != "Hero" {
		t.Fatalf("remaining party = %v, want [Hero]", events[0].Party.PlayerNames)
	}
}
