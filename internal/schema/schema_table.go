package schema

// FieldKind selects how a schema field's raw Value is widened.
type FieldKind int

const (
	FieldNumber FieldKind = iota
	FieldFloat
	FieldString
	FieldStringList
	FieldNumberList
	FieldNumberListList
	FieldItems
)

// FieldSpec names one field of a message: which parameter index carries it,
// how to widen the decoded Value, and whether its absence is tolerated.
type FieldSpec struct {
	Name       string
	ParamIndex uint8
	Kind       FieldKind
	Optional   bool
}

// MessageSpec is one schema table entry: the game message's human name plus
// its field list. This is the static dispatch structure the binder walks —
// a data table, not code; nothing here is mutated after package init.
type MessageSpec struct {
	Name   string
	Fields []FieldSpec
}

// eventSchema keys the table by the event code carried in parameter 252 of
// an Event{code=1} message (parameter indices recovered from the original
// implementation's generated message parsers — see DESIGN.md for
// provenance).
var eventSchema = map[int16]MessageSpec{
	1: {Name: "Leave", Fields: []FieldSpec{
		{Name: "source", ParamIndex: 0, Kind: FieldNumber},
	}},
	6: {Name: "HealthUpdate", Fields: []FieldSpec{
		{Name: "source", ParamIndex: 0, Kind: FieldNumber},
		{Name: "value", ParamIndex: 2, Kind: FieldFloat},
		{Name: "target", ParamIndex: 6, Kind: FieldNumber},
	}},
	81: {Name: "RegenerationHealthChanged", Fields: []FieldSpec{
		{Name: "source", ParamIndex: 0, Kind: FieldNumber},
		{Name: "health", ParamIndex: 2, Kind: FieldFloat},
		{Name: "max_health", ParamIndex: 3, Kind: FieldFloat},
		{Name: "regeneration_rate", ParamIndex: 4, Kind: FieldFloat, Optional: true},
	}},
	154: {Name: "KnockedDown", Fields: []FieldSpec{
		{Name: "source", ParamIndex: 0, Kind: FieldNumber},
		{Name: "target", ParamIndex: 3, Kind: FieldNumber},
		{Name: "target_name", ParamIndex: 4, Kind: FieldString},
	}},
	25: {Name: "NewCharacter", Fields: []FieldSpec{
		{Name: "source", ParamIndex: 0, Kind: FieldNumber},
		{Name: "character_name", ParamIndex: 1, Kind: FieldString},
		{Name: "health", ParamIndex: 18, Kind: FieldFloat},
		{Name: "max_health", ParamIndex: 19, Kind: FieldFloat},
		{Name: "energy", ParamIndex: 22, Kind: FieldFloat},
		{Name: "max_energy", ParamIndex: 23, Kind: FieldFloat},
		{Name: "items", ParamIndex: 33, Kind: FieldItems},
	}},
	72: {Name: "UpdateFame", Fields: []FieldSpec{
		{Name: "source", ParamIndex: 0, Kind: FieldNumber},
		{Name: "fame", ParamIndex: 2, Kind: FieldNumber},
	}},
	80: {Name: "CharacterEquipmentChanged", Fields: []FieldSpec{
		{Name: "source", ParamIndex: 0, Kind: FieldNumber},
		{Name: "items", ParamIndex: 2, Kind: FieldItems},
	}},
	213: {Name: "PartyJoined", Fields: []FieldSpec{
		{Name: "party_id", ParamIndex: 0, Kind: FieldNumber},
		{Name: "party_structures", ParamIndex: 4, Kind: FieldNumberListList},
		{Name: "character_names", ParamIndex: 5, Kind: FieldStringList},
	}},
	215: {Name: "PartyPlayerJoined", Fields: []FieldSpec{
		{Name: "party_id", ParamIndex: 0, Kind: FieldNumber},
		{Name: "party_structure", ParamIndex: 1, Kind: FieldNumberList},
		{Name: "name", ParamIndex: 2, Kind: FieldString},
	}},
	217: {Name: "PartyPlayerLeft", Fields: []FieldSpec{
		{Name: "party_id", ParamIndex: 0, Kind: FieldNumber},
		{Name: "party_structure", ParamIndex: 1, Kind: FieldNumberList},
	}},
	// Acknowledged-but-fieldless party variants.
	212: {Name: "PartyInvitation"},
	214: {Name: "PartyDisbanded"},
	216: {Name: "PartyChangedOrder"},
	218: {Name: "PartyLeaderChanged"},
	219: {Name: "PartyLootSettingChangedPlayer"},
	220: {Name: "PartySilverGained"},
	221: {Name: "PartyPlayerUpdated"},
	222: {Name: "PartyInvitationPlayerBusy"},
	223: {Name: "PartyMarkedObjectsUpdated"},
	224: {Name: "PartyOnClusterPartyJoined"},
	225: {Name: "PartySetRoleFlag"},
}

// responseSchema keys the table by the response code carried in parameter
// 253 of a Response{code=1}. In the observed schema this exclusively
// yields Join (the main player's own entry to the zone).
var responseSchema = map[int16]MessageSpec{
	2: {Name: "Join", Fields: []FieldSpec{
		{Name: "source", ParamIndex: 0, Kind: FieldNumber},
		{Name: "character_name", ParamIndex: 2, Kind: FieldString},
		{Name: "health", ParamIndex: 11, Kind: FieldFloat},
		{Name: "max_health", ParamIndex: 12, Kind: FieldFloat},
		{Name: "energy", ParamIndex: 15, Kind: FieldFloat},
		{Name: "max_energy", ParamIndex: 16, Kind: FieldFloat},
	}},
}
