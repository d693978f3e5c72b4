package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zonemeter/zonemeter/internal/photonmsg"
	"github.com/zonemeter/zonemeter/internal/photonvalue"
)

func mustItemTable(t *testing.T) *ItemTable {
	t.Helper()
	tbl, err := DefaultItemTable()
	require.NoError(t, err)
	return tbl
}

func TestBind_HealthUpdateEvent(t *testing.T) {
	b := NewBinder(mustItemTable(t))

	msg := photonmsg.Message{
		Kind: photonmsg.KindEvent,
		Event: photonvalue.EventData{
			Code: 1,
			Parameters: photonvalue.Parameters{
				gameEventCodeParam: photonvalue.ShortValue(6),
				0:                  photonvalue.IntegerValue(100),
				2:                  photonvalue.FloatValue(-12.5),
				6:                  photonvalue.IntegerValue(200),
			},
		},
	}

	gm, ok := b.Bind(msg)
	require.True(t, ok)
	assert.Equal(t, KindHealthUpdate, gm.Kind)
	assert.Equal(t, uint32(100), gm.HealthUpdate.Source)
	assert.Equal(t, uint32(200), gm.HealthUpdate.Target)
	assert.InDelta(t, -12.5, gm.HealthUpdate.Value, 0.001)
}

func TestBind_JoinResponse(t *testing.T) {
	b := NewBinder(mustItemTable(t))

	msg := photonmsg.Message{
		Kind: photonmsg.KindResponse,
		Response: photonvalue.OperationResponse{
			Code: 1,
			Parameters: photonvalue.Parameters{
				responseCodeParam: photonvalue.ShortValue(2),
				0:                 photonvalue.IntegerValue(7),
				2:                 photonvalue.StringValue("Hero"),
				11:                photonvalue.FloatValue(100),
				12:                photonvalue.FloatValue(100),
				15:                photonvalue.FloatValue(50),
				16:                photonvalue.FloatValue(50),
			},
		},
	}

	gm, ok := b.Bind(msg)
	require.True(t, ok)
	assert.Equal(t, KindJoin, gm.Kind)
	assert.Equal(t, "Hero", gm.Join.CharacterName)
}

func TestBind_MissingMandatoryFieldFails(t *testing.T) {
	b := NewBinder(mustItemTable(t))

	msg := photonmsg.Message{
		Kind: photonmsg.KindEvent,
		Event: photonvalue.EventData{
			Code: 1,
			Parameters: photonvalue.Parameters{
				gameEventCodeParam: photonvalue.ShortValue(6),
				0:                  photonvalue.IntegerValue(100),
				// target (6) and value (2) are missing.
			},
		},
	}

	_, ok := b.Bind(msg)
	assert.False(t, ok)
}

func TestBind_NewCharacterProjectsItems(t *testing.T) {
	b := NewBinder(mustItemTable(t))

	msg := photonmsg.Message{
		Kind: photonmsg.KindEvent,
		Event: photonvalue.EventData{
			Code: 1,
			Parameters: photonvalue.Parameters{
				gameEventCodeParam: photonvalue.ShortValue(25),
				0:                  photonvalue.IntegerValue(42),
				1:                  photonvalue.StringValue("Villain"),
				18:                 photonvalue.FloatValue(100),
				19:                 photonvalue.FloatValue(100),
				22:                 photonvalue.FloatValue(50),
				23:                 photonvalue.FloatValue(50),
				33: photonvalue.ArrayValue([]photonvalue.Value{
					photonvalue.IntegerValue(100),
					photonvalue.IntegerValue(0),
				}),
			},
		},
	}

	gm, ok := b.Bind(msg)
	require.True(t, ok)
	assert.Equal(t, KindNewCharacter, gm.Kind)
	require.NotNil(t, gm.NewCharacter.Items.Weapon)
	assert.Equal(t, "T2_MAIN_SWORD", *gm.NewCharacter.Items.Weapon)
	assert.Nil(t, gm.NewCharacter.Items.Offhand)
}

func TestBind_UnrecognisedOuterCodeYieldsNone(t *testing.T) {
	b := NewBinder(mustItemTable(t))

	msg := photonmsg.Message{
		Kind: photonmsg.KindEvent,
		Event: photonvalue.EventData{Code: 99, Parameters: photonvalue.Parameters{}},
	}
	_, ok := b.Bind(msg)
	assert.False(t, ok)
}
