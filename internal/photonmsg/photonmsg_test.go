package photonmsg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Event(t *testing.T) {
	// discard byte, msg_type=4 (Event), event code 6, 1 parameter.
	payload := []byte{
		0x00, 0x04,
		0x06,
		0x00, 0x01,
		0x00, 0x62, 0x05,
	}
	msg, err := Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, KindEvent, msg.Kind)
	assert.Equal(t, byte(6), msg.Event.Code)

	b, ok := msg.Event.Parameters[0].AsByte()
	require.True(t, ok)
	assert.Equal(t, byte(5), b)
}

func TestDecode_Response(t *testing.T) {
	// discard byte, msg_type=3 (Response), code=2, return_code=0, debug=Null, 0 params.
	payload := []byte{
		0x00, 0x03,
		0x02,
		0x00, 0x00,
		0x2a,
		0x00, 0x00,
	}
	msg, err := Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, KindResponse, msg.Kind)
	assert.Equal(t, byte(2), msg.Response.Code)
	assert.Equal(t, int16(0), msg.Response.ReturnCode)
}

func TestDecode_UnknownMessageType(t *testing.T) {
	payload := []byte{0x00, 0x99}
	_, err := Decode(payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown message")
}
