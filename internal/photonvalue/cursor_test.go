package photonvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTypedValue_Short(t *testing.T) {
	// tag 0x6b (Short) followed by big-endian 1234.
	buf := []byte{0x6b, 0x04, 0xd2}
	c := NewCursor(buf)

	v, err := DecodeTypedValue(c)
	require.NoError(t, err)
	assert.Equal(t, KindShort, v.Kind)

	got, ok := v.AsShort()
	require.True(t, ok)
	assert.Equal(t, int16(1234), got)
	assert.Equal(t, 0, c.Len())
}

func TestDecodeTypedValue_String(t *testing.T) {
	buf := []byte{0x73, 0x00, 0x03, 'f', 'o', 'o'}
	c := NewCursor(buf)

	v, err := DecodeTypedValue(c)
	require.NoError(t, err)

	s, ok := v.AsStr()
	require.True(t, ok)
	assert.Equal(t, "foo", s)
}

func TestDecodeTypedValue_NoneAndNull(t *testing.T) {
	c := NewCursor([]byte{0x00})
	v, err := DecodeTypedValue(c)
	require.NoError(t, err)
	assert.Equal(t, KindNone, v.Kind)

	c = NewCursor([]byte{0x2a})
	v, err = DecodeTypedValue(c)
	require.NoError(t, err)
	assert.Equal(t, KindNull, v.Kind)
}

func TestDecodeParameters_Table(t *testing.T) {
	// 2 entries: [idx 0 -> Byte(7)], [idx 1 -> Short(1234)]
	buf := []byte{
		0x00, 0x02,
		0x00, 0x62, 0x07,
		0x01, 0x6b, 0x04, 0xd2,
	}
	c := NewCursor(buf)

	params, err := decodeParameters(c)
	require.NoError(t, err)
	require.Len(t, params, 2)

	b, ok := params[0].AsByte()
	require.True(t, ok)
	assert.Equal(t, byte(7), b)

	s, ok := params[1].AsShort()
	require.True(t, ok)
	assert.Equal(t, int16(1234), s)
}

func TestDecodeArray_FixedType(t *testing.T) {
	// count 2, element type Integer(0x69), values 1 and 2.
	buf := []byte{
		0x79,
		0x00, 0x02,
		0x69,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x02,
	}
	c := NewCursor(buf)

	v, err := DecodeTypedValue(c)
	require.NoError(t, err)
	assert.Equal(t, KindArray, v.Kind)

	elems, ok := v.AsArray()
	require.True(t, ok)
	require.Len(t, elems, 2)

	i0, _ := elems[0].AsInteger()
	i1, _ := elems[1].AsInteger()
	assert.Equal(t, uint32(1), i0)
	assert.Equal(t, uint32(2), i1)
}

func TestDecodeArray_PartialOnShortBuffer(t *testing.T) {
	// Declares 2 Integer elements but only provides bytes for one: the
	// container keeps the first element rather than erroring outright.
	buf := []byte{
		0x79,
		0x00, 0x02,
		0x69,
		0x00, 0x00, 0x00, 0x01,
	}
	c := NewCursor(buf)

	v, err := DecodeTypedValue(c)
	require.NoError(t, err)

	elems, ok := v.AsArray()
	require.True(t, ok)
	require.Len(t, elems, 1)
	i0, _ := elems[0].AsInteger()
	assert.Equal(t, uint32(1), i0)
}

func TestDecodeByteArray_PropagatesShortRead(t *testing.T) {
	// length prefix claims 10 bytes but only 2 are present.
	buf := []byte{0x78, 0x00, 0x00, 0x00, 0x0a, 0x01, 0x02}
	c := NewCursor(buf)

	_, err := DecodeTypedValue(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not enough bytes")
}

func TestDecodeDictionary_MixedElementTags(t *testing.T) {
	// key type sentinel (None) means each key is self-tagged; same for value.
	buf := []byte{
		0x44,
		0x00, 0x00,
		0x00, 0x01,
		0x73, 0x00, 0x03, 'k', 'e', 'y',
		0x62, 0x09,
	}
	c := NewCursor(buf)

	v, err := DecodeTypedValue(c)
	require.NoError(t, err)

	dict, ok := v.AsDictionary()
	require.True(t, ok)
	require.Len(t, dict, 1)

	val, found := dict["key"]
	require.True(t, found)
	b, _ := val.AsByte()
	assert.Equal(t, byte(9), b)
}

func TestDecodeEventData_StringParameter(t *testing.T) {
	buf := []byte{
		0x2a,
		0x00, 0x01,
		0x00, 0x73, 0x00, 0x04, 'z', 'o', 'n', 'e',
	}
	c := NewCursor(buf)
	ev, err := DecodeEventData(c)
	require.NoError(t, err)
	assert.Equal(t, byte(0x2a), ev.Code)

	s, ok := ev.Parameters[0].AsStr()
	require.True(t, ok)
	assert.Equal(t, "zone", s)
}
