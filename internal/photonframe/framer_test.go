package photonframe

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendU32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func photonHeader(commandCount uint8) []byte {
	buf := []byte{0x00, 0x01, 0x00, commandCount}
	buf = appendU32(buf, 0)
	buf = appendU32(buf, 0)
	return buf
}

func reliableCommandHeader(typeID byte, payload []byte) []byte {
	buf := []byte{typeID, 0, 0, 0}
	buf = appendU32(buf, uint32(reliableCommandHeaderSize+len(payload)))
	buf = appendU32(buf, 1)
	buf = append(buf, payload...)
	return buf
}

func minimalEventPayload(code byte) []byte {
	// discard byte, msg_type=4 (Event), event code, 0 parameters.
	return []byte{0x00, 0x04, code, 0x00, 0x00}
}

func TestFramer_DecodeSingleReliableCommand(t *testing.T) {
	payload := minimalEventPayload(6)
	datagram := photonHeader(1)
	datagram = append(datagram, reliableCommandHeader(6, payload)...)

	f := NewFramer()
	msgs := f.Decode(datagram)
	require.Len(t, msgs, 1)
	assert.Equal(t, byte(6), msgs[0].Event.Code)
}

func TestFramer_FragmentReassembly_ArrivalOrder(t *testing.T) {
	full := minimalEventPayload(72)
	part1, part2 := full[:3], full[3:]

	frag := func(seq, count, num uint32, payload []byte) []byte {
		buf := []byte{8, 0, 0, 0}
		buf = appendU32(buf, uint32(reliableCommandHeaderSize+20+len(payload)))
		buf = appendU32(buf, 1)
		buf = appendU32(buf, seq)
		buf = appendU32(buf, count)
		buf = appendU32(buf, num)
		buf = appendU32(buf, uint32(len(full)))
		buf = appendU32(buf, uint32(len(full)))
		buf = append(buf, payload...)
		return buf
	}

	datagram1 := photonHeader(1)
	datagram1 = append(datagram1, frag(1, 2, 0, part1)...)

	datagram2 := photonHeader(1)
	datagram2 = append(datagram2, frag(1, 2, 1, part2)...)

	f := NewFramer()
	msgs := f.Decode(datagram1)
	assert.Len(t, msgs, 0, "incomplete fragment set yields no message yet")

	msgs = f.Decode(datagram2)
	require.Len(t, msgs, 1)
	assert.Equal(t, byte(72), msgs[0].Event.Code)
}

func TestFramer_LogOutCommandYieldsNoMessage(t *testing.T) {
	datagram := photonHeader(1)
	datagram = append(datagram, byte(4))

	f := NewFramer()
	msgs := f.Decode(datagram)
	assert.Len(t, msgs, 0)
}

func TestFramer_BoundedFragmentCapacityEvictsOldest(t *testing.T) {
	f := NewFramerWithCapacity(1)

	mkFragDatagram := func(seq uint32) []byte {
		buf := []byte{8, 0, 0, 0}
		buf = appendU32(buf, uint32(reliableCommandHeaderSize+20+1))
		buf = appendU32(buf, 1)
		buf = appendU32(buf, seq)
		buf = appendU32(buf, 2) // fragment_count=2, never completes
		buf = appendU32(buf, 0)
		buf = appendU32(buf, 1)
		buf = appendU32(buf, 1)
		buf = append(buf, 0xff)
		datagram := photonHeader(1)
		return append(datagram, buf...)
	}

	f.Decode(mkFragDatagram(1))
	f.Decode(mkFragDatagram(2))

	assert.LessOrEqual(t, len(f.pending), 1)
}
