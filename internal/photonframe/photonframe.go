// Package photonframe parses the outer datagram header and its sequence of
// Commands, reassembling fragmented reliable commands into complete
// Messages.
package photonframe

import (
	"fmt"

	"github.com/zonemeter/zonemeter/internal/photonvalue"
)

// reliableCommandHeaderSize is the size of a reliable command's header on
// the wire, which length_on_wire counts: the command type id(1) read by
// decodeCommand, then channel_id(1) + flags(1) + reserved(1) + msg_len(4) +
// reliable_sequence_number(4).
const reliableCommandHeaderSize = 12

// unreliableCommandExtra is the "unknown" 4-byte prefix SendUnreliable
// carries ahead of its payload, on top of the reliable command header.
const unreliableCommandExtra = 4

// reliableFragmentExtra is the five additional u32 fields
// (sequence_number, fragment_count, fragment_number, total_length,
// operation_length) a SendReliableFragment command carries ahead of its
// payload, on top of the reliable command header.
const reliableFragmentExtra = 20

// PhotonHeader is the fixed header at the start of every datagram.
type PhotonHeader struct {
	PeerID       int16
	CRCEnabled   bool
	CommandCount uint8
	Timestamp    uint32
	Challenge    uint32
}

// ReliableCommand is the common header carried by SendReliable,
// SendUnreliable and SendReliableFragment commands.
type ReliableCommand struct {
	ChannelID              uint8
	Flags                  uint8
	Reserved               uint8
	MsgLen                 uint32
	ReliableSequenceNumber uint32
}

// ReliableFragment is a SendReliableFragment command: a slice of a larger
// reliable command payload split across multiple datagrams.
type ReliableFragment struct {
	ReliableCommand  ReliableCommand
	SequenceNumber   uint32
	FragmentCount    uint32
	FragmentNumber   uint32
	TotalLength      uint32
	OperationLength  uint32
	Payload          []byte
}

// CommandKind distinguishes the Command variants.
type CommandKind uint8

const (
	CommandLogOut CommandKind = iota
	CommandSendReliable
	CommandSendUnreliable
	CommandSendReliableFragment
)

// Command is the framing-layer command variant. Exactly one of the payload
// fields is meaningful, selected by Kind. Payload holds the command's
// message bytes for SendReliable/SendUnreliable; SendReliableFragment
// carries its slice of a larger payload in Fragment.Payload instead.
type Command struct {
	Kind     CommandKind
	Reliable ReliableCommand
	Payload  []byte
	Fragment ReliableFragment
}

func decodePhotonHeader(c *photonvalue.Cursor) (PhotonHeader, error) {
	peerID, err := c.ReadInt16()
	if err != nil {
		return PhotonHeader{}, photonvalue.Wrap(err, "failed to decode PhotonHeader.peer_id")
	}
	crc, err := c.ReadBool()
	if err != nil {
		return PhotonHeader{}, photonvalue.Wrap(err, "failed to decode PhotonHeader.crc_enabled")
	}
	count, err := c.ReadByte()
	if err != nil {
		return PhotonHeader{}, photonvalue.Wrap(err, "failed to decode PhotonHeader.command_count")
	}
	timestamp, err := c.ReadUint32()
	if err != nil {
		return PhotonHeader{}, photonvalue.Wrap(err, "failed to decode PhotonHeader.timestamp")
	}
	challenge, err := c.ReadUint32()
	if err != nil {
		return PhotonHeader{}, photonvalue.Wrap(err, "failed to decode PhotonHeader.challenge")
	}
	return PhotonHeader{
		PeerID:       peerID,
		CRCEnabled:   crc,
		CommandCount: count,
		Timestamp:    timestamp,
		Challenge:    challenge,
	}, nil
}

// decodeReliableCommand reads the common reliable-command header and
// converts the wire length_on_wire into msg_len (the payload length),
// erroring rather than underflowing when the header claims less than its
// own size.
func decodeReliableCommand(c *photonvalue.Cursor) (ReliableCommand, error) {
	channelID, err := c.ReadByte()
	if err != nil {
		return ReliableCommand{}, photonvalue.Wrap(err, "failed to decode ReliableCommand.channel_id")
	}
	flags, err := c.ReadByte()
	if err != nil {
		return ReliableCommand{}, photonvalue.Wrap(err, "failed to decode ReliableCommand.flags")
	}
	reserved, err := c.ReadByte()
	if err != nil {
		return ReliableCommand{}, photonvalue.Wrap(err, "failed to decode ReliableCommand.reserved")
	}
	lengthOnWire, err := c.ReadUint32()
	if err != nil {
		return ReliableCommand{}, photonvalue.Wrap(err, "failed to decode ReliableCommand.msg_len")
	}
	seq, err := c.ReadUint32()
	if err != nil {
		return ReliableCommand{}, photonvalue.Wrap(err, "failed to decode ReliableCommand.reliable_sequence_number")
	}
	if lengthOnWire < reliableCommandHeaderSize {
		return ReliableCommand{}, fmt.Errorf("reliable command length %d underflows header size %d", lengthOnWire, reliableCommandHeaderSize)
	}
	return ReliableCommand{
		ChannelID:              channelID,
		Flags:                  flags,
		Reserved:               reserved,
		MsgLen:                 lengthOnWire - reliableCommandHeaderSize,
		ReliableSequenceNumber: seq,
	}, nil
}

func decodeUnreliableCommand(c *photonvalue.Cursor) (ReliableCommand, error) {
	rc, err := decodeReliableCommand(c)
	if err != nil {
		return ReliableCommand{}, err
	}
	if rc.MsgLen < unreliableCommandExtra {
		return ReliableCommand{}, fmt.Errorf("unreliable command msg_len %d underflows extra prefix %d", rc.MsgLen, unreliableCommandExtra)
	}
	if err := c.Skip(unreliableCommandExtra); err != nil {
		return ReliableCommand{}, photonvalue.Wrap(err, "failed to skip unreliable command prefix")
	}
	rc.MsgLen -= unreliableCommandExtra
	return rc, nil
}

func decodeReliableFragment(c *photonvalue.Cursor) (ReliableFragment, error) {
	rc, err := decodeReliableCommand(c)
	if err != nil {
		return ReliableFragment{}, err
	}
	if rc.MsgLen < reliableFragmentExtra {
		return ReliableFragment{}, fmt.Errorf("reliable fragment msg_len %d underflows extra fields %d", rc.MsgLen, reliableFragmentExtra)
	}
	sequenceNumber, err := c.ReadUint32()
	if err != nil {
		return ReliableFragment{}, photonvalue.Wrap(err, "failed to decode ReliableFragment.sequence_number")
	}
	fragmentCount, err := c.ReadUint32()
	if err != nil {
		return ReliableFragment{}, photonvalue.Wrap(err, "failed to decode ReliableFragment.fragment_count")
	}
	fragmentNumber, err := c.ReadUint32()
	if err != nil {
		return ReliableFragment{}, photonvalue.Wrap(err, "failed to decode ReliableFragment.fragment_number")
	}
	totalLength, err := c.ReadUint32()
	if err != nil {
		return ReliableFragment{}, photonvalue.Wrap(err, "failed to decode ReliableFragment.total_length")
	}
	operationLength, err := c.ReadUint32()
	if err != nil {
		return ReliableFragment{}, photonvalue.Wrap(err, "failed to decode ReliableFragment.operation_length")
	}
	payloadLen := rc.MsgLen - reliableFragmentExtra
	rc.MsgLen = payloadLen

	if uint32(c.Len()) < payloadLen {
		return ReliableFragment{}, fmt.Errorf("reliable fragment payload: not enough bytes, want %d have %d", payloadLen, c.Len())
	}
	payload := make([]byte, payloadLen)
	copy(payload, c.Remaining()[:payloadLen])
	if err := c.Skip(int(payloadLen)); err != nil {
		return ReliableFragment{}, photonvalue.Wrap(err, "failed to skip reliable fragment payload")
	}

	return ReliableFragment{
		ReliableCommand: rc,
		SequenceNumber:  sequenceNumber,
		FragmentCount:   fragmentCount,
		FragmentNumber:  fragmentNumber,
		TotalLength:     totalLength,
		OperationLength: operationLength,
		Payload:         payload,
	}, nil
}

// decodeCommand reads one command's one-byte type id and dispatches.
// Unrecognised ids are treated as SendReliable, matching the behavior
// observed on the real wire (every id other than 4/7/8 carries a reliable
// command header).
func decodeCommand(c *photonvalue.Cursor) (Command, error) {
	typeID, err := c.ReadByte()
	if err != nil {
		return Command{}, photonvalue.Wrap(err, "failed to decode command type id")
	}
	switch typeID {
	case 4:
		return Command{Kind: CommandLogOut}, nil
	case 7:
		rc, err := decodeUnreliableCommand(c)
		if err != nil {
			return Command{}, fmt.Errorf("decode SendUnreliable: %w", err)
		}
		payload, err := readPayload(c, rc.MsgLen)
		if err != nil {
			return Command{}, fmt.Errorf("decode SendUnreliable payload: %w", err)
		}
		return Command{Kind: CommandSendUnreliable, Reliable: rc, Payload: payload}, nil
	case 8:
		frag, err := decodeReliableFragment(c)
		if err != nil {
			return Command{}, fmt.Errorf("decode SendReliableFragment: %w", err)
		}
		return Command{Kind: CommandSendReliableFragment, Fragment: frag}, nil
	default:
		rc, err := decodeReliableCommand(c)
		if err != nil {
			return Command{}, fmt.Errorf("decode SendReliable: %w", err)
		}
		payload, err := readPayload(c, rc.MsgLen)
		if err != nil {
			return Command{}, fmt.Errorf("decode SendReliable payload: %w", err)
		}
		return Command{Kind: CommandSendReliable, Reliable: rc, Payload: payload}, nil
	}
}

func readPayload(c *photonvalue.Cursor, n uint32) ([]byte, error) {
	if uint32(c.Len()) < n {
		return nil, fmt.Errorf("not enough bytes, want %d have %d", n, c.Len())
	}
	payload := make([]byte, n)
	copy(payload, c.Remaining()[:n])
	if err := c.Skip(int(n)); err != nil {
		return nil, err
	}
	return payload, nil
}
