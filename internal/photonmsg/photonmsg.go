// Package photonmsg turns a framed command's payload into one of
// Event/Request/Response.
package photonmsg

import (
	"fmt"

	"github.com/zonemeter/zonemeter/internal/photonvalue"
)

// Kind distinguishes the Message variants.
type Kind uint8

const (
	KindEvent Kind = iota
	KindRequest
	KindResponse
)

// Message is the protocol-layer message variant produced from a command's
// payload. Exactly one of Event/Request/Response is meaningful, selected by
// Kind.
type Message struct {
	Kind     Kind
	Event    photonvalue.EventData
	Request  photonvalue.OperationRequest
	Response photonvalue.OperationResponse
}

// Decode reads one discarded byte, then a msg_type byte, and dispatches:
// 2 -> Request, 3 -> Response, 4 -> Event. Any other msg_type fails with an
// "unknown message" error. payload is the command's own copy of its
// message bytes, already cut out of the datagram by the framer, so an error
// here does not disturb the decoding of the next command.
func Decode(payload []byte) (Message, error) {
	c := photonvalue.NewCursor(payload)

	if _, err := c.ReadByte(); err != nil {
		return Message{}, photonvalue.Wrap(err, "failed to decode message discard byte")
	}
	msgType, err := c.ReadByte()
	if err != nil {
		return Message{}, photonvalue.Wrap(err, "failed to decode message type")
	}

	switch msgType {
	case 2:
		req, err := photonvalue.DecodeOperationRequest(c)
		if err != nil {
			return Message{}, photonvalue.Wrap(err, "failed to decode OperationRequest")
		}
		return Message{Kind: KindRequest, Request: req}, nil
	case 3:
		resp, err := photonvalue.DecodeOperationResponse(c)
		if err != nil {
			return Message{}, photonvalue.Wrap(err, "failed to decode OperationResponse")
		}
		return Message{Kind: KindResponse, Response: resp}, nil
	case 4:
		ev, err := photonvalue.DecodeEventData(c)
		if err != nil {
			return Message{}, photonvalue.Wrap(err, "failed to decode EventData")
		}
		return Message{Kind: KindEvent, Event: ev}, nil
	default:
		return Message{}, fmt.Errorf("unknown message (0x%02x)", msgType)
	}
}
