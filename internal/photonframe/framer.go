package photonframe

import (
	"container/list"
	"fmt"

	"github.com/zonemeter/zonemeter/internal/photonmsg"
	"github.com/zonemeter/zonemeter/internal/photonvalue"
)

// defaultMaxPendingFragments bounds how many incomplete fragment sequences
// the Framer tracks at once. A fragment set that never completes (dropped
// tail datagram) would otherwise leak forever.
const defaultMaxPendingFragments = 256

type pendingFragments struct {
	sequenceNumber uint32
	fragmentCount  uint32
	chunks         [][]byte
}

// Framer parses Photon datagrams into Messages, reassembling
// SendReliableFragment sequences across calls. It is not safe for
// concurrent use; the pipeline owns a single Framer for every relevant
// datagram.
type Framer struct {
	maxPending int
	pending    map[uint32]*list.Element
	order      *list.List // of *pendingFragments, oldest-first
}

// NewFramer returns a Framer with the default bounded fragment capacity.
func NewFramer() *Framer {
	return NewFramerWithCapacity(defaultMaxPendingFragments)
}

func NewFramerWithCapacity(maxPending int) *Framer {
	return &Framer{
		maxPending: maxPending,
		pending:    make(map[uint32]*list.Element),
		order:      list.New(),
	}
}

// CommandResult pairs a decoded Message with the error from decoding it (or
// the original protocol-layer Command decode error), mirroring the spec's
// per-command Result slot.
type CommandResult struct {
	Message photonmsg.Message
	Err     error
}

// TryDecode parses one datagram: the PhotonHeader followed by
// header.CommandCount commands. It fails outright only if the header can't
// be parsed. Each reliable or unreliable command and each completed
// fragment set yields one CommandResult; LogOut commands and incomplete
// fragment sets yield none. A command that fails to decode yields one
// CommandResult carrying the error and ends the datagram.
func (f *Framer) TryDecode(datagram []byte) ([]CommandResult, error) {
	c := photonvalue.NewCursor(datagram)
	header, err := decodePhotonHeader(c)
	if err != nil {
		return nil, fmt.Errorf("decode photon header: %w", err)
	}

	results := make([]CommandResult, 0, header.CommandCount)
	for i := uint8(0); i < header.CommandCount; i++ {
		cmd, err := decodeCommand(c)
		if err != nil {
			results = append(results, CommandResult{Err: fmt.Errorf("decode command %d: %w", i, err)})
			break
		}
		results = append(results, f.handleCommand(cmd)...)
	}
	return results, nil
}

// Decode is TryDecode filtered down to only the successfully decoded
// messages.
func (f *Framer) Decode(datagram []byte) []photonmsg.Message {
	results, err := f.TryDecode(datagram)
	if err != nil {
		return nil
	}
	out := make([]photonmsg.Message, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			out = append(out, r.Message)
		}
	}
	return out
}

func (f *Framer) handleCommand(cmd Command) []CommandResult {
	switch cmd.Kind {
	case CommandLogOut:
		return nil
	case CommandSendReliable, CommandSendUnreliable:
		msg, err := photonmsg.Decode(cmd.Payload)
		return []CommandResult{{Message: msg, Err: err}}
	case CommandSendReliableFragment:
		return f.handleFragment(cmd.Fragment)
	default:
		return nil
	}
}

// handleFragment appends the fragment's payload to its sequence's pending
// set, in arrival order (not fragment_number order — this matches observed
// producer behavior). Once every fragment for a sequence_number has
// arrived, the payloads are concatenated and decoded as one Message.
func (f *Framer) handleFragment(frag ReliableFragment) []CommandResult {
	elem, ok := f.pending[frag.SequenceNumber]
	var pf *pendingFragments
	if ok {
		pf = elem.Value.(*pendingFragments)
	} else {
		pf = &pendingFragments{
			sequenceNumber: frag.SequenceNumber,
			fragmentCount:  frag.FragmentCount,
		}
		newElem := f.order.PushBack(pf)
		f.pending[frag.SequenceNumber] = newElem
		f.evictIfOverCapacity()
	}

	pf.chunks = append(pf.chunks, frag.Payload)

	if uint32(len(pf.chunks)) < pf.fragmentCount {
		return nil
	}

	f.removePending(frag.SequenceNumber)

	total := 0
	for _, chunk := range pf.chunks {
		total += len(chunk)
	}
	assembled := make([]byte, 0, total)
	for _, chunk := range pf.chunks {
		assembled = append(assembled, chunk...)
	}

	msg, err := photonmsg.Decode(assembled)
	return []CommandResult{{Message: msg, Err: err}}
}

func (f *Framer) removePending(sequenceNumber uint32) {
	if elem, ok := f.pending[sequenceNumber]; ok {
		f.order.Remove(elem)
		delete(f.pending, sequenceNumber)
	}
}

// evictIfOverCapacity drops the oldest incomplete fragment sequence when
// the tracked set grows past maxPending, so a sender that never completes
// a sequence can't grow this map without bound.
func (f *Framer) evictIfOverCapacity() {
	if f.maxPending <= 0 {
		return
	}
	for len(f.pending) > f.maxPending {
		oldest := f.order.Front()
		if oldest == nil {
			return
		}
		pf := oldest.Value.(*pendingFragments)
		f.removePending(pf.sequenceNumber)
	}
}
