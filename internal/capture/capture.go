// Package capture defines the boundary between this repo's core pipeline
// and the external packet-capture mechanism. Actual link-layer capture
// (opening interfaces, reading ethernet frames, synthesizing headers on
// point-to-point links) is explicitly out of scope for the core (spec §1,
// §6); this package only names the shape a capture source must produce and
// the port filter the pipeline applies to it.
package capture

import "net"

// photonPort is the UDP port the observed game client/server traffic uses.
// A datagram that touches neither side of this port is not ours.
const photonPort = 5056

// UdpPacket is one captured UDP datagram, independent of the capture
// mechanism that produced it (pcap, raw socket, replay from a file, a test
// fixture).
type UdpPacket struct {
	InterfaceName    string
	SourceAddress    net.IP
	SourcePort       uint16
	DestinationAddress net.IP
	DestinationPort  uint16
	Length           uint16
	Payload          []byte
}

// Relevant reports whether pkt touches the Photon port on either side. All
// other datagrams are discarded before framing, per spec §6.
func Relevant(pkt UdpPacket) bool {
	return RelevantPort(pkt, photonPort)
}

// RelevantPort is Relevant against a caller-supplied port, for deployments
// whose config overrides the default Photon port.
func RelevantPort(pkt UdpPacket, port uint16) bool {
	return pkt.SourcePort == port || pkt.DestinationPort == port
}

// Source produces a stream of captured datagrams. The channel is closed
// when the capture mechanism is done (interface closed, process shutting
// down); the pipeline's core goroutine detects this via range-over-channel
// ending, per §5's shutdown-by-channel-close model.
type Source interface {
	Packets() <-chan UdpPacket
}

// ChanSource is a Source backed by a plain channel any external capture
// mechanism (pcap binding, replay tool, test harness) can push into. The
// capture side owns the channel and is responsible for closing it when
// done; this type only exposes the receive end to the pipeline.
type ChanSource struct {
	ch <-chan UdpPacket
}

// NewChanSource wraps an existing channel as a Source.
func NewChanSource(ch <-chan UdpPacket) ChanSource {
	return ChanSource{ch: ch}
}

func (s ChanSource) Packets() <-chan UdpPacket { return s.ch }
