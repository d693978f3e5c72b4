package capture

import "testing"

func TestRelevant(t *testing.T) {
	cases := []struct {
		name string
		pkt  UdpPacket
		want bool
	}{
		{"source port matches", UdpPacket{SourcePort: 5056, DestinationPort: 1234}, true},
		{"destination port matches", UdpPacket{SourcePort: 1234, DestinationPort: 5056}, true},
		{"neither matches", UdpPacket{SourcePort: 1234, DestinationPort: 4321}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Relevant(tc.pkt); got != tc.want {
				t.Fatalf("Relevant(%+v) = %v, want %v", tc.pkt, got, tc.want)
			}
		})
	}
}

func TestChanSource(t *testing.T) {
	ch := make(chan UdpPacket, 1)
	ch <- UdpPacket{SourcePort: 5056}
	close(ch)

	src := NewChanSource(ch)
	pkt, ok := <-src.Packets()
	if !ok || pkt.SourcePort != 5056 {
		t.Fatalf("got %+v, ok=%v", pkt, ok)
	}
	if _, ok := <-src.Packets(); ok {
		t.Fatalf("expected channel closed")
	}
}
