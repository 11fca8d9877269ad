package protocol

// fakeEventSimple is the canonical "fake_event_simple" fixture used
// throughout the decoder's test suite (scenario S1): one packet for
// unit 1 with four hits spanning regions 0, 1 and 3, one idle word
// after the second region-0 hit, and region headers 2/3 visited in
// sequence with no hit in region 2.
//
//	hits: (region=0 row=2 col=8) (region=0 row=10 col=8)
//	      (region=1 row=301 col=433) (region=3 row=2 col=8)
func fakeEventSimple() []byte {
	return []byte{
		0xD1,                   // unit frame header, unit 1
		0xC0,                   // region header 0
		0x00, 0x50, 0x88,       // hit: region 0, row 2, col 8
		0x01, 0x50, 0x88,       // hit: region 0, row 10, col 8
		0xFF,                   // idle
		0xC1,                   // region header 1
		0x25, 0x6E, 0xB1,       // hit: region 1, row 301, col 433
		0xC2,                   // region header 2
		0xC3,                   // region header 3
		0x00, 0x50, 0x88,       // hit: region 3, row 2, col 8
		0xE0,                   // unit frame trailer
	}
}

// fakeMultipleEvents is scenario S2: two concatenated copies of
// fakeEventSimple.
func fakeMultipleEvents() []byte {
	a := fakeEventSimple()
	b := fakeEventSimple()
	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

// fakeEventProtocolError is scenario S5: a packet whose DATA_0 is
// followed by an idle word instead of DATA_1, an illegal transition out
// of AFTER_DATA_0.
func fakeEventProtocolError() []byte {
	return []byte{
		0xD1, // unit frame header, unit 1
		0xC0, // region header 0
		0x00, // DATA_0 (begins a hit)
		0xFF, // illegal: AFTER_DATA_0 requires DATA_1
	}
}
