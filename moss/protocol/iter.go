package protocol

import (
	"github.com/AliceO2Group/moss-decoder/moss/mosserr"
	"github.com/AliceO2Group/moss-decoder/moss/packet"
	"github.com/AliceO2Group/moss-decoder/moss/word"
)

// byteIter walks a buffer one byte at a time without exposing random
// access into it, the way the original decoder's two variants differ:
// one indexes into the buffer directly, the other drives an iterator.
// Both must agree byte-for-byte; see extractor_test.go's golden
// comparison between ExtractPacket and ExtractPacketIter.
type byteIter struct {
	buf []byte
	pos int
}

func (it *byteIter) next() (b byte, idx int, ok bool) {
	if it.pos >= len(it.buf) {
		return 0, it.pos, false
	}
	b, idx = it.buf[it.pos], it.pos
	it.pos++
	return b, idx, true
}

// lookahead returns up to n bytes starting at the iterator's current
// position, without consuming them.
func (it *byteIter) lookahead(n int) []byte {
	end := it.pos + n
	if end > len(it.buf) {
		end = len(it.buf)
	}
	return append([]byte(nil), it.buf[it.pos:end]...)
}

// ExtractPacketIter is the iterator-driven twin of ExtractPacket: same
// FSM, same semantics, same return values, but it walks the input
// through a small cursor type instead of indexing the slice directly.
// Kept alongside the indexed form per the design note that both
// strategies must produce identical output for the same input.
func ExtractPacketIter(buf []byte, start int) (packet.Packet, int, error) {
	it := &byteIter{buf: buf, pos: start}

	headerIdx := -1
	for {
		b, idx, ok := it.next()
		if !ok {
			break
		}
		if word.Classify(b) == word.UnitFrameHeader {
			headerIdx = idx
			break
		}
	}
	if headerIdx < 0 {
		return packet.Packet{}, len(buf), mosserr.ErrNoHeader
	}

	unitID := word.UnitID(buf[headerIdx])
	f := newFSM()
	mkErr := func(i int, state string, expected ...string) error {
		// it.pos has already advanced past the offending byte by the
		// time step() calls mkErr, so lookahead starts right after it —
		// the same window the indexed form reads from buf[i+1:].
		return mosserr.NewProtocolErrorWithLookahead(buf[i], i, state, expected, it.lookahead(10))
	}

	for {
		b, idx, ok := it.next()
		if !ok {
			break
		}
		if err := f.step(b, idx, mkErr); err != nil {
			return packet.Packet{}, idx, err
		}
		if f.done() {
			return packet.Packet{UnitID: unitID, Hits: f.hits}, idx, nil
		}
	}

	return packet.Packet{}, len(buf), mosserr.NewUnexpectedEOF(len(buf), f.state.String(), expectedFor(f.state))
}
