package protocol

import (
	"github.com/AliceO2Group/moss-decoder/moss/mosserr"
	"github.com/AliceO2Group/moss-decoder/moss/packet"
	"github.com/AliceO2Group/moss-decoder/moss/word"
)

// ExtractPacket scans buf from start for the next unit frame header,
// then drives the FSM to completion. It returns the decoded packet and
// the absolute index of the trailer byte that closed it.
//
// Leading bytes that are not a unit frame header are skipped silently —
// the wire occasionally carries framing noise before the first valid
// header, and that is tolerated by design, not an error.
//
// If no header is found from start onward, ExtractPacket returns
// mosserr.ErrNoHeader. If the FSM hits an illegal transition or runs out
// of buffer before reaching its done state, it returns a
// *mosserr.ProtocolError.
func ExtractPacket(buf []byte, start int) (packet.Packet, int, error) {
	headerIdx := -1
	for i := start; i < len(buf); i++ {
		if word.Classify(buf[i]) == word.UnitFrameHeader {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return packet.Packet{}, len(buf), mosserr.ErrNoHeader
	}

	unitID := word.UnitID(buf[headerIdx])
	f := newFSM()
	mkErr := func(i int, state string, expected ...string) error {
		return mosserr.NewProtocolError(buf, i, state, expected)
	}

	i := headerIdx + 1
	for ; i < len(buf); i++ {
		if err := f.step(buf[i], i, mkErr); err != nil {
			return packet.Packet{}, i, err
		}
		if f.done() {
			return packet.Packet{UnitID: unitID, Hits: f.hits}, i, nil
		}
	}

	return packet.Packet{}, len(buf), mosserr.NewUnexpectedEOF(len(buf), f.state.String(), expectedFor(f.state))
}

// expectedFor lists the word classes that would have been legal next,
// used only to annotate an unexpected-end-of-buffer error (there is no
// offending byte to anchor an mkErr call to).
func expectedFor(s state) []string {
	switch s {
	case stateExpectRegionHeader0:
		return []string{"REGION_HEADER_0"}
	case stateAtRegionHeader0:
		return []string{"REGION_HEADER_1", "DATA_0"}
	case stateAtRegionHeader1:
		return []string{"REGION_HEADER_2", "DATA_0"}
	case stateAtRegionHeader2:
		return []string{"REGION_HEADER_3", "DATA_0"}
	case stateAtRegionHeader3:
		return []string{"UNIT_FRAME_TRAILER", "DATA_0"}
	case stateAfterData0:
		return []string{"DATA_1"}
	case stateAfterData1:
		return []string{"DATA_2"}
	case stateAfterData2:
		return []string{"DATA_0", "IDLE", "REGION_HEADER_1", "REGION_HEADER_2", "REGION_HEADER_3", "UNIT_FRAME_TRAILER"}
	case stateAtIdle:
		return []string{"DATA_0", "REGION_HEADER_1", "REGION_HEADER_2", "REGION_HEADER_3", "UNIT_FRAME_TRAILER"}
	default:
		return nil
	}
}

// DecodeEvent locates and decodes the first MOSS packet in buf. It is
// the single-event entry point described by the decoder's external
// interface: decode_event(buf) -> (Packet, last_byte_index).
func DecodeEvent(buf []byte) (packet.Packet, int, error) {
	return ExtractPacket(buf, 0)
}
