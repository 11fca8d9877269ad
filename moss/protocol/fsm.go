// Package protocol implements the MOSS readout protocol finite state
// machine (C3) and the packet extractor built on top of it (C4).
//
// Grounded on the teacher's marker-driven decode loop
// (jpeg/baseline/decoder.go's Decode, parseSOF/parseDQT/... dispatch):
// there, a top-level loop reads a marker and switches on it to drive
// segment parsers; here the loop reads a byte, classifies it, and
// switches on (state, class) to drive hit assembly. Every (state,
// class) pair is handled explicitly — unreached combinations return a
// *mosserr.ProtocolError rather than falling through silently, per the
// exhaustiveness requirement and per the decision (open question a) to
// prefer a uniform returned error over the original's "unreachable"
// panics in most states.
package protocol

import (
	"github.com/AliceO2Group/moss-decoder/moss/hit"
	"github.com/AliceO2Group/moss-decoder/moss/word"
)

// state is the FSM's position within one packet.
type state int

const (
	stateExpectRegionHeader0 state = iota
	stateAtRegionHeader0
	stateAtRegionHeader1
	stateAtRegionHeader2
	stateAtRegionHeader3
	stateAfterData0
	stateAfterData1
	stateAfterData2
	stateAtIdle
	stateDone
)

func (s state) String() string {
	switch s {
	case stateExpectRegionHeader0:
		return "EXPECT_REGION_HEADER_0"
	case stateAtRegionHeader0:
		return "AT_REGION_HEADER_0"
	case stateAtRegionHeader1:
		return "AT_REGION_HEADER_1"
	case stateAtRegionHeader2:
		return "AT_REGION_HEADER_2"
	case stateAtRegionHeader3:
		return "AT_REGION_HEADER_3"
	case stateAfterData0:
		return "AFTER_DATA_0"
	case stateAfterData1:
		return "AFTER_DATA_1"
	case stateAfterData2:
		return "AFTER_DATA_2"
	case stateAtIdle:
		return "AT_IDLE"
	case stateDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// fsm holds the mutable decode state for exactly one packet. It is
// stack-local to one ExtractPacket/ExtractPacketIter call; nothing here
// is shared across calls or goroutines.
type fsm struct {
	state         state
	currentRegion uint8
	hits          []hit.Hit
}

func newFSM() *fsm {
	return &fsm{state: stateExpectRegionHeader0}
}

// lastHit returns a pointer to the most recently pushed hit, for
// MergeD1/MergeD2 to mutate in place. No push happens between Begin and
// the matching MergeD2 (the state table enforces this), so the pointer
// never survives past the transition that would invalidate it, but it
// is re-derived on every call rather than cached to stay correct even if
// that invariant is ever relaxed.
func (f *fsm) lastHit() *hit.Hit {
	return &f.hits[len(f.hits)-1]
}

// step feeds one classified byte to the FSM. It returns an error the
// moment the byte is not a legal successor of the current state; the
// caller is expected to stop feeding bytes once step returns an error
// or once the state becomes done. mkErr builds the diagnostic error for
// an illegal byte at index i; it is supplied by the caller so the
// indexed extractor and the iterator-driven one can each report
// lookahead context from whatever form of the input they hold.
func (f *fsm) step(b byte, i int, mkErr func(i int, state string, expected ...string) error) error {
	class := word.Classify(b)

	switch f.state {
	case stateExpectRegionHeader0:
		switch class {
		case word.RegionHeader0:
			f.currentRegion = 0
			f.state = stateAtRegionHeader0
		default:
			return mkErr(i, f.state.String(), "REGION_HEADER_0")
		}

	case stateAtRegionHeader0:
		switch class {
		case word.RegionHeader1:
			f.currentRegion = 1
			f.state = stateAtRegionHeader1
		case word.Data0:
			f.hits = append(f.hits, hit.Begin(0, b))
			f.state = stateAfterData0
		default:
			return mkErr(i, f.state.String(), "REGION_HEADER_1", "DATA_0")
		}

	case stateAtRegionHeader1:
		switch class {
		case word.RegionHeader2:
			f.currentRegion = 2
			f.state = stateAtRegionHeader2
		case word.Data0:
			f.hits = append(f.hits, hit.Begin(1, b))
			f.state = stateAfterData0
		default:
			return mkErr(i, f.state.String(), "REGION_HEADER_2", "DATA_0")
		}

	case stateAtRegionHeader2:
		switch class {
		case word.RegionHeader3:
			f.currentRegion = 3
			f.state = stateAtRegionHeader3
		case word.Data0:
			f.hits = append(f.hits, hit.Begin(2, b))
			f.state = stateAfterData0
		default:
			return mkErr(i, f.state.String(), "REGION_HEADER_3", "DATA_0")
		}

	case stateAtRegionHeader3:
		switch class {
		case word.UnitFrameTrailer:
			f.state = stateDone
		case word.Data0:
			f.hits = append(f.hits, hit.Begin(3, b))
			f.state = stateAfterData0
		default:
			return mkErr(i, f.state.String(), "UNIT_FRAME_TRAILER", "DATA_0")
		}

	case stateAfterData0:
		switch class {
		case word.Data1:
			hit.MergeD1(f.lastHit(), b)
			f.state = stateAfterData1
		default:
			return mkErr(i, f.state.String(), "DATA_1")
		}

	case stateAfterData1:
		switch class {
		case word.Data2:
			hit.MergeD2(f.lastHit(), b)
			f.state = stateAfterData2
		default:
			return mkErr(i, f.state.String(), "DATA_2")
		}

	case stateAfterData2:
		switch class {
		case word.Data0:
			f.hits = append(f.hits, hit.Begin(f.currentRegion, b))
			f.state = stateAfterData0
		case word.Idle:
			f.state = stateAtIdle
		case word.RegionHeader1:
			f.currentRegion = 1
			f.state = stateAtRegionHeader1
		case word.RegionHeader2:
			f.currentRegion = 2
			f.state = stateAtRegionHeader2
		case word.RegionHeader3:
			f.currentRegion = 3
			f.state = stateAtRegionHeader3
		case word.UnitFrameTrailer:
			f.state = stateDone
		default:
			return mkErr(i, f.state.String(), "DATA_0", "IDLE", "REGION_HEADER_1", "REGION_HEADER_2", "REGION_HEADER_3", "UNIT_FRAME_TRAILER")
		}

	case stateAtIdle:
		switch class {
		case word.Data0:
			f.hits = append(f.hits, hit.Begin(f.currentRegion, b))
			f.state = stateAfterData0
		case word.RegionHeader1:
			f.currentRegion = 1
			f.state = stateAtRegionHeader1
		case word.RegionHeader2:
			f.currentRegion = 2
			f.state = stateAtRegionHeader2
		case word.RegionHeader3:
			f.currentRegion = 3
			f.state = stateAtRegionHeader3
		case word.UnitFrameTrailer:
			f.state = stateDone
		default:
			return mkErr(i, f.state.String(), "DATA_0", "REGION_HEADER_1", "REGION_HEADER_2", "REGION_HEADER_3", "UNIT_FRAME_TRAILER")
		}

	case stateDone:
		// The driver never calls step again once done is reached; if
		// it did, that would be a bug in the driver, not a malformed
		// stream, so there is no well-formed ProtocolError to build.
		panic("protocol: step called after FSM reached DONE")
	}

	return nil
}

func (f *fsm) done() bool {
	return f.state == stateDone
}

