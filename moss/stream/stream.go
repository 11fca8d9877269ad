// Package stream implements the MOSS stream driver (C5): repeatedly
// invoking the packet extractor until the input is drained, plus the
// file-reading convenience wrapper from the decoder's external
// interface (decode_from_file).
//
// Grounded on the teacher's top-level entry points
// (jpeg/baseline/decoder.go's Decode): a loop around a lower-level
// decode step, with the result accumulated into one pre-sized slice
// rather than grown one element at a time.
package stream

import (
	"errors"
	"os"

	"github.com/google/uuid"

	"github.com/AliceO2Group/moss-decoder/moss/mosserr"
	"github.com/AliceO2Group/moss-decoder/moss/packet"
	"github.com/AliceO2Group/moss-decoder/moss/protocol"
)

// avgPacketSizeHeuristic is a coarse guess at bytes-per-packet, used
// only to pre-size the output slice and avoid reallocation in the hot
// path. It is not a contract: real captures with denser or sparser
// packets simply grow or over-allocate the slice as usual.
const avgPacketSizeHeuristic = 48

const minCapacity = 16

func capacityHeuristic(inputLen int) int {
	c := inputLen / avgPacketSizeHeuristic
	if c < minCapacity {
		c = minCapacity
	}
	return c
}

// DecodeAll drains buf of every MOSS packet, advancing past each
// packet's trailer as it goes. It stops cleanly when no further unit
// frame header is found, returning every packet decoded so far (an
// empty result with lastTrailerIndex 0 is valid if buf holds no packet
// at all) and the absolute index of the last trailer seen. A protocol
// error aborts the scan; DecodeAll does not attempt to resynchronize —
// it returns the packets decoded before the error alongside it, and
// callers wanting best-effort recovery can re-invoke starting after the
// reported error index themselves.
func DecodeAll(buf []byte) ([]packet.Packet, int, error) {
	packets := make([]packet.Packet, 0, capacityHeuristic(len(buf)))
	start := 0
	lastTrailerIdx := 0

	for {
		pkt, trailerIdx, err := protocol.ExtractPacket(buf, start)
		if err != nil {
			if errors.Is(err, mosserr.ErrNoHeader) {
				return packets, lastTrailerIdx, nil
			}
			return packets, lastTrailerIdx, err
		}
		packets = append(packets, pkt)
		lastTrailerIdx = trailerIdx
		start = trailerIdx + 1
	}
}

// Session is the aggregate result of one DecodeAll run, tagged with a
// run identity so a caller can correlate a decode across logs or
// downstream processing stages without threading a correlation id
// through every call site by hand.
type Session struct {
	ID               uuid.UUID
	Packets          []packet.Packet
	LastTrailerIndex int
}

// DecodeAllSession runs DecodeAll and wraps the result in a Session with
// a freshly generated run id. The error from DecodeAll, if any, is
// returned alongside whatever packets were decoded before it.
func DecodeAllSession(buf []byte) (Session, error) {
	packets, lastTrailerIdx, err := DecodeAll(buf)
	return Session{
		ID:               uuid.New(),
		Packets:          packets,
		LastTrailerIndex: lastTrailerIdx,
	}, err
}

// DecodeFromFile reads path in one shot and decodes it with DecodeAll.
// It is the convenience entry point from the decoder's external
// interface; anything fancier (streaming reads, memory-mapping,
// extracting a MOSS stream embedded in another container format) is the
// external collaborator's concern, not the core's.
func DecodeFromFile(path string) ([]packet.Packet, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	packets, _, err := DecodeAll(buf)
	return packets, err
}
