// Package packet defines the MOSS packet: one readout unit's contribution
// to one event.
package packet

import (
	"fmt"
	"strings"

	"github.com/AliceO2Group/moss-decoder/moss/hit"
)

// Packet is a unit frame's decoded contents: the unit id from the frame
// header and the hits observed between that header and its matching
// trailer, in wire order.
type Packet struct {
	UnitID uint8
	Hits   []hit.Hit
}

// New returns an empty packet for the given unit, ready to have hits
// appended as the FSM decodes them.
func New(unitID uint8) Packet {
	return Packet{UnitID: unitID, Hits: make([]hit.Hit, 0)}
}

func (p Packet) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Unit ID: %d Hits: %d\n [", p.UnitID, len(p.Hits))
	for i, h := range p.Hits {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(h.String())
	}
	b.WriteString("]")
	return b.String()
}
