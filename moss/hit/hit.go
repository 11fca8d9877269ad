// Package hit defines the decoded MOSS pixel hit and the triplet
// assembler that builds one from three wire bytes.
package hit

import "fmt"

// Hit is a single pixel activation: a region (0..3), a row (0..511)
// and a column (0..511). It is immutable once assembled; Begin/MergeD1/
// MergeD2 build it up across three wire bytes, and callers should treat
// it as complete only after MergeD2 has run.
type Hit struct {
	Region uint8
	Row    uint16
	Column uint16
}

func (h Hit) String() string {
	return fmt.Sprintf("reg: %d row: %d col: %d", h.Region, h.Row, h.Column)
}

// Begin starts a new hit from a DATA_0 word: it fixes the region (latched
// by the FSM from the most recent region header) and the high bits of
// the row, row[8:3]. Column is left zeroed until MergeD1/MergeD2 run.
func Begin(region uint8, d0 byte) Hit {
	return Hit{
		Region: region,
		Row:    uint16(d0&0x3F) << 3,
		Column: 0,
	}
}

// MergeD1 folds a DATA_1 word into an in-progress hit: the low bits of
// the row, row[2:0], and the high bits of the column, column[8:6].
func MergeD1(h *Hit, d1 byte) {
	h.Row |= uint16(d1&0x38) >> 3
	h.Column = uint16(d1&0x07) << 6
}

// MergeD2 folds a DATA_2 word into an in-progress hit: the low bits of
// the column, column[5:0]. After this call the hit is complete.
func MergeD2(h *Hit, d2 byte) {
	h.Column |= uint16(d2 & 0x3F)
}
