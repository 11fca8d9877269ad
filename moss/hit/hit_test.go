package hit

import "testing"

func TestAssembleHit(t *testing.T) {
	tests := []struct {
		name               string
		region             uint8
		d0, d1, d2         byte
		wantRow, wantCol   uint16
	}{
		// region=0 row=2 column=8 (S1 hits 1 and 4 share this triplet)
		{"row2 col8", 0, 0x00, 0x50, 0x88, 2, 8},
		// region=0 row=10 column=8
		{"row10 col8", 0, 0x01, 0x50, 0x88, 10, 8},
		// region=1 row=301 column=433
		{"row301 col433", 1, 0x25, 0x6E, 0xB1, 301, 433},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Begin(tt.region, tt.d0)
			MergeD1(&h, tt.d1)
			MergeD2(&h, tt.d2)

			if h.Region != tt.region {
				t.Errorf("Region = %d, want %d", h.Region, tt.region)
			}
			if h.Row != tt.wantRow {
				t.Errorf("Row = %d, want %d", h.Row, tt.wantRow)
			}
			if h.Column != tt.wantCol {
				t.Errorf("Column = %d, want %d", h.Column, tt.wantCol)
			}
		})
	}
}

func TestHitRangeInvariant(t *testing.T) {
	// Row and column are each packed from 9 bits total across the
	// triplet, so for any byte inputs the assembled value must stay
	// within 0..=511.
	for d0 := 0; d0 <= 0xFF; d0 += 7 {
		for d1 := 0; d1 <= 0xFF; d1 += 11 {
			for d2 := 0; d2 <= 0xFF; d2 += 13 {
				h := Begin(0, byte(d0))
				MergeD1(&h, byte(d1))
				MergeD2(&h, byte(d2))
				if h.Row > 511 {
					t.Fatalf("Row out of range: %d (d0=0x%02X d1=0x%02X)", h.Row, d0, d1)
				}
				if h.Column > 511 {
					t.Fatalf("Column out of range: %d (d1=0x%02X d2=0x%02X)", h.Column, d1, d2)
				}
			}
		}
	}
}

func TestHitString(t *testing.T) {
	h := Hit{Region: 2, Row: 301, Column: 433}
	want := "reg: 2 row: 301 col: 433"
	if got := h.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
