package helper

import "testing"

func TestSeatLabel(t *testing.T) {
	cases := []struct {
		level, row, column int
		want               string
	}{
		{1, 1, 1, "A1"},
		{1, 3, 4, "C4"},
		{2, 1, 2, "UA2"},
		{2, 5, 10, "UE10"},
	}

	for _, tc := range cases {
		if got := SeatLabel(tc.level, tc.row, tc.column); got != tc.want {
			t.Errorf("SeatLabel(%d,%d,%d) = %q, want %q", tc.level, tc.row, tc.column, got, tc.want)
		}
	}
}

func TestParseSeatLabelRoundTrip(t *testing.T) {
	for level := 1; level <= 2; level++ {
		for row := 1; row <= 6; row++ {
			for column := 1; column <= 4; column++ {
				label := SeatLabel(level, row, column)
				gotLevel, gotRow, gotColumn, err := ParseSeatLabel(label)
				if err != nil {
					t.Fatalf("ParseSeatLabel(%q): %v", label, err)
				}
				if gotLevel != level || gotRow != row || gotColumn != column {
					t.Fatalf("round trip of %q gave (%d,%d,%d), want (%d,%d,%d)",
						label, gotLevel, gotRow, gotColumn, level, row, column)
				}
			}
		}
	}
}

func TestParseSeatLabelRejectsGarbage(t *testing.T) {
	for _, label := range []string{"", "1A", "A", "A0", "Axy", "U", "zz9"} {
		if _, _, _, err := ParseSeatLabel(label); err == nil {
			t.Errorf("ParseSeatLabel(%q) should fail", label)
		}
	}
}
