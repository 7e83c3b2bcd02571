package utils

import "testing"

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-09-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Year() != 2026 || d.Month() != 9 || d.Day() != 15 {
		t.Fatalf("unexpected date %v", d)
	}

	if _, err := ParseDate("15/09/2026"); err == nil {
		t.Fatal("expected error for wrong format")
	}
	if IsValidDate("not-a-date") {
		t.Fatal("IsValidDate should reject garbage")
	}
}

func TestCalculateGrowth(t *testing.T) {
	cases := []struct {
		today, yesterday, want float64
	}{
		{200, 100, 100},
		{50, 100, -50},
		{100, 100, 0},
		{0, 0, 0},
		{10, 0, 100},
	}

	for _, tc := range cases {
		if got := CalculateGrowth(tc.today, tc.yesterday); got != tc.want {
			t.Errorf("CalculateGrowth(%f, %f) = %f, want %f", tc.today, tc.yesterday, got, tc.want)
		}
	}
}

func TestIsValidValueOfConstant(t *testing.T) {
	statuses := []string{"available", "maintenance"}
	if !IsValidValueOfConstant("available", statuses) {
		t.Fatal("known value rejected")
	}
	if IsValidValueOfConstant("retired", statuses) {
		t.Fatal("unknown value accepted")
	}
}
