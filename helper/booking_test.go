package helper

import (
	"testing"
	"time"
	"travel_booking/model"
)

func day(d int) time.Time {
	return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
}

func TestRangesOverlap(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"fully inside", day(1), day(10), day(3), day(5), true},
		{"partial tail", day(1), day(5), day(4), day(8), true},
		{"identical", day(2), day(4), day(2), day(4), true},
		{"disjoint", day(1), day(3), day(5), day(7), false},
		{"abutting checkout equals checkin", day(1), day(3), day(3), day(6), false},
		{"abutting reversed", day(3), day(6), day(1), day(3), false},
	}

	for _, tc := range cases {
		if got := RangesOverlap(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
			t.Errorf("%s: RangesOverlap = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestNights(t *testing.T) {
	if n := Nights(day(1), day(4)); n != 3 {
		t.Fatalf("expected 3 nights, got %d", n)
	}
	if n := Nights(day(5), day(6)); n != 1 {
		t.Fatalf("expected 1 night, got %d", n)
	}
}

func TestSeatPrice(t *testing.T) {
	if p := SeatPrice(100000, "standard"); p != 100000 {
		t.Fatalf("standard seat should keep base price, got %f", p)
	}
	if p := SeatPrice(100000, "vip"); p != 120000 {
		t.Fatalf("vip seat should cost base*1.2, got %f", p)
	}
	if p := SeatPrice(100000, "sleeper"); p != 150000 {
		t.Fatalf("sleeper seat should cost base*1.5, got %f", p)
	}
}

func TestCalculateSeatsTotal(t *testing.T) {
	schedule := model.BusSchedule{Price: 100000}
	seats := []model.ScheduleSeat{
		{SeatType: "standard"},
		{SeatType: "vip"},
		{SeatType: "sleeper"},
	}

	total := CalculateSeatsTotal(schedule, seats)
	if total != 370000 {
		t.Fatalf("expected total 370000, got %f", total)
	}
}
