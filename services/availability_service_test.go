package services

import (
	"testing"
	"time"

	"hotel-booking/models"
	"hotel-booking/utils"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{"two nights", date(2025, 6, 1), date(2025, 6, 3), 2},
		{"one night", date(2025, 6, 1), date(2025, 6, 2), 1},
		{"same day", date(2025, 6, 1), date(2025, 6, 1), 0},
		{"reversed", date(2025, 6, 3), date(2025, 6, 1), 0},
		{"zero check-in", time.Time{}, date(2025, 6, 3), 0},
		{"zero check-out", date(2025, 6, 1), time.Time{}, 0},
		{
			// Intraday noise must not shift the calendar-day count.
			"time of day ignored",
			time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 3, 1, 0, 0, 0, time.UTC),
			2,
		},
		{"month boundary", date(2025, 6, 28), date(2025, 7, 2), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeNights(tt.checkIn, tt.checkOut); got != tt.want {
				t.Errorf("ComputeNights(%v, %v) = %d, want %d", tt.checkIn, tt.checkOut, got, tt.want)
			}
		})
	}
}

func TestRangesOverlap(t *testing.T) {
	tests := []struct {
		name         string
		aStart, aEnd time.Time
		bStart, bEnd time.Time
		want         bool
	}{
		{"disjoint before", date(2025, 7, 1), date(2025, 7, 5), date(2025, 7, 10), date(2025, 7, 15), false},
		{"back to back checkout/checkin", date(2025, 7, 5), date(2025, 7, 10), date(2025, 7, 10), date(2025, 7, 15), false},
		{"back to back other side", date(2025, 7, 10), date(2025, 7, 15), date(2025, 7, 5), date(2025, 7, 10), false},
		{"one night shared", date(2025, 7, 5), date(2025, 7, 11), date(2025, 7, 10), date(2025, 7, 15), true},
		{"contained", date(2025, 7, 12), date(2025, 7, 14), date(2025, 7, 10), date(2025, 7, 15), true},
		{"containing", date(2025, 7, 8), date(2025, 7, 20), date(2025, 7, 10), date(2025, 7, 15), true},
		{"identical", date(2025, 7, 10), date(2025, 7, 15), date(2025, 7, 10), date(2025, 7, 15), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RangesOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			if got != tt.want {
				t.Errorf("RangesOverlap = %v, want %v", got, tt.want)
			}
			// Overlap is symmetric under swapping the two ranges.
			swapped := RangesOverlap(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd)
			if swapped != got {
				t.Errorf("RangesOverlap not symmetric: %v vs %v", got, swapped)
			}
		})
	}
}

func TestComputePricing(t *testing.T) {
	if got := ComputePricing(0, 999.99); got.TotalPrice != 0 {
		t.Errorf("zero nights should cost 0, got %v", got.TotalPrice)
	}
	if got := ComputePricing(-2, 100); got.Nights != 0 || got.TotalPrice != 0 {
		t.Errorf("negative nights should clamp to 0, got %+v", got)
	}

	got := ComputePricing(3, 100)
	if got.Nights != 3 || got.NightlyRate != 100 || got.TotalPrice != 300 {
		t.Errorf("ComputePricing(3, 100) = %+v", got)
	}

	// The product stays unrounded; no premature rounding to 2 decimals.
	got = ComputePricing(7, 33.333)
	if got.TotalPrice != 7*33.333 {
		t.Errorf("expected exact product %v, got %v", 7*33.333, got.TotalPrice)
	}
}

func TestEvaluateAvailability(t *testing.T) {
	today := utils.Today()
	room := models.Room{IsAvailable: true, Price: 100, MaxPeople: 4}

	t.Run("room flag wins first", func(t *testing.T) {
		closed := models.Room{IsAvailable: false}
		// Dates are also bad; the room flag must still be the reason.
		v := EvaluateAvailability(CandidateStay{}, closed, nil)
		if v.IsAvailable || v.Reason != ReasonRoomUnavailable {
			t.Errorf("got %+v, want reason %q", v, ReasonRoomUnavailable)
		}
	})

	t.Run("check-in in the past", func(t *testing.T) {
		v := EvaluateAvailability(CandidateStay{
			CheckInDate:  today.AddDate(0, 0, -1),
			CheckOutDate: today.AddDate(0, 0, 2),
			GuestCount:   2,
		}, room, nil)
		if v.IsAvailable || v.Reason != ReasonCheckInPast {
			t.Errorf("got %+v, want reason %q", v, ReasonCheckInPast)
		}
	})

	t.Run("missing check-in counts as past", func(t *testing.T) {
		v := EvaluateAvailability(CandidateStay{CheckOutDate: today.AddDate(0, 0, 2)}, room, nil)
		if v.IsAvailable || v.Reason != ReasonCheckInPast {
			t.Errorf("got %+v, want reason %q", v, ReasonCheckInPast)
		}
	})

	t.Run("check-in today is allowed", func(t *testing.T) {
		v := EvaluateAvailability(CandidateStay{
			CheckInDate:  today,
			CheckOutDate: today.AddDate(0, 0, 1),
			GuestCount:   1,
		}, room, nil)
		if !v.IsAvailable {
			t.Errorf("same-day check-in should be bookable, got %+v", v)
		}
	})

	t.Run("checkout not after checkin", func(t *testing.T) {
		v := EvaluateAvailability(CandidateStay{
			CheckInDate:  today.AddDate(0, 0, 5),
			CheckOutDate: today.AddDate(0, 0, 5),
			GuestCount:   2,
		}, room, nil)
		if v.IsAvailable || v.Reason != ReasonCheckOutOrder {
			t.Errorf("got %+v, want reason %q", v, ReasonCheckOutOrder)
		}
	})

	t.Run("overlap with existing booking", func(t *testing.T) {
		existing := []BookingRange{{Start: today.AddDate(0, 0, 10), End: today.AddDate(0, 0, 15)}}
		v := EvaluateAvailability(CandidateStay{
			CheckInDate:  today.AddDate(0, 0, 12),
			CheckOutDate: today.AddDate(0, 0, 14),
			GuestCount:   2,
		}, room, existing)
		if v.IsAvailable || v.Reason != ReasonDatesOverlap {
			t.Errorf("got %+v, want reason %q", v, ReasonDatesOverlap)
		}
	})

	t.Run("available", func(t *testing.T) {
		existing := []BookingRange{{Start: today.AddDate(0, 0, 10), End: today.AddDate(0, 0, 15)}}
		v := EvaluateAvailability(CandidateStay{
			CheckInDate:  today.AddDate(0, 0, 15),
			CheckOutDate: today.AddDate(0, 0, 18),
			GuestCount:   2,
		}, room, existing)
		if !v.IsAvailable || v.Reason != "" {
			t.Errorf("got %+v, want available", v)
		}
	})
}

// TestBookingScenario walks the full flow for a $100/night room with one
// confirmed booking at days +10..+15 from today.
func TestBookingScenario(t *testing.T) {
	base := utils.Today()
	room := models.Room{IsAvailable: true, Price: 100, MaxPeople: 4}
	existing := []BookingRange{{Start: base.AddDate(0, 0, 10), End: base.AddDate(0, 0, 15)}}

	// Candidate inside the existing stay: conflict.
	v := EvaluateAvailability(CandidateStay{
		CheckInDate:  base.AddDate(0, 0, 12),
		CheckOutDate: base.AddDate(0, 0, 14),
		GuestCount:   2,
	}, room, existing)
	if v.IsAvailable {
		t.Fatalf("overlapping candidate should not be available")
	}

	// Candidate starting on the existing checkout day: bookable, 3 nights, $300.
	in := base.AddDate(0, 0, 15)
	out := base.AddDate(0, 0, 18)
	v = EvaluateAvailability(CandidateStay{CheckInDate: in, CheckOutDate: out, GuestCount: 2}, room, existing)
	if !v.IsAvailable {
		t.Fatalf("back-to-back candidate should be available, got %+v", v)
	}
	pricing := ComputePricing(ComputeNights(in, out), room.Price)
	if pricing.Nights != 3 || pricing.TotalPrice != 300 {
		t.Errorf("got %+v, want 3 nights / 300", pricing)
	}

	// Candidate ending on the existing check-in day: bookable, 5 nights, $500.
	in = base.AddDate(0, 0, 5)
	out = base.AddDate(0, 0, 10)
	v = EvaluateAvailability(CandidateStay{CheckInDate: in, CheckOutDate: out, GuestCount: 2}, room, existing)
	if !v.IsAvailable {
		t.Fatalf("touching candidate should be available, got %+v", v)
	}
	pricing = ComputePricing(ComputeNights(in, out), room.Price)
	if pricing.Nights != 5 || pricing.TotalPrice != 500 {
		t.Errorf("got %+v, want 5 nights / 500", pricing)
	}
}
