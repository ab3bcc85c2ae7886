// services/availability_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"hotel-booking/models"
	"hotel-booking/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Verdict reasons, surfaced verbatim to the frontend.
const (
	ReasonRoomUnavailable = "room marked unavailable"
	ReasonCheckInPast     = "check-in date is in the past"
	ReasonCheckOutOrder   = "check-out must be after check-in"
	ReasonDatesOverlap    = "dates overlap an existing booking"
)

// BookingRange is one existing reservation as a half-open interval
// [Start, End): checkout day equal to another booking's check-in day does
// not conflict.
type BookingRange struct {
	Start time.Time
	End   time.Time
}

// CandidateStay is the stay a user proposes to book.
type CandidateStay struct {
	CheckInDate  time.Time
	CheckOutDate time.Time
	GuestCount   int
}

type PricingResult struct {
	Nights      int     `json:"nights"`
	NightlyRate float64 `json:"nightlyRate"`
	TotalPrice  float64 `json:"totalPrice"`
}

type AvailabilityVerdict struct {
	IsAvailable bool   `json:"isAvailable"`
	Reason      string `json:"reason,omitempty"`
}

// ComputeNights returns the whole calendar days between check-in and
// check-out, never negative. Zero times count as missing and yield 0.
func ComputeNights(checkIn, checkOut time.Time) int {
	if checkIn.IsZero() || checkOut.IsZero() {
		return 0
	}
	in := utils.NormalizeDate(checkIn)
	out := utils.NormalizeDate(checkOut)
	nights := int(out.Sub(in).Hours() / 24)
	if nights < 0 {
		return 0
	}
	return nights
}

// RangesOverlap reports whether two half-open date ranges share at least
// one night. Back-to-back ranges (aEnd == bStart or bEnd == aStart) do
// not overlap.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	as := utils.NormalizeDate(aStart)
	ae := utils.NormalizeDate(aEnd)
	bs := utils.NormalizeDate(bStart)
	be := utils.NormalizeDate(bEnd)
	return as.Before(be) && bs.Before(ae)
}

// EvaluateAvailability runs the bookability checks in order and stops at
// the first failure. It never panics; malformed input comes back as a
// not-available verdict, not an error.
func EvaluateAvailability(candidate CandidateStay, room models.Room, existing []BookingRange) AvailabilityVerdict {
	if !room.IsAvailable {
		return AvailabilityVerdict{Reason: ReasonRoomUnavailable}
	}

	checkIn := utils.NormalizeDate(candidate.CheckInDate)
	if checkIn.IsZero() || checkIn.Before(utils.Today()) {
		return AvailabilityVerdict{Reason: ReasonCheckInPast}
	}

	checkOut := utils.NormalizeDate(candidate.CheckOutDate)
	if checkOut.IsZero() || !checkOut.After(checkIn) {
		return AvailabilityVerdict{Reason: ReasonCheckOutOrder}
	}

	for _, r := range existing {
		if RangesOverlap(checkIn, checkOut, r.Start, r.End) {
			return AvailabilityVerdict{Reason: ReasonDatesOverlap}
		}
	}

	return AvailabilityVerdict{IsAvailable: true}
}

// ComputePricing multiplies nights by the nightly rate. The product is
// kept unrounded; formatting to two decimals happens at display time.
func ComputePricing(nights int, nightlyRate float64) PricingResult {
	if nights < 0 {
		nights = 0
	}
	return PricingResult{
		Nights:      nights,
		NightlyRate: nightlyRate,
		TotalPrice:  float64(nights) * nightlyRate,
	}
}

// AvailabilityService answers "can this room be booked for these dates,
// and what would it cost?" against the bookings stored in the DB.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// RangesForRoom loads the date ranges of every non-cancelled booking for
// a room. excludeBookingID (0 = none) lets edit flows skip the booking
// being edited so it doesn't conflict with itself. Records with missing
// dates are skipped: they can't occupy nights.
func (s *AvailabilityService) RangesForRoom(roomID uint, excludeBookingID uint) ([]BookingRange, error) {
	return rangesForRoom(s.DB, roomID, excludeBookingID)
}

func rangesForRoom(db *gorm.DB, roomID uint, excludeBookingID uint) ([]BookingRange, error) {
	q := db.Model(&models.Booking{}).
		Where("room_id = ? AND status <> ?", roomID, models.BookingStatusCancelled)
	if excludeBookingID != 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}

	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to load bookings for room %d: %w", roomID, err)
	}

	ranges := make([]BookingRange, 0, len(bookings))
	for _, b := range bookings {
		if b.CheckInDate == nil || b.CheckOutDate == nil {
			continue
		}
		ranges = append(ranges, BookingRange{
			Start: utils.NormalizeDate(*b.CheckInDate),
			End:   utils.NormalizeDate(*b.CheckOutDate),
		})
	}
	return ranges, nil
}

// CheckRoom evaluates a candidate stay against a room and its existing
// bookings and prices the stay at the room's current rate. The answer
// can go stale the moment it is returned; writes must use
// CheckRoomLocked inside a transaction instead.
func (s *AvailabilityService) CheckRoom(roomID uint, candidate CandidateStay, excludeBookingID uint) (AvailabilityVerdict, PricingResult, models.Room, error) {
	return checkRoom(s.DB, roomID, candidate, excludeBookingID, false)
}

// CheckRoomLocked runs the same evaluation inside tx while holding a
// row lock on the room, so two concurrent booking writes for the same
// room serialize and the second one sees the first one's range.
func (s *AvailabilityService) CheckRoomLocked(tx *gorm.DB, roomID uint, candidate CandidateStay, excludeBookingID uint) (AvailabilityVerdict, PricingResult, models.Room, error) {
	return checkRoom(tx, roomID, candidate, excludeBookingID, true)
}

// roomQuery adds a FOR UPDATE lock to the room lookup when asked.
func roomQuery(db *gorm.DB, lock bool) *gorm.DB {
	if lock {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

func checkRoom(db *gorm.DB, roomID uint, candidate CandidateStay, excludeBookingID uint, lock bool) (AvailabilityVerdict, PricingResult, models.Room, error) {
	var room models.Room
	if err := roomQuery(db, lock).First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AvailabilityVerdict{}, PricingResult{}, room, errors.New("room_not_found")
		}
		return AvailabilityVerdict{}, PricingResult{}, room, fmt.Errorf("failed to load room %d: %w", roomID, err)
	}

	ranges, err := rangesForRoom(db, roomID, excludeBookingID)
	if err != nil {
		return AvailabilityVerdict{}, PricingResult{}, room, err
	}

	verdict := EvaluateAvailability(candidate, room, ranges)
	nights := ComputeNights(candidate.CheckInDate, candidate.CheckOutDate)
	pricing := ComputePricing(nights, room.Price)
	return verdict, pricing, room, nil
}
