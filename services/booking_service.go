// services/booking_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"hotel-booking/cache"
	"hotel-booking/models"
	"hotel-booking/utils"

	"gorm.io/gorm"
)

// BookingService owns the booking lifecycle. Every write is gated by the
// availability engine; nights and total price are recomputed server-side
// and never trusted from the request.
type BookingService struct {
	DB           *gorm.DB
	Cache        *cache.Cache
	Availability *AvailabilityService
}

func NewBookingService(db *gorm.DB, c *cache.Cache, avail *AvailabilityService) *BookingService {
	return &BookingService{DB: db, Cache: c, Availability: avail}
}

// NotAvailableError carries the verdict reason so controllers can return
// it with a conflict status instead of a generic failure.
type NotAvailableError struct {
	Reason string
}

func (e *NotAvailableError) Error() string {
	return "room not available: " + e.Reason
}

func (s *BookingService) validateGuestCount(guestCount int, room models.Room) error {
	if guestCount < 1 {
		return fmt.Errorf("validation: guest count must be at least 1")
	}
	if room.MaxPeople > 0 && guestCount > room.MaxPeople {
		return fmt.Errorf("validation: guest count %d exceeds room capacity %d", guestCount, room.MaxPeople)
	}
	return nil
}

// CreateBooking books a room for a user. The candidate stay must pass the
// availability checks; the stored booking carries the computed nights,
// the room's rate at booking time and the resulting total. Check and
// insert run in one transaction holding the room row lock, so two
// concurrent requests for overlapping ranges can't both commit.
func (s *BookingService) CreateBooking(ctx context.Context, userID, roomID uint, checkIn, checkOut string, guestCount int) (*models.Booking, error) {
	ci, err := utils.ParseDate(checkIn)
	if err != nil {
		return nil, fmt.Errorf("validation: check_in: %w", err)
	}
	co, err := utils.ParseDate(checkOut)
	if err != nil {
		return nil, fmt.Errorf("validation: check_out: %w", err)
	}

	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user_not_found")
		}
		return nil, fmt.Errorf("db error checking user %d: %w", userID, err)
	}

	candidate := CandidateStay{CheckInDate: ci, CheckOutDate: co, GuestCount: guestCount}

	var booking *models.Booking
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		verdict, pricing, room, err := s.Availability.CheckRoomLocked(tx, roomID, candidate, 0)
		if err != nil {
			return err
		}
		if err := s.validateGuestCount(guestCount, room); err != nil {
			return err
		}
		if !verdict.IsAvailable {
			return &NotAvailableError{Reason: verdict.Reason}
		}

		booking = &models.Booking{
			UserID:       userID,
			RoomID:       roomID,
			CheckInDate:  &ci,
			CheckOutDate: &co,
			GuestCount:   guestCount,
			Nights:       pricing.Nights,
			NightlyRate:  pricing.NightlyRate,
			TotalPrice:   pricing.TotalPrice,
			Status:       models.BookingStatusConfirmed,
		}
		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.Cache.ClearKey(ctx, cache.UserBookingsKey(userID))
	return booking, nil
}

// GetForUser lists a user's bookings, newest first, memoized under the
// user_bookings_<id> key.
func (s *BookingService) GetForUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.Cache.Fetch(ctx, cache.UserBookingsKey(userID), 0, &bookings, func(ctx context.Context) (interface{}, error) {
		var fresh []models.Booking
		if err := s.DB.
			Preload("Room").
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&fresh).Error; err != nil {
			return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
		}
		return fresh, nil
	})
	return bookings, err
}

// GetAll lists every booking with its room and user, for the admin
// dashboard. Not cached: the admin screen wants live state.
func (s *BookingService) GetAll() ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.DB.
		Preload("Room").
		Preload("User").
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return bookings, nil
}

func (s *BookingService) getEditable(bookingID uint) (*models.Booking, error) {
	return getEditable(s.DB, bookingID)
}

func getEditable(db *gorm.DB, bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := db.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("booking_not_found")
		}
		return nil, fmt.Errorf("failed to load booking %d: %w", bookingID, err)
	}
	if booking.Status == models.BookingStatusCancelled || booking.Status == models.BookingStatusCompleted {
		return nil, errors.New("booking_not_editable")
	}
	return &booking, nil
}

// UpdateDates moves a booking to new dates (and optionally a new guest
// count, 0 = keep). The new range is re-checked against the room's other
// bookings; the booking being edited doesn't conflict with itself. Like
// CreateBooking, the re-check and the update share a transaction with
// the room row locked.
func (s *BookingService) UpdateDates(ctx context.Context, bookingID uint, checkIn, checkOut string, guestCount int) (*models.Booking, error) {
	ci, err := utils.ParseDate(checkIn)
	if err != nil {
		return nil, fmt.Errorf("validation: check_in: %w", err)
	}
	co, err := utils.ParseDate(checkOut)
	if err != nil {
		return nil, fmt.Errorf("validation: check_out: %w", err)
	}

	var booking *models.Booking
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		b, err := getEditable(tx, bookingID)
		if err != nil {
			return err
		}
		if guestCount == 0 {
			guestCount = b.GuestCount
		}

		candidate := CandidateStay{CheckInDate: ci, CheckOutDate: co, GuestCount: guestCount}
		verdict, pricing, room, err := s.Availability.CheckRoomLocked(tx, b.RoomID, candidate, b.ID)
		if err != nil {
			return err
		}
		if err := s.validateGuestCount(guestCount, room); err != nil {
			return err
		}
		if !verdict.IsAvailable {
			return &NotAvailableError{Reason: verdict.Reason}
		}

		if err := tx.Model(b).Updates(map[string]interface{}{
			"check_in_date":  ci,
			"check_out_date": co,
			"guest_count":    guestCount,
			"nights":         pricing.Nights,
			"nightly_rate":   pricing.NightlyRate,
			"total_price":    pricing.TotalPrice,
		}).Error; err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}
		booking = b
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.Cache.ClearKey(ctx, cache.UserBookingsKey(booking.UserID))
	return booking, nil
}

// Cancel marks a booking Cancelled. Its date range stops counting against
// the room's availability from this point on.
func (s *BookingService) Cancel(ctx context.Context, bookingID uint) (*models.Booking, error) {
	booking, err := s.getEditable(bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(booking).Update("status", models.BookingStatusCancelled).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.Cache.ClearKey(ctx, cache.UserBookingsKey(booking.UserID))
	return booking, nil
}

// Delete removes a booking record entirely (admin cleanup).
func (s *BookingService) Delete(ctx context.Context, bookingID uint) error {
	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("booking_not_found")
		}
		return fmt.Errorf("failed to load booking %d: %w", bookingID, err)
	}

	if err := s.DB.Delete(&booking).Error; err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.Cache.ClearKey(ctx, cache.UserBookingsKey(booking.UserID))
	return nil
}
