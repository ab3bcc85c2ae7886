// controllers/booking_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateBookingRequest struct {
	UserID     uint   `json:"userId" binding:"required"`
	RoomID     uint   `json:"roomId" binding:"required"`
	CheckIn    string `json:"checkInDate" binding:"required"`
	CheckOut   string `json:"checkOutDate" binding:"required"`
	GuestCount int    `json:"guestCount"`
}

type UpdateBookingRequest struct {
	CheckIn    string `json:"checkInDate" binding:"required"`
	CheckOut   string `json:"checkOutDate" binding:"required"`
	GuestCount int    `json:"guestCount"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

// bookingError maps service errors to HTTP responses. Validation
// failures are 400, missing records 404, availability conflicts 409.
func bookingError(c *gin.Context, err error) {
	var notAvailable *services.NotAvailableError
	switch {
	case errors.As(err, &notAvailable):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error":   "room not available",
			"reason":  notAvailable.Reason,
		})
	case strings.HasPrefix(err.Error(), "validation:"):
		utils.JSONError(c, http.StatusBadRequest, strings.TrimSpace(strings.TrimPrefix(err.Error(), "validation:")))
	case err.Error() == "booking_not_found" || err.Error() == "room_not_found" || err.Error() == "user_not_found":
		utils.JSONError(c, http.StatusNotFound, err.Error())
	case err.Error() == "booking_not_editable":
		utils.JSONError(c, http.StatusConflict, "booking can no longer be modified")
	default:
		log.Printf("❌ booking error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "internal error")
	}
}

// CreateBooking (POST /api/bookings)
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.GuestCount == 0 {
		req.GuestCount = 1
	}

	booking, err := ctrl.BookingSvc.CreateBooking(
		c.Request.Context(), req.UserID, req.RoomID, req.CheckIn, req.CheckOut, req.GuestCount)
	if err != nil {
		bookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// GetBookings (GET /api/bookings) — admin listing.
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	bookings, err := ctrl.BookingSvc.GetAll()
	if err != nil {
		log.Printf("❌ failed to list bookings: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetUserBookings (GET /api/users/:id/bookings)
func (ctrl *BookingController) GetUserBookings(c *gin.Context) {
	userID, ok := parseIDParam(c)
	if !ok {
		return
	}

	bookings, err := ctrl.BookingSvc.GetForUser(c.Request.Context(), userID)
	if err != nil {
		log.Printf("❌ failed to list bookings for user %d: %v", userID, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// UpdateBooking (PATCH /api/bookings/:id) — edit dates / guest count.
func (ctrl *BookingController) UpdateBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	booking, err := ctrl.BookingSvc.UpdateDates(c.Request.Context(), id, req.CheckIn, req.CheckOut, req.GuestCount)
	if err != nil {
		bookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// CancelBooking (POST /api/bookings/:id/cancel)
func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	booking, err := ctrl.BookingSvc.Cancel(c.Request.Context(), id)
	if err != nil {
		bookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// DeleteBooking (DELETE /api/bookings/:id)
func (ctrl *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.BookingSvc.Delete(c.Request.Context(), id); err != nil {
		bookingError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "booking deleted"})
}
