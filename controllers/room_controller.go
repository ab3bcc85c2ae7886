package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"hotel-booking/models"
	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	RoomSvc  *services.RoomService
	AvailSvc *services.AvailabilityService
}

func NewRoomController(roomSvc *services.RoomService, availSvc *services.AvailabilityService) *RoomController {
	return &RoomController{RoomSvc: roomSvc, AvailSvc: availSvc}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// GetRooms (GET /api/rooms)
func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.RoomSvc.GetAll(c.Request.Context())
	if err != nil {
		log.Printf("❌ failed to list rooms: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve rooms")
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetFeaturedRooms (GET /api/rooms/featured)
func (ctrl *RoomController) GetFeaturedRooms(c *gin.Context) {
	rooms, err := ctrl.RoomSvc.GetFeatured(c.Request.Context())
	if err != nil {
		log.Printf("❌ failed to list featured rooms: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve featured rooms")
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoomByID (GET /api/rooms/:id)
func (ctrl *RoomController) GetRoomByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	room, err := ctrl.RoomSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		if err.Error() == "room_not_found" {
			utils.JSONError(c, http.StatusNotFound, fmt.Sprintf("room %d not found", id))
			return
		}
		log.Printf("❌ failed to load room %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve room")
		return
	}
	c.JSON(http.StatusOK, room)
}

// CheckAvailability (GET /api/rooms/:id/availability?check_in=&check_out=&guests=)
//
// The verdict gates the booking form client-side; the same checks run
// again on POST /api/bookings, so a stale answer here can't create a
// conflicting booking.
func (ctrl *RoomController) CheckAvailability(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	checkIn := c.Query("check_in")
	checkOut := c.Query("check_out")
	if checkIn == "" || checkOut == "" {
		utils.JSONError(c, http.StatusBadRequest, "check_in and check_out are required")
		return
	}

	guests := 1
	if raw := c.Query("guests"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			utils.JSONError(c, http.StatusBadRequest, "guests must be a positive integer")
			return
		}
		guests = n
	}

	candidate := services.CandidateStay{GuestCount: guests}
	// Malformed dates fall through as zero times; the engine answers
	// not-available rather than erroring.
	if t, err := utils.ParseDate(checkIn); err == nil {
		candidate.CheckInDate = t
	}
	if t, err := utils.ParseDate(checkOut); err == nil {
		candidate.CheckOutDate = t
	}

	verdict, pricing, _, err := ctrl.AvailSvc.CheckRoom(id, candidate, 0)
	if err != nil {
		if err.Error() == "room_not_found" {
			utils.JSONError(c, http.StatusNotFound, fmt.Sprintf("room %d not found", id))
			return
		}
		log.Printf("❌ availability check failed for room %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "availability check failed")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"verdict": verdict,
		"pricing": pricing,
	})
}

// CreateRoom (POST /api/rooms)
func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		log.Printf("❌ JSON BINDING ERROR (400): %v", err)
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	if room.RoomNumber == "" {
		utils.JSONError(c, http.StatusBadRequest, "roomNumber is required")
		return
	}
	if room.Price < 0 {
		utils.JSONError(c, http.StatusBadRequest, "pricePerNight must not be negative")
		return
	}

	if err := ctrl.RoomSvc.Create(c.Request.Context(), &room); err != nil {
		if utils.IsDuplicateEntry(err) {
			utils.JSONError(c, http.StatusConflict, fmt.Sprintf("room number %q already exists", room.RoomNumber))
			return
		}
		log.Printf("❌ DB ERROR: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to create room")
		return
	}

	c.JSON(http.StatusCreated, room)
}

// UpdateRoom (PATCH/PUT /api/rooms/:id)
func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	// Immutable columns stay immutable.
	delete(updates, "id")
	delete(updates, "created_at")
	delete(updates, "updated_at")
	delete(updates, "deleted_at")

	if err := ctrl.RoomSvc.Update(c.Request.Context(), id, updates); err != nil {
		if err.Error() == "room_not_found" {
			utils.JSONError(c, http.StatusNotFound, fmt.Sprintf("room %d not found", id))
			return
		}
		if utils.IsDuplicateEntry(err) {
			utils.JSONError(c, http.StatusConflict, "room number already exists")
			return
		}
		log.Printf("❌ update error for room %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "update failed")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "room updated"})
}

// DeleteRoom (DELETE /api/rooms/:id)
func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.RoomSvc.Delete(c.Request.Context(), id); err != nil {
		if err.Error() == "room_not_found" {
			utils.JSONError(c, http.StatusNotFound, fmt.Sprintf("room %d not found", id))
			return
		}
		log.Printf("❌ delete error for room %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete room")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "room deleted"})
}

// GetAdminRooms (GET /api/admin/rooms)
func (ctrl *RoomController) GetAdminRooms(c *gin.Context) {
	rooms, err := ctrl.RoomSvc.GetAllForAdmin(c.Request.Context())
	if err != nil {
		log.Printf("❌ failed to list admin rooms: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve rooms")
		return
	}
	c.JSON(http.StatusOK, rooms)
}
