package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking statuses as exchanged with the frontend.
const (
	BookingStatusPending   = "Pending"
	BookingStatusConfirmed = "Confirmed"
	BookingStatusCancelled = "Cancelled"
	BookingStatusCompleted = "Completed"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID uint `gorm:"index;column:user_id" json:"userId"`
	RoomID uint `gorm:"index;column:room_id" json:"roomId"`

	CheckInDate  *time.Time `gorm:"column:check_in_date" json:"checkInDate,omitempty"`
	CheckOutDate *time.Time `gorm:"column:check_out_date" json:"checkOutDate,omitempty"`

	GuestCount  int     `gorm:"column:guest_count;default:1" json:"guestCount"`
	Nights      int     `gorm:"column:nights" json:"nights"`
	NightlyRate float64 `gorm:"column:nightly_rate" json:"nightlyRate"`
	TotalPrice  float64 `gorm:"column:total_price" json:"totalPrice"`

	Status string `gorm:"column:status;size:64" json:"status"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	User User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}
