package cache

import "fmt"

// Cache keys owned by the API handlers. Each screen-facing read uses one
// of these and its mutating counterpart clears it.
const (
	KeyFeaturedHotels = "featured_hotels"
	KeyAllRooms       = "all_rooms"
	KeyAdminRooms     = "admin_rooms"
	KeyAdminUsers     = "admin_users"
)

func RoomKey(roomID uint) string {
	return fmt.Sprintf("room_%d", roomID)
}

func UserBookingsKey(userID uint) string {
	return fmt.Sprintf("user_bookings_%d", userID)
}
