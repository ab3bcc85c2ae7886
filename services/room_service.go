// services/room_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"hotel-booking/cache"
	"hotel-booking/models"

	"gorm.io/gorm"
)

// RoomService serves room reads through the cache and clears the
// affected keys after every mutation.
type RoomService struct {
	DB    *gorm.DB
	Cache *cache.Cache
}

func NewRoomService(db *gorm.DB, c *cache.Cache) *RoomService {
	return &RoomService{DB: db, Cache: c}
}

// GetAll returns every room for the public listing, memoized under
// all_rooms.
func (s *RoomService) GetAll(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	err := s.Cache.Fetch(ctx, cache.KeyAllRooms, 0, &rooms, func(ctx context.Context) (interface{}, error) {
		var fresh []models.Room
		if err := s.DB.Preload("RoomType").Find(&fresh).Error; err != nil {
			return nil, fmt.Errorf("failed to retrieve rooms: %w", err)
		}
		return fresh, nil
	})
	return rooms, err
}

// GetFeatured returns the rooms flagged for the landing page, memoized
// under featured_hotels.
func (s *RoomService) GetFeatured(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	err := s.Cache.Fetch(ctx, cache.KeyFeaturedHotels, 0, &rooms, func(ctx context.Context) (interface{}, error) {
		var fresh []models.Room
		if err := s.DB.Where("featured = ?", true).Find(&fresh).Error; err != nil {
			return nil, fmt.Errorf("failed to retrieve featured rooms: %w", err)
		}
		return fresh, nil
	})
	return rooms, err
}

// GetAllForAdmin mirrors GetAll under the admin_rooms key so the admin
// screen's invalidation doesn't evict the public listing (and vice versa).
func (s *RoomService) GetAllForAdmin(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	err := s.Cache.Fetch(ctx, cache.KeyAdminRooms, 0, &rooms, func(ctx context.Context) (interface{}, error) {
		var fresh []models.Room
		if err := s.DB.Preload("RoomType").Order("room_number").Find(&fresh).Error; err != nil {
			return nil, fmt.Errorf("failed to retrieve rooms: %w", err)
		}
		return fresh, nil
	})
	return rooms, err
}

// GetByID returns one room, memoized under room_<id>.
func (s *RoomService) GetByID(ctx context.Context, id uint) (models.Room, error) {
	var room models.Room
	err := s.Cache.Fetch(ctx, cache.RoomKey(id), 0, &room, func(ctx context.Context) (interface{}, error) {
		var fresh models.Room
		if err := s.DB.Preload("RoomType").First(&fresh, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("room_not_found")
			}
			return nil, fmt.Errorf("failed to retrieve room %d: %w", id, err)
		}
		return fresh, nil
	})
	return room, err
}

func (s *RoomService) Create(ctx context.Context, room *models.Room) error {
	if err := s.DB.Create(room).Error; err != nil {
		return err
	}
	s.clearListKeys(ctx)
	return nil
}

// Update applies the given column updates to a room. Callers strip
// immutable fields before handing the map over.
func (s *RoomService) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	result := s.DB.Model(&models.Room{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("room_not_found")
	}
	s.clearListKeys(ctx)
	s.Cache.ClearKey(ctx, cache.RoomKey(id))
	return nil
}

func (s *RoomService) Delete(ctx context.Context, id uint) error {
	result := s.DB.Delete(&models.Room{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("room_not_found")
	}
	s.clearListKeys(ctx)
	s.Cache.ClearKey(ctx, cache.RoomKey(id))
	return nil
}

func (s *RoomService) clearListKeys(ctx context.Context) {
	s.Cache.ClearKey(ctx, cache.KeyAllRooms)
	s.Cache.ClearKey(ctx, cache.KeyFeaturedHotels)
	s.Cache.ClearKey(ctx, cache.KeyAdminRooms)
}
