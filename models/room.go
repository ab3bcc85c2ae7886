package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Room struct {
	gorm.Model

	// Nullable so rooms created without a type don't insert FK=0.
	RoomTypeID *uint  `json:"roomTypeId,omitempty" gorm:"column:room_type_id"`
	RoomNumber string `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`

	Type        string  `json:"type"`
	Description string  `json:"description" gorm:"type:text"`
	Price       float64 `json:"pricePerNight" gorm:"column:price"`
	MaxPeople   int     `json:"maxPeople" gorm:"column:max_people"`
	Rating      float64 `json:"rating"`
	IsAvailable bool    `json:"isAvailable" gorm:"column:is_available;default:true"`
	Featured    bool    `json:"featured" gorm:"default:false"`

	// Amenity names as a JSON array, e.g. ["wifi","breakfast"].
	Amenities datatypes.JSON `json:"amenities,omitempty" gorm:"column:amenities"`

	RoomType RoomType `json:"roomType,omitempty" gorm:"foreignKey:RoomTypeID"`
}
