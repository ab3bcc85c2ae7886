package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	FullName string `json:"fullName"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(191)"`
	Password string `json:"-"`
	IsAdmin  bool   `json:"isAdmin" gorm:"column:is_admin;default:false"`
}
