package models

import "time"

type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email" gorm:"uniqueIndex"`
	Password    string    `json:"-"`
	PhoneNumber string    `json:"phoneNumber"`
	Role        int       `json:"role" gorm:"default:0"` // 0: khách, 1: super admin, 2: chủ khách sạn
	Status      int       `json:"status" gorm:"default:1"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
