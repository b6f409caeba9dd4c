package models

import (
	"time"

	"gorm.io/gorm"
)

type Client struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	CompanyName string         `gorm:"size:255;not null" json:"companyName"`
	Address     string         `gorm:"type:text" json:"address"` // newline-delimited lines
	Email       string         `gorm:"size:255" json:"email"`
}

// TableName overrides the table name
func (Client) TableName() string {
	return "clients"
}
