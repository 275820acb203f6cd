package model

import (
	"errors"
	"strings"
	"time"
)

// Brand represents a clothing brand managed from the back office
type Brand struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null;uniqueIndex:uq_brands_name,where:is_deleted = false"`
	Description string    `json:"description" gorm:"type:text"`
	LogoURL     *string   `json:"logo_url,omitempty" gorm:"type:varchar(512)"`
	IsDeleted   bool      `json:"is_deleted" gorm:"not null;default:false;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Normalize trims user-entered fields before validation and storage
func (b *Brand) Normalize() {
	b.Name = strings.TrimSpace(b.Name)
	b.Description = strings.TrimSpace(b.Description)
}

// Validate checks required fields
func (b *Brand) Validate() error {
	if b.Name == "" {
		return errors.New("name is required")
	}
	return nil
}
