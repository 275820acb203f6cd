package model

import (
	"errors"
	"strings"
	"time"
)

// Category represents a top-level product category
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null;uniqueIndex:uq_categories_name,where:is_deleted = false"`
	IsDeleted bool      `json:"is_deleted" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Normalize trims user-entered fields before validation and storage
func (c *Category) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
}

// Validate checks required fields
func (c *Category) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	return nil
}
