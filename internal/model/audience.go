package model

import (
	"errors"
	"strings"
	"time"
)

// Audience represents a target audience segment (women, men, kids, ...)
type Audience struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null;uniqueIndex:uq_audiences_name,where:is_deleted = false"`
	IsDeleted bool      `json:"is_deleted" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Normalize trims user-entered fields before validation and storage
func (a *Audience) Normalize() {
	a.Name = strings.TrimSpace(a.Name)
}

// Validate checks required fields
func (a *Audience) Validate() error {
	if a.Name == "" {
		return errors.New("name is required")
	}
	return nil
}
