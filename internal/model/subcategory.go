package model

import (
	"errors"
	"strings"
	"time"
)

// Subcategory represents a subcategory scoped to a parent category.
// Names are unique within their parent category, not globally.
type Subcategory struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"type:varchar(255);not null;uniqueIndex:uq_subcategories_name_category,where:is_deleted = false"`
	CategoryID uint      `json:"category_id" gorm:"not null;index;uniqueIndex:uq_subcategories_name_category"`
	IsDeleted  bool      `json:"is_deleted" gorm:"not null;default:false;index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Normalize trims user-entered fields before validation and storage
func (s *Subcategory) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
}

// Validate checks required fields
func (s *Subcategory) Validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if s.CategoryID == 0 {
		return errors.New("category_id is required")
	}
	return nil
}
