package model

import (
	"errors"
	"strings"
	"time"
)

// SizeType describes how a size label is expressed
type SizeType string

const (
	SizeTypeAlpha   SizeType = "alpha"
	SizeTypeNumeric SizeType = "numeric"
	SizeTypeCustom  SizeType = "custom"
)

// Valid reports whether the value is one of the known size types
func (t SizeType) Valid() bool {
	switch t {
	case SizeTypeAlpha, SizeTypeNumeric, SizeTypeCustom:
		return true
	}
	return false
}

// SizeCategory groups sizes by garment kind and scopes label uniqueness
type SizeCategory string

const (
	SizeCategoryTops        SizeCategory = "tops"
	SizeCategoryBottoms     SizeCategory = "bottoms"
	SizeCategoryDresses     SizeCategory = "dresses"
	SizeCategoryShoes       SizeCategory = "shoes"
	SizeCategoryAccessories SizeCategory = "accessories"
	SizeCategoryUnisex      SizeCategory = "unisex"
)

// Valid reports whether the value is one of the known size categories
func (c SizeCategory) Valid() bool {
	switch c {
	case SizeCategoryTops, SizeCategoryBottoms, SizeCategoryDresses,
		SizeCategoryShoes, SizeCategoryAccessories, SizeCategoryUnisex:
		return true
	}
	return false
}

// Size represents a selectable garment size. Labels are unique within
// a size category, so "38" may exist for both shoes and dresses.
type Size struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	Label        string       `json:"label" gorm:"type:varchar(50);not null;uniqueIndex:uq_sizes_label_category,where:is_deleted = false"`
	SizeType     SizeType     `json:"size_type" gorm:"type:varchar(20);not null"`
	Category     SizeCategory `json:"category" gorm:"type:varchar(20);not null;uniqueIndex:uq_sizes_label_category;index:idx_sizes_category_order,priority:1"`
	NumericValue *float64     `json:"numeric_value,omitempty"`
	DisplayOrder int          `json:"display_order" gorm:"not null;default:0;index:idx_sizes_category_order,priority:2"`
	Description  string       `json:"description" gorm:"type:text"`
	IsActive     bool         `json:"is_active" gorm:"not null;default:true"`
	IsDeleted    bool         `json:"is_deleted" gorm:"not null;default:false;index"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Normalize trims user-entered fields before validation and storage
func (s *Size) Normalize() {
	s.Label = strings.TrimSpace(s.Label)
	s.Description = strings.TrimSpace(s.Description)
}

// Validate checks required fields, the enums, and that numeric sizes
// carry a numeric value
func (s *Size) Validate() error {
	if s.Label == "" {
		return errors.New("label is required")
	}
	if !s.SizeType.Valid() {
		return errors.New("size_type must be one of alpha, numeric, custom")
	}
	if !s.Category.Valid() {
		return errors.New("category must be one of tops, bottoms, dresses, shoes, accessories, unisex")
	}
	if s.SizeType == SizeTypeNumeric && s.NumericValue == nil {
		return errors.New("numeric_value is required when size_type is numeric")
	}
	return nil
}
