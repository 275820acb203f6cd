package model

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// ColorCategory groups colors for display and scopes their name uniqueness
type ColorCategory string

const (
	ColorCategoryPrimary  ColorCategory = "primary"
	ColorCategoryNeutral  ColorCategory = "neutral"
	ColorCategoryPastel   ColorCategory = "pastel"
	ColorCategoryMetallic ColorCategory = "metallic"
	ColorCategoryPattern  ColorCategory = "pattern"
	ColorCategoryCustom   ColorCategory = "custom"
)

// Valid reports whether the value is one of the known color categories
func (c ColorCategory) Valid() bool {
	switch c {
	case ColorCategoryPrimary, ColorCategoryNeutral, ColorCategoryPastel,
		ColorCategoryMetallic, ColorCategoryPattern, ColorCategoryCustom:
		return true
	}
	return false
}

// hexCodePattern accepts #RGB and #RRGGBB
var hexCodePattern = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// ValidHexCode reports whether s is a well-formed CSS hex color
func ValidHexCode(s string) bool {
	return hexCodePattern.MatchString(s)
}

// Color represents a selectable product color. Names are unique within
// a color category, so "Red" may exist as both a primary and a pastel.
type Color struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	Name         string        `json:"name" gorm:"type:varchar(100);not null;uniqueIndex:uq_colors_name_category,where:is_deleted = false"`
	HexCode      string        `json:"hex_code" gorm:"type:varchar(7);not null"`
	Category     ColorCategory `json:"category" gorm:"type:varchar(20);not null;uniqueIndex:uq_colors_name_category;index:idx_colors_category_order,priority:1"`
	DisplayOrder int           `json:"display_order" gorm:"not null;default:0;index:idx_colors_category_order,priority:2"`
	Description  string        `json:"description" gorm:"type:text"`
	IsActive     bool          `json:"is_active" gorm:"not null;default:true"`
	IsDeleted    bool          `json:"is_deleted" gorm:"not null;default:false;index"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Normalize trims user-entered fields before validation and storage
func (c *Color) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.HexCode = strings.TrimSpace(c.HexCode)
	c.Description = strings.TrimSpace(c.Description)
}

// Validate checks required fields, the hex code format and the category enum
func (c *Color) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if !ValidHexCode(c.HexCode) {
		return errors.New("hex_code must match #RGB or #RRGGBB")
	}
	if !c.Category.Valid() {
		return errors.New("category must be one of primary, neutral, pastel, metallic, pattern, custom")
	}
	return nil
}
