package model

import "testing"

func TestValidHexCode(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"#FFF", true},
		{"#ffffff", true},
		{"#1A2b3C", true},
		{"FFFFFF", false},
		{"#GGGGGG", false},
		{"#12345", false},
		{"#", false},
		{"", false},
		{"#FFFF", false},
	}
	for _, tt := range tests {
		if got := ValidHexCode(tt.input); got != tt.want {
			t.Errorf("ValidHexCode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestColorValidate(t *testing.T) {
	valid := Color{Name: "Red", HexCode: "#FF0000", Category: ColorCategoryPrimary}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid color, got %v", err)
	}

	badHex := Color{Name: "Red", HexCode: "red", Category: ColorCategoryPrimary}
	if err := badHex.Validate(); err == nil {
		t.Error("expected error for malformed hex code")
	}

	badCategory := Color{Name: "Red", HexCode: "#F00", Category: "vivid"}
	if err := badCategory.Validate(); err == nil {
		t.Error("expected error for unknown category")
	}

	noName := Color{HexCode: "#F00", Category: ColorCategoryPrimary}
	if err := noName.Validate(); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestSizeValidate(t *testing.T) {
	alpha := Size{Label: "XL", SizeType: SizeTypeAlpha, Category: SizeCategoryTops}
	if err := alpha.Validate(); err != nil {
		t.Errorf("expected alpha size without numeric value to be valid, got %v", err)
	}

	// Numeric sizes must carry a sortable value
	numeric := Size{Label: "38", SizeType: SizeTypeNumeric, Category: SizeCategoryShoes}
	if err := numeric.Validate(); err == nil {
		t.Error("expected error for numeric size without numeric_value")
	}
	v := 38.0
	numeric.NumericValue = &v
	if err := numeric.Validate(); err != nil {
		t.Errorf("expected numeric size with value to be valid, got %v", err)
	}

	badType := Size{Label: "XL", SizeType: "letters", Category: SizeCategoryTops}
	if err := badType.Validate(); err == nil {
		t.Error("expected error for unknown size type")
	}

	badCategory := Size{Label: "XL", SizeType: SizeTypeAlpha, Category: "hats"}
	if err := badCategory.Validate(); err == nil {
		t.Error("expected error for unknown size category")
	}
}

func TestNormalizeTrimsWhitespace(t *testing.T) {
	b := Brand{Name: "  Nike ", Description: " swoosh "}
	b.Normalize()
	if b.Name != "Nike" || b.Description != "swoosh" {
		t.Errorf("brand not trimmed: %+v", b)
	}

	s := Subcategory{Name: "\tSneakers\n", CategoryID: 1}
	s.Normalize()
	if s.Name != "Sneakers" {
		t.Errorf("subcategory not trimmed: %q", s.Name)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("expected valid subcategory, got %v", err)
	}

	missing := Subcategory{Name: "Sneakers"}
	if err := missing.Validate(); err == nil {
		t.Error("expected error for subcategory without parent category")
	}
}

func TestUserCanLogin(t *testing.T) {
	tests := []struct {
		name string
		user User
		want bool
	}{
		{"active", User{Status: StatusActive}, true},
		{"invited", User{Status: StatusInvited}, true},
		{"suspended", User{Status: StatusSuspended}, false},
		{"deleted", User{Status: StatusActive, IsDeleted: true}, false},
		{"deleted invited", User{Status: StatusInvited, IsDeleted: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.CanLogin(); got != tt.want {
				t.Errorf("CanLogin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserValidate(t *testing.T) {
	u := User{Email: "seller@example.com", Role: RoleSeller}
	if err := u.Validate(); err != nil {
		t.Errorf("expected valid user, got %v", err)
	}

	badRole := User{Email: "x@example.com", Role: "owner"}
	if err := badRole.Validate(); err == nil {
		t.Error("expected error for unknown role")
	}
}
