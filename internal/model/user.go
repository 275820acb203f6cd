package model

import (
	"errors"
	"strings"
	"time"
)

// Role identifies which area of the back office an account may access
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleSeller Role = "seller"
)

// Valid reports whether the value is one of the known roles
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSeller
}

// User status values. Invited accounts have not set their own password
// yet; suspended accounts cannot log in.
const (
	StatusActive    = "active"
	StatusInvited   = "invited"
	StatusSuspended = "suspended"
)

// User represents an admin or seller account
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"type:varchar(100);not null;uniqueIndex:uq_users_email,where:is_deleted = false"`
	Password  string    `json:"-" gorm:"type:varchar(255)"`
	FullName  string    `json:"full_name" gorm:"type:varchar(255)"`
	Role      Role      `json:"role" gorm:"type:varchar(20);not null;default:'seller'"`
	Status    string    `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	IsDeleted bool      `json:"is_deleted" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Normalize trims user-entered fields before validation and storage
func (u *User) Normalize() {
	u.Email = strings.TrimSpace(u.Email)
	u.FullName = strings.TrimSpace(u.FullName)
}

// Validate checks required fields and the role enum
func (u *User) Validate() error {
	if u.Email == "" {
		return errors.New("email is required")
	}
	if !u.Role.Valid() {
		return errors.New("role must be admin or seller")
	}
	return nil
}

// CanLogin reports whether the account may sign in. Suspended and
// soft-deleted accounts are turned away; an invited account signs in
// with its temporary password until it sets its own.
func (u *User) CanLogin() bool {
	return !u.IsDeleted && u.Status != StatusSuspended
}
