package models

import (
	"fmt"
	"time"
)

type UserRole string

const (
	RoleOwner      UserRole = "owner"
	RoleAccountant UserRole = "accountant"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleOwner, RoleAccountant:
		return true
	}
	return false
}

func ParseUserRole(s string) (UserRole, error) {
	role := UserRole(s)
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return role, nil
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	PasswordHash string    `gorm:"column:password;not null" json:"-"`
	Role         UserRole  `gorm:"type:varchar(20);not null;check:chk_users_role,role IN ('owner','accountant')" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserSummary is what leaves the service after login or /api/me.
type UserSummary struct {
	ID       uint     `json:"id"`
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Role: u.Role}
}
