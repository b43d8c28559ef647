package domain

import (
	"context"
	"fmt"
	"time"
)

// Role is a closed two-value enumeration. There is no role-change flow;
// the value is fixed when the user row is created.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("unrecognized role %q: %w", s, ErrInvalidInput)
}

// User mirrors an identity provisioned with the external provider.
// Credentials never live here; ExternalID is the provider's reference.
type User struct {
	UserID     int       `gorm:"primaryKey;autoIncrement" json:"user_id"`
	ExternalID string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"external_id"`
	Email      string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`
	Name       string    `gorm:"type:varchar(150);not null" json:"name"`
	Role       Role      `gorm:"type:role_enum;not null" json:"role"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type UserRepo interface {
	FindUserByExternalID(ctx context.Context, externalID string) (*User, error)
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	CreateUser(ctx context.Context, user *User) error
	GetAllUsers(ctx context.Context) (*[]User, error)
}
