package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/management360/backend/internal/domain/identity"
)

// RegisterAdminInput contains input for admin registration. A fresh
// apartment code is generated and the building is bootstrapped with
// FlatCount flats and a default parking lot.
type RegisterAdminInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
	FlatCount   int
}

// RegisterResidentInput contains input for resident registration against
// an existing apartment code.
type RegisterResidentInput struct {
	Email         string
	Password      string
	FirstName     string
	LastName      string
	PhoneNumber   string
	ApartmentCode string
	FlatNumber    string
}

// LoginInput contains login credentials
type LoginInput struct {
	Email    string
	Password string
}

// UserInfo is the user payload returned to API clients
type UserInfo struct {
	ID            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	FullName      string     `json:"fullName"`
	PhoneNumber   string     `json:"phoneNumber,omitempty"`
	Role          string     `json:"role"`
	ApartmentCode string     `json:"apartmentCode"`
	FlatID        *uuid.UUID `json:"flatId,omitempty"`
	FlatNumber    string     `json:"flatNumber,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// AuthResult is returned by registration and login
type AuthResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      UserInfo  `json:"user"`
}

func userInfoFromDomain(u *identity.User, flatNumber string) UserInfo {
	return UserInfo{
		ID:            u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		FullName:      u.FullName(),
		PhoneNumber:   u.PhoneNumber,
		Role:          u.Role.String(),
		ApartmentCode: u.ApartmentCode,
		FlatID:        u.FlatID,
		FlatNumber:    flatNumber,
		CreatedAt:     u.CreatedAt,
	}
}
