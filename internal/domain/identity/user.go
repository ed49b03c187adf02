// Package identity models the users of an apartment. An admin user is
// the anchor that defines an apartment's existence: apartment codes are
// generated at admin registration and are not a first-class entity.
package identity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/management360/backend/internal/domain/shared"
)

// Password cost for bcrypt
const bcryptCost = 12

// Role represents a user's role within an apartment
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleResident Role = "resident"
)

// IsValid checks if the role is a valid Role
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleResident
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// User is an admin or resident account scoped to one apartment.
type User struct {
	shared.BaseEntity
	Email         string     `json:"email"`
	PasswordHash  string     `json:"-"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	PhoneNumber   string     `json:"phoneNumber,omitempty"`
	Role          Role       `json:"role"`
	ApartmentCode string     `json:"apartmentCode"`
	FlatID        *uuid.UUID `json:"flatId,omitempty"`
}

// NewUser creates a user account.
func NewUser(email, passwordHash, firstName, lastName, phoneNumber string, role Role, apartmentCode string, flatID *uuid.UUID) *User {
	return &User{
		BaseEntity:    shared.NewBaseEntity(),
		Email:         email,
		PasswordHash:  passwordHash,
		FirstName:     firstName,
		LastName:      lastName,
		PhoneNumber:   phoneNumber,
		Role:          role,
		ApartmentCode: apartmentCode,
		FlatID:        flatID,
	}
}

// SetPassword hashes and stores the given plaintext password
func (u *User) SetPassword(password string) error {
	if len(password) < 6 {
		return shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// GenerateApartmentCode produces a fresh apartment code for a new admin.
// The suffix is derived from the current unix-millisecond clock, matching
// the "APT" + digits convention residents type in at registration.
func GenerateApartmentCode(now time.Time) string {
	millis := now.UnixMilli()
	return fmt.Sprintf("APT%d", millis%1_000_000)
}
