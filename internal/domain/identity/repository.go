package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserDirectoryEntry is the reduced view used for recipient pickers.
type UserDirectoryEntry struct {
	UserID   uuid.UUID `json:"userId"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email"`
	Role     Role      `json:"role"`
}

// UserRepository defines persistence operations for user accounts.
// Email lookups are global (login); everything else is apartment-scoped.
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// AdminExistsForApartment reports whether the apartment code belongs
	// to a registered admin, i.e. whether the apartment exists.
	AdminExistsForApartment(ctx context.Context, apartmentCode string) (bool, error)
	// FindInApartment returns every user of the apartment except the
	// given one, admins first.
	FindInApartment(ctx context.Context, apartmentCode string, exclude uuid.UUID) ([]UserDirectoryEntry, error)
	// MemberOfApartment reports whether the user belongs to the apartment.
	MemberOfApartment(ctx context.Context, apartmentCode string, id uuid.UUID) (bool, error)
}
