// Package identity implements registration, login and profile lookup.
package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/management360/backend/internal/domain/identity"
	"github.com/management360/backend/internal/domain/parking"
	"github.com/management360/backend/internal/domain/registry"
	"github.com/management360/backend/internal/domain/shared"
	"github.com/management360/backend/internal/infrastructure/auth"
)

// DefaultParkingSlots is the size of the lot seeded for a new apartment.
const DefaultParkingSlots = 10

// AuthService handles registration and authentication
type AuthService struct {
	userRepo   identity.UserRepository
	flatRepo   registry.FlatRepository
	slotRepo   parking.SlotRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	flatRepo registry.FlatRepository,
	slotRepo parking.SlotRepository,
	jwtService *auth.JWTService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		flatRepo:   flatRepo,
		slotRepo:   slotRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// RegisterAdmin creates the admin account that anchors a new apartment.
// The apartment code is generated here and the building is seeded with
// the requested flats and a default parking lot.
func (s *AuthService) RegisterAdmin(ctx context.Context, input RegisterAdminInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.FirstName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Email and first name are required")
	}
	if input.FlatCount <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Flat count must be positive")
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Email is already registered")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	apartmentCode := identity.GenerateApartmentCode(time.Now())

	user := identity.NewUser(email, "", input.FirstName, input.LastName, input.PhoneNumber, identity.RoleAdmin, apartmentCode, nil)
	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save admin account", zap.Error(err))
		return nil, err
	}

	if err := s.flatRepo.SaveBatch(ctx, registry.GenerateSequence(apartmentCode, input.FlatCount)); err != nil {
		s.logger.Error("Failed to seed flats for new apartment",
			zap.String("apartment_code", apartmentCode), zap.Error(err))
		return nil, err
	}
	if err := s.slotRepo.SaveBatch(ctx, parking.GenerateSlots(apartmentCode, DefaultParkingSlots)); err != nil {
		s.logger.Error("Failed to seed parking slots for new apartment",
			zap.String("apartment_code", apartmentCode), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Apartment registered",
		zap.String("apartment_code", apartmentCode),
		zap.Int("flat_count", input.FlatCount))

	return s.issueToken(user, "")
}

// RegisterResident creates a resident account inside an existing apartment.
func (s *AuthService) RegisterResident(ctx context.Context, input RegisterResidentInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.FirstName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Email and first name are required")
	}
	apartmentCode := strings.ToUpper(strings.TrimSpace(input.ApartmentCode))
	if apartmentCode == "" || input.FlatNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Apartment code and flat number are required")
	}

	exists, err := s.userRepo.AdminExistsForApartment(ctx, apartmentCode)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("NOT_FOUND", "Apartment code not found")
	}

	flat, err := s.flatRepo.FindByNumber(ctx, apartmentCode, input.FlatNumber)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Flat not found in this apartment")
		}
		return nil, err
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Email is already registered")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	user := identity.NewUser(email, "", input.FirstName, input.LastName, input.PhoneNumber, identity.RoleResident, apartmentCode, &flat.ID)
	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save resident account", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Resident registered",
		zap.String("apartment_code", apartmentCode),
		zap.String("flat_number", flat.FlatNumber))

	return s.issueToken(user, flat.FlatNumber)
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("Login attempt for unknown email", zap.String("email", email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("email", email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	flatNumber, err := s.flatNumberFor(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("apartment_code", user.ApartmentCode))

	return s.issueToken(user, flatNumber)
}

// Profile returns the user's own account details
func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "User not found")
		}
		return nil, err
	}

	flatNumber, err := s.flatNumberFor(ctx, user)
	if err != nil {
		return nil, err
	}

	info := userInfoFromDomain(user, flatNumber)
	return &info, nil
}

// Directory lists every other member of the caller's apartment, admins first.
func (s *AuthService) Directory(ctx context.Context, apartmentCode string, exclude uuid.UUID) ([]identity.UserDirectoryEntry, error) {
	return s.userRepo.FindInApartment(ctx, apartmentCode, exclude)
}

func (s *AuthService) flatNumberFor(ctx context.Context, user *identity.User) (string, error) {
	if user.FlatID == nil {
		return "", nil
	}
	flat, err := s.flatRepo.FindByID(ctx, user.ApartmentCode, *user.FlatID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return flat.FlatNumber, nil
}

func (s *AuthService) issueToken(user *identity.User, flatNumber string) (*AuthResult, error) {
	issued, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		UserID:        user.ID,
		Email:         user.Email,
		Role:          user.Role.String(),
		ApartmentCode: user.ApartmentCode,
		FlatID:        user.FlatID,
	})
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication token")
	}

	return &AuthResult{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
		User:      userInfoFromDomain(user, flatNumber),
	}, nil
}
