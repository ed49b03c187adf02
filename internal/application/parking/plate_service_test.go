package parking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/management360/backend/internal/domain/parking"
	"github.com/management360/backend/internal/domain/registry"
	"github.com/management360/backend/internal/domain/shared"
)

func newPlateService(plateRepo *MockPlateRepository, flatRepo *MockFlatRepository) *PlateService {
	return NewPlateService(plateRepo, flatRepo, zap.NewNop())
}

func TestAddPlate(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a plate with its number normalized", func(t *testing.T) {
		plateRepo := new(MockPlateRepository)
		flatRepo := new(MockFlatRepository)
		service := newPlateService(plateRepo, flatRepo)

		flat := registry.NewFlat(testApartment, "7", "A", nil, 0)
		plateRepo.On("FindByNumber", ctx, testApartment, "34ABC123").Return(nil, shared.ErrNotFound)
		flatRepo.On("FindByID", ctx, testApartment, flat.ID).Return(flat, nil)
		plateRepo.On("Save", ctx, mock.MatchedBy(func(saved *parking.Plate) bool {
			return saved.PlateNumber == "34ABC123" && saved.FlatID != nil && *saved.FlatID == flat.ID
		})).Return(nil)

		plate, err := service.Add(ctx, testApartment, AddPlateInput{
			PlateNumber: " 34abc123 ",
			OwnerName:   "Owner",
			FlatID:      &flat.ID,
		})

		require.NoError(t, err)
		assert.Equal(t, "34ABC123", plate.PlateNumber)
		plateRepo.AssertExpectations(t)
	})

	t.Run("conflicts on a registered number", func(t *testing.T) {
		plateRepo := new(MockPlateRepository)
		service := newPlateService(plateRepo, new(MockFlatRepository))

		existing := parking.NewPlate(testApartment, "34ABC123", "Owner", nil, "", "")
		plateRepo.On("FindByNumber", ctx, testApartment, "34ABC123").Return(existing, nil)

		_, err := service.Add(ctx, testApartment, AddPlateInput{PlateNumber: "34abc123"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		plateRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("requires a plate number", func(t *testing.T) {
		plateRepo := new(MockPlateRepository)
		service := newPlateService(plateRepo, new(MockFlatRepository))

		_, err := service.Add(ctx, testApartment, AddPlateInput{PlateNumber: "   "})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})

	t.Run("rejects an unknown flat", func(t *testing.T) {
		plateRepo := new(MockPlateRepository)
		flatRepo := new(MockFlatRepository)
		service := newPlateService(plateRepo, flatRepo)

		flat := registry.NewFlat(testApartment, "7", "A", nil, 0)
		plateRepo.On("FindByNumber", ctx, testApartment, "34ABC123").Return(nil, shared.ErrNotFound)
		flatRepo.On("FindByID", ctx, testApartment, flat.ID).Return(nil, shared.ErrNotFound)

		_, err := service.Add(ctx, testApartment, AddPlateInput{
			PlateNumber: "34ABC123",
			FlatID:      &flat.ID,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}

func TestUpdatePlate(t *testing.T) {
	ctx := context.Background()

	t.Run("renames a plate when the new number is free", func(t *testing.T) {
		plateRepo := new(MockPlateRepository)
		service := newPlateService(plateRepo, new(MockFlatRepository))

		existing := parking.NewPlate(testApartment, "34ABC123", "Owner", nil, "", "")
		plateRepo.On("FindByID", ctx, testApartment, existing.ID).
			Return(&parking.PlateWithFlat{Plate: *existing}, nil)
		plateRepo.On("FindByNumber", ctx, testApartment, "06XYZ99").Return(nil, shared.ErrNotFound)
		plateRepo.On("Save", ctx, mock.MatchedBy(func(saved *parking.Plate) bool {
			return saved.PlateNumber == "06XYZ99" && saved.OwnerName == "Owner"
		})).Return(nil)

		newNumber := "06xyz99"
		updated, err := service.Update(ctx, testApartment, existing.ID, UpdatePlateInput{
			PlateNumber: &newNumber,
		})

		require.NoError(t, err)
		assert.Equal(t, "06XYZ99", updated.PlateNumber)
	})

	t.Run("keeps the stored number without a duplicate check", func(t *testing.T) {
		plateRepo := new(MockPlateRepository)
		service := newPlateService(plateRepo, new(MockFlatRepository))

		existing := parking.NewPlate(testApartment, "34ABC123", "Owner", nil, "", "")
		plateRepo.On("FindByID", ctx, testApartment, existing.ID).
			Return(&parking.PlateWithFlat{Plate: *existing}, nil)
		plateRepo.On("Save", ctx, mock.AnythingOfType("*parking.Plate")).Return(nil)

		sameNumber := "34abc123"
		newOwner := "New Owner"
		updated, err := service.Update(ctx, testApartment, existing.ID, UpdatePlateInput{
			PlateNumber: &sameNumber,
			OwnerName:   &newOwner,
		})

		require.NoError(t, err)
		assert.Equal(t, "New Owner", updated.OwnerName)
		plateRepo.AssertNotCalled(t, "FindByNumber", mock.Anything, mock.Anything, mock.Anything)
	})
}
