package registry

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/management360/backend/internal/domain/registry"
	"github.com/management360/backend/internal/domain/shared"
)

// MockFlatRepository is a mock implementation of FlatRepository
type MockFlatRepository struct {
	mock.Mock
}

func (m *MockFlatRepository) Save(ctx context.Context, flat *registry.Flat) error {
	args := m.Called(ctx, flat)
	return args.Error(0)
}

func (m *MockFlatRepository) SaveBatch(ctx context.Context, flats []*registry.Flat) error {
	args := m.Called(ctx, flats)
	return args.Error(0)
}

func (m *MockFlatRepository) FindByID(ctx context.Context, apartmentCode string, id uuid.UUID) (*registry.Flat, error) {
	args := m.Called(ctx, apartmentCode, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.Flat), args.Error(1)
}

func (m *MockFlatRepository) FindByNumber(ctx context.Context, apartmentCode, flatNumber string) (*registry.Flat, error) {
	args := m.Called(ctx, apartmentCode, flatNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.Flat), args.Error(1)
}

func (m *MockFlatRepository) FindAll(ctx context.Context, apartmentCode string) ([]registry.Flat, error) {
	args := m.Called(ctx, apartmentCode)
	return args.Get(0).([]registry.Flat), args.Error(1)
}

func (m *MockFlatRepository) CountResidents(ctx context.Context, flatID uuid.UUID) (int64, error) {
	args := m.Called(ctx, flatID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFlatRepository) Delete(ctx context.Context, apartmentCode string, id uuid.UUID) error {
	args := m.Called(ctx, apartmentCode, id)
	return args.Error(0)
}

const testApartment = "APT123456"

func TestCreateFlat(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a flat with a free number", func(t *testing.T) {
		repo := new(MockFlatRepository)
		service := NewFlatService(repo, zap.NewNop())

		repo.On("FindByNumber", ctx, testApartment, "12").Return(nil, shared.ErrNotFound)
		repo.On("Save", ctx, mock.AnythingOfType("*registry.Flat")).Return(nil)

		flat, err := service.Create(ctx, testApartment, CreateFlatInput{
			FlatNumber: " 12 ", Block: "B", ResidentCount: 3,
		})

		require.NoError(t, err)
		assert.Equal(t, "12", flat.FlatNumber)
		assert.Equal(t, "B", flat.Block)
		assert.Equal(t, 3, flat.ResidentCount)
		repo.AssertExpectations(t)
	})

	t.Run("conflicts on a taken number", func(t *testing.T) {
		repo := new(MockFlatRepository)
		service := NewFlatService(repo, zap.NewNop())

		taken := registry.NewFlat(testApartment, "12", "A", nil, 0)
		repo.On("FindByNumber", ctx, testApartment, "12").Return(taken, nil)

		_, err := service.Create(ctx, testApartment, CreateFlatInput{FlatNumber: "12"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects a blank number", func(t *testing.T) {
		service := NewFlatService(new(MockFlatRepository), zap.NewNop())

		_, err := service.Create(ctx, testApartment, CreateFlatInput{FlatNumber: "   "})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})
}

func TestGenerateFlats(t *testing.T) {
	ctx := context.Background()

	t.Run("bulk-creates numbered flats for a fresh apartment", func(t *testing.T) {
		repo := new(MockFlatRepository)
		service := NewFlatService(repo, zap.NewNop())

		repo.On("FindAll", ctx, testApartment).Return([]registry.Flat{}, nil)
		repo.On("SaveBatch", ctx, mock.MatchedBy(func(flats []*registry.Flat) bool {
			return len(flats) == 20 && flats[0].FlatNumber == "1" && flats[19].FlatNumber == "20"
		})).Return(nil)

		flats, err := service.Generate(ctx, testApartment, 20)

		require.NoError(t, err)
		assert.Len(t, flats, 20)
		repo.AssertExpectations(t)
	})

	t.Run("refuses when the apartment already has flats", func(t *testing.T) {
		repo := new(MockFlatRepository)
		service := NewFlatService(repo, zap.NewNop())

		existing := []registry.Flat{*registry.NewFlat(testApartment, "1", "A", nil, 0)}
		repo.On("FindAll", ctx, testApartment).Return(existing, nil)

		_, err := service.Generate(ctx, testApartment, 20)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "SaveBatch", mock.Anything, mock.Anything)
	})

	t.Run("rejects a non-positive count", func(t *testing.T) {
		service := NewFlatService(new(MockFlatRepository), zap.NewNop())

		_, err := service.Generate(ctx, testApartment, 0)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})
}

func TestUpdateFlat(t *testing.T) {
	ctx := context.Background()

	t.Run("renaming to a taken number conflicts", func(t *testing.T) {
		repo := new(MockFlatRepository)
		service := NewFlatService(repo, zap.NewNop())

		flat := registry.NewFlat(testApartment, "3", "A", nil, 0)
		other := registry.NewFlat(testApartment, "4", "A", nil, 0)
		repo.On("FindByID", ctx, testApartment, flat.ID).Return(flat, nil)
		repo.On("FindByNumber", ctx, testApartment, "4").Return(other, nil)

		newNumber := "4"
		_, err := service.Update(ctx, testApartment, flat.ID, UpdateFlatInput{FlatNumber: &newNumber})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("keeping the same number skips the uniqueness check", func(t *testing.T) {
		repo := new(MockFlatRepository)
		service := NewFlatService(repo, zap.NewNop())

		flat := registry.NewFlat(testApartment, "3", "A", nil, 0)
		repo.On("FindByID", ctx, testApartment, flat.ID).Return(flat, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*registry.Flat")).Return(nil)

		sameNumber := "3"
		newBlock := "C"
		updated, err := service.Update(ctx, testApartment, flat.ID, UpdateFlatInput{
			FlatNumber: &sameNumber, Block: &newBlock,
		})

		require.NoError(t, err)
		assert.Equal(t, "3", updated.FlatNumber)
		assert.Equal(t, "C", updated.Block)
		repo.AssertNotCalled(t, "FindByNumber", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a negative resident count", func(t *testing.T) {
		repo := new(MockFlatRepository)
		service := NewFlatService(repo, zap.NewNop())

		flat := registry.NewFlat(testApartment, "3", "A", nil, 0)
		repo.On("FindByID", ctx, testApartment, flat.ID).Return(flat, nil)

		negative := -1
		_, err := service.Update(ctx, testApartment, flat.ID, UpdateFlatInput{ResidentCount: &negative})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})
}

func TestDeleteFlat(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses while residents are registered", func(t *testing.T) {
		repo := new(MockFlatRepository)
		service := NewFlatService(repo, zap.NewNop())

		id := uuid.New()
		repo.On("CountResidents", ctx, id).Return(int64(2), nil)

		err := service.Delete(ctx, testApartment, id)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("deletes an empty flat", func(t *testing.T) {
		repo := new(MockFlatRepository)
		service := NewFlatService(repo, zap.NewNop())

		id := uuid.New()
		repo.On("CountResidents", ctx, id).Return(int64(0), nil)
		repo.On("Delete", ctx, testApartment, id).Return(nil)

		err := service.Delete(ctx, testApartment, id)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestGetFlat(t *testing.T) {
	ctx := context.Background()
	repo := new(MockFlatRepository)
	service := NewFlatService(repo, zap.NewNop())

	flat := registry.NewFlat(testApartment, "8", "A", nil, 4)
	repo.On("FindByID", ctx, testApartment, flat.ID).Return(flat, nil)
	repo.On("CountResidents", ctx, flat.ID).Return(int64(2), nil)

	result, err := service.Get(ctx, testApartment, flat.ID)

	require.NoError(t, err)
	assert.Equal(t, "8", result.FlatNumber)
	assert.Equal(t, int64(2), result.RegisteredResidents)
}
