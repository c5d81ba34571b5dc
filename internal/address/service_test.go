package address

import (
	"context"
	"testing"

	"nevyra-be/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByUserID(ctx context.Context, userID uint) ([]*Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Address), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Address), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, addr *Address) error {
	args := m.Called(ctx, addr)
	return args.Error(0)
}

func (m *MockRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) ClearDefault(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRepository) SetDefault(ctx context.Context, userID uint, addressID uuid.UUID) error {
	args := m.Called(ctx, userID, addressID)
	return args.Error(0)
}

func authedCtx(userID uint) context.Context {
	return utils.SetUserContext(context.Background(), userID, "buyer@example.com", "USER")
}

func TestService_Create(t *testing.T) {
	t.Run("Success with default flag", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		ctx := authedCtx(1)

		repo.On("ClearDefault", ctx, uint(1)).Return(nil)
		repo.On("Create", ctx, mock.AnythingOfType("*address.Address")).Return(nil)

		addr, err := svc.Create(ctx, CreateAddressInput{
			FirstName:    "Asha",
			LastName:     "Verma",
			Phone:        "9876543210",
			AddressLine1: "12 MG Road",
			City:         "Bengaluru",
			State:        "Karnataka",
			ZipCode:      "560001",
			SetAsDefault: true,
		})

		assert.NoError(t, err)
		assert.Equal(t, uint(1), addr.UserID)
		assert.True(t, addr.IsDefault)
		assert.True(t, addr.IsActive)
		repo.AssertExpectations(t)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		svc := NewService(new(MockRepository))
		_, err := svc.Create(context.Background(), CreateAddressInput{})
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestService_Get(t *testing.T) {
	addrID := uuid.New()

	t.Run("Owner sees address", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		ctx := authedCtx(1)

		repo.On("GetByID", ctx, addrID).
			Return(&Address{ID: addrID, UserID: 1, IsActive: true}, nil)

		addr, err := svc.Get(ctx, addrID)
		assert.NoError(t, err)
		assert.Equal(t, addrID, addr.ID)
	})

	t.Run("Foreign address hidden", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		ctx := authedCtx(1)

		repo.On("GetByID", ctx, addrID).
			Return(&Address{ID: addrID, UserID: 2, IsActive: true}, nil)

		_, err := svc.Get(ctx, addrID)
		assert.ErrorIs(t, err, ErrAddressNotFound)
	})
}

func TestService_Update(t *testing.T) {
	oldID := uuid.New()

	t.Run("Deactivates old and creates new", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		ctx := authedCtx(1)

		repo.On("GetByID", ctx, oldID).
			Return(&Address{ID: oldID, UserID: 1, IsActive: true}, nil)
		repo.On("Deactivate", ctx, oldID).Return(nil)
		repo.On("Create", ctx, mock.AnythingOfType("*address.Address")).Return(nil)

		addr, err := svc.Update(ctx, UpdateAddressInput{
			AddressID:    oldID.String(),
			FirstName:    "Asha",
			LastName:     "Verma",
			AddressLine1: "44 Residency Road",
			City:         "Bengaluru",
			State:        "Karnataka",
			ZipCode:      "560025",
		})

		assert.NoError(t, err)
		assert.NotEqual(t, oldID, addr.ID)
		assert.Equal(t, "44 Residency Road", addr.AddressLine1)
		repo.AssertExpectations(t)
	})

	t.Run("Bad id", func(t *testing.T) {
		svc := NewService(new(MockRepository))
		_, err := svc.Update(authedCtx(1), UpdateAddressInput{AddressID: "nope"})
		assert.ErrorIs(t, err, ErrInvalidAddressID)
	})
}

func TestService_Delete(t *testing.T) {
	addrID := uuid.New()

	repo := new(MockRepository)
	svc := NewService(repo)
	ctx := authedCtx(1)

	repo.On("GetByID", ctx, addrID).
		Return(&Address{ID: addrID, UserID: 1, IsActive: true}, nil)
	repo.On("Deactivate", ctx, addrID).Return(nil)

	assert.NoError(t, svc.Delete(ctx, addrID))
	repo.AssertExpectations(t)
}

func TestService_SetDefaultAddress(t *testing.T) {
	addrID := uuid.New()

	repo := new(MockRepository)
	svc := NewService(repo)
	ctx := authedCtx(1)

	repo.On("ClearDefault", ctx, uint(1)).Return(nil)
	repo.On("SetDefault", ctx, uint(1), addrID).Return(nil)

	assert.NoError(t, svc.SetDefaultAddress(ctx, addrID))
	repo.AssertExpectations(t)
}
