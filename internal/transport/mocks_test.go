package transport

import (
	"context"

	"nevyra-be/internal/address"
	"nevyra-be/internal/cart"
	"nevyra-be/internal/checkout"
	"nevyra-be/internal/order"
	"nevyra-be/internal/payment"
	"nevyra-be/internal/product"
	"nevyra-be/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateOrder(ctx context.Context, amountMajorUnits int64, currency string) (payment.Result, error) {
	args := m.Called(ctx, amountMajorUnits, currency)
	return args.Get(0).(payment.Result), args.Error(1)
}

func (m *MockGateway) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	args := m.Called(gatewayOrderID, gatewayPaymentID, signature)
	return args.Bool(0)
}

type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) SavePayment(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepo) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*payment.Payment, error) {
	args := m.Called(ctx, gatewayOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepo) MarkVerified(ctx context.Context, gatewayOrderID, gatewayPaymentID string) error {
	args := m.Called(ctx, gatewayOrderID, gatewayPaymentID)
	return args.Error(0)
}

func (m *MockPaymentRepo) MarkFailed(ctx context.Context, gatewayOrderID string) error {
	args := m.Called(ctx, gatewayOrderID)
	return args.Error(0)
}

func (m *MockPaymentRepo) AttachOrder(ctx context.Context, gatewayOrderID string, orderID uint) error {
	args := m.Called(ctx, gatewayOrderID, orderID)
	return args.Error(0)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Finalize(ctx context.Context, input order.FinalizeInput) (*order.Order, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) GetOrders(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) GetOrderDetail(ctx context.Context, orderID uint) (*order.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateOrderStatus(ctx context.Context, orderID uint, status order.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Get(ctx context.Context) (*cart.Cart, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) Add(ctx context.Context, productID uint, quantity int) (*cart.CartItem, error) {
	args := m.Called(ctx, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartItem), args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	args := m.Called(ctx, itemID, quantity)
	return args.Error(0)
}

func (m *MockCartService) Remove(ctx context.Context, itemID uuid.UUID) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockCartService) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockAddressService struct {
	mock.Mock
}

func (m *MockAddressService) List(ctx context.Context) ([]*address.Address, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*address.Address), args.Error(1)
}

func (m *MockAddressService) Get(ctx context.Context, addressID uuid.UUID) (*address.Address, error) {
	args := m.Called(ctx, addressID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Address), args.Error(1)
}

func (m *MockAddressService) Create(ctx context.Context, input address.CreateAddressInput) (*address.Address, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Address), args.Error(1)
}

func (m *MockAddressService) Update(ctx context.Context, input address.UpdateAddressInput) (*address.Address, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Address), args.Error(1)
}

func (m *MockAddressService) Delete(ctx context.Context, addressID uuid.UUID) error {
	args := m.Called(ctx, addressID)
	return args.Error(0)
}

func (m *MockAddressService) SetDefaultAddress(ctx context.Context, addressID uuid.UUID) error {
	args := m.Called(ctx, addressID)
	return args.Error(0)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Get(ctx context.Context, id uint) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) List(ctx context.Context, opts product.ListOptions) ([]*product.Product, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *MockProductService) PricesFor(ctx context.Context, ids []uint) (map[uint]int64, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]int64), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, name, email, password string) (string, user.User, error) {
	args := m.Called(ctx, name, email, password)
	return args.String(0), args.Get(1).(user.User), args.Error(2)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (string, user.User, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Get(1).(user.User), args.Error(2)
}

func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(user.User), args.Error(1)
}

type MockOrchestrator struct {
	mock.Mock
}

func (m *MockOrchestrator) Run(ctx context.Context, attempt *checkout.Attempt, sel checkout.Selection, interactor checkout.GatewayInteractor) (*order.Order, error) {
	args := m.Called(ctx, attempt, sel, interactor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrchestrator) Stats() map[string]uint64 {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(map[string]uint64)
}
