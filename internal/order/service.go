package order

import (
	"context"
	"errors"

	"nevyra-be/internal/logger"
	"nevyra-be/internal/payment"
	"nevyra-be/internal/product"
	"nevyra-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	// Finalize persists exactly one order for the attempt identified
	// by the input's idempotency key. A repeated key returns the
	// already-created order. It never touches the cart.
	Finalize(ctx context.Context, input FinalizeInput) (*Order, error)

	GetOrders(ctx context.Context) ([]*Order, error)
	GetOrderDetail(ctx context.Context, orderID uint) (*Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uint, status OrderStatus) error
}

type service struct {
	repo        Repository
	productSvc  product.Service
	paymentRepo payment.Repository
}

func NewService(repo Repository, productSvc product.Service, paymentRepo payment.Repository) Service {
	return &service{
		repo:        repo,
		productSvc:  productSvc,
		paymentRepo: paymentRepo,
	}
}

func (s *service) Finalize(ctx context.Context, input FinalizeInput) (*Order, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Order"),
		zap.String("method", "Finalize"),
		zap.Uint("user_id", userID),
		zap.String("idempotency_key", input.IdempotencyKey.String()),
		zap.String("payment_method", string(input.PaymentMethod)),
		zap.Int("item_count", len(input.Items)),
	)

	if err := validateFinalizeInput(input); err != nil {
		log.Warn("finalize input rejected", zap.Error(err))
		return nil, err
	}

	// Repeated attempt: hand back the order already created for this key.
	if existing, err := s.repo.GetByIdempotencyKey(ctx, input.IdempotencyKey); err == nil {
		log.Info("idempotent replay, returning existing order",
			zap.Uint("order_id", existing.ID))
		return existing, nil
	} else if !errors.Is(err, ErrOrderNotFound) {
		return nil, err
	}

	// The catalog, not the client, prices the order.
	ids := make([]uint, 0, len(input.Items))
	for _, it := range input.Items {
		ids = append(ids, it.ProductID)
	}

	prices, err := s.productSvc.PricesFor(ctx, ids)
	if err != nil {
		log.Warn("price lookup failed", zap.Error(err))
		return nil, err
	}

	items := make([]OrderItem, 0, len(input.Items))
	var total int64
	for _, it := range input.Items {
		price := prices[it.ProductID]
		items = append(items, OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     price,
		})
		total += price * int64(it.Quantity)
	}

	if input.TotalAmount != total {
		log.Warn("client total rejected",
			zap.Int64("client_total", input.TotalAmount),
			zap.Int64("catalog_total", total),
		)
		return nil, ErrTotalMismatch
	}

	o := &Order{
		UserID:          userID,
		IdempotencyKey:  input.IdempotencyKey,
		Items:           items,
		TotalAmount:     total,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		PaymentDetails:  input.PaymentDetails,
		Status:          StatusPending,
	}

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		log.Error("failed to persist order", zap.Error(err))
		return nil, err
	}

	// Link the payment record to the order it paid for.
	if input.PaymentMethod == payment.MethodRazorpay && input.PaymentDetails.RazorpayOrderID != "" {
		if err := s.paymentRepo.AttachOrder(ctx, input.PaymentDetails.RazorpayOrderID, o.ID); err != nil {
			log.Warn("failed to attach payment record", zap.Error(err))
		}
	}

	log.Info("order finalized",
		zap.Uint("order_id", o.ID),
		zap.Int64("total", total),
	)

	return o, nil
}

func validateFinalizeInput(input FinalizeInput) error {
	if len(input.Items) == 0 {
		return ErrEmptyOrder
	}
	for _, it := range input.Items {
		if it.Quantity < 1 {
			return ErrInvalidQuantity
		}
	}

	if input.ShippingAddress == (AddressSnapshot{}) {
		return ErrMissingAddress
	}

	switch input.PaymentMethod {
	case payment.MethodRazorpay:
		if input.PaymentDetails.RazorpayPaymentID == "" {
			return ErrMissingPaymentProof
		}
	case payment.MethodCOD:
		// no proof required
	default:
		return ErrInvalidPaymentMethod
	}

	return nil
}

func (s *service) GetOrders(ctx context.Context) ([]*Order, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	return s.repo.GetOrdersByUser(ctx, userID)
}

func (s *service) GetOrderDetail(ctx context.Context, orderID uint) (*Order, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	isAdmin := utils.GetUserRoleFromContext(ctx) == "ADMIN"
	if !isAdmin && o.UserID != userID {
		return nil, ErrOrderNotFound
	}

	return o, nil
}

func (s *service) UpdateOrderStatus(ctx context.Context, orderID uint, status OrderStatus) error {
	if utils.GetUserRoleFromContext(ctx) != "ADMIN" {
		return ErrUnauthorized
	}

	validStatuses := map[OrderStatus]bool{
		StatusConfirmed: true,
		StatusShipped:   true,
		StatusDelivered: true,
		StatusCancelled: true,
	}

	if !validStatuses[status] {
		return ErrInvalidStatus
	}

	return s.repo.UpdateStatus(ctx, orderID, status)
}
