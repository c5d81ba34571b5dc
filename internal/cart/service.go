package cart

import (
	"context"
	"errors"

	"nevyra-be/internal/logger"
	"nevyra-be/internal/product"
	"nevyra-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the business logic for carts.
type Service interface {
	Get(ctx context.Context) (*Cart, error)
	Add(ctx context.Context, productID uint, quantity int) (*CartItem, error)
	UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	Remove(ctx context.Context, itemID uuid.UUID) error
	Clear(ctx context.Context) error
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

func (s *service) Get(ctx context.Context) (*Cart, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotAuthenticated
	}

	rows, err := s.repo.GetRows(ctx, userID)
	if err != nil {
		return nil, errors.Join(ErrFailedGetCartRows, err)
	}

	cart := &Cart{Items: rows}
	for _, row := range rows {
		cart.Subtotal += row.Subtotal
	}

	return cart, nil
}

// Add puts a product into the cart. Adding a product already in the
// cart bumps its quantity instead of creating a second line.
func (s *service) Add(ctx context.Context, productID uint, quantity int) (*CartItem, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotAuthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Cart"),
		zap.String("method", "Add"),
		zap.Uint("user_id", userID),
		zap.Uint("product_id", productID),
		zap.Int("quantity", quantity),
	)

	if quantity < 1 {
		log.Warn("invalid quantity")
		return nil, ErrInvalidQuantity
	}

	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		log.Warn("product lookup failed", zap.Error(err))
		return nil, err
	}

	existing, err := s.repo.GetItemByUserAndProduct(ctx, userID, productID)
	if err == nil {
		newQty := existing.Quantity + quantity
		if err := s.repo.UpdateQuantity(ctx, existing.ID, newQty); err != nil {
			log.Error("failed to bump quantity", zap.Error(err))
			return nil, errors.Join(ErrFailedUpdateCart, err)
		}
		existing.Quantity = newQty
		return existing, nil
	}
	if !errors.Is(err, ErrCartItemNotFound) {
		return nil, err
	}

	item := &CartItem{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		log.Error("failed to create cart item", zap.Error(err))
		return nil, errors.Join(ErrFailedCreateCartItem, err)
	}

	log.Info("cart item added", zap.String("item_id", item.ID.String()))
	return item, nil
}

func (s *service) UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUserNotAuthenticated
	}

	if quantity < 1 {
		return ErrInvalidQuantity
	}

	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return ErrCartItemNotFound
	}

	if err := s.repo.UpdateQuantity(ctx, itemID, quantity); err != nil {
		return errors.Join(ErrFailedUpdateCart, err)
	}

	return nil
}

func (s *service) Remove(ctx context.Context, itemID uuid.UUID) error {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUserNotAuthenticated
	}

	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return ErrCartItemNotFound
	}

	if err := s.repo.RemoveItem(ctx, itemID); err != nil {
		return errors.Join(ErrFailedRemoveCart, err)
	}

	return nil
}

func (s *service) Clear(ctx context.Context) error {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUserNotAuthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Cart"),
		zap.String("method", "Clear"),
		zap.Uint("user_id", userID),
	)

	if err := s.repo.Clear(ctx, userID); err != nil {
		log.Error("failed to clear cart", zap.Error(err))
		return errors.Join(ErrFailedClearCart, err)
	}

	log.Info("cart cleared")
	return nil
}
