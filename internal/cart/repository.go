package cart

import (
	"context"
	"database/sql"

	"nevyra-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	GetItemByUserAndProduct(ctx context.Context, userID, productID uint) (*CartItem, error)
	GetItemByID(ctx context.Context, id uuid.UUID) (*CartItem, error)
	CreateItem(ctx context.Context, item *CartItem) error
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, id uuid.UUID) error
	GetRows(ctx context.Context, userID uint) ([]*CartRow, error)
	Clear(ctx context.Context, userID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetItemByUserAndProduct(
	ctx context.Context,
	userID, productID uint,
) (*CartItem, error) {

	const q = `
		SELECT id, user_id, product_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE user_id = $1 AND product_id = $2
	`

	var it CartItem
	err := r.db.QueryRowContext(ctx, q, userID, productID).Scan(
		&it.ID, &it.UserID, &it.ProductID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, err
	}

	return &it, nil
}

func (r *repository) GetItemByID(ctx context.Context, id uuid.UUID) (*CartItem, error) {
	const q = `
		SELECT id, user_id, product_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE id = $1
	`

	var it CartItem
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&it.ID, &it.UserID, &it.ProductID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, err
	}

	return &it, nil
}

func (r *repository) CreateItem(ctx context.Context, item *CartItem) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Cart"),
		zap.String("method", "CreateItem"),
		zap.Uint("user_id", item.UserID),
		zap.Uint("product_id", item.ProductID),
	)

	const q = `
		INSERT INTO cart_items (id, user_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, q, item.ID, item.UserID, item.ProductID, item.Quantity)
	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return err
	}

	return nil
}

func (r *repository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	const q = `
		UPDATE cart_items
		SET quantity = $2,
		    updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, q, id, quantity)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (r *repository) RemoveItem(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM cart_items WHERE id = $1`

	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (r *repository) GetRows(ctx context.Context, userID uint) ([]*CartRow, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Cart"),
		zap.String("method", "GetRows"),
		zap.Uint("user_id", userID),
	)

	const q = `
		SELECT
			ci.id, ci.product_id, p.name, p.image_url, p.price, ci.quantity,
			p.price * ci.quantity AS subtotal
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		  AND p.is_active = true
		ORDER BY ci.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []*CartRow
	for rows.Next() {
		var row CartRow
		if err := rows.Scan(
			&row.ItemID, &row.ProductID, &row.ProductName, &row.ImageURL,
			&row.Price, &row.Quantity, &row.Subtotal,
		); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, &row)
	}

	return res, rows.Err()
}

func (r *repository) Clear(ctx context.Context, userID uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Cart"),
		zap.String("method", "Clear"),
		zap.Uint("user_id", userID),
	)

	const q = `DELETE FROM cart_items WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, q, userID); err != nil {
		log.Error("delete failed", zap.Error(err))
		return err
	}

	return nil
}
