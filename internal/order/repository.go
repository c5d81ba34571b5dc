package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"nevyra-be/internal/logger"
	"nevyra-be/internal/product"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	CreateOrder(ctx context.Context, o *Order) error
	GetByIdempotencyKey(ctx context.Context, key uuid.UUID) (*Order, error)
	GetByID(ctx context.Context, id uint) (*Order, error)
	GetOrdersByUser(ctx context.Context, userID uint) ([]*Order, error)
	UpdateStatus(ctx context.Context, id uint, status OrderStatus) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateOrder persists the order, its items, and the stock decrements
// in one transaction. Insufficient stock rolls the whole order back.
func (r *repository) CreateOrder(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "CreateOrder"),
		zap.Uint("user_id", o.UserID),
		zap.String("idempotency_key", o.IdempotencyKey.String()),
	)

	addrJSON, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return err
	}
	detailsJSON, err := json.Marshal(o.PaymentDetails)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	const insertOrder = `
		INSERT INTO orders (
			user_id, idempotency_key, total_amount,
			shipping_address, payment_method, payment_details, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRowContext(ctx, insertOrder,
		o.UserID, o.IdempotencyKey, o.TotalAmount,
		addrJSON, o.PaymentMethod, detailsJSON, o.Status,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("insert order failed", zap.Error(err))
		return err
	}

	const insertItem = `
		INSERT INTO order_items (order_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	const decrementStock = `
		UPDATE products
		SET stock = stock - $2,
		    updated_at = NOW()
		WHERE id = $1 AND stock >= $2
	`

	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID

		if err := tx.QueryRowContext(ctx, insertItem,
			o.ID, it.ProductID, it.Quantity, it.Price,
		).Scan(&it.ID); err != nil {
			log.Error("insert order item failed", zap.Error(err))
			return err
		}

		res, err := tx.ExecContext(ctx, decrementStock, it.ProductID, it.Quantity)
		if err != nil {
			log.Error("stock decrement failed", zap.Error(err))
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("product %d: %w", it.ProductID, product.ErrOutOfStock)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("commit failed", zap.Error(err))
		return err
	}

	log.Info("order created", zap.Uint("order_id", o.ID))
	return nil
}

func (r *repository) GetByIdempotencyKey(ctx context.Context, key uuid.UUID) (*Order, error) {
	const q = `
		SELECT id, user_id, idempotency_key, total_amount,
		       shipping_address, payment_method, payment_details, status,
		       created_at, updated_at
		FROM orders
		WHERE idempotency_key = $1
	`

	return r.scanOrder(ctx, r.db.QueryRowContext(ctx, q, key))
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Order, error) {
	const q = `
		SELECT id, user_id, idempotency_key, total_amount,
		       shipping_address, payment_method, payment_details, status,
		       created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	return r.scanOrder(ctx, r.db.QueryRowContext(ctx, q, id))
}

func (r *repository) scanOrder(ctx context.Context, row *sql.Row) (*Order, error) {
	var o Order
	var addrJSON, detailsJSON []byte

	err := row.Scan(
		&o.ID, &o.UserID, &o.IdempotencyKey, &o.TotalAmount,
		&addrJSON, &o.PaymentMethod, &detailsJSON, &o.Status,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(addrJSON, &o.ShippingAddress); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(detailsJSON, &o.PaymentDetails); err != nil {
		return nil, err
	}

	items, err := r.getItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return &o, nil
}

func (r *repository) getItems(ctx context.Context, orderID uint) ([]OrderItem, error) {
	const q = `
		SELECT id, order_id, product_id, quantity, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

func (r *repository) GetOrdersByUser(ctx context.Context, userID uint) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "GetOrdersByUser"),
		zap.Uint("user_id", userID),
	)

	const q = `
		SELECT id, user_id, idempotency_key, total_amount,
		       shipping_address, payment_method, payment_details, status,
		       created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []*Order
	for rows.Next() {
		var o Order
		var addrJSON, detailsJSON []byte

		if err := rows.Scan(
			&o.ID, &o.UserID, &o.IdempotencyKey, &o.TotalAmount,
			&addrJSON, &o.PaymentMethod, &detailsJSON, &o.Status,
			&o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}

		if err := json.Unmarshal(addrJSON, &o.ShippingAddress); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(detailsJSON, &o.PaymentDetails); err != nil {
			return nil, err
		}

		res = append(res, &o)
	}

	return res, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id uint, status OrderStatus) error {
	const q = `
		UPDATE orders
		SET status = $2,
		    updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, q, id, status)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}

	return nil
}
