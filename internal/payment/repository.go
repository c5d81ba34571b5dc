package payment

import (
	"context"
	"database/sql"
)

type Repository interface {
	SavePayment(ctx context.Context, p *Payment) error
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*Payment, error)
	MarkVerified(ctx context.Context, gatewayOrderID, gatewayPaymentID string) error
	MarkFailed(ctx context.Context, gatewayOrderID string) error
	AttachOrder(ctx context.Context, gatewayOrderID string, orderID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SavePayment(ctx context.Context, p *Payment) error {
	const q = `
		INSERT INTO payments (
			gateway_order_id, amount_minor_units, currency, receipt, status, is_mock
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	return r.db.QueryRowContext(ctx, q,
		p.GatewayOrderID, p.AmountMinorUnits, p.Currency, p.Receipt, p.Status, p.IsMock,
	).Scan(&p.ID)
}

func (r *repository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*Payment, error) {
	const q = `
		SELECT id, order_id, gateway_order_id, gateway_payment_id,
		       amount_minor_units, currency, receipt, status, is_mock,
		       created_at, updated_at
		FROM payments
		WHERE gateway_order_id = $1
	`

	var p Payment
	var orderID sql.NullInt64
	var paymentID sql.NullString

	err := r.db.QueryRowContext(ctx, q, gatewayOrderID).Scan(
		&p.ID, &orderID, &p.GatewayOrderID, &paymentID,
		&p.AmountMinorUnits, &p.Currency, &p.Receipt, &p.Status, &p.IsMock,
		&p.CreatedAt, &p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}

	if orderID.Valid {
		v := uint(orderID.Int64)
		p.OrderID = &v
	}
	if paymentID.Valid {
		p.GatewayPaymentID = &paymentID.String
	}

	return &p, nil
}

func (r *repository) MarkVerified(ctx context.Context, gatewayOrderID, gatewayPaymentID string) error {
	const q = `
		UPDATE payments
		SET status = $2,
		    gateway_payment_id = $3,
		    updated_at = NOW()
		WHERE gateway_order_id = $1
	`

	_, err := r.db.ExecContext(ctx, q, gatewayOrderID, StatusVerified, gatewayPaymentID)
	return err
}

func (r *repository) MarkFailed(ctx context.Context, gatewayOrderID string) error {
	const q = `
		UPDATE payments
		SET status = $2,
		    updated_at = NOW()
		WHERE gateway_order_id = $1
	`

	_, err := r.db.ExecContext(ctx, q, gatewayOrderID, StatusFailed)
	return err
}

func (r *repository) AttachOrder(ctx context.Context, gatewayOrderID string, orderID uint) error {
	const q = `
		UPDATE payments
		SET order_id = $2,
		    updated_at = NOW()
		WHERE gateway_order_id = $1
	`

	_, err := r.db.ExecContext(ctx, q, gatewayOrderID, orderID)
	return err
}
