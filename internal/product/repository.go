package product

import (
	"context"
	"database/sql"
	"fmt"

	"nevyra-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetByID(ctx context.Context, id uint) (*Product, error)
	GetPricesByIDs(ctx context.Context, ids []uint) (map[uint]int64, error)
	List(ctx context.Context, opts ListOptions) ([]*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Product"),
		zap.String("method", "GetByID"),
		zap.Uint("product_id", id),
	)

	const q = `
		SELECT id, name, description, price, stock, image_url, is_active, created_at, updated_at
		FROM products
		WHERE id = $1 AND is_active = true
	`

	var p Product
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}

	return &p, nil
}

// GetPricesByIDs returns the current catalog price per product id.
// Missing ids are simply absent from the map.
func (r *repository) GetPricesByIDs(ctx context.Context, ids []uint) (map[uint]int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Product"),
		zap.String("method", "GetPricesByIDs"),
		zap.Int("id_count", len(ids)),
	)

	const q = `
		SELECT id, price
		FROM products
		WHERE id = ANY($1) AND is_active = true
	`

	arg := make([]int64, 0, len(ids))
	for _, id := range ids {
		arg = append(arg, int64(id))
	}

	rows, err := r.db.QueryContext(ctx, q, pq.Array(arg))
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	prices := make(map[uint]int64, len(ids))
	for rows.Next() {
		var id uint
		var price int64
		if err := rows.Scan(&id, &price); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		prices[id] = price
	}

	return prices, rows.Err()
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Product"),
		zap.String("method", "List"),
	)

	q := `
		SELECT id, name, description, price, stock, image_url, is_active, created_at, updated_at
		FROM products
		WHERE is_active = true
	`
	args := []interface{}{}

	if opts.Search != nil && *opts.Search != "" {
		q += ` AND name ILIKE '%' || $1 || '%'`
		args = append(args, *opts.Search)
	}

	q += ` ORDER BY created_at DESC`

	if opts.Limit > 0 {
		q += fmt.Sprintf(" LIMIT %d OFFSET %d", opts.Limit, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []*Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
			&p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, &p)
	}

	return res, rows.Err()
}
