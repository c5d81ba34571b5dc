package product

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "name", "description", "price", "stock", "image_url", "is_active", "created_at", "updated_at",
	}).AddRow(1, "Keyboard", nil, int64(1500), 10, nil, true, now, now)
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, description, price, stock, image_url, is_active, created_at, updated_at`).
			WithArgs(uint(1)).
			WillReturnRows(productRows())

		p, err := repo.GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, "Keyboard", p.Name)
		assert.Equal(t, int64(1500), p.Price)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, description, price, stock`).
			WithArgs(uint(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_GetPricesByIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	rows := sqlmock.NewRows([]string{"id", "price"}).
		AddRow(1, int64(1500)).
		AddRow(2, int64(250))

	mock.ExpectQuery(`SELECT id, price\s+FROM products`).
		WillReturnRows(rows)

	prices, err := repo.GetPricesByIDs(context.Background(), []uint{1, 2})
	assert.NoError(t, err)
	assert.Equal(t, int64(1500), prices[1])
	assert.Equal(t, int64(250), prices[2])
}
