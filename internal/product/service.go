package product

import (
	"context"
)

type Service interface {
	Get(ctx context.Context, id uint) (*Product, error)
	List(ctx context.Context, opts ListOptions) ([]*Product, error)
	// PricesFor looks up current catalog prices for the given product
	// ids. Every requested id must resolve; a missing or inactive
	// product is an error so checkout never prices stale items.
	PricesFor(ctx context.Context, ids []uint) (map[uint]int64, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, id uint) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]*Product, error) {
	if opts.Limit <= 0 || opts.Limit > 100 {
		opts.Limit = 20
	}
	return s.repo.List(ctx, opts)
}

func (s *service) PricesFor(ctx context.Context, ids []uint) (map[uint]int64, error) {
	prices, err := s.repo.GetPricesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		if _, ok := prices[id]; !ok {
			return nil, ErrProductNotFound
		}
	}

	return prices, nil
}
