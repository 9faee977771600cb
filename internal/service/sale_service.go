package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/truestate/retail-sales-api/internal/repository"
)

// SaleStore is the repository surface the sale service depends on.
type SaleStore interface {
	List(ctx context.Context, filter *repository.SaleFilter) (*repository.SaleList, error)
}

// SaleCache caches rendered list pages. A nil cache disables caching.
type SaleCache interface {
	Get(ctx context.Context, filterKey string) (*repository.SaleList, error)
	Set(ctx context.Context, filterKey string, list *repository.SaleList) error
}

// SaleService handles the sales listing business logic.
type SaleService struct {
	sales SaleStore
	cache SaleCache
}

// NewSaleService constructs a SaleService.
func NewSaleService(sales SaleStore, cache SaleCache) *SaleService {
	return &SaleService{sales: sales, cache: cache}
}

// ListSales returns the filtered, sorted page of sales. Cache errors are
// never surfaced: a miss or a Redis failure simply falls through to the
// database.
func (s *SaleService) ListSales(ctx context.Context, filter *repository.SaleFilter) (*repository.SaleList, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}

	var key string
	if s.cache != nil {
		key = filter.CacheKey()
		if list, err := s.cache.Get(ctx, key); err == nil {
			return list, nil
		}
	}

	list, err := s.sales.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, list); err != nil {
			log.Warn().Err(err).Msg("failed to cache sales page")
		}
	}

	return list, nil
}
