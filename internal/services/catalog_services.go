package services

import (
	"context"

	"github.com/Step-sa/net-f/internal/model"
)

// CatalogStore serves read-only product browsing. Writes happen only through
// the offline importer, never through the server.
type CatalogStore interface {
	List(ctx context.Context, search string) ([]model.ProductInfoView, error)
	Get(ctx context.Context, id int64) (*model.ProductInfoView, error)
}

type CatalogService struct {
	Store CatalogStore
}

func NewCatalogService(store CatalogStore) *CatalogService {
	return &CatalogService{Store: store}
}

func (s *CatalogService) List(ctx context.Context, search string) ([]model.ProductInfoView, error) {
	return s.Store.List(ctx, search)
}

func (s *CatalogService) Get(ctx context.Context, id int64) (*model.ProductInfoView, error) {
	return s.Store.Get(ctx, id)
}
