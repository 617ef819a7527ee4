package services

import (
	"context"
	"time"

	"github.com/lspratas/atelier/app/models"
	"github.com/lspratas/atelier/pkg/cache"
	"github.com/lspratas/atelier/pkg/event"
)

const (
	catalogCacheKey = "catalog:showcased"
	catalogCacheTTL = time.Minute

	// EventCatalogChanged fires after any write that can change what the
	// public page shows.
	EventCatalogChanged = "catalog.changed"
)

func init() {
	event.Listen(EventCatalogChanged, func(payload interface{}) {
		ctx, ok := payload.(context.Context)
		if !ok || ctx == nil {
			ctx = context.Background()
		}
		_ = cache.Del(ctx, catalogCacheKey)
	})
}

// CatalogService serves the public storefront: only showcased products,
// cached briefly so the landing page does not hit the database per visitor.
type CatalogService struct {
	products ProductStore
}

func NewCatalogService(products ProductStore) *CatalogService {
	return &CatalogService{products: products}
}

// Showcased returns the publicly visible products, cache-first.
func (s *CatalogService) Showcased(ctx context.Context) ([]models.Product, error) {
	var cached []models.Product
	if cache.Get(ctx, catalogCacheKey, &cached) {
		return cached, nil
	}

	list, err := s.products.Showcased(ctx)
	if err != nil {
		return nil, err
	}

	_ = cache.Set(ctx, catalogCacheKey, list, catalogCacheTTL)
	return list, nil
}

func invalidateCatalog(ctx context.Context) {
	event.Fire(EventCatalogChanged, ctx)
}
