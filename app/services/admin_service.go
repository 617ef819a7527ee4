package services

import (
	"context"
)

// AdminService assembles the back-office overview: it loads the full
// product and sales lists once per request, then hands them to the pure
// view derivation.
type AdminService struct {
	products ProductStore
	sales    SaleStore
}

func NewAdminService(products ProductStore, sales SaleStore) *AdminService {
	return &AdminService{products: products, sales: sales}
}

// Overview builds one render of the back-office for the given view state.
func (s *AdminService) Overview(ctx context.Context, q AdminQuery) (AdminView, error) {
	products, err := s.products.All(ctx, "name")
	if err != nil {
		return AdminView{}, err
	}

	sales, err := s.sales.All(ctx)
	if err != nil {
		return AdminView{}, err
	}

	return BuildAdminView(products, sales, q), nil
}
