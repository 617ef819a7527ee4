package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lspratas/atelier/app/models"
	"github.com/lspratas/atelier/app/services"
)

func TestShowcasedReturnsOnlyVisibleProducts(t *testing.T) {
	products := newProductFake(
		models.Product{Name: "Anel", InShowcase: true},
		models.Product{Name: "Colar", InShowcase: false},
		models.Product{Name: "Brinco", InShowcase: true},
	)
	svc := services.NewCatalogService(products)

	list, err := svc.Showcased(context.Background())
	require.NoError(t, err)

	require.Len(t, list, 2)
	for _, p := range list {
		assert.True(t, p.InShowcase)
	}
}

func TestOverviewLoadsOnceAndDerives(t *testing.T) {
	products := newProductFake(
		models.Product{Name: "Anel", Price: "R$ 10,00", Stock: 2, InShowcase: true},
	)
	sales := &saleFake{}
	svc := services.NewAdminService(products, sales)

	view, err := svc.Overview(context.Background(), services.ParseAdminQuery("", "inventory", ""))
	require.NoError(t, err)

	assert.Equal(t, 1, view.Stats.TotalProducts)
	assert.Equal(t, "R$ 20,00", view.Stats.TotalInventoryValue)
	require.Len(t, view.Products, 1)
	assert.Equal(t, models.StockLow, view.Products[0].Status)
}
