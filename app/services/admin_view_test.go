package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lspratas/atelier/app/models"
	"github.com/lspratas/atelier/app/services"
)

func fixtureProducts() []models.Product {
	return []models.Product{
		{ID: primitive.NewObjectID(), Name: "Anel de Prata", Price: "R$ 10,00", Stock: 1, InShowcase: true},
		{ID: primitive.NewObjectID(), Name: "Colar Veneziano", Price: "R$ 5,00", Stock: 2, InShowcase: false},
		{ID: primitive.NewObjectID(), Name: "Anel Dourado", Price: "R$ 7,50", Stock: 0, InShowcase: true},
		{ID: primitive.NewObjectID(), Name: "Brinco Argola", Price: "R$ 20,00", Stock: 5, InShowcase: true},
	}
}

func fixtureSales() []models.Sale {
	return []models.Sale{
		{ProductName: "Anel de Prata", Quantity: 1, TotalPrice: 10},
		{ProductName: "Brinco Argola", Quantity: 1, TotalPrice: 15.5},
	}
}

func rowNames(rows []services.ProductRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestParseAdminQueryDefaults(t *testing.T) {
	q := services.ParseAdminQuery("", "", "")
	assert.Equal(t, services.TabCatalog, q.Tab)
	assert.Equal(t, services.SortByName, q.Sort)

	q = services.ParseAdminQuery("anel", "garbage", "sideways")
	assert.Equal(t, services.TabCatalog, q.Tab)
	assert.Equal(t, services.SortByName, q.Sort)
	assert.Equal(t, "anel", q.Search)

	q = services.ParseAdminQuery("", "inventory", "stock_desc")
	assert.Equal(t, services.TabInventory, q.Tab)
	assert.Equal(t, services.SortStockDesc, q.Sort)
}

func TestBuildAdminViewCatalogShowcaseOnly(t *testing.T) {
	view := services.BuildAdminView(fixtureProducts(), nil, services.AdminQuery{Tab: services.TabCatalog})

	assert.ElementsMatch(t,
		[]string{"Anel de Prata", "Anel Dourado", "Brinco Argola"},
		rowNames(view.Products))
	assert.Nil(t, view.Sales)
}

func TestBuildAdminViewSearchIsCaseInsensitiveContains(t *testing.T) {
	q := services.AdminQuery{Search: "  ANEL ", Tab: services.TabInventory, Sort: services.SortByName}
	view := services.BuildAdminView(fixtureProducts(), nil, q)

	assert.Equal(t, []string{"Anel de Prata", "Anel Dourado"}, rowNames(view.Products))
}

func TestBuildAdminViewInventorySorts(t *testing.T) {
	products := fixtureProducts()

	asc := services.BuildAdminView(products, nil,
		services.AdminQuery{Tab: services.TabInventory, Sort: services.SortStockAsc})
	assert.Equal(t, []string{"Anel Dourado", "Anel de Prata", "Colar Veneziano", "Brinco Argola"},
		rowNames(asc.Products))

	desc := services.BuildAdminView(products, nil,
		services.AdminQuery{Tab: services.TabInventory, Sort: services.SortStockDesc})
	assert.Equal(t, []string{"Brinco Argola", "Colar Veneziano", "Anel de Prata", "Anel Dourado"},
		rowNames(desc.Products))
}

func TestBuildAdminViewNameSortUsesPortugueseCollation(t *testing.T) {
	products := []models.Product{
		{ID: primitive.NewObjectID(), Name: "Prata Lisa"},
		{ID: primitive.NewObjectID(), Name: "Ônix Negro"},
		{ID: primitive.NewObjectID(), Name: "Âmbar Bruto"},
	}

	view := services.BuildAdminView(products, nil,
		services.AdminQuery{Tab: services.TabInventory, Sort: services.SortByName})

	// Accented initials sort with their base letter, not by byte value.
	assert.Equal(t, []string{"Âmbar Bruto", "Ônix Negro", "Prata Lisa"},
		rowNames(view.Products))
}

func TestBuildAdminViewInventoryStatus(t *testing.T) {
	view := services.BuildAdminView(fixtureProducts(), nil,
		services.AdminQuery{Tab: services.TabInventory, Sort: services.SortStockAsc})

	require.Len(t, view.Products, 4)
	assert.Equal(t, models.StockOut, view.Products[0].Status) // stock 0
	assert.Equal(t, models.StockLow, view.Products[1].Status) // stock 1
	assert.Equal(t, models.StockLow, view.Products[2].Status) // stock 2
	assert.Equal(t, models.StockIn, view.Products[3].Status)  // stock 5

	// Status is inventory-tab presentation only.
	catalog := services.BuildAdminView(fixtureProducts(), nil, services.AdminQuery{Tab: services.TabCatalog})
	for _, row := range catalog.Products {
		assert.Empty(t, row.Status)
	}
}

func TestBuildAdminViewStatsIgnoreFilters(t *testing.T) {
	q := services.AdminQuery{Search: "anel", Tab: services.TabCatalog}
	view := services.BuildAdminView(fixtureProducts(), fixtureSales(), q)

	assert.Equal(t, 4, view.Stats.TotalProducts)
	assert.Equal(t, 8, view.Stats.TotalStock)
	// 10*1 + 5*2 + 7.50*0 + 20*5 = 120
	assert.Equal(t, "R$ 120,00", view.Stats.TotalInventoryValue)
	// 10 + 15.50
	assert.Equal(t, "R$ 25,50", view.Stats.TotalRevenue)
}

func TestBuildAdminViewSalesTab(t *testing.T) {
	sales := fixtureSales()
	view := services.BuildAdminView(fixtureProducts(), sales, services.AdminQuery{Tab: services.TabSales})

	assert.Equal(t, sales, view.Sales)
}
