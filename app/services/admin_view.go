package services

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/lspratas/atelier/app/models"
	"github.com/lspratas/atelier/pkg/collection"
	"github.com/lspratas/atelier/pkg/currency"
)

// Tab selects which back-office panel is being rendered.
type Tab string

const (
	TabCatalog   Tab = "catalog"
	TabInventory Tab = "inventory"
	TabSales     Tab = "sales"
)

// SortMode orders the inventory tab.
type SortMode string

const (
	SortByName    SortMode = "name"
	SortStockAsc  SortMode = "stock_asc"
	SortStockDesc SortMode = "stock_desc"
)

// AdminQuery is the immutable view state entered by the admin: free-text
// search, active tab and sort mode. A zero value means "catalog tab, no
// search, name order".
type AdminQuery struct {
	Search string   `json:"search"`
	Tab    Tab      `json:"tab"`
	Sort   SortMode `json:"sort"`
}

// ParseAdminQuery normalises raw query-string values into an AdminQuery,
// falling back to defaults on anything unknown.
func ParseAdminQuery(search, tab, sort string) AdminQuery {
	q := AdminQuery{Search: search, Tab: TabCatalog, Sort: SortByName}

	switch Tab(tab) {
	case TabCatalog, TabInventory, TabSales:
		q.Tab = Tab(tab)
	}
	switch SortMode(sort) {
	case SortByName, SortStockAsc, SortStockDesc:
		q.Sort = SortMode(sort)
	}
	return q
}

// ProductRow is a product plus its derived inventory status. Status is
// presentation state, computed per render, never stored.
type ProductRow struct {
	models.Product
	Status models.StockStatus `json:"status,omitempty"`
}

// Stats are the dashboard aggregates. They are always computed over the
// unfiltered product and sales lists, independent of search or tab.
type Stats struct {
	TotalProducts       int    `json:"totalProducts"`
	TotalStock          int    `json:"totalStock"`
	TotalInventoryValue string `json:"totalInventoryValue"`
	TotalRevenue        string `json:"totalRevenue"`
}

// AdminView is everything one back-office render needs.
type AdminView struct {
	Query    AdminQuery    `json:"query"`
	Products []ProductRow  `json:"products"`
	Sales    []models.Sale `json:"sales,omitempty"`
	Stats    Stats         `json:"stats"`
}

// BuildAdminView derives the back-office view from full in-memory lists and
// the admin's view state. Pure: no I/O, inputs are never mutated.
//
// Derivation order matters: search filter first, then the tab's showcase
// filter, then (inventory only) the sort.
func BuildAdminView(products []models.Product, sales []models.Sale, q AdminQuery) AdminView {
	term := strings.ToLower(strings.TrimSpace(q.Search))

	filtered := collection.Filter(products, func(p models.Product) bool {
		return term == "" || strings.Contains(strings.ToLower(p.Name), term)
	})

	if q.Tab == TabCatalog {
		filtered = collection.Filter(filtered, func(p models.Product) bool {
			return p.InShowcase
		})
	}

	if q.Tab == TabInventory {
		switch q.Sort {
		case SortStockAsc:
			filtered = collection.SortBy(filtered, func(a, b models.Product) bool {
				return a.Stock < b.Stock
			})
		case SortStockDesc:
			filtered = collection.SortBy(filtered, func(a, b models.Product) bool {
				return a.Stock > b.Stock
			})
		default:
			// pt-BR collation so accented names ("Ônix", "Âmbar") sort with
			// their base letter. Collators are stateful, so one per call.
			col := collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
			filtered = collection.SortBy(filtered, func(a, b models.Product) bool {
				return col.CompareString(a.Name, b.Name) < 0
			})
		}
	}

	rows := collection.Map(filtered, func(p models.Product) ProductRow {
		row := ProductRow{Product: p}
		if q.Tab == TabInventory {
			row.Status = p.StockState()
		}
		return row
	})

	view := AdminView{
		Query:    q,
		Products: rows,
		Stats:    buildStats(products, sales),
	}
	if q.Tab == TabSales {
		view.Sales = sales
	}
	return view
}

func buildStats(products []models.Product, sales []models.Sale) Stats {
	totalStock := 0
	for _, p := range products {
		totalStock += p.Stock
	}

	inventoryValue := collection.SumBy(products, func(p models.Product) float64 {
		return currency.Parse(p.Price) * float64(p.Stock)
	})
	revenue := collection.SumBy(sales, func(s models.Sale) float64 {
		return s.TotalPrice
	})

	return Stats{
		TotalProducts:       len(products),
		TotalStock:          totalStock,
		TotalInventoryValue: currency.Format(inventoryValue),
		TotalRevenue:        currency.Format(revenue),
	}
}
