package controllers

import (
	"net/http"

	"github.com/lspratas/atelier/app/services"
	"github.com/lspratas/atelier/pkg/response"
)

// CatalogController serves the public storefront.
type CatalogController struct {
	catalog *services.CatalogService
}

func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// Index handles GET /api/catalog: every showcased product, nothing else.
// Visitors never see stock counts or hidden pieces.
func (c *CatalogController) Index(w http.ResponseWriter, r *http.Request) {
	products, err := c.catalog.Showcased(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Erro interno.")
		return
	}

	type item struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Price string `json:"price"`
		Image string `json:"image"`
	}

	out := make([]item, 0, len(products))
	for _, p := range products {
		out = append(out, item{
			ID:    p.ID.Hex(),
			Name:  p.Name,
			Price: p.Price,
			Image: p.Image,
		})
	}
	response.Success(w, out)
}
