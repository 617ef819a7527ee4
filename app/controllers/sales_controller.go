package controllers

import (
	"net/http"

	"github.com/lspratas/atelier/app/services"
	"github.com/lspratas/atelier/pkg/response"
)

// SalesController exposes the read side of the sales ledger.
type SalesController struct {
	sales *services.SalesService
}

func NewSalesController(sales *services.SalesService) *SalesController {
	return &SalesController{sales: sales}
}

// Index handles GET /api/admin/sales: the full ledger, newest first.
func (c *SalesController) Index(w http.ResponseWriter, r *http.Request) {
	list, err := c.sales.History(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Erro interno.")
		return
	}
	response.Success(w, list)
}
