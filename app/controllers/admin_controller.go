package controllers

import (
	"net/http"

	"github.com/lspratas/atelier/app/services"
	"github.com/lspratas/atelier/pkg/response"
)

// AdminController renders the back-office overview.
type AdminController struct {
	admin *services.AdminService
}

func NewAdminController(admin *services.AdminService) *AdminController {
	return &AdminController{admin: admin}
}

// Overview handles GET /api/admin/overview?q=&tab=&sort=. One response
// carries the filtered rows for the active tab plus the global aggregates.
func (c *AdminController) Overview(w http.ResponseWriter, r *http.Request) {
	q := services.ParseAdminQuery(
		r.URL.Query().Get("q"),
		r.URL.Query().Get("tab"),
		r.URL.Query().Get("sort"),
	)

	view, err := c.admin.Overview(r.Context(), q)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Erro interno.")
		return
	}
	response.Success(w, view)
}
