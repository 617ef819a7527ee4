package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lspratas/atelier/app/models"
	"github.com/lspratas/atelier/app/repositories"
	"github.com/lspratas/atelier/app/services"
	"github.com/lspratas/atelier/pkg/bind"
	"github.com/lspratas/atelier/pkg/response"
)

// maxUploadBytes caps a product image upload.
const maxUploadBytes = 10 << 20

// ProductController is the back-office write surface for the catalog:
// create/edit with image upload, delete, showcase toggle, stock adjustment
// and sale registration.
type ProductController struct {
	products *services.ProductService
	sales    *services.SalesService
}

func NewProductController(products *services.ProductService, sales *services.SalesService) *ProductController {
	return &ProductController{products: products, sales: sales}
}

// Index handles GET /api/admin/products: the full list, name order.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	list, err := c.products.List(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Erro interno.")
		return
	}
	response.Success(w, list)
}

// Store handles POST /api/admin/products. Accepts multipart form-data with
// an optional image file, or plain JSON when there is no upload.
func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	in, file, ok := c.readSaveInput(w, r, "")
	if !ok {
		return
	}
	if file != nil {
		defer file.Close()
	}

	p, err := c.products.Save(r.Context(), in)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Erro ao salvar produto.")
		return
	}
	response.Created(w, p)
}

// Update handles PUT /api/admin/products/{id}.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	in, file, ok := c.readSaveInput(w, r, id)
	if !ok {
		return
	}
	if file != nil {
		defer file.Close()
	}

	p, err := c.products.Save(r.Context(), in)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, "Erro ao salvar produto.")
		return
	}
	response.Success(w, p)
}

// Destroy handles DELETE /api/admin/products/{id}. Sales referencing the
// product keep their snapshots.
func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Identificador inválido.")
		return
	}

	if err := c.products.Delete(r.Context(), oid); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, "Erro ao excluir produto.")
		return
	}
	response.SuccessMessage(w, "Produto excluído com sucesso!", nil)
}

type adjustStockRequest struct {
	Delta int `json:"delta"`
}

// AdjustStock handles POST /api/admin/products/{id}/stock with a signed
// delta. The resulting stock is clamped at zero.
func (c *ProductController) AdjustStock(w http.ResponseWriter, r *http.Request) {
	p, ok := c.loadProduct(w, r)
	if !ok {
		return
	}

	var req adjustStockRequest
	if _, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Delta == 0 {
		response.Error(w, http.StatusUnprocessableEntity, "Informe um ajuste diferente de zero.")
		return
	}

	if err := c.sales.AdjustStock(r.Context(), &p, req.Delta); err != nil {
		response.Error(w, http.StatusInternalServerError, "Erro ao atualizar estoque.")
		return
	}
	response.Success(w, p)
}

// ToggleShowcase handles POST /api/admin/products/{id}/showcase.
func (c *ProductController) ToggleShowcase(w http.ResponseWriter, r *http.Request) {
	p, ok := c.loadProduct(w, r)
	if !ok {
		return
	}

	if err := c.products.ToggleShowcase(r.Context(), &p); err != nil {
		response.Error(w, http.StatusInternalServerError, "Erro ao atualizar a vitrine.")
		return
	}
	response.Success(w, p)
}

// RegisterSale handles POST /api/admin/products/{id}/sale: one unit sold
// at the product's current price.
func (c *ProductController) RegisterSale(w http.ResponseWriter, r *http.Request) {
	p, ok := c.loadProduct(w, r)
	if !ok {
		return
	}

	sale, err := c.sales.RegisterSale(r.Context(), &p)
	if err != nil {
		if errors.Is(err, services.ErrOutOfStock) {
			response.Error(w, http.StatusConflict, "Produto sem estoque!")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Erro ao registrar venda.")
		return
	}

	response.Success(w, map[string]interface{}{
		"sale":    sale,
		"product": p,
	})
}

func (c *ProductController) loadProduct(w http.ResponseWriter, r *http.Request) (models.Product, bool) {
	p, err := c.products.Find(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w)
		} else {
			response.Error(w, http.StatusBadRequest, "Identificador inválido.")
		}
		return models.Product{}, false
	}
	return p, true
}

type saveProductRequest struct {
	Name  string `json:"name" validate:"required,min=2"`
	Price string `json:"price" validate:"required"`
	Image string `json:"image" validate:"nullable,url"`
}

// readSaveInput normalises the two accepted encodings (multipart form and
// JSON) into one SaveProductInput. Returns ok=false after writing the
// error response itself.
func (c *ProductController) readSaveInput(w http.ResponseWriter, r *http.Request, id string) (services.SaveProductInput, multipart.File, bool) {
	ct := r.Header.Get("Content-Type")

	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			response.Error(w, http.StatusBadRequest, "Formulário inválido.")
			return services.SaveProductInput{}, nil, false
		}

		in := services.SaveProductInput{
			ID:       id,
			Name:     r.FormValue("name"),
			Price:    r.FormValue("price"),
			ImageURL: r.FormValue("image"),
		}
		fieldErrs := map[string]string{}
		if in.Name == "" {
			fieldErrs["name"] = "name is required"
		}
		if in.Price == "" {
			fieldErrs["price"] = "price is required"
		}
		if len(fieldErrs) > 0 {
			response.ValidationError(w, fieldErrs)
			return services.SaveProductInput{}, nil, false
		}

		file, header, err := r.FormFile("image")
		if err == nil {
			in.File = file
			in.Filename = header.Filename
			return in, file, true
		}
		return in, nil, true
	}

	var req saveProductRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return services.SaveProductInput{}, nil, false
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return services.SaveProductInput{}, nil, false
	}

	return services.SaveProductInput{
		ID:       id,
		Name:     req.Name,
		Price:    req.Price,
		ImageURL: req.Image,
	}, nil, true
}
