package controllers

import (
	"net/http"

	"github.com/lspratas/atelier/app/services"
	"github.com/lspratas/atelier/pkg/bind"
	"github.com/lspratas/atelier/pkg/metrics"
	"github.com/lspratas/atelier/pkg/response"
)

// CheckoutController turns a visitor's selection into the WhatsApp handoff
// link. There is no payment step; the conversation is the checkout.
type CheckoutController struct{}

func NewCheckoutController() *CheckoutController {
	return &CheckoutController{}
}

type checkoutRequest struct {
	Items []services.CartItem `json:"items"`
}

// WhatsApp handles POST /api/checkout/whatsapp.
func (c *CheckoutController) WhatsApp(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	if len(req.Items) == 0 {
		response.Error(w, http.StatusUnprocessableEntity, "Carrinho vazio.")
		return
	}
	for _, it := range req.Items {
		if it.Name == "" {
			response.Error(w, http.StatusUnprocessableEntity, "Item sem nome no carrinho.")
			return
		}
		if it.Price == "" {
			response.Error(w, http.StatusUnprocessableEntity, "Item sem preço no carrinho.")
			return
		}
	}

	link := services.HandoffLink(req.Items)
	metrics.HandoffLinks.Inc()

	response.Success(w, map[string]string{
		"url":     link,
		"message": services.HandoffMessage(req.Items),
	})
}
