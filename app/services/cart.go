package services

import (
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lspratas/atelier/app/models"
	"github.com/lspratas/atelier/config"
)

// Cart is a visitor's transient selection. It lives only for the request
// that builds the handoff link — nothing here is ever persisted.
type Cart struct {
	items []models.Product
}

// Add appends a product to the selection. Duplicates are allowed; the
// storefront decides whether to offer the same piece twice.
func (c *Cart) Add(p models.Product) {
	c.items = append(c.items, p)
}

// Remove drops every line matching the given product id.
func (c *Cart) Remove(id primitive.ObjectID) {
	kept := c.items[:0]
	for _, it := range c.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	c.items = kept
}

// Contains reports whether the product is in the selection.
func (c *Cart) Contains(id primitive.ObjectID) bool {
	for _, it := range c.items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// Len returns the number of selected lines.
func (c *Cart) Len() int { return len(c.items) }

// Items returns a copy of the selection.
func (c *Cart) Items() []models.Product {
	out := make([]models.Product, len(c.items))
	copy(out, c.items)
	return out
}

// CartItem is one line of a checkout submission from the storefront. Name
// and price arrive as display strings; the handoff message reproduces them
// verbatim.
type CartItem struct {
	Name  string `json:"name" validate:"required"`
	Price string `json:"price" validate:"required"`
}

// HandoffItems converts the cart into checkout lines.
func (c *Cart) HandoffItems() []CartItem {
	out := make([]CartItem, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, CartItem{Name: it.Name, Price: it.Price})
	}
	return out
}

const (
	handoffGreeting = "Olá Lali!! Tenho interesse nos seguintes produtos:\n\n"
	handoffClosing  = "\nAguardo o contato!"
)

// HandoffMessage renders the pt-BR WhatsApp message for a selection:
// greeting, one "- name (price)" line per item, closing.
func HandoffMessage(items []CartItem) string {
	var b strings.Builder
	b.WriteString(handoffGreeting)
	for _, it := range items {
		b.WriteString("- ")
		b.WriteString(it.Name)
		b.WriteString(" (")
		b.WriteString(it.Price)
		b.WriteString(")\n")
	}
	b.WriteString(handoffClosing)
	return b.String()
}

// HandoffLink builds the wa.me deep link that hands the conversation over
// to the store's WhatsApp number with the message pre-filled.
func HandoffLink(items []CartItem) string {
	msg := HandoffMessage(items)
	return "https://wa.me/" + config.WhatsAppNumber() + "?text=" + url.QueryEscape(msg)
}
