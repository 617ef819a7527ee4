package services_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lspratas/atelier/app/models"
	"github.com/lspratas/atelier/app/services"
)

func TestCartAddRemoveContains(t *testing.T) {
	ring := models.Product{ID: primitive.NewObjectID(), Name: "Anel", Price: "R$ 10,00"}
	collar := models.Product{ID: primitive.NewObjectID(), Name: "Colar", Price: "R$ 20,00"}

	var cart services.Cart
	cart.Add(ring)
	cart.Add(collar)

	assert.Equal(t, 2, cart.Len())
	assert.True(t, cart.Contains(ring.ID))

	cart.Remove(ring.ID)
	assert.Equal(t, 1, cart.Len())
	assert.False(t, cart.Contains(ring.ID))

	items := cart.HandoffItems()
	require.Len(t, items, 1)
	assert.Equal(t, "Colar", items[0].Name)
}

func TestHandoffMessageLayout(t *testing.T) {
	items := []services.CartItem{
		{Name: "Anel de Prata", Price: "R$ 89,90"},
		{Name: "Colar Ponto de Luz", Price: "R$ 119,90"},
	}

	msg := services.HandoffMessage(items)

	want := "Olá Lali!! Tenho interesse nos seguintes produtos:\n\n" +
		"- Anel de Prata (R$ 89,90)\n" +
		"- Colar Ponto de Luz (R$ 119,90)\n" +
		"\nAguardo o contato!"
	assert.Equal(t, want, msg)
}

func TestHandoffLink(t *testing.T) {
	items := []services.CartItem{{Name: "Anel", Price: "R$ 10,00"}}

	link := services.HandoffLink(items)

	require.True(t, strings.HasPrefix(link, "https://wa.me/"))

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, services.HandoffMessage(items), u.Query().Get("text"))

	// Same selection, same link.
	assert.Equal(t, link, services.HandoffLink(items))
}
