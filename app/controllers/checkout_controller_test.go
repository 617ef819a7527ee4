package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lspratas/atelier/app/controllers"
)

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/checkout/whatsapp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestCheckoutWhatsAppBuildsLink(t *testing.T) {
	ctl := controllers.NewCheckoutController()

	rec := postJSON(t, ctl.WhatsApp,
		`{"items":[{"name":"Anel de Prata","price":"R$ 89,90"}]}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			URL     string `json:"url"`
			Message string `json:"message"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.True(t, strings.HasPrefix(body.Data.URL, "https://wa.me/"))
	assert.Contains(t, body.Data.Message, "- Anel de Prata (R$ 89,90)")
	assert.True(t, strings.HasPrefix(body.Data.Message, "Olá Lali!!"))
}

func TestCheckoutWhatsAppRejectsEmptyCart(t *testing.T) {
	ctl := controllers.NewCheckoutController()

	rec := postJSON(t, ctl.WhatsApp, `{"items":[]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCheckoutWhatsAppRejectsBadJSON(t *testing.T) {
	ctl := controllers.NewCheckoutController()

	rec := postJSON(t, ctl.WhatsApp, `{"items":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutWhatsAppRejectsNamelessItem(t *testing.T) {
	ctl := controllers.NewCheckoutController()

	rec := postJSON(t, ctl.WhatsApp, `{"items":[{"name":"","price":"R$ 1,00"}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCheckoutWhatsAppRejectsPricelessItem(t *testing.T) {
	ctl := controllers.NewCheckoutController()

	rec := postJSON(t, ctl.WhatsApp, `{"items":[{"name":"Anel de Prata","price":""}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
