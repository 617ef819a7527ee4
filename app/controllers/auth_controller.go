package controllers

import (
	"errors"
	"net/http"

	"github.com/lspratas/atelier/app/services"
	"github.com/lspratas/atelier/pkg/bind"
	"github.com/lspratas/atelier/pkg/logger"
	"github.com/lspratas/atelier/pkg/middleware"
	"github.com/lspratas/atelier/pkg/response"
)

// AuthController exposes the admin gate over HTTP.
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Login handles POST /api/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, user, err := c.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Error(w, http.StatusUnauthorized, "Credenciais inválidas. Tente novamente.")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Erro interno.")
		return
	}

	response.Success(w, map[string]interface{}{
		"token": token,
		"user": map[string]string{
			"id":    user.ID.Hex(),
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// Logout handles POST /api/logout. The session token is revoked for the
// rest of its lifetime.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	if claims == nil {
		response.Unauthorized(w)
		return
	}

	if err := c.auth.Logout(r.Context(), claims); err != nil {
		logger.WithCtx(r.Context()).Error("logout revocation failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Erro interno.")
		return
	}

	response.SuccessMessage(w, "Sessão encerrada.", nil)
}

// Me handles GET /api/me, echoing the authenticated session.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	if claims == nil {
		response.Unauthorized(w)
		return
	}

	response.Success(w, map[string]string{
		"id":    claims.UserID,
		"email": claims.Email,
	})
}
