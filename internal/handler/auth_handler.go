package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/prepmaster/prepmaster-backend/internal/model"
	"github.com/prepmaster/prepmaster-backend/internal/response"
	"github.com/prepmaster/prepmaster-backend/internal/service"
	"github.com/prepmaster/prepmaster-backend/internal/validator"
)

// AuthHandler serves the demo login and signup endpoints.
type AuthHandler struct {
	auth *service.AuthService
	log  zerolog.Logger
}

func NewAuthHandler(auth *service.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		auth: auth,
		log:  log.With().Str("component", "auth_handler").Logger(),
	}
}

// Login authenticates a user.
// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, "Validation failed", fields)
		return
	}

	user, token, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.log.Error().Err(err).Msg("login failed")
		response.Fail(c, http.StatusInternalServerError, "Login failed")
		return
	}

	response.OK(c, gin.H{"user": user, "token": token})
}

// Signup registers a new user.
// POST /signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, "Validation failed", fields)
		return
	}

	user, token, err := h.auth.Signup(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrPasswordTooShort) {
			response.Fail(c, http.StatusBadRequest, "Password must be at least 6 characters")
			return
		}
		h.log.Error().Err(err).Msg("signup failed")
		response.Fail(c, http.StatusInternalServerError, "Signup failed")
		return
	}

	response.OK(c, gin.H{"user": user, "token": token})
}
