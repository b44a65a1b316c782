package handlers

import (
	"github.com/bomspace/backend/internal/config"
	"github.com/bomspace/backend/internal/middleware"
	"github.com/bomspace/backend/internal/services"
	"github.com/bomspace/backend/internal/store"
	"github.com/bomspace/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth *services.AuthService
	seed *config.SeedConfig
}

func NewAuthHandler(records *store.RecordStore, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		auth: services.NewAuthService(records, &cfg.JWT),
		seed: &cfg.Seed,
	}
}

// Login handles user login by (name, role, PIN)
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.auth.Login(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// GetCurrentUser returns the stored record for the logged-in user
// GET /api/auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	actor := middleware.GetActor(c)
	user, err := h.auth.GetUserByID(actor.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user.Sanitized())
}

// Logout ends the session; token removal happens client-side
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	response.Success(c, gin.H{"message": "logged out"})
}

// SeedSuperadmin creates the bootstrap superadmin account when the
// users collection is empty.
func (h *AuthHandler) SeedSuperadmin() error {
	return h.auth.CreateSuperadminIfNotExists(h.seed.SuperadminName, h.seed.SuperadminPIN)
}
