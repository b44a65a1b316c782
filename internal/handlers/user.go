package handlers

import (
	"strconv"

	"github.com/bomspace/backend/internal/middleware"
	"github.com/bomspace/backend/internal/models"
	"github.com/bomspace/backend/internal/services"
	"github.com/bomspace/backend/internal/store"
	"github.com/bomspace/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(records *store.RecordStore) *UserHandler {
	return &UserHandler{users: services.NewUserService(records)}
}

// List returns all users for the admin portal
// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

// Catalog returns the fixed assignable roles, teams and projects
// GET /api/users/catalog
func (h *UserHandler) Catalog(c *gin.Context) {
	response.Success(c, gin.H{
		"roles":    models.Roles,
		"teams":    services.AssignableTeams,
		"projects": services.AssignableProjects,
	})
}

// Assign updates a user's role, team, project and optionally PIN, and
// records the assignment in the user's history
// POST /api/users/:id/assign
func (h *UserHandler) Assign(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	var req services.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.users.Assign(id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// Remove deletes a user account; superadmin only
// DELETE /api/users/:id
func (h *UserHandler) Remove(c *gin.Context) {
	actor := middleware.GetActor(c)
	if !services.CanRemoveUser(actor) {
		response.Forbidden(c, "only superadmin can remove users")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	if err := h.users.Remove(id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"removed": id})
}

// ResetPIN sets a user's PIN back to "0000"
// POST /api/users/:id/reset-pin
func (h *UserHandler) ResetPIN(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	user, err := h.users.ResetPIN(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}
