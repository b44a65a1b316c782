package handlers

import (
	"github.com/bomspace/backend/internal/middleware"
	"github.com/bomspace/backend/internal/services"
	"github.com/bomspace/backend/internal/store"
	"github.com/bomspace/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projects *services.ProjectService
}

func NewProjectHandler(records *store.RecordStore) *ProjectHandler {
	return &ProjectHandler{projects: services.NewProjectService(records)}
}

// List returns the projects visible to the actor with their stable
// "Project N" display labels
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)
	projects, err := h.projects.List(actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, projects)
}
