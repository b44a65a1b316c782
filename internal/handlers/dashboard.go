package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bomspace/backend/internal/middleware"
	"github.com/bomspace/backend/internal/models"
	"github.com/bomspace/backend/internal/services"
	"github.com/bomspace/backend/internal/store"
	"github.com/bomspace/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboards *services.DashboardService
	projects   *services.ProjectService
}

func NewDashboardHandler(records *store.RecordStore) *DashboardHandler {
	return &DashboardHandler{
		dashboards: services.NewDashboardService(records),
		projects:   services.NewProjectService(records),
	}
}

type saveDashboardRequest struct {
	Name      string           `json:"name"`
	ProjectID int              `json:"project_id" binding:"required"`
	Team      string           `json:"team" binding:"required"`
	File      string           `json:"file"`
	Chart     models.ChartSpec `json:"chart"`
}

// Save appends a chart configuration for a project and team
// POST /api/dashboards
func (h *DashboardHandler) Save(c *gin.Context) {
	actor := middleware.GetActor(c)

	var req saveDashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	proj, err := h.projects.Get(actor, req.ProjectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !services.CanUseTeam(actor, req.Team) {
		response.Forbidden(c, "not allowed to save dashboards for this team")
		return
	}

	name := req.Name
	if name == "" {
		name = fmt.Sprintf("%s-%s-%s", proj.Name, req.Team, time.Now().UTC().Format(time.RFC3339))
	}

	cfg, err := h.dashboards.Save(models.DashboardConfig{
		Name:      name,
		ProjectID: req.ProjectID,
		Team:      req.Team,
		File:      req.File,
		Chart:     req.Chart,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cfg)
}

// List returns saved dashboards for a project, optionally narrowed to
// a team
// GET /api/dashboards?project_id=&team=
func (h *DashboardHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)

	projectID, err := strconv.Atoi(c.Query("project_id"))
	if err != nil {
		response.BadRequest(c, "invalid project_id")
		return
	}
	if _, err := h.projects.Get(actor, projectID); err != nil {
		response.Error(c, err)
		return
	}

	dashboards, err := h.dashboards.List(projectID, c.Query("team"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dashboards)
}
