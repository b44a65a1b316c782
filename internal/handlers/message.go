package handlers

import (
	"strconv"

	"github.com/bomspace/backend/internal/middleware"
	"github.com/bomspace/backend/internal/services"
	"github.com/bomspace/backend/internal/store"
	"github.com/bomspace/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messages *services.MessageService
	projects *services.ProjectService
}

func NewMessageHandler(records *store.RecordStore) *MessageHandler {
	return &MessageHandler{
		messages: services.NewMessageService(records),
		projects: services.NewProjectService(records),
	}
}

type sendMessageRequest struct {
	To      *string `json:"to"`
	Project string  `json:"project" binding:"required"`
	Team    string  `json:"team" binding:"required"`
	Text    string  `json:"text"`
}

// Send appends a message to a team's log; to is omitted for a
// broadcast
// POST /api/messages
func (h *MessageHandler) Send(c *gin.Context) {
	actor := middleware.GetActor(c)

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	proj, err := h.projects.GetByDisplayName(actor, req.Project)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !teamIn(proj.Teams, req.Team) {
		response.BadRequest(c, "team does not belong to this project")
		return
	}
	if !services.CanUseTeam(actor, req.Team) {
		response.Forbidden(c, "not allowed to message this team")
		return
	}

	msg, err := h.messages.Send(actor.Name, req.To, req.Project, req.Team, req.Text)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, msg)
}

// List returns the actor's view of a team's message log, in insertion
// order
// GET /api/messages?project=&team=&limit=
func (h *MessageHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)

	project := c.Query("project")
	team := c.Query("team")

	if project != "" {
		if _, err := h.projects.GetByDisplayName(actor, project); err != nil {
			response.Error(c, err)
			return
		}
	} else if !actor.IsAdmin() {
		response.BadRequest(c, "project filter required")
		return
	}
	if team != "" && !services.CanUseTeam(actor, team) {
		response.Forbidden(c, "not allowed to read this team's messages")
		return
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			response.BadRequest(c, "invalid limit")
			return
		}
		limit = n
	}

	msgs, err := h.messages.List(project, team, actor.Name, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, msgs)
}
