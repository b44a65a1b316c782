package handlers

import (
	"io"
	"strconv"

	"github.com/bomspace/backend/internal/middleware"
	"github.com/bomspace/backend/internal/models"
	"github.com/bomspace/backend/internal/services"
	"github.com/bomspace/backend/internal/store"
	"github.com/bomspace/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	uploads  *services.UploadService
	projects *services.ProjectService
}

func NewUploadHandler(records *store.RecordStore, blobs *store.BlobStore) *UploadHandler {
	return &UploadHandler{
		uploads:  services.NewUploadService(records, blobs),
		projects: services.NewProjectService(records),
	}
}

// uploadView decorates an upload record with whether its bytes are
// actually present, so clients render "file missing" instead of a
// broken download link.
type uploadView struct {
	models.Upload
	FileMissing bool `json:"file_missing"`
}

func (h *UploadHandler) views(uploads []models.Upload) []uploadView {
	out := make([]uploadView, 0, len(uploads))
	for i := range uploads {
		out = append(out, uploadView{
			Upload:      uploads[i],
			FileMissing: !h.uploads.HasBlob(&uploads[i]),
		})
	}
	return out
}

// Create stores a new BOM upload
// POST /api/uploads (multipart: file, project_id, team, final)
func (h *UploadHandler) Create(c *gin.Context) {
	actor := middleware.GetActor(c)

	projectID, err := strconv.Atoi(c.PostForm("project_id"))
	if err != nil {
		response.BadRequest(c, "invalid project_id")
		return
	}
	team := c.PostForm("team")
	final := c.PostForm("final") == "true"

	proj, err := h.projects.Get(actor, projectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if final {
		if !services.CanUploadFinal(actor) {
			response.Forbidden(c, "only a project lead can upload a final BOM")
			return
		}
		if team == "" {
			team = actor.Team
		}
	} else {
		if team == "" {
			response.BadRequest(c, "team required")
			return
		}
	}
	if team != "" && !teamIn(proj.Teams, team) {
		response.BadRequest(c, "team does not belong to this project")
		return
	}

	data, name, err := readFormFile(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	entry, err := h.uploads.Create(proj.ID, proj.DisplayName, team, actor.Name, data, name, final)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// List returns uploads matching the query filters
// GET /api/uploads?project_id=&team=&uploaded_by=&final=&order=newest
func (h *UploadHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)

	var f services.UploadFilter
	if v := c.Query("project_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(c, "invalid project_id")
			return
		}
		f.ProjectID = &id
	}
	f.Team = c.Query("team")
	f.UploadedBy = c.Query("uploaded_by")
	if v := c.Query("final"); v != "" {
		b := v == "true"
		f.Final = &b
	}
	f.Newest = c.Query("order") == "newest"

	finalOnly := f.Final != nil && *f.Final
	if !actor.IsAdmin() && !finalOnly {
		switch {
		case f.ProjectID != nil:
			// Central view: project must be visible to the actor.
			if _, err := h.projects.Get(actor, *f.ProjectID); err != nil {
				response.Error(c, err)
				return
			}
		case f.UploadedBy == actor.Name:
			// Personal view.
		default:
			response.Forbidden(c, "project_id filter required")
			return
		}
	}

	uploads, err := h.uploads.List(f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, h.views(uploads))
}

// Mine returns the actor's own uploads, newest first
// GET /api/uploads/mine
func (h *UploadHandler) Mine(c *gin.Context) {
	actor := middleware.GetActor(c)
	uploads, err := h.uploads.List(services.UploadFilter{
		UploadedBy: actor.Name,
		Newest:     true,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, h.views(uploads))
}

// Download streams an upload's bytes with its original file name
// GET /api/uploads/:id/download
func (h *UploadHandler) Download(c *gin.Context) {
	actor := middleware.GetActor(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid upload id")
		return
	}

	u, err := h.uploads.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !u.Final && u.UploadedBy != actor.Name {
		if _, err := h.projects.Get(actor, u.ProjectID); err != nil {
			response.Error(c, err)
			return
		}
	}

	_, data, err := h.uploads.Download(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+u.OriginalName+`"`)
	c.Data(200, "application/octet-stream", data)
}

// Replace swaps an upload's file for a new one, optionally re-marking
// it final
// PUT /api/uploads/:id (multipart: file, final)
func (h *UploadHandler) Replace(c *gin.Context) {
	actor := middleware.GetActor(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid upload id")
		return
	}

	u, err := h.uploads.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !services.CanManageUpload(actor, u) {
		response.Forbidden(c, "not allowed to edit this upload")
		return
	}

	remarkFinal := c.PostForm("final") == "true"
	if remarkFinal && !u.Final && !services.CanManageFinal(actor) {
		response.Forbidden(c, "not allowed to mark uploads final")
		return
	}

	data, name, err := readFormFile(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	entry, err := h.uploads.Replace(id, data, name, actor.Name, remarkFinal)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, entry)
}

// Remove deletes an upload's blob and record
// DELETE /api/uploads/:id
func (h *UploadHandler) Remove(c *gin.Context) {
	actor := middleware.GetActor(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid upload id")
		return
	}

	u, err := h.uploads.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !services.CanManageUpload(actor, u) {
		response.Forbidden(c, "not allowed to remove this upload")
		return
	}

	if err := h.uploads.Remove(id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"removed": id})
}

func readFormFile(c *gin.Context) ([]byte, string, error) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		return nil, "", response.NewValidation("file required")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", response.NewIOError("failed to read uploaded file")
	}
	return data, header.Filename, nil
}

func teamIn(teams []string, team string) bool {
	for _, t := range teams {
		if t == team {
			return true
		}
	}
	return false
}
