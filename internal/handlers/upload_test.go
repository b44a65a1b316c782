package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bomspace/backend/internal/middleware"
	"github.com/bomspace/backend/internal/models"
	"github.com/bomspace/backend/internal/store"
	"github.com/bomspace/backend/internal/utils"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret-for-handler-testing")
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	dir := t.TempDir()
	records := store.NewRecordStore(dir + "/portal.json")
	blobs, err := store.NewBlobStore(dir + "/uploads")
	if err != nil {
		t.Fatal(err)
	}

	doc, err := records.Load()
	if err != nil {
		t.Fatal(err)
	}
	doc.Projects = []models.Project{
		{ID: 1, Name: "lander", Teams: []string{"Design", "Tooling"}},
	}
	if err := records.Save(doc); err != nil {
		t.Fatal(err)
	}

	h := NewUploadHandler(records, blobs)
	router := gin.New()
	api := router.Group("/api", middleware.AuthRequired())
	api.POST("/uploads", h.Create)
	api.GET("/uploads", h.List)
	api.GET("/uploads/mine", h.Mine)
	api.GET("/uploads/:id/download", h.Download)
	api.PUT("/uploads/:id", h.Replace)
	api.DELETE("/uploads/:id", h.Remove)
	return router
}

func tokenFor(t *testing.T, id int, name, role, team string) string {
	t.Helper()
	token, err := utils.GenerateToken(id, name, role, team, 0)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func multipartBody(t *testing.T, fields map[string]string, fileName, fileContent string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		w.WriteField(k, v)
	}
	fw, err := w.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte(fileContent))
	w.Close()
	return &buf, w.FormDataContentType()
}

func doUpload(t *testing.T, router *gin.Engine, token string, fields map[string]string, fileName, content string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, fields, fileName, content)
	req, _ := http.NewRequest("POST", "/api/uploads", body)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func listUploads(t *testing.T, router *gin.Engine, token, query string) []map[string]interface{} {
	t.Helper()
	req, _ := http.NewRequest("GET", "/api/uploads"+query, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list failed: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data []map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	return resp.Data
}

func TestUploadFlow_CreateListFinal(t *testing.T) {
	router := newTestRouter(t)
	alice := tokenFor(t, 2, "alice", models.RoleMember, "Design")
	frank := tokenFor(t, 3, "frank", models.RoleProjectLead, "")

	// Member uploads a BOM for project 1 / team Design.
	w := doUpload(t, router, alice, map[string]string{
		"project_id": "1", "team": "Design",
	}, "bom.csv", "part,qty\nbolt,12\n")
	if w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", w.Code, w.Body.String())
	}

	got := listUploads(t, router, alice, "?project_id=1")
	if len(got) != 1 {
		t.Fatalf("listing has %d records, expected 1", len(got))
	}
	if got[0]["uploaded_by"] != "alice" || got[0]["final"] != false {
		t.Errorf("record = %+v", got[0])
	}
	if got[0]["file_missing"] != false {
		t.Error("fresh upload should not be flagged file_missing")
	}

	// Project lead replaces the file and flags it final.
	id := int(got[0]["id"].(float64))
	body, contentType := multipartBody(t, map[string]string{"final": "true"}, "bom.csv", "part,qty\nbolt,13\n")
	req, _ := http.NewRequest("PUT", fmt.Sprintf("/api/uploads/%d", id), body)
	req.Header.Set("Authorization", "Bearer "+frank)
	req.Header.Set("Content-Type", contentType)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("replace failed: %d %s", w.Code, w.Body.String())
	}

	// The final BOM listing for the project now includes it.
	finals := listUploads(t, router, alice, "?project_id=1&final=true")
	if len(finals) != 1 || int(finals[0]["id"].(float64)) != id {
		t.Errorf("final listing = %+v", finals)
	}
}

func TestUploadCreate_FinalRequiresProjectLead(t *testing.T) {
	router := newTestRouter(t)
	alice := tokenFor(t, 2, "alice", models.RoleMember, "Design")
	admin := tokenFor(t, 4, "gail", models.RoleAdmin, "")
	frank := tokenFor(t, 3, "frank", models.RoleProjectLead, "Design")

	fields := map[string]string{"project_id": "1", "team": "Design", "final": "true"}
	if w := doUpload(t, router, alice, fields, "bom.csv", "x"); w.Code != http.StatusForbidden {
		t.Errorf("member final upload: %d, expected 403", w.Code)
	}
	// Admins inherit edit/remove but not the base final upload action.
	if w := doUpload(t, router, admin, fields, "bom.csv", "x"); w.Code != http.StatusForbidden {
		t.Errorf("admin final upload: %d, expected 403", w.Code)
	}
	if w := doUpload(t, router, frank, fields, "bom.csv", "x"); w.Code != http.StatusCreated {
		t.Errorf("project_lead final upload: %d, expected 201", w.Code)
	}
}

func TestUploadRemove_PolicyEnforced(t *testing.T) {
	router := newTestRouter(t)
	alice := tokenFor(t, 2, "alice", models.RoleMember, "Design")
	dave := tokenFor(t, 5, "dave", models.RoleMember, "Design")
	designLead := tokenFor(t, 6, "erin", models.RoleTeamLead, "Design")
	toolingLead := tokenFor(t, 7, "tom", models.RoleTeamLead, "Tooling")

	doUpload(t, router, alice, map[string]string{"project_id": "1", "team": "Design"}, "bom.csv", "x")

	remove := func(token string) int {
		req, _ := http.NewRequest("DELETE", "/api/uploads/1", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	if code := remove(dave); code != http.StatusForbidden {
		t.Errorf("other member remove: %d, expected 403", code)
	}
	if code := remove(toolingLead); code != http.StatusForbidden {
		t.Errorf("other team's lead remove: %d, expected 403", code)
	}
	if code := remove(designLead); code != http.StatusOK {
		t.Errorf("own team's lead remove: %d, expected 200", code)
	}
}

func TestUploadCreate_RejectsBadExtension(t *testing.T) {
	router := newTestRouter(t)
	alice := tokenFor(t, 2, "alice", models.RoleMember, "Design")

	w := doUpload(t, router, alice, map[string]string{"project_id": "1", "team": "Design"}, "bom.pdf", "x")
	if w.Code != http.StatusBadRequest {
		t.Errorf("pdf upload: %d, expected 400", w.Code)
	}
}

func TestUploadDownload_ServesOriginalName(t *testing.T) {
	router := newTestRouter(t)
	alice := tokenFor(t, 2, "alice", models.RoleMember, "Design")

	doUpload(t, router, alice, map[string]string{"project_id": "1", "team": "Design"}, "parts list.xlsx", "bytes")

	req, _ := http.NewRequest("GET", "/api/uploads/1/download", nil)
	req.Header.Set("Authorization", "Bearer "+alice)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("download failed: %d %s", w.Code, w.Body.String())
	}
	if w.Body.String() != "bytes" {
		t.Errorf("body = %q", w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="parts list.xlsx"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
}
