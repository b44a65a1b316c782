package services

import (
	"testing"

	"github.com/bomspace/backend/internal/models"
	"github.com/bomspace/backend/internal/store"
)

func newTestProjectService(t *testing.T) *ProjectService {
	t.Helper()
	records := store.NewRecordStore(t.TempDir() + "/portal.json")
	doc, err := records.Load()
	if err != nil {
		t.Fatal(err)
	}
	doc.Projects = []models.Project{
		{ID: 11, Name: "lander", Teams: []string{"Design", "Tooling"}},
		{ID: 7, Name: "booster", Teams: []string{"Finance"}},
	}
	if err := records.Save(doc); err != nil {
		t.Fatal(err)
	}
	return NewProjectService(records)
}

func TestProjectService_DisplayNamesFollowListOrder(t *testing.T) {
	s := newTestProjectService(t)
	admin := &models.User{Role: models.RoleAdmin}

	got, err := s.List(admin)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List() returned %d projects", len(got))
	}
	// Labels are positional, not derived from ids.
	if got[0].DisplayName != "Project 1" || got[0].ID != 11 {
		t.Errorf("first project = %+v", got[0])
	}
	if got[1].DisplayName != "Project 2" || got[1].ID != 7 {
		t.Errorf("second project = %+v", got[1])
	}
}

func TestProjectService_DisplayNamesStableUnderFiltering(t *testing.T) {
	s := newTestProjectService(t)
	finance := &models.User{Role: models.RoleMember, Team: "Finance"}

	got, err := s.List(finance)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("List() returned %d projects, expected only the Finance one", len(got))
	}
	// The hidden first project still occupies position 1.
	if got[0].DisplayName != "Project 2" {
		t.Errorf("display name = %q, expected Project 2", got[0].DisplayName)
	}
}

func TestProjectService_GetEnforcesVisibility(t *testing.T) {
	s := newTestProjectService(t)

	finance := &models.User{Role: models.RoleMember, Team: "Finance"}
	if _, err := s.Get(finance, 11); err == nil {
		t.Error("Get() should deny a project outside the actor's team")
	}
	if _, err := s.Get(finance, 7); err != nil {
		t.Errorf("Get() error = %v", err)
	}
	if _, err := s.Get(finance, 99); err == nil {
		t.Error("Get() on a missing project should fail")
	}
}

func TestProjectService_GetByDisplayName(t *testing.T) {
	s := newTestProjectService(t)
	admin := &models.User{Role: models.RoleAdmin}

	p, err := s.GetByDisplayName(admin, "Project 2")
	if err != nil {
		t.Fatalf("GetByDisplayName() error = %v", err)
	}
	if p.ID != 7 {
		t.Errorf("resolved id = %d, expected 7", p.ID)
	}
	if _, err := s.GetByDisplayName(admin, "Project 9"); err == nil {
		t.Error("unknown display name should fail")
	}
}
