package services

import (
	"fmt"

	"github.com/bomspace/backend/internal/models"
	"github.com/bomspace/backend/internal/store"
	"github.com/bomspace/backend/pkg/response"
)

// ProjectView is a project together with its positional display label.
type ProjectView struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Teams       []string `json:"teams"`
	DisplayName string   `json:"display_name"`
}

// ProjectService reads the seeded project list. Display labels
// ("Project N") are derived from position in the persisted list, not
// stored; list order in the document must therefore stay untouched, or
// the display-to-id mapping breaks.
type ProjectService struct {
	records *store.RecordStore
}

func NewProjectService(records *store.RecordStore) *ProjectService {
	return &ProjectService{records: records}
}

// List returns the projects visible to the actor, with display labels
// computed over the full list so they stay stable regardless of who is
// asking.
func (s *ProjectService) List(actor *models.User) ([]ProjectView, error) {
	doc, err := s.records.Load()
	if err != nil {
		return nil, err
	}

	out := []ProjectView{}
	for i, p := range doc.Projects {
		if !CanViewProject(actor, &p) {
			continue
		}
		out = append(out, ProjectView{
			ID:          p.ID,
			Name:        p.Name,
			Teams:       p.Teams,
			DisplayName: fmt.Sprintf("Project %d", i+1),
		})
	}
	return out, nil
}

// Get returns a single project the actor may see, or NotFound. A
// project hidden by policy is reported as forbidden, not invisible.
func (s *ProjectService) Get(actor *models.User, id int) (*ProjectView, error) {
	doc, err := s.records.Load()
	if err != nil {
		return nil, err
	}

	for i, p := range doc.Projects {
		if p.ID != id {
			continue
		}
		if !CanViewProject(actor, &p) {
			return nil, response.NewForbidden("no access to this project")
		}
		return &ProjectView{
			ID:          p.ID,
			Name:        p.Name,
			Teams:       p.Teams,
			DisplayName: fmt.Sprintf("Project %d", i+1),
		}, nil
	}
	return nil, response.NewNotFound("project not found")
}

// GetByDisplayName resolves a positional "Project N" label back to the
// project, for callers that key records by display name.
func (s *ProjectService) GetByDisplayName(actor *models.User, display string) (*ProjectView, error) {
	doc, err := s.records.Load()
	if err != nil {
		return nil, err
	}

	for i, p := range doc.Projects {
		if fmt.Sprintf("Project %d", i+1) != display {
			continue
		}
		if !CanViewProject(actor, &p) {
			return nil, response.NewForbidden("no access to this project")
		}
		return &ProjectView{
			ID:          p.ID,
			Name:        p.Name,
			Teams:       p.Teams,
			DisplayName: display,
		}, nil
	}
	return nil, response.NewNotFound("project not found")
}
