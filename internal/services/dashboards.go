package services

import (
	"github.com/bomspace/backend/internal/models"
	"github.com/bomspace/backend/internal/store"
	"github.com/bomspace/backend/pkg/response"
)

// DashboardService appends and lists saved chart configurations. The
// collection is append-only; names carry no identity and duplicates
// are allowed.
type DashboardService struct {
	records *store.RecordStore
}

func NewDashboardService(records *store.RecordStore) *DashboardService {
	return &DashboardService{records: records}
}

// Save appends a dashboard configuration.
func (s *DashboardService) Save(cfg models.DashboardConfig) (*models.DashboardConfig, error) {
	if cfg.Chart.Type == "" {
		return nil, response.NewValidation("chart type required")
	}

	doc, err := s.records.Load()
	if err != nil {
		return nil, err
	}
	doc.Dashboards = append(doc.Dashboards, cfg)
	if err := s.records.Save(doc); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// List returns dashboards for a project and team, in insertion order.
// team may be empty to list across all teams of the project.
func (s *DashboardService) List(projectID int, team string) ([]models.DashboardConfig, error) {
	doc, err := s.records.Load()
	if err != nil {
		return nil, err
	}

	out := []models.DashboardConfig{}
	for _, cfg := range doc.Dashboards {
		if cfg.ProjectID != projectID {
			continue
		}
		if team != "" && cfg.Team != team {
			continue
		}
		out = append(out, cfg)
	}
	return out, nil
}
