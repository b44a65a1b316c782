package services

import (
	"testing"

	"github.com/bomspace/backend/internal/models"
	"github.com/bomspace/backend/internal/store"
)

func newTestDashboardService(t *testing.T) *DashboardService {
	t.Helper()
	return NewDashboardService(store.NewRecordStore(t.TempDir() + "/portal.json"))
}

func TestDashboardService_SaveAndList(t *testing.T) {
	s := newTestDashboardService(t)

	cfg := models.DashboardConfig{
		Name:      "weekly-parts",
		ProjectID: 1,
		Team:      "Design",
		File:      "abc_bom.csv",
		Chart:     models.ChartSpec{Type: "Histogram", X: "qty"},
	}
	if _, err := s.Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	s.Save(models.DashboardConfig{Name: "other", ProjectID: 1, Team: "Tooling",
		Chart: models.ChartSpec{Type: "Bar", X: "part", Y: "qty"}})

	got, err := s.List(1, "Design")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "weekly-parts" {
		t.Errorf("List() = %+v", got)
	}

	all, _ := s.List(1, "")
	if len(all) != 2 {
		t.Errorf("project-wide listing returned %d, expected 2", len(all))
	}
}

func TestDashboardService_DuplicateNamesAllowed(t *testing.T) {
	s := newTestDashboardService(t)

	cfg := models.DashboardConfig{Name: "dup", ProjectID: 1, Team: "Design",
		Chart: models.ChartSpec{Type: "Pie", X: "part"}}
	s.Save(cfg)
	if _, err := s.Save(cfg); err != nil {
		t.Fatalf("duplicate name should be allowed, got %v", err)
	}

	got, _ := s.List(1, "Design")
	if len(got) != 2 {
		t.Errorf("List() returned %d, expected 2 duplicates", len(got))
	}
}

func TestDashboardService_SaveRequiresChartType(t *testing.T) {
	s := newTestDashboardService(t)

	if _, err := s.Save(models.DashboardConfig{Name: "x", ProjectID: 1, Team: "Design"}); err == nil {
		t.Error("Save() without a chart type should be rejected")
	}
}
