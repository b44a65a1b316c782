package models

// ChartSpec describes the chart a dashboard renders.
type ChartSpec struct {
	Type string `json:"type"`
	X    string `json:"x"`
	Y    string `json:"y,omitempty"`
}

// DashboardConfig is a saved chart configuration. The collection is
// append-only and Name carries no identity; duplicates are permitted.
type DashboardConfig struct {
	Name      string    `json:"name"`
	ProjectID int       `json:"project_id"`
	Team      string    `json:"team"`
	File      string    `json:"file"`
	Chart     ChartSpec `json:"chart"`
}
