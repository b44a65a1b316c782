package models

// Document is the single persisted JSON document holding every
// collection the portal operates on. The record store reads and writes
// it as a whole; there are no per-collection writes.
type Document struct {
	Users      []User            `json:"users"`
	Projects   []Project         `json:"projects"`
	Uploads    []Upload          `json:"uploads"`
	Messages   []Message         `json:"messages"`
	Dashboards []DashboardConfig `json:"dashboards"`
}

// NewDocument returns an empty document with all five collections
// initialized, so a fresh data file serializes as empty lists rather
// than nulls.
func NewDocument() *Document {
	return &Document{
		Users:      []User{},
		Projects:   []Project{},
		Uploads:    []Upload{},
		Messages:   []Message{},
		Dashboards: []DashboardConfig{},
	}
}

// Normalize replaces nil collections with empty ones after decoding a
// hand-edited or partial data file.
func (d *Document) Normalize() {
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	if d.Uploads == nil {
		d.Uploads = []Upload{}
	}
	if d.Messages == nil {
		d.Messages = []Message{}
	}
	if d.Dashboards == nil {
		d.Dashboards = []DashboardConfig{}
	}
}
