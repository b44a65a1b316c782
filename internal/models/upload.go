package models

import "time"

// Upload is the metadata record for one stored BOM file. The bytes
// live in the blob store under Filename; OriginalName is the
// user-facing name. Final marks the authoritative BOM for a project.
type Upload struct {
	ID           int       `json:"id"`
	ProjectID    int       `json:"project_id"`
	ProjectName  string    `json:"project_name"`
	Team         string    `json:"team"`
	UploadedBy   string    `json:"uploaded_by"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	TS           time.Time `json:"ts"`
	Final        bool      `json:"final"`
}
