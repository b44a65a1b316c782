package services

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bomspace/backend/internal/models"
	"github.com/bomspace/backend/internal/store"
	"github.com/bomspace/backend/pkg/logger"
	"github.com/bomspace/backend/pkg/response"
)

// allowedExtensions is the upload file allow-list. Extension-based
// only; no content sniffing.
var allowedExtensions = map[string]bool{
	".csv":  true,
	".xls":  true,
	".xlsx": true,
}

// UploadService manages the lifecycle of uploads, keeping the metadata
// record and the blob bytes in sync. Blob writes and document saves
// are not coordinated by any two-phase protocol: a crash in between
// can orphan a blob (a leak) or, on replace/remove, leave a dangling
// reference that readers must tolerate.
type UploadService struct {
	records *store.RecordStore
	blobs   *store.BlobStore
	// highWater is the largest id ever seen or issued by this process.
	// Allocation is max(existing)+1, which alone would reissue the id
	// of a removed record that held the maximum; the high-water mark
	// keeps freed ids from coming back.
	highWater int
}

func NewUploadService(records *store.RecordStore, blobs *store.BlobStore) *UploadService {
	return &UploadService{records: records, blobs: blobs}
}

// UploadFilter narrows List results. All set fields apply
// conjunctively.
type UploadFilter struct {
	ProjectID  *int
	Team       string
	UploadedBy string
	Final      *bool
	// Newest orders the result reverse-chronologically by ts instead
	// of insertion order.
	Newest bool
}

// Create stores the file bytes and appends a new upload record. The id
// is max(existing ids)+1, so removed ids are never reused.
func (s *UploadService) Create(projectID int, projectName, team, uploadedBy string, data []byte, originalName string, final bool) (*models.Upload, error) {
	if err := checkFile(data, originalName); err != nil {
		return nil, err
	}

	doc, err := s.records.Load()
	if err != nil {
		return nil, err
	}

	key, err := s.blobs.Put(data, originalName)
	if err != nil {
		return nil, err
	}

	id := nextUploadID(doc.Uploads)
	if id <= s.highWater {
		id = s.highWater + 1
	}
	s.highWater = id

	entry := models.Upload{
		ID:           id,
		ProjectID:    projectID,
		ProjectName:  projectName,
		Team:         team,
		UploadedBy:   uploadedBy,
		Filename:     key,
		OriginalName: originalName,
		TS:           time.Now().UTC(),
		Final:        final,
	}
	doc.Uploads = append(doc.Uploads, entry)
	if err := s.records.Save(doc); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Replace swaps an upload's bytes for new ones under a fresh storage
// key. The id is preserved, and the final flag too unless remarkFinal
// is set. The old blob is deleted best-effort: a failed delete leaves
// an orphan, which is a leak rather than corruption.
func (s *UploadService) Replace(id int, data []byte, originalName, replacedBy string, remarkFinal bool) (*models.Upload, error) {
	if err := checkFile(data, originalName); err != nil {
		return nil, err
	}

	doc, err := s.records.Load()
	if err != nil {
		return nil, err
	}

	idx := findUpload(doc.Uploads, id)
	if idx < 0 {
		return nil, response.NewNotFound("upload not found")
	}
	u := &doc.Uploads[idx]

	if err := s.blobs.Delete(u.Filename); err != nil {
		logger.Warn().Err(err).Str("key", u.Filename).Msg("failed to delete old blob")
	}

	key, err := s.blobs.Put(data, originalName)
	if err != nil {
		return nil, err
	}

	u.Filename = key
	u.OriginalName = originalName
	u.UploadedBy = replacedBy
	u.TS = time.Now().UTC()
	if remarkFinal {
		u.Final = true
	}

	if err := s.records.Save(doc); err != nil {
		return nil, err
	}
	out := *u
	return &out, nil
}

// Remove deletes an upload's blob and then its record. Blob first: if
// the process dies in between, the leftover is a record with a missing
// blob, which readers detect and render as "file missing" instead of a
// dangling key resurrecting stale bytes.
func (s *UploadService) Remove(id int) error {
	doc, err := s.records.Load()
	if err != nil {
		return err
	}

	idx := findUpload(doc.Uploads, id)
	if idx < 0 {
		return response.NewNotFound("upload not found")
	}

	if err := s.blobs.Delete(doc.Uploads[idx].Filename); err != nil {
		return err
	}

	doc.Uploads = append(doc.Uploads[:idx], doc.Uploads[idx+1:]...)
	return s.records.Save(doc)
}

// Get returns a single upload record by id.
func (s *UploadService) Get(id int) (*models.Upload, error) {
	doc, err := s.records.Load()
	if err != nil {
		return nil, err
	}
	idx := findUpload(doc.Uploads, id)
	if idx < 0 {
		return nil, response.NewNotFound("upload not found")
	}
	out := doc.Uploads[idx]
	return &out, nil
}

// Download returns an upload record together with its bytes. A record
// whose blob is gone yields an inconsistency error, not a crash; the
// caller renders it as "file missing".
func (s *UploadService) Download(id int) (*models.Upload, []byte, error) {
	u, err := s.Get(id)
	if err != nil {
		return nil, nil, err
	}
	data, err := s.blobs.Get(u.Filename)
	if errors.Is(err, store.ErrNotFound) {
		return u, nil, response.NewInconsistency("file missing")
	}
	if err != nil {
		return u, nil, err
	}
	return u, data, nil
}

// List returns uploads matching the filter, in insertion order unless
// the filter requests newest-first.
func (s *UploadService) List(f UploadFilter) ([]models.Upload, error) {
	doc, err := s.records.Load()
	if err != nil {
		return nil, err
	}

	out := []models.Upload{}
	for _, u := range doc.Uploads {
		if f.ProjectID != nil && u.ProjectID != *f.ProjectID {
			continue
		}
		if f.Team != "" && u.Team != f.Team {
			continue
		}
		if f.UploadedBy != "" && u.UploadedBy != f.UploadedBy {
			continue
		}
		if f.Final != nil && u.Final != *f.Final {
			continue
		}
		out = append(out, u)
	}

	if f.Newest {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].TS.After(out[j].TS)
		})
	}
	return out, nil
}

// HasBlob reports whether the upload's bytes are present, so listings
// can flag "file missing" records.
func (s *UploadService) HasBlob(u *models.Upload) bool {
	return s.blobs.Exists(u.Filename)
}

func checkFile(data []byte, originalName string) error {
	if len(data) == 0 {
		return response.NewValidation("file required")
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return response.NewValidation("file type not allowed: csv, xls and xlsx only")
	}
	return nil
}

func nextUploadID(uploads []models.Upload) int {
	max := 0
	for _, u := range uploads {
		if u.ID > max {
			max = u.ID
		}
	}
	return max + 1
}

func findUpload(uploads []models.Upload, id int) int {
	for i := range uploads {
		if uploads[i].ID == id {
			return i
		}
	}
	return -1
}
